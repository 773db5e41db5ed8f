package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parleychat/parley-go/internal/pkg/application/parleyctl"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {

	serviceName := "parleyctl"

	logger := log.With().Str("service", strings.ToLower(serviceName)).Logger()

	err := newRootCmd(logger).ExecuteContext(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "parleyctl",
		Short:         "parleyctl — talk to a parley server from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to a configuration file (defaults to $PARLEY_CONFIG)")

	root.AddCommand(newSendCmd(logger))
	root.AddCommand(newWatchCmd(logger))

	return root
}

func newSendCmd(logger zerolog.Logger) *cobra.Command {
	var tts bool

	cmd := &cobra.Command{
		Use:   "send <channel-id> <message...>",
		Short: "post a message to a channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, logger)
			if err != nil {
				return err
			}

			msg, err := app.Send(cmd.Context(), args[0], strings.Join(args[1:], " "), tts)
			if err != nil {
				return err
			}

			logger.Info().Str("channel", msg.ChannelID()).Msg("message sent")
			return nil
		},
	}

	cmd.Flags().BoolVar(&tts, "tts", false, "send as a text to speech message")

	return cmd
}

func newWatchCmd(logger zerolog.Logger) *cobra.Command {
	var count int
	var budget time.Duration

	cmd := &cobra.Command{
		Use:   "watch <channel-id>",
		Short: "print new messages in a channel as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, logger)
			if err != nil {
				return err
			}

			messages, err := app.Watch(cmd.Context(), args[0], count, budget)
			if err != nil {
				return err
			}

			for _, m := range messages {
				fmt.Fprintln(cmd.OutOrStdout(), m.Content())
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "stop after this many messages")
	cmd.Flags().DurationVar(&budget, "for", 30*time.Second, "stop after this much time")

	return cmd
}

func newApp(cmd *cobra.Command, logger zerolog.Logger) (*parleyctl.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return parleyctl.New(cmd.Context(), cfg, logger)
}

func loadConfig(cmd *cobra.Command) (*parleyctl.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("PARLEY_CONFIG")
	}
	if path == "" {
		return nil, fmt.Errorf("no configuration file given (use --config or $PARLEY_CONFIG)")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	return parleyctl.LoadConfiguration(f)
}
