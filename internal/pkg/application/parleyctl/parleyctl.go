package parleyctl

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/parleychat/parley-go/pkg/parley/collector"
	"github.com/parleychat/parley-go/pkg/parley/events"
	"github.com/parleychat/parley-go/pkg/parley/gateway"
	"github.com/parleychat/parley-go/pkg/parley/parts"
	"github.com/parleychat/parley-go/pkg/parley/transport"
	"github.com/rs/zerolog"
)

// App wires the transport, factory and gateway together for the command line
// frontend.
type App struct {
	transport transport.Transport
	state     *parts.MemoryState
	factory   *parts.Factory
	bus       *events.Bus
	gateway   *gateway.Gateway

	logger zerolog.Logger
}

func New(ctx context.Context, cfg *Config, logger zerolog.Logger) (*App, error) {
	token := os.Getenv("PARLEY_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no api token found in environment variable PARLEY_TOKEN")
	}

	tx := transport.New(cfg.API.Endpoint,
		transport.Token(token),
		transport.Retries(cfg.API.Retries),
		transport.Debug(os.Getenv("PARLEY_DEBUG")),
		transport.Logger(logger),
	)

	state := parts.NewMemoryState()
	factory := parts.NewFactory(tx, state)
	bus := events.NewBus()

	app := &App{
		transport: tx,
		state:     state,
		factory:   factory,
		bus:       bus,
		logger:    logger,
	}

	if cfg.Gateway.Enabled {
		app.gateway = gateway.New(cfg.GatewayEndpoint(), factory, bus, gateway.Logger(logger))
	}

	return app, nil
}

// Channel fetches a channel by id and materializes it.
func (a *App) Channel(ctx context.Context, channelID string) (*parts.Channel, error) {
	payload, err := a.transport.Get(ctx, "channels/"+channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}

	p, err := a.factory.BuildEntity("channel", payload, true)
	if err != nil {
		return nil, err
	}

	channel := parts.ChannelFrom(p)
	a.state.PutChannel(channel)

	return channel, nil
}

// Send posts a message to the given channel.
func (a *App) Send(ctx context.Context, channelID, content string, tts bool) (*parts.Message, error) {
	channel, err := a.Channel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	opts := []parts.SendOption{}
	if tts {
		opts = append(opts, parts.TTS())
	}

	return channel.SendMessage(ctx, content, opts...)
}

// Watch connects to the gateway and accumulates newly created messages in the
// given channel until count messages have arrived or the time budget runs out.
func (a *App) Watch(ctx context.Context, channelID string, count int, budget time.Duration) ([]*parts.Message, error) {
	if a.gateway == nil {
		return nil, fmt.Errorf("the gateway is disabled in the configuration")
	}

	err := a.gateway.Start(ctx)
	if err != nil {
		return nil, err
	}
	defer a.gateway.Stop()

	opts := []collector.Option{}
	if count > 0 {
		opts = append(opts, collector.WithLimit(count))
	}
	if budget > 0 {
		opts = append(opts, collector.WithTimeout(budget))
	}

	c := collector.New(a.bus, events.TopicMessageCreated, channelID, nil, opts...)

	collected, err := c.Await(ctx)
	if err != nil && len(collected) == 0 {
		return nil, err
	}

	messages := make([]*parts.Message, 0, len(collected))
	for _, p := range collected {
		messages = append(messages, parts.MessageFrom(p))
	}

	return messages, nil
}
