// Package gateway consumes the real-time event socket and turns creation
// frames into materialized parts on the event bus. Session resume and
// heartbeating are the socket provider's concern, not handled here.
package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/parleychat/parley-go/pkg/parley/events"
	"github.com/parleychat/parley-go/pkg/parley/parts"
	"github.com/parleychat/parley-go/pkg/parley/transport"
	"github.com/rs/zerolog"
)

type frame struct {
	Type string         `json:"t"`
	Data map[string]any `json:"d"`
}

type route struct {
	tag   string
	topic events.Topic
}

var routes = map[string]route{
	"MESSAGE_CREATE": {tag: "message", topic: events.TopicMessageCreated},
	"CHANNEL_CREATE": {tag: "channel", topic: events.TopicChannelCreated},
	"INVITE_CREATE":  {tag: "invite", topic: events.TopicInviteCreated},
	"MEMBER_JOIN":    {tag: "member", topic: events.TopicMemberJoined},
}

func Logger(logger zerolog.Logger) func(*Gateway) {
	return func(g *Gateway) {
		g.log = logger
	}
}

type Gateway struct {
	url     string
	factory *parts.Factory
	bus     *events.Bus
	log     zerolog.Logger

	mu      sync.Mutex
	started bool
	conn    *websocket.Conn
	done    chan struct{}
}

func New(url string, factory *parts.Factory, bus *events.Bus, options ...func(*Gateway)) *Gateway {
	g := &Gateway{
		url:     url,
		factory: factory,
		bus:     bus,
		log:     zerolog.Nop(),
	}

	for _, option := range options {
		option(g)
	}

	return g
}

func (g *Gateway) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return fmt.Errorf("already started")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to gateway: %w", err)
	}

	g.conn = conn
	g.started = true
	g.done = make(chan struct{})

	go g.run()

	return nil
}

func (g *Gateway) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started {
		return nil
	}

	g.conn.Close()
	<-g.done
	g.started = false

	return nil
}

func (g *Gateway) run() {
	defer close(g.done)

	for {
		f := frame{}
		if err := g.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Error().Err(err).Msg("gateway connection lost")
			}
			return
		}

		g.dispatch(f)
	}
}

func (g *Gateway) dispatch(f frame) {
	route, ok := routes[f.Type]
	if !ok {
		g.log.Debug().Str("type", f.Type).Msg("ignoring unroutable frame")
		return
	}

	p, err := g.factory.BuildEntity(route.tag, transport.Payload(f.Data), true)
	if err != nil {
		g.log.Error().Err(err).Str("type", f.Type).Msg("failed to materialize frame")
		return
	}

	g.bus.Publish(route.topic, p)
}
