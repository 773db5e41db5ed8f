package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/is"
	"github.com/parleychat/parley-go/pkg/parley/events"
	"github.com/parleychat/parley-go/pkg/parley/parts"
	"github.com/parleychat/parley-go/pkg/parley/test"
)

func newSocketServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}

		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}

		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
}

func TestFramesMaterializeOnTheBus(t *testing.T) {
	is := is.New(t)

	s := newSocketServer(t, []string{
		`{"t":"MESSAGE_CREATE","d":{"id":"100","channel_id":"81","content":"hi"}}`,
		`{"t":"UNKNOWN_EVENT","d":{}}`,
		`{"t":"CHANNEL_CREATE","d":{"id":"82","type":"text","space_id":"7"}}`,
	})
	defer s.Close()

	bus := events.NewBus()
	factory := parts.NewFactory(&test.TransportMock{}, parts.NewMemoryState())

	messages := make(chan *parts.Part, 1)
	channels := make(chan *parts.Part, 1)
	bus.Subscribe(events.TopicMessageCreated, func(payload any) {
		messages <- payload.(*parts.Part)
	})
	bus.Subscribe(events.TopicChannelCreated, func(payload any) {
		channels <- payload.(*parts.Part)
	})

	g := New(strings.Replace(s.URL, "http", "ws", 1), factory, bus)
	is.NoErr(g.Start(context.Background()))
	defer g.Stop()

	select {
	case m := <-messages:
		is.Equal(m.ID(), "100")
		is.Equal(m.Get("content"), "hi")
		is.True(m.Created())
	case <-time.After(time.Second):
		is.Fail() // no message frame arrived
	}

	select {
	case c := <-channels:
		is.Equal(c.ID(), "82")
	case <-time.After(time.Second):
		is.Fail() // no channel frame arrived
	}
}

func TestStartTwiceFails(t *testing.T) {
	is := is.New(t)

	s := newSocketServer(t, nil)
	defer s.Close()

	bus := events.NewBus()
	factory := parts.NewFactory(&test.TransportMock{}, parts.NewMemoryState())

	g := New(strings.Replace(s.URL, "http", "ws", 1), factory, bus)
	is.NoErr(g.Start(context.Background()))
	defer g.Stop()

	is.True(g.Start(context.Background()) != nil)
}

func TestStopWithoutStartIsANoOp(t *testing.T) {
	is := is.New(t)

	g := New("ws://nowhere", nil, events.NewBus())
	is.NoErr(g.Stop())
}
