package collector

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/parleychat/parley-go/pkg/parley/events"
	"github.com/parleychat/parley-go/pkg/parley/parts"
	"github.com/parleychat/parley-go/pkg/parley/test"
	"github.com/parleychat/parley-go/pkg/parley/transport"
)

func newMessage(t *testing.T, f *parts.Factory, id, channelID string) *parts.Part {
	t.Helper()

	p, err := f.BuildEntity("message", transport.Payload{"id": id, "channel_id": channelID}, true)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func testFactory() *parts.Factory {
	return parts.NewFactory(&test.TransportMock{}, parts.NewMemoryState())
}

func TestLimitResolvesWithExactlyThatMany(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	c := New(bus, events.TopicMessageCreated, "81", nil, WithLimit(2))

	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "1", "81"))
	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "2", "81"))
	// a third event racing the resolution must not be collected
	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "3", "81"))

	collected, err := c.Await(context.Background())

	is.NoErr(err)
	is.Equal(len(collected), 2)
	is.Equal(collected[0].ID(), "1")
	is.Equal(collected[1].ID(), "2")
}

func TestConcurrentPublishersNeverOverfill(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	c := New(bus, events.TopicMessageCreated, "81", nil, WithLimit(2))

	published := []*parts.Part{}
	for i := 0; i < 8; i++ {
		published = append(published, newMessage(t, f, strconv.Itoa(i), "81"))
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, p := range published {
		wg.Add(1)
		go func(p *parts.Part) {
			defer wg.Done()
			<-start
			bus.Publish(events.TopicMessageCreated, p)
		}(p)
	}

	close(start)
	wg.Wait()

	collected, err := c.Await(context.Background())
	is.NoErr(err)
	is.Equal(len(collected), 2) // simultaneous events must not push past the limit
	is.Equal(len(c.Collected()), 2)
}

func TestOutOfScopeEventsAreDiscarded(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	c := New(bus, events.TopicMessageCreated, "81", nil, WithLimit(1))

	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "1", "999"))

	select {
	case <-c.Done():
		is.Fail() // out of scope event must not resolve the collector
	default:
	}

	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "2", "81"))

	collected, err := c.Await(context.Background())
	is.NoErr(err)
	is.Equal(len(collected), 1)
	is.Equal(collected[0].ID(), "2")
}

func TestPredicateFilters(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	evens := func(p *parts.Part) bool { return p.ID() == "2" || p.ID() == "4" }
	c := New(bus, events.TopicMessageCreated, "81", evens, WithLimit(2))

	for _, id := range []string{"1", "2", "3", "4"} {
		bus.Publish(events.TopicMessageCreated, newMessage(t, f, id, "81"))
	}

	collected, err := c.Await(context.Background())
	is.NoErr(err)
	is.Equal(len(collected), 2)
	is.Equal(collected[0].ID(), "2")
	is.Equal(collected[1].ID(), "4")
}

func TestTimeBudgetResolvesWithPartialAccumulation(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	c := New(bus, events.TopicMessageCreated, "81", nil, WithLimit(10), WithTimeout(20*time.Millisecond))

	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "1", "81"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	collected, err := c.Await(ctx)

	is.NoErr(err)
	is.Equal(len(collected), 1)
}

func TestListenerIsGoneAfterResolution(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	c := New(bus, events.TopicMessageCreated, "81", nil, WithLimit(1))

	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "1", "81"))
	<-c.Done()

	bus.Publish(events.TopicMessageCreated, newMessage(t, f, "2", "81"))

	is.Equal(len(c.Collected()), 1)
}

func TestUnboundedCollectorStaysActive(t *testing.T) {
	is := is.New(t)

	bus := events.NewBus()
	f := testFactory()

	// neither a limit nor a time budget: documented to never resolve
	c := New(bus, events.TopicMessageCreated, "81", nil)

	for i := 0; i < 50; i++ {
		bus.Publish(events.TopicMessageCreated, newMessage(t, f, "1", "81"))
	}

	select {
	case <-c.Done():
		is.Fail() // must still be active
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Await(ctx)
	is.Equal(err, context.DeadlineExceeded)
}
