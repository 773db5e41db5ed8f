package events

import "sync"

// Topic identifies one entity-lifecycle event stream.
type Topic string

const (
	TopicMessageCreated Topic = "message-created"
	TopicChannelCreated Topic = "channel-created"
	TopicInviteCreated  Topic = "invite-created"
	TopicMemberJoined   Topic = "member-joined"
)

type Handler func(payload any)

// Subscription is the handle returned by Subscribe. Cancel is idempotent and
// takes effect no later than the next dispatch on the topic.
type Subscription struct {
	bus      *Bus
	topic    Topic
	handler  Handler
	cancel   sync.Once
	disabled bool
	mu       sync.Mutex
}

func (s *Subscription) Cancel() {
	s.cancel.Do(func() {
		s.mu.Lock()
		s.disabled = true
		s.mu.Unlock()

		s.bus.remove(s)
	})
}

func (s *Subscription) deliver(payload any) {
	s.mu.Lock()
	disabled := s.disabled
	s.mu.Unlock()

	if !disabled {
		s.handler(payload)
	}
}

// Bus dispatches published payloads to topic subscribers, in order, on the
// publisher's goroutine. The subscriber list is copied on every update so that
// dispatch never holds the lock while running handlers.
type Bus struct {
	mu   sync.Mutex
	subs map[Topic][]*Subscription
}

func NewBus() *Bus {
	return &Bus{
		subs: map[Topic][]*Subscription{},
	}
}

func (b *Bus) Subscribe(topic Topic, handler Handler) *Subscription {
	sub := &Subscription{bus: b, topic: topic, handler: handler}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]*Subscription, 0, len(b.subs[topic])+1)
	next = append(next, b.subs[topic]...)
	next = append(next, sub)
	b.subs[topic] = next

	return sub
}

func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.Lock()
	subs := b.subs[topic]
	b.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(payload)
	}
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.subs[sub.topic]
	next := make([]*Subscription, 0, len(current))
	for _, s := range current {
		if s != sub {
			next = append(next, s)
		}
	}
	b.subs[sub.topic] = next
}
