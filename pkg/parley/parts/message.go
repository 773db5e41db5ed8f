package parts

import "github.com/parleychat/parley-go/pkg/parley/transport"

var messageDescriptor = &Descriptor{
	Kind: KindMessage,
	Tag:  "message",
	Fillable: []string{
		"id", "channel_id", "content", "author", "timestamp", "edited_timestamp",
		"tts", "pinned", "nonce", "mentions", "embeds", "attachments",
	},
	Defaults: map[string]any{
		"pinned": false,
		"tts":    false,
	},
	Overrides: map[string]OverrideFunc{
		// the nested author sub-object materializes as a member part on read
		"author": func(p *Part) any {
			raw, ok := p.rawValue("author").(map[string]any)
			if !ok {
				return nil
			}

			author, err := p.factory.BuildEntity("member", transport.Payload(raw), true)
			if err != nil {
				return nil
			}
			return author
		},
		"channel": func(p *Part) any {
			channel, ok := p.state.Channel(asString(p.rawValue("channel_id")))
			if !ok {
				return nil
			}
			return channel
		},
	},
}

// Message wraps a message part with typed accessors.
type Message struct {
	*Part
}

func MessageFrom(p *Part) *Message {
	if p == nil || p.Kind() != KindMessage {
		return nil
	}
	return &Message{Part: p}
}

func (m *Message) ChannelID() string {
	return asString(m.rawValue("channel_id"))
}

func (m *Message) Content() string {
	return asString(m.rawValue("content"))
}

func (m *Message) Pinned() bool {
	return asBool(m.Get("pinned"))
}

func (m *Message) TTS() bool {
	return asBool(m.Get("tts"))
}

func (m *Message) Author() *Part {
	author, _ := m.Get("author").(*Part)
	return author
}

func (m *Message) Channel() *Channel {
	channel, _ := m.Get("channel").(*Channel)
	return channel
}
