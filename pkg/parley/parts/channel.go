package parts

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/parleychat/parley-go/pkg/parley/errors"
	"github.com/parleychat/parley-go/pkg/parley/transport"
)

const (
	ChannelTypeText   = "text"
	ChannelTypeVoice  = "voice"
	ChannelTypeDirect = "direct"
)

const defaultBitrate = 64000

var channelDescriptor = &Descriptor{
	Kind: KindChannel,
	Tag:  "channel",
	Fillable: []string{
		"id", "name", "topic", "position", "type", "space_id", "bitrate",
		"user_limit", "last_message_id", "recipient", "permission_overwrites",
		"messages",
	},
	Defaults: map[string]any{
		"type":     ChannelTypeText,
		"position": 0,
	},
	Overrides: map[string]OverrideFunc{
		"is_private": func(p *Part) any {
			return asString(p.rawValue("type")) == ChannelTypeDirect
		},
		"space": func(p *Part) any {
			space, ok := p.state.Space(asString(p.rawValue("space_id")))
			if !ok {
				return nil
			}
			return space
		},
		"recipient": func(p *Part) any {
			raw, ok := p.rawValue("recipient").(map[string]any)
			if !ok {
				return nil
			}

			recipient, err := p.factory.BuildEntity("member", transport.Payload(raw), true)
			if err != nil {
				return nil
			}
			return recipient
		},
	},
	Setters: map[string]SetterFunc{
		// the message list is duplicated on purpose: the raw value keeps what
		// the server sent, the repository caches each item as a part. Both are
		// rewritten together on every write so they cannot drift.
		"messages": func(p *Part, value any) {
			p.setRaw("messages", value)

			list, ok := value.([]any)
			if !ok {
				return
			}

			repo := p.Repository("messages")
			if repo == nil {
				return
			}

			for _, item := range list {
				raw, ok := item.(map[string]any)
				if !ok {
					continue
				}

				msg, err := p.factory.BuildEntity("message", transport.Payload(raw), true)
				if err == nil {
					repo.Push(msg)
				}
			}
		},
	},
	AfterConstruct: func(p *Part) {
		// voice capable channels get a default bitrate unless one was supplied
		if asString(p.rawValue("type")) != ChannelTypeText && p.rawValue("bitrate") == nil {
			p.setRaw("bitrate", defaultBitrate)
		}
	},
	Repositories: map[string]RepositorySpec{
		"messages": {Tag: "messages", OwnerField: "id"},
		"invites":  {Tag: "invites", OwnerField: "id"},
	},
}

// Channel wraps a channel part with typed accessors and the channel-scoped
// mutation operations.
type Channel struct {
	*Part
}

func ChannelFrom(p *Part) *Channel {
	if p == nil || p.Kind() != KindChannel {
		return nil
	}
	return &Channel{Part: p}
}

func (c *Channel) Name() string {
	return asString(c.rawValue("name"))
}

func (c *Channel) Type() string {
	return asString(c.Get("type"))
}

func (c *Channel) IsPrivate() bool {
	return asBool(c.Get("is_private"))
}

func (c *Channel) SpaceID() string {
	return asString(c.rawValue("space_id"))
}

func (c *Channel) Messages() *Repository {
	return c.Repository("messages")
}

func (c *Channel) Invites() *Repository {
	return c.Repository("invites")
}

func (c *Channel) messageCapable() bool {
	t := c.Type()
	return t == ChannelTypeText || t == ChannelTypeDirect
}

type sendOptions struct {
	tts      bool
	mentions []string
}

type SendOption func(*sendOptions)

func TTS() SendOption {
	return func(o *sendOptions) { o.tts = true }
}

func Mentions(ids ...string) SendOption {
	return func(o *sendOptions) { o.mentions = ids }
}

// SendMessage posts a message to the channel and caches the created message in
// the channel's message repository.
func (c *Channel) SendMessage(ctx context.Context, content string, opts ...SendOption) (*Message, error) {
	if !c.messageCapable() {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot send messages to a %s channel", c.Type()))
	}

	so := &sendOptions{}
	for _, opt := range opts {
		opt(so)
	}

	body := transport.Payload{
		"content": content,
		"nonce":   uuid.NewString(),
	}
	if so.tts {
		body["tts"] = true
	}
	if len(so.mentions) > 0 {
		body["mentions"] = so.mentions
	}

	return c.postMessage(ctx, body)
}

// SendEmbed posts a rich-content message.
func (c *Channel) SendEmbed(ctx context.Context, embed transport.Payload) (*Message, error) {
	if !c.messageCapable() {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot send messages to a %s channel", c.Type()))
	}

	return c.postMessage(ctx, transport.Payload{
		"embed": map[string]any(embed),
		"nonce": uuid.NewString(),
	})
}

func (c *Channel) postMessage(ctx context.Context, body transport.Payload) (*Message, error) {
	payload, err := c.transport.Post(ctx, c.route("channels/{id}/messages"), body)
	if err != nil {
		return nil, err
	}

	return c.cacheMessage(payload)
}

// SendFile uploads a local file to the channel. The path is checked before any
// remote call. An empty filename defaults to the file's base name.
func (c *Channel) SendFile(ctx context.Context, filepath, filename string, opts ...transport.FileOption) (*Message, error) {
	if !c.messageCapable() {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot send messages to a %s channel", c.Type()))
	}

	if _, err := os.Stat(filepath); err != nil {
		return nil, errors.NewLocalResourceNotFoundError(fmt.Sprintf("no file exists at %s", filepath))
	}

	if filename == "" {
		filename = path.Base(filepath)
	}

	payload, err := c.transport.SendFile(ctx, c.route("channels/{id}/messages"), filepath, filename, opts...)
	if err != nil {
		return nil, err
	}

	return c.cacheMessage(payload)
}

// BroadcastTyping signals that the client is typing. The transport outcome is
// forwarded as is.
func (c *Channel) BroadcastTyping(ctx context.Context) error {
	if !c.messageCapable() {
		return errors.NewValidationError(fmt.Sprintf("cannot broadcast typing to a %s channel", c.Type()))
	}

	_, err := c.transport.Post(ctx, c.route("channels/{id}/typing"), nil)
	return err
}

// PinMessage pins a message of this channel. The pinned flag flips only after
// the remote call succeeded.
func (c *Channel) PinMessage(ctx context.Context, m *Message) error {
	if m.Pinned() {
		return errors.NewValidationError("message is already pinned")
	}
	if m.ChannelID() != c.ID() {
		return errors.NewValidationError("message belongs to a different channel")
	}

	_, err := c.transport.Put(ctx, c.route("channels/{id}/pins/")+m.ID(), nil)
	if err != nil {
		return err
	}

	m.Set("pinned", true)
	return nil
}

func (c *Channel) UnpinMessage(ctx context.Context, m *Message) error {
	if !m.Pinned() {
		return errors.NewValidationError("message is not pinned")
	}
	if m.ChannelID() != c.ID() {
		return errors.NewValidationError("message belongs to a different channel")
	}

	_, err := c.transport.Delete(ctx, c.route("channels/{id}/pins/")+m.ID())
	if err != nil {
		return err
	}

	m.Set("pinned", false)
	return nil
}

// BulkDeleteMessages deletes several messages in one call. The remote endpoint
// rejects single-item bulk deletes, so fewer than two messages fail locally.
// Accepts a slice of messages, parts or raw ids.
func (c *Channel) BulkDeleteMessages(ctx context.Context, messages any) error {
	ids, ok := collectIDs(messages)
	if !ok {
		return errors.NewValidationError("bulk delete expects a list of messages or ids")
	}

	if len(ids) < 2 {
		return errors.NewValidationError(fmt.Sprintf("bulk delete needs at least 2 messages, got %d", len(ids)))
	}

	_, err := c.transport.Post(ctx, c.route("channels/{id}/messages/bulk-delete"), transport.Payload{
		"messages": ids,
	})
	if err != nil {
		return err
	}

	repo := c.Messages()
	for _, id := range ids {
		repo.Remove(id)
	}
	return nil
}

// MoveMember relocates a member into this voice channel.
func (c *Channel) MoveMember(ctx context.Context, member any) error {
	if c.Type() != ChannelTypeVoice {
		return errors.NewValidationError(fmt.Sprintf("cannot move members to a %s channel", c.Type()))
	}

	memberID, ok := normalizeID(member)
	if !ok {
		return errors.NewValidationError("member reference does not resolve to an id")
	}

	endpoint := transport.ExpandPath("spaces/{space_id}/members/{member_id}", map[string]string{
		"space_id":  c.SpaceID(),
		"member_id": memberID,
	})

	_, err := c.transport.Patch(ctx, endpoint, transport.Payload{"channel_id": c.ID()})
	return err
}

type historyOptions struct {
	cursors map[string]any
	limit   int
	cache   bool
}

type HistoryOption func(*historyOptions)

func Before(ref any) HistoryOption {
	return func(o *historyOptions) { o.cursors["before"] = ref }
}

func After(ref any) HistoryOption {
	return func(o *historyOptions) { o.cursors["after"] = ref }
}

func Around(ref any) HistoryOption {
	return func(o *historyOptions) { o.cursors["around"] = ref }
}

func Limit(n int) HistoryOption {
	return func(o *historyOptions) { o.limit = n }
}

// NoCache keeps fetched history out of the channel's message repository.
func NoCache() HistoryOption {
	return func(o *historyOptions) { o.cache = false }
}

// History fetches past messages. At most one of Before/After/Around may be
// given; the limit must stay within [1,100] and defaults to 100. Unless
// NoCache was given, fetched messages are pushed into the message repository.
func (c *Channel) History(ctx context.Context, opts ...HistoryOption) ([]*Message, error) {
	ho := &historyOptions{
		cursors: map[string]any{},
		limit:   100,
		cache:   true,
	}
	for _, opt := range opts {
		opt(ho)
	}

	if len(ho.cursors) > 1 {
		return nil, errors.NewValidationError("only one of before, after and around can be used")
	}
	if ho.limit < 1 || ho.limit > 100 {
		return nil, errors.NewValidationError(fmt.Sprintf("history limit must be within [1,100], got %d", ho.limit))
	}

	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", ho.limit))

	for name, ref := range ho.cursors {
		id, ok := normalizeID(ref)
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("%s reference does not resolve to an id", name))
		}
		query.Set(name, id)
	}

	payload, err := c.transport.Get(ctx, c.route("channels/{id}/messages")+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	repo := c.Messages()
	history := []*Message{}

	for _, item := range transport.Items(payload) {
		p, err := c.factory.BuildEntity("message", item, true)
		if err != nil {
			return nil, err
		}

		m := MessageFrom(p)
		history = append(history, m)

		if ho.cache {
			repo.Push(p)
		}
	}

	return history, nil
}

type inviteOptions struct {
	maxAge    int
	maxUses   int
	temporary bool
}

type InviteOption func(*inviteOptions)

func MaxAge(seconds int) InviteOption {
	return func(o *inviteOptions) { o.maxAge = seconds }
}

func MaxUses(n int) InviteOption {
	return func(o *inviteOptions) { o.maxUses = n }
}

func Temporary() InviteOption {
	return func(o *inviteOptions) { o.temporary = true }
}

// CreateInvite creates an invite for this channel and caches it.
func (c *Channel) CreateInvite(ctx context.Context, opts ...InviteOption) (*Invite, error) {
	inv := &inviteOptions{}
	for _, opt := range opts {
		opt(inv)
	}

	payload, err := c.transport.Post(ctx, c.route("channels/{id}/invites"), transport.Payload{
		"max_age":   inv.maxAge,
		"max_uses":  inv.maxUses,
		"temporary": inv.temporary,
	})
	if err != nil {
		return nil, err
	}

	p, err := c.factory.BuildEntity("invite", payload, true)
	if err != nil {
		return nil, err
	}

	c.Invites().Push(p)
	return InviteFrom(p), nil
}

// SetPermissions derives allow/deny bitmasks from permission names and applies
// them for the target, which must be a member or a role.
func (c *Channel) SetPermissions(ctx context.Context, target *Part, allow, deny []string) error {
	if err := validOverwriteTarget(target); err != nil {
		return err
	}

	allowBits, err := permissionMask(allow)
	if err != nil {
		return err
	}
	denyBits, err := permissionMask(deny)
	if err != nil {
		return err
	}

	return c.SetOverwrite(ctx, target, OverwriteRecord{
		ID:         target.ID(),
		ParentID:   c.ID(),
		TargetKind: target.Kind(),
		AllowBits:  allowBits,
		DenyBits:   denyBits,
	})
}

// SetOverwrite applies a permission overwrite. On a channel that does not
// exist remotely yet, the overwrite is buffered into the raw overwrite list
// and rides along verbatim in the eventual creation payload; on a created
// channel it is upserted immediately.
func (c *Channel) SetOverwrite(ctx context.Context, target *Part, record OverwriteRecord) error {
	if err := validOverwriteTarget(target); err != nil {
		return err
	}

	if !c.Created() {
		c.appendRaw("permission_overwrites", map[string]any(record.payload()))
		return nil
	}

	endpoint := transport.ExpandPath("channels/{id}/permissions/{target_id}", map[string]string{
		"id":        c.ID(),
		"target_id": record.ID,
	})

	_, err := c.transport.Put(ctx, endpoint, record.payload())
	return err
}

// Create persists a locally built channel, buffered overwrites included, and
// refreshes local attributes from the response.
func (c *Channel) Create(ctx context.Context) error {
	if c.Created() {
		return errors.NewValidationError("channel already exists remotely")
	}

	endpoint := transport.ExpandPath("spaces/{space_id}/channels", map[string]string{
		"space_id": c.SpaceID(),
	})

	payload, err := c.transport.Post(ctx, endpoint, c.Raw())
	if err != nil {
		return err
	}

	c.fill(payload)
	c.markCreated()
	return nil
}

func (c *Channel) cacheMessage(payload transport.Payload) (*Message, error) {
	p, err := c.factory.BuildEntity("message", payload, true)
	if err != nil {
		return nil, err
	}

	c.Messages().Push(p)
	return MessageFrom(p), nil
}

func (c *Channel) route(template string) string {
	return transport.ExpandPath(template, map[string]string{"id": c.ID()})
}

func validOverwriteTarget(target *Part) error {
	if target == nil {
		return errors.NewInvalidOverwriteTargetError("overwrite target is missing")
	}

	if target.Kind() != KindMember && target.Kind() != KindRole {
		return errors.NewInvalidOverwriteTargetError(fmt.Sprintf("a %s cannot hold permission overwrites", target.Kind()))
	}

	return nil
}

func collectIDs(messages any) ([]string, bool) {
	ids := []string{}

	switch list := messages.(type) {
	case []*Message:
		for _, m := range list {
			ids = append(ids, m.ID())
		}
	case []*Part:
		for _, p := range list {
			ids = append(ids, p.ID())
		}
	case []string:
		ids = append(ids, list...)
	case []any:
		for _, item := range list {
			id, ok := normalizeID(item)
			if !ok {
				return nil, false
			}
			ids = append(ids, id)
		}
	default:
		return nil, false
	}

	return ids, true
}
