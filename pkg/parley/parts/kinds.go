package parts

// Kind enumerates every resource kind the factory knows how to build. The set
// is closed: tags map onto kinds through the registries below and nothing is
// dispatched by reflection at access time.
type Kind int

const (
	KindUnknown Kind = iota
	KindChannel
	KindMessage
	KindOverwrite
	KindInvite
	KindMember
	KindRole
	KindSpace
)

func (k Kind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindMessage:
		return "message"
	case KindOverwrite:
		return "overwrite"
	case KindInvite:
		return "invite"
	case KindMember:
		return "member"
	case KindRole:
		return "role"
	case KindSpace:
		return "space"
	default:
		return "unknown"
	}
}

// OverrideFunc computes a derived attribute value, taking precedence over the
// raw stored value on read.
type OverrideFunc func(p *Part) any

// SetterFunc stores an attribute with side effects beyond the raw write.
type SetterFunc func(p *Part, value any)

// Descriptor holds everything the pipeline needs to know about one entity
// kind, resolved once at registration.
type Descriptor struct {
	Kind     Kind
	Tag      string
	Key      string
	Fillable []string
	Defaults map[string]any

	Overrides      map[string]OverrideFunc
	Setters        map[string]SetterFunc
	AfterConstruct func(p *Part)

	// Repositories declares the child repositories reachable from this kind,
	// keyed by field name. OwnerField names the owning entity's attribute that
	// scopes the child collection.
	Repositories map[string]RepositorySpec
}

func (d *Descriptor) fillable(field string) bool {
	for _, f := range d.Fillable {
		if f == field {
			return true
		}
	}
	return false
}

func (d *Descriptor) key() string {
	if d.Key != "" {
		return d.Key
	}
	return "id"
}

type RepositorySpec struct {
	Tag        string
	OwnerField string
}

// RepositoryDescriptor describes one repository kind: what it contains, which
// attribute scopes it and the collection path on the remote API.
type RepositoryDescriptor struct {
	Tag      string
	ElemTag  string
	ScopeKey string
	Path     string
}

var memberDescriptor = &Descriptor{
	Kind:     KindMember,
	Tag:      "member",
	Fillable: []string{"id", "username", "discriminator", "avatar", "mute", "deaf", "status"},
	Defaults: map[string]any{"mute": false, "deaf": false},
}

var roleDescriptor = &Descriptor{
	Kind:     KindRole,
	Tag:      "role",
	Fillable: []string{"id", "name", "permissions", "color", "hoist", "position"},
	Defaults: map[string]any{"hoist": false},
}

var spaceDescriptor = &Descriptor{
	Kind:     KindSpace,
	Tag:      "space",
	Fillable: []string{"id", "name", "owner_id", "region", "afk_channel_id", "afk_timeout"},
	Repositories: map[string]RepositorySpec{
		"channels": {Tag: "channels", OwnerField: "id"},
		"members":  {Tag: "members", OwnerField: "id"},
	},
}

var overwriteDescriptor = &Descriptor{
	Kind:     KindOverwrite,
	Tag:      "overwrite",
	Fillable: []string{"id", "channel_id", "type", "allow", "deny"},
}

var inviteDescriptor = &Descriptor{
	Kind:     KindInvite,
	Tag:      "invite",
	Key:      "code",
	Fillable: []string{"code", "channel_id", "space_id", "inviter", "uses", "max_uses", "max_age", "temporary", "revoked"},
	Defaults: map[string]any{"temporary": false, "revoked": false},
	Overrides: map[string]OverrideFunc{
		"channel": func(p *Part) any {
			channel, ok := p.state.Channel(asString(p.rawValue("channel_id")))
			if !ok {
				return nil
			}
			return channel
		},
	},
}

var entityDescriptors = map[string]*Descriptor{}

// Registration happens in init: the override and setter closures call back
// into the factory, so populating the registry in the variable initializer
// would create an initialization cycle.
func init() {
	for _, desc := range []*Descriptor{
		channelDescriptor,
		messageDescriptor,
		overwriteDescriptor,
		inviteDescriptor,
		memberDescriptor,
		roleDescriptor,
		spaceDescriptor,
	} {
		entityDescriptors[desc.Tag] = desc
	}
}

var repositoryDescriptors = map[string]*RepositoryDescriptor{
	"messages": {Tag: "messages", ElemTag: "message", ScopeKey: "channel_id", Path: "channels/{channel_id}/messages"},
	"invites":  {Tag: "invites", ElemTag: "invite", ScopeKey: "channel_id", Path: "channels/{channel_id}/invites"},
	"channels": {Tag: "channels", ElemTag: "channel", ScopeKey: "space_id", Path: "spaces/{space_id}/channels"},
	"members":  {Tag: "members", ElemTag: "member", ScopeKey: "space_id", Path: "spaces/{space_id}/members"},
}
