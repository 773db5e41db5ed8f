package parts

import "github.com/parleychat/parley-go/pkg/parley/collections"

// State is the lookup context a part uses to resolve sibling entities, e.g. a
// message resolving its channel or an invite its channel. Parts hold it as a
// plain reference and never keep it alive on their own.
type State interface {
	Channel(id string) (*Channel, bool)
	Space(id string) (*Part, bool)
	Member(id string) (*Part, bool)
	Role(id string) (*Part, bool)
}

// MemoryState is the in-process State used by the client: top level
// collections of everything the connection has seen.
type MemoryState struct {
	channels *collections.Ordered[*Channel]
	spaces   *collections.Ordered[*Part]
	members  *collections.Ordered[*Part]
	roles    *collections.Ordered[*Part]
}

func NewMemoryState() *MemoryState {
	return &MemoryState{
		channels: collections.NewOrdered[*Channel](),
		spaces:   collections.NewOrdered[*Part](),
		members:  collections.NewOrdered[*Part](),
		roles:    collections.NewOrdered[*Part](),
	}
}

func (s *MemoryState) Channel(id string) (*Channel, bool) {
	return s.channels.Get(id)
}

func (s *MemoryState) Space(id string) (*Part, bool) {
	return s.spaces.Get(id)
}

func (s *MemoryState) Member(id string) (*Part, bool) {
	return s.members.Get(id)
}

func (s *MemoryState) Role(id string) (*Part, bool) {
	return s.roles.Get(id)
}

func (s *MemoryState) PutChannel(c *Channel) {
	s.channels.Set(c.ID(), c)
}

func (s *MemoryState) PutSpace(p *Part) {
	s.spaces.Set(p.ID(), p)
}

func (s *MemoryState) PutMember(p *Part) {
	s.members.Set(p.ID(), p)
}

func (s *MemoryState) PutRole(p *Part) {
	s.roles.Set(p.ID(), p)
}
