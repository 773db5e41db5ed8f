package parts

import (
	"fmt"
	"sync"

	"github.com/parleychat/parley-go/pkg/parley/transport"
)

// Part is the typed local representation of one server-owned resource
// instance. Raw attributes hold persisted fields as last received or set;
// derived attributes are computed through the kind's override table on read.
//
// Concurrent mutation calls on the same part are not serialized here. They
// race at the transport and the last response to arrive wins the cache;
// callers that need at-most-one semantics must serialize themselves.
type Part struct {
	desc *Descriptor

	mu      sync.RWMutex
	raw     transport.Payload
	created bool
	repos   map[string]*Repository

	factory   *Factory
	transport transport.Transport
	state     State
}

func (p *Part) Kind() Kind {
	return p.desc.Kind
}

func (p *Part) Tag() string {
	return p.desc.Tag
}

// ID returns the part's key attribute as a string (usually "id"; invites key
// on "code").
func (p *Part) ID() string {
	return asString(p.rawValue(p.desc.key()))
}

// Created reports whether the resource exists remotely. It starts false for
// locally constructed parts and never reverts once set.
func (p *Part) Created() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.created
}

func (p *Part) markCreated() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = true
}

// Get resolves an attribute: a computed override wins, then the raw stored
// value, then the kind default.
func (p *Part) Get(field string) any {
	if override, ok := p.desc.Overrides[field]; ok {
		return override(p)
	}

	if v := p.rawValue(field); v != nil {
		return v
	}

	return p.desc.Defaults[field]
}

// Set writes an attribute. Custom setters run their side effects; everything
// else is a plain raw write. Fields outside the fillable set are dropped.
func (p *Part) Set(field string, value any) {
	if !p.desc.fillable(field) {
		return
	}

	if setter, ok := p.desc.Setters[field]; ok {
		setter(p, value)
		return
	}

	p.setRaw(field, value)
}

// Raw returns a copy of the raw attributes, which double as the resource's
// creation payload (any buffered sub-resources included).
func (p *Part) Raw() transport.Payload {
	p.mu.RLock()
	defer p.mu.RUnlock()

	raw := make(transport.Payload, len(p.raw))
	for k, v := range p.raw {
		raw[k] = v
	}
	return raw
}

// Repository returns the child repository declared under the given field,
// creating it on first access. It lives as long as the part does.
func (p *Part) Repository(field string) *Repository {
	spec, ok := p.desc.Repositories[field]
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if repo, ok := p.repos[field]; ok {
		// a repo first obtained before creation was scoped before the server
		// assigned the owner id
		repo.rescope(asString(p.raw[spec.OwnerField]))
		return repo
	}

	rdesc := repositoryDescriptors[spec.Tag]
	scope := transport.Payload{rdesc.ScopeKey: p.raw[spec.OwnerField]}

	repo, err := p.factory.BuildRepository(spec.Tag, scope)
	if err != nil {
		return nil
	}

	if p.repos == nil {
		p.repos = map[string]*Repository{}
	}
	p.repos[field] = repo
	return repo
}

func (p *Part) fill(raw transport.Payload) {
	for _, field := range p.desc.Fillable {
		value, ok := raw[field]
		if !ok {
			continue
		}

		if setter, ok := p.desc.Setters[field]; ok {
			setter(p, value)
			continue
		}

		p.setRaw(field, value)
	}
}

func (p *Part) rawValue(field string) any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.raw[field]
}

func (p *Part) setRaw(field string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw[field] = value
}

func (p *Part) appendRaw(field string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, _ := p.raw[field].([]any)
	p.raw[field] = append(list, value)
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		// snowflake ids decoded from JSON numbers lose precision as floats,
		// so the API always sends them as strings; this is a fallback only
		return fmt.Sprintf("%.0f", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// normalizeID accepts either a raw id or an entity reference.
func normalizeID(ref any) (string, bool) {
	switch r := ref.(type) {
	case string:
		return r, r != ""
	case *Part:
		return r.ID(), r.ID() != ""
	case *Message:
		return r.ID(), r.ID() != ""
	case *Channel:
		return r.ID(), r.ID() != ""
	default:
		return "", false
	}
}
