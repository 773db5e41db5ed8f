package parts

import (
	"context"
	"sync"

	"github.com/parleychat/parley-go/pkg/parley/collections"
	"github.com/parleychat/parley-go/pkg/parley/transport"
)

// Repository is a keyed collection of parts of one kind, scoped to a parent
// (all messages of one channel, all channels of one space). It owns its
// entries: pushing a duplicate id replaces the held value. Entries are only
// ever changed by explicit fetch, push and delete calls.
type Repository struct {
	desc *RepositoryDescriptor

	mu    sync.RWMutex
	scope string

	transport transport.Transport
	factory   *Factory
	col       *collections.Ordered[*Part]
}

func newRepository(desc *RepositoryDescriptor, scope string, t transport.Transport, f *Factory) *Repository {
	return &Repository{
		desc:      desc,
		scope:     scope,
		transport: t,
		factory:   f,
		col:       collections.NewOrdered[*Part](),
	}
}

func (r *Repository) Tag() string {
	return r.desc.Tag
}

func (r *Repository) Scope() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scope
}

// rescope fills in the parent scope for a repository obtained before the
// owning part learned its server-assigned id. A scope that is already set
// never changes.
func (r *Repository) rescope(scope string) {
	if scope == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.scope == "" {
		r.scope = scope
	}
}

func (r *Repository) Push(p *Part) {
	r.col.Set(p.ID(), p)
}

func (r *Repository) Get(id string) (*Part, bool) {
	return r.col.Get(id)
}

func (r *Repository) All() []*Part {
	return r.col.Values()
}

func (r *Repository) Len() int {
	return r.col.Len()
}

func (r *Repository) Remove(id string) {
	r.col.Delete(id)
}

// Fetch repopulates the repository from the remote collection.
func (r *Repository) Fetch(ctx context.Context) ([]*Part, error) {
	payload, err := r.transport.Get(ctx, r.path())
	if err != nil {
		return nil, err
	}

	fetched := []*Part{}
	for _, item := range transport.Items(payload) {
		p, err := r.factory.BuildEntity(r.desc.ElemTag, item, true)
		if err != nil {
			return nil, err
		}
		fetched = append(fetched, p)
	}

	r.col.Clear()
	for _, p := range fetched {
		r.Push(p)
	}

	return fetched, nil
}

// Create posts a new resource to the collection and caches the result.
func (r *Repository) Create(ctx context.Context, raw transport.Payload) (*Part, error) {
	payload, err := r.transport.Post(ctx, r.path(), raw)
	if err != nil {
		return nil, err
	}

	p, err := r.factory.BuildEntity(r.desc.ElemTag, payload, true)
	if err != nil {
		return nil, err
	}

	r.Push(p)
	return p, nil
}

// Delete removes a resource remotely, then drops it from the cache. The cache
// is untouched when the remote call fails.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.transport.Delete(ctx, r.path()+"/"+id)
	if err != nil {
		return err
	}

	r.Remove(id)
	return nil
}

func (r *Repository) path() string {
	return transport.ExpandPath(r.desc.Path, map[string]string{r.desc.ScopeKey: r.Scope()})
}
