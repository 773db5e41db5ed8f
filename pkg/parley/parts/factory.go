package parts

import (
	"github.com/parleychat/parley-go/pkg/parley/errors"
	"github.com/parleychat/parley-go/pkg/parley/transport"
)

// Factory builds parts and repositories from raw payloads, wiring in the
// transport and state back-references. Construction never touches the network.
type Factory struct {
	transport transport.Transport
	state     State
}

func NewFactory(t transport.Transport, state State) *Factory {
	return &Factory{
		transport: t,
		state:     state,
	}
}

// Create dispatches on the type tag: entity tags build a part, repository
// tags build a scoped repository, anything else fails.
func (f *Factory) Create(tag string, raw transport.Payload, created bool) (any, error) {
	if _, ok := entityDescriptors[tag]; ok {
		return f.BuildEntity(tag, raw, created)
	}

	if _, ok := repositoryDescriptors[tag]; ok {
		return f.BuildRepository(tag, raw)
	}

	return nil, errors.NewUnsupportedTypeError(tag)
}

func (f *Factory) BuildEntity(tag string, raw transport.Payload, created bool) (*Part, error) {
	desc, ok := entityDescriptors[tag]
	if !ok {
		return nil, errors.NewUnsupportedTypeError(tag)
	}

	p := &Part{
		desc:      desc,
		raw:       transport.Payload{},
		created:   created,
		factory:   f,
		transport: f.transport,
		state:     f.state,
	}

	p.fill(raw)

	if desc.AfterConstruct != nil {
		desc.AfterConstruct(p)
	}

	return p, nil
}

func (f *Factory) BuildRepository(tag string, scope transport.Payload) (*Repository, error) {
	desc, ok := repositoryDescriptors[tag]
	if !ok {
		return nil, errors.NewUnsupportedTypeError(tag)
	}

	return newRepository(desc, asString(scope[desc.ScopeKey]), f.transport, f), nil
}
