package collections

import "sync"

// Ordered is a keyed container that remembers insertion order. Setting an
// already present key replaces the value in place without moving it.
type Ordered[V any] struct {
	mu    sync.RWMutex
	keys  []string
	items map[string]V
}

func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{
		items: map[string]V{},
	}
}

func (o *Ordered[V]) Set(key string, value V) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.items[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.items[key] = value
}

func (o *Ordered[V]) Get(key string) (V, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.items[key]
	return v, ok
}

func (o *Ordered[V]) Delete(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.items[key]; !exists {
		return
	}

	delete(o.items, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (o *Ordered[V]) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.items)
}

func (o *Ordered[V]) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Ordered[V]) Values() []V {
	o.mu.RLock()
	defer o.mu.RUnlock()

	values := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		values = append(values, o.items[k])
	}
	return values
}

func (o *Ordered[V]) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.keys = o.keys[:0]
	o.items = map[string]V{}
}
