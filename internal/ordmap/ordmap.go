// Package ordmap provides a map that remembers insertion order.
//
// Meta tag collections need deterministic emission order across renders, so
// a plain Go map is not enough.
package ordmap

// Map is an insertion-ordered map. Writing to an existing key replaces the
// value but keeps the key's original position.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map[K, V]) Delete(key K) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

func (m *Map[K, V]) Clear() {
	m.keys = m.keys[:0]
	clear(m.values)
}

// All iterates over entries in insertion order.
func (m *Map[K, V]) All(yield func(K, V) bool) {
	for _, k := range m.keys {
		if !yield(k, m.values[k]) {
			return
		}
	}
}
