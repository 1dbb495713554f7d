package container

// OrderedMap is a mapping that preserves the insertion order of its keys.
// Overwriting an existing key keeps its original position.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		values: make(map[K]V),
	}
}

// Set stores the value under the key.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under the key and whether it exists.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether the key exists.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes the key and reports whether it was present.
func (m *OrderedMap[K, V]) Delete(key K) bool {
	if _, exists := m.values[key]; !exists {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.values)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns the values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, 0, len(m.keys))
	for _, key := range m.keys {
		values = append(values, m.values[key])
	}
	return values
}

// Clone returns a shallow copy preserving key order.
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	clone := &OrderedMap[K, V]{
		keys:   make([]K, len(m.keys)),
		values: make(map[K]V, len(m.values)),
	}
	copy(clone.keys, m.keys)
	for key, value := range m.values {
		clone.values[key] = value
	}
	return clone
}
