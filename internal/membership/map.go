package membership

import "runtime/debug"

type MapBackend struct {
	storage map[string]int
}

func NewMapBackend() *MapBackend {
	return &MapBackend{storage: map[string]int{}}
}

func (m *MapBackend) Set(value string, id int) {
	m.storage[value] = id
}

func (m *MapBackend) Get(value string) (int, bool) {
	id, ok := m.storage[value]
	return id, ok
}

func (m *MapBackend) Len() int {
	return len(m.storage)
}

func (m *MapBackend) Cleanup() {
	m.storage = nil
	// release the index right away, it can be as large as the input column
	debug.FreeOSMemory()
}
