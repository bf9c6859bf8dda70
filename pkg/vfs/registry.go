package vfs

import (
	"fmt"
	"slices"
	"sync"

	"github.com/litebase/memvfs/pkg/buffer"
)

// AnonymousName is the name SQLite uses for temporary files. Files with this
// name never enter the registry.
const AnonymousName = ""

// Ownership records who is responsible for a buffer once the last handle
// referencing it is closed.
type Ownership int

const (
	// Owned buffers were allocated by the environment and are freed by it.
	Owned Ownership = iota
	// Borrowed buffers were supplied by the opener and are handed back.
	Borrowed
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	}

	return fmt.Sprintf("Ownership(%d)", int(o))
}

type RegistryEntry struct {
	buffer    *buffer.Buffer
	name      string
	ownership Ownership
	refCount  int
}

// Released describes the state of an entry after a reference was dropped.
type Released struct {
	Buffer    *buffer.Buffer
	Ownership Ownership
	Remaining int
}

// Registry maps file names to shared buffers. All structural changes happen
// under a single mutex that is never held across buffer I/O.
type Registry struct {
	entries map[string]*RegistryEntry
	limit   int64
	mutex   *sync.Mutex
}

// NewRegistry creates an empty registry. Buffers entering the registry are
// bounded to limit bytes; a limit <= 0 keeps buffer.DefaultLimit.
func NewRegistry(limit int64) *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
		limit:   limit,
		mutex:   &sync.Mutex{},
	}
}

// Acquire takes a reference on name. When name is already registered the
// existing buffer is returned and supplied is ignored, so the first opener's
// buffer wins. Otherwise an entry is created from supplied, or from a new
// empty buffer when supplied is nil.
func (r *Registry) Acquire(name string, supplied *buffer.Buffer) (*buffer.Buffer, error) {
	if name == AnonymousName {
		return nil, ErrAnonymousName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if entry, ok := r.entries[name]; ok {
		entry.refCount++

		return entry.buffer, nil
	}

	entry := &RegistryEntry{
		buffer:    supplied,
		name:      name,
		ownership: Borrowed,
		refCount:  1,
	}

	if supplied == nil {
		entry.buffer = buffer.New()
		entry.ownership = Owned
	}

	entry.buffer.SetLimit(r.limit)
	r.entries[name] = entry

	return entry.buffer, nil
}

func (r *Registry) Contains(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, ok := r.entries[name]

	return ok
}

func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.entries)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mutex.Lock()
	names := make([]string, 0, len(r.entries))

	for name := range r.entries {
		names = append(names, name)
	}

	r.mutex.Unlock()

	slices.Sort(names)

	return names
}

// RefCount returns the number of open references to name, or 0 when name is
// not registered.
func (r *Registry) RefCount(name string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if entry, ok := r.entries[name]; ok {
		return entry.refCount
	}

	return 0
}

// Release drops a reference on name. The entry is removed as soon as its
// reference count reaches zero. The buffer itself is not touched; the caller
// decides what to do with it based on the reported ownership.
func (r *Registry) Release(name string) (Released, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, ok := r.entries[name]

	if !ok {
		return Released{}, fmt.Errorf("%w: %q is not registered", ErrOpen, name)
	}

	if entry.refCount <= 0 {
		delete(r.entries, name)

		return Released{}, fmt.Errorf("%w: reference count underflow for %q", ErrOpen, name)
	}

	entry.refCount--

	if entry.refCount == 0 {
		delete(r.entries, name)
	}

	return Released{
		Buffer:    entry.buffer,
		Ownership: entry.ownership,
		Remaining: entry.refCount,
	}, nil
}
