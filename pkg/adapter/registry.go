package adapter

import (
	"fmt"
	"sync"

	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// Registry manages the registration and retrieval of database adapters.
type Registry struct {
	adapters map[dbcapabilities.DatabaseID]DatabaseAdapter
	mu       sync.RWMutex
}

// NewRegistry creates a new adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[dbcapabilities.DatabaseID]DatabaseAdapter),
	}
}

// Register registers a database adapter. An adapter already registered for
// the same database type is replaced.
func (r *Registry) Register(adapter DatabaseAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[adapter.Type()] = adapter
}

// Get retrieves a registered adapter by database type.
func (r *Registry) Get(id dbcapabilities.DatabaseID) (DatabaseAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[id]
	if !ok {
		return nil, NewInvalidInputError("type", fmt.Sprintf("no adapter registered for database type %q", id))
	}
	return a, nil
}

// GetByName retrieves a registered adapter by database name or alias.
func (r *Registry) GetByName(name string) (DatabaseAdapter, error) {
	id, ok := dbcapabilities.ParseID(name)
	if !ok {
		return nil, NewInvalidInputError("type", fmt.Sprintf("unknown database type %q", name))
	}
	return r.Get(id)
}

// IsRegistered checks if an adapter is registered for the database type.
func (r *Registry) IsRegistered(id dbcapabilities.DatabaseID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[id]
	return ok
}

// ListRegistered returns all registered database types.
func (r *Registry) ListRegistered() []dbcapabilities.DatabaseID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]dbcapabilities.DatabaseID, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	return ids
}

// globalRegistry is the default adapter registry populated by the database
// packages' init functions.
var globalRegistry = NewRegistry()

// Register registers an adapter in the global registry.
func Register(adapter DatabaseAdapter) {
	globalRegistry.Register(adapter)
}

// Get retrieves an adapter from the global registry.
func Get(id dbcapabilities.DatabaseID) (DatabaseAdapter, error) {
	return globalRegistry.Get(id)
}

// GetByName retrieves an adapter from the global registry by name or alias.
func GetByName(name string) (DatabaseAdapter, error) {
	return globalRegistry.GetByName(name)
}

// GlobalRegistry returns the global adapter registry.
func GlobalRegistry() *Registry {
	return globalRegistry
}
