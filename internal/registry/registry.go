// Package registry implements the process-wide table of named database
// connections. A name is either absent or mapped to a fully connected
// record; callers never observe a half-constructed entry.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
	"github.com/databridge-io/databridge/pkg/logger"
)

// Record pairs the immutable descriptor of one named backing store with its
// live connection. The connection is owned by the registry and closed on
// removal.
type Record struct {
	Name string
	ID   dbcapabilities.DatabaseID
	Kind dbcapabilities.DataParadigm
	Conn adapter.Connection
}

// Summary is the handle-free projection of a record used by List.
type Summary struct {
	Name   string                      `json:"name"`
	Type   dbcapabilities.DatabaseID   `json:"type"`
	Kind   dbcapabilities.DataParadigm `json:"kind"`
	Status string                      `json:"status"`
}

// Registry maps logical connection names to live records. It is an
// explicit instance handed to every consumer; there is no package-level
// registry.
type Registry struct {
	adapters *adapter.Registry

	mu      sync.RWMutex
	records map[string]*Record
}

// New creates an empty connection registry resolving adapters from the
// given adapter registry.
func New(adapters *adapter.Registry) *Registry {
	return &Registry{
		adapters: adapters,
		records:  make(map[string]*Record),
	}
}

// Add connects to the backing store described by config and installs the
// record under config.Name. The driver handshake runs outside the registry
// lock; insertion is atomic. If the name is already taken the freshly
// opened handle is closed again and ErrDuplicateName is returned with the
// existing record untouched.
func (r *Registry) Add(ctx context.Context, config adapter.ConnectionConfig) error {
	if config.Name == "" {
		return adapter.NewInvalidInputError("name", "must not be empty")
	}
	cap, ok := dbcapabilities.Get(config.DatabaseID)
	if !ok {
		return adapter.NewInvalidInputError("type", fmt.Sprintf("unknown database type %q", config.DatabaseID))
	}

	// Fail fast before paying for a driver handshake.
	r.mu.RLock()
	_, exists := r.records[config.Name]
	r.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: %q", adapter.ErrDuplicateName, config.Name)
	}

	a, err := r.adapters.Get(config.DatabaseID)
	if err != nil {
		return err
	}
	conn, err := a.Connect(ctx, config)
	if err != nil {
		return err
	}

	record := &Record{
		Name: config.Name,
		ID:   config.DatabaseID,
		Kind: cap.Paradigm,
		Conn: conn,
	}

	r.mu.Lock()
	if _, exists := r.records[config.Name]; exists {
		r.mu.Unlock()
		conn.Close()
		return fmt.Errorf("%w: %q", adapter.ErrDuplicateName, config.Name)
	}
	r.records[config.Name] = record
	r.mu.Unlock()

	logger.FromContext(ctx).Info("connection added",
		"name", config.Name,
		"type", config.DatabaseID,
		"dsn", config.Redacted(),
	)
	return nil
}

// Remove deletes the named record and closes its connection. The close
// happens after the lock is released so slow driver shutdowns do not stall
// the registry.
func (r *Registry) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	record, ok := r.records[name]
	if ok {
		delete(r.records, name)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", adapter.ErrNotFound, name)
	}

	if err := record.Conn.Close(); err != nil {
		logger.FromContext(ctx).Warn("closing removed connection", "name", name, "error", err)
	}
	logger.FromContext(ctx).Info("connection removed", "name", name)
	return nil
}

// Lookup returns the record for the given name. The reference is valid for
// the duration of one operation; callers must not cache it across a
// concurrent Remove.
func (r *Registry) Lookup(name string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", adapter.ErrNotFound, name)
	}
	return record, nil
}

// List returns a snapshot of all registered connections sorted by name,
// without exposing handles.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	out := make([]Summary, 0, len(r.records))
	for _, record := range r.records {
		status := "connected"
		if !record.Conn.IsConnected() {
			status = "disconnected"
		}
		out = append(out, Summary{
			Name:   record.Name,
			Type:   record.ID,
			Kind:   record.Kind,
			Status: status,
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Close removes every record and closes all connections. Used on server
// shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	records := r.records
	r.records = make(map[string]*Record)
	r.mu.Unlock()

	for _, record := range records {
		record.Conn.Close()
	}
}
