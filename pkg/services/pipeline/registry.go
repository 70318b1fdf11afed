package pipeline

import (
	"fmt"
	"sync"
)

// Factory builds a pipeline from its dependencies
type Factory func(deps Dependencies) Pipeline

// Registry manages pipeline factories
type Registry interface {
	// Register adds a new pipeline factory
	Register(name string, factory Factory) error
	// Create instantiates the named pipeline
	Create(name string, deps Dependencies) (Pipeline, error)
	// List returns registered pipeline names in registration order
	List() []string
}

type registry struct {
	mu        sync.RWMutex
	names     []string
	factories map[string]Factory
}

// NewRegistry creates a registry pre-populated with factories
func NewRegistry(factories ...NamedFactory) (Registry, error) {
	r := &registry{factories: make(map[string]Factory)}
	for _, f := range factories {
		if err := r.Register(f.Name, f.Factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

type NamedFactory struct {
	Name    string
	Factory Factory
}

// DefaultRegistry holds the pack and stock pipelines.
func DefaultRegistry() Registry {
	return mustRegistry(NewRegistry(
		NamedFactory{Name: PackName, Factory: NewPack},
		NamedFactory{Name: StockName, Factory: NewStock},
	))
}

func mustRegistry(r Registry, err error) Registry {
	if err != nil {
		panic(fmt.Sprintf("invalid pipeline registry: %v", err))
	}
	return r
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("pipeline name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("pipeline %q is already registered", name)
	}

	r.factories[name] = factory
	r.names = append(r.names, name)
	return nil
}

func (r *registry) Create(name string, deps Dependencies) (Pipeline, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("pipeline %q is not registered", name)
	}

	return factory(deps), nil
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
