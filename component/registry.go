package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flowcore/microflo/errors"
)

// Factory creates one node instance of a component kind. Factories receive
// no configuration beyond the node id; any per-instance configuration a
// concrete component needs arrives later via its own Process calls (e.g. a
// ToggleBoolean's initial value is a construction-time Go option, not a
// registry concern) — this keeps the registry itself a pure name-to-kind
// lookup, matching the host protocol's CreateComponent command which only
// carries a component-kind id, not free-form configuration.
type Factory func(id NodeID) (Node, error)

// Registration holds a component kind's factory and descriptive metadata.
type Registration struct {
	Kind        string
	Description string
	Factory     Factory
}

// Registry manages component-kind factories. It is safe for concurrent use,
// though in the running system only the main loop ever calls into it.
type Registry struct {
	mu         sync.RWMutex
	factories  map[string]*Registration
}

// NewRegistry creates an empty component-kind registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]*Registration)}
}

// RegisterFactory registers a component kind. Returns an error if kind is
// already registered, or the registration is incomplete.
func (r *Registry) RegisterFactory(kind string, reg *Registration) error {
	if kind == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "kind name validation")
	}
	if reg == nil || reg.Factory == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "factory function validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		dup := fmt.Errorf("component kind %q is already registered", kind)
		return errors.WrapInvalid(dup, "Registry", "RegisterFactory", "duplicate kind check")
	}
	r.factories[kind] = reg
	return nil
}

// Create instantiates a node of the named kind, passing id to its factory.
// The returned node has not yet been bound to a network — AddNode does that.
func (r *Registry) Create(kind string, id NodeID) (Node, error) {
	r.mu.RLock()
	reg, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		unknown := fmt.Errorf("component kind %q is not registered", kind)
		return nil, errors.WrapInvalid(unknown, "Registry", "Create", "kind lookup")
	}
	node, err := reg.Factory(id)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Registry", "Create", "factory invocation")
	}
	return node, nil
}

// Kinds returns every registered component kind name, sorted for
// deterministic listing (used by the host protocol's list-components reply).
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
