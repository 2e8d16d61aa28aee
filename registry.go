package grove

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry accumulates registrations and, once the graph is complete,
// produces the root [Container] with [Registry.Build]. Use [New] to create
// one.
type Registry struct {
	mu sync.Mutex

	registrations map[Identifier]*Registration
	logger        *zap.Logger
	built         bool
}

// New creates an empty [Registry] ready for registration.
func New(opts ...Option) *Registry {
	r := &Registry{
		registrations: make(map[Identifier]*Registration),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register starts a registration for id. The returned builder must be
// finished with [RegistrationBuilder.Apply]; nothing is recorded until then.
func (r *Registry) Register(id Identifier) *RegistrationBuilder {
	b := &RegistrationBuilder{
		registry: r,
		reg:      &Registration{id: id, lifetime: Singleton},
	}
	if id == nil {
		b.fail(errors.New("identifier cannot be nil"))
	}
	return b
}

// apply submits a finished registration under its identifier.
func (r *Registry) apply(reg *Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return ErrAlreadyBuilt
	}

	if _, exists := r.registrations[reg.id]; exists {
		return fmt.Errorf("%w: %s", ErrRegistrationExists, reg.id)
	}

	r.registrations[reg.id] = reg
	r.logger.Debug("registration applied",
		zap.Stringer("id", reg.id),
		zap.Stringer("lifetime", reg.lifetime),
	)
	return nil
}

// Remove deletes the registration for id. Removing an identifier that was
// never registered returns [ErrRegistrationNotFound].
func (r *Registry) Remove(id Identifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return ErrAlreadyBuilt
	}

	if _, exists := r.registrations[id]; !exists {
		return fmt.Errorf("%w: %s", ErrRegistrationNotFound, id)
	}

	delete(r.registrations, id)
	return nil
}

// IsRegistered reports whether a registration exists for id.
func (r *Registry) IsRegistered(id Identifier) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.registrations[id]
	return exists
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

type buildState int

const (
	unvisited buildState = iota
	visiting
	visited
)

// Build validates the full dependency graph — detecting missing
// registrations and circular dependencies — and returns the root container
// over a frozen copy of the map. A default singleton registration for
// *Container (resolving to the requesting scope) is inserted unless the
// caller registered that identifier themselves. Being a singleton, the
// first scope to resolve *Container is the one cached for everybody:
// resolve it from the root, or register your own, if that matters.
//
// A failed Build leaves the registry mutable so the graph can be fixed and
// Build called again. The first successful Build freezes the registry;
// further Register, Remove or Build calls return [ErrAlreadyBuilt].
func (r *Registry) Build() (*Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return nil, ErrAlreadyBuilt
	}

	if err := r.checkMissing(); err != nil {
		return nil, err
	}

	// A single state map is shared across every start node so a fully
	// explored node is never re-walked. This bounds the traversal at O(V+E)
	// and keeps it terminating even when the cycle does not loop back to
	// the start node.
	states := make(map[Identifier]buildState)
	for id := range r.registrations {
		if err := r.checkCycles(id, states, nil); err != nil {
			return nil, err
		}
	}

	frozen := make(map[Identifier]*Registration, len(r.registrations)+1)
	for id, reg := range r.registrations {
		frozen[id] = reg
	}

	containerID := TypeOf[*Container]()
	if _, ok := frozen[containerID]; !ok {
		frozen[containerID] = &Registration{
			id:       containerID,
			lifetime: Singleton,
			kind:     strategyFactory,
			factory:  func(c *Container) (any, error) { return c, nil },
		}
	}

	root := &Container{
		id:            uuid.NewString(),
		registrations: frozen,
		instances:     make(map[Identifier]any),
		logger:        r.logger,
	}

	r.built = true
	r.logger.Debug("graph validated",
		zap.Int("registrations", len(frozen)),
		zap.String("root", root.id),
	)
	return root, nil
}

// checkMissing verifies that every dependency of every registration is a
// registered identifier. All missing dependencies of the offending
// registration are reported together.
func (r *Registry) checkMissing() error {
	for id, reg := range r.registrations {
		var missing []string
		for _, dep := range reg.deps {
			if _, ok := r.registrations[dep]; !ok {
				missing = append(missing, dep.String())
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s requires [%s]",
				ErrMissingDependencies, id, strings.Join(missing, ", "))
		}
	}
	return nil
}

// checkCycles walks the dependency graph depth-first. A node on the current
// path seen again is a cycle; a node already fully explored is skipped.
func (r *Registry) checkCycles(id Identifier, states map[Identifier]buildState, stack []Identifier) error {
	switch states[id] {
	case visiting:
		return r.circularError(id, stack)
	case visited:
		return nil
	}

	states[id] = visiting
	stack = append(stack, id)

	for _, dep := range r.registrations[id].deps {
		if err := r.checkCycles(dep, states, stack); err != nil {
			return err
		}
	}

	states[id] = visited
	return nil
}

// circularError reports the cycle as the chain from the first repeated node
// back to itself, in traversal order.
func (r *Registry) circularError(id Identifier, stack []Identifier) error {
	start := 0
	for i, s := range stack {
		if s == id {
			start = i
			break
		}
	}

	chain := make([]string, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		chain = append(chain, s.String())
	}
	chain = append(chain, id.String())

	return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}
