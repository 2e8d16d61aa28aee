package grove

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Container is one node in a tree of resolution scopes. The root is created
// by [Registry.Build]; child nodes come from [Container.CreateScope] and
// share the root's frozen registration map while keeping their own instance
// cache. Resolution walks the cache chain towards the root, so singletons
// and inherited scoped instances are found wherever they were first cached.
type Container struct {
	id     string
	parent *Container
	logger *zap.Logger

	// registrations is the frozen map produced by Build. It is shared by
	// every node in the tree and never mutated afterwards, which makes
	// concurrent reads lock-free.
	registrations map[Identifier]*Registration

	mu sync.RWMutex

	// overrides is this node's scope-local registration overlay, consulted
	// before the shared map. Lazily allocated by Override.
	overrides map[Identifier]*Registration

	// instances caches resolved instances local to this node.
	instances map[Identifier]any
}

// ID returns the unique identity of this scope node. Useful for correlating
// request-scoped diagnostics.
func (c *Container) ID() string { return c.id }

// CreateScope returns a new child scope. The child shares the registration
// map; its instance cache starts empty and no instances are copied.
func (c *Container) CreateScope() *Container {
	child := &Container{
		id:            uuid.NewString(),
		parent:        c,
		logger:        c.logger,
		registrations: c.registrations,
		instances:     make(map[Identifier]any),
	}

	c.logger.Debug("scope created",
		zap.String("scope", child.id),
		zap.String("parent", c.id),
	)
	return child
}

// Override replaces the registration for id, as seen from this node and its
// descendants, with a scoped instance-based registration, and seeds this
// node's cache with the instance. Sibling scopes and ancestors never observe
// the override; a scope elsewhere in the tree that already cached id keeps
// its earlier instance. A second Override of the same identifier on the same
// node replaces the first.
//
// Override is a scoped-container operation; calling it on the root returns
// [ErrOverrideOnRoot].
func (c *Container) Override(id Identifier, instance any) error {
	if c.parent == nil {
		return ErrOverrideOnRoot
	}

	reg := &Registration{
		id:       id,
		lifetime: Scoped,
		kind:     strategyInstance,
		instance: instance,
	}

	c.mu.Lock()
	if c.overrides == nil {
		c.overrides = make(map[Identifier]*Registration)
	}
	c.overrides[id] = reg
	c.instances[id] = instance
	c.mu.Unlock()

	c.logger.Debug("registration overridden",
		zap.Stringer("id", id),
		zap.String("scope", c.id),
	)
	return nil
}

// lookup returns the registration visible from this node: override overlays
// are consulted from this node up to the root before falling through to the
// shared map. Returns nil when the identifier is unknown.
func (c *Container) lookup(id Identifier) *Registration {
	for n := c; n != nil; n = n.parent {
		n.mu.RLock()
		reg, ok := n.overrides[id]
		n.mu.RUnlock()
		if ok {
			return reg
		}
	}
	return c.registrations[id]
}

// cached walks the instance-cache chain from this node to the root and
// returns the first hit.
func (c *Container) cached(id Identifier) (any, bool) {
	for n := c; n != nil; n = n.parent {
		n.mu.RLock()
		inst, ok := n.instances[id]
		n.mu.RUnlock()
		if ok {
			return inst, true
		}
	}
	return nil, false
}

// root returns the node with no parent.
func (c *Container) root() *Container {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// insert stores an instance in this node's cache unless another resolution
// got there first, returning whichever instance won. Losing constructions
// are discarded so concurrent Gets converge on a single instance.
func (c *Container) insert(id Identifier, inst any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.instances[id]; ok {
		return existing
	}
	c.instances[id] = inst
	return inst
}
