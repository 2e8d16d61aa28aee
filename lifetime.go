package grove

// Lifetime controls how many instances of a registration the container
// creates and where they are cached.
type Lifetime int

const (
	// Singleton is the default lifetime. One instance is shared across the
	// whole scope tree; it is cached at the root on first resolution, no
	// matter which scope requested it.
	Singleton Lifetime = iota

	// Scoped caches one instance per scope subtree. The resolving scope and
	// any scope created from it share the instance; sibling scopes each get
	// their own.
	Scoped

	// Transient means a new instance is constructed on every
	// [Container.Get] call. Nothing is cached.
	Transient
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}
