// Package grove is a reflection-based dependency-resolution runtime for Go.
//
// Services are described declaratively in a [Registry] — how to build each
// one and how long its instances live. [Registry.Build] validates the whole
// graph up front (missing registrations, circular dependencies) and returns
// the root [Container], which resolves fully-constructed instances on demand
// with their transitive dependencies satisfied.
//
// # Quick Start
//
//	r := grove.New()
//	r.Register(grove.TypeOf[*Logger]()).UseConstructor(NewLogger).Apply()
//	r.Register(grove.TypeOf[*Database]()).UseConstructor(NewDatabase).Apply()
//
//	root, err := r.Build()
//	if err != nil {
//		// the graph is incomplete or cyclic
//	}
//
//	db, err := grove.Get[*Database](root)
//
// # Lifetimes
//
// [Singleton] (default) — one instance shared across the whole scope tree,
// cached at the root on first resolution.
//
// [Scoped] — one instance per scope subtree: the resolving scope and scopes
// created from it share the instance, siblings do not.
//
// [Transient] — a fresh instance on every [Container.Get] call.
//
// # Scopes
//
// [Container.CreateScope] spawns a child scope sharing the same frozen
// registration map with an empty instance cache. Scopes form a tree;
// resolution searches the cache chain from the requesting scope up to the
// root. A scope may locally replace a registration with a fixed instance via
// [Container.Override]; the override is visible to that scope and its
// descendants only.
//
// # Collections
//
// A slice- or map-shaped service can be populated with other registered
// services after construction:
//
//	r.Register(grove.TypeOf[[]Reporter]()).
//		UseFactory(func(*grove.Container) (any, error) { return []Reporter{}, nil }).
//		Append(grove.TypeOf[*CPUReporter](), grove.TypeOf[*MemReporter]()).
//		Apply()
//
// The container itself is always resolvable: Build inserts a singleton
// registration for *[Container] unless one was registered explicitly.
package grove
