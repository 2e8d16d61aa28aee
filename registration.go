package grove

import "reflect"

// strategy discriminates how a registration produces its primary instance.
// Exactly one strategy is set per registration; the builder enforces this
// when the registration is submitted.
type strategy int

const (
	strategyNone strategy = iota
	strategyConstructor
	strategyFactory
	strategyInstance
)

// Factory builds an instance using the resolving container. The container
// passed in is the scope [Container.Get] was called on, so anything the
// factory resolves obeys the caller's scoping rules.
type Factory func(c *Container) (any, error)

// collectionEntry is one post-construction push into a slice- or map-shaped
// service. key is nil for slice entries.
type collectionEntry struct {
	key any
	id  Identifier
}

// Registration describes how to build one service and how long to keep its
// instances. Registrations are produced by [RegistrationBuilder.Apply] and
// immutable afterwards.
type Registration struct {
	id       Identifier
	lifetime Lifetime

	kind     strategy
	ctor     reflect.Value
	ctorType reflect.Type
	ctorDeps []Identifier
	factory  Factory
	instance any

	collection []collectionEntry

	// deps is ctorDeps followed by the collection identifiers, in that
	// order. It is the graph validator's only input.
	deps []Identifier
}
