package grove

import "reflect"

// Identifier is the key under which a service is registered and resolved.
// Two identifiers denote the same service iff they are the same
// [reflect.Type]; identity, equality and hashing come from the type system.
type Identifier = reflect.Type

// TypeOf returns the [Identifier] for T. It is the canonical way to name a
// service at registration and resolution sites:
//
//	id := grove.TypeOf[*Database]()
func TypeOf[T any]() Identifier {
	return reflect.TypeOf((*T)(nil)).Elem()
}
