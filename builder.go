package grove

import (
	"errors"
	"fmt"
	"reflect"
)

// RegistrationBuilder accumulates a single [Registration]. Obtain one from
// [Registry.Register], describe the service, then submit it with
// [RegistrationBuilder.Apply]:
//
//	err := r.Register(grove.TypeOf[*Database]()).
//		UseConstructor(NewDatabase).
//		WithLifetime(grove.Scoped).
//		Apply()
//
// Exactly one of UseConstructor, UseFactory or UseInstance must be called
// before Apply.
type RegistrationBuilder struct {
	registry *Registry
	reg      *Registration

	strategies  int
	sliceShaped bool
	mapShaped   bool
	err         error
}

// fail records the first builder error; later calls keep chaining but the
// registration will never be applied.
func (b *RegistrationBuilder) fail(err error) *RegistrationBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// UseConstructor sets a constructor creation strategy. The constructor must
// be a function with the signature func(deps...) T or func(deps...) (T, error).
// Its parameter types become the registration's constructor dependencies and
// are resolved positionally at Get time.
func (b *RegistrationBuilder) UseConstructor(fn any) *RegistrationBuilder {
	if fn == nil {
		return b.fail(errors.New("constructor must be a function"))
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return b.fail(errors.New("constructor must be a function"))
	}

	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return b.fail(errors.New("constructor must return (T) or (T, error)"))
	}

	if typ.NumOut() == 2 {
		errType := reflect.TypeOf((*error)(nil)).Elem()
		if !typ.Out(1).Implements(errType) {
			return b.fail(errors.New("second return value must implement error"))
		}
	}

	deps := make([]Identifier, typ.NumIn())
	for i := 0; i < typ.NumIn(); i++ {
		deps[i] = typ.In(i)
	}

	b.strategies++
	b.reg.kind = strategyConstructor
	b.reg.ctor = val
	b.reg.ctorType = typ
	b.reg.ctorDeps = deps
	return b
}

// UseFactory sets a factory creation strategy. The factory is invoked with
// the resolving container on every construction.
func (b *RegistrationBuilder) UseFactory(f Factory) *RegistrationBuilder {
	if f == nil {
		return b.fail(errors.New("factory cannot be nil"))
	}

	b.strategies++
	b.reg.kind = strategyFactory
	b.reg.factory = f
	return b
}

// UseInstance sets a pre-built instance as the creation strategy. Instance
// registrations behave as singletons regardless of the declared lifetime:
// the value is already the single shared object.
func (b *RegistrationBuilder) UseInstance(v any) *RegistrationBuilder {
	if v == nil {
		return b.fail(errors.New("instance cannot be nil"))
	}

	b.strategies++
	b.reg.kind = strategyInstance
	b.reg.instance = v
	return b
}

// WithLifetime sets the [Lifetime] of the registration. The default is
// [Singleton].
func (b *RegistrationBuilder) WithLifetime(l Lifetime) *RegistrationBuilder {
	b.reg.lifetime = l
	return b
}

// Append declares collection dependencies for a slice-shaped service. After
// the primary instance is constructed, each identifier is resolved and
// appended in registration order.
func (b *RegistrationBuilder) Append(ids ...Identifier) *RegistrationBuilder {
	for _, id := range ids {
		if id == nil {
			return b.fail(errors.New("collection identifier cannot be nil"))
		}
		b.reg.collection = append(b.reg.collection, collectionEntry{id: id})
	}
	if len(ids) > 0 {
		b.sliceShaped = true
	}
	return b
}

// Insert declares a keyed collection dependency for a map-shaped service.
// After the primary instance is constructed, the identifier is resolved and
// stored under key.
func (b *RegistrationBuilder) Insert(key any, id Identifier) *RegistrationBuilder {
	if key == nil {
		return b.fail(errors.New("collection key cannot be nil"))
	}
	if id == nil {
		return b.fail(errors.New("collection identifier cannot be nil"))
	}
	b.reg.collection = append(b.reg.collection, collectionEntry{key: key, id: id})
	b.mapShaped = true
	return b
}

// Apply validates the accumulated registration and submits it to the
// registry. Registering the same identifier twice returns
// [ErrRegistrationExists]; registering after Build returns [ErrAlreadyBuilt].
func (b *RegistrationBuilder) Apply() error {
	if b.err != nil {
		return b.err
	}

	if b.strategies != 1 {
		return fmt.Errorf("%w: %s must have exactly one creation strategy, has %d",
			ErrInvalidRegistration, b.reg.id, b.strategies)
	}

	if b.sliceShaped && b.mapShaped {
		return fmt.Errorf("%w: %s mixes positional and keyed collection dependencies",
			ErrInvalidRegistration, b.reg.id)
	}

	// What the strategy produces must be usable under the identifier it is
	// registered for. Factories return any and cannot be checked here; the
	// generic Get helpers catch those at resolution time.
	switch b.reg.kind {
	case strategyConstructor:
		if out := b.reg.ctorType.Out(0); !out.AssignableTo(b.reg.id) {
			return fmt.Errorf("%w: constructor for %s returns %s",
				ErrInvalidRegistration, b.reg.id, out)
		}
	case strategyInstance:
		if it := reflect.TypeOf(b.reg.instance); !it.AssignableTo(b.reg.id) {
			return fmt.Errorf("%w: instance for %s has type %s",
				ErrInvalidRegistration, b.reg.id, it)
		}
	}

	deps := make([]Identifier, 0, len(b.reg.ctorDeps)+len(b.reg.collection))
	deps = append(deps, b.reg.ctorDeps...)
	for _, entry := range b.reg.collection {
		deps = append(deps, entry.id)
	}
	b.reg.deps = deps

	return b.registry.apply(b.reg)
}
