package grove

import (
	"fmt"
	"reflect"
)

// ---------------------------------------------------------------------------
// Container methods
// ---------------------------------------------------------------------------

// Get resolves the instance for id relative to this scope.
//
// Non-transient registrations are served from the cache chain (this node
// first, then its ancestors up to the root) before anything is constructed.
// On construction, singletons are cached at the root — a singleton first
// resolved deep in a scope chain lives for the root's lifetime even if the
// resolving subtree is later discarded — scoped instances at this node, and
// transients not at all. A failed resolution never writes to any cache.
func (c *Container) Get(id Identifier) (any, error) {
	reg := c.lookup(id)
	if reg == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegistrationNotFound, id)
	}

	if reg.lifetime != Transient || reg.kind == strategyInstance {
		if inst, ok := c.cached(id); ok {
			return inst, nil
		}
	}

	inst, err := c.construct(reg)
	if err != nil {
		return nil, err
	}

	return c.store(reg, inst), nil
}

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Get is a generic helper that resolves a typed instance from a scope. It is
// the recommended way to retrieve values:
//
//	db, err := grove.Get[*Database](scope)
func Get[T any](c *Container) (T, error) {
	var zero T
	id := TypeOf[T]()

	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cannot convert %T to %s", v, id)
	}

	return out, nil
}

// MustGet is like [Get] but panics on error. Intended for wiring code where
// a resolution failure is a programming error.
func MustGet[T any](c *Container) T {
	out, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return out
}

// ---------------------------------------------------------------------------
// Internal
// ---------------------------------------------------------------------------

// construct creates a new instance for reg. Constructor dependencies are
// resolved via Get on this node, so a dependency's own scoping rules apply
// relative to the requesting scope.
func (c *Container) construct(reg *Registration) (any, error) {
	var inst any

	switch reg.kind {
	case strategyConstructor:
		args := make([]reflect.Value, len(reg.ctorDeps))
		for i, dep := range reg.ctorDeps {
			v, err := c.Get(dep)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", dep, err)
			}
			args[i], err = argValue(dep, v, reg.ctorType.In(i))
			if err != nil {
				return nil, err
			}
		}

		results := reg.ctor.Call(args)
		if len(results) == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}
		inst = results[0].Interface()

	case strategyFactory:
		v, err := reg.factory(c)
		if err != nil {
			return nil, err
		}
		inst = v

	case strategyInstance:
		inst = reg.instance

	default:
		return nil, fmt.Errorf("%w: %s has no creation strategy", ErrInvalidRegistration, reg.id)
	}

	if len(reg.collection) > 0 {
		return c.assemble(reg, inst)
	}
	return inst, nil
}

// assemble resolves the collection dependencies of a slice- or map-shaped
// registration and pushes them into the primary instance: appended in
// registration order for slices, stored under their key for maps.
func (c *Container) assemble(reg *Registration, inst any) (any, error) {
	rv := reflect.ValueOf(inst)

	switch rv.Kind() {
	case reflect.Slice:
		for _, entry := range reg.collection {
			dep, err := c.Get(entry.id)
			if err != nil {
				return nil, fmt.Errorf("assembling %s: %w", reg.id, err)
			}
			ev, err := argValue(entry.id, dep, rv.Type().Elem())
			if err != nil {
				return nil, err
			}
			rv = reflect.Append(rv, ev)
		}
		return rv.Interface(), nil

	case reflect.Map:
		if rv.IsNil() {
			rv = reflect.MakeMap(rv.Type())
		}
		for _, entry := range reg.collection {
			dep, err := c.Get(entry.id)
			if err != nil {
				return nil, fmt.Errorf("assembling %s: %w", reg.id, err)
			}
			ev, err := argValue(entry.id, dep, rv.Type().Elem())
			if err != nil {
				return nil, err
			}
			rv.SetMapIndex(reflect.ValueOf(entry.key), ev)
		}
		return rv.Interface(), nil

	default:
		return nil, fmt.Errorf("%w: %s declares collection dependencies but resolves to %T, not a slice or map",
			ErrInvalidRegistration, reg.id, inst)
	}
}

// store caches the constructed instance according to the registration's
// lifetime. Instance-based registrations are always cached at the root: the
// value is already the single shared object.
func (c *Container) store(reg *Registration, inst any) any {
	switch {
	case reg.kind == strategyInstance || reg.lifetime == Singleton:
		return c.root().insert(reg.id, inst)
	case reg.lifetime == Scoped:
		return c.insert(reg.id, inst)
	default:
		return inst
	}
}

// argValue converts a resolved dependency to a reflect value assignable to
// the target type. Nil instances become the target's zero value. A factory
// may return any type, so the mismatch is only detectable here, at
// resolution time.
func argValue(id Identifier, v any, target reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Zero(target), nil
	}
	if !rv.Type().AssignableTo(target) {
		return reflect.Value{}, fmt.Errorf("%w: %s resolved to %T, not assignable to %s",
			ErrInvalidRegistration, id, v, target)
	}
	return rv, nil
}
