package grove

import "errors"

var (
	// ErrAlreadyBuilt is returned when Register, Remove or Build is called
	// after the registry has already produced a container.
	ErrAlreadyBuilt = errors.New("registry already built")

	// ErrRegistrationExists is returned when a registration for the same
	// identifier is submitted more than once.
	ErrRegistrationExists = errors.New("registration already exists")

	// ErrRegistrationNotFound is returned when no registration exists for
	// the requested identifier.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrMissingDependencies is returned by Build when a registration
	// depends on identifiers that were never registered. The error message
	// names every missing dependency of the offending registration.
	ErrMissingDependencies = errors.New("missing dependencies")

	// ErrCircularDependency is returned by Build when the dependency graph
	// contains a cycle. The error message includes the full chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInvalidRegistration is returned when a registration does not carry
	// exactly one creation strategy, or when its collection dependencies do
	// not fit the shape of the constructed instance.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrOverrideOnRoot is returned when Override is called on the root
	// container. Overrides are scoped-container-only.
	ErrOverrideOnRoot = errors.New("override requires a scoped container")
)
