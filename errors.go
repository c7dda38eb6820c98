package splines2

import "errors"

// Build errors indicate caller misuse and are raised before any numeric
// work. Missing (NaN) evaluation points are not errors: they produce
// all-NaN output rows in place.
var (
	// ErrInvalidDegree is returned for a negative spline degree.
	ErrInvalidDegree = errors.New("splines2: invalid spline degree")

	// ErrInvalidKnotRange is returned when the lower boundary knot is not
	// below the upper one, or an internal knot falls outside the boundary.
	ErrInvalidKnotRange = errors.New("splines2: invalid knot range")

	// ErrInvalidDerivativeOrder is returned for a negative derivative order.
	ErrInvalidDerivativeOrder = errors.New("splines2: invalid derivative order")

	// ErrEmptyDomain is returned when there are no evaluation points.
	ErrEmptyDomain = errors.New("splines2: empty evaluation domain")
)
