// Package splines2 constructs basis matrices for regression splines:
// B-splines, their derivatives and antiderivatives, and the shape-restricted
// M-spline, I-spline and C-spline families, each with analytic derivatives
// of arbitrary order.
//
// A basis is built once from a KnotSpec and a vector of evaluation points,
// returning an immutable BasisMatrix. Derivative requests on a built basis
// go through Differentiate, which consumes the cached generating bases
// (an I-spline carries its M-spline, a C-spline carries both) before
// falling back to reconstruction. Predict re-evaluates a basis at new
// points with the parameters it was built from.
package splines2
