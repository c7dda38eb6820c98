package splines2

import (
	"fmt"

	"github.com/guhjy/splines2/utils"
)

// FamilyTag identifies the spline family a BasisMatrix represents. The set
// is closed: each tag fixes which cached sub-bases the matrix carries and
// how a derivative request against it is resolved.
type FamilyTag uint8

const (
	BSplineBasis FamilyTag = iota
	BSplineDerivativeBasis
	BSplineIntegralBasis
	MSplineBasis
	ISplineBasis
	CSplineBasis
)

func (f FamilyTag) String() string {
	switch f {
	case BSplineBasis:
		return "bSpline"
	case BSplineDerivativeBasis:
		return "bSpline derivative"
	case BSplineIntegralBasis:
		return "bSpline integral"
	case MSplineBasis:
		return "mSpline"
	case ISplineBasis:
		return "iSpline"
	case CSplineBasis:
		return "cSpline"
	}
	return "unknown"
}

// family is the per-variant behavior behind a FamilyTag: how to build the
// basis at a set of points and how to differentiate an already built one.
type family interface {
	tag() FamilyTag
	build(x []float64, ks KnotSpec) (*BasisMatrix, error)
	differentiate(b *BasisMatrix, order int) (*BasisMatrix, error)
}

// BasisMatrix is an immutable basis design matrix: one row per evaluation
// point (all-NaN for missing points), one column per basis function. It
// carries the resolved KnotSpec it was generated from, its family tag and
// any cached generating bases, so it can be differentiated or re-evaluated
// at new points without the original call context.
type BasisMatrix struct {
	utils.Matrix
	Spec KnotSpec  // resolved generating parameters, Derivs included
	X    []float64 // evaluation points, NaN entries preserved

	fam      family
	sub      []*BasisMatrix // cached generating bases, per family contract
	colScale []float64      // reciprocal boundary values of a scaled cSpline
}

// Family reports the family tag of the basis.
func (b *BasisMatrix) Family() FamilyTag { return b.fam.tag() }

// DerivOrder reports the derivative order already baked into the basis.
func (b *BasisMatrix) DerivOrder() int { return b.Spec.Derivs }

// SubBases returns the cached generating bases: the order-elevation basis
// of an integral, the M-spline of an I-spline, the I- and M-splines of a
// C-spline. Nil for plain B- and M-spline bases.
func (b *BasisMatrix) SubBases() []*BasisMatrix { return b.sub }

func newBasis(fam family, M utils.Matrix, rs KnotSpec, x []float64, sub []*BasisMatrix) (b *BasisMatrix) {
	b = &BasisMatrix{
		Matrix: M.SetReadOnly(fam.tag().String()),
		Spec:   rs,
		X:      append([]float64(nil), x...),
		fam:    fam,
		sub:    sub,
	}
	return
}

func (b *BasisMatrix) clone() (R *BasisMatrix) {
	M := b.Matrix.Copy()
	R = &BasisMatrix{
		Matrix:   M.SetReadOnly(b.fam.tag().String()),
		Spec:     b.Spec,
		X:        b.X,
		fam:      b.fam,
		sub:      b.sub,
		colScale: b.colScale,
	}
	return
}

// rescaled returns a copy of b with every column multiplied by w, cached
// sub-bases included. Constant per-column rescaling commutes with
// differentiation, so the sub-basis chain stays consistent. The factors are
// kept on the copy so Differentiate and Predict can reapply them.
func (b *BasisMatrix) rescaled(w []float64) (R *BasisMatrix) {
	M := b.Matrix.Copy()
	M.ScaleCols(w)
	R = &BasisMatrix{
		Matrix:   M.SetReadOnly(b.fam.tag().String()),
		Spec:     b.Spec,
		X:        b.X,
		fam:      b.fam,
		colScale: w,
	}
	for _, s := range b.sub {
		R.sub = append(R.sub, s.rescaled(w))
	}
	return
}

// Differentiate returns a new basis equal to differentiating b a further
// order times. Order 0 is an identity copy. Cached generating bases are
// consumed where the family provides them; otherwise the request recurses
// down the C -> I -> M -> B chain. Nested calls compose, but a single call
// with the summed order avoids compounding rounding error.
func Differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	if order < 0 {
		return nil, fmt.Errorf("derivative order %d: %w", order, ErrInvalidDerivativeOrder)
	}
	if order == 0 {
		return b.clone(), nil
	}
	return b.fam.differentiate(b, order)
}

// Predict re-evaluates the basis at new points using the stored resolved
// parameters, derivative order included.
func Predict(b *BasisMatrix, x []float64) (*BasisMatrix, error) {
	nb, err := b.fam.build(x, b.Spec)
	if err != nil || b.colScale == nil {
		return nb, err
	}
	return nb.rescaled(b.colScale), nil
}
