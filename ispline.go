package splines2

import (
	"github.com/guhjy/splines2/utils"
)

// ISpline builds the I-spline basis: the running integral of the M-spline
// basis, non-decreasing from 0 to 1 across the domain. The stated degree
// tracks the generating M-spline, so an I-spline of degree p is a
// piecewise polynomial of degree p+1. The generating M-spline basis is
// cached on the result; a first derivative returns it directly.
func ISpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildISpline(x, ks)
}

type iSplineFamily struct{}

func (iSplineFamily) tag() FamilyTag { return ISplineBasis }
func (iSplineFamily) build(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildISpline(x, ks)
}
func (iSplineFamily) differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	if order == 1 {
		return b.sub[0].clone(), nil
	}
	ks := b.Spec
	ks.Derivs = order - 1
	nb, err := buildMSpline(b.X, ks)
	if err != nil || b.colScale == nil {
		return nb, err
	}
	return nb.rescaled(b.colScale), nil
}

func buildISpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	rs, ps, err := prepare(x, ks)
	if err != nil {
		return nil, err
	}
	if rs.Derivs > 0 {
		// d/dx I = M, so the d-th derivative of I is the (d-1)-th of M.
		ks2 := rs
		ks2.Derivs = rs.Derivs - 1
		return buildMSpline(x, ks2)
	}
	var (
		n   = rs.fullColumns()
		eks = rs.elevated(1)
	)
	elev, err := buildBSpline(x, eks)
	if err != nil {
		return nil, err
	}
	// The M-spline normalization cancels against the integration constant,
	// leaving the bare suffix sums of the order-elevation basis, forced to
	// 1 once a column is fully integrated.
	M := integralRows(ps, elev, eks.augmented(), rs.Degree, n, utils.ConstArray(n, 1))
	M = finishColumns(M, rs)
	mb, err := buildMSpline(x, rs)
	if err != nil {
		return nil, err
	}
	return newBasis(iSplineFamily{}, M, rs, ps.all, []*BasisMatrix{mb}), nil
}
