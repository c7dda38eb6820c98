package splines2

import (
	"gonum.org/v1/gonum/floats"
)

// CSpline builds the C-spline basis: the running integral of the I-spline
// basis, convex and non-decreasing over the domain. With Scale set, every
// column is divided by its value at the upper boundary knot so it reaches
// exactly 1 there; a column whose boundary value is 0 is left unscaled.
// The generating I- and M-spline bases are cached on the result,
// pre-scaled when Scale is set.
func CSpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildCSpline(x, ks)
}

type cSplineFamily struct{}

func (cSplineFamily) tag() FamilyTag { return CSplineBasis }
func (cSplineFamily) build(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildCSpline(x, ks)
}
func (cSplineFamily) differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	switch order {
	case 1:
		return b.sub[0].clone(), nil
	case 2:
		return b.sub[1].clone(), nil
	}
	ks := b.Spec
	ks.Derivs = order - 2
	ks.Scale = false
	nb, err := buildMSpline(b.X, ks)
	if err != nil || !b.Spec.Scale {
		return nb, err
	}
	return nb.rescaled(tailScale(b.Spec, cBoundaryScale(b.Spec))), nil
}

// cElevationConstants returns the prefix sums of the integration constants
// of the once-elevated basis: pre[i] - pre[j] is the weight the twice-
// elevated column i+1 contributes to C-spline column j.
func cElevationConstants(rs KnotSpec) (pre []float64) {
	var (
		p   = rs.Degree
		n   = rs.fullColumns()
		et1 = rs.elevated(1).augmented()
		cp  = make([]float64, n)
	)
	for i := 1; i <= n; i++ {
		cp[i-1] = (et1[i+p+2] - et1[i]) / float64(p+2)
	}
	pre = make([]float64, n+1)
	floats.CumSum(pre[1:], cp)
	return
}

// cBoundaryScale returns the reciprocal of each column's value at the
// upper boundary knot. A column identically zero at the boundary gets a
// factor of 1 instead of Inf and stays zero after scaling.
func cBoundaryScale(rs KnotSpec) (sc []float64) {
	var (
		n   = rs.fullColumns()
		pre = cElevationConstants(rs)
	)
	sc = make([]float64, n)
	for j := 0; j < n; j++ {
		if d := pre[n] - pre[j]; d != 0 {
			sc[j] = 1 / d
		} else {
			sc[j] = 1
		}
	}
	return
}

func tailScale(rs KnotSpec, sc []float64) []float64 {
	if rs.Intercept {
		return sc
	}
	return sc[1:]
}

func buildCSpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	rs, ps, err := prepare(x, ks)
	if err != nil {
		return nil, err
	}
	if rs.Derivs > 0 {
		return buildCSplineDeriv(x, rs)
	}
	var (
		p   = rs.Degree
		n   = rs.fullColumns()
		pre = cElevationConstants(rs)
		eks = rs.elevated(2)
		et2 = eks.augmented()
	)
	M := ps.assemble(n, func(x float64, row []float64) {
		s := findSpan(et2, p+2, x)
		lo := s - (p + 2)
		vals := basisRow(et2, p+2, s, x)
		for j := 0; j < n; j++ {
			k0 := j + 1
			if k0 < lo {
				k0 = lo
			}
			var sum float64
			for k := k0; k <= s; k++ {
				sum += vals[k-lo] * (pre[k-1] - pre[j])
			}
			row[j] = sum
		}
	})
	M = finishColumns(M, rs)

	iks := rs
	iks.Scale = false
	ib, err := buildISpline(x, iks)
	if err != nil {
		return nil, err
	}
	mb := ib.sub[0]
	if rs.Scale {
		sc := tailScale(rs, cBoundaryScale(rs))
		M.ScaleCols(sc)
		ib = ib.rescaled(sc)
		mb = ib.sub[0]
	}
	return newBasis(cSplineFamily{}, M, rs, ps.all, []*BasisMatrix{ib, mb}), nil
}

// buildCSplineDeriv resolves a C-spline build with a baked derivative
// order: the chain runs C -> I -> M -> M derivatives, with the boundary
// rescaling carried through as a constant factor per column.
func buildCSplineDeriv(x []float64, rs KnotSpec) (*BasisMatrix, error) {
	var (
		b   *BasisMatrix
		err error
		ks2 = rs
	)
	ks2.Scale = false
	switch rs.Derivs {
	case 1:
		ks2.Derivs = 0
		b, err = buildISpline(x, ks2)
	default:
		ks2.Derivs = rs.Derivs - 2
		b, err = buildMSpline(x, ks2)
	}
	if err != nil || !rs.Scale {
		return b, err
	}
	return b.rescaled(tailScale(rs, cBoundaryScale(rs))), nil
}
