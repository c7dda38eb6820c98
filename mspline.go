package splines2

import (
	"github.com/guhjy/splines2/utils"
)

// MSpline builds the M-spline basis: the B-spline basis rescaled per
// column so each column integrates to 1 over its support. Derivatives are
// taken directly on the rescaled columns.
func MSpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildMSpline(x, ks)
}

type mSplineFamily struct{}

func (mSplineFamily) tag() FamilyTag { return MSplineBasis }
func (mSplineFamily) build(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildMSpline(x, ks)
}
func (mSplineFamily) differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	ks := b.Spec
	ks.Derivs += order
	nb, err := buildMSpline(b.X, ks)
	if err != nil || b.colScale == nil {
		return nb, err
	}
	return nb.rescaled(b.colScale), nil
}

// mWeights returns the unit-integral scale factors ord/(t[j+ord] - t[j]).
// A zero-width support gets a factor of 0 so its column stays zero rather
// than turning into Inf and NaN under scaling.
func mWeights(t []float64, p, n int) (w []float64) {
	w = make([]float64, n)
	for j := 0; j < n; j++ {
		if d := t[j+p+1] - t[j]; d != 0 {
			w[j] = float64(p+1) / d
		}
	}
	return
}

func buildMSpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	rs, ps, err := prepare(x, ks)
	if err != nil {
		return nil, err
	}
	var (
		p = rs.Degree
		t = rs.augmented()
		n = rs.fullColumns()
		w = mWeights(t, p, n)
		d = rs.Derivs
		M utils.Matrix
	)
	switch {
	case d > p:
		M = ps.assemble(n, func(x float64, row []float64) {})
	case d > 0:
		// The derivative is built inside the transform, scale applied to
		// the derivative rows, rather than by composing two bases.
		M = ps.assemble(n, func(x float64, row []float64) {
			s := findSpan(t, p, x)
			for r, v := range derivRow(t, p, s, x, d) {
				row[s-p+r] = w[s-p+r] * v
			}
		})
	case p == 0:
		M = stepBasis(ps, t, n).ScaleCols(w)
	default:
		M = ps.assemble(n, func(x float64, row []float64) {
			s := findSpan(t, p, x)
			for r, v := range basisRow(t, p, s, x) {
				row[s-p+r] = w[s-p+r] * v
			}
		})
	}
	M = finishColumns(M, rs)
	return newBasis(mSplineFamily{}, M, rs, ps.all, nil), nil
}
