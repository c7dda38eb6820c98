package splines2

import (
	"github.com/guhjy/splines2/utils"
)

// BSplineIntegral builds the antiderivative of the B-spline basis,
// normalized to vanish at the lower boundary knot. With Derivs = d >= 1 the
// request collapses to the (d-1)-th derivative of the B-spline basis.
func BSplineIntegral(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildBSplineIntegral(x, ks)
}

type bSplineIntegralFamily struct{}

func (bSplineIntegralFamily) tag() FamilyTag { return BSplineIntegralBasis }
func (bSplineIntegralFamily) build(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildBSplineIntegral(x, ks)
}
func (bSplineIntegralFamily) differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	// One derivative undoes the antiderivative; the rest fall through to
	// the B-spline derivative engine.
	ks := b.Spec
	ks.Derivs = order - 1
	return buildBSpline(b.X, ks)
}

func buildBSplineIntegral(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	rs, ps, err := prepare(x, ks)
	if err != nil {
		return nil, err
	}
	if rs.Derivs > 0 {
		ks2 := rs
		ks2.Derivs = rs.Derivs - 1
		return buildBSpline(x, ks2)
	}
	var (
		p   = rs.Degree
		t   = rs.augmented()
		n   = rs.fullColumns()
		eks = rs.elevated(1)
	)
	elev, err := buildBSpline(x, eks)
	if err != nil {
		return nil, err
	}
	// Per-column integration constant: total mass of the column's support.
	c := make([]float64, n)
	for j := 0; j < n; j++ {
		c[j] = (t[j+p+1] - t[j]) / float64(p+1)
	}
	M := integralRows(ps, elev, eks.augmented(), p, n, c)
	M = finishColumns(M, rs)
	return newBasis(bSplineIntegralFamily{}, M, rs, ps.all, []*BasisMatrix{elev}), nil
}

// integralRows collapses the rows of the order-elevation basis into
// antiderivative values. For a point in span s of the elevated sequence,
// column j integrates to c[j] times the suffix sum of elevated columns
// j+1 and up; columns whose support lies entirely left of the span are
// forced to their full mass c[j].
func integralRows(ps pointSet, elev *BasisMatrix, et []float64, p, n int, c []float64) (M utils.Matrix) {
	M = utils.NewMatrix(len(ps.all), n)
	ps.maskMissing(M)
	var (
		suf = make([]float64, n+2) // suffix sums over the n+1 elevated columns
		row = make([]float64, n)
	)
	for i, x := range ps.clean {
		r := ps.rows[i]
		erow := elev.M.RawRowView(r)
		s := findSpan(et, p+1, x)
		lo := s - (p + 1) // leftmost elevated column alive on span s
		suf[n+1] = 0
		for k := n; k >= 0; k-- {
			suf[k] = suf[k+1] + erow[k]
		}
		for j := 0; j < n; j++ {
			m := j + 1
			switch {
			case m > s:
				row[j] = 0
			case m <= lo:
				row[j] = c[j]
			default:
				row[j] = c[j] * suf[m]
			}
		}
		M.SetRow(r, row)
	}
	return
}
