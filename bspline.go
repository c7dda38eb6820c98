package splines2

import (
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/guhjy/splines2/utils"
)

// BSpline builds the B-spline basis of x, or of its Derivs-th derivative
// when ks carries a positive derivative order.
func BSpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildBSpline(x, ks)
}

type bSplineFamily struct{}

func (bSplineFamily) tag() FamilyTag { return BSplineBasis }
func (bSplineFamily) build(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildBSpline(x, ks)
}
func (bSplineFamily) differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	ks := b.Spec
	ks.Derivs += order
	return buildBSpline(b.X, ks)
}

type bSplineDerivativeFamily struct{}

func (bSplineDerivativeFamily) tag() FamilyTag { return BSplineDerivativeBasis }
func (bSplineDerivativeFamily) build(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	return buildBSpline(x, ks)
}
func (bSplineDerivativeFamily) differentiate(b *BasisMatrix, order int) (*BasisMatrix, error) {
	ks := b.Spec
	ks.Derivs += order
	return buildBSpline(b.X, ks)
}

func buildBSpline(x []float64, ks KnotSpec) (*BasisMatrix, error) {
	rs, ps, err := prepare(x, ks)
	if err != nil {
		return nil, err
	}
	var (
		t           = rs.augmented()
		nc          = rs.fullColumns()
		M           utils.Matrix
		fam  family = bSplineFamily{}
	)
	switch {
	case rs.Derivs > 0:
		M = derivBasis(ps, t, rs.Degree, nc, rs.Derivs)
		fam = bSplineDerivativeFamily{}
	case rs.Degree == 0:
		M = stepBasis(ps, t, nc)
	default:
		M = bsplineBasis(ps, t, rs.Degree, nc)
	}
	M = finishColumns(M, rs)
	return newBasis(fam, M, rs, ps.all, nil), nil
}

// findSpan locates the knot interval of x in the augmented sequence t:
// the i with t[i] <= x < t[i+1], intervals closed on the left so a point
// sitting exactly on an internal knot belongs to the interval starting
// there. Points at or past the upper boundary fold into the last nonempty
// span, closing the final interval on the right.
func findSpan(t []float64, p int, x float64) (s int) {
	last := len(t) - p - 2
	s = sort.Search(len(t), func(i int) bool { return t[i] > x }) - 1
	if s < p {
		s = p
	}
	if s > last {
		s = last
	}
	// Clamping can land on a span emptied by repeated knots; the local
	// recursion needs a nonempty one.
	for s > p && t[s] == t[s+1] {
		s--
	}
	for s < last && t[s] == t[s+1] {
		s++
	}
	return
}

// basisRow evaluates the p+1 basis functions that do not vanish on span s,
// via the local form of the Cox-de Boor recursion. The returned values
// belong to columns s-p .. s.
func basisRow(t []float64, p, s int, x float64) (vals []float64) {
	var (
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
	)
	vals = make([]float64, p+1)
	vals[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = x - t[s+1-j]
		right[j] = t[s+j] - x
		var saved float64
		for r := 0; r < j; r++ {
			temp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		vals[j] = saved
	}
	return
}

// bsplineBasis evaluates the degree p >= 1 basis at every clean point.
func bsplineBasis(ps pointSet, t []float64, p, nc int) utils.Matrix {
	return ps.assemble(nc, func(x float64, row []float64) {
		s := findSpan(t, p, x)
		for r, v := range basisRow(t, p, s, x) {
			row[s-p+r] = v
		}
	})
}

// stepBasis is the degenerate degree 0 case: each row is a one-hot
// indicator of the knot interval containing the point. The matrix is
// assembled sparse, one entry per point, then densified.
func stepBasis(ps pointSet, t []float64, nc int) utils.Matrix {
	dok := sparse.NewDOK(len(ps.all), nc)
	for i, x := range ps.clean {
		dok.Set(ps.rows[i], findSpan(t, 0, x), 1)
	}
	M := utils.NewMatrix(len(ps.all), nc, dok.ToDense().RawMatrix().Data)
	ps.maskMissing(M)
	return M
}
