package splines2

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/guhjy/splines2/utils"
)

// KnotSpec holds the generating parameters of a spline basis. Internal
// knots may be given directly or chosen as sample quantiles of the
// evaluation points via DF; zero-valued boundary knots are resolved to the
// observed range of the non-missing points. Resolution happens once, at
// the start of a build.
type KnotSpec struct {
	InternalKnots []float64
	BoundaryKnots [2]float64 // (lower, upper), lower < upper
	Degree        int
	Intercept     bool
	DF            int  // target column count used to place quantile knots
	Derivs        int  // derivative order baked into the basis
	Scale         bool // cSpline only: unit value at the upper boundary
}

// prepare runs the eager validation and parameter resolution shared by all
// family builders: argument checks, missing-point split, boundary and
// quantile-knot resolution, then the knot range check against the resolved
// boundary.
func prepare(x []float64, ks KnotSpec) (rs KnotSpec, ps pointSet, err error) {
	if ks.Degree < 0 {
		err = fmt.Errorf("degree = %d: %w", ks.Degree, ErrInvalidDegree)
		return
	}
	if ks.Derivs < 0 {
		err = fmt.Errorf("derivative order = %d: %w", ks.Derivs, ErrInvalidDerivativeOrder)
		return
	}
	if ps, err = newPointSet(x); err != nil {
		return
	}
	if rs, err = ks.resolve(ps.clean); err != nil {
		return
	}
	if err = rs.checkRange(); err != nil {
		return
	}
	// Degree 0 with no internal knots has a single column, and dropping it
	// for the intercept would leave an empty basis.
	if !rs.Intercept && rs.fullColumns() == 1 {
		err = fmt.Errorf("degree 0 with no internal knots and no intercept leaves no basis columns: %w", ErrInvalidDegree)
	}
	return
}

func (ks KnotSpec) resolve(clean []float64) (rs KnotSpec, err error) {
	rs = ks
	if rs.BoundaryKnots == [2]float64{} {
		if len(clean) == 0 {
			err = fmt.Errorf("no points to derive boundary knots from: %w", ErrEmptyDomain)
			return
		}
		v := utils.NewVector(len(clean), append([]float64(nil), clean...))
		rs.BoundaryKnots = [2]float64{v.Min(), v.Max()}
	}
	if len(ks.InternalKnots) != 0 {
		rs.InternalKnots = append([]float64(nil), ks.InternalKnots...)
		sort.Float64s(rs.InternalKnots)
		return
	}
	if ks.DF > 0 {
		k := ks.DF - ks.Degree
		if ks.Intercept {
			k--
		}
		if k > 0 {
			if len(clean) == 0 {
				err = fmt.Errorf("no points to place %d quantile knots on: %w", k, ErrEmptyDomain)
				return
			}
			rs.InternalKnots = quantileKnots(clean, k)
		}
	}
	return
}

func (ks KnotSpec) checkRange() error {
	lower, upper := ks.BoundaryKnots[0], ks.BoundaryKnots[1]
	if !(lower < upper) {
		return fmt.Errorf("boundary knots (%v, %v): %w", lower, upper, ErrInvalidKnotRange)
	}
	for _, k := range ks.InternalKnots {
		if k < lower || k > upper {
			return fmt.Errorf("internal knot %v outside [%v, %v]: %w", k, lower, upper, ErrInvalidKnotRange)
		}
	}
	return nil
}

// augmented returns the knot sequence with each boundary knot repeated to
// order multiplicity: length 2*(degree+1) + numInternalKnots, non-decreasing.
func (ks KnotSpec) augmented() (t []float64) {
	var (
		p = ks.Degree
		K = len(ks.InternalKnots)
	)
	t = make([]float64, 0, 2*(p+1)+K)
	for i := 0; i <= p; i++ {
		t = append(t, ks.BoundaryKnots[0])
	}
	t = append(t, ks.InternalKnots...)
	for i := 0; i <= p; i++ {
		t = append(t, ks.BoundaryKnots[1])
	}
	return
}

// elevated returns the KnotSpec of the order-elevation basis used by the
// integral transforms: degree raised by `by`, full column set, no baked
// derivative.
func (ks KnotSpec) elevated(by int) (rs KnotSpec) {
	rs = ks
	rs.Degree += by
	rs.Intercept = true
	rs.Derivs = 0
	rs.Scale = false
	return
}

// fullColumns is the column count before any intercept drop.
func (ks KnotSpec) fullColumns() int {
	return ks.Degree + len(ks.InternalKnots) + 1
}

// quantileKnots places k internal knots at the interior sample quantiles
// of the non-missing points.
func quantileKnots(clean []float64, k int) (kn []float64) {
	sorted := append([]float64(nil), clean...)
	sort.Float64s(sorted)
	kn = make([]float64, k)
	for i := 1; i <= k; i++ {
		kn[i-1] = stat.Quantile(float64(i)/float64(k+1), stat.LinInterp, sorted, nil)
	}
	return
}

// pointSet splits the evaluation vector into the non-missing values used by
// the numeric recursion and the row positions needed to reassemble the
// output, NaN rows included.
type pointSet struct {
	all     []float64
	clean   []float64
	rows    utils.Index // row of each clean point in the output
	missing utils.Index
}

func newPointSet(x []float64) (ps pointSet, err error) {
	if len(x) == 0 {
		err = fmt.Errorf("empty evaluation vector: %w", ErrEmptyDomain)
		return
	}
	ps.all = append([]float64(nil), x...)
	for i, v := range x {
		if math.IsNaN(v) {
			ps.missing = append(ps.missing, i)
		} else {
			ps.clean = append(ps.clean, v)
			ps.rows = append(ps.rows, i)
		}
	}
	return
}

// assemble evaluates one row kernel per clean point into a fresh matrix,
// NaN rows re-inserted positionally. The row buffer arrives zeroed.
func (ps pointSet) assemble(nc int, eval func(x float64, row []float64)) (M utils.Matrix) {
	M = utils.NewMatrix(len(ps.all), nc)
	ps.maskMissing(M)
	buf := make([]float64, nc)
	for i, x := range ps.clean {
		for j := range buf {
			buf[j] = 0
		}
		eval(x, buf)
		M.SetRow(ps.rows[i], buf)
	}
	return
}

func (ps pointSet) maskMissing(M utils.Matrix) {
	if len(ps.missing) == 0 {
		return
	}
	_, nc := M.Dims()
	nan := utils.ConstArray(nc, math.NaN())
	for _, i := range ps.missing {
		M.SetRow(i, nan)
	}
}

// finishColumns drops the leading basis column when no intercept was
// requested.
func finishColumns(M utils.Matrix, rs KnotSpec) utils.Matrix {
	if rs.Intercept {
		return M
	}
	_, nc := M.Dims()
	return M.SliceCols(utils.NewRange(1, nc-1))
}
