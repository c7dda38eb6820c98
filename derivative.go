package splines2

import (
	"github.com/guhjy/splines2/utils"
)

// derivBasis evaluates the d-th derivative of the degree p basis at every
// clean point. A request past the polynomial degree is identically zero,
// not an error: every degree p piece has zero d-th derivative for d > p.
func derivBasis(ps pointSet, t []float64, p, nc, d int) utils.Matrix {
	if d > p {
		return ps.assemble(nc, func(x float64, row []float64) {})
	}
	return ps.assemble(nc, func(x float64, row []float64) {
		s := findSpan(t, p, x)
		for r, v := range derivRow(t, p, s, x, d) {
			row[s-p+r] = v
		}
	})
}

// derivRow computes the d-th derivative (1 <= d <= p) of the p+1 basis
// functions that do not vanish on span s, by the divided-difference
// derivative identity applied to the local recursion triangle. The result
// carries the p!/(p-d)! scale and belongs to columns s-p .. s.
func derivRow(t []float64, p, s int, x float64, d int) (vals []float64) {
	var (
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
		ndu   = make([][]float64, p+1)
	)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = x - t[s+1-j]
		right[j] = t[s+j] - x
		var saved float64
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	vals = make([]float64, p+1)
	a := [2][]float64{make([]float64, p+1), make([]float64, p+1)}
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		var dv float64
		for k := 1; k <= d; k++ {
			dv = 0
			rk, pk := r-k, p-k
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				dv = a[s2][0] * ndu[rk][pk]
			}
			j1 := 1
			if rk < -1 {
				j1 = -rk
			}
			j2 := k - 1
			if r-1 > pk {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				dv += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				dv += a[s2][k] * ndu[r][pk]
			}
			s1, s2 = s2, s1
		}
		vals[r] = dv
	}

	fac := 1.
	for k := 0; k < d; k++ {
		fac *= float64(p - k)
	}
	for r := range vals {
		vals[r] *= fac
	}
	return
}
