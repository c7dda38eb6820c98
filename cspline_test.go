package splines2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSpline(t *testing.T) {
	ks := KnotSpec{
		InternalKnots: []float64{0.3, 0.5, 0.6},
		BoundaryKnots: [2]float64{0, 1},
		Degree:        2,
		Intercept:     true,
	}
	// Columns are non-negative, non-decreasing and convex on the domain
	{
		x := grid(0, 1, 81)
		C, err := CSpline(x, ks)
		assert.NoError(t, err)
		nr, nc := C.Dims()
		assert.Equal(t, 6, nc)
		for j := 0; j < nc; j++ {
			assert.True(t, near(C.At(0, j), 0))
			for i := 1; i < nr; i++ {
				assert.True(t, C.At(i, j) >= C.At(i-1, j)-1.e-12)
			}
			for i := 2; i < nr; i++ {
				d2 := C.At(i, j) - 2*C.At(i-1, j) + C.At(i-2, j)
				assert.True(t, d2 >= -1.e-09)
			}
		}
	}
	// Scale forces every column to 1 at the upper boundary knot
	{
		sks := ks
		sks.Scale = true
		C, err := CSpline([]float64{0.5, 1}, sks)
		assert.NoError(t, err)
		_, nc := C.Dims()
		for j := 0; j < nc; j++ {
			assert.True(t, near(C.At(1, j), 1))
		}
	}
	// Chain law: first derivative is the I-spline, second the M-spline
	{
		x := grid(0, 1, 21)
		C, err := CSpline(x, ks)
		assert.NoError(t, err)
		I, err := ISpline(x, ks)
		assert.NoError(t, err)
		M, err := MSpline(x, ks)
		assert.NoError(t, err)

		D1, err := Differentiate(C, 1)
		assert.NoError(t, err)
		assert.Equal(t, ISplineBasis, D1.Family())
		assert.True(t, nearSlice(D1.RawMatrix().Data, I.RawMatrix().Data))

		D2, err := Differentiate(C, 2)
		assert.NoError(t, err)
		assert.Equal(t, MSplineBasis, D2.Family())
		assert.True(t, nearSlice(D2.RawMatrix().Data, M.RawMatrix().Data))

		D3, err := Differentiate(C, 3)
		assert.NoError(t, err)
		mks := ks
		mks.Derivs = 1
		MD, err := MSpline(x, mks)
		assert.NoError(t, err)
		assert.True(t, nearSlice(D3.RawMatrix().Data, MD.RawMatrix().Data))
	}
	// Nesting composes: d(d(C,1),1) matches d(C,2)
	{
		x := grid(0, 1, 21)
		C, err := CSpline(x, ks)
		assert.NoError(t, err)
		D1, err := Differentiate(C, 1)
		assert.NoError(t, err)
		D11, err := Differentiate(D1, 1)
		assert.NoError(t, err)
		D2, err := Differentiate(C, 2)
		assert.NoError(t, err)
		assert.True(t, nearSlice(D11.RawMatrix().Data, D2.RawMatrix().Data))
	}
	// Scaled chain law: the cached I and M ride along pre-scaled
	{
		x := grid(0, 1, 21)
		sks := ks
		sks.Scale = true
		C, err := CSpline(x, sks)
		assert.NoError(t, err)
		I, err := ISpline(x, ks)
		assert.NoError(t, err)
		sc := tailScale(sks, cBoundaryScale(sks))
		scaled := I.Matrix.Copy()
		scaled.ScaleCols(sc)
		D1, err := Differentiate(C, 1)
		assert.NoError(t, err)
		assert.True(t, nearSlice(D1.RawMatrix().Data, scaled.RawMatrix().Data))

		D2, err := Differentiate(C, 2)
		assert.NoError(t, err)
		D2direct, err := CSpline(x, KnotSpec{
			InternalKnots: sks.InternalKnots,
			BoundaryKnots: sks.BoundaryKnots,
			Degree:        sks.Degree,
			Intercept:     sks.Intercept,
			Derivs:        2,
			Scale:         true,
		})
		assert.NoError(t, err)
		assert.True(t, nearSlice(D2.RawMatrix().Data, D2direct.RawMatrix().Data))
	}
	// A column identically zero at the upper boundary is left unscaled
	// rather than blown up to Inf
	{
		x := []float64{0, 0.5, 1}
		C, err := CSpline(x, KnotSpec{
			InternalKnots: []float64{1},
			BoundaryKnots: [2]float64{0, 1},
			Degree:        0,
			Intercept:     true,
			Scale:         true,
		})
		assert.NoError(t, err)
		nr, nc := C.Dims()
		assert.Equal(t, 2, nc)
		for i := 0; i < nr; i++ {
			assert.True(t, near(C.At(i, nc-1), 0))
		}
		assert.True(t, near(C.At(nr-1, 0), 1))
		// The cached I- and M-splines stay finite despite the zero-width
		// support
		for _, sub := range C.SubBases() {
			snr, snc := sub.Dims()
			for i := 0; i < snr; i++ {
				for j := 0; j < snc; j++ {
					assert.False(t, math.IsNaN(sub.At(i, j)))
				}
			}
		}
	}
}
