package splines2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBSplineDerivative(t *testing.T) {
	// Quadratic Bernstein derivatives, first and second order
	{
		x := []float64{0, 0.25, 0.5, 1}
		ks := KnotSpec{
			BoundaryKnots: [2]float64{0, 1},
			Degree:        2,
			Intercept:     true,
		}
		ks.Derivs = 1
		D1, err := BSpline(x, ks)
		assert.NoError(t, err)
		assert.Equal(t, BSplineDerivativeBasis, D1.Family())
		for i, xi := range x {
			want := []float64{-2 * (1 - xi), 2 - 4*xi, 2 * xi}
			assert.True(t, nearSlice(D1.Row(i).RawVector().Data, want))
		}

		ks.Derivs = 2
		D2, err := BSpline(x, ks)
		assert.NoError(t, err)
		for i := range x {
			assert.True(t, nearSlice(D2.Row(i).RawVector().Data, []float64{2, -4, 2}))
		}
	}
	// Hat functions: piecewise constant slopes across an internal knot
	{
		x := []float64{0.25, 0.75}
		D1, err := BSpline(x, KnotSpec{
			InternalKnots: []float64{0.5},
			BoundaryKnots: [2]float64{0, 1},
			Degree:        1,
			Intercept:     true,
			Derivs:        1,
		})
		assert.NoError(t, err)
		assert.True(t, nearSlice(D1.Row(0).RawVector().Data, []float64{-2, 2, 0}))
		assert.True(t, nearSlice(D1.Row(1).RawVector().Data, []float64{0, -2, 2}))
	}
	// Orders past the degree are identically zero, not an error
	{
		x := grid(0, 1, 7)
		D, err := BSpline(x, KnotSpec{
			InternalKnots: []float64{0.4},
			BoundaryKnots: [2]float64{0, 1},
			Degree:        2,
			Intercept:     true,
			Derivs:        3,
		})
		assert.NoError(t, err)
		assert.Equal(t, 0., D.Min())
		assert.Equal(t, 0., D.Max())
	}
	// A derivative of a derivative equals the summed order
	{
		x := grid(0, 1, 9)
		ks := KnotSpec{
			InternalKnots: []float64{0.3, 0.7},
			BoundaryKnots: [2]float64{0, 1},
			Degree:        3,
			Intercept:     true,
		}
		B, err := BSpline(x, ks)
		assert.NoError(t, err)
		d1, err := Differentiate(B, 1)
		assert.NoError(t, err)
		d11, err := Differentiate(d1, 1)
		assert.NoError(t, err)
		d2, err := Differentiate(B, 2)
		assert.NoError(t, err)
		assert.True(t, nearSlice(d11.RawMatrix().Data, d2.RawMatrix().Data))
		assert.Equal(t, 2, d2.DerivOrder())
	}
	// NaN rows pass through the derivative engine
	{
		x := []float64{0.2, math.NaN(), 0.8}
		D, err := BSpline(x, KnotSpec{
			BoundaryKnots: [2]float64{0, 1},
			Degree:        2,
			Intercept:     true,
			Derivs:        1,
		})
		assert.NoError(t, err)
		_, nc := D.Dims()
		for j := 0; j < nc; j++ {
			assert.True(t, math.IsNaN(D.At(1, j)))
		}
	}
}
