package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Copy is independent of the source
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		A := M.Copy()
		A.Set(0, 0, 100)
		assert.Equal(t, 1., M.At(0, 0))
		assert.Equal(t, 100., A.At(0, 0))
	}
	// SliceCols
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		A := M.SliceCols(NewRange(1, 2))
		assert.Equal(t, A, NewMatrix(2, 2, []float64{
			2, 3,
			5, 6,
		}))
	}
	// ScaleCols
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		M.ScaleCols([]float64{1, 10, 100})
		assert.Equal(t, M, NewMatrix(2, 3, []float64{
			1, 20, 300,
			4, 50, 600,
		}))
	}
	// SumRows
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		V := M.SumRows()
		assert.Equal(t, 6., V.AtVec(0))
		assert.Equal(t, 15., V.AtVec(1))
	}
	// Negative indices address from the end
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, 4., M.Row(-1).AtVec(0))
		assert.Equal(t, 3., M.Col(-1).AtVec(0))
	}
	// Read only guard
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("guarded")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M.SetWritable()
		assert.NotPanics(t, func() { M.Set(0, 0, 1) })
	}
}

func TestVector(t *testing.T) {
	{
		V := NewVector(3, []float64{3, 1, 2})
		assert.Equal(t, 1., V.Min())
		assert.Equal(t, 3., V.Max())
		W := V.Copy()
		W.RawVector().Data[0] = 100
		assert.Equal(t, 100., W.AtVec(0))
		assert.Equal(t, 3., V.AtVec(0))
	}
}
