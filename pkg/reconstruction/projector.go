package reconstruction

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"fourierslice/pkg/spectral"
)

// Resample rotates the phantom by angle degrees using nearest-neighbour
// lookups. Each cell's coordinates are rotated, mapped back onto pixel
// indices with the affine [-1, 1] -> [0, N-1] scaling and truncated toward
// zero; cells whose source index falls outside the grid are zero.
func (r *Reconstructor) Resample(angle float64) *mat.Dense {
	n := r.size
	theta := deg2rad(angle)
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	span := float64(n - 1)

	rotated := mat.NewDense(n, n, nil)
	for i, y := range r.axis {
		for j, x := range r.axis {
			xr := x*cosT + y*sinT
			yr := -x*sinT + y*cosT

			xi := int((xr + 1) / 2 * span)
			yi := int((yr + 1) / 2 * span)
			if xi < 0 || xi >= n || yi < 0 || yi >= n {
				continue
			}
			rotated.Set(i, j, r.phantom.At(yi, xi))
		}
	}

	return rotated
}

// Project returns the parallel-beam projection at angle degrees together
// with its centered 1D spectrum. The projection sums the resampled image
// along its rows, giving one value per column.
func (r *Reconstructor) Project(angle float64) ([]float64, []complex128) {
	projection := r.projection(angle)
	return projection, spectral.Shift(spectral.FFT(projection))
}

func (r *Reconstructor) projection(angle float64) []float64 {
	rotated := r.Resample(angle)

	projection := make([]float64, r.size)
	col := make([]float64, r.size)
	for j := range projection {
		mat.Col(col, j, rotated)
		projection[j] = floats.Sum(col)
	}
	return projection
}
