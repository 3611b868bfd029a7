package reconstruction

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func (r *Reconstructor) buildSinogram() {
	r.sinogram = mat.NewDense(r.size, NumAngles, nil)
	for t := 0; t < NumAngles; t++ {
		r.sinogram.SetCol(t, r.projection(float64(t)))
	}
}

// Sinogram returns the full precomputed sinogram. Callers must not modify
// it.
func (r *Reconstructor) Sinogram() *mat.Dense {
	return r.sinogram
}

// SinogramRange returns the smallest and largest value of the full sinogram,
// so that accumulated views can be drawn on a fixed scale.
func (r *Reconstructor) SinogramRange() (min, max float64) {
	data := r.sinogram.RawMatrix().Data
	return floats.Min(data), floats.Max(data)
}

// RebuildSinogramView returns a new matrix equal to the full sinogram in
// columns 0..round(angle) and zero in every later column. No projection is
// recomputed.
func (r *Reconstructor) RebuildSinogramView(angle float64) *mat.Dense {
	view := mat.NewDense(r.size, NumAngles, nil)

	cols := roundAngle(angle) + 1
	if cols > NumAngles {
		cols = NumAngles
	}
	if cols > 0 {
		dst := view.Slice(0, r.size, 0, cols).(*mat.Dense)
		dst.Copy(r.sinogram.Slice(0, r.size, 0, cols))
	}

	return view
}
