package models

import (
	"gonum.org/v1/gonum/mat"
)

// Point is a position in pixel (or frequency-bin) coordinates.
type Point struct {
	X, Y float64
}

// Line is a straight segment used for display overlays
type Line struct {
	From Point
	To   Point
}

// Frame bundles everything a front end needs to draw one angle of the
// demonstration. Matrices are snapshots and may be kept by the caller.
type Frame struct {
	// Angle is the projection angle in degrees
	Angle float64

	// Projection is the 1D parallel-beam projection, one value per detector bin
	Projection []float64

	// ProjectionSpectrum is the centered 1D Fourier transform of Projection
	ProjectionSpectrum []complex128

	// Reconstruction is the real part of the inverse transform of the
	// accumulated Fourier plane
	Reconstruction *mat.Dense

	// Buffer is the accumulated, centered Fourier plane
	Buffer *mat.CDense

	// Sinogram holds the projections for angles 0..Angle and zeros elsewhere
	Sinogram *mat.Dense

	// SliceLine is the current spoke through the 2D spectrum, in bin units
	SliceLine []Point

	// Overlay is the projection direction drawn over the phantom
	Overlay Line
}
