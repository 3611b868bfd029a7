package reconstruction

import (
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"fourierslice/internal/models"
	"fourierslice/pkg/phantom"
	"fourierslice/pkg/spectral"
)

const (
	// MaxAngle is the largest projection angle, in degrees, exposed to the
	// angle control
	MaxAngle = 179

	// NumAngles is the number of integer angles 0..MaxAngle
	NumAngles = MaxAngle + 1
)

// Params holds the reconstruction parameters.
type Params struct {
	// Size is the width and height of the phantom grid. Zero selects
	// phantom.DefaultSize.
	Size int

	// Ellipses overrides the phantom definition. Nil selects the
	// Shepp-Logan phantom.
	Ellipses []models.Ellipse

	// Verbose enables progress logging
	Verbose bool
}

// Reconstructor owns all state of the Fourier slice demonstration: the
// phantom, its centered spectrum, the precomputed sinogram and the
// accumulation buffer that every rebuild writes into.
//
// The phantom, spectrum and full sinogram are computed once in
// NewReconstructor and never written afterwards. The accumulation buffer is
// fully reset by each rebuild, so results depend only on the requested
// angle. A Reconstructor is not safe for concurrent use.
type Reconstructor struct {
	params *Params

	// size is the grid width and height (N)
	size int

	// center is the index of the zero frequency in a centered spectrum
	center int

	// axis holds the [-1, 1] sample coordinates of rows and columns
	axis []float64

	// freq is the signed frequency axis -N/2 .. N/2-1
	freq []float64

	phantom  *mat.Dense
	spectrum *mat.CDense
	buffer   *mat.CDense

	// sinogram is N x NumAngles, column t is the projection at t degrees
	sinogram *mat.Dense
}

// NewReconstructor generates the phantom, caches its centered spectrum and
// precomputes the projections for every integer angle.
func NewReconstructor(params *Params) *Reconstructor {
	if params == nil {
		params = &Params{}
	}
	size := params.Size
	if size == 0 {
		size = phantom.DefaultSize
	}
	ellipses := params.Ellipses
	if ellipses == nil {
		ellipses = phantom.SheppLogan
	}

	r := &Reconstructor{
		params: params,
		size:   size,
		center: size / 2,
		axis:   phantom.Axis(size),
		freq:   spectral.FrequencyAxis(size),
		buffer: mat.NewCDense(size, size, nil),
	}

	r.logf("Generating %dx%d phantom from %d ellipses", size, size, len(ellipses))
	r.phantom = phantom.GenerateFrom(size, ellipses)

	r.logf("Computing centered 2D spectrum")
	r.spectrum = spectral.Spectrum(r.phantom)

	r.logf("Precomputing sinogram for %d angles", NumAngles)
	r.buildSinogram()

	return r
}

// Size returns the grid width and height.
func (r *Reconstructor) Size() int { return r.size }

// Phantom returns the source image. Callers must not modify it.
func (r *Reconstructor) Phantom() *mat.Dense { return r.phantom }

// Spectrum returns the centered 2D spectrum of the phantom. Callers must not
// modify it.
func (r *Reconstructor) Spectrum() *mat.CDense { return r.spectrum }

// FrequencyAxis returns a copy of the signed frequency axis.
func (r *Reconstructor) FrequencyAxis() []float64 {
	return append([]float64(nil), r.freq...)
}

// Update recomputes everything a display needs for the given angle.
func (r *Reconstructor) Update(angle float64) models.Frame {
	r.logf("Updating to %.0f degrees", angle)

	projection, projSpectrum := r.Project(angle)
	recon := r.RebuildReconstruction(angle)
	sino := r.RebuildSinogramView(angle)

	return models.Frame{
		Angle:              angle,
		Projection:         projection,
		ProjectionSpectrum: projSpectrum,
		Reconstruction:     recon,
		Buffer:             cloneCDense(r.buffer),
		Sinogram:           sino,
		SliceLine:          r.SliceLine(angle),
		Overlay:            r.OverlayLine(angle),
	}
}

func (r *Reconstructor) logf(format string, args ...any) {
	if r.params.Verbose {
		log.Printf(format, args...)
	}
}

// roundAngle maps a slider value onto the integer angle used for
// accumulation, rounding halves to even.
func roundAngle(angle float64) int {
	return int(math.RoundToEven(angle))
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func cloneCDense(c *mat.CDense) *mat.CDense {
	rows, cols := c.Dims()
	out := mat.NewCDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, c.At(i, j))
		}
	}
	return out
}
