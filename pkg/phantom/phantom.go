// Package phantom builds the synthetic layered-ellipse test image used to
// demonstrate tomographic reconstruction.
package phantom

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"fourierslice/internal/models"
)

// DefaultSize is the width and height of the phantom grid
const DefaultSize = 128

// SheppLogan is the modified Shepp-Logan head phantom:
// (amplitude, a, b, x0, y0, phi)
var SheppLogan = []models.Ellipse{
	{Amplitude: 1, A: .69, B: .92, X0: 0, Y0: 0, PhiDeg: 0},
	{Amplitude: -.8, A: .6624, B: .8740, X0: 0, Y0: -.0184, PhiDeg: 0},
	{Amplitude: -.2, A: .1100, B: .3100, X0: .22, Y0: 0, PhiDeg: -18},
	{Amplitude: -.2, A: .1600, B: .4100, X0: -.22, Y0: 0, PhiDeg: 18},
	{Amplitude: .1, A: .2100, B: .2500, X0: 0, Y0: .35, PhiDeg: 0},
	{Amplitude: .1, A: .0460, B: .0460, X0: 0, Y0: .1, PhiDeg: 0},
	{Amplitude: .1, A: .0460, B: .0460, X0: 0, Y0: -.1, PhiDeg: 0},
	{Amplitude: .1, A: .0460, B: .0230, X0: -.08, Y0: -.605, PhiDeg: 0},
	{Amplitude: .1, A: .0230, B: .0230, X0: 0.06, Y0: -.605, PhiDeg: 0},
	{Amplitude: .1, A: .0230, B: .0460, X0: 0.06, Y0: -.605, PhiDeg: 90},
}

// Axis returns n evenly spaced sample coordinates spanning [-1, 1]
// inclusive. The same axis is used for x (columns) and y (rows).
func Axis(n int) []float64 {
	axis := make([]float64, n)
	if n == 1 {
		axis[0] = -1
		return axis
	}
	step := 2 / float64(n-1)
	for i := range axis {
		axis[i] = -1 + float64(i)*step
	}
	axis[n-1] = 1
	return axis
}

// Generate returns the n x n Shepp-Logan phantom.
func Generate(n int) *mat.Dense {
	return GenerateFrom(n, SheppLogan)
}

// GenerateFrom rasterizes the given ellipses onto an n x n grid. Row i
// corresponds to y = Axis(n)[i] and column j to x = Axis(n)[j].
// Overlapping ellipses add up; later entries never replace earlier ones.
func GenerateFrom(n int, ellipses []models.Ellipse) *mat.Dense {
	grid := mat.NewDense(n, n, nil)
	axis := Axis(n)

	for _, e := range ellipses {
		phi := e.PhiDeg * math.Pi / 180
		cosP, sinP := math.Cos(phi), math.Sin(phi)

		for i, y := range axis {
			dy := y - e.Y0
			for j, x := range axis {
				dx := x - e.X0
				xRot := cosP*dx + sinP*dy
				yRot := -sinP*dx + cosP*dy
				if Contains(xRot, yRot, e.A, e.B) {
					grid.Set(i, j, grid.At(i, j)+e.Amplitude)
				}
			}
		}
	}

	return grid
}

// Contains reports whether the point, already expressed in the ellipse's
// own frame, lies inside or on the boundary of an ellipse with semi-axes a, b.
func Contains(x, y, a, b float64) bool {
	u := x / a
	v := y / b
	return u*u+v*v <= 1
}
