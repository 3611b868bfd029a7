package models

// Ellipse describes one weighted ellipse of a layered phantom.
// Coordinates live in the continuous [-1, 1] x [-1, 1] image domain.
type Ellipse struct {
	// Amplitude is added to every cell inside the ellipse
	Amplitude float64

	// A and B are the semi-axes along the ellipse's own x and y axes
	A float64
	B float64

	// X0 and Y0 are the center offset
	X0 float64
	Y0 float64

	// PhiDeg is the rotation angle in degrees
	PhiDeg float64
}
