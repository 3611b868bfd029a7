package detector

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// HalfRays is the number of rays on each side of the central ray
	HalfRays = 60

	// ViewRadius is the radius of the field of view in canvas pixels
	ViewRadius = 200.0

	// BeamLength is how far behind the center each ray starts
	BeamLength = 200.0

	// integralSteps and integralLength set the sampling of LineIntegral
	integralSteps  = 100
	integralLength = 1000.0
)

// NumRays is the number of detector bins in a profile
const NumRays = 2*HalfRays + 1

// LineIntegral approximates the length of the ray (x0, y0) + t*(dx, dy)
// inside shape by sampling t in [-1000, 1000] at 201 points. The result is
// the hit count divided by 100.
func LineIntegral(shape Shape, x0, y0, dx, dy float64) float64 {
	hits := 0
	for i := -integralSteps; i <= integralSteps; i++ {
		t := float64(i) / integralSteps * integralLength
		if shape.Contains(x0+dx*t, y0+dy*t) {
			hits++
		}
	}
	return float64(hits) / integralSteps
}

// Offsets returns the perpendicular offset of each ray from the center
func Offsets() []float64 {
	spacing := ViewRadius * 2 / HalfRays
	offsets := make([]float64, NumRays)
	for i := range offsets {
		offsets[i] = float64(i-HalfRays) * spacing * 0.5
	}
	return offsets
}

// Profile casts NumRays parallel rays through shape along angle degrees and
// returns the line integral for each, ordered by offset.
func Profile(shape Shape, angle float64) []float64 {
	theta := angle * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)
	px, py := -dy, dx

	offsets := Offsets()
	profile := make([]float64, len(offsets))
	for i, offset := range offsets {
		cx, cy := px*offset, py*offset
		x1, y1 := cx-dx*BeamLength, cy-dy*BeamLength
		profile[i] = LineIntegral(shape, x1, y1, dx, dy)
	}
	return profile
}

// Normalize scales profile so its maximum is 1. An all-zero profile is
// returned unchanged.
func Normalize(profile []float64) []float64 {
	out := append([]float64(nil), profile...)
	if len(out) == 0 {
		return out
	}
	max := floats.Max(out)
	if max == 0 {
		max = 1
	}
	floats.Scale(1/max, out)
	return out
}
