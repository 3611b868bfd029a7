package reconstruction

import (
	"math"

	"fourierslice/internal/models"
)

// SliceLine returns the unrounded frequency-plane positions of the spoke at
// angle degrees, one per frequency, for drawing over the 2D spectrum.
func (r *Reconstructor) SliceLine(angle float64) []models.Point {
	theta := deg2rad(angle)
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	c := float64(r.center)

	points := make([]models.Point, len(r.freq))
	for i, f := range r.freq {
		points[i] = models.Point{X: c + f*cosT, Y: c + f*sinT}
	}
	return points
}

// OverlayLine returns the segment through the image center, with half-length
// N/2, along the projection angle.
func (r *Reconstructor) OverlayLine(angle float64) models.Line {
	theta := deg2rad(angle)
	half := float64(r.size) / 2
	dx, dy := half*math.Cos(theta), half*math.Sin(theta)
	c := float64(r.center)

	return models.Line{
		From: models.Point{X: c - dx, Y: c - dy},
		To:   models.Point{X: c + dx, Y: c + dy},
	}
}
