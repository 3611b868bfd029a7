package reconstruction

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"fourierslice/pkg/spectral"
)

// Bin addresses one cell of a centered N x N spectrum.
type Bin struct {
	KX, KY int
}

// SlicePoints maps the frequency axis onto the spoke at angle degrees and
// returns the in-bounds bins in frequency order. Coordinates are rounded
// half-to-even, so bins near the center can repeat; duplicates are kept.
func (r *Reconstructor) SlicePoints(angle float64) []Bin {
	theta := deg2rad(angle)
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	c := float64(r.center)

	bins := make([]Bin, 0, len(r.freq))
	for _, f := range r.freq {
		kx := int(math.RoundToEven(c + f*cosT))
		ky := int(math.RoundToEven(c + f*sinT))
		if kx < 0 || kx >= r.size || ky < 0 || ky >= r.size {
			continue
		}
		bins = append(bins, Bin{KX: kx, KY: ky})
	}
	return bins
}

// InsertSlice copies the spoke of the phantom spectrum at angle degrees into
// buf. Later points overwrite earlier ones on the same bin.
func (r *Reconstructor) InsertSlice(angle float64, buf *mat.CDense) {
	for _, b := range r.SlicePoints(angle) {
		buf.Set(b.KY, b.KX, r.spectrum.At(b.KY, b.KX))
	}
}

// RebuildReconstruction clears the accumulation buffer, replays slice
// insertion for every integer angle from 0 to round(angle) and returns the
// real part of the inverse transform of the result.
func (r *Reconstructor) RebuildReconstruction(angle float64) *mat.Dense {
	r.resetBuffer()

	last := roundAngle(angle)
	for t := 0; t <= last; t++ {
		r.InsertSlice(float64(t), r.buffer)
	}

	return spectral.RealPart(spectral.IFFT2(spectral.Unshift2(r.buffer)))
}

// Buffer returns the accumulation buffer as left by the last rebuild, for
// overlay displays. It is overwritten by the next rebuild.
func (r *Reconstructor) Buffer() *mat.CDense {
	return r.buffer
}

func (r *Reconstructor) resetBuffer() {
	for i := 0; i < r.size; i++ {
		for j := 0; j < r.size; j++ {
			r.buffer.Set(i, j, 0)
		}
	}
}
