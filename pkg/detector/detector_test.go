package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeByName(t *testing.T) {
	for _, name := range []string{"E", "A", "1", "O", "Square", "Tri", "Plus"} {
		s, err := ShapeByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := ShapeByName("Hexagon")
	assert.Error(t, err)
}

func TestShapeContains(t *testing.T) {
	tests := []struct {
		shape string
		x, y  float64
		want  bool
	}{
		{"E", -50, 0, true},   // spine
		{"E", 50, -100, true}, // top arm
		{"E", 50, -50, false}, // between arms
		{"O", 0, 0, false},    // hole
		{"O", 100, 0, true},   // ring
		{"O", 120, 0, false},  // outside
		{"Square", 89, -89, true},
		{"Square", 91, 0, false},
		{"Plus", 0, 70, true},
		{"Plus", 50, 50, false},
		{"Tri", 0, 90, true},
		{"Tri", 90, -90, false},
		{"A", 0, 0, true},    // crossbar
		{"A", 0, 110, false}, // inside the legs, below the bar
		{"1", 0, 0, true},
		{"1", -60, 0, false},
	}
	for _, tt := range tests {
		s, err := ShapeByName(tt.shape)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.Contains(tt.x, tt.y), "%s contains (%v, %v)", tt.shape, tt.x, tt.y)
	}
}

func TestLineIntegralThroughSquare(t *testing.T) {
	s, err := ShapeByName("Square")
	require.NoError(t, err)

	// Samples are 10px apart, so the 180px-wide square holds 19 of them
	got := LineIntegral(s, -200, 0, 1, 0)
	assert.InDelta(t, 0.19, got, 1e-12)

	assert.Equal(t, 0.0, LineIntegral(s, -200, 150, 1, 0))
}

func TestOffsets(t *testing.T) {
	offsets := Offsets()
	require.Len(t, offsets, NumRays)
	assert.InDelta(t, -ViewRadius, offsets[0], 1e-9)
	assert.Equal(t, 0.0, offsets[HalfRays])
	assert.InDelta(t, ViewRadius, offsets[NumRays-1], 1e-9)
}

func TestProfile(t *testing.T) {
	s, err := ShapeByName("Square")
	require.NoError(t, err)

	profile := Profile(s, 0)
	require.Len(t, profile, NumRays)

	// Rays outside the square's extent see nothing
	assert.Equal(t, 0.0, profile[0])
	assert.Equal(t, 0.0, profile[NumRays-1])

	// The central ray matches a direct line integral through the origin
	assert.InDelta(t, LineIntegral(s, -BeamLength, 0, 1, 0), profile[HalfRays], 1e-12)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []float64{0.5, 1, 0}, Normalize([]float64{1, 2, 0}))
	assert.Equal(t, []float64{0, 0}, Normalize([]float64{0, 0}))
	assert.Empty(t, Normalize(nil))

	in := []float64{4, 2}
	Normalize(in)
	assert.Equal(t, []float64{4, 2}, in, "input must not be modified")
}
