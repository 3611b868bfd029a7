package reconstruction

import (
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"fourierslice/pkg/phantom"
)

var (
	sharedOnce sync.Once
	shared     *Reconstructor
)

// defaultReconstructor returns a Reconstructor at the default grid size.
// Building one precomputes 180 projections, so tests share a single instance.
func defaultReconstructor(t *testing.T) *Reconstructor {
	t.Helper()
	sharedOnce.Do(func() {
		shared = NewReconstructor(&Params{})
	})
	return shared
}

func nonzeroBins(c *mat.CDense) map[Bin]bool {
	rows, cols := c.Dims()
	set := make(map[Bin]bool)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if c.At(i, j) != 0 {
				set[Bin{KX: j, KY: i}] = true
			}
		}
	}
	return set
}

func TestNewReconstructorDefaults(t *testing.T) {
	r := defaultReconstructor(t)

	assert.Equal(t, phantom.DefaultSize, r.Size())
	assert.Equal(t, phantom.DefaultSize/2, r.center)

	rows, cols := r.Sinogram().Dims()
	assert.Equal(t, phantom.DefaultSize, rows)
	assert.Equal(t, NumAngles, cols)

	freq := r.FrequencyAxis()
	require.Len(t, freq, phantom.DefaultSize)
	assert.Equal(t, -64.0, freq[0])
	assert.Equal(t, 63.0, freq[len(freq)-1])
}

// TestProject checks the projection length and that the projection sums the
// in-bounds resampled values for a range of angles.
func TestProject(t *testing.T) {
	r := defaultReconstructor(t)
	n := r.Size()

	for _, angle := range []float64{0, 1, 17, 45, 90, 133, 179} {
		projection, spectrum := r.Project(angle)
		if len(projection) != n {
			t.Fatalf("angle %v: expected projection length %d, got %d", angle, n, len(projection))
		}
		if len(spectrum) != n {
			t.Fatalf("angle %v: expected spectrum length %d, got %d", angle, n, len(spectrum))
		}

		total := floats.Sum(projection)
		resampled := mat.Sum(r.Resample(angle))
		if math.Abs(total-resampled) > 1e-9 {
			t.Errorf("angle %v: projection sum %f differs from resampled sum %f", angle, total, resampled)
		}

		// The centered spectrum carries the DC term at N/2
		dc := spectrum[n/2]
		if math.Abs(real(dc)-total) > 1e-6 || math.Abs(imag(dc)) > 1e-6 {
			t.Errorf("angle %v: expected DC %f, got %v", angle, total, dc)
		}
	}
}

func TestResampleOutOfBoundsIsZero(t *testing.T) {
	r := NewReconstructor(&Params{Size: 16})

	// At 45 degrees the corners rotate outside the unit square
	rotated := r.Resample(45)
	assert.Equal(t, 0.0, rotated.At(0, 0))
	assert.Equal(t, 0.0, rotated.At(15, 15))
}

func TestProjectionMatchesSinogramColumn(t *testing.T) {
	r := defaultReconstructor(t)

	for _, angle := range []int{0, 42, 179} {
		projection, _ := r.Project(float64(angle))
		column := mat.Col(nil, angle, r.Sinogram())
		assert.Equal(t, projection, column, "angle %d", angle)
	}
}

// TestBufferGrowsMonotonically verifies that the set of inserted bins for a
// smaller angle is contained in the set for every larger angle.
func TestBufferGrowsMonotonically(t *testing.T) {
	r := defaultReconstructor(t)

	angles := []float64{0, 1, 10, 45, 90, 135, 179}
	sets := make([]map[Bin]bool, len(angles))
	for i, angle := range angles {
		r.RebuildReconstruction(angle)
		sets[i] = nonzeroBins(r.Buffer())
	}

	for i := 1; i < len(sets); i++ {
		for bin := range sets[i-1] {
			if !sets[i][bin] {
				t.Fatalf("bin %v present at %v degrees but missing at %v degrees", bin, angles[i-1], angles[i])
			}
		}
		if len(sets[i]) < len(sets[i-1]) {
			t.Errorf("nonzero count shrank from %d to %d", len(sets[i-1]), len(sets[i]))
		}
	}
}

func TestReconstructionDiffersAcrossAngles(t *testing.T) {
	r := defaultReconstructor(t)

	first := r.RebuildReconstruction(0)
	last := r.RebuildReconstruction(MaxAngle)
	assert.False(t, mat.Equal(first, last), "reconstruction at 0 and 179 degrees should differ")
}

// TestFullReconstructionResemblesPhantom checks that inserting every spoke
// gives an image strongly correlated with the phantom.
func TestFullReconstructionResemblesPhantom(t *testing.T) {
	r := defaultReconstructor(t)

	recon := r.RebuildReconstruction(MaxAngle)
	metrics := r.Metrics(recon)
	if metrics.NCC <= 0.5 {
		t.Fatalf("expected normalized cross-correlation > 0.5, got %.3f", metrics.NCC)
	}

	single := r.Metrics(r.RebuildReconstruction(0))
	assert.Less(t, single.NCC, metrics.NCC, "a single spoke should correlate less than the full set")
}

func TestRebuildIsIdempotent(t *testing.T) {
	r := defaultReconstructor(t)

	for _, angle := range []float64{0, 37, 179} {
		a := r.RebuildReconstruction(angle)
		bufA := cloneCDense(r.Buffer())

		// An unrelated rebuild in between must not leak into the next one
		r.RebuildReconstruction(90)

		b := r.RebuildReconstruction(angle)
		if !mat.Equal(a, b) {
			t.Errorf("angle %v: reconstructions differ between calls", angle)
		}
		if !mat.CEqual(bufA, r.Buffer()) {
			t.Errorf("angle %v: buffers differ between calls", angle)
		}
	}
}

func TestSinogramView(t *testing.T) {
	r := defaultReconstructor(t)
	full := r.Sinogram()
	n := r.Size()

	for angle := 0; angle <= MaxAngle; angle++ {
		view := r.RebuildSinogramView(float64(angle))
		for col := 0; col < NumAngles; col++ {
			for row := 0; row < n; row++ {
				got := view.At(row, col)
				if col <= angle {
					if got != full.At(row, col) {
						t.Fatalf("angle %d: view[%d][%d] = %f, want %f", angle, row, col, got, full.At(row, col))
					}
				} else if got != 0 {
					t.Fatalf("angle %d: view[%d][%d] = %f, want 0", angle, row, col, got)
				}
			}
		}
	}
}

func TestSinogramViewDoesNotAlias(t *testing.T) {
	r := defaultReconstructor(t)

	view := r.RebuildSinogramView(MaxAngle)
	before := r.Sinogram().At(3, 3)
	view.Set(3, 3, before+100)
	assert.Equal(t, before, r.Sinogram().At(3, 3))
}

func TestSinogramRange(t *testing.T) {
	r := defaultReconstructor(t)

	lo, hi := r.SinogramRange()
	assert.Less(t, lo, hi)
	assert.Equal(t, mat.Min(r.Sinogram()), lo)
	assert.Equal(t, mat.Max(r.Sinogram()), hi)
}

// TestZeroDegreeScenario inserts only the horizontal spoke.
func TestZeroDegreeScenario(t *testing.T) {
	r := defaultReconstructor(t)
	n := r.Size()

	points := r.SlicePoints(0)
	distinct := make(map[Bin]bool)
	for _, b := range points {
		assert.Equal(t, r.center, b.KY)
		distinct[b] = true
	}
	require.Len(t, distinct, n)

	r.RebuildReconstruction(0)
	assert.Equal(t, distinct, nonzeroBins(r.Buffer()))

	view := r.RebuildSinogramView(0)
	for col := 0; col < NumAngles; col++ {
		nonzero := false
		for row := 0; row < n; row++ {
			if view.At(row, col) != 0 {
				nonzero = true
				break
			}
		}
		if col == 0 && !nonzero {
			t.Errorf("expected column 0 to be populated")
		}
		if col > 0 && nonzero {
			t.Errorf("expected column %d to be zero", col)
		}
	}
}

// TestNinetyDegreeScenario checks the spoke is vertical in frequency space.
func TestNinetyDegreeScenario(t *testing.T) {
	r := defaultReconstructor(t)

	points := r.SlicePoints(90)
	freq := r.FrequencyAxis()
	require.Len(t, points, len(freq))
	for i, b := range points {
		assert.Equal(t, r.center, b.KX)
		assert.Equal(t, r.center+int(freq[i]), b.KY)
	}
}

func TestInsertSliceCopiesSpectrum(t *testing.T) {
	r := NewReconstructor(&Params{Size: 32})
	buf := mat.NewCDense(32, 32, nil)

	r.InsertSlice(30, buf)
	for _, b := range r.SlicePoints(30) {
		assert.Equal(t, r.Spectrum().At(b.KY, b.KX), buf.At(b.KY, b.KX))
	}
}

func TestSlicePointsKeepDuplicates(t *testing.T) {
	r := NewReconstructor(&Params{Size: 32})

	// At 45 degrees neighbouring frequencies near the center round onto
	// the same bin, and the duplicates must survive.
	points := r.SlicePoints(45)
	distinct := make(map[Bin]bool)
	for _, b := range points {
		distinct[b] = true
	}
	assert.Len(t, points, 32)
	assert.Less(t, len(distinct), len(points))
}

func TestRoundAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{178.6, 179},
	}
	for _, tt := range tests {
		if got := roundAngle(tt.in); got != tt.want {
			t.Errorf("roundAngle(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUpdate(t *testing.T) {
	r := defaultReconstructor(t)

	frame := r.Update(60)
	assert.Equal(t, 60.0, frame.Angle)
	assert.Len(t, frame.Projection, r.Size())
	assert.Len(t, frame.ProjectionSpectrum, r.Size())
	assert.Len(t, frame.SliceLine, r.Size())
	assert.True(t, mat.Equal(frame.Reconstruction, r.RebuildReconstruction(60)))
	assert.True(t, mat.CEqual(frame.Buffer, r.Buffer()))
	assert.True(t, mat.Equal(frame.Sinogram, r.RebuildSinogramView(60)))

	// The frame keeps its own buffer copy
	r.RebuildReconstruction(0)
	assert.False(t, mat.CEqual(frame.Buffer, r.Buffer()))
}

func TestGeometry(t *testing.T) {
	r := NewReconstructor(&Params{Size: 32})

	line := r.OverlayLine(0)
	assert.InDelta(t, 0, line.From.X, 1e-12)
	assert.InDelta(t, 16, line.From.Y, 1e-12)
	assert.InDelta(t, 32, line.To.X, 1e-12)
	assert.InDelta(t, 16, line.To.Y, 1e-12)

	points := r.SliceLine(90)
	assert.InDelta(t, 16, points[0].X, 1e-9)
	assert.InDelta(t, 0, points[0].Y, 1e-9)
	assert.InDelta(t, 31, points[31].Y, 1e-9)
}

func TestSpectrumIsHermitian(t *testing.T) {
	r := NewReconstructor(&Params{Size: 32})
	spec := r.Spectrum()

	// A real image has F(-k) = conj(F(k)) around the center
	for _, k := range [][2]int{{1, 2}, {5, -3}, {-7, 4}} {
		a := spec.At(16+k[0], 16+k[1])
		b := spec.At(16-k[0], 16-k[1])
		if cmplx.Abs(a-cmplx.Conj(b)) > 1e-9 {
			t.Errorf("expected conjugate symmetry at %v: %v vs %v", k, a, b)
		}
	}
}
