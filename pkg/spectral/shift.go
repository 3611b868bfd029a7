package spectral

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// Shift moves the zero-frequency coefficient of a 1D spectrum to index
// len(x)/2.
func Shift(x []complex128) []complex128 {
	fft := fourier.NewCmplxFFT(len(x))
	out := make([]complex128, len(x))
	for i := range out {
		out[i] = x[fft.ShiftIdx(i)]
	}
	return out
}

// Unshift is the inverse of Shift.
func Unshift(x []complex128) []complex128 {
	fft := fourier.NewCmplxFFT(len(x))
	out := make([]complex128, len(x))
	for i := range out {
		out[i] = x[fft.UnshiftIdx(i)]
	}
	return out
}

// Shift2 centers a 2D spectrum: the zero-frequency coefficient lands at
// (rows/2, cols/2).
func Shift2(c *mat.CDense) *mat.CDense {
	return remap2(c, (*fourier.CmplxFFT).ShiftIdx)
}

// Unshift2 undoes Shift2, returning the coefficient layout the inverse
// transform expects.
func Unshift2(c *mat.CDense) *mat.CDense {
	return remap2(c, (*fourier.CmplxFFT).UnshiftIdx)
}

func remap2(c *mat.CDense, idx func(*fourier.CmplxFFT, int) int) *mat.CDense {
	rows, cols := c.Dims()
	rowFFT := fourier.NewCmplxFFT(rows)
	colFFT := fourier.NewCmplxFFT(cols)

	out := mat.NewCDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		si := idx(rowFFT, i)
		for j := 0; j < cols; j++ {
			out.Set(i, j, c.At(si, idx(colFFT, j)))
		}
	}
	return out
}

// Spectrum returns the centered 2D Fourier transform of a real grid.
func Spectrum(grid mat.Matrix) *mat.CDense {
	return Shift2(FFT2(grid))
}

// FrequencyAxis returns the n signed integer frequencies -n/2 .. n/2-1
// (rounded down for odd n) that index a centered spectrum.
func FrequencyAxis(n int) []float64 {
	// floor(-n/2): Go division truncates toward zero
	start := -(n + 1) / 2
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(start + i)
	}
	return axis
}
