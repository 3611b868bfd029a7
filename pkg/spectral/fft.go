// Package spectral wraps the gonum Fourier routines with the 1D/2D
// transforms and centering shifts used by the reconstruction demo.
package spectral

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// FFT performs a 1D Fast Fourier Transform on real input and returns the
// full n-point spectrum, uncentered.
func FFT(x []float64) []complex128 {
	n := len(x)
	fft := fourier.NewFFT(n)

	// Gonum only returns the non-negative half for real input
	half := fft.Coefficients(nil, x)

	// Use conjugate symmetry: F(n-k) = F*(k)
	full := make([]complex128, n)
	copy(full, half)
	for j := len(half); j < n; j++ {
		full[j] = cmplx.Conj(half[n-j])
	}

	return full
}

// FFT2 performs a 2D Fast Fourier Transform on a real matrix, rows first
// and then columns. The result is uncentered.
func FFT2(m mat.Matrix) *mat.CDense {
	rows, cols := m.Dims()
	data := make([]complex128, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = complex(m.At(i, j), 0)
		}
	}

	transform2D(data, rows, cols, true)
	return mat.NewCDense(rows, cols, data)
}

// IFFT2 performs the normalized inverse 2D transform, so that
// IFFT2(FFT2(m)) reproduces m up to rounding.
func IFFT2(c *mat.CDense) *mat.CDense {
	rows, cols := c.Dims()
	data := make([]complex128, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = c.At(i, j)
		}
	}

	transform2D(data, rows, cols, false)

	scale := complex(1/float64(rows*cols), 0)
	for i := range data {
		data[i] *= scale
	}
	return mat.NewCDense(rows, cols, data)
}

// transform2D runs the complex FFT over every row and then every column of
// a row-major buffer, in place. Gonum transforms are unnormalized.
func transform2D(data []complex128, rows, cols int, forward bool) {
	rowFFT := fourier.NewCmplxFFT(cols)
	colFFT := fourier.NewCmplxFFT(rows)

	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		if forward {
			rowFFT.Coefficients(row, row)
		} else {
			rowFFT.Sequence(row, row)
		}
	}

	col := make([]complex128, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = data[i*cols+j]
		}
		if forward {
			colFFT.Coefficients(col, col)
		} else {
			colFFT.Sequence(col, col)
		}
		for i := 0; i < rows; i++ {
			data[i*cols+j] = col[i]
		}
	}
}

// RealPart returns the real component of every element of c.
func RealPart(c *mat.CDense) *mat.Dense {
	rows, cols := c.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, real(c.At(i, j)))
		}
	}
	return out
}
