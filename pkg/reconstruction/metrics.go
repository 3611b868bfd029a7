package reconstruction

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ValidationMetrics compares a reconstruction against the phantom.
type ValidationMetrics struct {
	// NCC is the normalized cross-correlation (Pearson correlation) of the
	// two images. 1 means identical up to gain and offset.
	NCC float64

	// MI approximates mutual information under a Gaussian assumption.
	// Higher values indicate better information preservation.
	MI float64

	// RMSE is the root mean square error after both images are min-max
	// normalized to [0, 1].
	RMSE float64

	// SSIM is the global structural similarity index of the normalized
	// images, in [-1, 1].
	SSIM float64
}

// Metrics computes quality metrics of recon against the phantom. recon must
// have the phantom's dimensions.
func (r *Reconstructor) Metrics(recon mat.Matrix) ValidationMetrics {
	original := flatten(r.phantom)
	reconstructed := flatten(recon)

	normOrig := normalize(original)
	normRecon := normalize(reconstructed)

	return ValidationMetrics{
		NCC:  calculateNCC(original, reconstructed),
		MI:   calculateMutualInformation(original, reconstructed),
		RMSE: calculateRMSE(normOrig, normRecon),
		SSIM: calculateSSIM(normOrig, normRecon),
	}
}

func calculateNCC(original, reconstructed []float64) float64 {
	if len(original) != len(reconstructed) || len(original) == 0 {
		return 0
	}
	c := stat.Correlation(original, reconstructed, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}

// calculateMutualInformation uses MI ≈ 0.5 * log(var(X) * var(Y) / (var(X) * var(Y) - cov(X,Y)²))
func calculateMutualInformation(original, reconstructed []float64) float64 {
	if len(original) != len(reconstructed) || len(original) < 2 {
		return 0
	}

	varOrig := stat.Variance(original, nil)
	varRecon := stat.Variance(reconstructed, nil)
	covar := stat.Covariance(original, reconstructed, nil)

	if varOrig > 0 && varRecon > 0 {
		determinant := varOrig*varRecon - covar*covar
		if determinant > 0 {
			return 0.5 * math.Log(varOrig*varRecon/determinant)
		}
	}

	return 0
}

// calculateRMSE computes the root mean square error
func calculateRMSE(original, reconstructed []float64) float64 {
	n := len(original)
	if n != len(reconstructed) || n == 0 {
		return 0
	}

	return floats.Distance(original, reconstructed, 2) / math.Sqrt(float64(n))
}

// calculateSSIM computes the Structural Similarity Index
func calculateSSIM(original, reconstructed []float64) float64 {
	// Constants for SSIM calculation
	const L = 1.0 // Dynamic range
	const k1 = 0.01
	const k2 = 0.03

	c1 := (k1 * L) * (k1 * L)
	c2 := (k2 * L) * (k2 * L)

	n := len(original)
	if n != len(reconstructed) || n < 2 {
		return 0
	}

	muX := stat.Mean(original, nil)
	muY := stat.Mean(reconstructed, nil)

	sigmaX := stat.Variance(original, nil)
	sigmaY := stat.Variance(reconstructed, nil)
	sigmaXY := stat.Covariance(original, reconstructed, nil)

	num := (2*muX*muY + c1) * (2*sigmaXY + c2)
	den := (muX*muX + muY*muY + c1) * (sigmaX + sigmaY + c2)

	if den > 0 {
		return num / den
	}
	return 0
}

func flatten(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// normalize rescales data to [0, 1]. Constant data maps to zeros.
func normalize(data []float64) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}
	lo, hi := floats.Min(data), floats.Max(data)
	if hi <= lo {
		return out
	}
	for i, v := range data {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
