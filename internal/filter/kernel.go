package filter

import (
	"math"

	"github.com/gogpu/donut/internal/cache"
)

// Sigma converts a canvas-style blur value to a Gaussian standard deviation.
func Sigma(blur float64) float64 {
	if blur <= 0 {
		return 0
	}
	return blur / 2
}

// KernelRadius returns the half-size of the kernel used for the blur value.
// It is also how far a blurred shape grows in every direction.
func KernelRadius(blur float64) int {
	sigma := Sigma(blur)
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// GaussianKernel generates a normalized 1D Gaussian kernel for the canvas
// blur value. The kernel covers three standard deviations on each side.
//
// For blur <= 0, returns the identity kernel [1.0].
func GaussianKernel(blur float64) []float32 {
	sigma := Sigma(blur)
	if sigma <= 0 {
		return []float32{1.0}
	}

	half := KernelRadius(blur)
	kernel := make([]float32, half*2+1)

	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}

	inv := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels keeps kernels for the handful of blur values a chart uses.
// Keys are blur values quantized to 0.01.
var kernels = cache.New[int, []float32](32)

// CachedGaussianKernel returns a shared kernel for the blur value.
// The returned slice must not be modified.
func CachedGaussianKernel(blur float64) []float32 {
	return kernels.GetOrCreate(int(math.Round(blur*100)), func() []float32 {
		return GaussianKernel(blur)
	})
}
