package service

import (
	"log"
	"math"
)

// fidelityService implements FidelityService.
type fidelityService struct{}

// NewFidelityService creates a new fidelity service instance.
func NewFidelityService() FidelityService {
	return &fidelityService{}
}

// EstimatePixelFidelity calculates Peak Signal-to-Noise Ratio between an
// original and modified RGBA buffer. Adapted from the teacher's 16-bit PCM
// PSNR calculation to 8-bit-per-channel pixel samples: same MSE-then-dB
// shape, different sample width and max value.
func (f *fidelityService) EstimatePixelFidelity(original, modified []byte) float64 {
	if len(original) != len(modified) {
		log.Printf("[WARN] EstimatePixelFidelity: length mismatch - original: %d, modified: %d", len(original), len(modified))
		return 0.0
	}
	if len(original) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(modified[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	if mse == 0 {
		return math.Inf(1)
	}

	const maxValue = 255.0
	psnr := 20 * math.Log10(maxValue/math.Sqrt(mse))

	log.Printf("[DEBUG] EstimatePixelFidelity: MSE=%.6f, PSNR=%.2f dB (samples: %d)", mse, psnr, len(original))
	return psnr
}
