package service

import (
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/models"
)

// ImageStegoService hides and reveals payloads inside raster image pixel
// data, and estimates how much of that capacity a given configuration
// would leave available.
type ImageStegoService interface {
	// CalculateCapacity reports header overhead and usable payload bytes at
	// every LSB depth, for both RGB and RGBA channel sets, without
	// requiring the caller to upload a carrier image.
	CalculateCapacity(width, height int, encrypt bool, name, mime string) (*models.CapacityResult, error)

	// EmbedImage runs hide_image: compress (optional) → encrypt (optional)
	// → frame → embed, returning the carrier-encoded PNG bytes.
	EmbedImage(req *models.EmbedImageRequest) (*models.EmbedImageResponse, error)

	// ExtractImage runs reveal_image: auto-detect depth/alpha → parse →
	// decrypt (optional) → decompress (optional).
	ExtractImage(req *models.ExtractImageRequest) (*models.ExtractImageResponse, error)
}

// EmojiStegoService hides and reveals payloads inside invisible Unicode
// characters scaffolded by visible emoji cover text.
type EmojiStegoService interface {
	EmbedEmoji(req *models.EmbedEmojiRequest) (*models.EmbedEmojiResponse, error)
	ExtractEmoji(req *models.ExtractEmojiRequest) (*models.ExtractEmojiResponse, error)
}

// FidelityService estimates how visually lossy an embedding was, for
// diagnostics surfaced to callers that want to judge a depth/alpha choice.
type FidelityService interface {
	// EstimatePixelFidelity computes a PSNR-style figure (in dB) between
	// two equal-length RGBA buffers. Returns +Inf for an identical buffer,
	// 0 when the buffers are not comparable.
	EstimatePixelFidelity(original, modified []byte) float64
}
