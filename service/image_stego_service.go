package service

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"

	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/internal/imageio"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/internal/stegocore"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/models"
)

// imageStegoService implements ImageStegoService over a PNG carrier and
// the stegocore pipeline.
type imageStegoService struct {
	fidelity FidelityService
}

// NewImageStegoService creates a new image steganography service instance.
func NewImageStegoService(fidelity FidelityService) ImageStegoService {
	return &imageStegoService{fidelity: fidelity}
}

func (s *imageStegoService) CalculateCapacity(width, height int, encrypt bool, name, mime string) (*models.CapacityResult, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", models.ErrInvalidRequest)
	}

	result := &models.CapacityResult{}

	headerSize, oneRGB, err := stegocore.EstimateCapacity(width, height, 1, false, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.HeaderSize = headerSize
	result.OneLSBRGB = oneRGB

	_, twoRGB, err := stegocore.EstimateCapacity(width, height, 2, false, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.TwoLSBRGB = twoRGB

	_, threeRGB, err := stegocore.EstimateCapacity(width, height, 3, false, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.ThreeLSBRGB = threeRGB

	_, fourRGB, err := stegocore.EstimateCapacity(width, height, 4, false, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.FourLSBRGB = fourRGB

	_, oneRGBA, err := stegocore.EstimateCapacity(width, height, 1, true, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.OneLSBRGBA = oneRGBA

	_, twoRGBA, err := stegocore.EstimateCapacity(width, height, 2, true, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.TwoLSBRGBA = twoRGBA

	_, threeRGBA, err := stegocore.EstimateCapacity(width, height, 3, true, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.ThreeLSBRGBA = threeRGBA

	_, fourRGBA, err := stegocore.EstimateCapacity(width, height, 4, true, encrypt, name, mime)
	if err != nil {
		return nil, err
	}
	result.FourLSBRGBA = fourRGBA

	log.Printf("[DEBUG] CalculateCapacity: %dx%d encrypt=%v header=%d", width, height, encrypt, headerSize)
	return result, nil
}

func (s *imageStegoService) EmbedImage(req *models.EmbedImageRequest) (*models.EmbedImageResponse, error) {
	if len(req.CoverImage) == 0 {
		return nil, fmt.Errorf("%w: cover image is required", models.ErrInvalidRequest)
	}
	if req.Depth < 1 || req.Depth > 4 {
		return nil, fmt.Errorf("%w: depth must be between 1 and 4", models.ErrInvalidRequest)
	}

	width, height, rgba, err := imageio.DecodePNG(bytes.NewReader(req.CoverImage))
	if err != nil {
		return nil, err
	}
	original := append([]byte(nil), rgba...)

	name := req.SecretFileName
	if name == "" {
		name = "payload.bin"
	}
	mime := req.SecretMIME
	if mime == "" {
		mime = "application/octet-stream"
	}

	descriptor := stegocore.PayloadDescriptor{Name: name, MIME: mime, Body: req.SecretFile}
	opts := stegocore.HideImageOptions{
		Encrypt:  req.UseEncryption,
		Compress: req.UseCompression,
		Password: req.Password,
		Depth:    req.Depth,
		UseAlpha: req.UseAlpha,
	}

	if err := stegocore.HideImage(rgba, width, height, descriptor, opts); err != nil {
		log.Printf("[WARN] EmbedImage: hide failed: %v", err)
		return nil, err
	}

	var out bytes.Buffer
	if err := imageio.EncodePNG(&out, width, height, rgba); err != nil {
		return nil, err
	}

	psnr := s.fidelity.EstimatePixelFidelity(original, rgba)
	log.Printf("[INFO] EmbedImage: embedded %d bytes at depth=%d alpha=%v, PSNR=%.2f dB", len(req.SecretFile), req.Depth, req.UseAlpha, psnr)

	return &models.EmbedImageResponse{StegoImage: out.Bytes(), PSNR: psnr}, nil
}

func (s *imageStegoService) ExtractImage(req *models.ExtractImageRequest) (*models.ExtractImageResponse, error) {
	if len(req.StegoImage) == 0 {
		return nil, fmt.Errorf("%w: stego image is required", models.ErrInvalidRequest)
	}

	width, height, rgba, err := imageio.DecodePNG(bytes.NewReader(req.StegoImage))
	if err != nil {
		return nil, err
	}

	revealed, err := stegocore.RevealImage(rgba, width, height, req.Password)
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] ExtractImage: revealed %q (%d bytes), encrypted=%v compressed=%v", revealed.Name, len(revealed.Bytes), revealed.WasEncrypted, revealed.WasCompressed)

	return &models.ExtractImageResponse{
		SecretData:    revealed.Bytes,
		Filename:      filenameOrDefault(revealed.Name),
		MIME:          revealed.MIME,
		FileSize:      len(revealed.Bytes),
		WasEncrypted:  revealed.WasEncrypted,
		WasCompressed: revealed.WasCompressed,
	}, nil
}

func filenameOrDefault(name string) string {
	if name == "" {
		return "payload.bin"
	}
	return filepath.Base(name)
}
