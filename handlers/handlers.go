package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/models"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/service"
)

// Handlers struct holds service dependencies
type Handlers struct {
	imageStego service.ImageStegoService
	emojiStego service.EmojiStegoService
}

// NewHandlers creates a new handlers instance with service dependencies
func NewHandlers(imageStego service.ImageStegoService, emojiStego service.EmojiStegoService) *Handlers {
	return &Handlers{
		imageStego: imageStego,
		emojiStego: emojiStego,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// CapacityResponse represents the capacity calculation response
type CapacityResponse struct {
	Capacities       models.CapacityResult `json:"capacities"`
	ImageInfo        ImageInfo             `json:"image_info"`
	ProcessingTimeMs int                   `json:"processing_time_ms"`
}

// ImageInfo describes the carrier image a capacity request was computed for.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HealthHandler handles the health check endpoint
//
//	@Summary		Health Check
//	@Description	Returns the health status of the API service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"Service is healthy"
//	@Router			/health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	})
}

// CalculateCapacityHandler handles the capacity estimation request
//
//	@Summary		Estimate image embedding capacity
//	@Description	Reports header overhead and usable payload bytes at every LSB depth, for RGB and RGBA channel sets, given only the carrier's dimensions.
//	@Tags			Steganography
//	@Accept			json
//	@Produce		json
//	@Param			width		query		int						true	"Carrier width in pixels"
//	@Param			height		query		int						true	"Carrier height in pixels"
//	@Param			encrypt		query		bool					false	"Whether encryption will be used"
//	@Param			name		query		string					false	"Payload filename, for header-size accuracy"
//	@Param			mime		query		string					false	"Payload MIME type, for header-size accuracy"
//	@Success		200			{object}	CapacityResponse		"Successfully calculated embedding capacity."
//	@Failure		400			{object}	models.ErrorResponse	"Bad Request: missing or invalid width/height."
//	@Router			/capacity [post]
func (h *Handlers) CalculateCapacityHandler(c *gin.Context) {
	startTime := time.Now()

	width, err := strconv.Atoi(c.Query("width"))
	if err != nil || width <= 0 {
		sendError(c, http.StatusBadRequest, "INVALID_DIMENSIONS", "width must be a positive integer")
		return
	}
	height, err := strconv.Atoi(c.Query("height"))
	if err != nil || height <= 0 {
		sendError(c, http.StatusBadRequest, "INVALID_DIMENSIONS", "height must be a positive integer")
		return
	}
	encrypt := c.Query("encrypt") == "true"
	name := c.DefaultQuery("name", "payload.bin")
	mime := c.DefaultQuery("mime", "application/octet-stream")

	capacities, err := h.imageStego.CalculateCapacity(width, height, encrypt, name, mime)
	if err != nil {
		writeStegoError(c, err)
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.JSON(http.StatusOK, CapacityResponse{
		Capacities:       *capacities,
		ImageInfo:        ImageInfo{Width: width, Height: height},
		ProcessingTimeMs: processingTime,
	})
}

// EmbedImageHandler hides a secret file inside a carrier image's pixel LSBs.
//
//	@Summary		Hide a payload inside an image
//	@Description	Embeds a secret file into the provided carrier image using LSB steganography, with optional gzip compression and AES-256-GCM encryption.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		image/png
//	@Param			image		formData	file	true	"Carrier image (PNG or JPEG)"
//	@Param			secret		formData	file	true	"Secret file to embed"
//	@Param			depth		formData	int		false	"LSB depth, 1-4 (default 1)"
//	@Param			use_alpha	formData	bool	false	"Use the alpha channel"
//	@Param			encrypt		formData	bool	false	"Enable AES-256-GCM encryption"
//	@Param			compress	formData	bool	false	"Enable opportunistic gzip compression"
//	@Param			password	formData	string	false	"Password, required when encrypt=true"
//	@Success		200			{file}		binary	"Carrier PNG with the payload hidden inside"
//	@Failure		400			{object}	models.ErrorResponse	"Invalid input"
//	@Failure		413			{object}	models.ErrorResponse	"Payload exceeds carrier capacity"
//	@Failure		500			{object}	models.ErrorResponse	"Processing error"
//	@Router			/hide/image [post]
func (h *Handlers) EmbedImageHandler(c *gin.Context) {
	imageHeader, err := c.FormFile("image")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILES", "carrier image not provided")
		return
	}
	imageData, err := readFormFile(imageHeader)
	if err != nil {
		sendError(c, http.StatusBadRequest, "PROCESSING_ERROR", "failed to read carrier image")
		return
	}

	secretHeader, err := c.FormFile("secret")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILES", "secret file not provided")
		return
	}
	secretData, err := readFormFile(secretHeader)
	if err != nil {
		sendError(c, http.StatusBadRequest, "PROCESSING_ERROR", "failed to read secret file")
		return
	}

	depth := 1
	if v := c.PostForm("depth"); v != "" {
		depth, err = strconv.Atoi(v)
		if err != nil || depth < 1 || depth > 4 {
			sendError(c, http.StatusBadRequest, "INVALID_DEPTH", "depth must be between 1 and 4")
			return
		}
	}
	useAlpha := c.PostForm("use_alpha") == "true"
	encrypt := c.PostForm("encrypt") == "true"
	compress := c.PostForm("compress") == "true"
	password := c.PostForm("password")

	req := &models.EmbedImageRequest{
		CoverImage:     imageData,
		SecretFile:     secretData,
		SecretFileName: secretHeader.Filename,
		Password:       password,
		Depth:          depth,
		UseAlpha:       useAlpha,
		UseEncryption:  encrypt,
		UseCompression: compress,
	}

	resp, err := h.imageStego.EmbedImage(req)
	if err != nil {
		writeStegoError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "stego_"+imageHeader.Filename))
	c.Header("X-PSNR-Value", fmt.Sprintf("%.2f", resp.PSNR))
	c.Header("X-Embedding-Method", fmt.Sprintf("%d-LSB", depth))
	c.Header("X-Secret-Size", strconv.Itoa(len(secretData)))
	c.Data(http.StatusOK, "image/png", resp.StegoImage)
}

// ExtractImageHandler reveals a secret file previously hidden in an image.
//
//	@Summary		Reveal a payload hidden inside an image
//	@Description	Auto-detects LSB depth and alpha usage, parses the container, and decrypts/decompresses as needed.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		application/octet-stream
//	@Param			image		formData	file	true	"Stego image"
//	@Param			password	formData	string	false	"Password, required if the payload was encrypted"
//	@Success		200			{file}		binary					"Extracted secret file"
//	@Failure		400			{object}	models.ErrorResponse	"Invalid input"
//	@Failure		401			{object}	models.ErrorResponse	"Authentication failed or password required"
//	@Failure		422			{object}	models.ErrorResponse	"Container missing or corrupt"
//	@Router			/reveal/image [post]
func (h *Handlers) ExtractImageHandler(c *gin.Context) {
	imageHeader, err := c.FormFile("image")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", "stego image not provided")
		return
	}
	imageData, err := readFormFile(imageHeader)
	if err != nil {
		sendError(c, http.StatusBadRequest, "PROCESSING_ERROR", "failed to read stego image")
		return
	}

	password := c.PostForm("password")

	resp, err := h.imageStego.ExtractImage(&models.ExtractImageRequest{StegoImage: imageData, Password: password})
	if err != nil {
		writeStegoError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(resp.Filename)))
	c.Header("X-Secret-Size", strconv.Itoa(resp.FileSize))
	mime := resp.MIME
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Data(http.StatusOK, mime, resp.SecretData)
}

// EmbedEmojiHandler hides a UTF-8 message inside invisible Unicode
// characters scaffolded by cover emoji.
//
//	@Summary		Hide a message inside emoji cover text
//	@Description	Embeds a UTF-8 message as zero-width characters interleaved with cover emoji graphemes.
//	@Tags			Steganography
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	models.EmbedEmojiResponse
//	@Failure		400	{object}	models.ErrorResponse
//	@Router			/hide/emoji [post]
func (h *Handlers) EmbedEmojiHandler(c *gin.Context) {
	var req models.EmbedEmojiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON matching EmbedEmojiRequest")
		return
	}

	resp, err := h.emojiStego.EmbedEmoji(&req)
	if err != nil {
		writeStegoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExtractEmojiHandler reveals a message previously hidden in emoji cover
// text.
//
//	@Summary		Reveal a message hidden inside emoji cover text
//	@Description	Scans arbitrary text for ZWSP/ZWNJ characters, reassembles the container, and decrypts/decompresses as needed.
//	@Tags			Steganography
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	models.ExtractEmojiResponse
//	@Failure		400	{object}	models.ErrorResponse
//	@Failure		401	{object}	models.ErrorResponse
//	@Router			/reveal/emoji [post]
func (h *Handlers) ExtractEmojiHandler(c *gin.Context) {
	var req models.ExtractEmojiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON matching ExtractEmojiRequest")
		return
	}

	resp, err := h.emojiStego.ExtractEmoji(&req)
	if err != nil {
		writeStegoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// readFormFile opens and fully reads a multipart form file.
func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// sendError sends a standardized error response
func sendError(c *gin.Context, statusCode int, code string, message string) {
	log.Printf("[ERROR] %s: %s", code, message)
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeStegoError maps a stegocore/service error to the HTTP status and
// code the spec's error taxonomy assigns it.
func writeStegoError(c *gin.Context, err error) {
	status, code := mapStegoError(err)
	log.Printf("[ERROR] %s: %v", code, err)
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func mapStegoError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, models.ErrBadMagic):
		return http.StatusBadRequest, "BAD_MAGIC"
	case errors.Is(err, models.ErrLegacyFormat):
		return http.StatusUnprocessableEntity, "LEGACY_FORMAT"
	case errors.Is(err, models.ErrUnsupportedVersion):
		return http.StatusUnprocessableEntity, "UNSUPPORTED_VERSION"
	case errors.Is(err, models.ErrMalformedHeader):
		return http.StatusBadRequest, "MALFORMED_HEADER"
	case errors.Is(err, models.ErrUnknownKdf):
		return http.StatusUnprocessableEntity, "UNKNOWN_KDF"
	case errors.Is(err, models.ErrHeaderCrcFailed):
		return http.StatusUnprocessableEntity, "HEADER_CRC_FAILED"
	case errors.Is(err, models.ErrPayloadCorrupt):
		return http.StatusUnprocessableEntity, "PAYLOAD_CORRUPT"
	case errors.Is(err, models.ErrAuthFailed):
		return http.StatusUnauthorized, "AUTH_FAILED"
	case errors.Is(err, models.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge, "CAPACITY_EXCEEDED"
	case errors.Is(err, models.ErrMissingPassword):
		return http.StatusUnauthorized, "MISSING_PASSWORD"
	case errors.Is(err, models.ErrMissingCryptoParams):
		return http.StatusUnprocessableEntity, "MISSING_CRYPTO_PARAMS"
	case errors.Is(err, models.ErrNoHiddenData):
		return http.StatusBadRequest, "NO_HIDDEN_DATA"
	case errors.Is(err, models.ErrUnexpectedEOF):
		return http.StatusUnprocessableEntity, "UNEXPECTED_EOF"
	default:
		return http.StatusInternalServerError, "PROCESSING_ERROR"
	}
}
