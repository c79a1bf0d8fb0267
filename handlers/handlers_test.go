package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/internal/imageio"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/models"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapStegoError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid request", models.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad magic", models.ErrBadMagic, http.StatusBadRequest, "BAD_MAGIC"},
		{"malformed header", models.ErrMalformedHeader, http.StatusBadRequest, "MALFORMED_HEADER"},
		{"legacy format", models.ErrLegacyFormat, http.StatusUnprocessableEntity, "LEGACY_FORMAT"},
		{"auth failed", models.ErrAuthFailed, http.StatusUnauthorized, "AUTH_FAILED"},
		{"missing password", models.ErrMissingPassword, http.StatusUnauthorized, "MISSING_PASSWORD"},
		{"capacity exceeded", models.ErrCapacityExceeded, http.StatusRequestEntityTooLarge, "CAPACITY_EXCEEDED"},
		{"no hidden data", models.ErrNoHiddenData, http.StatusBadRequest, "NO_HIDDEN_DATA"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "PROCESSING_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := mapStegoError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("mapStegoError(%v) status = %d, want %d", tt.err, status, tt.wantStatus)
			}
			if code != tt.wantCode {
				t.Errorf("mapStegoError(%v) code = %q, want %q", tt.err, code, tt.wantCode)
			}
		})
	}
}

func newTestRouter() (*gin.Engine, *Handlers) {
	h := NewHandlers(
		service.NewImageStegoService(service.NewFidelityService()),
		service.NewEmojiStegoService(),
	)
	r := gin.New()
	r.GET("/health", h.HealthHandler)
	r.POST("/capacity", h.CalculateCapacityHandler)
	r.POST("/hide/image", h.EmbedImageHandler)
	r.POST("/reveal/image", h.ExtractImageHandler)
	r.POST("/hide/emoji", h.EmbedEmojiHandler)
	r.POST("/reveal/emoji", h.ExtractEmojiHandler)
	return r, h
}

func TestHealthHandler(t *testing.T) {
	r, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status field = %q, want healthy", resp.Status)
	}
}

func TestCalculateCapacityHandlerMissingDimensions(t *testing.T) {
	r, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/capacity", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCalculateCapacityHandlerSuccess(t *testing.T) {
	r, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/capacity?width=100&height=100", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var resp CapacityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Capacities.OneLSBRGB <= 0 {
		t.Errorf("capacities = %+v, want positive OneLSBRGB", resp.Capacities)
	}
}

func TestEmbedExtractImageHandlersRoundTrip(t *testing.T) {
	r, _ := newTestRouter()

	cover := makeHandlerTestPNG(t, 48, 48)

	var embedBody bytes.Buffer
	mw := multipart.NewWriter(&embedBody)
	writeFormFile(t, mw, "image", "cover.png", cover)
	writeFormFile(t, mw, "secret", "note.txt", []byte("handlers round trip"))
	mw.WriteField("depth", "2")
	mw.Close()

	embedReq := httptest.NewRequest(http.MethodPost, "/hide/image", &embedBody)
	embedReq.Header.Set("Content-Type", mw.FormDataContentType())
	embedW := httptest.NewRecorder()
	r.ServeHTTP(embedW, embedReq)

	if embedW.Code != http.StatusOK {
		t.Fatalf("embed status = %d, want 200, body=%s", embedW.Code, embedW.Body.String())
	}
	stego := embedW.Body.Bytes()

	var revealBody bytes.Buffer
	rw := multipart.NewWriter(&revealBody)
	writeFormFile(t, rw, "image", "stego.png", stego)
	rw.Close()

	revealReq := httptest.NewRequest(http.MethodPost, "/reveal/image", &revealBody)
	revealReq.Header.Set("Content-Type", rw.FormDataContentType())
	revealW := httptest.NewRecorder()
	r.ServeHTTP(revealW, revealReq)

	if revealW.Code != http.StatusOK {
		t.Fatalf("reveal status = %d, want 200, body=%s", revealW.Code, revealW.Body.String())
	}
	if revealW.Body.String() != "handlers round trip" {
		t.Errorf("revealed body = %q, want %q", revealW.Body.String(), "handlers round trip")
	}
}

func TestEmbedEmojiHandlerRejectsInvalidBody(t *testing.T) {
	r, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/hide/emoji", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestEmbedRevealEmojiHandlersRoundTrip(t *testing.T) {
	r, _ := newTestRouter()

	embedPayload, _ := json.Marshal(map[string]any{"message": "handlers emoji round trip", "theme": "mixed"})
	embedReq := httptest.NewRequest(http.MethodPost, "/hide/emoji", bytes.NewReader(embedPayload))
	embedReq.Header.Set("Content-Type", "application/json")
	embedW := httptest.NewRecorder()
	r.ServeHTTP(embedW, embedReq)
	if embedW.Code != http.StatusOK {
		t.Fatalf("embed status = %d, want 200, body=%s", embedW.Code, embedW.Body.String())
	}

	var embedResp models.EmbedEmojiResponse
	if err := json.Unmarshal(embedW.Body.Bytes(), &embedResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	revealPayload, _ := json.Marshal(map[string]any{"text": embedResp.Text})
	revealReq := httptest.NewRequest(http.MethodPost, "/reveal/emoji", bytes.NewReader(revealPayload))
	revealReq.Header.Set("Content-Type", "application/json")
	revealW := httptest.NewRecorder()
	r.ServeHTTP(revealW, revealReq)
	if revealW.Code != http.StatusOK {
		t.Fatalf("reveal status = %d, want 200, body=%s", revealW.Code, revealW.Body.String())
	}

	var revealResp models.ExtractEmojiResponse
	if err := json.Unmarshal(revealW.Body.Bytes(), &revealResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if revealResp.Text != "handlers emoji round trip" {
		t.Errorf("revealed text = %q, want %q", revealResp.Text, "handlers emoji round trip")
	}
}

func makeHandlerTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rgba := make([]byte, width*height*4)
	for i := range rgba {
		rgba[i] = byte(i * 11)
	}
	for i := 3; i < len(rgba); i += 4 {
		rgba[i] = 255
	}
	var buf bytes.Buffer
	if err := imageio.EncodePNG(&buf, width, height, rgba); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	return buf.Bytes()
}

func writeFormFile(t *testing.T, mw *multipart.Writer, field, filename string, data []byte) {
	t.Helper()
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
}
