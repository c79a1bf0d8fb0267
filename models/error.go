package models

import (
	"errors"

	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/internal/stegocore"
)

// ErrInvalidRequest covers request-shape problems the service layer rejects
// before ever calling into stegocore (empty message or text, missing cover or
// stego image, out-of-range depth or dimensions) — distinct from the
// stegocore sentinel errors below, which only arise once a container is
// actually being built or parsed.
var ErrInvalidRequest = errors.New("request is missing or has invalid fields")

// Re-exported so callers outside this package (handlers) never need to
// import stegocore directly just to run errors.Is against it.
var (
	ErrBadMagic            = stegocore.ErrBadMagic
	ErrLegacyFormat        = stegocore.ErrLegacyFormat
	ErrUnsupportedVersion  = stegocore.ErrUnsupportedVersion
	ErrMalformedHeader     = stegocore.ErrMalformedHeader
	ErrUnknownKdf          = stegocore.ErrUnknownKdf
	ErrHeaderCrcFailed     = stegocore.ErrHeaderCrcFailed
	ErrPayloadCorrupt      = stegocore.ErrPayloadCorrupt
	ErrAuthFailed          = stegocore.ErrAuthFailed
	ErrCapacityExceeded    = stegocore.ErrCapacityExceeded
	ErrMissingPassword     = stegocore.ErrMissingPassword
	ErrMissingCryptoParams = stegocore.ErrMissingCryptoParams
	ErrNoHiddenData        = stegocore.ErrNoHiddenData
	ErrUnexpectedEOF       = stegocore.ErrUnexpectedEOF
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
