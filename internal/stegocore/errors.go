package stegocore

import "errors"

// Error taxonomy for the stegano-container. One sentinel per condition, no
// overlap — callers use errors.Is to branch on kind.
var (
	ErrBadMagic            = errors.New("stegocore: carrier does not begin with the expected container magic")
	ErrLegacyFormat        = errors.New("stegocore: carrier begins with a legacy STEG marker, unsupported")
	ErrUnsupportedVersion  = errors.New("stegocore: unsupported container version")
	ErrMalformedHeader     = errors.New("stegocore: malformed container header")
	ErrUnknownKdf          = errors.New("stegocore: unknown key derivation function id")
	ErrHeaderCrcFailed     = errors.New("stegocore: header CRC check failed")
	ErrPayloadCorrupt      = errors.New("stegocore: payload CRC check failed")
	ErrAuthFailed          = errors.New("stegocore: AEAD authentication failed, wrong password or tampered body")
	ErrCapacityExceeded    = errors.New("stegocore: framed payload exceeds carrier capacity")
	ErrMissingPassword     = errors.New("stegocore: carrier is encrypted but no password was supplied")
	ErrMissingCryptoParams = errors.New("stegocore: encryption requested but salt/iv/iterations were not supplied")
	ErrNoHiddenData        = errors.New("stegocore: no hidden invisible characters found in text")
	ErrUnexpectedEOF       = errors.New("stegocore: carrier bit stream exhausted before container was satisfied")
	ErrFieldTooWide        = errors.New("stegocore: value does not fit in the declared field width")
)
