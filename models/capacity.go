package models

// CapacityResult answers estimate_capacity for an image carrier: header
// overhead plus usable payload capacity at every depth, with and without
// the alpha channel, so a caller can pick a depth before ever uploading an
// image (§6 of the capacity contract — no carrier upload required).
type CapacityResult struct {
	HeaderSize int `json:"header_size"`
	// RGB (no alpha) capacity at depth d, d = 1..4.
	OneLSBRGB   int `json:"1_lsb_rgb"`
	TwoLSBRGB   int `json:"2_lsb_rgb"`
	ThreeLSBRGB int `json:"3_lsb_rgb"`
	FourLSBRGB  int `json:"4_lsb_rgb"`
	// RGBA capacity at depth d — 33% higher than RGB, per the alpha-channel
	// warning in the spec's redesign notes.
	OneLSBRGBA   int `json:"1_lsb_rgba"`
	TwoLSBRGBA   int `json:"2_lsb_rgba"`
	ThreeLSBRGBA int `json:"3_lsb_rgba"`
	FourLSBRGBA  int `json:"4_lsb_rgba"`
}
