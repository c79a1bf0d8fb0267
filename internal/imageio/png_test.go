package imageio

import (
	"bytes"
	"testing"
)

func TestEncodeDecodePNGRoundTrip(t *testing.T) {
	width, height := 12, 9
	rgba := make([]byte, width*height*4)
	for i := range rgba {
		rgba[i] = byte(i * 13)
	}
	// Full opacity here; non-255 alpha is covered by
	// TestEncodeDecodePNGRoundTripPartialAlpha.
	for i := 3; i < len(rgba); i += 4 {
		rgba[i] = 255
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, width, height, rgba); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	gotWidth, gotHeight, gotRGBA, err := DecodePNG(&buf)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	if gotWidth != width || gotHeight != height {
		t.Fatalf("dimensions = %dx%d, want %dx%d", gotWidth, gotHeight, width, height)
	}
	if len(gotRGBA) != len(rgba) {
		t.Fatalf("buffer length = %d, want %d", len(gotRGBA), len(rgba))
	}
	for i := range rgba {
		if gotRGBA[i] != rgba[i] {
			t.Fatalf("byte %d = %d, want %d", i, gotRGBA[i], rgba[i])
		}
	}
}

// TestEncodeDecodePNGRoundTripPartialAlpha exercises the use_alpha=true path,
// where the low bits of a non-255 alpha channel carry payload bits. Decoding
// must recover the exact R/G/B/A byte values regardless of alpha, not just
// at full opacity — image.Color.RGBA() returns premultiplied samples that
// only divide back cleanly when A==255.
func TestEncodeDecodePNGRoundTripPartialAlpha(t *testing.T) {
	width, height := 10, 10
	rgba := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		idx := i * 4
		rgba[idx+0] = byte(17 * i)
		rgba[idx+1] = byte(53 * i)
		rgba[idx+2] = byte(101 * i)
		rgba[idx+3] = byte(i % 256) // varying, mostly non-255 alpha
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, width, height, rgba); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	_, _, gotRGBA, err := DecodePNG(&buf)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	for i := range rgba {
		if gotRGBA[i] != rgba[i] {
			t.Fatalf("byte %d = %d, want %d (partial-alpha round trip must be exact, not just at A=255)", i, gotRGBA[i], rgba[i])
		}
	}
}

func TestEncodePNGRejectsMismatchedBuffer(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, 4, 4, make([]byte, 10)); err == nil {
		t.Error("expected an error for a mis-sized RGBA buffer, got nil")
	}
}
