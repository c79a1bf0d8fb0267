// Package imageio provides the lossless raster carrier source/sink the
// stegocore pipeline embeds into and extracts from. PNG is the only output
// format (JPEG is accepted on decode only): it is lossless and preserves
// every channel bit exactly, which a
// carrier format must do — JPEG re-encoding or any other lossy step would
// destroy the embedded low bits, per the steganography package's Non-goals.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	_ "image/jpeg" // accept JPEG on decode; never used as a sink
)

// DecodePNG reads a raster image from r and flattens it into a row-major
// RGBA byte buffer (4 bytes/pixel, not premultiplied). Input may be PNG or
// JPEG; output is always normalized to raw 8-bit-per-channel samples.
//
// image.Image.At/.RGBA returns alpha-premultiplied samples, which only
// equal the raw channel value when A==255 — for any other alpha, dividing
// by 256 silently corrupts R/G/B. Converting through color.NRGBAModel
// un-premultiplies correctly for every alpha value, which matters here
// because use_alpha embedding routinely produces non-0xFF alpha on the
// stego carrier.
func DecodePNG(r io.Reader) (width, height int, rgba []byte, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("imageio: decode: %w", err)
	}

	bounds := img.Bounds()
	width = bounds.Dx()
	height = bounds.Dy()
	rgba = make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			idx := (y*width + x) * 4
			rgba[idx+0] = c.R
			rgba[idx+1] = c.G
			rgba[idx+2] = c.B
			rgba[idx+3] = c.A
		}
	}
	return width, height, rgba, nil
}

// EncodePNG writes rgba (row-major, 4 bytes/pixel, not premultiplied) as a
// lossless PNG. PNG's NRGBA encoder stores channels exactly as given, with
// no quantization and no forced alpha-stripping, satisfying the carrier
// sink contract.
func EncodePNG(w io.Writer, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return fmt.Errorf("imageio: encode: rgba buffer has %d bytes, want %d", len(rgba), width*height*4)
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4
			out.SetNRGBA(x, y, color.NRGBA{
				R: rgba[idx+0],
				G: rgba[idx+1],
				B: rgba[idx+2],
				A: rgba[idx+3],
			})
		}
	}
	return png.Encode(w, out)
}
