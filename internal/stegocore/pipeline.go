package stegocore

import (
	"errors"
	"log"
)

// HideImageOptions controls the image hide pipeline.
type HideImageOptions struct {
	Encrypt  bool
	Compress bool
	Password string
	Depth    int
	UseAlpha bool
}

// HideImage runs compress→encrypt→frame→embed over rgba in place, per spec
// §4.G. rgba must be width*height*4 bytes (row-major RGBA, uncompressed).
func HideImage(rgba []byte, width, height int, desc PayloadDescriptor, opts HideImageOptions) error {
	if opts.Depth < 1 || opts.Depth > 4 {
		opts.Depth = 1
	}

	flags := flagsForMIME(desc.MIME)
	body := desc.Body
	originalSize := uint64(len(desc.Body))

	if opts.Compress {
		compressed, adopted, err := maybeCompress(body)
		if err != nil {
			return err
		}
		if adopted {
			flags |= FlagCompressed
		}
		body = compressed
	}

	var crypto *CryptoParams
	if opts.Encrypt {
		if opts.Password == "" {
			return ErrMissingPassword
		}
		salt, err := generateSalt()
		if err != nil {
			return err
		}
		iv, err := generateIV(ivSize)
		if err != nil {
			return err
		}
		key := deriveKey(opts.Password, salt, defaultIters)
		sealed, err := seal(key, iv, body)
		if err != nil {
			return err
		}
		body = sealed
		flags |= FlagEncrypted
		crypto = &CryptoParams{Salt: salt, IV: iv, Iterations: defaultIters}
	}

	header, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: desc.Name, MIME: desc.MIME}, flags, crypto, originalSize)
	if err != nil {
		return err
	}

	framed, err := putUint32(header, int64(len(body)))
	if err != nil {
		return err
	}
	framed = append(framed, body...)

	if err := EmbedImageLSB(rgba, width, height, opts.Depth, opts.UseAlpha, framed); err != nil {
		log.Printf("[WARN] HideImage: capacity exceeded, needed %d bytes", len(framed))
		return err
	}
	return nil
}

// depthAlphaTrials enumerates the (depth, use_alpha) search order reveal
// uses to recover an image's embedding parameters, since the carrier
// stores none of its own — spec §4.G.
var depthAlphaTrials = buildTrials()

func buildTrials() [][2]int {
	var trials [][2]int
	for d := 1; d <= 4; d++ {
		trials = append(trials, [2]int{d, 0})
		trials = append(trials, [2]int{d, 1})
	}
	return trials
}

// RevealImage auto-detects depth/alpha, parses the STEGFILE container, and
// runs decrypt→decompress per spec §4.G.
func RevealImage(rgba []byte, width, height int, password string) (*RevealedPayload, error) {
	var lastErr error = ErrBadMagic

	for _, trial := range depthAlphaTrials {
		depth, useAlpha := trial[0], trial[1] == 1
		available := BytesAvailable(width, height, depth, useAlpha)
		if available < 13 {
			continue
		}
		probe := ExtractImageLSBStream(rgba, width, height, depth, useAlpha, available)

		if len(probe) >= 5 && string(probe[:4]) == "STEG" && probe[4] != 'F' {
			return nil, ErrLegacyFormat
		}

		header, err := ParseSTEGFILEHeader(probe)
		if err != nil {
			if errors.Is(err, ErrBadMagic) || errors.Is(err, ErrMalformedHeader) || errors.Is(err, ErrHeaderCrcFailed) || errors.Is(err, ErrUnsupportedVersion) {
				lastErr = err
				continue
			}
			return nil, err
		}

		bodySize, n, err := ReadBodySize(probe, header.Consumed)
		if err != nil {
			lastErr = err
			continue
		}
		bodyStart := header.Consumed + n
		if bodyStart+bodySize > len(probe) {
			lastErr = ErrUnexpectedEOF
			continue
		}
		body := probe[bodyStart : bodyStart+bodySize]

		return finishReveal(header.Descriptor, header.Flags, header.Crypto, header.OriginalSize, body, password)
	}

	return nil, lastErr
}

// HideEmojiOptions controls the emoji hide pipeline.
type HideEmojiOptions struct {
	Encrypt  bool
	Compress bool
	Password string
	Theme    Theme
	Custom   []string
}

// HideEmoji runs compress→encrypt→frame→encode over an arbitrary UTF-8
// message, per spec §4.G. There is no depth/channel ambiguity for text
// carriers, so no capacity accounting is needed beyond the compress step.
func HideEmoji(message string, opts HideEmojiOptions) (string, error) {
	body := []byte(message)
	var flags uint8

	if opts.Compress {
		compressed, adopted, err := maybeCompress(body)
		if err != nil {
			return "", err
		}
		if adopted {
			flags |= FlagCompressed
		}
		body = compressed
	}

	var crypto *CryptoParams
	if opts.Encrypt {
		if opts.Password == "" {
			return "", ErrMissingPassword
		}
		salt, err := generateSalt()
		if err != nil {
			return "", err
		}
		iv, err := generateIV(ivSize)
		if err != nil {
			return "", err
		}
		key := deriveKey(opts.Password, salt, defaultIters)
		sealed, err := seal(key, iv, body)
		if err != nil {
			return "", err
		}
		body = sealed
		flags |= FlagEncrypted
		crypto = &CryptoParams{Salt: salt, IV: iv, Iterations: defaultIters}
	}

	framed, err := BuildEMOJHeader(flags, crypto, body)
	if err != nil {
		return "", err
	}

	return EncodeEmoji(framed, opts.Theme, opts.Custom)
}

// RevealEmoji reconstructs the EMOJ container from text's invisible
// characters and runs decrypt→decompress, per spec §4.G.
func RevealEmoji(text string, password string) (*RevealedPayload, error) {
	raw := DecodeEmojiBits(text)
	if len(raw) == 0 {
		return nil, ErrNoHiddenData
	}

	header, err := ParseEMOJHeader(raw)
	if err != nil {
		return nil, err
	}
	body := emojBody(raw, header)

	return finishReveal(PayloadDescriptor{}, header.Flags, header.Crypto, uint64(len(body)), body, password)
}

// finishReveal applies the shared decrypt→decompress tail both reveal
// pipelines converge on after framing is parsed.
func finishReveal(desc PayloadDescriptor, flags uint8, crypto *CryptoParams, originalSize uint64, body []byte, password string) (*RevealedPayload, error) {
	wasEncrypted := flags&FlagEncrypted != 0
	wasCompressed := flags&FlagCompressed != 0

	if wasEncrypted {
		if password == "" {
			return nil, ErrMissingPassword
		}
		if crypto == nil {
			return nil, ErrMissingCryptoParams
		}
		key := deriveKey(password, crypto.Salt, crypto.Iterations)
		plain, err := open(key, crypto.IV, body)
		if err != nil {
			return nil, err
		}
		body = plain
	}

	if wasCompressed {
		plain, err := gzipDecompress(body)
		if err != nil {
			return nil, ErrPayloadCorrupt
		}
		body = plain
	}

	return &RevealedPayload{
		Name:          desc.Name,
		MIME:          desc.MIME,
		Bytes:         body,
		OriginalSize:  originalSize,
		WasEncrypted:  wasEncrypted,
		WasCompressed: wasCompressed,
	}, nil
}

// EstimateCapacity implements estimate_capacity per spec §6: header_size is
// computed by actually building a representative header (so the estimate
// tracks the framer exactly, never drifts from it), and payload_capacity
// derives from CapacityForPayload.
func EstimateCapacity(width, height, depth int, useAlpha, encrypt bool, name, mime string) (headerSize, payloadCapacity int, err error) {
	var crypto *CryptoParams
	flags := flagsForMIME(mime)
	if encrypt {
		flags |= FlagEncrypted
		crypto = &CryptoParams{Salt: make([]byte, saltSize), IV: make([]byte, ivSize), Iterations: defaultIters}
	}
	header, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: name, MIME: mime}, flags, crypto, 0)
	if err != nil {
		return 0, 0, err
	}
	headerSize = len(header) + 4 // + body_size field

	available := BytesAvailable(width, height, depth, useAlpha)
	payloadCapacity = CapacityForPayload(available, headerSize, encrypt)
	return headerSize, payloadCapacity, nil
}
