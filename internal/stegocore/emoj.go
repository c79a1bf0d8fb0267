package stegocore

var emojMagic = []byte("EMOJ")

const emojVersion = 1

// EMOJHeader is the parsed result of ParseEMOJHeader.
type EMOJHeader struct {
	Flags    uint8
	Crypto   *CryptoParams
	DataLen  int
	Consumed int
}

// BuildEMOJHeader assembles the text-carrier container per spec
// §3/§4.D: magic, version, flags, optional salt/iv, data_len, and a CRC
// computed over the body only (not the header) — simpler than STEGFILE's
// header-covering CRC since EMOJ bodies are already bit-budget constrained.
// The body itself is appended after the CRC, so the result is the complete
// framed container.
func BuildEMOJHeader(flags uint8, crypto *CryptoParams, body []byte) ([]byte, error) {
	if flags&FlagEncrypted != 0 {
		if crypto == nil || len(crypto.Salt) == 0 || len(crypto.IV) == 0 {
			return nil, ErrMissingCryptoParams
		}
	}

	buf := make([]byte, 0, 32)
	buf = append(buf, emojMagic...)
	buf = append(buf, emojVersion)
	buf = append(buf, flags)

	if flags&FlagEncrypted != 0 {
		if len(crypto.Salt) > 0xFF || len(crypto.IV) > 0xFF {
			return nil, ErrFieldTooWide
		}
		buf = append(buf, byte(len(crypto.Salt)))
		buf = append(buf, crypto.Salt...)
		buf = append(buf, byte(len(crypto.IV)))
		buf = append(buf, crypto.IV...)
	}

	var err error
	buf, err = putUint32(buf, int64(len(body)))
	if err != nil {
		return nil, err
	}

	crc := crc32IEEE(body)
	buf, err = putUint32(buf, int64(crc))
	if err != nil {
		return nil, err
	}
	buf = append(buf, body...)
	return buf, nil
}

// ParseEMOJHeader reads an EMOJ header and validates the body CRC. data
// must already contain the full body (EMOJ decoding reconstructs the whole
// invisible-character stream before parsing, since there is no out-of-band
// length to stream against).
func ParseEMOJHeader(data []byte) (*EMOJHeader, error) {
	if len(data) < len(emojMagic) || string(data[:len(emojMagic)]) != string(emojMagic) {
		return nil, ErrBadMagic
	}
	off := len(emojMagic)

	if off >= len(data) {
		return nil, ErrMalformedHeader
	}
	version := data[off]
	off++
	if version != emojVersion {
		return nil, ErrUnsupportedVersion
	}

	if off >= len(data) {
		return nil, ErrMalformedHeader
	}
	flags := data[off]
	off++

	var crypto *CryptoParams
	if flags&FlagEncrypted != 0 {
		if off >= len(data) {
			return nil, ErrMalformedHeader
		}
		saltLen := int(data[off])
		off++
		if off+saltLen > len(data) {
			return nil, ErrMalformedHeader
		}
		salt := data[off : off+saltLen]
		off += saltLen

		if off >= len(data) {
			return nil, ErrMalformedHeader
		}
		ivLen := int(data[off])
		off++
		if off+ivLen > len(data) {
			return nil, ErrMalformedHeader
		}
		iv := data[off : off+ivLen]
		off += ivLen

		crypto = &CryptoParams{Salt: append([]byte(nil), salt...), IV: append([]byte(nil), iv...), Iterations: defaultIters}
	}

	dataLen, n, err := readUint32(data, off)
	if err != nil {
		return nil, err
	}
	off += n

	crc, n, err := readUint32(data, off)
	if err != nil {
		return nil, err
	}
	off += n

	if off+int(dataLen) > len(data) {
		return nil, ErrUnexpectedEOF
	}
	body := data[off : off+int(dataLen)]
	if crc32IEEE(body) != crc {
		return nil, ErrPayloadCorrupt
	}
	off += int(dataLen)

	return &EMOJHeader{
		Flags:    flags,
		Crypto:   crypto,
		DataLen:  int(dataLen),
		Consumed: off,
	}, nil
}

// emojBody returns the body slice out of a successfully parsed header run;
// kept as a tiny helper so pipeline code does not re-slice by hand.
func emojBody(data []byte, h *EMOJHeader) []byte {
	bodyStart := h.Consumed - h.DataLen
	return data[bodyStart:h.Consumed]
}
