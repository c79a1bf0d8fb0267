package stegocore

import (
	"unicode/utf8"
)

var stegfileMagic = []byte("STEGFILE")

const stegfileVersion = 1

// BuildSTEGFILEHeader assembles the image-carrier container header per
// spec §3/§4.C: magic, version, flags, length-prefixed name/mime, original
// size, optional crypto params, and a CRC over everything that precedes it.
// It does not append body_size/body — the caller (the pipeline) appends
// those once the body is known, per the open question in spec §9: body_size
// sits between the header CRC and the body, outside the CRC's coverage.
func BuildSTEGFILEHeader(desc PayloadDescriptor, flags uint8, crypto *CryptoParams, originalSize uint64) ([]byte, error) {
	if flags&FlagEncrypted != 0 {
		if crypto == nil || len(crypto.Salt) == 0 || len(crypto.IV) == 0 || crypto.Iterations <= 0 {
			return nil, ErrMissingCryptoParams
		}
	}

	buf := make([]byte, 0, 64+len(desc.Name)+len(desc.MIME))
	buf = append(buf, stegfileMagic...)
	buf = append(buf, stegfileVersion)
	buf = append(buf, flags)

	var err error
	buf, err = putUint16(buf, len(desc.Name))
	if err != nil {
		return nil, err
	}
	buf = append(buf, desc.Name...)

	buf, err = putUint16(buf, len(desc.MIME))
	if err != nil {
		return nil, err
	}
	buf = append(buf, desc.MIME...)

	buf = putUint64(buf, originalSize)

	if flags&FlagEncrypted != 0 {
		buf, err = putUint16(buf, len(crypto.Salt))
		if err != nil {
			return nil, err
		}
		buf = append(buf, crypto.Salt...)
		buf = append(buf, kdfPBKDF2HMAC)
		buf, err = putUint32(buf, int64(crypto.Iterations))
		if err != nil {
			return nil, err
		}
		if len(crypto.IV) > 0xFF {
			return nil, ErrFieldTooWide
		}
		buf = append(buf, byte(len(crypto.IV)))
		buf = append(buf, crypto.IV...)
	}

	crc := crc32IEEE(buf)
	buf, err = putUint32(buf, int64(crc))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// STEGFILEHeader is the parsed result of ParseSTEGFILEHeader.
type STEGFILEHeader struct {
	Descriptor   PayloadDescriptor
	Flags        uint8
	Crypto       *CryptoParams
	OriginalSize uint64
	// Consumed is the number of bytes of data the header occupied, i.e. the
	// offset at which body_size begins.
	Consumed int
}

// ParseSTEGFILEHeader reads a STEGFILE header from the front of data,
// validating magic, version, UTF-8 fields, and (when buffered) the header
// CRC. It does not read body_size/body — callers read those with the
// returned Consumed offset.
func ParseSTEGFILEHeader(data []byte) (*STEGFILEHeader, error) {
	if len(data) >= 5 && string(data[:4]) == "STEG" && data[4] != 'F' {
		return nil, ErrLegacyFormat
	}
	if len(data) < len(stegfileMagic) || string(data[:len(stegfileMagic)]) != string(stegfileMagic) {
		return nil, ErrBadMagic
	}
	off := len(stegfileMagic)

	if off >= len(data) {
		return nil, ErrMalformedHeader
	}
	version := data[off]
	off++
	if version != stegfileVersion {
		return nil, ErrUnsupportedVersion
	}

	if off >= len(data) {
		return nil, ErrMalformedHeader
	}
	flags := data[off]
	off++

	nameLen, n, err := readUint16(data, off)
	if err != nil {
		return nil, err
	}
	off += n
	if off+nameLen > len(data) {
		return nil, ErrMalformedHeader
	}
	nameBytes := data[off : off+nameLen]
	if !utf8.Valid(nameBytes) {
		return nil, ErrMalformedHeader
	}
	name := string(nameBytes)
	off += nameLen

	mimeLen, n, err := readUint16(data, off)
	if err != nil {
		return nil, err
	}
	off += n
	if off+mimeLen > len(data) {
		return nil, ErrMalformedHeader
	}
	mimeBytes := data[off : off+mimeLen]
	if !utf8.Valid(mimeBytes) {
		return nil, ErrMalformedHeader
	}
	mime := string(mimeBytes)
	off += mimeLen

	origSize, n, err := readUint64(data, off)
	if err != nil {
		return nil, err
	}
	off += n

	var crypto *CryptoParams
	if flags&FlagEncrypted != 0 {
		saltLen, n, err := readUint16(data, off)
		if err != nil {
			return nil, err
		}
		off += n
		if off+saltLen > len(data) {
			return nil, ErrMalformedHeader
		}
		salt := data[off : off+saltLen]
		off += saltLen

		if off >= len(data) {
			return nil, ErrMalformedHeader
		}
		kdfID := data[off]
		off++
		if kdfID != kdfPBKDF2HMAC {
			return nil, ErrUnknownKdf
		}

		iterations, n, err := readUint32(data, off)
		if err != nil {
			return nil, err
		}
		off += n

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

		crypto = &CryptoParams{Salt: append([]byte(nil), salt...), IV: append([]byte(nil), iv...), Iterations: int(iterations)}
	}

	headerCRC, n, err := readUint32(data, off)
	if err != nil {
		return nil, err
	}
	if headerCRC != crc32IEEE(data[:off]) {
		return nil, ErrHeaderCrcFailed
	}
	off += n

	return &STEGFILEHeader{
		Descriptor:   PayloadDescriptor{Name: name, MIME: mime},
		Flags:        flags,
		Crypto:       crypto,
		OriginalSize: origSize,
		Consumed:     off,
	}, nil
}

// ReadBodySize reads the 4-byte body_size field that follows the header
// CRC (spec §9: this field sits outside the CRC's coverage).
func ReadBodySize(data []byte, off int) (int, int, error) {
	size, n, err := readUint32(data, off)
	if err != nil {
		return 0, 0, err
	}
	return int(size), n, nil
}
