package stegocore

import "testing"

func TestBuildParseSTEGFILEHeaderRoundTripPlain(t *testing.T) {
	desc := PayloadDescriptor{Name: "a", MIME: "text/plain"}
	header, err := BuildSTEGFILEHeader(desc, 0, nil, 0)
	if err != nil {
		t.Fatalf("BuildSTEGFILEHeader: %v", err)
	}

	parsed, err := ParseSTEGFILEHeader(header)
	if err != nil {
		t.Fatalf("ParseSTEGFILEHeader: %v", err)
	}
	if parsed.Descriptor.Name != "a" || parsed.Descriptor.MIME != "text/plain" {
		t.Errorf("descriptor = %+v, want name=a mime=text/plain", parsed.Descriptor)
	}
	if parsed.Flags != 0 {
		t.Errorf("flags = %d, want 0", parsed.Flags)
	}
	if parsed.Consumed != len(header) {
		t.Errorf("consumed = %d, want %d", parsed.Consumed, len(header))
	}
}

func TestSampleS1HeaderPrefix(t *testing.T) {
	// spec scenario S1: header byte-sequence begins
	// 53 54 45 47 46 49 4C 45 01 00 00 01 61 00 0A ...
	desc := PayloadDescriptor{Name: "a", MIME: "text/plain"}
	header, err := BuildSTEGFILEHeader(desc, 0, nil, 0)
	if err != nil {
		t.Fatalf("BuildSTEGFILEHeader: %v", err)
	}
	want := []byte{0x53, 0x54, 0x45, 0x47, 0x46, 0x49, 0x4C, 0x45, 0x01, 0x00, 0x00, 0x01, 0x61, 0x00, 0x0A}
	if len(header) < len(want) {
		t.Fatalf("header too short: %d bytes", len(header))
	}
	for i, b := range want {
		if header[i] != b {
			t.Errorf("header[%d] = %#02x, want %#02x", i, header[i], b)
		}
	}
}

func TestBuildParseSTEGFILEHeaderRoundTripEncrypted(t *testing.T) {
	crypto := &CryptoParams{Salt: make([]byte, saltSize), IV: make([]byte, ivSize), Iterations: defaultIters}
	header, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: "f.bin", MIME: "application/octet-stream"}, FlagEncrypted, crypto, 42)
	if err != nil {
		t.Fatalf("BuildSTEGFILEHeader: %v", err)
	}

	parsed, err := ParseSTEGFILEHeader(header)
	if err != nil {
		t.Fatalf("ParseSTEGFILEHeader: %v", err)
	}
	if parsed.Crypto == nil {
		t.Fatal("expected crypto params, got nil")
	}
	if parsed.Crypto.Iterations != defaultIters {
		t.Errorf("iterations = %d, want %d", parsed.Crypto.Iterations, defaultIters)
	}
	if parsed.OriginalSize != 42 {
		t.Errorf("original size = %d, want 42", parsed.OriginalSize)
	}
}

func TestBuildSTEGFILEHeaderRequiresCryptoParamsWhenEncrypted(t *testing.T) {
	_, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: "a", MIME: "b"}, FlagEncrypted, nil, 0)
	if err != ErrMissingCryptoParams {
		t.Errorf("error = %v, want ErrMissingCryptoParams", err)
	}
}

func TestParseSTEGFILEHeaderBadMagic(t *testing.T) {
	if _, err := ParseSTEGFILEHeader([]byte("NOTASTEGFILE")); err != ErrBadMagic {
		t.Errorf("error = %v, want ErrBadMagic", err)
	}
}

func TestParseSTEGFILEHeaderLegacyFormat(t *testing.T) {
	legacy := []byte{'S', 'T', 'E', 'G', 0x01}
	if _, err := ParseSTEGFILEHeader(legacy); err != ErrLegacyFormat {
		t.Errorf("error = %v, want ErrLegacyFormat", err)
	}
}

// TestParseSTEGFILEHeaderFifthByteFNotLegacy covers the exact boundary the
// legacy check must get right: the 5th byte IS 'F', so per spec this is not
// the legacy marker, even though the bytes that follow aren't "ILE". This
// must fall through to the normal magic check (and fail it), not be
// reported as ErrLegacyFormat.
func TestParseSTEGFILEHeaderFifthByteFNotLegacy(t *testing.T) {
	notLegacy := []byte("STEGFxxx")
	if _, err := ParseSTEGFILEHeader(notLegacy); err != ErrBadMagic {
		t.Errorf("error = %v, want ErrBadMagic (5th byte is F, so not legacy)", err)
	}
}

func TestParseSTEGFILEHeaderUnsupportedVersion(t *testing.T) {
	header, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: "a", MIME: "b"}, 0, nil, 0)
	if err != nil {
		t.Fatalf("BuildSTEGFILEHeader: %v", err)
	}
	header[len(stegfileMagic)] = 9
	if _, err := ParseSTEGFILEHeader(header); err != ErrUnsupportedVersion {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestParseSTEGFILEHeaderCrcFailure(t *testing.T) {
	header, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: "a", MIME: "b"}, 0, nil, 0)
	if err != nil {
		t.Fatalf("BuildSTEGFILEHeader: %v", err)
	}
	header[len(header)-1] ^= 0xFF
	if _, err := ParseSTEGFILEHeader(header); err != ErrHeaderCrcFailed {
		t.Errorf("error = %v, want ErrHeaderCrcFailed", err)
	}
}

func TestReadBodySize(t *testing.T) {
	header, err := BuildSTEGFILEHeader(PayloadDescriptor{Name: "a", MIME: "b"}, 0, nil, 0)
	if err != nil {
		t.Fatalf("BuildSTEGFILEHeader: %v", err)
	}
	full, err := putUint32(header, 99)
	if err != nil {
		t.Fatalf("putUint32: %v", err)
	}
	parsed, err := ParseSTEGFILEHeader(header)
	if err != nil {
		t.Fatalf("ParseSTEGFILEHeader: %v", err)
	}
	size, _, err := ReadBodySize(full, parsed.Consumed)
	if err != nil {
		t.Fatalf("ReadBodySize: %v", err)
	}
	if size != 99 {
		t.Errorf("body size = %d, want 99", size)
	}
}
