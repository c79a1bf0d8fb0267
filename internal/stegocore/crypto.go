package stegocore

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"log"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize      = 16
	ivSize        = 12
	tagSize       = 16
	keySize       = 32 // AES-256
	kdfPBKDF2HMAC = 0x01
	defaultIters  = 200000
)

// generateSalt returns 16 bytes read from the process CSPRNG.
func generateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// generateIV returns n bytes read from the process CSPRNG. The codec only
// ever requests the 12-byte GCM nonce size, but the helper stays general.
func generateIV(n int) ([]byte, error) {
	iv := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// deriveKey runs PBKDF2-HMAC-SHA-256 over the password and salt.
func deriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
}

// seal performs AES-256-GCM authenticated encryption. The returned slice is
// ciphertext with the 16-byte tag appended, per the spec's wire convention.
func seal(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, iv, plaintext, nil), nil
}

// open performs AES-256-GCM authenticated decryption. Any failure — wrong
// key or a tampered body — collapses to ErrAuthFailed; the caller must not
// try to distinguish the two, since GCM does not.
func open(key, iv, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		log.Printf("[DEBUG] open: AEAD rejected %d-byte body", len(sealed))
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// gzipCompress frames data through DEFLATE in gzip framing.
func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gzipDecompress inverts gzipCompress.
func gzipDecompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// maybeCompress applies opportunistic compression: the compressed form is
// only adopted when it is strictly smaller than the input. Returns the
// chosen bytes and whether compression was applied.
func maybeCompress(data []byte) ([]byte, bool, error) {
	compressed, err := gzipCompress(data)
	if err != nil {
		return nil, false, err
	}
	if len(compressed) < len(data) {
		return compressed, true, nil
	}
	log.Printf("[WARN] maybeCompress: gzip output (%d) not smaller than input (%d), keeping raw", len(compressed), len(data))
	return data, false, nil
}
