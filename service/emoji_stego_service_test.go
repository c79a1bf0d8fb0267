package service

import (
	"errors"
	"testing"

	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/models"
)

func TestEmojiStegoServiceEmbedExtractRoundTrip(t *testing.T) {
	svc := NewEmojiStegoService()

	embedResp, err := svc.EmbedEmoji(&models.EmbedEmojiRequest{Message: "hidden in plain sight", Theme: "mixed"})
	if err != nil {
		t.Fatalf("EmbedEmoji: %v", err)
	}
	if embedResp.Text == "" {
		t.Fatal("EmbedEmoji returned empty text")
	}

	extractResp, err := svc.ExtractEmoji(&models.ExtractEmojiRequest{Text: embedResp.Text})
	if err != nil {
		t.Fatalf("ExtractEmoji: %v", err)
	}
	if extractResp.Text != "hidden in plain sight" {
		t.Errorf("extracted text = %q, want %q", extractResp.Text, "hidden in plain sight")
	}
}

func TestEmojiStegoServiceEncryptedRoundTrip(t *testing.T) {
	svc := NewEmojiStegoService()

	embedResp, err := svc.EmbedEmoji(&models.EmbedEmojiRequest{
		Message:       "top secret",
		Theme:         "nature",
		UseEncryption: true,
		Password:      "p4ssw0rd",
	})
	if err != nil {
		t.Fatalf("EmbedEmoji: %v", err)
	}

	extractResp, err := svc.ExtractEmoji(&models.ExtractEmojiRequest{Text: embedResp.Text, Password: "p4ssw0rd"})
	if err != nil {
		t.Fatalf("ExtractEmoji: %v", err)
	}
	if extractResp.Text != "top secret" || !extractResp.WasEncrypted {
		t.Errorf("extractResp = %+v, want text=top secret, encrypted=true", extractResp)
	}
}

func TestEmojiStegoServiceRejectsEmptyMessage(t *testing.T) {
	svc := NewEmojiStegoService()
	_, err := svc.EmbedEmoji(&models.EmbedEmojiRequest{Message: ""})
	if !errors.Is(err, models.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestEmojiStegoServiceNoHiddenData(t *testing.T) {
	svc := NewEmojiStegoService()
	_, err := svc.ExtractEmoji(&models.ExtractEmojiRequest{Text: "nothing to see here"})
	if !errors.Is(err, models.ErrNoHiddenData) {
		t.Errorf("error = %v, want ErrNoHiddenData", err)
	}
}
