package service

import (
	"fmt"
	"log"

	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/internal/stegocore"
	"github.com/rajdeepbhattacharyya25-pixel/pixel-lock/models"
)

// emojiStegoService implements EmojiStegoService over the grapheme-cluster
// cover-text codec.
type emojiStegoService struct{}

// NewEmojiStegoService creates a new emoji steganography service instance.
func NewEmojiStegoService() EmojiStegoService {
	return &emojiStegoService{}
}

func (s *emojiStegoService) EmbedEmoji(req *models.EmbedEmojiRequest) (*models.EmbedEmojiResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", models.ErrInvalidRequest)
	}

	opts := stegocore.HideEmojiOptions{
		Encrypt:  req.UseEncryption,
		Compress: req.UseCompression,
		Password: req.Password,
		Theme:    stegocore.Theme(req.Theme),
		Custom:   req.CustomEmoji,
	}

	text, err := stegocore.HideEmoji(req.Message, opts)
	if err != nil {
		log.Printf("[WARN] EmbedEmoji: hide failed: %v", err)
		return nil, err
	}

	log.Printf("[INFO] EmbedEmoji: hid %d bytes of message under theme=%q", len(req.Message), req.Theme)
	return &models.EmbedEmojiResponse{Text: text}, nil
}

func (s *emojiStegoService) ExtractEmoji(req *models.ExtractEmojiRequest) (*models.ExtractEmojiResponse, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("%w: text is required", models.ErrInvalidRequest)
	}

	revealed, err := stegocore.RevealEmoji(req.Text, req.Password)
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] ExtractEmoji: revealed %d bytes, encrypted=%v compressed=%v", len(revealed.Bytes), revealed.WasEncrypted, revealed.WasCompressed)

	return &models.ExtractEmojiResponse{
		Text:          string(revealed.Bytes),
		WasEncrypted:  revealed.WasEncrypted,
		WasCompressed: revealed.WasCompressed,
	}, nil
}
