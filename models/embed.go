package models

// EmbedImageRequest carries a hide_image call's inputs after the handler
// has parsed the multipart form.
type EmbedImageRequest struct {
	CoverImage     []byte
	SecretFile     []byte
	SecretFileName string
	SecretMIME     string
	Password       string
	Depth          int // 1-4
	UseAlpha       bool
	UseEncryption  bool
	UseCompression bool
}

// EmbedImageResponse is what hide_image returns for an HTTP caller: the
// carrier PNG bytes plus a fidelity estimate of how much the embedding
// perturbed the image.
type EmbedImageResponse struct {
	StegoImage []byte
	PSNR       float64
}

// EmbedEmojiRequest carries a hide_emoji call's inputs.
type EmbedEmojiRequest struct {
	Message        string   `json:"message"`
	Theme          string   `json:"theme"`
	CustomEmoji    []string `json:"custom_emoji,omitempty"`
	Password       string   `json:"password,omitempty"`
	UseEncryption  bool     `json:"use_encryption"`
	UseCompression bool     `json:"use_compression"`
}

// EmbedEmojiResponse is what hide_emoji returns.
type EmbedEmojiResponse struct {
	Text string `json:"text"`
}
