// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// ImagePayload carries raw image bytes together with their MIME type.
type ImagePayload struct {
	MIMEType string
	Data     []byte
}

// VisionService defines the interface to the generative AI backend. The
// response is free-form text; no output schema is guaranteed and parsing
// is the caller's responsibility.
type VisionService interface {
	// ExtractReceipt sends a prompt, with an optional image, and returns
	// the model's raw text response. A nil image means a text-only prompt.
	ExtractReceipt(ctx context.Context, prompt string, image *ImagePayload) (string, error)

	// GenerateText sends a text-only prompt and returns the raw response.
	// Used by tip generation.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the AI service is properly configured.
	IsAvailable() bool
}
