// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/budgetsnap/backend/internal/application/adapter"
)

// GeminiService implements adapter.VisionService using Google Gemini.
// Receipt images go to the vision model; text-only prompts use the
// lighter text model.
type GeminiService struct {
	apiKey      string
	visionModel string
	textModel   string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, visionModel, textModel string) *GeminiService {
	if visionModel == "" {
		visionModel = "gemini-2.5-flash"
	}
	if textModel == "" {
		textModel = "gemini-2.5-flash-lite"
	}
	return &GeminiService{
		apiKey:      apiKey,
		visionModel: visionModel,
		textModel:   textModel,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// ExtractReceipt sends a prompt, with an optional image, and returns the
// model's raw text response.
func (s *GeminiService) ExtractReceipt(ctx context.Context, prompt string, image *adapter.ImagePayload) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	modelName := s.textModel
	parts := []genai.Part{genai.Text(prompt)}
	if image != nil {
		modelName = s.visionModel
		parts = append(parts, genai.ImageData(imageFormat(image.MIMEType), image.Data))
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// GenerateText sends a text-only prompt and returns the raw response.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.ExtractReceipt(ctx, prompt, nil)
}

// imageFormat maps a MIME type to the bare format name genai expects.
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" {
		return "jpeg"
	}
	return format
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in gemini response")
	}
	return sb.String(), nil
}
