package scan

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// allowedImageTypes are the MIME types accepted for receipt images.
// image/jpg is not a registered type but clients commonly declare it.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// ExtractReceiptInput carries either a receipt image or already-transcribed
// receipt text. Exactly one of Image and Text should be set.
type ExtractReceiptInput struct {
	SubjectID string
	Image     *adapter.ImagePayload
	Text      string
}

// ExtractReceiptUseCase runs the extraction pipeline: gateway call under
// the retry policy, parse, optional JSON coercion re-prompt, category
// resolution and assembly. Gateway failures degrade to a fallback payload
// instead of propagating.
type ExtractReceiptUseCase struct {
	vision        adapter.VisionService
	categoryRepo  adapter.CategoryRepository
	policy        RetryPolicy
	maxImageBytes int64
	logger        *slog.Logger
}

// NewExtractReceiptUseCase creates a new ExtractReceiptUseCase instance.
func NewExtractReceiptUseCase(
	vision adapter.VisionService,
	categoryRepo adapter.CategoryRepository,
	policy RetryPolicy,
	maxImageBytes int64,
	logger *slog.Logger,
) *ExtractReceiptUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractReceiptUseCase{
		vision:        vision,
		categoryRepo:  categoryRepo,
		policy:        policy,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

// DecodeImage decodes a base64 image payload, tolerating a data-URL prefix
// such as "data:image/jpeg;base64,". The MIME type from the prefix wins
// over the declared one.
func DecodeImage(encoded, declaredType string) (*adapter.ImagePayload, error) {
	mimeType := declaredType
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ","); idx >= 0 {
			header := encoded[len("data:"):idx]
			if semi := strings.Index(header, ";"); semi >= 0 {
				header = header[:semi]
			}
			if header != "" {
				mimeType = header
			}
			encoded = encoded[idx+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeUnsupportedImageType,
			"image payload is not valid base64",
			err,
		)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return &adapter.ImagePayload{MIMEType: mimeType, Data: data}, nil
}

// Execute runs extraction and always returns a usable Extraction unless
// the input itself is invalid.
func (uc *ExtractReceiptUseCase) Execute(ctx context.Context, input ExtractReceiptInput) (*Extraction, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	categories := uc.categoryNames(ctx, input.SubjectID)
	resolver := NewResolver(categories)

	raw, err := uc.callGateway(ctx, input, categories)
	if err != nil {
		uc.logger.Warn("receipt extraction failed, returning fallback",
			"subject_id", input.SubjectID,
			"error", err)
		return fallbackExtraction(err.Error()), nil
	}

	parsed := ParseReceipt(raw)
	if parsed.Status == ParseFailed {
		parsed = uc.coerce(ctx, raw, parsed)
	}
	if parsed.Status == ParseFailed {
		uc.logger.Warn("receipt response unparseable, returning fallback",
			"subject_id", input.SubjectID,
			"reason", parsed.Reason)
		return fallbackExtraction("could not parse AI response: " + parsed.Reason), nil
	}

	uc.fillMissingCategories(ctx, parsed, categories)

	extraction := assemble(parsed, resolver, raw)
	if input.Text != "" {
		extraction.RawText = input.Text
	}
	return extraction, nil
}

func (uc *ExtractReceiptUseCase) validate(input ExtractReceiptInput) error {
	if input.Image == nil {
		if strings.TrimSpace(input.Text) == "" {
			return domainerror.NewReceiptError(
				domainerror.ErrCodeEmptyReceiptText,
				"receipt text is required",
				domainerror.ErrEmptyReceiptText,
			)
		}
		return nil
	}
	if uc.maxImageBytes > 0 && int64(len(input.Image.Data)) > uc.maxImageBytes {
		return domainerror.NewReceiptError(
			domainerror.ErrCodeImageTooLarge,
			"image exceeds the maximum allowed size",
			domainerror.ErrImageTooLarge,
		)
	}
	if _, ok := allowedImageTypes[strings.ToLower(input.Image.MIMEType)]; !ok {
		return domainerror.NewReceiptError(
			domainerror.ErrCodeUnsupportedImageType,
			"unsupported image type: "+input.Image.MIMEType,
			domainerror.ErrUnsupportedImageType,
		)
	}
	return nil
}

// categoryNames loads the caller's resolvable category names. Lookup
// failures degrade to the built-in set rather than failing the scan.
func (uc *ExtractReceiptUseCase) categoryNames(ctx context.Context, subjectID string) []string {
	found, err := uc.categoryRepo.FindByUser(ctx, subjectID, true)
	if err != nil {
		uc.logger.Warn("category lookup failed, using built-in set", "error", err)
		return nil
	}
	names := make([]string, 0, len(found))
	for _, c := range found {
		names = append(names, c.Name)
	}
	return names
}

func (uc *ExtractReceiptUseCase) callGateway(ctx context.Context, input ExtractReceiptInput, categories []string) (string, error) {
	if input.Image != nil {
		prompt := imagePrompt(categories)
		return uc.policy.Do(ctx, func(ctx context.Context) (string, error) {
			return uc.vision.ExtractReceipt(ctx, prompt, input.Image)
		})
	}
	prompt := textPrompt(input.Text, categories)
	return uc.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return uc.vision.ExtractReceipt(ctx, prompt, nil)
	})
}

// coerce re-prompts once with the previous response, asking the model to
// restate it as valid JSON. The original parse result is kept when the
// re-prompt does not improve on it.
func (uc *ExtractReceiptUseCase) coerce(ctx context.Context, previousRaw string, original *ParsedReceipt) *ParsedReceipt {
	coerced, err := uc.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return uc.vision.ExtractReceipt(ctx, coercePrompt(previousRaw), nil)
	})
	if err != nil {
		return original
	}
	reparsed := ParseReceipt(coerced)
	if reparsed.Status == ParseFailed {
		return original
	}
	return reparsed
}

// fillMissingCategories runs one categorization round for items the model
// left unlabeled, using the line-based assignment convention. Failures
// leave the items unlabeled; the resolver maps them to the fallback label.
func (uc *ExtractReceiptUseCase) fillMissingCategories(ctx context.Context, parsed *ParsedReceipt, categories []string) {
	if len(categories) == 0 {
		categories = entity.BuiltinCategories
	}
	var unlabeled []string
	for _, item := range parsed.Items {
		if item.Category == "" {
			unlabeled = append(unlabeled, item.Name)
		}
	}
	if len(unlabeled) == 0 {
		return
	}

	raw, err := uc.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return uc.vision.GenerateText(ctx, categorizePrompt(unlabeled, categories))
	})
	if err != nil {
		return
	}
	assignments := ParseCategoryAssignments(raw)
	for i := range parsed.Items {
		if parsed.Items[i].Category == "" {
			parsed.Items[i].Category = assignments[parsed.Items[i].Name]
		}
	}
}
