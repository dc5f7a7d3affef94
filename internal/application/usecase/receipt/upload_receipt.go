package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// UploadReceiptInput represents the input for scanning a receipt. Either
// an image or pasted text is required. StoreName and Date, when set,
// override whatever extraction produced.
type UploadReceiptInput struct {
	SubjectID string
	Image     *adapter.ImagePayload
	Text      string
	StoreName string
	Date      *time.Time
}

// UploadReceiptOutput carries the persisted receipt plus the extraction
// degradation state for the client.
type UploadReceiptOutput struct {
	Receipt             *entity.Receipt
	ManualEntryRequired bool
	Error               string
}

// UploadReceiptUseCase runs extraction on an uploaded image and persists
// the result. Extraction failures still persist a fallback receipt the
// user can fill in manually.
type UploadReceiptUseCase struct {
	extract     *scan.ExtractReceiptUseCase
	receiptRepo adapter.ReceiptRepository
	imageStore  adapter.ImageStore
	logger      *slog.Logger
}

// NewUploadReceiptUseCase creates a new UploadReceiptUseCase instance.
func NewUploadReceiptUseCase(
	extract *scan.ExtractReceiptUseCase,
	receiptRepo adapter.ReceiptRepository,
	imageStore adapter.ImageStore,
	logger *slog.Logger,
) *UploadReceiptUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadReceiptUseCase{
		extract:     extract,
		receiptRepo: receiptRepo,
		imageStore:  imageStore,
		logger:      logger,
	}
}

// Execute extracts and persists the receipt.
func (uc *UploadReceiptUseCase) Execute(ctx context.Context, input UploadReceiptInput) (*UploadReceiptOutput, error) {
	extraction, err := uc.extract.Execute(ctx, scan.ExtractReceiptInput{
		SubjectID: input.SubjectID,
		Image:     input.Image,
		Text:      input.Text,
	})
	if err != nil {
		return nil, err
	}

	storeName := extraction.StoreName
	if input.StoreName != "" {
		storeName = input.StoreName
	}
	date := extraction.Date
	if input.Date != nil {
		date = *input.Date
	}

	receipt := entity.NewReceipt(input.SubjectID, storeName, date, extraction.Items)
	receipt.ReportedTotal = extraction.ReportedTotal
	receipt.ManualEntry = extraction.ManualEntryRequired
	if extraction.RawText != "" {
		receipt.RawText = &extraction.RawText
	}

	if input.Image != nil {
		if url := uc.storeImage(ctx, receipt.ID.String(), input.Image); url != "" {
			receipt.ImageURL = &url
		}
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}

	return &UploadReceiptOutput{
		Receipt:             receipt,
		ManualEntryRequired: extraction.ManualEntryRequired,
		Error:               extraction.Error,
	}, nil
}

// storeImage saves the original image. Storage failures only cost the
// image reference, never the receipt.
func (uc *UploadReceiptUseCase) storeImage(ctx context.Context, receiptID string, image *adapter.ImagePayload) string {
	key := receiptID + imageExtension(image.MIMEType)
	url, err := uc.imageStore.Save(ctx, key, image.Data)
	if err != nil {
		uc.logger.Warn("failed to store receipt image", "receipt_id", receiptID, "error", err)
		return ""
	}
	return url
}

func imageExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
