package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

type stubVisionService struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *stubVisionService) next(prompt string) (string, error) {
	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	if err != nil {
		return "", err
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("no scripted response")
}

func (s *stubVisionService) ExtractReceipt(_ context.Context, prompt string, _ *adapter.ImagePayload) (string, error) {
	return s.next(prompt)
}

func (s *stubVisionService) GenerateText(_ context.Context, prompt string) (string, error) {
	return s.next(prompt)
}

func (s *stubVisionService) IsAvailable() bool { return true }

type stubCategoryRepo struct {
	categories []*entity.Category
	err        error
}

func (s *stubCategoryRepo) Create(context.Context, *entity.Category) error { return nil }
func (s *stubCategoryRepo) FindByID(context.Context, uuid.UUID) (*entity.Category, error) {
	return nil, nil
}
func (s *stubCategoryRepo) FindByUser(context.Context, string, bool) ([]*entity.Category, error) {
	return s.categories, s.err
}
func (s *stubCategoryRepo) ExistsByNameAndUser(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *stubCategoryRepo) Update(context.Context, *entity.Category) error { return nil }
func (s *stubCategoryRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (s *stubCategoryRepo) CountSystem(context.Context) (int64, error)     { return 0, nil }

func newTestUseCase(vision *stubVisionService, repo *stubCategoryRepo) *ExtractReceiptUseCase {
	policy := NewRetryPolicy(3, time.Second, 30*time.Second)
	policy.sleep = func(context.Context, time.Duration) error { return nil }
	return NewExtractReceiptUseCase(vision, repo, policy, 5*1024*1024, nil)
}

func jpegPayload() *adapter.ImagePayload {
	return &adapter.ImagePayload{MIMEType: "image/jpeg", Data: []byte("fake image bytes")}
}

func TestExtractReceiptSuccess(t *testing.T) {
	vision := &stubVisionService{
		responses: []string{"```json\n{\"store_name\": \"Corner Market\", \"date\": \"2024-05-14\", \"total_amount\": 9.0, \"items\": [{\"name\": \"Milk\", \"price\": 3.5, \"quantity\": 2, \"category\": \"food\"}, {\"name\": \"Bread\", \"price\": 2.0, \"quantity\": 1, \"category\": \"food\"}]}\n```"},
	}
	uc := newTestUseCase(vision, &stubCategoryRepo{})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Image:     jpegPayload(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extraction.ManualEntryRequired {
		t.Error("manual entry should not be required")
	}
	if extraction.StoreName != "Corner Market" {
		t.Errorf("unexpected store name %q", extraction.StoreName)
	}
	if !extraction.TotalAmount.Equal(decimal.NewFromFloat(9.0)) {
		t.Errorf("expected total 9.0, got %s", extraction.TotalAmount)
	}
	if vision.calls != 1 {
		t.Errorf("expected 1 gateway call, got %d", vision.calls)
	}
}

func TestExtractReceiptTransientExhaustionFallsBack(t *testing.T) {
	overloaded := errors.New("the model is overloaded")
	vision := &stubVisionService{errs: []error{overloaded, overloaded, overloaded}}
	uc := newTestUseCase(vision, &stubCategoryRepo{})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Image:     jpegPayload(),
	})
	if err != nil {
		t.Fatalf("fallback must not propagate an error, got %v", err)
	}
	if vision.calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", vision.calls)
	}
	if !extraction.ManualEntryRequired {
		t.Error("expected manual entry required")
	}
	if extraction.Error == "" {
		t.Error("expected a descriptive error in the payload")
	}
	if len(extraction.Items) != 1 || extraction.Items[0].Name != "Please add items manually" {
		t.Errorf("expected the placeholder item, got %+v", extraction.Items)
	}
	if !extraction.TotalAmount.IsZero() {
		t.Errorf("expected zero total, got %s", extraction.TotalAmount)
	}
}

func TestExtractReceiptPermanentErrorFallsBackWithoutRetry(t *testing.T) {
	vision := &stubVisionService{errs: []error{errors.New("invalid API key")}}
	uc := newTestUseCase(vision, &stubCategoryRepo{})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Image:     jpegPayload(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vision.calls != 1 {
		t.Errorf("expected 1 attempt for permanent error, got %d", vision.calls)
	}
	if !extraction.ManualEntryRequired {
		t.Error("expected manual entry required")
	}
}

func TestExtractReceiptCoercesUnparseableResponse(t *testing.T) {
	vision := &stubVisionService{
		responses: []string{
			"Sure! The store was Corner Market and the total was nine dollars.",
			`{"store_name": "Corner Market", "date": "2024-05-14", "total_amount": 9.0, "items": [{"name": "Milk", "price": 9.0, "quantity": 1, "category": "food"}]}`,
		},
	}
	uc := newTestUseCase(vision, &stubCategoryRepo{})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Image:     jpegPayload(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vision.calls != 2 {
		t.Errorf("expected initial call plus one coercion, got %d", vision.calls)
	}
	if extraction.ManualEntryRequired {
		t.Error("coerced response should not require manual entry")
	}
	if extraction.StoreName != "Corner Market" {
		t.Errorf("unexpected store name %q", extraction.StoreName)
	}
}

func TestExtractReceiptCoercionFailureFallsBack(t *testing.T) {
	vision := &stubVisionService{
		responses: []string{
			"No structured data here.",
			"Still no structured data.",
		},
	}
	uc := newTestUseCase(vision, &stubCategoryRepo{})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Image:     jpegPayload(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !extraction.ManualEntryRequired {
		t.Error("expected fallback after failed coercion")
	}
}

func TestExtractReceiptResolvesAgainstUserCategories(t *testing.T) {
	vision := &stubVisionService{
		responses: []string{`{"store_name": "Shop", "date": "2024-05-14", "total_amount": 5, "items": [{"name": "Thing", "price": 5, "quantity": 1, "category": "Xyz"}]}`},
	}
	food := entity.NewCategory("Food", "", "", nil, "user-1")
	transport := entity.NewCategory("Transport", "", "", nil, "user-1")
	uc := newTestUseCase(vision, &stubCategoryRepo{categories: []*entity.Category{food, transport}})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Image:     jpegPayload(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extraction.Items[0].Category != ConfiguredFallbackLabel {
		t.Errorf("expected %q, got %q", ConfiguredFallbackLabel, extraction.Items[0].Category)
	}
}

func TestExtractReceiptTextInput(t *testing.T) {
	vision := &stubVisionService{
		responses: []string{`{"store_name": "Shop", "date": "2024-05-14", "total_amount": 2, "items": [{"name": "Gum", "price": 2, "quantity": 1, "category": "food"}]}`},
	}
	uc := newTestUseCase(vision, &stubCategoryRepo{})

	extraction, err := uc.Execute(context.Background(), ExtractReceiptInput{
		SubjectID: "user-1",
		Text:      "CORNER SHOP\nGum 2.00\nTOTAL 2.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extraction.RawText != "CORNER SHOP\nGum 2.00\nTOTAL 2.00" {
		t.Errorf("expected the submitted text kept as raw text, got %q", extraction.RawText)
	}
}

func TestExtractReceiptInputValidation(t *testing.T) {
	uc := newTestUseCase(&stubVisionService{}, &stubCategoryRepo{})

	tests := []struct {
		name     string
		input    ExtractReceiptInput
		sentinel error
	}{
		{
			name:     "empty text",
			input:    ExtractReceiptInput{SubjectID: "user-1", Text: "   "},
			sentinel: domainerror.ErrEmptyReceiptText,
		},
		{
			name: "unsupported image type",
			input: ExtractReceiptInput{
				SubjectID: "user-1",
				Image:     &adapter.ImagePayload{MIMEType: "application/pdf", Data: []byte("x")},
			},
			sentinel: domainerror.ErrUnsupportedImageType,
		},
		{
			name: "oversized image",
			input: ExtractReceiptInput{
				SubjectID: "user-1",
				Image:     &adapter.ImagePayload{MIMEType: "image/jpeg", Data: make([]byte, 6*1024*1024)},
			},
			sentinel: domainerror.ErrImageTooLarge,
		},
		{
			name: "webp reserved for avatars",
			input: ExtractReceiptInput{
				SubjectID: "user-1",
				Image:     &adapter.ImagePayload{MIMEType: "image/webp", Data: []byte("x")},
			},
			sentinel: domainerror.ErrUnsupportedImageType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestExtractReceiptAcceptsCommonJpegAliases(t *testing.T) {
	for _, mimeType := range []string{"image/jpeg", "image/jpg", "image/JPG", "image/png"} {
		t.Run(mimeType, func(t *testing.T) {
			vision := &stubVisionService{
				responses: []string{`{"store_name": "Shop", "date": "2024-05-14", "total_amount": 1, "items": [{"name": "Gum", "price": 1, "quantity": 1, "category": "food"}]}`},
			}
			uc := newTestUseCase(vision, &stubCategoryRepo{})

			_, err := uc.Execute(context.Background(), ExtractReceiptInput{
				SubjectID: "user-1",
				Image:     &adapter.ImagePayload{MIMEType: mimeType, Data: []byte("x")},
			})
			if err != nil {
				t.Fatalf("%s rejected: %v", mimeType, err)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name         string
		encoded      string
		declaredType string
		expectType   string
		expectErr    bool
	}{
		{
			name:         "plain base64",
			encoded:      "aGVsbG8=",
			declaredType: "image/png",
			expectType:   "image/png",
		},
		{
			name:       "data URL prefix wins",
			encoded:    "data:image/webp;base64,aGVsbG8=",
			expectType: "image/webp",
		},
		{
			name:       "no declared type defaults to jpeg",
			encoded:    "aGVsbG8=",
			expectType: "image/jpeg",
		},
		{
			name:      "invalid base64",
			encoded:   "!!!not base64!!!",
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeImage(tt.encoded, tt.declaredType)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if payload.MIMEType != tt.expectType {
				t.Errorf("expected %q, got %q", tt.expectType, payload.MIMEType)
			}
			if string(payload.Data) != "hello" {
				t.Errorf("unexpected decoded bytes %q", payload.Data)
			}
		})
	}
}
