package tip

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

type memoryTipRepo struct {
	tips []*entity.Tip
}

func (r *memoryTipRepo) CreateMany(_ context.Context, tips []*entity.Tip) error {
	r.tips = append(r.tips, tips...)
	return nil
}

func (r *memoryTipRepo) FindGeneral(_ context.Context, category string, limit int) ([]*entity.Tip, error) {
	var out []*entity.Tip
	for _, tip := range r.tips {
		if tip.Personalized {
			continue
		}
		if category != "" && tip.Category != category {
			continue
		}
		out = append(out, tip)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memoryTipRepo) FindPersonalizedByTitle(_ context.Context, subjectID, title string) (*entity.Tip, error) {
	for _, tip := range r.tips {
		if tip.Personalized && tip.UserID != nil && *tip.UserID == subjectID && tip.Title == title {
			return tip, nil
		}
	}
	return nil, nil
}

type tipVision struct {
	response string
	err      error
	prompts  []string
}

func (v *tipVision) ExtractReceipt(context.Context, string, *adapter.ImagePayload) (string, error) {
	return v.response, v.err
}
func (v *tipVision) GenerateText(_ context.Context, prompt string) (string, error) {
	v.prompts = append(v.prompts, prompt)
	return v.response, v.err
}
func (v *tipVision) IsAvailable() bool { return true }

type tipReceiptRepo struct {
	receipts []*entity.Receipt
}

func (r *tipReceiptRepo) Create(context.Context, *entity.Receipt) error { return nil }
func (r *tipReceiptRepo) FindByID(context.Context, uuid.UUID, string) (*entity.Receipt, error) {
	return nil, nil
}
func (r *tipReceiptRepo) FindByUser(context.Context, string, adapter.ReceiptFilter) ([]*entity.Receipt, error) {
	return nil, nil
}
func (r *tipReceiptRepo) FindOwnedBetween(context.Context, string, time.Time, time.Time) ([]*entity.Receipt, error) {
	return r.receipts, nil
}
func (r *tipReceiptRepo) Update(context.Context, *entity.Receipt) error   { return nil }
func (r *tipReceiptRepo) Delete(context.Context, uuid.UUID, string) error { return nil }

func fastPolicy() scan.RetryPolicy {
	return scan.NewRetryPolicy(1, time.Millisecond, time.Second)
}

const tipJSON = `[{"title": "Skip Delivery Fees", "content": "Pick up takeout orders yourself instead of paying delivery fees and markups. Doing this twice a week saves real money.", "category": "food", "tags": ["delivery", "food"]}]`

func TestGeneralTipsFromStore(t *testing.T) {
	repo := &memoryTipRepo{tips: []*entity.Tip{
		entity.NewTip("Stored Tip 1", "Content", "food", nil, false),
		entity.NewTip("Stored Tip 2", "Content", "food", nil, false),
	}}
	uc := NewGetGeneralTipsUseCase(repo, &tipVision{}, fastPolicy(), nil)

	tips, err := uc.Execute(context.Background(), GetGeneralTipsInput{Category: "food", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 2 {
		t.Fatalf("expected 2 tips, got %d", len(tips))
	}
	if tips[0].Title != "Stored Tip 1" {
		t.Errorf("expected stored tips first, got %q", tips[0].Title)
	}
}

func TestGeneralTipsTopUpFromAI(t *testing.T) {
	repo := &memoryTipRepo{}
	vision := &tipVision{response: "Here are your tips:\n" + tipJSON}
	uc := NewGetGeneralTipsUseCase(repo, vision, fastPolicy(), nil)

	tips, err := uc.Execute(context.Background(), GetGeneralTipsInput{Category: "food", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 1 {
		t.Fatalf("expected 1 tip, got %d", len(tips))
	}
	if tips[0].Title != "Skip Delivery Fees" {
		t.Errorf("unexpected tip %q", tips[0].Title)
	}
	if !tips[0].AIGenerated {
		t.Error("generated tip should be flagged AI generated")
	}
	if len(repo.tips) != 1 {
		t.Errorf("generated tip should be persisted, have %d", len(repo.tips))
	}
}

func TestGeneralTipsStaticFallbackOnAIFailure(t *testing.T) {
	repo := &memoryTipRepo{}
	vision := &tipVision{err: errors.New("invalid API key")}
	uc := NewGetGeneralTipsUseCase(repo, vision, fastPolicy(), nil)

	tips, err := uc.Execute(context.Background(), GetGeneralTipsInput{Category: "food", Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 3 {
		t.Fatalf("expected 3 static tips, got %d", len(tips))
	}
	for _, tip := range tips {
		if tip.Category != "food" {
			t.Errorf("expected food tips, got %q", tip.Category)
		}
		if tip.AIGenerated {
			t.Error("static tips are not AI generated")
		}
	}
}

func TestPersonalizedTipsUseSpendingAnalysis(t *testing.T) {
	receipts := &tipReceiptRepo{receipts: []*entity.Receipt{
		entity.NewReceipt("user-1", "Corner Market", time.Now(), []entity.ReceiptItem{
			{Name: "Milk", Price: decimal.NewFromInt(30), Quantity: decimal.NewFromInt(1), Category: "food"},
		}),
	}}
	tipRepo := &memoryTipRepo{}
	vision := &tipVision{response: tipJSON}
	general := NewGetGeneralTipsUseCase(tipRepo, vision, fastPolicy(), nil)
	uc := NewGetPersonalizedTipsUseCase(tipRepo, receipts, vision, fastPolicy(), general, nil)

	tips, err := uc.Execute(context.Background(), GetPersonalizedTipsInput{SubjectID: "user-1", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 1 {
		t.Fatalf("expected 1 tip, got %d", len(tips))
	}
	if !tips[0].Personalized {
		t.Error("expected a personalized tip")
	}
	if tips[0].UserID == nil || *tips[0].UserID != "user-1" {
		t.Errorf("personalized tip should be user scoped, got %v", tips[0].UserID)
	}

	// The prompt must reference the analyzed spending.
	if len(vision.prompts) == 0 || !strings.Contains(vision.prompts[0], "food: $30.00") {
		t.Errorf("prompt missing spending data: %v", vision.prompts)
	}
	if !strings.Contains(vision.prompts[0], "Corner Market") {
		t.Errorf("prompt missing frequent store: %v", vision.prompts)
	}
}

func TestPersonalizedTipsDeduplicateByTitle(t *testing.T) {
	receipts := &tipReceiptRepo{receipts: []*entity.Receipt{
		entity.NewReceipt("user-1", "Shop", time.Now(), []entity.ReceiptItem{
			{Name: "Milk", Price: decimal.NewFromInt(5), Quantity: decimal.NewFromInt(1), Category: "food"},
		}),
	}}
	existing := entity.NewPersonalizedTip("user-1", "Skip Delivery Fees", "Old content", "food", nil)
	tipRepo := &memoryTipRepo{tips: []*entity.Tip{existing}}
	vision := &tipVision{response: tipJSON}
	general := NewGetGeneralTipsUseCase(tipRepo, vision, fastPolicy(), nil)
	uc := NewGetPersonalizedTipsUseCase(tipRepo, receipts, vision, fastPolicy(), general, nil)

	tips, err := uc.Execute(context.Background(), GetPersonalizedTipsInput{SubjectID: "user-1", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 1 {
		t.Fatalf("expected 1 tip, got %d", len(tips))
	}
	if tips[0].ID != existing.ID {
		t.Error("expected the stored duplicate, not a new tip")
	}
	if len(tipRepo.tips) != 1 {
		t.Errorf("duplicate must not be stored again, have %d", len(tipRepo.tips))
	}
}

func TestPersonalizedTipsFallBackToGeneralWithoutSpending(t *testing.T) {
	tipRepo := &memoryTipRepo{tips: []*entity.Tip{
		entity.NewTip("General Tip", "Content", "food", nil, false),
	}}
	vision := &tipVision{response: tipJSON}
	general := NewGetGeneralTipsUseCase(tipRepo, vision, fastPolicy(), nil)
	uc := NewGetPersonalizedTipsUseCase(tipRepo, &tipReceiptRepo{}, vision, fastPolicy(), general, nil)

	tips, err := uc.Execute(context.Background(), GetPersonalizedTipsInput{SubjectID: "user-1", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 1 || tips[0].Personalized {
		t.Errorf("expected a general tip, got %+v", tips)
	}
}

func TestParseTips(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "raw array", raw: tipJSON, expected: 1},
		{name: "fenced array", raw: "```json\n" + tipJSON + "\n```", expected: 1},
		{name: "prose around array", raw: "Sure!\n" + tipJSON + "\nHope this helps.", expected: 1},
		{name: "no array", raw: "I cannot generate tips right now.", expected: 0},
		{name: "invalid json", raw: "[{not json}]", expected: 0},
		{name: "empty title filtered", raw: `[{"title": "", "content": "x"}]`, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(parseTips(tt.raw)); got != tt.expected {
				t.Errorf("expected %d tips, got %d", tt.expected, got)
			}
		})
	}
}
