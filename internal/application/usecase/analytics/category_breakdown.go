package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
)

// CategoryShare is one category's slice of spending in the window.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	ItemCount  int
}

// CategoryBreakdownInput represents the input for the category breakdown.
type CategoryBreakdownInput struct {
	SubjectID string
	Period    Period
	Now       time.Time
}

// CategoryBreakdownOutput represents per-category spending shares.
type CategoryBreakdownOutput struct {
	Period Period
	Start  time.Time
	End    time.Time
	Total  decimal.Decimal
	Shares []CategoryShare
}

// CategoryBreakdownUseCase aggregates item subtotals by category label.
// Items without a category count under "other".
type CategoryBreakdownUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewCategoryBreakdownUseCase creates a new CategoryBreakdownUseCase instance.
func NewCategoryBreakdownUseCase(receiptRepo adapter.ReceiptRepository) *CategoryBreakdownUseCase {
	return &CategoryBreakdownUseCase{receiptRepo: receiptRepo}
}

// Execute computes the breakdown, largest share first.
func (uc *CategoryBreakdownUseCase) Execute(ctx context.Context, input CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	start, end, err := periodBounds(input.Period, now)
	if err != nil {
		return nil, err
	}

	receipts, err := uc.receiptRepo.FindOwnedBetween(ctx, input.SubjectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	amounts := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	total := decimal.Zero
	for _, receipt := range receipts {
		for _, item := range receipt.Items {
			category := item.Category
			if category == "" {
				category = "other"
			}
			subtotal := item.Subtotal()
			amounts[category] = amounts[category].Add(subtotal)
			counts[category]++
			total = total.Add(subtotal)
		}
	}

	out := &CategoryBreakdownOutput{
		Period: input.Period,
		Start:  start,
		End:    end,
		Total:  total,
	}
	hundred := decimal.NewFromInt(100)
	for category, amount := range amounts {
		share := CategoryShare{
			Category:  category,
			Amount:    amount,
			ItemCount: counts[category],
		}
		if total.IsPositive() {
			share.Percentage = amount.Mul(hundred).DivRound(total, 2)
		}
		out.Shares = append(out.Shares, share)
	}
	sort.Slice(out.Shares, func(i, j int) bool {
		if !out.Shares[i].Amount.Equal(out.Shares[j].Amount) {
			return out.Shares[i].Amount.GreaterThan(out.Shares[j].Amount)
		}
		return out.Shares[i].Category < out.Shares[j].Category
	})
	return out, nil
}
