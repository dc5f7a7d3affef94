// Package receipt contains receipt-related use cases.
package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
)

// ItemInput is one line item in a create or update request.
type ItemInput struct {
	Name       string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Category   string
	AssignedTo *string
}

// CreateReceiptInput represents the input for manually creating a receipt.
type CreateReceiptInput struct {
	SubjectID  string
	StoreName  string
	Date       time.Time
	Items      []ItemInput
	SharedWith []string
	RawText    string
}

// CreateReceiptUseCase handles manual receipt creation.
type CreateReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewCreateReceiptUseCase creates a new CreateReceiptUseCase instance.
func NewCreateReceiptUseCase(receiptRepo adapter.ReceiptRepository) *CreateReceiptUseCase {
	return &CreateReceiptUseCase{receiptRepo: receiptRepo}
}

// Execute creates the receipt. The total is always computed from the items;
// callers cannot supply their own total.
func (uc *CreateReceiptUseCase) Execute(ctx context.Context, input CreateReceiptInput) (*entity.Receipt, error) {
	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	storeName := strings.TrimSpace(input.StoreName)
	if storeName == "" {
		storeName = entity.UnknownStoreName
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	receipt := entity.NewReceipt(input.SubjectID, storeName, date, items)
	receipt.SharedWith = input.SharedWith
	receipt.ManualEntry = true
	if text := strings.TrimSpace(input.RawText); text != "" {
		receipt.RawText = &text
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	return receipt, nil
}

// buildItems validates and converts item inputs. Negative prices or
// non-positive quantities are rejected; a missing quantity defaults to 1.
func buildItems(inputs []ItemInput) ([]entity.ReceiptItem, error) {
	items := make([]entity.ReceiptItem, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, domainerror.NewReceiptError(
				domainerror.ErrCodeInvalidReceiptItem,
				"item name is required",
				domainerror.ErrInvalidReceiptItem,
			)
		}
		if in.Price.IsNegative() {
			return nil, domainerror.NewReceiptError(
				domainerror.ErrCodeInvalidReceiptItem,
				"item price cannot be negative",
				domainerror.ErrInvalidReceiptItem,
			)
		}
		quantity := in.Quantity
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}
		if quantity.IsNegative() {
			return nil, domainerror.NewReceiptError(
				domainerror.ErrCodeInvalidReceiptItem,
				"item quantity must be positive",
				domainerror.ErrInvalidReceiptItem,
			)
		}
		items = append(items, entity.ReceiptItem{
			Name:       name,
			Price:      in.Price,
			Quantity:   quantity,
			Category:   strings.TrimSpace(in.Category),
			AssignedTo: in.AssignedTo,
		})
	}
	return items, nil
}
