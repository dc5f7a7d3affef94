// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnknownStoreName is the placeholder store name used when extraction
// could not determine the merchant.
const UnknownStoreName = "Unknown Store"

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name       string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Category   string
	AssignedTo *string // Subject id of the sharing participant paying for this item
}

// Subtotal returns price * quantity for the item.
func (i ReceiptItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(i.Quantity)
}

// Receipt represents a scanned or manually entered receipt.
type Receipt struct {
	ID        uuid.UUID
	UserID    string // Opaque subject identifier of the owner
	Date      time.Time
	StoreName string
	Items     []ReceiptItem
	// TotalAmount is always the sum of item subtotals. An AI-reported
	// figure that disagrees is kept in ReportedTotal for audit only.
	TotalAmount   decimal.Decimal
	ReportedTotal *decimal.Decimal
	ImageURL      *string
	RawText       *string
	SharedWith    []string
	ManualEntry   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReceipt creates a new Receipt entity with its total computed from items.
func NewReceipt(userID, storeName string, date time.Time, items []ReceiptItem) *Receipt {
	now := time.Now().UTC()
	return &Receipt{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		StoreName:   storeName,
		Items:       items,
		TotalAmount: SumItems(items),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SumItems returns the sum of price*quantity over items.
func SumItems(items []ReceiptItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// RecomputeTotal makes TotalAmount consistent with the current items.
func (r *Receipt) RecomputeTotal() {
	r.TotalAmount = SumItems(r.Items)
}

// VisibleTo reports whether the receipt may be read by the given subject,
// either as owner or as a sharing participant.
func (r *Receipt) VisibleTo(subjectID string) bool {
	if r.UserID == subjectID {
		return true
	}
	for _, shared := range r.SharedWith {
		if shared == subjectID {
			return true
		}
	}
	return false
}
