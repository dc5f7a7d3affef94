package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/usecase/receipt"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// ReceiptItemRequest represents a single line item in receipt requests.
type ReceiptItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	Category   string  `json:"category,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// CreateReceiptRequest represents the request body for manual receipt creation.
type CreateReceiptRequest struct {
	StoreName  string               `json:"store_name"`
	Date       string               `json:"date,omitempty"`
	Items      []ReceiptItemRequest `json:"items" binding:"required"`
	SharedWith []string             `json:"shared_with,omitempty"`
	RawText    string               `json:"raw_text,omitempty"`
}

// UpdateReceiptRequest represents the request body for receipt update.
type UpdateReceiptRequest struct {
	StoreName  *string              `json:"store_name,omitempty"`
	Date       *string              `json:"date,omitempty"`
	Items      []ReceiptItemRequest `json:"items,omitempty"`
	SharedWith []string             `json:"shared_with,omitempty"`
}

// ScanReceiptRequest represents the request body for receipt scanning.
// Image carries a base64 payload, optionally with a data-URL prefix.
type ScanReceiptRequest struct {
	Image     string `json:"image,omitempty"`
	ImageType string `json:"image_type,omitempty"`
	Text      string `json:"text,omitempty"`
}

// ReceiptItemResponse represents a single line item in API responses.
type ReceiptItemResponse struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Category   string  `json:"category"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Date          time.Time             `json:"date"`
	StoreName     string                `json:"store_name"`
	Items         []ReceiptItemResponse `json:"items"`
	TotalAmount   float64               `json:"total_amount"`
	ReportedTotal *float64              `json:"reported_total,omitempty"`
	ImageURL      *string               `json:"image_url,omitempty"`
	RawText       *string               `json:"raw_text,omitempty"`
	SharedWith    []string              `json:"shared_with,omitempty"`
	ManualEntry   bool                  `json:"manual_entry"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ScanTextRequest represents the request body for text-only extraction.
type ScanTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractionResponse represents a scan result that has not been persisted.
type ExtractionResponse struct {
	StoreName           string                `json:"store_name"`
	Date                time.Time             `json:"date"`
	Items               []ReceiptItemResponse `json:"items"`
	TotalAmount         float64               `json:"total_amount"`
	ReportedTotal       *float64              `json:"reported_total,omitempty"`
	RawText             string                `json:"raw_text,omitempty"`
	ManualEntryRequired bool                  `json:"manual_entry_required"`
	Error               string                `json:"error,omitempty"`
}

// ScanReceiptResponse represents the response for receipt scanning.
type ScanReceiptResponse struct {
	Receipt             ReceiptResponse `json:"receipt"`
	ManualEntryRequired bool            `json:"manual_entry_required"`
	Error               string          `json:"error,omitempty"`
}

// ReceiptListResponse represents the response for listing receipts.
type ReceiptListResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Count    int               `json:"count"`
}

// ToReceiptResponse converts a domain Receipt entity to a ReceiptResponse DTO.
func ToReceiptResponse(r *entity.Receipt) ReceiptResponse {
	items := make([]ReceiptItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = ReceiptItemResponse{
			Name:       item.Name,
			Price:      item.Price.InexactFloat64(),
			Quantity:   item.Quantity.InexactFloat64(),
			Subtotal:   item.Subtotal().InexactFloat64(),
			Category:   item.Category,
			AssignedTo: item.AssignedTo,
		}
	}

	var reported *float64
	if r.ReportedTotal != nil {
		value := r.ReportedTotal.InexactFloat64()
		reported = &value
	}

	return ReceiptResponse{
		ID:            r.ID.String(),
		UserID:        r.UserID,
		Date:          r.Date,
		StoreName:     r.StoreName,
		Items:         items,
		TotalAmount:   r.TotalAmount.InexactFloat64(),
		ReportedTotal: reported,
		ImageURL:      r.ImageURL,
		RawText:       r.RawText,
		SharedWith:    r.SharedWith,
		ManualEntry:   r.ManualEntry,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToExtractionResponse converts a scan extraction to its DTO.
func ToExtractionResponse(extraction *scan.Extraction) ExtractionResponse {
	items := make([]ReceiptItemResponse, len(extraction.Items))
	for i, item := range extraction.Items {
		items[i] = ReceiptItemResponse{
			Name:       item.Name,
			Price:      item.Price.InexactFloat64(),
			Quantity:   item.Quantity.InexactFloat64(),
			Subtotal:   item.Subtotal().InexactFloat64(),
			Category:   item.Category,
			AssignedTo: item.AssignedTo,
		}
	}

	var reported *float64
	if extraction.ReportedTotal != nil {
		value := extraction.ReportedTotal.InexactFloat64()
		reported = &value
	}

	return ExtractionResponse{
		StoreName:           extraction.StoreName,
		Date:                extraction.Date,
		Items:               items,
		TotalAmount:         extraction.TotalAmount.InexactFloat64(),
		ReportedTotal:       reported,
		RawText:             extraction.RawText,
		ManualEntryRequired: extraction.ManualEntryRequired,
		Error:               extraction.Error,
	}
}

// ToReceiptListResponse converts receipts to a ReceiptListResponse.
func ToReceiptListResponse(receipts []*entity.Receipt) ReceiptListResponse {
	responses := make([]ReceiptResponse, len(receipts))
	for i, r := range receipts {
		responses[i] = ToReceiptResponse(r)
	}
	return ReceiptListResponse{
		Receipts: responses,
		Count:    len(responses),
	}
}

// ToItemInputs converts request line items to use case item inputs.
func ToItemInputs(items []ReceiptItemRequest) []receipt.ItemInput {
	inputs := make([]receipt.ItemInput, len(items))
	for i, item := range items {
		inputs[i] = receipt.ItemInput{
			Name:       item.Name,
			Price:      decimal.NewFromFloat(item.Price),
			Quantity:   decimal.NewFromFloat(item.Quantity),
			Category:   item.Category,
			AssignedTo: item.AssignedTo,
		}
	}
	return inputs
}
