// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// ReceiptModel represents the receipts table in the database. Items and
// the shared-with list are stored as JSON documents.
type ReceiptModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID        string           `gorm:"type:varchar(64);not null;index"`
	Date          time.Time        `gorm:"not null;index"`
	StoreName     string           `gorm:"type:varchar(255);not null"`
	Items         string           `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ReportedTotal *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ImageURL      *string          `gorm:"type:varchar(512)"`
	RawText       *string          `gorm:"type:text"`
	// Kept as text rather than jsonb so visibility lookups can use LIKE
	// across both postgres and the sqlite test driver.
	SharedWith    string           `gorm:"type:text;not null;default:'[]'"`
	ManualEntry   bool             `gorm:"not null;default:false"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for the ReceiptModel.
func (ReceiptModel) TableName() string {
	return "receipts"
}

// receiptItemRecord is the JSON shape of a single line item.
type receiptItemRecord struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   decimal.Decimal `json:"quantity"`
	Category   string          `json:"category,omitempty"`
	AssignedTo *string         `json:"assigned_to,omitempty"`
}

// ToEntity converts a ReceiptModel to a domain Receipt entity.
func (m *ReceiptModel) ToEntity() (*entity.Receipt, error) {
	var records []receiptItemRecord
	if err := json.Unmarshal([]byte(m.Items), &records); err != nil {
		return nil, fmt.Errorf("failed to decode receipt items: %w", err)
	}

	items := make([]entity.ReceiptItem, len(records))
	for i, rec := range records {
		items[i] = entity.ReceiptItem{
			Name:       rec.Name,
			Price:      rec.Price,
			Quantity:   rec.Quantity,
			Category:   rec.Category,
			AssignedTo: rec.AssignedTo,
		}
	}

	var sharedWith []string
	if err := json.Unmarshal([]byte(m.SharedWith), &sharedWith); err != nil {
		return nil, fmt.Errorf("failed to decode shared_with: %w", err)
	}

	return &entity.Receipt{
		ID:            m.ID,
		UserID:        m.UserID,
		Date:          m.Date,
		StoreName:     m.StoreName,
		Items:         items,
		TotalAmount:   m.TotalAmount,
		ReportedTotal: m.ReportedTotal,
		ImageURL:      m.ImageURL,
		RawText:       m.RawText,
		SharedWith:    sharedWith,
		ManualEntry:   m.ManualEntry,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// ReceiptFromEntity creates a ReceiptModel from a domain Receipt entity.
func ReceiptFromEntity(receipt *entity.Receipt) (*ReceiptModel, error) {
	records := make([]receiptItemRecord, len(receipt.Items))
	for i, item := range receipt.Items {
		records[i] = receiptItemRecord{
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Category:   item.Category,
			AssignedTo: item.AssignedTo,
		}
	}

	itemsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode receipt items: %w", err)
	}

	sharedWith := receipt.SharedWith
	if sharedWith == nil {
		sharedWith = []string{}
	}
	sharedJSON, err := json.Marshal(sharedWith)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shared_with: %w", err)
	}

	return &ReceiptModel{
		ID:            receipt.ID,
		UserID:        receipt.UserID,
		Date:          receipt.Date,
		StoreName:     receipt.StoreName,
		Items:         string(itemsJSON),
		TotalAmount:   receipt.TotalAmount,
		ReportedTotal: receipt.ReportedTotal,
		ImageURL:      receipt.ImageURL,
		RawText:       receipt.RawText,
		SharedWith:    string(sharedJSON),
		ManualEntry:   receipt.ManualEntry,
		CreatedAt:     receipt.CreatedAt,
		UpdatedAt:     receipt.UpdatedAt,
	}, nil
}
