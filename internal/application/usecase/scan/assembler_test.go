package scan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

func TestAssembleComputesTotalFromItems(t *testing.T) {
	date := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)
	reported := decimal.NewFromFloat(99.99)
	parsed := &ParsedReceipt{
		Status:        ParseSuccess,
		StoreName:     "Corner Market",
		Date:          &date,
		ReportedTotal: &reported,
		Items: []ParsedItem{
			{Name: "Milk", Price: decimal.NewFromFloat(3.50), Quantity: decimal.NewFromInt(2), Category: "food"},
			{Name: "Bread", Price: decimal.NewFromFloat(2.00), Quantity: decimal.NewFromInt(1), Category: "food"},
		},
	}

	extraction := assemble(parsed, NewResolver(nil), "raw response")

	// Computed sum of price*quantity wins; the model total is audit data.
	if !extraction.TotalAmount.Equal(decimal.NewFromFloat(9.00)) {
		t.Errorf("expected total 9.00, got %s", extraction.TotalAmount)
	}
	if extraction.ReportedTotal == nil || !extraction.ReportedTotal.Equal(reported) {
		t.Errorf("expected reported total kept, got %v", extraction.ReportedTotal)
	}
	if extraction.StoreName != "Corner Market" {
		t.Errorf("unexpected store name %q", extraction.StoreName)
	}
	if !extraction.Date.Equal(date) {
		t.Errorf("unexpected date %v", extraction.Date)
	}
	if extraction.ManualEntryRequired {
		t.Error("manual entry should not be required")
	}
	if extraction.RawText != "raw response" {
		t.Errorf("unexpected raw text %q", extraction.RawText)
	}
}

func TestAssembleFillsPartialGaps(t *testing.T) {
	parsed := &ParsedReceipt{
		Status: ParsePartial,
		Items: []ParsedItem{
			{Name: "Milk", Price: decimal.NewFromFloat(3.50), Quantity: decimal.NewFromInt(1)},
		},
	}

	before := time.Now().UTC()
	extraction := assemble(parsed, NewResolver(nil), "")

	if extraction.StoreName != entity.UnknownStoreName {
		t.Errorf("expected %q, got %q", entity.UnknownStoreName, extraction.StoreName)
	}
	if extraction.Date.Before(before.Add(-time.Minute)) {
		t.Errorf("expected current date, got %v", extraction.Date)
	}
	// Empty suggested category resolves to the fallback label.
	if extraction.Items[0].Category != BuiltinFallbackLabel {
		t.Errorf("expected fallback category, got %q", extraction.Items[0].Category)
	}
}

func TestFallbackExtraction(t *testing.T) {
	extraction := fallbackExtraction("AI service unavailable after 3 attempts")

	if !extraction.ManualEntryRequired {
		t.Error("fallback must require manual entry")
	}
	if extraction.Error == "" {
		t.Error("fallback must carry a descriptive error")
	}
	if extraction.StoreName != entity.UnknownStoreName {
		t.Errorf("expected %q, got %q", entity.UnknownStoreName, extraction.StoreName)
	}
	if !extraction.TotalAmount.IsZero() {
		t.Errorf("expected zero total, got %s", extraction.TotalAmount)
	}
	if len(extraction.Items) != 1 {
		t.Fatalf("expected single placeholder item, got %d", len(extraction.Items))
	}
	item := extraction.Items[0]
	if item.Name != "Please add items manually" {
		t.Errorf("unexpected placeholder name %q", item.Name)
	}
	if !item.Price.IsZero() || !item.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unexpected placeholder pricing: %+v", item)
	}
	if item.Category != BuiltinFallbackLabel {
		t.Errorf("expected %q category, got %q", BuiltinFallbackLabel, item.Category)
	}
}
