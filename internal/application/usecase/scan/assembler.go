package scan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// Extraction is the pipeline's output: everything needed to render a scan
// response or persist a receipt. TotalAmount is always the computed sum of
// item subtotals; the model's own total survives as ReportedTotal for
// auditing.
type Extraction struct {
	StoreName           string
	Date                time.Time
	Items               []entity.ReceiptItem
	TotalAmount         decimal.Decimal
	ReportedTotal       *decimal.Decimal
	RawText             string
	ManualEntryRequired bool
	Error               string
}

// assemble builds an Extraction from a parsed receipt, resolving item
// categories and filling gaps a partial parse left open.
func assemble(parsed *ParsedReceipt, resolver *Resolver, rawText string) *Extraction {
	storeName := parsed.StoreName
	if storeName == "" {
		storeName = entity.UnknownStoreName
	}
	date := time.Now().UTC()
	if parsed.Date != nil {
		date = *parsed.Date
	}

	items := make([]entity.ReceiptItem, 0, len(parsed.Items))
	total := decimal.Zero
	for _, p := range parsed.Items {
		item := entity.ReceiptItem{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Category: resolver.Resolve(p.Category),
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	return &Extraction{
		StoreName:     storeName,
		Date:          date,
		Items:         items,
		TotalAmount:   total,
		ReportedTotal: parsed.ReportedTotal,
		RawText:       rawText,
	}
}

// fallbackExtraction is the degraded payload returned when extraction
// could not produce usable data. The caller still gets a well-formed
// receipt shell and a flag telling the client to collect items manually.
func fallbackExtraction(reason string) *Extraction {
	placeholder := entity.ReceiptItem{
		Name:     "Please add items manually",
		Price:    decimal.Zero,
		Quantity: decimal.NewFromInt(1),
		Category: BuiltinFallbackLabel,
	}
	return &Extraction{
		StoreName:           entity.UnknownStoreName,
		Date:                time.Now().UTC(),
		Items:               []entity.ReceiptItem{placeholder},
		TotalAmount:         decimal.Zero,
		ManualEntryRequired: true,
		Error:               reason,
	}
}
