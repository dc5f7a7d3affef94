package scan

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseStatus tags the outcome of parsing a raw model response.
type ParseStatus string

const (
	// ParseSuccess means the full structured payload was recovered.
	ParseSuccess ParseStatus = "success"
	// ParsePartial means line items were recovered but store or date
	// context is missing.
	ParsePartial ParseStatus = "partial"
	// ParseFailed means nothing usable was recovered from the response.
	ParseFailed ParseStatus = "failed"
)

// ParsedItem is one line item recovered from the model response. Category
// is the model's suggestion and still needs resolution against the known
// category set.
type ParsedItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Category string
}

// ParsedReceipt is the tagged result of parsing. Callers branch on Status
// instead of an error value so partial recoveries stay usable.
type ParsedReceipt struct {
	Status        ParseStatus
	StoreName     string
	Date          *time.Time
	ReportedTotal *decimal.Decimal
	Items         []ParsedItem
	Reason        string
}

var (
	jsonFencePattern    = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	genericFencePattern = regexp.MustCompile("(?s)```\\s*(.*?)```")
	itemLinePattern     = regexp.MustCompile(`(?m)^\s*-\s*(.+?):\s*\$(\d+(?:\.\d+)?)(?:\s*\(quantity:\s*(\d+(?:\.\d+)?)\))?\s*$`)
	assignmentPattern   = regexp.MustCompile(`(?m)^\s*-\s*(.+?):\s*([^$\s][^:\n]*?)\s*$`)
)

// extractSpan strips a markdown code fence from the raw response. A
// ```json fence wins over a generic fence; without fences the raw text is
// used as-is.
func extractSpan(raw string) string {
	if m := jsonFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := genericFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

type rawReceiptItem struct {
	Name     string       `json:"name"`
	Price    *json.Number `json:"price"`
	Quantity *json.Number `json:"quantity"`
	Category string       `json:"category"`
}

type rawReceipt struct {
	StoreName      string           `json:"store_name"`
	StoreNameAlt   string           `json:"storeName"`
	Date           string           `json:"date"`
	TotalAmount    *json.Number     `json:"total_amount"`
	TotalAmountAlt *json.Number     `json:"totalAmount"`
	Items          []rawReceiptItem `json:"items"`
}

// ParseReceipt recovers structured receipt data from a raw model response.
// JSON is tried first; when the span is not valid JSON, line-pattern
// extraction recovers what it can as a partial result.
func ParseReceipt(raw string) *ParsedReceipt {
	span := extractSpan(raw)
	if span == "" {
		return &ParsedReceipt{Status: ParseFailed, Reason: "empty response"}
	}

	var payload rawReceipt
	if err := json.Unmarshal([]byte(span), &payload); err == nil {
		return parseJSONPayload(&payload)
	}

	items := parseItemLines(span)
	if len(items) == 0 {
		return &ParsedReceipt{Status: ParseFailed, Reason: "no structured data in response"}
	}
	return &ParsedReceipt{Status: ParsePartial, Items: items}
}

func parseJSONPayload(payload *rawReceipt) *ParsedReceipt {
	// Missing items or a missing total means the model returned an
	// incomplete extraction; callers must not silently default these.
	if payload.Items == nil {
		return &ParsedReceipt{Status: ParseFailed, Reason: "response missing items"}
	}
	total := payload.TotalAmount
	if total == nil {
		total = payload.TotalAmountAlt
	}
	if total == nil {
		return &ParsedReceipt{Status: ParseFailed, Reason: "response missing total amount"}
	}

	parsed := &ParsedReceipt{Status: ParseSuccess}

	parsed.StoreName = strings.TrimSpace(payload.StoreName)
	if parsed.StoreName == "" {
		parsed.StoreName = strings.TrimSpace(payload.StoreNameAlt)
	}
	if date, ok := parseDate(payload.Date); ok {
		parsed.Date = &date
	}
	if amount, err := decimal.NewFromString(total.String()); err == nil {
		parsed.ReportedTotal = &amount
	}

	for _, item := range payload.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		price := decimal.Zero
		if item.Price != nil {
			if p, err := decimal.NewFromString(item.Price.String()); err == nil {
				price = p
			}
		}
		quantity := decimal.NewFromInt(1)
		if item.Quantity != nil {
			if q, err := decimal.NewFromString(item.Quantity.String()); err == nil && q.IsPositive() {
				quantity = q
			}
		}
		parsed.Items = append(parsed.Items, ParsedItem{
			Name:     name,
			Price:    price,
			Quantity: quantity,
			Category: strings.TrimSpace(item.Category),
		})
	}

	if len(parsed.Items) == 0 {
		return &ParsedReceipt{Status: ParseFailed, Reason: "response items all empty"}
	}
	if parsed.StoreName == "" || parsed.Date == nil {
		parsed.Status = ParsePartial
	}
	return parsed
}

// parseItemLines extracts items from the legacy plain-text convention
// "- <name>: $<price> (quantity: <n>)". Quantity defaults to 1.
func parseItemLines(span string) []ParsedItem {
	var items []ParsedItem
	for _, m := range itemLinePattern.FindAllStringSubmatch(span, -1) {
		price, err := decimal.NewFromString(m[2])
		if err != nil {
			continue
		}
		quantity := decimal.NewFromInt(1)
		if m[3] != "" {
			if q, qErr := decimal.NewFromString(m[3]); qErr == nil && q.IsPositive() {
				quantity = q
			}
		}
		items = append(items, ParsedItem{
			Name:     strings.TrimSpace(m[1]),
			Price:    price,
			Quantity: quantity,
		})
	}
	return items
}

// ParseCategoryAssignments extracts "- <item name>: <category>" lines from
// a categorization response, keyed by item name.
func ParseCategoryAssignments(raw string) map[string]string {
	assignments := make(map[string]string)
	for _, m := range assignmentPattern.FindAllStringSubmatch(extractSpan(raw), -1) {
		name := strings.TrimSpace(m[1])
		category := strings.TrimSpace(m[2])
		if name != "" && category != "" {
			assignments[name] = category
		}
	}
	return assignments
}

// tolerantDateFormats are tried in order after strict ISO-8601.
var tolerantDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// parseDate parses a receipt date, strict ISO-8601 date first, then a
// tolerant list of common formats.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	for _, layout := range tolerantDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
