package dto

import (
	"time"

	"github.com/budgetsnap/backend/internal/application/usecase/analytics"
)

// SpendingBucketResponse represents one time bucket in a spending summary.
type SpendingBucketResponse struct {
	Label  string    `json:"label"`
	Start  time.Time `json:"start"`
	Amount float64   `json:"amount"`
	Count  int       `json:"count"`
}

// SpendingSummaryResponse represents the response for the spending summary.
type SpendingSummaryResponse struct {
	Period       string                   `json:"period"`
	Start        time.Time                `json:"start"`
	End          time.Time                `json:"end"`
	Total        float64                  `json:"total"`
	ReceiptCount int                      `json:"receipt_count"`
	Buckets      []SpendingBucketResponse `json:"buckets"`
}

// CategoryShareResponse represents one category's share of spending.
type CategoryShareResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	ItemCount  int     `json:"item_count"`
}

// CategoryBreakdownResponse represents the response for the category breakdown.
type CategoryBreakdownResponse struct {
	Period string                  `json:"period"`
	Start  time.Time               `json:"start"`
	End    time.Time               `json:"end"`
	Total  float64                 `json:"total"`
	Shares []CategoryShareResponse `json:"categories"`
}

// ToSpendingSummaryResponse converts a summary output to its DTO.
func ToSpendingSummaryResponse(output *analytics.SpendingSummaryOutput) SpendingSummaryResponse {
	buckets := make([]SpendingBucketResponse, len(output.Buckets))
	for i, bucket := range output.Buckets {
		buckets[i] = SpendingBucketResponse{
			Label:  bucket.Label,
			Start:  bucket.Start,
			Amount: bucket.Amount.InexactFloat64(),
			Count:  bucket.Count,
		}
	}
	return SpendingSummaryResponse{
		Period:       string(output.Period),
		Start:        output.Start,
		End:          output.End,
		Total:        output.Total.InexactFloat64(),
		ReceiptCount: output.ReceiptCount,
		Buckets:      buckets,
	}
}

// ToCategoryBreakdownResponse converts a breakdown output to its DTO.
func ToCategoryBreakdownResponse(output *analytics.CategoryBreakdownOutput) CategoryBreakdownResponse {
	shares := make([]CategoryShareResponse, len(output.Shares))
	for i, share := range output.Shares {
		shares[i] = CategoryShareResponse{
			Category:   share.Category,
			Amount:     share.Amount.InexactFloat64(),
			Percentage: share.Percentage.InexactFloat64(),
			ItemCount:  share.ItemCount,
		}
	}
	return CategoryBreakdownResponse{
		Period: string(output.Period),
		Start:  output.Start,
		End:    output.End,
		Total:  output.Total.InexactFloat64(),
		Shares: shares,
	}
}
