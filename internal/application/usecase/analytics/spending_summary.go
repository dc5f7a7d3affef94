// Package analytics contains spending analytics use cases.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// Period selects the analytics window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"

	// PeriodCustom is reported when an explicit date range was given.
	PeriodCustom Period = "custom"
)

// bucketGranularity selects the time slice size of the summary.
type bucketGranularity int

const (
	bucketByDay bucketGranularity = iota
	bucketByMonth
)

// Explicit ranges up to this many days bucket by day, longer ones by month.
const maxDailyRangeDays = 31

// SpendingBucket is one time slice of the summary. Buckets with no
// receipts are present with a zero amount.
type SpendingBucket struct {
	Label  string
	Start  time.Time
	Amount decimal.Decimal
	Count  int
}

// SpendingSummaryInput represents the input for the spending summary.
// An explicit StartDate/EndDate pair overrides Period; Category narrows
// the aggregation to the matching line items.
type SpendingSummaryInput struct {
	SubjectID string
	Period    Period
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Now       time.Time // Zero means the current time
}

// SpendingSummaryOutput represents the spending summary for a period.
type SpendingSummaryOutput struct {
	Period       Period
	Start        time.Time
	End          time.Time
	Total        decimal.Decimal
	ReceiptCount int
	Buckets      []SpendingBucket
}

// SpendingSummaryUseCase aggregates owned receipts into time buckets.
// Only owned receipts count toward a user's spending; shared visibility
// does not move money.
type SpendingSummaryUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewSpendingSummaryUseCase creates a new SpendingSummaryUseCase instance.
func NewSpendingSummaryUseCase(receiptRepo adapter.ReceiptRepository) *SpendingSummaryUseCase {
	return &SpendingSummaryUseCase{receiptRepo: receiptRepo}
}

// Execute computes the summary. Week and month periods bucket by day and
// year buckets by month; explicit ranges bucket by day up to 31 days.
func (uc *SpendingSummaryUseCase) Execute(ctx context.Context, input SpendingSummaryInput) (*SpendingSummaryOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	period := input.Period
	var start, end time.Time
	if input.StartDate != nil && input.EndDate != nil {
		start = input.StartDate.UTC().Truncate(24 * time.Hour)
		end = input.EndDate.UTC()
		if end.Before(start) {
			return nil, fmt.Errorf("analytics range end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
		}
		period = PeriodCustom
	} else {
		var err error
		start, end, err = periodBounds(period, now)
		if err != nil {
			return nil, err
		}
		if period == "" {
			period = PeriodMonth
		}
	}
	granularity := granularityFor(period, start, end)

	receipts, err := uc.receiptRepo.FindOwnedBetween(ctx, input.SubjectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	out := &SpendingSummaryOutput{
		Period:  period,
		Start:   start,
		End:     end,
		Total:   decimal.Zero,
		Buckets: emptyBuckets(granularity, start, end),
	}

	index := make(map[string]int, len(out.Buckets))
	for i, bucket := range out.Buckets {
		index[bucket.Label] = i
	}
	for _, receipt := range receipts {
		amount := attributedAmount(receipt, input.Category)
		if input.Category != "" && amount.IsZero() {
			continue
		}
		out.Total = out.Total.Add(amount)
		out.ReceiptCount++
		label := bucketLabel(granularity, receipt.Date)
		if i, ok := index[label]; ok {
			out.Buckets[i].Amount = out.Buckets[i].Amount.Add(amount)
			out.Buckets[i].Count++
		}
	}
	return out, nil
}

// attributedAmount returns the receipt's contribution, narrowed to the
// category's item subtotals when a category filter is set.
func attributedAmount(receipt *entity.Receipt, category string) decimal.Decimal {
	if category == "" {
		return receipt.TotalAmount
	}
	total := decimal.Zero
	for _, item := range receipt.Items {
		if item.Category == category {
			total = total.Add(item.Subtotal())
		}
	}
	return total
}

// periodBounds returns the [start, end] window for a period ending now.
func periodBounds(period Period, now time.Time) (time.Time, time.Time, error) {
	end := now
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -6).Truncate(24 * time.Hour), end, nil
	case PeriodMonth, "":
		return now.AddDate(0, -1, 0).Truncate(24 * time.Hour), end, nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0).Truncate(24 * time.Hour), end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown analytics period %q", period)
	}
}

func granularityFor(period Period, start, end time.Time) bucketGranularity {
	switch period {
	case PeriodYear:
		return bucketByMonth
	case PeriodCustom:
		if end.Sub(start) > maxDailyRangeDays*24*time.Hour {
			return bucketByMonth
		}
		return bucketByDay
	default:
		return bucketByDay
	}
}

func emptyBuckets(granularity bucketGranularity, start, end time.Time) []SpendingBucket {
	var buckets []SpendingBucket
	if granularity == bucketByMonth {
		cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cursor.After(end) {
			buckets = append(buckets, SpendingBucket{
				Label:  cursor.Format("2006-01"),
				Start:  cursor,
				Amount: decimal.Zero,
			})
			cursor = cursor.AddDate(0, 1, 0)
		}
		return buckets
	}
	cursor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		buckets = append(buckets, SpendingBucket{
			Label:  cursor.Format("2006-01-02"),
			Start:  cursor,
			Amount: decimal.Zero,
		})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return buckets
}

func bucketLabel(granularity bucketGranularity, date time.Time) string {
	if granularity == bucketByMonth {
		return date.UTC().Format("2006-01")
	}
	return date.UTC().Format("2006-01-02")
}
