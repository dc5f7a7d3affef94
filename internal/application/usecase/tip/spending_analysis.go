package tip

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
)

// analysisWindow is how far back spending is analyzed for personalization.
const analysisWindow = 30 * 24 * time.Hour

// maxAnalysisEntries caps the category and store lists fed to the prompt.
const maxAnalysisEntries = 5

// CategorySpend is one category's total within the analysis window.
type CategorySpend struct {
	Category string
	Amount   decimal.Decimal
}

// SpendingAnalysis summarizes a user's recent spending habits.
type SpendingAnalysis struct {
	TopCategories  []CategorySpend
	FrequentStores []string
	Total          decimal.Decimal
}

// analyzeSpending aggregates the user's owned receipts from the last 30
// days into top categories and frequent stores.
func analyzeSpending(ctx context.Context, receiptRepo adapter.ReceiptRepository, subjectID string, now time.Time) (*SpendingAnalysis, error) {
	receipts, err := receiptRepo.FindOwnedBetween(ctx, subjectID, now.Add(-analysisWindow), now)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts for analysis: %w", err)
	}

	byCategory := make(map[string]decimal.Decimal)
	storeVisits := make(map[string]int)
	total := decimal.Zero
	for _, receipt := range receipts {
		for _, item := range receipt.Items {
			category := item.Category
			if category == "" {
				category = "other"
			}
			subtotal := item.Subtotal()
			byCategory[category] = byCategory[category].Add(subtotal)
			total = total.Add(subtotal)
		}
		storeVisits[receipt.StoreName]++
	}

	analysis := &SpendingAnalysis{Total: total}
	for category, amount := range byCategory {
		analysis.TopCategories = append(analysis.TopCategories, CategorySpend{Category: category, Amount: amount})
	}
	sort.Slice(analysis.TopCategories, func(i, j int) bool {
		if !analysis.TopCategories[i].Amount.Equal(analysis.TopCategories[j].Amount) {
			return analysis.TopCategories[i].Amount.GreaterThan(analysis.TopCategories[j].Amount)
		}
		return analysis.TopCategories[i].Category < analysis.TopCategories[j].Category
	})
	if len(analysis.TopCategories) > maxAnalysisEntries {
		analysis.TopCategories = analysis.TopCategories[:maxAnalysisEntries]
	}

	type storeCount struct {
		name   string
		visits int
	}
	stores := make([]storeCount, 0, len(storeVisits))
	for name, visits := range storeVisits {
		stores = append(stores, storeCount{name: name, visits: visits})
	}
	sort.Slice(stores, func(i, j int) bool {
		if stores[i].visits != stores[j].visits {
			return stores[i].visits > stores[j].visits
		}
		return stores[i].name < stores[j].name
	})
	for i, store := range stores {
		if i == maxAnalysisEntries {
			break
		}
		analysis.FrequentStores = append(analysis.FrequentStores, store.name)
	}
	return analysis, nil
}
