// Package tip contains money-saving tip use cases.
package tip

import "github.com/budgetsnap/backend/internal/domain/entity"

// fallbackTips is the static tip set used when AI generation fails or the
// store has nothing to offer. Grouped by category.
var fallbackTips = map[string][]*entity.Tip{
	"food": {
		entity.NewTip(
			"Plan Meals Around Weekly Sales",
			"Check store flyers and plan your meals around discounted items. This simple habit can save you 20-30% on your grocery bill.",
			"food",
			[]string{"meal planning", "discounts", "food"},
			false,
		),
		entity.NewTip(
			"Buy Seasonal Produce",
			"Fruits and vegetables in season are typically cheaper and more flavorful. Shop at farmers' markets near closing time for additional discounts.",
			"food",
			[]string{"produce", "seasonal", "shopping"},
			false,
		),
		entity.NewTip(
			"Pack Lunch Instead of Eating Out",
			"Bringing lunch from home can save $50-$100 per week compared to buying daily. Prep multiple meals on weekends to make it convenient.",
			"food",
			[]string{"meal prep", "lunch", "work"},
			false,
		),
	},
	"recreation": {
		entity.NewTip(
			"Explore Free Community Events",
			"Check local community calendars for free concerts, festivals, and activities. Many museums also offer free admission days each month.",
			"recreation",
			[]string{"free", "community", "activities"},
			false,
		),
		entity.NewTip(
			"Rotate Streaming Services",
			"Instead of subscribing to multiple streaming platforms simultaneously, rotate them monthly based on what you want to watch. This can cut your streaming costs by up to 75%.",
			"recreation",
			[]string{"streaming", "subscriptions", "media"},
			false,
		),
	},
	"personal": {
		entity.NewTip(
			"Implement the 24-Hour Rule",
			"For non-essential purchases over $50, wait 24 hours before buying. This cooling-off period often reduces impulse spending significantly.",
			"personal",
			[]string{"impulse control", "mindful spending", "discipline"},
			false,
		),
	},
	"other": {
		entity.NewTip(
			"Track Every Expense for One Month",
			"Record every single purchase for 30 days to identify spending patterns. Most people find they can immediately cut 10-15% after seeing where their money goes.",
			"other",
			[]string{"awareness", "tracking", "budgeting"},
			false,
		),
		entity.NewTip(
			"Automate Savings Transfers",
			"Set up automatic transfers to your savings account on payday. Treating savings as a non-negotiable expense ensures you consistently build your financial cushion.",
			"other",
			[]string{"automation", "savings", "habits"},
			false,
		),
		entity.NewTip(
			"Do a Subscription Audit",
			"Review all your recurring subscriptions and cancel those you rarely use. Many people save $50-$100 monthly by eliminating forgotten or underused services.",
			"other",
			[]string{"subscriptions", "recurring costs", "audit"},
			false,
		),
	},
}

// staticTips returns up to count fallback tips, optionally filtered to a
// category.
func staticTips(category string, count int) []*entity.Tip {
	var tips []*entity.Tip
	if category != "" {
		if categoryTips, ok := fallbackTips[category]; ok {
			tips = categoryTips
		}
	}
	if tips == nil {
		for _, categoryTips := range fallbackTips {
			tips = append(tips, categoryTips...)
		}
	}
	if count > 0 && len(tips) > count {
		tips = tips[:count]
	}
	return tips
}
