package tip

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/budgetsnap/backend/internal/domain/entity"
)

// tipArrayPattern pulls the first JSON array out of a model response,
// tolerating surrounding prose or markdown fences.
var tipArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

type generatedTip struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// parseTips extracts generated tips from a raw model response. An empty
// slice with nil error means the response held no usable tips.
func parseTips(raw string) []generatedTip {
	span := tipArrayPattern.FindString(raw)
	if span == "" {
		return nil
	}
	var tips []generatedTip
	if err := json.Unmarshal([]byte(span), &tips); err != nil {
		return nil
	}
	var valid []generatedTip
	for _, tip := range tips {
		if strings.TrimSpace(tip.Title) != "" && strings.TrimSpace(tip.Content) != "" {
			valid = append(valid, tip)
		}
	}
	return valid
}

// generalTipsPrompt asks for count general money-saving tips as JSON.
func generalTipsPrompt(category string, count int) string {
	categoryHint := ""
	if category != "" {
		categoryHint = " for " + category
	}
	return fmt.Sprintf(`Generate %d practical money-saving tips%s.
For each tip provide a concise actionable title (under 10 words), detailed
advice (2-3 sentences), the relevant category, and 2-3 relevant tags.
Format the response as a JSON array:
[{"title": "...", "content": "...", "category": "...", "tags": ["...", "..."]}]
Focus on practical, actionable advice people can implement immediately.`, count, categoryHint)
}

// personalizedTipsPrompt folds the caller's spending analysis into the
// prompt so the advice references actual habits.
func personalizedTipsPrompt(analysis *SpendingAnalysis, category string, count int) string {
	var b strings.Builder
	categoryHint := ""
	if category != "" {
		categoryHint = " for " + category
	}
	fmt.Fprintf(&b, "Generate %d personalized money-saving tips%s based on this spending data:\n\n", count, categoryHint)
	b.WriteString("Top spending categories:\n")
	for _, share := range analysis.TopCategories {
		fmt.Fprintf(&b, "- %s: $%s\n", share.Category, share.Amount.StringFixed(2))
	}
	if len(analysis.FrequentStores) > 0 {
		fmt.Fprintf(&b, "\nFrequent stores: %s\n", strings.Join(analysis.FrequentStores, ", "))
	}
	fmt.Fprintf(&b, "\nTotal monthly spending: $%s\n\n", analysis.Total.StringFixed(2))
	b.WriteString(`For each tip provide a concise actionable title (under 10 words),
personalized advice (2-3 sentences) referring to the spending patterns,
the relevant category, and 2-3 relevant tags.
Format the response as a JSON array:
[{"title": "...", "content": "...", "category": "...", "tags": ["...", "..."]}]`)
	return b.String()
}

// toEntities converts generated tips, forcing the requested category when
// one was asked for.
func toEntities(generated []generatedTip, category string, personalized bool, subjectID string) []*entity.Tip {
	tips := make([]*entity.Tip, 0, len(generated))
	for _, g := range generated {
		tipCategory := g.Category
		if category != "" {
			tipCategory = category
		}
		if personalized {
			tips = append(tips, entity.NewPersonalizedTip(subjectID, g.Title, g.Content, tipCategory, g.Tags))
		} else {
			tips = append(tips, entity.NewTip(g.Title, g.Content, tipCategory, g.Tags, true))
		}
	}
	return tips
}
