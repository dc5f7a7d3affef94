package tip

import (
	"context"
	"log/slog"
	"time"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// GetPersonalizedTipsInput represents the input for personalized tips.
type GetPersonalizedTipsInput struct {
	SubjectID string
	Category  string
	Limit     int
	Now       time.Time
}

// GetPersonalizedTipsUseCase generates tips grounded in the user's last 30
// days of spending. Shortfalls are topped up with general tips.
type GetPersonalizedTipsUseCase struct {
	tipRepo     adapter.TipRepository
	receiptRepo adapter.ReceiptRepository
	vision      adapter.VisionService
	policy      scan.RetryPolicy
	general     *GetGeneralTipsUseCase
	logger      *slog.Logger
}

// NewGetPersonalizedTipsUseCase creates a new GetPersonalizedTipsUseCase instance.
func NewGetPersonalizedTipsUseCase(
	tipRepo adapter.TipRepository,
	receiptRepo adapter.ReceiptRepository,
	vision adapter.VisionService,
	policy scan.RetryPolicy,
	general *GetGeneralTipsUseCase,
	logger *slog.Logger,
) *GetPersonalizedTipsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetPersonalizedTipsUseCase{
		tipRepo:     tipRepo,
		receiptRepo: receiptRepo,
		vision:      vision,
		policy:      policy,
		general:     general,
		logger:      logger,
	}
}

// Execute returns up to Limit tips, personalized first.
func (uc *GetPersonalizedTipsUseCase) Execute(ctx context.Context, input GetPersonalizedTipsInput) ([]*entity.Tip, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultTipLimit
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	tips := uc.generatePersonalized(ctx, input.SubjectID, input.Category, limit, now)

	if len(tips) < limit {
		generalTips, err := uc.general.Execute(ctx, GetGeneralTipsInput{
			Category: input.Category,
			Limit:    limit - len(tips),
		})
		if err == nil {
			tips = append(tips, generalTips...)
		}
	}
	if len(tips) > limit {
		tips = tips[:limit]
	}
	return tips, nil
}

func (uc *GetPersonalizedTipsUseCase) generatePersonalized(ctx context.Context, subjectID, category string, count int, now time.Time) []*entity.Tip {
	if uc.vision == nil || !uc.vision.IsAvailable() {
		return nil
	}
	analysis, err := analyzeSpending(ctx, uc.receiptRepo, subjectID, now)
	if err != nil {
		uc.logger.Warn("spending analysis failed", "subject_id", subjectID, "error", err)
		return nil
	}
	if analysis.Total.IsZero() {
		// Nothing to personalize against.
		return nil
	}

	prompt := personalizedTipsPrompt(analysis, category, count)
	raw, err := uc.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return uc.vision.GenerateText(ctx, prompt)
	})
	if err != nil {
		uc.logger.Warn("personalized tip generation failed", "error", err)
		return nil
	}

	generated := toEntities(parseTips(raw), category, true, subjectID)
	var tips []*entity.Tip
	var fresh []*entity.Tip
	for _, tip := range generated {
		existing, err := uc.tipRepo.FindPersonalizedByTitle(ctx, subjectID, tip.Title)
		if err == nil && existing != nil {
			tips = append(tips, existing)
			continue
		}
		fresh = append(fresh, tip)
		tips = append(tips, tip)
	}
	if len(fresh) > 0 {
		if err := uc.tipRepo.CreateMany(ctx, fresh); err != nil {
			uc.logger.Warn("failed to store personalized tips", "error", err)
		}
	}
	return tips
}
