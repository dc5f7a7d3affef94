package tip

import (
	"context"
	"log/slog"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// DefaultTipLimit is used when the caller does not specify a limit.
const DefaultTipLimit = 5

// GetGeneralTipsInput represents the input for fetching general tips.
type GetGeneralTipsInput struct {
	Category string
	Limit    int
}

// GetGeneralTipsUseCase serves general money-saving tips. Stored tips are
// preferred; a shortfall is topped up by AI generation, and the static
// set covers AI failures.
type GetGeneralTipsUseCase struct {
	tipRepo adapter.TipRepository
	vision  adapter.VisionService
	policy  scan.RetryPolicy
	logger  *slog.Logger
}

// NewGetGeneralTipsUseCase creates a new GetGeneralTipsUseCase instance.
func NewGetGeneralTipsUseCase(
	tipRepo adapter.TipRepository,
	vision adapter.VisionService,
	policy scan.RetryPolicy,
	logger *slog.Logger,
) *GetGeneralTipsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetGeneralTipsUseCase{tipRepo: tipRepo, vision: vision, policy: policy, logger: logger}
}

// Execute returns up to Limit general tips.
func (uc *GetGeneralTipsUseCase) Execute(ctx context.Context, input GetGeneralTipsInput) ([]*entity.Tip, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultTipLimit
	}

	stored, err := uc.tipRepo.FindGeneral(ctx, input.Category, limit)
	if err != nil {
		uc.logger.Warn("tip lookup failed, serving static tips", "error", err)
		return staticTips(input.Category, limit), nil
	}
	if len(stored) >= limit {
		return stored, nil
	}

	needed := limit - len(stored)
	generated := uc.generate(ctx, input.Category, needed)
	if len(generated) > 0 {
		if err := uc.tipRepo.CreateMany(ctx, generated); err != nil {
			uc.logger.Warn("failed to store generated tips", "error", err)
		}
		stored = append(stored, generated...)
	}
	if len(stored) < limit {
		stored = append(stored, staticTips(input.Category, limit-len(stored))...)
	}
	if len(stored) > limit {
		stored = stored[:limit]
	}
	return stored, nil
}

// generate asks the model for tips. Failures log and return nil so the
// static set can take over.
func (uc *GetGeneralTipsUseCase) generate(ctx context.Context, category string, count int) []*entity.Tip {
	if uc.vision == nil || !uc.vision.IsAvailable() {
		return nil
	}
	prompt := generalTipsPrompt(category, count)
	raw, err := uc.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return uc.vision.GenerateText(ctx, prompt)
	})
	if err != nil {
		uc.logger.Warn("tip generation failed", "error", err)
		return nil
	}
	return toEntities(parseTips(raw), category, false, "")
}
