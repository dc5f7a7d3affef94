package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/application/usecase/analytics"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles spending analytics endpoints.
type AnalyticsController struct {
	summaryUseCase   *analytics.SpendingSummaryUseCase
	breakdownUseCase *analytics.CategoryBreakdownUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *analytics.SpendingSummaryUseCase,
	breakdownUseCase *analytics.CategoryBreakdownUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase:   summaryUseCase,
		breakdownUseCase: breakdownUseCase,
	}
}

// SpendingSummary handles GET /analytics/spending requests. An explicit
// start_date/end_date pair takes precedence over the period parameter.
func (c *AnalyticsController) SpendingSummary(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := analytics.SpendingSummaryInput{
		SubjectID: subjectID,
		Category:  ctx.Query("category"),
		Now:       time.Now().UTC(),
	}

	startStr, endStr := ctx.Query("start_date"), ctx.Query("end_date")
	if startStr != "" && endStr != "" {
		start, err := parseDateParam(startStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
			})
			return
		}
		end, err := parseDateParam(endStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
		if end.Before(start) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "end_date must not precede start_date",
			})
			return
		}
		input.StartDate = &start
		input.EndDate = &end
	} else {
		period, ok := parsePeriodParam(ctx)
		if !ok {
			return
		}
		input.Period = period
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute spending summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingSummaryResponse(output))
}

// CategoryBreakdown handles GET /analytics/categories requests.
func (c *AnalyticsController) CategoryBreakdown(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, ok := parsePeriodParam(ctx)
	if !ok {
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), analytics.CategoryBreakdownInput{
		SubjectID: subjectID,
		Period:    period,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute category breakdown",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// parsePeriodParam reads the period query parameter, writing a 400
// response when the value is not week, month or year.
func parsePeriodParam(ctx *gin.Context) (analytics.Period, bool) {
	period := analytics.Period(ctx.DefaultQuery("period", string(analytics.PeriodMonth)))
	switch period {
	case analytics.PeriodWeek, analytics.PeriodMonth, analytics.PeriodYear:
		return period, true
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid period, expected week, month or year",
		})
		return "", false
	}
}
