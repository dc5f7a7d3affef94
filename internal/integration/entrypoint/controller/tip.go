package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/application/usecase/tip"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// TipController handles money-saving tip endpoints.
type TipController struct {
	generalUseCase      *tip.GetGeneralTipsUseCase
	personalizedUseCase *tip.GetPersonalizedTipsUseCase
}

// NewTipController creates a new tip controller instance.
func NewTipController(
	generalUseCase *tip.GetGeneralTipsUseCase,
	personalizedUseCase *tip.GetPersonalizedTipsUseCase,
) *TipController {
	return &TipController{
		generalUseCase:      generalUseCase,
		personalizedUseCase: personalizedUseCase,
	}
}

// List handles GET /tips requests. With personalized=true the caller's
// spending history seeds the tip generation.
func (c *TipController) List(ctx *gin.Context) {
	category := ctx.Query("category")
	limit := parseIntParam(ctx.Query("limit"), 0)

	if ctx.Query("personalized") == "true" {
		subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
		if !ok {
			respondUnauthenticated(ctx)
			return
		}
		tips, err := c.personalizedUseCase.Execute(ctx.Request.Context(), tip.GetPersonalizedTipsInput{
			SubjectID: subjectID,
			Category:  category,
			Limit:     limit,
			Now:       time.Now().UTC(),
		})
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "Failed to retrieve personalized tips",
			})
			return
		}
		ctx.JSON(http.StatusOK, dto.ToTipListResponse(tips))
		return
	}

	tips, err := c.generalUseCase.Execute(ctx.Request.Context(), tip.GetGeneralTipsInput{
		Category: category,
		Limit:    limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve tips",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTipListResponse(tips))
}
