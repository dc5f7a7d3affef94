package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/application/usecase/settings"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// SettingsController handles user settings endpoints.
type SettingsController struct {
	getUseCase    *settings.GetSettingsUseCase
	updateUseCase *settings.UpdateSettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /settings requests. Defaults are created on first access.
func (c *SettingsController) Get(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), subjectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve settings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(found))
}

// UpdateNotifications handles PUT /settings/notifications requests. The
// full set of channel toggles replaces the stored one.
func (c *SettingsController) UpdateNotifications(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.NotificationSettingsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), settings.UpdateSettingsInput{
		SubjectID: subjectID,
		Notifications: &entity.NotificationSettings{
			Email:        req.Email,
			Push:         req.Push,
			BudgetAlerts: req.BudgetAlerts,
		},
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to update settings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(updated))
}

// Update handles PUT /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := settings.UpdateSettingsInput{
		SubjectID:    subjectID,
		Theme:        req.Theme,
		Currency:     req.Currency,
		BudgetLimits: dto.ToDecimalMap(req.BudgetLimits),
	}
	if req.Notifications != nil {
		input.Notifications = &entity.NotificationSettings{
			Email:        req.Notifications.Email,
			Push:         req.Notifications.Push,
			BudgetAlerts: req.Notifications.BudgetAlerts,
		}
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidBudget) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Budget limits must not be negative",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to update settings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(updated))
}
