package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/usecase/notification"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// NotificationController handles notification endpoints.
type NotificationController struct {
	listUseCase        *notification.ListNotificationsUseCase
	markReadUseCase    *notification.MarkReadUseCase
	markAllReadUseCase *notification.MarkAllReadUseCase
	unreadCountUseCase *notification.UnreadCountUseCase
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	markReadUseCase *notification.MarkReadUseCase,
	markAllReadUseCase *notification.MarkAllReadUseCase,
	unreadCountUseCase *notification.UnreadCountUseCase,
) *NotificationController {
	return &NotificationController{
		listUseCase:        listUseCase,
		markReadUseCase:    markReadUseCase,
		markAllReadUseCase: markAllReadUseCase,
		unreadCountUseCase: unreadCountUseCase,
	}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	notifications, err := c.listUseCase.Execute(ctx.Request.Context(), notification.ListNotificationsInput{
		SubjectID:   subjectID,
		IncludeRead: ctx.DefaultQuery("include_read", "true") != "false",
		Skip:        parseIntParam(ctx.Query("skip"), 0),
		Limit:       parseIntParam(ctx.Query("limit"), 0),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve notifications",
		})
		return
	}

	unread, err := c.unreadCountUseCase.Execute(ctx.Request.Context(), subjectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve notifications",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications, unread))
}

// MarkRead handles PATCH /notifications/:id/read requests.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid notification ID format",
		})
		return
	}

	err = c.markReadUseCase.Execute(ctx.Request.Context(), notification.MarkReadInput{
		SubjectID:      subjectID,
		NotificationID: notificationID,
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrNotificationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Notification not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to update notification",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllRead handles POST /notifications/read-all requests.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	updated, err := c.markAllReadUseCase.Execute(ctx.Request.Context(), subjectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to update notifications",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// UnreadCount handles GET /notifications/unread-count requests.
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	unread, err := c.unreadCountUseCase.Execute(ctx.Request.Context(), subjectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve unread count",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: unread})
}
