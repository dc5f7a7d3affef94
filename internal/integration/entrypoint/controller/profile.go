package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/profile"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// maxAvatarBytes caps decoded avatar uploads.
const maxAvatarBytes = 5 << 20

// avatarImageTypes accepts the receipt image types plus gif and webp,
// since avatars never go through the AI pipeline.
var avatarImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/gif":  ".gif",
}

// ProfileController handles user profile endpoints.
type ProfileController struct {
	getUseCase    *profile.GetProfileUseCase
	updateUseCase *profile.UpdateProfileUseCase
	imageStore    adapter.ImageStore
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	getUseCase *profile.GetProfileUseCase,
	updateUseCase *profile.UpdateProfileUseCase,
	imageStore adapter.ImageStore,
) *ProfileController {
	return &ProfileController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		imageStore:    imageStore,
	}
}

// Get handles GET /profile requests. The profile is created from the
// token claims on first access.
func (c *ProfileController) Get(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)
	displayName, _ := middleware.GetDisplayNameFromContext(ctx)

	found, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{
		SubjectID:   subjectID,
		Email:       email,
		DisplayName: displayName,
	})
	if err != nil {
		handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(found))
}

// UploadAvatar handles POST /profile/avatar requests with a base64 image.
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.AvatarUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "An image payload is required",
		})
		return
	}

	image, err := scan.DecodeImage(req.Image, req.ImageType)
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}
	if len(image.Data) > maxAvatarBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error: "Avatar image exceeds the 5MB limit",
		})
		return
	}
	extension, allowed := avatarImageTypes[strings.ToLower(image.MIMEType)]
	if !allowed {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Unsupported avatar image type",
		})
		return
	}

	url, err := c.imageStore.Save(ctx.Request.Context(), "avatar-"+subjectID+extension, image.Data)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to store avatar image",
		})
		return
	}

	_, err = c.updateUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		SubjectID: subjectID,
		AvatarURL: &url,
	})
	if err != nil {
		handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AvatarUploadResponse{AvatarURL: url})
}

// UpdateBudget handles PUT /profile/budget requests.
func (c *ProfileController) UpdateBudget(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		SubjectID:     subjectID,
		MonthlyBudget: toDecimalPtr(req.MonthlyBudget),
		BudgetTargets: dto.ToDecimalMap(req.BudgetTargets),
	})
	if err != nil {
		handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(updated))
}

// Update handles PUT /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := profile.UpdateProfileInput{
		SubjectID:     subjectID,
		DisplayName:   req.DisplayName,
		AvatarURL:     req.AvatarURL,
		MonthlyBudget: toDecimalPtr(req.MonthlyBudget),
		BudgetTargets: dto.ToDecimalMap(req.BudgetTargets),
		Preferences:   req.Preferences,
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(updated))
}

// handleProfileError maps profile errors to HTTP responses.
func handleProfileError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrProfileNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Profile not found",
		})
	case errors.Is(err, domainerror.ErrInvalidBudget):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Budget amounts must not be negative",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}
