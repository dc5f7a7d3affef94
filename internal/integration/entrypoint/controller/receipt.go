package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/notification"
	"github.com/budgetsnap/backend/internal/application/usecase/receipt"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/domain/entity"
	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// ReceiptController handles receipt endpoints.
type ReceiptController struct {
	createUseCase      *receipt.CreateReceiptUseCase
	uploadUseCase      *receipt.UploadReceiptUseCase
	listUseCase        *receipt.ListReceiptsUseCase
	getUseCase         *receipt.GetReceiptUseCase
	updateUseCase      *receipt.UpdateReceiptUseCase
	deleteUseCase      *receipt.DeleteReceiptUseCase
	notifyUseCase      *notification.NotifyReceiptAddedUseCase
	budgetAlertUseCase *notification.BudgetAlertUseCase
	logger             *slog.Logger
}

// NewReceiptController creates a new receipt controller instance.
func NewReceiptController(
	createUseCase *receipt.CreateReceiptUseCase,
	uploadUseCase *receipt.UploadReceiptUseCase,
	listUseCase *receipt.ListReceiptsUseCase,
	getUseCase *receipt.GetReceiptUseCase,
	updateUseCase *receipt.UpdateReceiptUseCase,
	deleteUseCase *receipt.DeleteReceiptUseCase,
	notifyUseCase *notification.NotifyReceiptAddedUseCase,
	budgetAlertUseCase *notification.BudgetAlertUseCase,
	logger *slog.Logger,
) *ReceiptController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptController{
		createUseCase:      createUseCase,
		uploadUseCase:      uploadUseCase,
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		notifyUseCase:      notifyUseCase,
		budgetAlertUseCase: budgetAlertUseCase,
		logger:             logger,
	}
}

// Create handles POST /receipts requests for manual receipt entry.
func (c *ReceiptController) Create(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingReceiptFields),
		})
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDateParam(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		date = parsed
	}

	input := receipt.CreateReceiptInput{
		SubjectID:  subjectID,
		StoreName:  req.StoreName,
		Date:       date,
		Items:      dto.ToItemInputs(req.Items),
		SharedWith: req.SharedWith,
		RawText:    req.RawText,
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReceiptResponse(created))
}

// Upload handles POST /receipts/upload requests. A multipart form with an
// "image" file is the primary shape; a JSON body with a base64 image or
// pasted text works too. The extraction result is persisted and, when
// extraction degrades, returned with manual_entry_required set.
func (c *ReceiptController) Upload(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := receipt.UploadReceiptInput{SubjectID: subjectID}

	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		if !c.bindMultipartUpload(ctx, &input) {
			return
		}
	} else {
		var req dto.ScanReceiptRequest
		if err := ctx.ShouldBindJSON(&req); err != nil || (req.Image == "" && req.Text == "") {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "An image or receipt text is required",
			})
			return
		}
		if req.Image != "" {
			image, err := scan.DecodeImage(req.Image, req.ImageType)
			if err != nil {
				handleReceiptError(ctx, err)
				return
			}
			input.Image = image
		}
		input.Text = req.Text
	}

	output, err := c.uploadUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	c.notifyAfterUpload(ctx, subjectID, output.Receipt)

	ctx.JSON(http.StatusCreated, dto.ScanReceiptResponse{
		Receipt:             dto.ToReceiptResponse(output.Receipt),
		ManualEntryRequired: output.ManualEntryRequired,
		Error:               output.Error,
	})
}

// bindMultipartUpload reads the image file plus optional store_name and
// date overrides from a multipart form. Writes the error response itself.
func (c *ReceiptController) bindMultipartUpload(ctx *gin.Context, input *receipt.UploadReceiptInput) bool {
	image, ok := readMultipartImage(ctx)
	if !ok {
		return false
	}
	input.Image = image

	input.StoreName = ctx.PostForm("store_name")
	if dateStr := ctx.PostForm("date"); dateStr != "" {
		parsed, err := parseDateParam(dateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
			})
			return false
		}
		input.Date = &parsed
	}
	return true
}

// readMultipartImage pulls the "image" file out of a multipart form.
// Writes the error response itself.
func readMultipartImage(ctx *gin.Context) (*adapter.ImagePayload, bool) {
	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "An image file is required",
		})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read image file",
		})
		return nil, false
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return &adapter.ImagePayload{Data: data, MIMEType: mimeType}, true
}

// notifyAfterUpload fires the receipt-added notification and the budget
// alert check. Neither failure affects the upload response.
func (c *ReceiptController) notifyAfterUpload(ctx *gin.Context, subjectID string, created *entity.Receipt) {
	if c.notifyUseCase != nil {
		if err := c.notifyUseCase.Execute(ctx.Request.Context(), created); err != nil {
			c.logger.Warn("failed to record receipt notification", "receipt_id", created.ID, "error", err)
		}
	}
	if c.budgetAlertUseCase != nil {
		if err := c.budgetAlertUseCase.Execute(ctx.Request.Context(), notification.BudgetAlertInput{
			SubjectID: subjectID,
			Receipt:   created,
		}); err != nil {
			c.logger.Warn("budget alert check failed", "subject_id", subjectID, "error", err)
		}
	}
}

// List handles GET /receipts requests.
func (c *ReceiptController) List(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	filter := adapter.ReceiptFilter{
		Category: ctx.Query("category"),
	}
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		if startDate, err := parseDateParam(startDateStr); err == nil {
			filter.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		if endDate, err := parseDateParam(endDateStr); err == nil {
			filter.EndDate = &endDate
		}
	}
	filter.Skip = parseIntParam(ctx.Query("skip"), 0)
	filter.Limit = parseIntParam(ctx.Query("limit"), 0)

	receipts, err := c.listUseCase.Execute(ctx.Request.Context(), receipt.ListReceiptsInput{
		SubjectID: subjectID,
		Filter:    filter,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve receipts",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptListResponse(receipts))
}

// Get handles GET /receipts/:id requests.
func (c *ReceiptController) Get(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid receipt ID format",
		})
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), receipt.GetReceiptInput{
		SubjectID: subjectID,
		ReceiptID: receiptID,
	})
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(found))
}

// Update handles PUT /receipts/:id requests.
func (c *ReceiptController) Update(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid receipt ID format",
		})
		return
	}

	var req dto.UpdateReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := receipt.UpdateReceiptInput{
		SubjectID:  subjectID,
		ReceiptID:  receiptID,
		StoreName:  req.StoreName,
		SharedWith: req.SharedWith,
	}
	if req.Date != nil {
		parsed, err := parseDateParam(*req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		input.Date = &parsed
	}
	if req.Items != nil {
		input.Items = dto.ToItemInputs(req.Items)
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(updated))
}

// Delete handles DELETE /receipts/:id requests.
func (c *ReceiptController) Delete(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	receiptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid receipt ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), receipt.DeleteReceiptInput{
		SubjectID: subjectID,
		ReceiptID: receiptID,
	})
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleReceiptError maps receipt errors to HTTP responses.
func handleReceiptError(ctx *gin.Context, err error) {
	var receiptErr *domainerror.ReceiptError
	if errors.As(err, &receiptErr) {
		ctx.JSON(statusCodeForReceiptError(receiptErr.Code), dto.ErrorResponse{
			Error: receiptErr.Message,
			Code:  string(receiptErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForReceiptError maps receipt error codes to HTTP status codes.
func statusCodeForReceiptError(code domainerror.ReceiptErrorCode) int {
	switch code {
	case domainerror.ErrCodeReceiptNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedReceipt:
		return http.StatusForbidden
	case domainerror.ErrCodeImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeUnsupportedImageType,
		domainerror.ErrCodeEmptyReceiptText,
		domainerror.ErrCodeInvalidReceiptItem,
		domainerror.ErrCodeMissingReceiptFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the shared missing-credentials response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parseDateParam parses a YYYY-MM-DD parameter.
func parseDateParam(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// parseIntParam parses a non-negative integer parameter with a default.
func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
