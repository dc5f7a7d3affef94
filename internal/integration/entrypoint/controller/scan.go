package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// ScanController handles extraction-only scan endpoints. Nothing here is
// persisted; the receipts upload endpoint runs the same pipeline and saves.
type ScanController struct {
	extractUseCase *scan.ExtractReceiptUseCase
}

// NewScanController creates a new scan controller instance.
func NewScanController(extractUseCase *scan.ExtractReceiptUseCase) *ScanController {
	return &ScanController{extractUseCase: extractUseCase}
}

// Scan handles POST /scan requests with a multipart image file or a JSON
// base64 payload. Worst case the AI pipeline takes about 97 seconds
// (three 30s attempts plus backoff) before degrading to the manual-entry
// fallback.
func (c *ScanController) Scan(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var image *adapter.ImagePayload
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		image, ok = readMultipartImage(ctx)
		if !ok {
			return
		}
	} else {
		var req dto.ScanReceiptRequest
		if err := ctx.ShouldBindJSON(&req); err != nil || req.Image == "" {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "An image payload is required",
			})
			return
		}
		decoded, err := scan.DecodeImage(req.Image, req.ImageType)
		if err != nil {
			handleReceiptError(ctx, err)
			return
		}
		image = decoded
	}

	extraction, err := c.extractUseCase.Execute(ctx.Request.Context(), scan.ExtractReceiptInput{
		SubjectID: subjectID,
		Image:     image,
	})
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExtractionResponse(extraction))
}

// ScanText handles POST /scan/text requests with pasted receipt text.
// Shares the worst-case latency of Scan.
func (c *ScanController) ScanText(ctx *gin.Context) {
	subjectID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ScanTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Receipt text is required",
		})
		return
	}

	extraction, err := c.extractUseCase.Execute(ctx.Request.Context(), scan.ExtractReceiptInput{
		SubjectID: subjectID,
		Text:      req.Text,
	})
	if err != nil {
		handleReceiptError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExtractionResponse(extraction))
}
