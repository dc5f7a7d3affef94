// Package error defines domain-specific errors for the BudgetSnap application.
package error

import "errors"

// Receipt domain errors.
var (
	// ErrReceiptNotFound is returned when a receipt is not found or not visible to the caller.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrNotAuthorizedReceipt is returned when a user tries to modify a receipt they do not own.
	ErrNotAuthorizedReceipt = errors.New("not authorized to modify receipt")

	// ErrImageTooLarge is returned when an uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")

	// ErrUnsupportedImageType is returned when an uploaded image has a disallowed MIME type.
	ErrUnsupportedImageType = errors.New("unsupported image type")

	// ErrEmptyReceiptText is returned when a text extraction request carries no text.
	ErrEmptyReceiptText = errors.New("receipt text is empty")

	// ErrInvalidReceiptItem is returned when an item has a negative price or quantity.
	ErrInvalidReceiptItem = errors.New("invalid receipt item")
)

// ReceiptErrorCode defines error codes for receipt errors.
// Format: RCP-XXYYYY where XX is category and YYYY is specific error.
type ReceiptErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeImageTooLarge        ReceiptErrorCode = "RCP-010001"
	ErrCodeUnsupportedImageType ReceiptErrorCode = "RCP-010002"
	ErrCodeEmptyReceiptText     ReceiptErrorCode = "RCP-010003"
	ErrCodeInvalidReceiptItem   ReceiptErrorCode = "RCP-010004"
	ErrCodeMissingReceiptFields ReceiptErrorCode = "RCP-010005"

	// Access errors (02XXXX)
	ErrCodeReceiptNotFound       ReceiptErrorCode = "RCP-020001"
	ErrCodeNotAuthorizedReceipt  ReceiptErrorCode = "RCP-020002"

	// Persistence errors (03XXXX)
	ErrCodeReceiptPersistence ReceiptErrorCode = "RCP-030001"
)

// ReceiptError represents a receipt error with code and message.
type ReceiptError struct {
	Code    ReceiptErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReceiptError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReceiptError) Unwrap() error {
	return e.Err
}

// NewReceiptError creates a new ReceiptError with the given code and message.
func NewReceiptError(code ReceiptErrorCode, message string, err error) *ReceiptError {
	return &ReceiptError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
