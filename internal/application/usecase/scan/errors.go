// Package scan contains the receipt extraction pipeline: AI gateway calls
// wrapped in a retry policy, response parsing, category resolution, and
// receipt assembly.
package scan

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Error code constants for AI extraction errors.
const (
	ErrCodeAIOverloaded  = "AI_OVERLOADED"
	ErrCodeAIUnavailable = "AI_UNAVAILABLE"
	ErrCodeAITimeout     = "AI_TIMEOUT"
	ErrCodeAIRateLimited = "AI_RATE_LIMITED"
	ErrCodeAIPermanent   = "AI_PERMANENT"
)

// ExtractionError classifies an error from the AI gateway.
type ExtractionError struct {
	Code      string
	Message   string
	Retryable bool
	Timestamp time.Time
}

// transientSignals are matched case-insensitively against the error text.
// Only these classes are eligible for retry; everything else is permanent.
var transientSignals = map[string]string{
	"overloaded":         ErrCodeAIOverloaded,
	"unavailable":        ErrCodeAIUnavailable,
	"503":                ErrCodeAIUnavailable,
	"deadline exceeded":  ErrCodeAITimeout,
	"timeout":            ErrCodeAITimeout,
	"rate limit":         ErrCodeAIRateLimited,
	"429":                ErrCodeAIRateLimited,
	"resource exhausted": ErrCodeAIRateLimited,
}

// classifyError converts a gateway error to an ExtractionError with an
// appropriate code and retryable flag.
func classifyError(err error) *ExtractionError {
	now := time.Now()

	if errors.Is(err, context.DeadlineExceeded) {
		return &ExtractionError{
			Code:      ErrCodeAITimeout,
			Message:   err.Error(),
			Retryable: true,
			Timestamp: now,
		}
	}

	errStr := strings.ToLower(err.Error())
	for signal, code := range transientSignals {
		if strings.Contains(errStr, signal) {
			return &ExtractionError{
				Code:      code,
				Message:   err.Error(),
				Retryable: true,
				Timestamp: now,
			}
		}
	}

	return &ExtractionError{
		Code:      ErrCodeAIPermanent,
		Message:   err.Error(),
		Retryable: false,
		Timestamp: now,
	}
}

// IsTransient reports whether the error is eligible for retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return classifyError(err).Retryable
}
