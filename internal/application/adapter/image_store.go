package adapter

import "context"

// ImageStore defines the interface for binary image storage. Implementations
// return a URL/path reference suitable for persisting on the owning record.
type ImageStore interface {
	// Save stores image bytes under the given key and returns its reference.
	Save(ctx context.Context, key string, data []byte) (string, error)

	// Delete removes a stored image. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// SendEmailInput describes an outbound email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender defines the interface for sending transactional email.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) error
}
