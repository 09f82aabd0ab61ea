package mail

import "fmt"

type ErrorCode string

const (
	ErrCodeTemplateExecution ErrorCode = "TEMPLATE_EXECUTION"
	ErrCodeInvalidRecipient  ErrorCode = "INVALID_RECIPIENT"
	ErrCodeNetworkFailure    ErrorCode = "NETWORK_FAILURE"
)

// MailerError describes a failed send. Retryable errors may succeed on a
// later attempt with the same message.
type MailerError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Err       error
}

func (e *MailerError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *MailerError) Unwrap() error { return e.Err }

// Temporary reports whether the send may be retried.
func (e *MailerError) Temporary() bool { return e.Retryable }

func newTemplateError(name string, err error) *MailerError {
	return &MailerError{
		Code:    ErrCodeTemplateExecution,
		Message: fmt.Sprintf("failed to execute template %s", name),
		Err:     err,
	}
}

func newRecipientError(addr string, err error) *MailerError {
	return &MailerError{
		Code:    ErrCodeInvalidRecipient,
		Message: fmt.Sprintf("invalid address %q", addr),
		Err:     err,
	}
}

func newNetworkError(op string, err error) *MailerError {
	return &MailerError{
		Code:      ErrCodeNetworkFailure,
		Message:   fmt.Sprintf("network failure during %s", op),
		Retryable: true,
		Err:       err,
	}
}
