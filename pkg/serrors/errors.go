package serrors

import "fmt"

// Base is a coded error shared across service and HTTP layers. Code is stable
// and machine-readable; Message is operator-facing; Hint is optional advice.
type Base struct {
	Code    string
	Message string
	Hint    string
}

func NewError(code, message, hint string) *Base {
	return &Base{Code: code, Message: message, Hint: hint}
}

func (e *Base) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Hint)
}

// WithMeta attaches request-scoped detail without losing the coded base.
type MetaError struct {
	*Base
	Meta map[string]string
}

func (e *MetaError) Unwrap() error { return e.Base }

func WithMeta(base *Base, meta map[string]string) *MetaError {
	return &MetaError{Base: base, Meta: meta}
}

// Error taxonomy. AuthExpired prompts a re-login; Validation failures are
// client-side and never reach the backend; Upstream carries status/text of a
// failed backend call; DecisionInFlight guards against double-submits on the
// same object id.
var (
	ErrAuthExpired      = NewError("AUTH_EXPIRED", "session expired", "re-authenticate to continue")
	ErrValidation       = NewError("VALIDATION", "validation failed", "")
	ErrUpstream         = NewError("UPSTREAM", "backend request failed", "")
	ErrDecisionInFlight = NewError("DECISION_IN_FLIGHT", "a decision for this object is still being processed", "wait for it to settle")
	ErrBulkDecline      = NewError("BULK_DECLINE_UNSUPPORTED", "decline requires a reason per object", "decline objects individually")
)

// Validation returns a VALIDATION error with a concrete message.
func Validation(format string, args ...any) *Base {
	return NewError(ErrValidation.Code, fmt.Sprintf(format, args...), "")
}
