package handlers

// Stable machine-readable codes carried in ErrorResponse.Code. Generic codes
// track HTTP status semantics; the *_failed codes pin the failure to the
// operation so clients need not parse messages. The recovery middleware emits
// internal_error for panics, keeping the taxonomy closed.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
	ErrCodeInternal   = "internal_error"

	ErrCodeAnswerFailed     = "answer_failed"
	ErrCodeSaveFailed       = "save_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
