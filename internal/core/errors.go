package core

import "errors"

var (
	// ErrNotFound reports a missing row or one owned by another user.
	ErrNotFound = errors.New("not found")

	// ErrInUse reports a delete blocked by expenses that still reference the row.
	ErrInUse = errors.New("still referenced by expenses")

	// ErrSameSource is returned when a merge names the same row twice.
	ErrSameSource = &ValidationError{Msg: "source and target must be different"}
)

// ValidationError describes user input that cannot be accepted.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

var validationSentinels = []error{
	ErrInvalidDay,
	ErrInvalidMonth,
	ErrZeroDate,
	ErrInvalidAmount,
	ErrEmptyDescription,
	ErrLongDescription,
	ErrEmptyCategory,
	ErrEmptyName,
}

// IsValidation reports whether err is caused by invalid input.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, s := range validationSentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
