package domain

import "errors"

// Cross-cutting errors shared by every service. The API layer maps each to
// a fixed HTTP status, so services signal failure categories purely through
// these sentinels (wrapped where extra context helps).
var (
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("access forbidden")
	ErrTokenInvalid    = errors.New("invalid or expired token")
	ErrFeatureDisabled = errors.New("feature disabled")
	ErrFileNotFound    = errors.New("file not found")
)
