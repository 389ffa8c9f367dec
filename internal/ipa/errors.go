package ipa

import "github.com/pkg/errors"

var (
	ErrInfoPlistNotFound = errors.New("Info.plist not found in IPA")
	ErrInvalidIPA        = errors.New("invalid IPA file")
)

// MissingFieldError reports an Info.plist key that is required but absent
// (including its fallback key).
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}
