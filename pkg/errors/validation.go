package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxBoxIDLength bounds box ids accepted from scene files and API requests.
const maxBoxIDLength = 128

// ValidateBoxID validates a box identifier taken from external input.
// The empty string is valid and denotes an anonymous box.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 128 characters
//   - No control characters
//   - No whitespace (ids appear unquoted in CLI output and DOT labels)
func ValidateBoxID(id string) error {
	if id == "" {
		return nil
	}

	if len(id) > maxBoxIDLength {
		return New(ErrCodeInvalidInput, "box id too long (max %d characters)", maxBoxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "box id %q contains invalid control characters", id)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "box id %q contains whitespace", id)
		}
	}

	return nil
}

// ValidateFraction checks that a percentage-of-parent value is a finite
// number within [lo, hi].
func ValidateFraction(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidMeasurement, "%s is not a finite number", name)
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidMeasurement, "%s %.4g out of range [%g, %g]", name, v, lo, hi)
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
