package common

import (
	"fmt"
	"slices"
	"strings"

	"intervu/internal/errors"
	"intervu/internal/formatters"
)

// ValidateOutputFormat accepts a format only if a formatter ships for it and
// the configuration allows it. An empty configured list allows every shipped
// format.
func ValidateOutputFormat(format string, configured []string) error {
	allowed := formatters.GlobalRegistry.GetSupportedFormats()
	if len(configured) > 0 {
		allowed = slices.DeleteFunc(slices.Clone(allowed), func(f string) bool {
			return !slices.Contains(configured, f)
		})
	}

	if slices.Contains(allowed, format) {
		return nil
	}
	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported output format %q, supported formats: %s", format, strings.Join(allowed, ", ")), nil).
		WithContext("format", format)
}
