package services

import "strings"

// ValidationErrors is a non-empty ordered list of human-readable messages
// produced when a form submission fails validation. The order follows the
// form's field order so notices render predictably.
type ValidationErrors []string

// Error implements the error interface
func (e ValidationErrors) Error() string {
	return strings.Join(e, " ")
}
