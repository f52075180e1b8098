package apperrors

import (
	"errors"
	"testing"
)

func TestConstructorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"resource not found", NewResourceNotFoundError("invalid student id"), ErrResourceNotFound},
		{"forbidden", NewForbiddenError("insufficient role"), ErrPermissionDenied},
		{"bad request", NewBadRequestError("malformed form submission"), ErrBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tc.err, tc.sentinel)
			}

			var custom *CustomError
			if !errors.As(tc.err, &custom) {
				t.Fatalf("errors.As failed for %v", tc.err)
			}
			if custom.Message == "" {
				t.Error("constructor dropped the message")
			}
		})
	}
}

func TestCustomErrorMessage(t *testing.T) {
	err := &CustomError{Err: ErrBadRequest, Message: "malformed form submission"}
	if got := err.Error(); got != "malformed form submission" {
		t.Errorf("Error() = %q, want the message", got)
	}

	// Without a message the sentinel text is used.
	bare := &CustomError{Err: ErrBadRequest}
	if got := bare.Error(); got != "bad request" {
		t.Errorf("Error() = %q, want sentinel text", got)
	}
}
