package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"vietour/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestTaxonomyConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "validation",
			err:     failure.Validation("missing required fields"),
			code:    http.StatusBadRequest,
			kind:    failure.KindValidation,
			message: "missing required fields",
		},
		{
			name:    "availability conflict",
			err:     failure.AvailabilityConflict("not available"),
			code:    http.StatusConflict,
			kind:    failure.KindAvailabilityConflict,
			message: "not available",
		},
		{
			name:    "invalid transition",
			err:     failure.InvalidTransition("cannot move from Completed to Pending"),
			code:    http.StatusUnprocessableEntity,
			kind:    failure.KindInvalidTransition,
			message: "cannot move from Completed to Pending",
		},
		{
			name:    "conversion",
			err:     failure.Conversion("conversion failed"),
			code:    http.StatusBadGateway,
			kind:    failure.KindConversion,
			message: "conversion failed",
		},
		{
			name:    "not found",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "booking not found",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			kind:    failure.KindUnauthorized,
			message: "token expired",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("Access denied"),
			code:    http.StatusForbidden,
			kind:    failure.KindForbidden,
			message: "Access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, f.Kind)
			}

			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil error")
	}

	result := failure.BadRequest(errors.New("validation failed"))

	if failure.GetCode(result) != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(result))
	}

	if !failure.IsKind(result, failure.KindValidation) {
		t.Errorf("expected validation kind, got %s", failure.GetKind(result))
	}
}

func TestPersistence(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if failure.Persistence(nil) != nil {
			t.Error("expected nil")
		}
	})

	t.Run("plain collaborator error keeps message and cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := failure.Persistence(cause)

		if err.Error() != "connection refused" {
			t.Errorf("expected verbatim message, got %q", err.Error())
		}

		if failure.GetCode(err) != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", failure.GetCode(err))
		}

		if !errors.Is(err, cause) {
			t.Error("expected cause to be reachable with errors.Is")
		}

		if !failure.IsKind(err, failure.KindPersistence) {
			t.Errorf("expected persistence kind, got %s", failure.GetKind(err))
		}
	})

	t.Run("collaborator failure keeps its status code", func(t *testing.T) {
		err := failure.Persistence(failure.New(http.StatusServiceUnavailable, "store down"))

		if failure.GetCode(err) != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", failure.GetCode(err))
		}

		if !failure.IsKind(err, failure.KindPersistence) {
			t.Errorf("expected persistence kind, got %s", failure.GetKind(err))
		}
	})
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.Conflict("taken")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if failure.GetKind(errors.New("plain")) != failure.KindUnknown {
		t.Error("expected unknown kind for plain errors")
	}

	wrapped := fmt.Errorf("create booking: %w", failure.AvailabilityConflict("busy"))
	if !failure.IsKind(wrapped, failure.KindAvailabilityConflict) {
		t.Errorf("expected availability conflict, got %s", failure.GetKind(wrapped))
	}
}
