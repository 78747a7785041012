package failure_test

import (
	"errors"
	"gearshare/shared/failure"
	"net/http"
	"testing"
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

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		input   error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "NotFound",
			input:   failure.NotFound("user not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "user not found",
		},
		{
			name:    "NotFoundf",
			input:   failure.NotFoundf("user %d not found", 42),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "user 42 not found",
		},
		{
			name:    "Validation",
			input:   failure.Validation("item is not available"),
			code:    http.StatusBadRequest,
			kind:    failure.KindValidation,
			message: "item is not available",
		},
		{
			name:    "Validationf",
			input:   failure.Validationf("item %d is not available", 7),
			code:    http.StatusBadRequest,
			kind:    failure.KindValidation,
			message: "item 7 is not available",
		},
		{
			name:    "Unsupported",
			input:   failure.Unsupported("Unknown state: UNSUPPORTED_STATUS"),
			code:    http.StatusBadRequest,
			kind:    failure.KindUnsupported,
			message: "Unknown state: UNSUPPORTED_STATUS",
		},
		{
			name:    "Forbidden",
			input:   failure.Forbidden("only the owner may edit an item"),
			code:    http.StatusForbidden,
			kind:    failure.KindForbidden,
			message: "only the owner may edit an item",
		},
		{
			name:    "Conflict",
			input:   failure.Conflict("email already in use"),
			code:    http.StatusConflict,
			kind:    failure.KindConflict,
			message: "email already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			if !errors.As(tt.input, &f) {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.input)
			}
			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}
			if f.Kind != tt.kind {
				t.Errorf("expected kind to be %s, got %s", tt.kind, f.Kind)
			}
			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Kind: failure.KindValidation, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Kind != expectedF.Kind || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestInternalError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("database connection failed"),
			expected: &failure.Failure{Code: http.StatusInternalServerError, Message: "database connection failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.InternalError(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
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
			input:    failure.Validation("test"),
			expected: http.StatusBadRequest,
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

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected failure.Kind
	}{
		{
			name:     "unsupported failure",
			input:    failure.Unsupported("Unknown state: X"),
			expected: failure.KindUnsupported,
		},
		{
			name:     "validation failure",
			input:    failure.Validation("bad time range"),
			expected: failure.KindValidation,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.KindOf(tt.input); got != tt.expected {
				t.Errorf("expected kind to be %q, got %q", tt.expected, got)
			}

			if tt.expected != "" && !failure.IsKind(tt.input, tt.expected) {
				t.Errorf("expected IsKind to report %q", tt.expected)
			}
		})
	}
}
