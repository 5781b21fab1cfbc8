package clierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{
			name:    "simple error message",
			err:     New(Validation, "invalid input", nil),
			wantMsg: "invalid input",
		},
		{
			name:    "error with underlying error",
			err:     New(Gateway, "catalog service unreachable", errors.New("connection refused")),
			wantMsg: "catalog service unreachable",
		},
		{
			name:    "empty message",
			err:     New(Internal, "", nil),
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestError_Types(t *testing.T) {
	types := []Type{Validation, NotFound, Gateway, Declined, Internal}
	expected := []string{"validation", "not_found", "gateway", "declined", "internal"}

	for i, typ := range types {
		if string(typ) != expected[i] {
			t.Errorf("Type constant = %v, want %v", typ, expected[i])
		}
	}
}

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		typ  Type
		want int
	}{
		{Validation, 1},
		{NotFound, 1},
		{Gateway, 1},
		{Internal, 1},
		{Declined, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := New(tt.typ, "x", nil).ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestError_ErrorsIsAs(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	cliErr := New(Gateway, "request failed", underlyingErr)

	if !errors.Is(cliErr, underlyingErr) {
		t.Error("errors.Is should find underlying error")
	}

	var cliErrTarget *Error
	if !errors.As(cliErr, &cliErrTarget) {
		t.Error("errors.As should find Error type")
	}
	if cliErrTarget.Type != Gateway {
		t.Errorf("errors.As Type = %v, want %v", cliErrTarget.Type, Gateway)
	}
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("running command: %w", New(NotFound, "no product with ID 9", nil))

	if !IsType(wrapped, NotFound) {
		t.Error("IsType should see through fmt.Errorf wrapping")
	}
	if IsType(wrapped, Validation) {
		t.Error("IsType should not match a different type")
	}
	if IsType(errors.New("plain"), Internal) {
		t.Error("IsType should be false for non-CLI errors")
	}
	if IsType(nil, Internal) {
		t.Error("IsType should be false for nil")
	}
}

func TestError_NilUnderlying(t *testing.T) {
	err := New(Validation, "test", nil)
	if got := err.Unwrap(); got != nil {
		t.Errorf("Unwrap() with nil underlying = %v, want nil", got)
	}
}
