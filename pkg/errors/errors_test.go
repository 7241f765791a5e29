package errors

import (
	"errors"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidLandscape, "row %d has %d cells", 3, 5)

	if err.Code != ErrCodeInvalidLandscape {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLandscape)
	}
	if err.Message != "row 3 has 5 cells" {
		t.Errorf("Message = %q", err.Message)
	}
	if got, want := err.Error(), "INVALID_LANDSCAPE: row 3 has 5 cells"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidProblem, cause, "decode problem file %s", "garden.txt")

	if err.Code != ErrCodeInvalidProblem {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidProblem)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want the original cause", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidTarget, "color 9"), ErrCodeInvalidTarget, true},
		{"different code", New(ErrCodeInvalidTarget, "color 9"), ErrCodeUnsatisfiable, false},
		{"outer code of a wrapped chain", Wrap(ErrCodeInvalidProblem, New(ErrCodeInvalidInventory, "inner"), "outer"), ErrCodeInvalidProblem, true},
		{"plain stdlib error", errors.New("plain"), ErrCodeInvalidTarget, false},
		{"nil error", nil, ErrCodeInvalidTarget, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRunNotFound, "no such run")); got != ErrCodeRunNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeRunNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessageStripsCode(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, errors.New("open garden.txt: no such file"), "open garden.txt")
	if got := UserMessage(err); got != "open garden.txt" {
		t.Errorf("UserMessage() = %q, want the message without the code", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
