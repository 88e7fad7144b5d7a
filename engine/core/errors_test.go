package core

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestInitErrorUnwrap(t *testing.T) {
	cause := errors.New("no display")
	err := error(&InitError{Code: ErrorCodeBackendInit, Err: cause})

	if !errors.Is(err, cause) {
		t.Fatal("InitError should unwrap to its cause")
	}
	var ie *InitError
	if !errors.As(err, &ie) || ie.Code != ErrorCodeBackendInit {
		t.Fatalf("errors.As = %v", ie)
	}
	if !strings.Contains(err.Error(), "backend-init") || !strings.Contains(err.Error(), "no display") {
		t.Fatalf("message %q lacks code or cause", err.Error())
	}
}

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrorCodeBackendInit, "backend-init"},
		{ErrorCodeWindowCreate, "window-create"},
		{ErrorCodeGraphicsInit, "graphics-init"},
		{ErrorCodeUnknown, "unknown"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestErrorHandlerFunc(t *testing.T) {
	var gotCode ErrorCode
	var gotMsg string
	var h ErrorHandler = ErrorHandlerFunc(func(code ErrorCode, message string) {
		gotCode, gotMsg = code, message
	})
	h.HandleError(ErrorCodeWindowCreate, "no window")
	if gotCode != ErrorCodeWindowCreate || gotMsg != "no window" {
		t.Fatalf("handler got %v %q", gotCode, gotMsg)
	}
}

func TestLogErrorHandlerWritesLog(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	LogErrorHandler{}.HandleError(ErrorCodeGraphicsInit, "loader failed")

	out := buf.String()
	if !strings.Contains(out, "graphics-init") || !strings.Contains(out, "loader failed") {
		t.Fatalf("log output %q lacks the fault", out)
	}
}
