package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized    = errors.New("not initialized")
	ErrInvalidImageData  = errors.New("invalid image data")
	ErrNoPrimaryMonitor  = errors.New("no primary monitor available")
	ErrAlreadyRegistered = errors.New("handle already registered")
	ErrNotRegistered     = errors.New("handle not registered")
	ErrUnknown           = errors.New("unknown")
)

// ErrorCode classifies initialization faults reported to an ErrorHandler.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	// The windowing library could not be initialized.
	ErrorCodeBackendInit
	// The native window or its context could not be created.
	ErrorCodeWindowCreate
	// Graphics function pointers could not be loaded for the new context.
	ErrorCodeGraphicsInit
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeBackendInit:
		return "backend-init"
	case ErrorCodeWindowCreate:
		return "window-create"
	case ErrorCodeGraphicsInit:
		return "graphics-init"
	}
	return "unknown"
}

// InitError is returned when a window fails to initialize. The window is
// unusable afterwards; nothing is retried.
type InitError struct {
	Code ErrorCode
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialization failed (%s): %v", e.Code, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives non-fatal initialization faults.
type ErrorHandler interface {
	HandleError(code ErrorCode, message string)
}

// ErrorHandlerFunc adapts a plain function to the ErrorHandler interface.
type ErrorHandlerFunc func(code ErrorCode, message string)

func (f ErrorHandlerFunc) HandleError(code ErrorCode, message string) {
	f(code, message)
}

// LogErrorHandler writes every fault to the engine log. When Fatal is set
// the process exits after logging.
type LogErrorHandler struct {
	Fatal bool
}

func (h LogErrorHandler) HandleError(code ErrorCode, message string) {
	if h.Fatal {
		LogFatal("[%s] %s", code, message)
		return
	}
	LogError("[%s] %s", code, message)
}
