package native

import (
	"fmt"
	"sync"
)

// LastError is the detail the engine records alongside a failing return code.
type LastError struct {
	Class   ErrorClass
	Message string
}

// The slot is process-wide. Every engine call clears it on entry and a
// failing call fills it, so a caller must read it before making another call.
var (
	lastMu  sync.RWMutex
	lastErr *LastError
)

// SetError records class and msg as the last error. msg is stored verbatim.
func SetError(class ErrorClass, msg string) {
	lastMu.Lock()
	lastErr = &LastError{Class: class, Message: msg}
	lastMu.Unlock()
}

// SetErrorf records class and a formatted message as the last error.
func SetErrorf(class ErrorClass, format string, args ...interface{}) {
	SetError(class, fmt.Sprintf(format, args...))
}

// ClearError empties the slot.
func ClearError() {
	lastMu.Lock()
	lastErr = nil
	lastMu.Unlock()
}

// Last returns a copy of the last error and whether one is recorded.
func Last() (LastError, bool) {
	lastMu.RLock()
	defer lastMu.RUnlock()
	if lastErr == nil {
		return LastError{}, false
	}
	return *lastErr, true
}

// LastErrorMessage returns the last recorded message. The boolean is false
// when nothing is recorded or the message is empty.
func LastErrorMessage() (string, bool) {
	e, ok := Last()
	if !ok || e.Message == "" {
		return "", false
	}
	return e.Message, true
}

// LastErrorClass returns the class of the last error, or ClassNone.
func LastErrorClass() ErrorClass {
	e, _ := Last()
	return e.Class
}

// begin marks the start of an engine call.
func begin() {
	ClearError()
}

// fail records a message and returns code.
func fail(class ErrorClass, code Code, format string, args ...interface{}) Code {
	SetErrorf(class, format, args...)
	return code
}

// failErr translates err into a code, records its text and returns the code.
// class is used when the error carries no better subsystem of its own.
func failErr(class ErrorClass, err error) Code {
	code, c := translate(err, class)
	SetError(c, err.Error())
	return code
}
