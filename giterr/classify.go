package giterr

import "github.com/jmgilman/gitbind/native"

// MessageSource reads the detail recorded alongside a failing return code.
type MessageSource interface {
	LastErrorMessage() (string, bool)
	LastErrorClass() native.ErrorClass
}

// engineSource reads the native engine's process-wide last-error slot.
type engineSource struct{}

func (engineSource) LastErrorMessage() (string, bool) { return native.LastErrorMessage() }
func (engineSource) LastErrorClass() native.ErrorClass { return native.LastErrorClass() }

// Engine is the MessageSource backed by the native engine.
var Engine MessageSource = engineSource{}

// Classify turns a failing return code into an *Error, capturing the engine's
// last-error message. Call it before making any other engine call, since the
// next call clears the slot.
//
// Every code maps to exactly one kind; codes without a dedicated kind become
// KindGeneric. The returned error always reports code back from Info.
func Classify(code native.Code, op string) *Error {
	return ClassifyWith(Engine, code, op)
}

// ClassifyWith is Classify reading from src instead of the engine.
// A nil src records no message.
func ClassifyWith(src MessageSource, code native.Code, op string) *Error {
	info := &ErrorInfo{Code: code, Operation: op}
	if src != nil {
		if msg, ok := src.LastErrorMessage(); ok {
			info.Message = msg
		}
		info.Class = src.LastErrorClass()
	}
	return &Error{kind: KindFor(code), info: info}
}
