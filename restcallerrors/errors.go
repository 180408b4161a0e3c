// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package restcallerrors

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// Newf returns a new Status.
//
// The Code should never be CodeOK, if it is, this will return nil.
func Newf(code Code, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}

	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}

	return &Status{
		code: code,
		err:  err,
	}
}

// Wrap returns a new Status with the given code wrapping the given error.
//
// The original error remains reachable through errors.Unwrap, so causes
// raised by collaborators (codecs, transports) are never swallowed.
func Wrap(code Code, err error) *Status {
	if err == nil || code == CodeOK {
		return nil
	}
	return &Status{
		code: code,
		err:  &wrapError{err: err},
	}
}

// FromError returns the Status for the provided error.
//
// If the error:
//   - is nil, return nil
//   - is a 'Status', return the 'Status'
//
// Otherwise, return a wrapped error with code 'CodeTransport' if it came
// from below the engine, which is the only place unclassified errors can
// originate once a contract is registered.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}
	var st *Status
	if errors.As(err, &st) {
		return st
	}
	return &Status{
		code: CodeTransport,
		err:  &wrapError{err: err},
	}
}

// IsStatus returns whether the provided error is or wraps a *Status.
//
// This is false if the error is nil.
func IsStatus(err error) bool {
	var st *Status
	return errors.As(err, &st)
}

// Status represents an error raised by the contract dispatch engine.
type Status struct {
	code       Code
	stage      string
	httpStatus int
	body       []byte
	timeout    bool
	err        error
}

// WithStage returns a new Status annotated with the pipeline stage that
// failed.
func (s *Status) WithStage(stage string) *Status {
	if s == nil {
		return nil
	}
	copied := *s
	copied.stage = stage
	return &copied
}

// WithHTTPStatus returns a new Status carrying the HTTP status code and raw
// response body returned by the remote service.
func (s *Status) WithHTTPStatus(status int, body []byte) *Status {
	if s == nil {
		return nil
	}
	if len(body) == 0 {
		body = nil
	}
	copied := *s
	copied.httpStatus = status
	copied.body = body
	return &copied
}

// WithBody returns a new Status carrying the raw response body, for errors
// that have a body but no meaningful HTTP status, like decode failures.
func (s *Status) WithBody(body []byte) *Status {
	if s == nil {
		return nil
	}
	if len(body) == 0 {
		body = nil
	}
	copied := *s
	copied.body = body
	return &copied
}

// WithTimeout returns a new Status marked as caused by a deadline expiry.
func (s *Status) WithTimeout() *Status {
	if s == nil {
		return nil
	}
	copied := *s
	copied.timeout = true
	return &copied
}

// Code returns the error code for this Status.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// Stage returns the name of the pipeline stage that raised this Status, or
// an empty string if the error was not raised inside a call pipeline.
func (s *Status) Stage() string {
	if s == nil {
		return ""
	}
	return s.stage
}

// HTTPStatus returns the HTTP status code attached to this Status, or zero
// if no response was received.
func (s *Status) HTTPStatus() int {
	if s == nil {
		return 0
	}
	return s.httpStatus
}

// Body returns the raw response body attached to this Status.
//
// The returned slice MUST NOT be modified.
func (s *Status) Body() []byte {
	if s == nil {
		return nil
	}
	return s.body
}

// Timeout returns whether this Status was caused by a deadline expiry.
func (s *Status) Timeout() bool {
	if s == nil {
		return false
	}
	return s.timeout
}

// Message returns the error message for this Status.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	return s.err.Error()
}

// Unwrap supports errors.Unwrap.
//
// See "errors" package documentation for details.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// Error implements the error interface.
func (s *Status) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(s.code.String())
	if s.stage != "" {
		_, _ = buffer.WriteString(` stage:`)
		_, _ = buffer.WriteString(s.stage)
	}
	if s.httpStatus != 0 {
		_, _ = buffer.WriteString(` status:`)
		_, _ = buffer.WriteString(strconv.Itoa(s.httpStatus))
	}
	if s.err != nil && s.err.Error() != "" {
		_, _ = buffer.WriteString(` message:`)
		_, _ = buffer.WriteString(s.err.Error())
	}
	return buffer.String()
}

// wrapError does what it says on the tin.
type wrapError struct {
	err error
}

// Error returns the inner error message.
func (e *wrapError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Unwrap returns the inner error.
func (e *wrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// CancelledErrorf returns a new Status with code CodeCancelled
// by calling Newf(CodeCancelled, format, args...).
func CancelledErrorf(format string, args ...interface{}) error {
	return Newf(CodeCancelled, format, args...)
}

// ContractDefinitionErrorf returns a new Status with code
// CodeContractDefinition by calling Newf(CodeContractDefinition, format, args...).
func ContractDefinitionErrorf(format string, args ...interface{}) error {
	return Newf(CodeContractDefinition, format, args...)
}

// UnresolvedPlaceholderErrorf returns a new Status with code
// CodeUnresolvedPlaceholder by calling Newf(CodeUnresolvedPlaceholder, format, args...).
func UnresolvedPlaceholderErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnresolvedPlaceholder, format, args...)
}

// UnsupportedBindingErrorf returns a new Status with code
// CodeUnsupportedBinding by calling Newf(CodeUnsupportedBinding, format, args...).
func UnsupportedBindingErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnsupportedBinding, format, args...)
}

// SerializationErrorf returns a new Status with code CodeSerialization
// by calling Newf(CodeSerialization, format, args...).
func SerializationErrorf(format string, args ...interface{}) error {
	return Newf(CodeSerialization, format, args...)
}

// DeserializationErrorf returns a new Status with code CodeDeserialization
// by calling Newf(CodeDeserialization, format, args...).
func DeserializationErrorf(format string, args ...interface{}) error {
	return Newf(CodeDeserialization, format, args...)
}

// ClientRequestErrorf returns a new Status with code CodeClientRequest
// by calling Newf(CodeClientRequest, format, args...).
func ClientRequestErrorf(format string, args ...interface{}) error {
	return Newf(CodeClientRequest, format, args...)
}

// ServiceFailureErrorf returns a new Status with code CodeServiceFailure
// by calling Newf(CodeServiceFailure, format, args...).
func ServiceFailureErrorf(format string, args ...interface{}) error {
	return Newf(CodeServiceFailure, format, args...)
}

// TransportErrorf returns a new Status with code CodeTransport
// by calling Newf(CodeTransport, format, args...).
func TransportErrorf(format string, args ...interface{}) error {
	return Newf(CodeTransport, format, args...)
}

// IsCancelled returns true if FromError(err).Code() == CodeCancelled.
func IsCancelled(err error) bool {
	return FromError(err).Code() == CodeCancelled
}

// IsContractDefinition returns true if FromError(err).Code() == CodeContractDefinition.
func IsContractDefinition(err error) bool {
	return FromError(err).Code() == CodeContractDefinition
}

// IsUnresolvedPlaceholder returns true if FromError(err).Code() == CodeUnresolvedPlaceholder.
func IsUnresolvedPlaceholder(err error) bool {
	return FromError(err).Code() == CodeUnresolvedPlaceholder
}

// IsUnsupportedBinding returns true if FromError(err).Code() == CodeUnsupportedBinding.
func IsUnsupportedBinding(err error) bool {
	return FromError(err).Code() == CodeUnsupportedBinding
}

// IsSerialization returns true if FromError(err).Code() == CodeSerialization.
func IsSerialization(err error) bool {
	return FromError(err).Code() == CodeSerialization
}

// IsDeserialization returns true if FromError(err).Code() == CodeDeserialization.
func IsDeserialization(err error) bool {
	return FromError(err).Code() == CodeDeserialization
}

// IsClientRequest returns true if FromError(err).Code() == CodeClientRequest.
func IsClientRequest(err error) bool {
	return FromError(err).Code() == CodeClientRequest
}

// IsServiceFailure returns true if FromError(err).Code() == CodeServiceFailure.
func IsServiceFailure(err error) bool {
	return FromError(err).Code() == CodeServiceFailure
}

// IsTransport returns true if FromError(err).Code() == CodeTransport.
func IsTransport(err error) bool {
	return FromError(err).Code() == CodeTransport
}

// IsTimeout returns true if the error is a Status marked with a deadline
// expiry.
func IsTimeout(err error) bool {
	return FromError(err).Timeout()
}

// ErrorCode returns the Code for the given error, CodeOK if the error is
// nil.
func ErrorCode(err error) Code {
	return FromError(err).Code()
}
