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
	"fmt"
	"strconv"
	"strings"
)

const (
	// CodeOK means no error; returned on success.
	CodeOK Code = 0

	// CodeCancelled means the call was cancelled, typically by the caller
	// through the context passed to the invocation.
	CodeCancelled Code = 1

	// CodeContractDefinition means a contract type carried malformed
	// metadata. This is a registration-time error: no request is ever sent
	// for a contract that fails validation.
	CodeContractDefinition Code = 2

	// CodeUnresolvedPlaceholder means a {placeholder} token in a URL
	// template had no matching call argument or configuration variable.
	CodeUnresolvedPlaceholder Code = 3

	// CodeUnsupportedBinding means a call argument could not be bound to
	// the request, for example a nil value for a binding kind that
	// requires a present value.
	CodeUnsupportedBinding Code = 4

	// CodeSerialization means the request body could not be serialized.
	CodeSerialization Code = 5

	// CodeDeserialization means the response body could not be decoded
	// into the declared result shape.
	CodeDeserialization Code = 6

	// CodeClientRequest means the service rejected the request with a 4xx
	// status. The status and raw body are attached to the error.
	CodeClientRequest Code = 7

	// CodeServiceFailure means the service failed with a 5xx status. The
	// status and raw body are attached to the error.
	CodeServiceFailure Code = 8

	// CodeTransport means the request could not be exchanged at all:
	// connection failure, timeout, or any error raised below the HTTP
	// status line.
	CodeTransport Code = 9
)

var (
	_codeToString = map[Code]string{
		CodeOK:                    "ok",
		CodeCancelled:             "cancelled",
		CodeContractDefinition:    "contract-definition",
		CodeUnresolvedPlaceholder: "unresolved-placeholder",
		CodeUnsupportedBinding:    "unsupported-binding",
		CodeSerialization:         "serialization",
		CodeDeserialization:       "deserialization",
		CodeClientRequest:         "client-request",
		CodeServiceFailure:        "service-failure",
		CodeTransport:             "transport",
	}
	_stringToCode = map[string]Code{
		"ok":                     CodeOK,
		"cancelled":              CodeCancelled,
		"contract-definition":    CodeContractDefinition,
		"unresolved-placeholder": CodeUnresolvedPlaceholder,
		"unsupported-binding":    CodeUnsupportedBinding,
		"serialization":          CodeSerialization,
		"deserialization":        CodeDeserialization,
		"client-request":         CodeClientRequest,
		"service-failure":        CodeServiceFailure,
		"transport":              CodeTransport,
	}
)

// Code identifies the kind of error raised by a contract call.
//
// Every error returned by a dispatch proxy carries exactly one Code, so
// callers can distinguish "my contract is malformed", "my arguments are
// invalid", "the service rejected the request", and "the network failed"
// without string matching.
type Code int

// String returns the string representation of the Code.
func (c Code) String() string {
	s, ok := _codeToString[c]
	if ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = i
	return nil
}
