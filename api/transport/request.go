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

package transport

import (
	"net/url"
	"time"

	"go.uber.org/restcall/restcallerrors"
)

// Request is the low level, transport-agnostic request representation.
//
// A Request is fully resolved: every placeholder has been expanded and every
// binding applied before the Request is handed to an outbound. It is created
// and consumed within a single call and MUST NOT be reused.
type Request struct {
	// Name of the service to which the request is being made.
	Service string

	// Name of the contract method being called.
	Procedure string

	// HTTP method of the request (GET, POST, ...).
	Method string

	// Absolute, fully resolved request URL, including any query string.
	URL *url.URL

	// Headers for the request.
	Headers Headers

	// Cookies for the request.
	Cookies map[string]string

	// Serialized request payload, nil when the method has no body binding.
	Body []byte

	// ContentType of the payload, set only when Body is present.
	ContentType string

	// Timeout for the whole exchange. Zero means the outbound's default.
	Timeout time.Duration
}

// ValidateRequest validates the given request. An error is returned if the
// request is invalid.
func ValidateRequest(req *Request) error {
	var missingParams []string
	if req.Service == "" {
		missingParams = append(missingParams, "service name")
	}
	if req.Procedure == "" {
		missingParams = append(missingParams, "procedure")
	}
	if req.Method == "" {
		missingParams = append(missingParams, "http method")
	}
	if req.URL == nil {
		missingParams = append(missingParams, "url")
	}
	if len(missingParams) > 0 {
		return restcallerrors.TransportErrorf(
			"missing %v on the request", missingParams)
	}
	return nil
}
