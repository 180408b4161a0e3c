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

// Class partitions response status codes the way the response mapper
// interprets them.
type Class int

const (
	// ClassUnknown covers status classes the engine does not interpret,
	// like 1xx and 3xx.
	ClassUnknown Class = iota

	// ClassSuccess covers 2xx statuses.
	ClassSuccess

	// ClassClientError covers 4xx statuses.
	ClassClientError

	// ClassServerError covers 5xx statuses.
	ClassServerError
)

// Response is the low level response representation.
//
// A Response exists only when the remote service answered: transport
// failures surface as errors from the outbound, never as a Response. It is
// created and consumed within a single call.
type Response struct {
	// StatusCode is the HTTP status returned by the service.
	StatusCode int

	// Headers of the response.
	Headers Headers

	// Raw response payload. May be empty.
	Body []byte
}

// Class returns the status class of this response.
func (r *Response) Class() Class {
	switch {
	case r.StatusCode >= 200 && r.StatusCode < 300:
		return ClassSuccess
	case r.StatusCode >= 400 && r.StatusCode < 500:
		return ClassClientError
	case r.StatusCode >= 500 && r.StatusCode < 600:
		return ClassServerError
	default:
		return ClassUnknown
	}
}
