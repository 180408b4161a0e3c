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

import "context"

// Lifecycle objects advance through start and stop at most once each.
type Lifecycle interface {
	// Start readies the object for traffic. Blocks until the object is
	// running. Subsequent calls return the result of the first.
	Start() error

	// Stop shuts the object down. Blocks until the object has stopped.
	// Subsequent calls return the result of the first.
	Stop() error

	// IsRunning returns whether the object has started and not yet
	// stopped.
	IsRunning() bool
}

// UnaryOutbound is a transport that knows how to exchange a fully resolved
// request for a response.
type UnaryOutbound interface {
	Lifecycle

	// Call sends the given request through this transport and returns its
	// response.
	//
	// A Response is returned whenever the service answered, regardless of
	// status code; interpreting the status is the caller's concern. An
	// error is returned only when no usable response exists: connection
	// failure, timeout, or cancellation.
	//
	// This MUST NOT be called before Start() has been called successfully.
	// This MAY panic if called without calling Start(). This MUST be safe
	// to call concurrently.
	Call(ctx context.Context, request *Request) (*Response, error)
}
