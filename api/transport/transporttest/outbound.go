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

// Package transporttest provides test doubles for the transport interfaces.
package transporttest

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/restcall/api/transport"
)

// FakeOutbound is a recording transport.UnaryOutbound for tests.
//
// It is safe for concurrent use.
type FakeOutbound struct {
	// Handler produces the response for each call. When nil, every call
	// returns an empty 200 response.
	Handler func(ctx context.Context, req *transport.Request) (*transport.Response, error)

	mu       sync.Mutex
	requests []*transport.Request
	running  atomic.Bool
}

var _ transport.UnaryOutbound = (*FakeOutbound)(nil)

// Start marks the outbound as running.
func (o *FakeOutbound) Start() error {
	o.running.Store(true)
	return nil
}

// Stop marks the outbound as stopped.
func (o *FakeOutbound) Stop() error {
	o.running.Store(false)
	return nil
}

// IsRunning returns whether Start has been called without a following Stop.
func (o *FakeOutbound) IsRunning() bool {
	return o.running.Load()
}

// Call records the request and delegates to Handler.
func (o *FakeOutbound) Call(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	o.mu.Lock()
	o.requests = append(o.requests, req)
	o.mu.Unlock()

	if o.Handler == nil {
		return &transport.Response{StatusCode: 200}, nil
	}
	return o.Handler(ctx, req)
}

// Requests returns a copy of the requests seen so far, in call order.
func (o *FakeOutbound) Requests() []*transport.Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	requests := make([]*transport.Request, len(o.requests))
	copy(requests, o.requests)
	return requests
}

// CallCount returns the number of calls seen so far.
func (o *FakeOutbound) CallCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.requests)
}
