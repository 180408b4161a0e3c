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

// Package restcall turns a declarative description of a remote HTTP service
// into a callable client.
//
// A contract is a struct whose exported fields are funcs annotated with
// routing and binding metadata:
//
//	type CustomerService struct {
//		Get  func(ctx context.Context, marketID int) (Customer, error) `call:"GET customers/{marketId}" args:"marketId"`
//		List func(ctx context.Context) ([]Customer, error)             `call:"GET customers"`
//	}
//
// Register reads that metadata once, validates it, and fills each field with
// a closure that resolves configuration, expands the URL template, binds the
// arguments, and exchanges the request through a transport:
//
//	client, err := restcall.NewClient("customers", outbound,
//		restcall.BaseURL("https://svc.example/api"))
//	if err != nil {
//		return err
//	}
//	svc, err := restcall.Register[CustomerService](client)
//	if err != nil {
//		return err
//	}
//	customer, err := svc.Get(ctx, 7)
//
// Every failure is a *restcallerrors.Status carrying the error kind, the
// pipeline stage that failed, and, when a response was received, the HTTP
// status and raw body.
package restcall
