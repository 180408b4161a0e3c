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

package contract

import (
	"reflect"
	"time"

	"go.uber.org/restcall/internal/interpolate"
)

// Verb is the HTTP method a contract method maps to.
type Verb string

// Supported verbs.
const (
	GET     Verb = "GET"
	POST    Verb = "POST"
	PUT     Verb = "PUT"
	DELETE  Verb = "DELETE"
	PATCH   Verb = "PATCH"
	HEAD    Verb = "HEAD"
	OPTIONS Verb = "OPTIONS"
)

var _verbs = map[Verb]struct{}{
	GET:     {},
	POST:    {},
	PUT:     {},
	DELETE:  {},
	PATCH:   {},
	HEAD:    {},
	OPTIONS: {},
}

// hasRequestBody reports whether the default binding policy may place an
// unannotated parameter in the request body for this verb.
func (v Verb) hasRequestBody() bool {
	switch v {
	case POST, PUT, PATCH:
		return true
	default:
		return false
	}
}

// Kind determines how a call argument becomes part of the request.
type Kind int

const (
	// KindPath substitutes the argument into a {placeholder} of the URL
	// template.
	KindPath Kind = iota + 1

	// KindQuery appends the argument to the query string.
	KindQuery

	// KindBody serializes the argument as the request payload. At most
	// one parameter of a method may bind to the body.
	KindBody

	// KindHeader sends the argument as a request header.
	KindHeader

	// KindCookie sends the argument as a request cookie.
	KindCookie
)

var _kindToString = map[Kind]string{
	KindPath:   "path",
	KindQuery:  "query",
	KindBody:   "body",
	KindHeader: "header",
	KindCookie: "cookie",
}

var _stringToKind = map[string]Kind{
	"path":   KindPath,
	"query":  KindQuery,
	"body":   KindBody,
	"header": KindHeader,
	"cookie": KindCookie,
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	if s, ok := _kindToString[k]; ok {
		return s
	}
	return "unknown"
}

// Shape describes the declared result of a contract method.
type Shape int

const (
	// ShapeVoid means the method returns only an error: a successful
	// response produces no value and its body is discarded.
	ShapeVoid Shape = iota

	// ShapeEntity means the method returns a single decoded value.
	ShapeEntity

	// ShapeSequence means the method returns a slice of decoded values.
	ShapeSequence
)

// Param is the binding rule for one method parameter.
type Param struct {
	// Name of the parameter, from the args tag.
	Name string

	// Kind of the binding, explicit or inferred by the default policy.
	Kind Kind

	// Position of the parameter among the method's non-context
	// parameters, zero based.
	Position int

	// Type of the parameter.
	Type reflect.Type

	// Explicit is true when the binding came from a bind tag rather than
	// the default policy.
	Explicit bool
}

// Method is the immutable description of one contract method. It is built
// once by Describe and shared by every proxy for the contract.
type Method struct {
	// Name of the method: the contract struct's field name.
	Name string

	// Verb is the HTTP method.
	Verb Verb

	// PathTemplate is the raw relative path template from the call tag.
	PathTemplate string

	// Path is the parsed form of PathTemplate.
	Path interpolate.String

	// Params holds the binding for every parameter, in declaration order.
	Params []Param

	// Headers are the method-scoped default headers.
	Headers map[string]string

	// Timeout is the method-scoped timeout. Zero means unset.
	Timeout time.Duration

	// Shape of the declared result.
	Shape Shape

	// Result is the declared result type. For ShapeSequence this is the
	// slice type itself. Nil for ShapeVoid.
	Result reflect.Type

	// ConfigVariables are template placeholders the method does not bind a
	// parameter to; their values come from configuration variables at call
	// time.
	ConfigVariables []string

	fieldIndex int
	funcType   reflect.Type
}

// FieldIndex returns the index of the struct field this method was built
// from.
func (m *Method) FieldIndex() int { return m.fieldIndex }

// FuncType returns the reflect type of the method's func field.
func (m *Method) FuncType() reflect.Type { return m.funcType }

// BodyParam returns the body-bound parameter, if any.
func (m *Method) BodyParam() (Param, bool) {
	for _, p := range m.Params {
		if p.Kind == KindBody {
			return p, true
		}
	}
	return Param{}, false
}

// Descriptor is the immutable description of a contract type. Built once
// per distinct contract type and cached for the process lifetime; safe to
// share across all dispatch proxies for the contract.
type Descriptor struct {
	// Name of the contract: the struct type's name.
	Name string

	// Type is the contract struct type.
	Type reflect.Type

	// Methods in field declaration order.
	Methods []*Method

	methodsByName map[string]*Method
}

// Method returns the descriptor for the named method.
func (d *Descriptor) Method(name string) (*Method, bool) {
	m, ok := d.methodsByName[name]
	return m, ok
}
