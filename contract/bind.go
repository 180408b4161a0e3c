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
	"fmt"
	"reflect"
	"strconv"

	"go.uber.org/restcall/restcallerrors"
)

// QueryEntry is one query string pair. Entries keep parameter declaration
// order so synthesized URLs are deterministic.
type QueryEntry struct {
	Key   string
	Value string
}

// Bound is the result of applying a method's bindings to one set of call
// arguments. It is created and consumed within a single call.
type Bound struct {
	// Path maps placeholder names to rendered values.
	Path map[string]string

	// Query entries in parameter declaration order.
	Query []QueryEntry

	// Headers bound from call arguments.
	Headers map[string]string

	// Cookies bound from call arguments.
	Cookies map[string]string

	// Body is the value to serialize, valid only when HasBody is true.
	Body interface{}

	// HasBody is true when the method has a body binding and the argument
	// was present.
	HasBody bool
}

// Bind applies the method's parameter bindings to the given call arguments.
// The arguments are the func's parameters after the context, in order.
func (m *Method) Bind(args []reflect.Value) (*Bound, error) {
	if len(args) != len(m.Params) {
		return nil, restcallerrors.UnsupportedBindingErrorf(
			"%s: got %d arguments, want %d", m.Name, len(args), len(m.Params))
	}

	bound := &Bound{}
	for i, p := range m.Params {
		arg := args[i]

		if p.Kind == KindBody {
			if isAbsent(arg) {
				return nil, restcallerrors.UnsupportedBindingErrorf(
					"%s: body parameter %q is nil", m.Name, p.Name)
			}
			bound.Body = arg.Interface()
			bound.HasBody = true
			continue
		}

		value, present, err := formatValue(arg)
		if err != nil {
			return nil, restcallerrors.UnsupportedBindingErrorf(
				"%s: parameter %q: %v", m.Name, p.Name, err)
		}

		if !present {
			// A nil optional renders no query entry; every other kind
			// requires a present value.
			if p.Kind == KindQuery {
				continue
			}
			return nil, restcallerrors.UnsupportedBindingErrorf(
				"%s: %s parameter %q is nil", m.Name, p.Kind, p.Name)
		}

		switch p.Kind {
		case KindPath:
			if bound.Path == nil {
				bound.Path = make(map[string]string)
			}
			bound.Path[p.Name] = value
		case KindQuery:
			bound.Query = append(bound.Query, QueryEntry{Key: p.Name, Value: value})
		case KindHeader:
			if bound.Headers == nil {
				bound.Headers = make(map[string]string)
			}
			bound.Headers[p.Name] = value
		case KindCookie:
			if bound.Cookies == nil {
				bound.Cookies = make(map[string]string)
			}
			bound.Cookies[p.Name] = value
		}
	}

	return bound, nil
}

func isAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// formatValue renders a single-string binding value. The second result is
// false when the value is an absent optional (nil pointer).
func formatValue(v reflect.Value) (string, bool, error) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false, nil
		}
		v = v.Elem()
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true, nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true, nil
	default:
		return "", false, fmt.Errorf("type %v does not render to a string", v.Type())
	}
}
