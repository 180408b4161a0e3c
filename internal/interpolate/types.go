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

// Package interpolate expands {name} placeholders in URL templates.
package interpolate

import (
	"bytes"
	"fmt"
	"io"
)

// We represent the user-defined string as a series of terms. Each term is
// either a literal or a variable. Literals are used as-is and variables are
// resolved using a VariableResolver.
type (
	term interface {
		term()
	}

	literal string

	variable struct {
		Name string
	}
)

func (literal) term()  {}
func (variable) term() {}

// VariableResolver resolves the value of a variable specified in the string.
//
// The boolean value indicates whether this variable had a value defined. If
// a variable does not have a value, rendering fails: a placeholder is never
// silently omitted.
type VariableResolver func(name string) (value string, ok bool)

// String is a string that supports interpolation given some source of
// variable values.
//
// A String can be obtained by calling Parse on a string.
type String []term

// Variables returns the names of the variables mentioned in the string, in
// order of appearance. Repeated names appear once.
func (s String) Variables() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, term := range s {
		v, ok := term.(variable)
		if !ok {
			continue
		}
		if _, dup := seen[v.Name]; dup {
			continue
		}
		seen[v.Name] = struct{}{}
		names = append(names, v.Name)
	}
	return names
}

// Render renders and returns the string. The provided VariableResolver will
// be used to determine values for the different variables mentioned in the
// string.
//
// Rendering is a single substitution pass: values substituted for variables
// are never re-scanned for placeholders.
func (s String) Render(resolve VariableResolver) (string, error) {
	var buff bytes.Buffer
	if err := s.RenderTo(&buff, resolve); err != nil {
		return "", err
	}
	return buff.String(), nil
}

// RenderTo renders the string into the given writer. The provided
// VariableResolver will be used to determine values for the different
// variables mentioned in the string.
func (s String) RenderTo(w io.Writer, resolve VariableResolver) error {
	for _, term := range s {
		var value string
		switch t := term.(type) {
		case literal:
			value = string(t)
		case variable:
			val, ok := resolve(t.Name)
			if !ok {
				return errUnknownVariable{Name: t.Name}
			}
			value = val
		}
		if _, err := io.WriteString(w, value); err != nil {
			return err
		}
	}
	return nil
}

type errUnknownVariable struct{ Name string }

func (e errUnknownVariable) Error() string {
	return fmt.Sprintf("placeholder %q does not have a value", e.Name)
}

// IsUnknownVariable returns whether the given error was caused by a
// placeholder without a value.
func IsUnknownVariable(err error) bool {
	_, ok := err.(errUnknownVariable)
	return ok
}
