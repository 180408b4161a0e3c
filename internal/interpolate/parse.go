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

package interpolate

import (
	"fmt"
	"strings"
)

// Parse parses a template with {name} placeholders into a String.
//
// Placeholder names consist of letters, digits, underscores, and dashes,
// and must be non-empty. An unterminated or empty placeholder is a parse
// error; templates never fail later at render time for reasons of shape.
func Parse(s string) (String, error) {
	var terms String
	for {
		i := strings.IndexByte(s, '{')
		if i < 0 {
			if strings.IndexByte(s, '}') >= 0 {
				return nil, fmt.Errorf("unmatched '}' in template %q", s)
			}
			if len(s) > 0 {
				terms = append(terms, literal(s))
			}
			return terms, nil
		}

		if i > 0 {
			if strings.IndexByte(s[:i], '}') >= 0 {
				return nil, fmt.Errorf("unmatched '}' in template %q", s)
			}
			terms = append(terms, literal(s[:i]))
		}
		s = s[i+1:]

		end := strings.IndexByte(s, '}')
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder at %q", "{"+s)
		}

		name := s[:end]
		if name == "" {
			return nil, fmt.Errorf("empty placeholder in template")
		}
		for _, r := range name {
			if !isNameRune(r) {
				return nil, fmt.Errorf("invalid placeholder name %q", name)
			}
		}

		terms = append(terms, variable{Name: name})
		s = s[end+1:]
	}
}

// MustParse is a Parse that panics on failure. For use with templates known
// to be valid at compile time.
func MustParse(s string) String {
	parsed, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	default:
		return false
	}
}
