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

package restcall

import (
	"time"

	"go.uber.org/restcall/api/transport"
)

// scope is one layer of configuration. Four layers exist, merged in
// global < service < method < call order.
type scope struct {
	baseURL   string
	timeout   time.Duration
	codec     Codec
	headers   map[string]string
	cookies   map[string]string
	variables map[string]string
}

func (s *scope) setHeader(k, v string) {
	if s.headers == nil {
		s.headers = make(map[string]string)
	}
	s.headers[k] = v
}

func (s *scope) setCookie(k, v string) {
	if s.cookies == nil {
		s.cookies = make(map[string]string)
	}
	s.cookies[k] = v
}

func (s *scope) setVariable(k, v string) {
	if s.variables == nil {
		s.variables = make(map[string]string)
	}
	s.variables[k] = v
}

// Defaults is the global configuration layer, typically loaded from the
// environment or a configuration file rather than written inline.
type Defaults struct {
	// BaseURL is the default base address template.
	BaseURL string

	// Timeout is the default per-call timeout.
	Timeout time.Duration

	// Headers sent with every request unless overridden by a more
	// specific scope.
	Headers map[string]string

	// Cookies sent with every request unless overridden.
	Cookies map[string]string

	// Variables available to URL template expansion.
	Variables map[string]string
}

func (d Defaults) scope() scope {
	return scope{
		baseURL:   d.BaseURL,
		timeout:   d.Timeout,
		headers:   d.Headers,
		cookies:   d.Cookies,
		variables: d.Variables,
	}
}

// EffectiveConfig is the fully merged configuration for one call. It is
// built fresh per call and discarded with it.
type EffectiveConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Codec     Codec
	Headers   map[string]string
	Cookies   map[string]string
	Variables map[string]string
}

// resolveConfig merges the given scopes, least specific first. It is a pure
// function of its inputs: scalars are last-writer-wins, collections are
// additive with same-key override by the more specific scope.
func resolveConfig(scopes ...scope) EffectiveConfig {
	cfg := EffectiveConfig{
		Codec:     JSONCodec,
		Headers:   make(map[string]string),
		Cookies:   make(map[string]string),
		Variables: make(map[string]string),
	}
	for _, s := range scopes {
		if s.baseURL != "" {
			cfg.BaseURL = s.baseURL
		}
		if s.timeout != 0 {
			cfg.Timeout = s.timeout
		}
		if s.codec != nil {
			cfg.Codec = s.codec
		}
		// Header keys are canonicalized so that a more specific scope
		// overrides a less specific one regardless of spelling.
		for k, v := range s.headers {
			cfg.Headers[transport.CanonicalizeHeaderKey(k)] = v
		}
		for k, v := range s.cookies {
			cfg.Cookies[k] = v
		}
		for k, v := range s.variables {
			cfg.Variables[k] = v
		}
	}
	return cfg
}
