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
	"net/url"
	"strings"

	"go.uber.org/restcall/api/transport"
	"go.uber.org/restcall/contract"
	"go.uber.org/restcall/internal/interpolate"
	"go.uber.org/restcall/restcallerrors"
)

// synthesize assembles the fully resolved transport request for one call.
// It never mutates its inputs and always produces a new request.
func synthesize(
	service string,
	base interpolate.String,
	method *contract.Method,
	cfg EffectiveConfig,
	bound *contract.Bound,
) (*transport.Request, error) {
	// Path-bound arguments win over configuration variables; each
	// placeholder is resolved by exactly one source. Argument values are
	// escaped because they land inside a path segment; configuration
	// variables are trusted to contain URL fragments like hosts.
	resolve := func(name string) (string, bool) {
		if v, ok := bound.Path[name]; ok {
			return url.PathEscape(v), true
		}
		v, ok := cfg.Variables[name]
		return v, ok
	}

	baseURL, err := base.Render(resolve)
	if err != nil {
		return nil, placeholderError(service, method.Name, err)
	}
	relPath, err := method.Path.Render(resolve)
	if err != nil {
		return nil, placeholderError(service, method.Name, err)
	}

	rawURL := baseURL
	if relPath != "" {
		rawURL = strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(relPath, "/")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, restcallerrors.UnsupportedBindingErrorf(
			"%s::%s: synthesized URL %q is invalid: %v", service, method.Name, rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, restcallerrors.UnsupportedBindingErrorf(
			"%s::%s: synthesized URL %q is not absolute", service, method.Name, rawURL)
	}

	if len(bound.Query) > 0 {
		u.RawQuery = encodeQuery(u.RawQuery, bound.Query)
	}

	headers := transport.HeadersFromMap(cfg.Headers).
		Update(transport.HeadersFromMap(bound.Headers))

	cookies := make(map[string]string, len(cfg.Cookies)+len(bound.Cookies))
	for k, v := range cfg.Cookies {
		cookies[k] = v
	}
	for k, v := range bound.Cookies {
		cookies[k] = v
	}

	req := &transport.Request{
		Service:   service,
		Procedure: method.Name,
		Method:    string(method.Verb),
		URL:       u,
		Headers:   headers,
		Cookies:   cookies,
		Timeout:   cfg.Timeout,
	}

	if bound.HasBody {
		body, err := cfg.Codec.Marshal(bound.Body)
		if err != nil {
			return nil, restcallerrors.Wrap(restcallerrors.CodeSerialization, err)
		}
		req.Body = body
		req.ContentType = cfg.Codec.ContentType()
	}

	return req, nil
}

// encodeQuery appends the bound entries to any query already present in the
// template, preserving parameter declaration order.
func encodeQuery(existing string, entries []contract.QueryEntry) string {
	var b strings.Builder
	b.WriteString(existing)
	for _, e := range entries {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(e.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(e.Value))
	}
	return b.String()
}

func placeholderError(service, method string, err error) error {
	if interpolate.IsUnknownVariable(err) {
		return restcallerrors.UnresolvedPlaceholderErrorf(
			"%s::%s: %v", service, method, err)
	}
	return restcallerrors.Wrap(restcallerrors.CodeUnresolvedPlaceholder, err)
}
