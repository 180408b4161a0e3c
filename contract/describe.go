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
	"context"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/restcall/internal/interpolate"
	"go.uber.org/restcall/restcallerrors"
)

// Struct tags understood by Describe.
const (
	// TagCall declares the verb and relative path template:
	// `call:"GET customers/{marketId}"`.
	TagCall = "call"

	// TagArgs names the method's non-context parameters, in order:
	// `args:"marketId,verbose"`.
	TagArgs = "args"

	// TagBind overrides the default binding per parameter:
	// `bind:"verbose=query,token=header,sid=cookie,payload=body"`.
	TagBind = "bind"

	// TagHeaders declares method-scoped default headers:
	// `headers:"Accept=application/json"`.
	TagHeaders = "headers"

	// TagTimeout declares a method-scoped timeout: `timeout:"5s"`.
	TagTimeout = "timeout"
)

var (
	_ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	_errType = reflect.TypeOf((*error)(nil)).Elem()
)

// registry caches one Descriptor per contract type for the process
// lifetime. Descriptors are immutable once published.
var _registry = struct {
	sync.RWMutex
	descriptors map[reflect.Type]*Descriptor
}{descriptors: make(map[reflect.Type]*Descriptor)}

// Describe builds the Descriptor for the given contract struct type.
//
// Describe is idempotent: repeated calls for the same type return the same
// cached Descriptor. All metadata validation happens here, so malformed
// contracts fail at registration time, before any traffic is sent.
func Describe(t reflect.Type) (*Descriptor, error) {
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"contract type must be a struct, got %v", t)
	}

	_registry.RLock()
	d, ok := _registry.descriptors[t]
	_registry.RUnlock()
	if ok {
		return d, nil
	}

	d, err := describe(t)
	if err != nil {
		return nil, err
	}

	_registry.Lock()
	defer _registry.Unlock()
	// Another goroutine may have described the same type concurrently;
	// the first published descriptor wins so every caller shares one.
	if existing, ok := _registry.descriptors[t]; ok {
		return existing, nil
	}
	_registry.descriptors[t] = d
	return d, nil
}

func describe(t reflect.Type) (*Descriptor, error) {
	d := &Descriptor{
		Name:          t.Name(),
		Type:          t,
		methodsByName: make(map[string]*Method, t.NumField()),
	}

	var errs error
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			// An unexported func field can never be filled by a proxy,
			// so it would stay nil and panic on first call.
			if field.Type.Kind() == reflect.Func {
				errs = multierr.Append(errs, restcallerrors.ContractDefinitionErrorf(
					"%s.%s: contract methods must be exported", d.Name, field.Name))
			}
			continue
		}
		m, err := describeMethod(d.Name, field, i)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		d.Methods = append(d.Methods, m)
		d.methodsByName[m.Name] = m
	}

	if errs != nil {
		return nil, errs
	}
	if len(d.Methods) == 0 {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"contract %q declares no methods", d.Name)
	}
	return d, nil
}

func describeMethod(contractName string, field reflect.StructField, index int) (*Method, error) {
	name := contractName + "." + field.Name

	if field.Type.Kind() != reflect.Func {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"%s: contract fields must be funcs, got %v", name, field.Type.Kind())
	}

	verb, pathTemplate, err := parseCallTag(name, field.Tag.Get(TagCall))
	if err != nil {
		return nil, err
	}

	path, perr := interpolate.Parse(pathTemplate)
	if perr != nil {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"%s: invalid path template: %v", name, perr)
	}

	shape, result, err := parseResult(name, field.Type)
	if err != nil {
		return nil, err
	}

	params, configVars, err := parseParams(name, field, verb, path)
	if err != nil {
		return nil, err
	}

	headers, err := parseHeadersTag(name, field.Tag.Get(TagHeaders))
	if err != nil {
		return nil, err
	}

	var timeout time.Duration
	if raw := field.Tag.Get(TagTimeout); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: invalid timeout tag %q: %v", name, raw, err)
		}
	}

	return &Method{
		Name:            field.Name,
		Verb:            verb,
		PathTemplate:    pathTemplate,
		Path:            path,
		Params:          params,
		Headers:         headers,
		Timeout:         timeout,
		Shape:           shape,
		Result:          result,
		ConfigVariables: configVars,
		fieldIndex:      index,
		funcType:        field.Type,
	}, nil
}

func parseCallTag(name, tag string) (Verb, string, error) {
	if tag == "" {
		return "", "", restcallerrors.ContractDefinitionErrorf(
			"%s: missing call tag", name)
	}

	verbStr, pathTemplate, _ := strings.Cut(tag, " ")
	verb := Verb(strings.ToUpper(verbStr))
	if _, ok := _verbs[verb]; !ok {
		return "", "", restcallerrors.ContractDefinitionErrorf(
			"%s: unknown verb %q in call tag", name, verbStr)
	}
	return verb, strings.TrimSpace(pathTemplate), nil
}

// parseResult validates the func signature and extracts the declared result
// shape. Valid signatures are
//
//	func(ctx context.Context, args...) error
//	func(ctx context.Context, args...) (T, error)
func parseResult(name string, t reflect.Type) (Shape, reflect.Type, error) {
	if t.IsVariadic() {
		return 0, nil, restcallerrors.ContractDefinitionErrorf(
			"%s: variadic methods are not supported", name)
	}
	if t.NumIn() < 1 || t.In(0) != _ctxType {
		return 0, nil, restcallerrors.ContractDefinitionErrorf(
			"%s: the first parameter must be a context.Context", name)
	}

	switch t.NumOut() {
	case 1:
		if t.Out(0) != _errType {
			return 0, nil, restcallerrors.ContractDefinitionErrorf(
				"%s: the only result must be an error, got %v", name, t.Out(0))
		}
		return ShapeVoid, nil, nil
	case 2:
		if t.Out(1) != _errType {
			return 0, nil, restcallerrors.ContractDefinitionErrorf(
				"%s: the last result must be an error, got %v", name, t.Out(1))
		}
		result := t.Out(0)
		if result.Kind() == reflect.Slice && result.Elem().Kind() != reflect.Uint8 {
			return ShapeSequence, result, nil
		}
		return ShapeEntity, result, nil
	default:
		return 0, nil, restcallerrors.ContractDefinitionErrorf(
			"%s: methods must return error or (T, error), got %d results",
			name, t.NumOut())
	}
}

func parseParams(name string, field reflect.StructField, verb Verb, path interpolate.String) ([]Param, []string, error) {
	t := field.Type
	numArgs := t.NumIn() - 1

	argNames, err := parseArgsTag(name, field.Tag.Get(TagArgs), numArgs)
	if err != nil {
		return nil, nil, err
	}

	binds, err := parseBindTag(name, field.Tag.Get(TagBind), argNames)
	if err != nil {
		return nil, nil, err
	}

	placeholders := make(map[string]struct{}, len(path.Variables()))
	for _, v := range path.Variables() {
		placeholders[v] = struct{}{}
	}

	params := make([]Param, numArgs)
	for i := 0; i < numArgs; i++ {
		params[i] = Param{
			Name:     argNames[i],
			Position: i,
			Type:     t.In(i + 1),
		}
	}

	// Resolve each parameter's binding kind: explicit tag first, then the
	// path placeholders, then the verb's default policy.
	var errs error
	bodyCount := 0
	bound := make(map[string]struct{}, numArgs)
	for i := range params {
		p := &params[i]
		if kind, ok := binds[p.Name]; ok {
			p.Kind = kind
			p.Explicit = true
		} else if _, ok := placeholders[p.Name]; ok {
			p.Kind = KindPath
		} else {
			kind, derr := defaultKind(name, verb, *p)
			if derr != nil {
				errs = multierr.Append(errs, derr)
				continue
			}
			p.Kind = kind
		}

		if p.Kind == KindBody {
			bodyCount++
		} else if !isSimple(p.Type) && !isStringer(p.Type) {
			errs = multierr.Append(errs, restcallerrors.ContractDefinitionErrorf(
				"%s: parameter %q of type %v cannot bind to %s",
				name, p.Name, p.Type, p.Kind))
			continue
		}
		if p.Kind == KindPath {
			if _, ok := placeholders[p.Name]; !ok {
				errs = multierr.Append(errs, restcallerrors.ContractDefinitionErrorf(
					"%s: parameter %q is path-bound but the template %q has no such placeholder",
					name, p.Name, field.Tag.Get(TagCall)))
				continue
			}
			bound[p.Name] = struct{}{}
		}
	}
	if errs != nil {
		return nil, nil, errs
	}

	if bodyCount > 1 {
		return nil, nil, restcallerrors.ContractDefinitionErrorf(
			"%s: at most one parameter may bind to the body, found %d", name, bodyCount)
	}

	// Placeholders without a path-bound parameter are resolved from
	// configuration variables at call time.
	var configVars []string
	for _, v := range path.Variables() {
		if _, ok := bound[v]; !ok {
			configVars = append(configVars, v)
		}
	}

	return params, configVars, nil
}

func parseArgsTag(name, tag string, numArgs int) ([]string, error) {
	var argNames []string
	if tag != "" {
		argNames = strings.Split(tag, ",")
		for i := range argNames {
			argNames[i] = strings.TrimSpace(argNames[i])
		}
	}

	if len(argNames) != numArgs {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"%s: args tag names %d parameters but the func takes %d",
			name, len(argNames), numArgs)
	}

	seen := make(map[string]struct{}, len(argNames))
	for _, argName := range argNames {
		if argName == "" {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: args tag has an empty name", name)
		}
		if _, ok := seen[argName]; ok {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: duplicate parameter name %q", name, argName)
		}
		seen[argName] = struct{}{}
	}
	return argNames, nil
}

func parseBindTag(name, tag string, argNames []string) (map[string]Kind, error) {
	binds := make(map[string]Kind)
	if tag == "" {
		return binds, nil
	}

	known := make(map[string]struct{}, len(argNames))
	for _, argName := range argNames {
		known[argName] = struct{}{}
	}

	for _, entry := range strings.Split(tag, ",") {
		argName, kindStr, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: malformed bind entry %q, want name=kind", name, entry)
		}
		if _, ok := known[argName]; !ok {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: bind tag references unknown parameter %q", name, argName)
		}
		kind, ok := _stringToKind[kindStr]
		if !ok {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: unknown binding kind %q for parameter %q", name, kindStr, argName)
		}
		if _, dup := binds[argName]; dup {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: parameter %q bound more than once", name, argName)
		}
		binds[argName] = kind
	}
	return binds, nil
}

// defaultKind implements the default binding policy for a parameter with no
// explicit binding and no matching placeholder.
func defaultKind(name string, verb Verb, p Param) (Kind, error) {
	if isSimple(p.Type) {
		return KindQuery, nil
	}
	if verb.hasRequestBody() {
		return KindBody, nil
	}
	return 0, restcallerrors.ContractDefinitionErrorf(
		"%s: cannot infer a binding for parameter %q of type %v on %s, add a bind tag",
		name, p.Name, p.Type, verb)
}

func parseHeadersTag(name, tag string) (map[string]string, error) {
	if tag == "" {
		return nil, nil
	}
	headers := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || k == "" {
			return nil, restcallerrors.ContractDefinitionErrorf(
				"%s: malformed headers entry %q, want Name=value", name, entry)
		}
		headers[k] = v
	}
	return headers, nil
}

var _stringerType = reflect.TypeOf((*interface{ String() string })(nil)).Elem()

// isStringer reports whether the type renders itself through a String
// method, like time.Duration.
func isStringer(t reflect.Type) bool {
	return t.Implements(_stringerType)
}

// isSimple reports whether values of the type render to a single string,
// which is what query, path, header, and cookie bindings require. Pointers
// to simple types are simple; a nil pointer is an absent value.
func isSimple(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}
