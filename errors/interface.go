/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors is the uniform error carrier used across every component
// of this runtime: {domain, code, native_code, message}, per spec §3/§7.
//
// It extends the standard error interface with:
//   - A two-level taxonomy (Domain x Code) instead of a bare string
//   - Automatic call-site trace capture (file, line, function)
//   - Parent-error chains (Add/GetParent/Unwrap), for wrapping a syscall
//     failure underneath a library-level failure
//   - Compatibility with errors.Is/errors.As
//
// Example:
//
//	err := errors.New(errors.DomainIO, errors.CodeTimedOut, 110, "recv: deadline exceeded")
//	if errors.IsCode(err, errors.CodeTimedOut) {
//	    // ...
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// FuncMap is a callback used to walk an error chain; returning false stops
// the walk early.
type FuncMap func(e error) bool

// Error is the runtime-wide error carrier described in spec §3/§7.
type Error interface {
	error

	// IsDomain reports whether this error's own Domain equals d (parents not checked).
	IsDomain(d Domain) bool
	// IsCode reports whether this error's own Code equals code (parents not checked).
	IsCode(code Code) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code Code) bool
	// GetDomain returns the Domain of this error.
	GetDomain() Domain
	// GetCode returns the Code of this error.
	GetCode() Code
	// GetNativeCode returns the originating OS error number, or 0 if none.
	GetNativeCode() int
	// GetParentCode returns this error's Code followed by every parent's Code, deduplicated.
	GetParentCode() []Code

	// Is implements compatibility with the standard errors.Is.
	Is(e error) bool
	// IsError reports whether e's message matches this error's message.
	IsError(e error) bool
	// HasError reports whether e's message is found anywhere in the parent chain.
	HasError(err error) bool
	// HasParent reports whether this error has at least one parent.
	HasParent() bool
	// GetParent returns the flattened parent chain; withMainError also includes this error.
	GetParent(withMainError bool) []error
	// Map visits this error then every parent with fct, stopping if fct returns false.
	Map(fct FuncMap) bool
	// ContainsString reports whether s appears in this error's message or any parent's.
	ContainsString(s string) bool

	// Add appends each non-nil parent error to this error's parent list.
	Add(parent ...error)
	// SetParent replaces the parent list wholesale.
	SetParent(parent ...error)

	// Code returns the numeric Code value (uint16, for wire/log compatibility).
	Code() uint16
	// CodeSlice returns this error's Code followed by every parent's.
	CodeSlice() []uint16

	// CodeError formats this error (not parents) as "domain/code: message" (pattern-configurable).
	CodeError(pattern string) string
	// CodeErrorSlice formats this error and every parent.
	CodeErrorSlice(pattern string) []string
	// CodeErrorTrace is CodeError plus the captured call-site trace.
	CodeErrorTrace(pattern string) string
	// CodeErrorTraceSlice is CodeErrorSlice plus traces.
	CodeErrorTraceSlice(pattern string) []string

	// Error satisfies the standard error interface; its exact shape depends on SetModeReturnError.
	Error() string
	// StringError returns this error's bare message.
	StringError() string
	// StringErrorSlice returns this error's message followed by every parent's.
	StringErrorSlice() []string

	// GetError returns a plain stdlib error wrapping this error's message (no parent, no code).
	GetError() error
	// GetErrorSlice returns GetError for this error and every parent.
	GetErrorSlice() []error
	// Unwrap exposes the parent chain to errors.Is/errors.As.
	Unwrap() []error

	// GetTrace returns "file#line" (or "function#line") for the captured call site.
	GetTrace() string
	// GetTraceSlice returns GetTrace for this error and every parent.
	GetTraceSlice() []string
}

// Is reports whether e can be asserted to Error via errors.As.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e asserted to Error, or nil if e is not one.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// Has reports whether e or any of its parents carries code.
func Has(e error, code Code) bool {
	if err := Get(e); err == nil {
		return false
	} else {
		return err.HasCode(code)
	}
}

// ContainsString reports whether s appears anywhere in e's message chain.
func ContainsString(e error, s string) bool {
	if e == nil {
		return false
	} else if err := Get(e); err == nil {
		return strings.Contains(e.Error(), s)
	} else {
		return err.ContainsString(s)
	}
}

// IsCode reports whether e's own Code (not parents) equals code.
func IsCode(e error, code Code) bool {
	if err := Get(e); err == nil {
		return false
	} else {
		return err.IsCode(code)
	}
}

// Make wraps a plain error into Error (domain=none, code=none) if it is not one already.
func Make(e error) Error {
	var err Error

	if e == nil {
		return nil
	} else if errors.As(e, &err) {
		return err
	}
	return &ers{d: DomainNone, c: CodeNone, e: e.Error(), p: nil, t: getNilFrame()}
}

// MakeIfError folds a list of errors into a single Error, or nil if all are nil.
func MakeIfError(err ...error) Error {
	var e Error

	for _, p := range err {
		if p == nil {
			continue
		} else if e == nil {
			e = Make(p)
		} else {
			e.Add(p)
		}
	}

	return e
}

// New creates an Error with the given domain, code, OS native code and message, chaining any parents.
func New(domain Domain, code Code, native int, message string, parent ...error) Error {
	var p = make([]Error, 0)

	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}

	return &ers{d: domain, c: code, n: native, e: message, p: p, t: getFrame()}
}

// Newf is New with an fmt.Sprintf-formatted message.
func Newf(domain Domain, code Code, native int, pattern string, args ...any) Error {
	return New(domain, code, native, fmt.Sprintf(pattern, args...))
}

// IfError returns an Error wrapping message with the given parents, or nil if no parent is non-nil.
func IfError(domain Domain, code Code, message string, parent ...error) Error {
	p := make([]Error, 0)

	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}

	if len(p) < 1 {
		return nil
	}

	return &ers{d: domain, c: code, e: message, p: p, t: getFrame()}
}

// Invalid returns a io/invalid-argument Error, the library-misuse sentinel per §7
// (null handles, double-close, operations on closed objects).
func Invalid(message string) Error {
	return New(DomainIO, CodeInvalidArgument, 0, message)
}
