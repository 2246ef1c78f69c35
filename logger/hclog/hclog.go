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

// Package hclog bridges a logger.Logger into the github.com/hashicorp/go-hclog
// Logger interface, so a host application that already standardized on hclog
// elsewhere can hand this module's logger straight to any hclog consumer
// instead of writing its own adapter.
package hclog

import (
	"io"
	"log"
	"os"

	gohclog "github.com/hashicorp/go-hclog"

	"github.com/sabouaram/sysruntime/logger"
)

// argsKey/nameKey stash hclog's With()/Named() state in the wrapped
// logger.Logger's Fields, the same trick the teacher's own adapter uses
// (logger/hashicorp's HCLogArgs/HCLogName) to avoid a second struct.
const (
	argsKey = "hclog.args"
	nameKey = "hclog.name"
)

type adapter struct {
	l logger.Logger
}

// New wraps l as a gohclog.Logger. A nil l produces an adapter whose calls
// are all no-ops, consistent with logger.Logger's own nil-is-valid rule.
func New(l logger.Logger) gohclog.Logger {
	return &adapter{l: l}
}

func (a *adapter) Log(level gohclog.Level, msg string, args ...interface{}) {
	if a.l == nil {
		return
	}
	switch level {
	case gohclog.NoLevel, gohclog.Off:
		return
	case gohclog.Trace, gohclog.Debug:
		a.l.Debug(msg, argFields(args))
	case gohclog.Info:
		a.l.Info(msg, argFields(args))
	case gohclog.Warn:
		a.l.Warning(msg, argFields(args))
	case gohclog.Error:
		a.l.Error(msg, argFields(args))
	}
}

func (a *adapter) Trace(msg string, args ...interface{}) { a.Log(gohclog.Trace, msg, args...) }
func (a *adapter) Debug(msg string, args ...interface{}) { a.Log(gohclog.Debug, msg, args...) }
func (a *adapter) Info(msg string, args ...interface{})  { a.Log(gohclog.Info, msg, args...) }
func (a *adapter) Warn(msg string, args ...interface{})  { a.Log(gohclog.Warn, msg, args...) }
func (a *adapter) Error(msg string, args ...interface{}) { a.Log(gohclog.Error, msg, args...) }

func argFields(args []interface{}) logger.Fields {
	if len(args) == 0 {
		return nil
	}
	f := make(logger.Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			f[k] = args[i+1]
		}
	}
	return f
}

func (a *adapter) IsTrace() bool { return a.l != nil && a.l.GetLevel() >= logger.DebugLevel }
func (a *adapter) IsDebug() bool { return a.l != nil && a.l.GetLevel() >= logger.DebugLevel }
func (a *adapter) IsInfo() bool  { return a.l != nil && a.l.GetLevel() >= logger.InfoLevel }
func (a *adapter) IsWarn() bool  { return a.l != nil && a.l.GetLevel() >= logger.WarnLevel }
func (a *adapter) IsError() bool { return a.l != nil && a.l.GetLevel() >= logger.ErrorLevel }

func (a *adapter) ImpliedArgs() []interface{} {
	if a.l == nil {
		return nil
	}
	if v, ok := a.l.GetFields()[argsKey].([]interface{}); ok {
		return v
	}
	return nil
}

func (a *adapter) With(args ...interface{}) gohclog.Logger {
	if a.l != nil {
		a.l.SetFields(a.l.GetFields().Add(argsKey, args))
	}
	return a
}

func (a *adapter) Name() string {
	if a.l == nil {
		return ""
	}
	if v, ok := a.l.GetFields()[nameKey].(string); ok {
		return v
	}
	return ""
}

func (a *adapter) Named(name string) gohclog.Logger {
	if a.l != nil {
		a.l.SetFields(a.l.GetFields().Add(nameKey, name))
	}
	return a
}

func (a *adapter) ResetNamed(name string) gohclog.Logger {
	return a.Named(name)
}

func (a *adapter) SetLevel(level gohclog.Level) {
	if a.l == nil {
		return
	}
	switch level {
	case gohclog.NoLevel, gohclog.Off, gohclog.Trace, gohclog.Debug:
		a.l.SetLevel(logger.DebugLevel)
	case gohclog.Info:
		a.l.SetLevel(logger.InfoLevel)
	case gohclog.Warn:
		a.l.SetLevel(logger.WarnLevel)
	case gohclog.Error:
		a.l.SetLevel(logger.ErrorLevel)
	}
}

func (a *adapter) GetLevel() gohclog.Level {
	if a.l == nil {
		return gohclog.NoLevel
	}
	switch a.l.GetLevel() {
	case logger.DebugLevel:
		return gohclog.Debug
	case logger.InfoLevel:
		return gohclog.Info
	case logger.WarnLevel:
		return gohclog.Warn
	default:
		return gohclog.Error
	}
}

func (a *adapter) StandardLogger(opts *gohclog.StandardLoggerOptions) *log.Logger {
	return log.Default()
}

func (a *adapter) StandardWriter(opts *gohclog.StandardLoggerOptions) io.Writer {
	return os.Stderr
}
