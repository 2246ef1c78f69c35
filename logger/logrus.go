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

package logger

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// defaultFormatter mirrors the teacher's logger.defaultFormatter: quoted
// fields, no forced timestamp (callers pipe this through their own log
// aggregation), sorted field output for stable, diffable test fixtures.
func defaultFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		ForceQuote:             true,
		DisableTimestamp:       true,
		TimestampFormat:        time.RFC3339,
		DisableLevelTruncation: true,
		PadLevelText:           true,
		QuoteEmptyFields:       true,
	}
}

type logrusLogger struct {
	mu     sync.RWMutex
	log    *logrus.Logger
	level  Level
	fields Fields
}

// NewLogrus wraps out (os.Stderr if nil) in the default Logger
// implementation, logging through a dedicated *logrus.Logger at level.
func NewLogrus(out io.Writer, level Level) Logger {
	l := logrus.New()
	if out != nil {
		l.SetOutput(out)
	}
	l.SetFormatter(defaultFormatter())
	l.SetLevel(level.Logrus())

	return &logrusLogger{log: l, level: level}
}

func (o *logrusLogger) SetLevel(lvl Level) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.level = lvl
	o.log.SetLevel(lvl.Logrus())
}

func (o *logrusLogger) GetLevel() Level {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.level
}

func (o *logrusLogger) SetFields(f Fields) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields = f
}

func (o *logrusLogger) GetFields() Fields {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.fields
}

func (o *logrusLogger) entry(fields Fields) *logrus.Entry {
	o.mu.RLock()
	merged := o.fields.clone()
	o.mu.RUnlock()

	for k, v := range fields {
		merged[k] = v
	}
	return o.log.WithFields(merged.logrus())
}

func (o *logrusLogger) Debug(message string, fields Fields)   { o.entry(fields).Debug(message) }
func (o *logrusLogger) Info(message string, fields Fields)    { o.entry(fields).Info(message) }
func (o *logrusLogger) Warning(message string, fields Fields) { o.entry(fields).Warn(message) }
func (o *logrusLogger) Error(message string, fields Fields)   { o.entry(fields).Error(message) }
