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

// Package ini parses INI-style configuration files: sections in `[name]`
// braces, `key = value` parameters below each, `;` and `#` line comments,
// and values optionally quoted with `"` or `'` to embed what would
// otherwise be read as a comment. Booleans accept `true`/`false`,
// `TRUE`/`FALSE`, or any positive integer. A `{a b c}` value parses as a
// whitespace-separated list.
package ini

import (
	"bufio"
	"os"
	"strings"

	liberr "github.com/sabouaram/sysruntime/errors"
	"github.com/sabouaram/sysruntime/memory"
)

// scanBufSize is the initial capacity handed to bufio.Scanner, allocated
// through the process-wide memory vtable (component B) rather than a bare
// make([]byte, ...), the same way every other buffer-owning component in
// this module gets its backing storage.
const scanBufSize = 4096

// maxLineLen bounds a single parsed line, mirroring P_INI_FILE_MAX_LINE.
const maxLineLen = 1024 * 1024

// section holds one `[name]` block's parameters, in the order they were
// first seen.
type section struct {
	order []string
	keys  map[string]string
}

// File is a parsed (or not-yet-parsed) INI file. The zero value is not
// usable; obtain one from New.
type File struct {
	path     string
	parsed   bool
	order    []string
	sections map[string]*section
}

// New creates a File bound to path. Nothing is read until Parse is called.
func New(path string) (*File, error) {
	if path == "" {
		return nil, liberr.New(liberr.DomainIO, liberr.CodeInvalidArgument, 0, "ini: path must not be empty")
	}
	return &File{path: path, sections: make(map[string]*section)}, nil
}

// IsParsed reports whether Parse has already completed successfully.
func (f *File) IsParsed() bool {
	if f == nil {
		return false
	}
	return f.parsed
}

// Parse reads and parses the file. It is idempotent: calling it again on an
// already-parsed File is a no-op that returns nil, matching
// p_ini_file_parse's "if already parsed, return TRUE" short-circuit.
func (f *File) Parse() error {
	if f == nil {
		return liberr.New(liberr.DomainIO, liberr.CodeInvalidArgument, 0, "ini: parse on nil file")
	}
	if f.parsed {
		return nil
	}

	fh, err := os.Open(f.path)
	if err != nil {
		return liberr.New(liberr.DomainIO, liberr.CodeNotAvailable, 0, "ini: failed to open file for reading", err)
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	scanner.Buffer(memory.Malloc(scanBufSize), maxLineLen)

	firstLine := true
	current := ""

	for scanner.Scan() {
		line := scanner.Text()
		if firstLine {
			line = stripBOM(line)
			firstLine = false
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == ';' || trimmed[0] == '#' {
			continue
		}

		if name, ok := parseSectionHeader(trimmed); ok {
			if name != "" {
				f.ensureSection(name)
				current = name
			}
			continue
		}

		key, value, ok := parseParameter(trimmed)
		if !ok || key == "" || current == "" {
			continue
		}
		f.setParameter(current, key, value)
	}
	if err := scanner.Err(); err != nil {
		return liberr.New(liberr.DomainIO, liberr.CodeFailed, 0, "ini: read failed", err)
	}

	f.parsed = true
	return nil
}

// Sections returns every section name, in the order first encountered.
func (f *File) Sections() []string {
	if f == nil || !f.parsed {
		return nil
	}
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Keys returns the parameter names of sectionName, in the order first
// encountered, or nil if the section does not exist.
func (f *File) Keys(sectionName string) []string {
	if f == nil || !f.parsed {
		return nil
	}
	sec, ok := f.sections[sectionName]
	if !ok {
		return nil
	}
	out := make([]string, len(sec.order))
	copy(out, sec.order)
	return out
}

// HasKey reports whether key exists within sectionName.
func (f *File) HasKey(sectionName, key string) bool {
	if f == nil || !f.parsed {
		return false
	}
	sec, ok := f.sections[sectionName]
	if !ok {
		return false
	}
	_, ok = sec.keys[key]
	return ok
}

func (f *File) find(sectionName, key string) (string, bool) {
	if f == nil || !f.parsed {
		return "", false
	}
	sec, ok := f.sections[sectionName]
	if !ok {
		return "", false
	}
	v, ok := sec.keys[key]
	return v, ok
}

func (f *File) ensureSection(name string) {
	if _, ok := f.sections[name]; ok {
		return
	}
	f.sections[name] = &section{keys: make(map[string]string)}
	f.order = append(f.order, name)
}

func (f *File) setParameter(sectionName, key, value string) {
	sec := f.sections[sectionName]
	if _, exists := sec.keys[key]; !exists {
		sec.order = append(sec.order, key)
	}
	sec.keys[key] = value
}

// stripBOM removes a leading UTF-8/16/32 byte-order mark from the first
// line of a file, per p_ini_file_parse's BOM-detection block.
func stripBOM(line string) string {
	b := []byte(line)
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return string(b[3:])
	case len(b) >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		return string(b[4:])
	case len(b) >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0x00 && b[3] == 0x00:
		return string(b[4:])
	case len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE)):
		return string(b[2:])
	default:
		return line
	}
}

// parseSectionHeader reports whether trimmed is a `[name]` line, returning
// the (possibly empty) trimmed name.
func parseSectionHeader(trimmed string) (string, bool) {
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(trimmed[1 : len(trimmed)-1]), true
}

// parseParameter splits a `key = value` line, stripping quotes or a
// trailing comment from value the way p_ini_file_parse's three sscanf
// fallbacks do.
func parseParameter(trimmed string) (key, value string, ok bool) {
	idx := strings.IndexByte(trimmed, '=')
	if idx < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false
	}

	rest := strings.TrimSpace(trimmed[idx+1:])
	value = unquoteOrUncomment(rest)
	return key, value, true
}

func unquoteOrUncomment(rest string) string {
	if len(rest) >= 1 && rest[0] == '"' {
		if end := strings.IndexByte(rest[1:], '"'); end >= 0 {
			return rest[1 : 1+end]
		}
	}
	if len(rest) >= 1 && rest[0] == '\'' {
		if end := strings.IndexByte(rest[1:], '\''); end >= 0 {
			return rest[1 : 1+end]
		}
	}
	if end := strings.IndexAny(rest, ";#"); end >= 0 {
		return strings.TrimSpace(rest[:end])
	}
	return rest
}
