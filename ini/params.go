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

package ini

import (
	"strconv"
	"strings"
)

// String returns section/key's value, or defaultVal if either the section
// or the key does not exist.
func (f *File) String(sectionName, key, defaultVal string) string {
	if v, ok := f.find(sectionName, key); ok {
		return v
	}
	return defaultVal
}

// Int returns section/key's value parsed as an integer. A present but
// non-numeric value parses as 0, matching atoi's lenient behavior in the
// original; defaultVal is only used when the key itself is absent.
func (f *File) Int(sectionName, key string, defaultVal int) int {
	v, ok := f.find(sectionName, key)
	if !ok {
		return defaultVal
	}
	return atoiLoose(v)
}

// Float returns section/key's value parsed as a float64, with the same
// leading-prefix leniency as Int.
func (f *File) Float(sectionName, key string, defaultVal float64) float64 {
	v, ok := f.find(sectionName, key)
	if !ok {
		return defaultVal
	}
	return atofLoose(v)
}

// Bool returns section/key's value parsed as a boolean: "true"/"TRUE" is
// true, "false"/"FALSE" is false, and anything else falls back to "is the
// value a positive integer", per p_ini_file_parameter_boolean.
func (f *File) Bool(sectionName, key string, defaultVal bool) bool {
	v, ok := f.find(sectionName, key)
	if !ok {
		return defaultVal
	}
	switch v {
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	default:
		return atoiLoose(v) > 0
	}
}

// List returns section/key's value split on whitespace, provided it is
// wrapped in `{` `}` braces; it returns nil if the key is absent or the
// value is not brace-delimited.
func (f *File) List(sectionName, key string) []string {
	v, ok := f.find(sectionName, key)
	if !ok {
		return nil
	}
	if len(v) < 2 || v[0] != '{' || v[len(v)-1] != '}' {
		return nil
	}
	return strings.Fields(v[1 : len(v)-1])
}

// atoiLoose mimics C's atoi: optional leading whitespace and sign, then
// digits; 0 if none are found. Unlike strconv.Atoi it never errors.
func atoiLoose(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// atofLoose mimics strtod's leading-prefix parsing: it reads as much of a
// decimal number (with optional sign, fractional part, and exponent) as it
// can from the start of s and returns 0 if nothing valid is found.
func atofLoose(s string) float64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	out, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0
	}
	return out
}
