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

package memory

import "sync/atomic"

func defaultMalloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	return make([]byte, size)
}

func defaultRealloc(buf []byte, size int) []byte {
	if size <= 0 {
		return nil
	}

	out := make([]byte, size)
	copy(out, buf)
	return out
}

func defaultFree(_ []byte) {}

var defaultVTable = VTable{
	Malloc:  defaultMalloc,
	Realloc: defaultRealloc,
	Free:    defaultFree,
}

var current atomic.Pointer[VTable]

func init() {
	vt := defaultVTable
	current.Store(&vt)
}

func active() VTable {
	return *current.Load()
}

// SetVTable atomically replaces the process-wide allocator. It fails (and
// leaves the previous vtable in place) if any of Malloc/Realloc/Free is nil.
func SetVTable(vt VTable) bool {
	if !vt.valid() {
		return false
	}

	cp := vt
	current.Store(&cp)
	return true
}

// RestoreVTable reverts to the Go-runtime-backed default allocator.
func RestoreVTable() {
	vt := defaultVTable
	current.Store(&vt)
}

// GetVTable returns the currently active vtable.
func GetVTable() VTable {
	return active()
}

// Malloc allocates size bytes through the active vtable. Returns nil for
// size <= 0, matching p_malloc(0) == NULL.
func Malloc(size int) []byte {
	return active().Malloc(size)
}

// Malloc0 allocates size zeroed bytes through the active vtable. VTable has
// no separate zeroing entry, so the buffer Malloc returns is cleared here.
func Malloc0(size int) []byte {
	b := Malloc(size)
	for i := range b {
		b[i] = 0
	}
	return b
}

// Realloc grows or shrinks buf to size bytes through the active vtable.
func Realloc(buf []byte, size int) []byte {
	return active().Realloc(buf, size)
}

// Free releases buf through the active vtable.
func Free(buf []byte) {
	active().Free(buf)
}
