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

// Package memory routes every allocation made by the components built on top
// of it (hash contexts, tree nodes, thread records, socket buffers) through a
// single, process-wide, swappable allocator vtable.
//
// The default vtable delegates to the Go runtime allocator. Callers embedding
// this module in an environment with its own arena or pooling allocator can
// call SetVTable once at startup to redirect every subsequent Malloc/Realloc/
// Free through their own functions, and RestoreVTable to revert to the
// runtime default.
package memory

// VTable is the swappable allocation surface: three functions standing in
// for C's malloc/realloc/free, adapted to Go's slice-based memory model.
type VTable struct {
	// Malloc allocates size bytes. Implementations may return a slice with
	// cap > size; Go code must only rely on len.
	Malloc func(size int) []byte
	// Realloc grows or shrinks buf to size bytes, preserving its prefix.
	// buf may be nil, in which case Realloc behaves like Malloc.
	Realloc func(buf []byte, size int) []byte
	// Free releases buf. The default vtable's Free is a no-op (the Go
	// garbage collector owns the memory); a custom vtable may use it to
	// return the buffer to a pool or decrement an accounting counter.
	Free func(buf []byte)
}

// valid reports whether every function pointer in v is non-nil, per the
// "setting fails if any pointer is null" rule.
func (v VTable) valid() bool {
	return v.Malloc != nil && v.Realloc != nil && v.Free != nil
}
