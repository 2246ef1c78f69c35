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

// Package runtime replaces the original library's global p_lib_init /
// p_lib_shutdown pair (src/pmain.c) with an explicit, reference-counted
// handle: Init returns a Runtime, Shutdown releases one, and the process-wide
// one-shot setup (currently: ignoring SIGPIPE so a write to a closed socket
// returns an error instead of killing the process, per spec) runs when Init is
// called with no Runtime outstanding. Shutdown never undoes it: SIGPIPE stays
// ignored after the last Runtime has been shut down.
//
// Components G-L do not depend on a live Runtime to function; Init exists so
// a host application has one well-defined place to trigger the SIGPIPE
// ignore before it starts using sockets, the same role p_lib_init played in
// the original.
package runtime

import "github.com/sabouaram/sysruntime/memory"

// Runtime is a handle obtained from Init. Its zero value is not usable.
type Runtime struct {
	closed bool
}

// GetVTable returns the process-wide memory allocator vtable (component B).
// It is exposed through Runtime only as a convenience; memory.GetVTable
// works identically and does not require a live Runtime.
func (r *Runtime) GetVTable() memory.VTable {
	return memory.GetVTable()
}

// SetVTable installs vt as the process-wide allocator, see memory.SetVTable.
func (r *Runtime) SetVTable(vt memory.VTable) bool {
	return memory.SetVTable(vt)
}

// RestoreVTable reverts the process-wide allocator to the runtime default,
// see memory.RestoreVTable.
func (r *Runtime) RestoreVTable() {
	memory.RestoreVTable()
}
