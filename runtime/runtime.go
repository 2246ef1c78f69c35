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

package runtime

import "sync"

var (
	mu       sync.Mutex
	refcount int
)

// Init obtains a Runtime handle, running the process-wide one-shot setup
// (ignoring SIGPIPE) the first time any handle is outstanding. Every
// returned handle must eventually reach Shutdown exactly once; calling Init
// N times and shutting down all N handles brings the reference count back
// to zero, but the SIGPIPE ignore stays in effect.
func Init() (*Runtime, error) {
	mu.Lock()
	defer mu.Unlock()

	if refcount == 0 {
		ignoreBrokenPipe()
	}
	refcount++

	return &Runtime{}, nil
}

// Shutdown releases r. Calling Shutdown more than once on the same handle
// is a no-op, matching the "every operation other than free fails once
// closed" shape the rest of this module uses for its handles.
func (r *Runtime) Shutdown() error {
	if r == nil {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	refcount--

	return nil
}
