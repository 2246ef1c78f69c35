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

// Package lock provides the thread-synchronization primitives: a
// non-recursive mutex, a multiple-readers/single-writer lock, a
// busy-waiting spinlock, and a condition variable. Every operation is
// nil-receiver safe: calling any method on a nil pointer reports failure
// (false) instead of panicking, mirroring a NULL-handle check in a C API.
package lock

import "sync"

// Mutex is a non-recursive mutual-exclusion lock. Unlocking a Mutex that
// is not locked panics (as the underlying sync.Mutex does). A locked Mutex
// is not tied to the goroutine that locked it: another goroutine may
// unlock it.
type Mutex struct {
	mu sync.Mutex
}

// NewMutex returns a ready-to-use, unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Lock blocks until the mutex is acquired. Reports false only when m is nil.
func (m *Mutex) Lock() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	return true
}

// TryLock attempts to acquire the mutex without blocking. Reports whether
// it succeeded.
func (m *Mutex) TryLock() bool {
	if m == nil {
		return false
	}
	return m.mu.TryLock()
}

// Unlock releases the mutex. Reports false only when m is nil.
func (m *Mutex) Unlock() bool {
	if m == nil {
		return false
	}
	m.mu.Unlock()
	return true
}

// Free releases any resources held by m. A Mutex needs none beyond normal
// garbage collection; Free exists for symmetry with the other primitives
// in this package and reports false only when m is nil.
func (m *Mutex) Free() bool {
	return m != nil
}

// locker adapts a Mutex to sync.Locker for use with CondVar, reaching the
// embedded sync.Mutex directly rather than through Mutex's bool-returning
// methods (which don't satisfy sync.Locker).
type locker struct {
	m *Mutex
}

func (l locker) Lock()   { l.m.mu.Lock() }
func (l locker) Unlock() { l.m.mu.Unlock() }
