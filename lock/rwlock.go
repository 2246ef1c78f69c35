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

package lock

import "sync"

// RWLock lets multiple readers hold the lock concurrently, or one writer
// hold it exclusively. Writer starvation under a steady stream of readers
// is possible; Go's sync.RWMutex biases new readers against proceeding
// once a writer is waiting, which resolves most of it in practice.
// Unlocking the wrong side (e.g. ReaderUnlock after WriterLock) is
// undefined.
type RWLock struct {
	mu sync.RWMutex
}

// NewRWLock returns a ready-to-use, unlocked RWLock.
func NewRWLock() *RWLock {
	return &RWLock{}
}

// ReaderLock blocks until a read lock is acquired.
func (l *RWLock) ReaderLock() bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	return true
}

// ReaderTryLock attempts to acquire a read lock without blocking.
func (l *RWLock) ReaderTryLock() bool {
	if l == nil {
		return false
	}
	return l.mu.TryRLock()
}

// ReaderUnlock releases a read lock.
func (l *RWLock) ReaderUnlock() bool {
	if l == nil {
		return false
	}
	l.mu.RUnlock()
	return true
}

// WriterLock blocks until the exclusive write lock is acquired.
func (l *RWLock) WriterLock() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	return true
}

// WriterTryLock attempts to acquire the exclusive write lock without
// blocking.
func (l *RWLock) WriterTryLock() bool {
	if l == nil {
		return false
	}
	return l.mu.TryLock()
}

// WriterUnlock releases the exclusive write lock.
func (l *RWLock) WriterUnlock() bool {
	if l == nil {
		return false
	}
	l.mu.Unlock()
	return true
}

// Free releases any resources held by l. Reports false only when l is nil.
func (l *RWLock) Free() bool {
	return l != nil
}
