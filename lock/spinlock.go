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

import (
	"runtime"
	"sync/atomic"
)

// Spinlock has the same public shape as Mutex but busy-waits instead of
// parking the goroutine, trading scheduler latency for lower handoff cost.
// Only appropriate for very short critical sections; holding one across a
// blocking call or a long computation stalls every other spinner's CPU.
type Spinlock struct {
	held atomic.Bool
}

// NewSpinlock returns a ready-to-use, unlocked Spinlock.
func NewSpinlock() *Spinlock {
	return &Spinlock{}
}

// Lock busy-waits until the spinlock is acquired, yielding the processor
// between attempts so a contended spin doesn't starve the goroutine that
// holds the lock.
func (s *Spinlock) Lock() bool {
	if s == nil {
		return false
	}
	for !s.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
	return true
}

// TryLock attempts one acquisition without spinning. Reports whether it
// succeeded.
func (s *Spinlock) TryLock() bool {
	if s == nil {
		return false
	}
	return s.held.CompareAndSwap(false, true)
}

// Unlock releases the spinlock. Reports false only when s is nil.
func (s *Spinlock) Unlock() bool {
	if s == nil {
		return false
	}
	s.held.Store(false)
	return true
}

// Free releases any resources held by s. Reports false only when s is nil.
func (s *Spinlock) Free() bool {
	return s != nil
}
