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

// CondVar is a condition variable: Wait atomically releases the caller's
// mutex and blocks until Signal or Broadcast wakes it, reacquiring the
// mutex before returning. Like POSIX condition variables, a wakeup carries
// no guarantee that the predicate the caller is waiting on actually holds
// (spurious wakeups are permitted), so callers must re-check their
// predicate in a loop around Wait. All waiters on a given CondVar must
// pass the same Mutex to Wait; passing different mutexes across calls is
// undefined.
type CondVar struct {
	muOnce sync.Once
	cond   *sync.Cond
	bound  *Mutex
}

// NewCondVar returns a ready-to-use condition variable. It binds to
// whichever Mutex is first passed to Wait.
func NewCondVar() *CondVar {
	return &CondVar{}
}

func (c *CondVar) bind(m *Mutex) {
	c.muOnce.Do(func() {
		c.bound = m
		c.cond = sync.NewCond(locker{m: m})
	})
}

// Wait atomically unlocks m and blocks the calling goroutine until another
// goroutine calls Signal or Broadcast on c, then reacquires m before
// returning. Reports false only when c or m is nil.
func (c *CondVar) Wait(m *Mutex) bool {
	if c == nil || m == nil {
		return false
	}
	c.bind(m)
	c.cond.Wait()
	return true
}

// Signal wakes at most one goroutine blocked in Wait on c, if any.
// Reports false when c is nil or no goroutine has waited on it yet.
func (c *CondVar) Signal() bool {
	if c == nil || c.cond == nil {
		return false
	}
	c.cond.Signal()
	return true
}

// Broadcast wakes every goroutine blocked in Wait on c. Reports false
// when c is nil or no goroutine has waited on it yet.
func (c *CondVar) Broadcast() bool {
	if c == nil || c.cond == nil {
		return false
	}
	c.cond.Broadcast()
	return true
}

// Free releases any resources held by c. Reports false only when c is nil.
func (c *CondVar) Free() bool {
	return c != nil
}
