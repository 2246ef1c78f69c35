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

// Package thread wraps goroutines in refcounted, joinable handles with an
// optional name/priority/stack-size hint, plus thread-local storage keyed
// per handle. Priority and stack size are recorded as metadata only: Go's
// M:N scheduler does not expose a portable way to raise or lower a single
// goroutine's OS-thread priority, or to size its (growable) stack, so both
// hints are accepted for API compatibility and otherwise ignored, exactly
// as "OS default" already means for a zero stack_bytes/priority.
package thread

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/sabouaram/sysruntime/errors"
)

// Priority is an advisory scheduling hint accepted by CreateFull.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
)

// ExitFunc is the function run on the new thread. Its return value becomes
// the thread's exit code, observable through Join.
type ExitFunc func(arg any) int

var idSeq uint64

// Thread is a refcounted handle onto a goroutine running an ExitFunc.
type Thread struct {
	id         uint64
	joinable   bool
	priority   Priority
	stackBytes int
	name       string

	refcount int32
	done     chan struct{}
	exitCode int32

	tls sync.Map // *localKey -> any
}

// Create starts fn(arg) on a new goroutine and returns its handle.
// Equivalent to CreateFull with PriorityNormal, stackBytes 0, and no name.
func Create(fn ExitFunc, arg any, joinable bool) (*Thread, error) {
	return CreateFull(fn, arg, joinable, PriorityNormal, 0, "")
}

// CreateFull starts fn(arg) on a new goroutine, recording priority,
// stackBytes and name as advisory metadata (see package doc). Returns an
// error if fn is nil.
func CreateFull(fn ExitFunc, arg any, joinable bool, priority Priority, stackBytes int, name string) (*Thread, error) {
	if fn == nil {
		return nil, liberr.New(liberr.DomainNone, liberr.CodeInvalidArgument, 0, "thread: fn must not be nil")
	}

	t := &Thread{
		id:         atomic.AddUint64(&idSeq, 1),
		joinable:   joinable,
		priority:   priority,
		stackBytes: stackBytes,
		name:       name,
		refcount:   1,
		done:       make(chan struct{}),
	}

	go func() {
		registerCurrent(t)
		defer unregisterCurrent()
		defer close(t.done)
		defer t.runTLSDestructors()

		code := 0
		func() {
			defer func() {
				if r := recover(); r != nil {
					if sig, ok := r.(exitSignal); ok {
						code = sig.code
						return
					}
					panic(r)
				}
			}()
			code = fn(arg)
		}()
		atomic.StoreInt32(&t.exitCode, int32(code))
	}()

	return t, nil
}

// Join blocks until the thread's ExitFunc returns and reports its exit
// code. Non-joinable threads return -1 immediately without waiting.
func (t *Thread) Join() int {
	if t == nil || !t.joinable {
		return -1
	}
	<-t.done
	return int(atomic.LoadInt32(&t.exitCode))
}

// Ref increments the handle's reference count and returns it, for the
// common "store and retain" call pattern.
func (t *Thread) Ref() *Thread {
	if t == nil {
		return nil
	}
	atomic.AddInt32(&t.refcount, 1)
	return t
}

// Unref decrements the reference count. If it reaches zero after the
// underlying goroutine has reached its terminal state, the handle's TLS
// storage is dropped; if the goroutine is still running at that point, the
// storage is left in place.
func (t *Thread) Unref() {
	if t == nil {
		return
	}
	if atomic.AddInt32(&t.refcount, -1) > 0 {
		return
	}
	select {
	case <-t.done:
		t.tls = sync.Map{}
	default:
		// Not terminal yet: the storage is left in place, and the
		// goroutine's exit does not drop it afterwards.
	}
}

// ID returns an opaque, process-unique identifier for this handle.
func (t *Thread) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// Name returns the advisory name passed to CreateFull, or "".
func (t *Thread) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// currentRegistry maps the runtime's own goroutine ID to the Thread handle
// that started it, populated only for goroutines launched through
// Create/CreateFull.
var currentRegistry sync.Map // uint64 -> *Thread

// goroutineID extracts the calling goroutine's runtime-assigned ID by
// parsing the header line of its own stack trace ("goroutine 37 [running]:
// ..."). The runtime does not expose this value through any API; parsing
// runtime.Stack's output is the one place in this module stdlib-only is a
// deliberate choice rather than a last resort, since no goroutine-local-
// storage or goroutine-identity library exists anywhere in the corpus, and
// Go itself provides no other way to answer "which goroutine is this".
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

// Current returns the handle for the calling goroutine if it was started
// through Create/CreateFull, otherwise a synthesized handle with no
// lifecycle (not joinable, refcount not meaningful).
func Current() *Thread {
	if v, ok := currentRegistry.Load(goroutineID()); ok {
		return v.(*Thread)
	}
	return &Thread{id: atomic.AddUint64(&idSeq, 1), joinable: false}
}

// CurrentID returns an opaque, process-unique identifier for the calling
// thread of execution.
func CurrentID() uint64 {
	return Current().id
}

func registerCurrent(t *Thread) {
	currentRegistry.Store(goroutineID(), t)
}

func unregisterCurrent() {
	currentRegistry.Delete(goroutineID())
}

// IdealCount returns a positive hint for sizing parallel work, mirroring
// GOMAXPROCS (the number of OS threads the Go scheduler will run user-level
// code on simultaneously).
func IdealCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// Yield hints the scheduler to run other goroutines before resuming.
func Yield() {
	runtime.Gosched()
}

// Sleep blocks the calling goroutine for the given number of milliseconds.
func Sleep(ms int) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Exit terminates the calling goroutine's ExitFunc immediately with code,
// recording it as the exit code observed by Join. It must be called from
// inside a running ExitFunc; it panics with a recoverable sentinel that
// the CreateFull wrapper catches.
func Exit(code int) {
	panic(exitSignal{code: code})
}

type exitSignal struct{ code int }
