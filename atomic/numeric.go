/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package atomic

import (
	"sync/atomic"
)

// Int32 is a atomic 32-bit signed integer with the full Load/store/add/
// and/or/xor/CAS surface, layered over sync/atomic.Int32.
type Int32 struct {
	v atomic.Int32
}

func (i *Int32) Load() int32                    { return i.v.Load() }
func (i *Int32) Store(val int32)                { i.v.Store(val) }
func (i *Int32) Add(delta int32) (new int32)    { return i.v.Add(delta) }
func (i *Int32) Swap(new int32) (old int32)     { return i.v.Swap(new) }
func (i *Int32) CompareAndSwap(old, new int32) (swapped bool) {
	return i.v.CompareAndSwap(old, new)
}

func (i *Int32) And(mask int32) (old int32) {
	for {
		cur := i.v.Load()
		if i.v.CompareAndSwap(cur, cur&mask) {
			return cur
		}
	}
}

func (i *Int32) Or(mask int32) (old int32) {
	for {
		cur := i.v.Load()
		if i.v.CompareAndSwap(cur, cur|mask) {
			return cur
		}
	}
}

func (i *Int32) Xor(mask int32) (old int32) {
	for {
		cur := i.v.Load()
		if i.v.CompareAndSwap(cur, cur^mask) {
			return cur
		}
	}
}

// Uint32 is the unsigned counterpart of Int32.
type Uint32 struct {
	v atomic.Uint32
}

func (u *Uint32) Load() uint32                 { return u.v.Load() }
func (u *Uint32) Store(val uint32)             { u.v.Store(val) }
func (u *Uint32) Add(delta uint32) (new uint32) { return u.v.Add(delta) }
func (u *Uint32) Swap(new uint32) (old uint32) { return u.v.Swap(new) }
func (u *Uint32) CompareAndSwap(old, new uint32) (swapped bool) {
	return u.v.CompareAndSwap(old, new)
}

func (u *Uint32) And(mask uint32) (old uint32) {
	for {
		cur := u.v.Load()
		if u.v.CompareAndSwap(cur, cur&mask) {
			return cur
		}
	}
}

func (u *Uint32) Or(mask uint32) (old uint32) {
	for {
		cur := u.v.Load()
		if u.v.CompareAndSwap(cur, cur|mask) {
			return cur
		}
	}
}

func (u *Uint32) Xor(mask uint32) (old uint32) {
	for {
		cur := u.v.Load()
		if u.v.CompareAndSwap(cur, cur^mask) {
			return cur
		}
	}
}

// Int64 is the 64-bit signed counterpart of Int32.
type Int64 struct {
	v atomic.Int64
}

func (i *Int64) Load() int64                 { return i.v.Load() }
func (i *Int64) Store(val int64)             { i.v.Store(val) }
func (i *Int64) Add(delta int64) (new int64) { return i.v.Add(delta) }
func (i *Int64) Swap(new int64) (old int64)  { return i.v.Swap(new) }
func (i *Int64) CompareAndSwap(old, new int64) (swapped bool) {
	return i.v.CompareAndSwap(old, new)
}

func (i *Int64) And(mask int64) (old int64) {
	for {
		cur := i.v.Load()
		if i.v.CompareAndSwap(cur, cur&mask) {
			return cur
		}
	}
}

func (i *Int64) Or(mask int64) (old int64) {
	for {
		cur := i.v.Load()
		if i.v.CompareAndSwap(cur, cur|mask) {
			return cur
		}
	}
}

func (i *Int64) Xor(mask int64) (old int64) {
	for {
		cur := i.v.Load()
		if i.v.CompareAndSwap(cur, cur^mask) {
			return cur
		}
	}
}

// Uint64 is the 64-bit unsigned counterpart of Int32.
type Uint64 struct {
	v atomic.Uint64
}

func (u *Uint64) Load() uint64                  { return u.v.Load() }
func (u *Uint64) Store(val uint64)              { u.v.Store(val) }
func (u *Uint64) Add(delta uint64) (new uint64) { return u.v.Add(delta) }
func (u *Uint64) Swap(new uint64) (old uint64)  { return u.v.Swap(new) }
func (u *Uint64) CompareAndSwap(old, new uint64) (swapped bool) {
	return u.v.CompareAndSwap(old, new)
}

func (u *Uint64) And(mask uint64) (old uint64) {
	for {
		cur := u.v.Load()
		if u.v.CompareAndSwap(cur, cur&mask) {
			return cur
		}
	}
}

func (u *Uint64) Or(mask uint64) (old uint64) {
	for {
		cur := u.v.Load()
		if u.v.CompareAndSwap(cur, cur|mask) {
			return cur
		}
	}
}

func (u *Uint64) Xor(mask uint64) (old uint64) {
	for {
		cur := u.v.Load()
		if u.v.CompareAndSwap(cur, cur^mask) {
			return cur
		}
	}
}

// Pointer is a thin generic wrapper over sync/atomic.Pointer[T], giving the
// pointer-typed half of component D's Load/store/swap/CAS surface a name
// consistent with Int32/Int64/Uint32/Uint64 above.
type Pointer[T any] struct {
	v atomic.Pointer[T]
}

func (p *Pointer[T]) Load() *T                           { return p.v.Load() }
func (p *Pointer[T]) Store(val *T)                       { p.v.Store(val) }
func (p *Pointer[T]) Swap(new *T) (old *T)               { return p.v.Swap(new) }
func (p *Pointer[T]) CompareAndSwap(old, new *T) (swapped bool) {
	return p.v.CompareAndSwap(old, new)
}
