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

package atomic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/sabouaram/sysruntime/atomic"
)

var _ = Describe("Int32", func() {
	It("loads, stores and adds", func() {
		var i Int32
		i.Store(10)
		Expect(i.Load()).To(Equal(int32(10)))
		Expect(i.Add(5)).To(Equal(int32(15)))
	})

	It("CompareAndSwap only swaps on match", func() {
		var i Int32
		i.Store(1)
		Expect(i.CompareAndSwap(0, 2)).To(BeFalse())
		Expect(i.CompareAndSwap(1, 2)).To(BeTrue())
		Expect(i.Load()).To(Equal(int32(2)))
	})

	It("And/Or/Xor apply the bitwise op and return the previous value", func() {
		var i Int32
		i.Store(0b1100)

		old := i.And(0b1010)
		Expect(old).To(Equal(int32(0b1100)))
		Expect(i.Load()).To(Equal(int32(0b1000)))

		old = i.Or(0b0001)
		Expect(old).To(Equal(int32(0b1000)))
		Expect(i.Load()).To(Equal(int32(0b1001)))

		old = i.Xor(0b1111)
		Expect(old).To(Equal(int32(0b1001)))
		Expect(i.Load()).To(Equal(int32(0b0110)))
	})
})

var _ = Describe("Uint64", func() {
	It("handles the full unsigned range", func() {
		var u Uint64
		u.Store(^uint64(0))
		Expect(u.Load()).To(Equal(^uint64(0)))
		Expect(u.And(0xFF)).To(Equal(^uint64(0)))
		Expect(u.Load()).To(Equal(uint64(0xFF)))
	})

	It("Swap returns the previous value", func() {
		var u Uint64
		u.Store(7)
		Expect(u.Swap(9)).To(Equal(uint64(7)))
		Expect(u.Load()).To(Equal(uint64(9)))
	})
})

var _ = Describe("Pointer", func() {
	It("wraps sync/atomic.Pointer[T] with Load/Store/Swap/CAS", func() {
		type box struct{ n int }

		var p Pointer[box]
		Expect(p.Load()).To(BeNil())

		a := &box{n: 1}
		p.Store(a)
		Expect(p.Load()).To(Equal(a))

		b := &box{n: 2}
		old := p.Swap(b)
		Expect(old).To(Equal(a))
		Expect(p.Load()).To(Equal(b))

		Expect(p.CompareAndSwap(a, &box{n: 3})).To(BeFalse())
		Expect(p.CompareAndSwap(b, &box{n: 3})).To(BeTrue())
		Expect(p.Load().n).To(Equal(3))
	})
})
