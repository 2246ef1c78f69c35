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

package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysruntime/memory"
)

var _ = AfterEach(func() {
	memory.RestoreVTable()
})

var _ = Describe("default vtable", func() {
	It("allocates zero-filled buffers of the requested size", func() {
		b := memory.Malloc(16)
		Expect(b).To(HaveLen(16))
		for _, c := range b {
			Expect(c).To(Equal(byte(0)))
		}
	})

	It("returns nil for a zero-size allocation", func() {
		Expect(memory.Malloc(0)).To(BeNil())
		Expect(memory.Malloc0(0)).To(BeNil())
	})

	It("preserves the prefix on realloc growth and truncates on shrink", func() {
		b := memory.Malloc(4)
		copy(b, []byte{1, 2, 3, 4})

		grown := memory.Realloc(b, 8)
		Expect(grown).To(HaveLen(8))
		Expect(grown[:4]).To(Equal([]byte{1, 2, 3, 4}))

		shrunk := memory.Realloc(grown, 2)
		Expect(shrunk).To(Equal([]byte{1, 2}))
	})

	It("Free is a no-op and never panics", func() {
		Expect(func() { memory.Free(memory.Malloc(4)) }).NotTo(Panic())
		Expect(func() { memory.Free(nil) }).NotTo(Panic())
	})
})

var _ = Describe("SetVTable", func() {
	It("rejects a vtable with any nil function", func() {
		Expect(memory.SetVTable(memory.VTable{})).To(BeFalse())
		Expect(memory.SetVTable(memory.VTable{
			Malloc: func(int) []byte { return nil },
		})).To(BeFalse())
	})

	It("routes every call through the replacement once accepted", func() {
		var allocs, reallocs, frees int

		ok := memory.SetVTable(memory.VTable{
			Malloc: func(size int) []byte {
				allocs++
				return make([]byte, size)
			},
			Realloc: func(buf []byte, size int) []byte {
				reallocs++
				out := make([]byte, size)
				copy(out, buf)
				return out
			},
			Free: func([]byte) {
				frees++
			},
		})
		Expect(ok).To(BeTrue())

		b := memory.Malloc(8)
		b = memory.Realloc(b, 16)
		memory.Free(b)

		Expect(allocs).To(Equal(1))
		Expect(reallocs).To(Equal(1))
		Expect(frees).To(Equal(1))
	})

	It("RestoreVTable reverts to the runtime default", func() {
		memory.SetVTable(memory.VTable{
			Malloc:  func(size int) []byte { return make([]byte, size+1) },
			Realloc: func(buf []byte, size int) []byte { return make([]byte, size) },
			Free:    func([]byte) {},
		})
		memory.RestoreVTable()

		Expect(memory.Malloc(4)).To(HaveLen(4))
	})
})
