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

package runtime_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysruntime/memory"
	"github.com/sabouaram/sysruntime/runtime"
)

var _ = AfterEach(func() {
	memory.RestoreVTable()
})

var _ = Describe("Init/Shutdown", func() {
	It("returns a usable handle", func() {
		rt, err := runtime.Init()
		Expect(err).NotTo(HaveOccurred())
		Expect(rt).NotTo(BeNil())
		Expect(rt.Shutdown()).To(Succeed())
	})

	It("is idempotent: overlapping Init calls each get an independent handle", func() {
		rt1, err := runtime.Init()
		Expect(err).NotTo(HaveOccurred())
		rt2, err := runtime.Init()
		Expect(err).NotTo(HaveOccurred())

		Expect(rt1.Shutdown()).To(Succeed())
		Expect(rt2.Shutdown()).To(Succeed())
	})

	It("Shutdown is safe to call more than once on the same handle", func() {
		rt, err := runtime.Init()
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.Shutdown()).To(Succeed())
		Expect(rt.Shutdown()).To(Succeed())
	})

	It("Shutdown on a nil handle is a no-op", func() {
		var rt *runtime.Runtime
		Expect(rt.Shutdown()).To(Succeed())
	})
})

var _ = Describe("Runtime vtable accessors", func() {
	It("delegates to the process-wide memory vtable", func() {
		rt, err := runtime.Init()
		Expect(err).NotTo(HaveOccurred())
		defer rt.Shutdown()

		var allocs int
		ok := rt.SetVTable(memory.VTable{
			Malloc: func(size int) []byte {
				allocs++
				return make([]byte, size)
			},
			Realloc: func(buf []byte, size int) []byte { return make([]byte, size) },
			Free:    func([]byte) {},
		})
		Expect(ok).To(BeTrue())

		memory.Malloc(4)
		Expect(allocs).To(Equal(1))

		rt.RestoreVTable()
		Expect(rt.GetVTable().Malloc(4)).To(HaveLen(4))
	})
})
