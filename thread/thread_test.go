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

package thread_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libthr "github.com/sabouaram/sysruntime/thread"
)

var _ = Describe("Thread", func() {
	It("Join returns the ExitFunc's return value for a joinable thread", func() {
		th, err := libthr.Create(func(arg any) int {
			return arg.(int) * 2
		}, 21, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(th.Join()).To(Equal(42))
	})

	It("Join returns -1 immediately for a non-joinable thread", func() {
		var ran int32
		th, err := libthr.Create(func(arg any) int {
			atomic.StoreInt32(&ran, 1)
			return 0
		}, nil, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(th.Join()).To(Equal(-1))
		Eventually(func() int32 { return atomic.LoadInt32(&ran) }, time.Second).Should(Equal(int32(1)))
	})

	It("CreateFull rejects a nil ExitFunc", func() {
		th, err := libthr.CreateFull(nil, nil, true, libthr.PriorityNormal, 0, "x")
		Expect(err).To(HaveOccurred())
		Expect(th).To(BeNil())
	})

	It("Current returns the handle Create returned, from inside the running ExitFunc", func() {
		var got *libthr.Thread
		th, err := libthr.Create(func(arg any) int {
			got = libthr.Current()
			return 0
		}, nil, true)
		Expect(err).NotTo(HaveOccurred())
		th.Join()
		Expect(got).NotTo(BeNil())
		Expect(got.ID()).To(Equal(th.ID()))
	})

	It("Current returns a synthesized handle outside of any managed goroutine", func() {
		c := libthr.Current()
		Expect(c).NotTo(BeNil())
		Expect(libthr.CurrentID()).NotTo(Equal(uint64(0)))
	})

	It("Exit sets the thread's exit code and unwinds only the ExitFunc", func() {
		th, err := libthr.Create(func(arg any) int {
			libthr.Exit(7)
			return 99 // unreachable
		}, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(th.Join()).To(Equal(7))
	})

	It("IdealCount is positive", func() {
		Expect(libthr.IdealCount()).To(BeNumerically(">", 0))
	})

	It("Yield and Sleep do not block indefinitely", func() {
		libthr.Yield()
		start := time.Now()
		libthr.Sleep(5)
		Expect(time.Since(start)).To(BeNumerically(">=", 5*time.Millisecond))
	})

	It("Ref/Unref do not panic across the thread's lifetime", func() {
		th, err := libthr.Create(func(arg any) int { return 0 }, nil, true)
		Expect(err).NotTo(HaveOccurred())
		th.Ref()
		th.Join()
		th.Unref()
		th.Unref()
	})
})
