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

package lock_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblock "github.com/sabouaram/sysruntime/lock"
)

var _ = Describe("CondVar", func() {
	It("wakes a single waiter on Signal", func() {
		m := liblock.NewMutex()
		cv := liblock.NewCondVar()
		ready := false
		woke := make(chan struct{})

		go func() {
			m.Lock()
			for !ready {
				cv.Wait(m)
			}
			m.Unlock()
			close(woke)
		}()

		time.Sleep(20 * time.Millisecond)
		m.Lock()
		ready = true
		m.Unlock()
		Expect(cv.Signal()).To(BeTrue())

		Eventually(woke, time.Second).Should(BeClosed())
	})

	It("wakes every waiter on Broadcast", func() {
		m := liblock.NewMutex()
		cv := liblock.NewCondVar()
		ready := false
		const n = 5
		woke := make(chan struct{}, n)

		for i := 0; i < n; i++ {
			go func() {
				m.Lock()
				for !ready {
					cv.Wait(m)
				}
				m.Unlock()
				woke <- struct{}{}
			}()
		}

		time.Sleep(20 * time.Millisecond)
		m.Lock()
		ready = true
		m.Unlock()
		Expect(cv.Broadcast()).To(BeTrue())

		for i := 0; i < n; i++ {
			Eventually(woke, time.Second).Should(Receive())
		}
	})

	It("is a no-op on a nil CondVar or nil Mutex", func() {
		var cv *liblock.CondVar
		m := liblock.NewMutex()
		Expect(cv.Wait(m)).To(BeFalse())
		Expect(cv.Signal()).To(BeFalse())
		Expect(cv.Broadcast()).To(BeFalse())
		Expect(cv.Free()).To(BeFalse())

		cv = liblock.NewCondVar()
		Expect(cv.Wait(nil)).To(BeFalse())
		Expect(cv.Signal()).To(BeFalse())
		Expect(cv.Broadcast()).To(BeFalse())
	})
})
