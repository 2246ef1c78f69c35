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

//go:build linux

package semaphore_test

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"

	libsem "github.com/sabouaram/sysruntime/ipc/semaphore"
	"github.com/sabouaram/sysruntime/logger"
)

func uniqueName() string {
	return "sysruntime-test-" + uuid.NewString()
}

var _ = Describe("Semaphore", func() {
	It("rejects an empty name", func() {
		s, err := libsem.New("", 1, libsem.OpenOrCreate)
		Expect(err).To(HaveOccurred())
		Expect(s).To(BeNil())
	})

	It("Open fails when no object with that name exists yet", func() {
		s, err := libsem.New(uniqueName(), 1, libsem.Open)
		Expect(err).To(HaveOccurred())
		Expect(s).To(BeNil())
	})

	It("Create then Create again with the same name fails", func() {
		name := uniqueName()
		s1, err := libsem.New(name, 1, libsem.Create)
		Expect(err).NotTo(HaveOccurred())
		Expect(s1.TakeOwnership()).To(BeTrue())
		defer s1.Close()

		s2, err := libsem.New(name, 1, libsem.Create)
		Expect(err).To(HaveOccurred())
		Expect(s2).To(BeNil())
	})

	It("accepts SetLogger and keeps working normally with one attached", func() {
		name := uniqueName()
		s, err := libsem.New(name, 1, libsem.Create)
		Expect(err).NotTo(HaveOccurred())
		s.TakeOwnership()
		defer s.Close()

		buf := &bytes.Buffer{}
		s.SetLogger(logger.NewLogrus(buf, logger.DebugLevel))

		ok, err := s.Acquire()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = s.Release()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		s.SetLogger(nil)
	})

	It("OpenOrCreate attaches two handles to the same counter", func() {
		name := uniqueName()
		s1, err := libsem.New(name, 1, libsem.OpenOrCreate)
		Expect(err).NotTo(HaveOccurred())
		s1.TakeOwnership()
		defer s1.Close()

		s2, err := libsem.New(name, 1, libsem.OpenOrCreate)
		Expect(err).NotTo(HaveOccurred())

		ok, err := s1.Acquire()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		// s2 shares the kernel object: the count s1 just took is gone.
		var released int32
		go func() {
			_, _ = s1.Release()
			atomic.StoreInt32(&released, 1)
		}()

		ok, err = s2.Acquire()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Eventually(func() int32 { return atomic.LoadInt32(&released) }).Should(Equal(int32(1)))
	})

	It("serializes acquire/release across goroutines without the guarded value leaving its range", func() {
		name := uniqueName()
		s, err := libsem.New(name, 1, libsem.Create)
		Expect(err).NotTo(HaveOccurred())
		s.TakeOwnership()
		defer s.Close()

		var guarded int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Acquire()
				v := atomic.AddInt32(&guarded, 1)
				Expect(v).To(Equal(int32(1)))
				atomic.AddInt32(&guarded, -1)
				_, _ = s.Release()
			}()
		}
		wg.Wait()
	})

	It("returns an error, not a panic, when Acquire/Release target a nil handle", func() {
		var s *libsem.Semaphore
		ok, err := s.Acquire()
		Expect(ok).To(BeFalse())
		Expect(err).To(HaveOccurred())

		ok, err = s.Release()
		Expect(ok).To(BeFalse())
		Expect(err).To(HaveOccurred())

		Expect(s.TakeOwnership()).To(BeFalse())
		Expect(s.Close()).NotTo(HaveOccurred())
	})

	It("removes the kernel object once the owning handle closes", func() {
		name := uniqueName()
		s1, err := libsem.New(name, 1, libsem.Create)
		Expect(err).NotTo(HaveOccurred())
		Expect(s1.TakeOwnership()).To(BeTrue())
		Expect(s1.Close()).NotTo(HaveOccurred())

		_, err = libsem.New(name, 1, libsem.Open)
		Expect(err).To(HaveOccurred(), fmt.Sprintf("expected %q to be gone after the owning Close", name))
	})
})
