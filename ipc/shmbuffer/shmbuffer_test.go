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

package shmbuffer_test

import (
	"github.com/google/uuid"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libbuf "github.com/sabouaram/sysruntime/ipc/shmbuffer"
)

func uniqueName() string {
	return "sysruntime-shmbuffer-test-" + uuid.NewString()
}

var _ = Describe("Buffer", func() {
	It("rejects an empty name or negative size", func() {
		_, err := libbuf.New("", 16)
		Expect(err).To(HaveOccurred())

		_, err = libbuf.New(uniqueName(), -1)
		Expect(err).To(HaveOccurred())
	})

	It("reports the full capacity as free space on a fresh buffer", func() {
		b, err := libbuf.New(uniqueName(), 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.TakeOwnership()).To(BeTrue())
		defer b.Close()

		Expect(b.GetFreeSpace()).To(Equal(16))
		Expect(b.GetUsedSpace()).To(Equal(0))
	})

	It("round-trips a write/read pair", func() {
		b, err := libbuf.New(uniqueName(), 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.TakeOwnership()).To(BeTrue())
		defer b.Close()

		n, err := b.Write([]byte("hello"), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(b.GetUsedSpace()).To(Equal(5))
		Expect(b.GetFreeSpace()).To(Equal(11))

		out := make([]byte, 8)
		n, err = b.Read(out, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(out[:5]).To(Equal([]byte("hello")))
		Expect(b.GetUsedSpace()).To(Equal(0))
	})

	It("fails a write that exceeds free space", func() {
		b, err := libbuf.New(uniqueName(), 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.TakeOwnership()).To(BeTrue())
		defer b.Close()

		_, err = b.Write([]byte("too long"), 8)
		Expect(err).To(HaveOccurred())
	})

	It("wraps around the ring correctly across repeated write/read cycles", func() {
		b, err := libbuf.New(uniqueName(), 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.TakeOwnership()).To(BeTrue())
		defer b.Close()

		out := make([]byte, 3)
		for i := 0; i < 10; i++ {
			n, err := b.Write([]byte{byte(i), byte(i + 1), byte(i + 2)}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))

			n, err = b.Read(out, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(out).To(Equal([]byte{byte(i), byte(i + 1), byte(i + 2)}))
		}
	})

	It("Clear resets used space to zero", func() {
		b, err := libbuf.New(uniqueName(), 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.TakeOwnership()).To(BeTrue())
		defer b.Close()

		_, err = b.Write([]byte("abc"), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Clear()).NotTo(HaveOccurred())
		Expect(b.GetUsedSpace()).To(Equal(0))
		Expect(b.GetFreeSpace()).To(Equal(16))
	})

	It("is a no-op, not a panic, on a nil buffer", func() {
		var b *libbuf.Buffer
		Expect(b.TakeOwnership()).To(BeFalse())
		Expect(b.Close()).NotTo(HaveOccurred())
		Expect(b.GetFreeSpace()).To(Equal(0))
		Expect(b.GetUsedSpace()).To(Equal(-1))
	})
})
