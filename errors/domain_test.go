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

package errors_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysruntime/errors"
)

var _ = Describe("Domain", func() {
	It("stringifies the known domains", func() {
		Expect(errors.DomainNone.String()).To(Equal("none"))
		Expect(errors.DomainIO.String()).To(Equal("io"))
		Expect(errors.DomainIPC.String()).To(Equal("ipc"))
	})
})

var _ = Describe("Code.ValidIn", func() {
	It("allows CodeNone under every domain", func() {
		Expect(errors.CodeNone.ValidIn(errors.DomainNone)).To(BeTrue())
		Expect(errors.CodeNone.ValidIn(errors.DomainIO)).To(BeTrue())
		Expect(errors.CodeNone.ValidIn(errors.DomainIPC)).To(BeTrue())
	})

	It("allows the shared codes under both io and ipc", func() {
		for _, c := range []errors.Code{
			errors.CodeInvalidArgument,
			errors.CodeNoResources,
			errors.CodeNotAvailable,
			errors.CodeAccessDenied,
			errors.CodeAborted,
			errors.CodeNotSupported,
			errors.CodeTimedOut,
			errors.CodeWouldBlock,
			errors.CodeFailed,
		} {
			Expect(c.ValidIn(errors.DomainIO)).To(BeTrue())
			Expect(c.ValidIn(errors.DomainIPC)).To(BeTrue())
			Expect(c.ValidIn(errors.DomainNone)).To(BeFalse())
		}
	})

	It("restricts the connection-oriented codes to ipc", func() {
		for _, c := range []errors.Code{
			errors.CodeConnected,
			errors.CodeConnecting,
			errors.CodeConnectionRefused,
			errors.CodeNotConnected,
			errors.CodeAddressInUse,
		} {
			Expect(c.ValidIn(errors.DomainIPC)).To(BeTrue())
			Expect(c.ValidIn(errors.DomainIO)).To(BeFalse())
			Expect(c.ValidIn(errors.DomainNone)).To(BeFalse())
		}
	})

	It("renders unknown codes numerically", func() {
		var unknown errors.Code = 9999
		Expect(unknown.String()).To(Equal("code(9999)"))
	})
})
