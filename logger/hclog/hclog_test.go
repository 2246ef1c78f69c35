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

package hclog_test

import (
	"bytes"

	gohclog "github.com/hashicorp/go-hclog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysruntime/logger"
	hclogadapter "github.com/sabouaram/sysruntime/logger/hclog"
)

var _ = Describe("New", func() {
	var buf *bytes.Buffer
	var base logger.Logger
	var adapted gohclog.Logger

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		base = logger.NewLogrus(buf, logger.DebugLevel)
		adapted = hclogadapter.New(base)
	})

	It("forwards Info/Warn/Error/Debug through to the wrapped Logger", func() {
		adapted.Info("hello", "k", "v")
		Expect(buf.String()).To(ContainSubstring("hello"))
		Expect(buf.String()).To(ContainSubstring("k="))
	})

	It("maps hclog.Trace onto the Debug level", func() {
		adapted.Trace("deep detail")
		Expect(buf.String()).To(ContainSubstring("deep detail"))
	})

	It("round-trips SetLevel/GetLevel", func() {
		adapted.SetLevel(gohclog.Warn)
		Expect(adapted.GetLevel()).To(Equal(gohclog.Warn))
		Expect(base.GetLevel()).To(Equal(logger.WarnLevel))
	})

	It("reports IsError/IsWarn/IsInfo/IsDebug consistent with the current level", func() {
		adapted.SetLevel(gohclog.Warn)
		Expect(adapted.IsError()).To(BeTrue())
		Expect(adapted.IsWarn()).To(BeTrue())
		Expect(adapted.IsInfo()).To(BeFalse())
		Expect(adapted.IsDebug()).To(BeFalse())
	})

	It("remembers a name set via Named", func() {
		adapted.Named("worker")
		Expect(adapted.Name()).To(Equal("worker"))
	})

	It("remembers implied args set via With", func() {
		adapted.With("request-id", "abc")
		Expect(adapted.ImpliedArgs()).To(Equal([]interface{}{"request-id", "abc"}))
	})

	It("tolerates a nil wrapped Logger without panicking", func() {
		nilAdapted := hclogadapter.New(nil)
		Expect(func() {
			nilAdapted.Info("noop")
			nilAdapted.SetLevel(gohclog.Debug)
			_ = nilAdapted.IsInfo()
			_ = nilAdapted.GetLevel()
			_ = nilAdapted.Name()
		}).NotTo(Panic())
	})
})
