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

package ini_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysruntime/ini"
)

func writeTemp(contents string) string {
	dir, err := os.MkdirTemp(os.TempDir(), "sysruntime-ini-")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.ini")
	Expect(os.WriteFile(path, []byte(contents), 0600)).To(Succeed())
	return path
}

var _ = Describe("File", func() {
	It("rejects an empty path", func() {
		_, err := ini.New("")
		Expect(err).To(HaveOccurred())
	})

	It("fails to parse a missing file", func() {
		f, err := ini.New("/does/not/exist.ini")
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Parse()).To(HaveOccurred())
	})

	It("is idempotent across repeated Parse calls", func() {
		path := writeTemp("[a]\nx = 1\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())
		Expect(f.Parse()).To(Succeed())
		Expect(f.IsParsed()).To(BeTrue())
	})

	It("parses sections, keys, comments, and blank lines", func() {
		path := writeTemp(`
; leading comment
[server]
host = example.com
port = 8080 ; inline comment
# another comment

[client]
retries = 3
`)
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())

		Expect(f.Sections()).To(Equal([]string{"server", "client"}))
		Expect(f.Keys("server")).To(Equal([]string{"host", "port"}))
		Expect(f.HasKey("server", "host")).To(BeTrue())
		Expect(f.HasKey("server", "missing")).To(BeFalse())
		Expect(f.String("server", "host", "")).To(Equal("example.com"))
		Expect(f.Int("client", "retries", -1)).To(Equal(3))
	})

	It("honors quoted values so embedded comment characters survive", func() {
		path := writeTemp(`[a]
double = "value ; not a comment"
single = 'other # not a comment'
`)
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())

		Expect(f.String("a", "double", "")).To(Equal("value ; not a comment"))
		Expect(f.String("a", "single", "")).To(Equal("other # not a comment"))
	})

	It("strips a UTF-8 BOM from the first line", func() {
		path := writeTemp("\xEF\xBB\xBF[a]\nk = v\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())
		Expect(f.Sections()).To(Equal([]string{"a"}))
		Expect(f.String("a", "k", "")).To(Equal("v"))
	})

	It("returns defaults for a missing section or key", func() {
		path := writeTemp("[a]\nk = v\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())

		Expect(f.String("a", "missing", "fallback")).To(Equal("fallback"))
		Expect(f.String("missing", "k", "fallback")).To(Equal("fallback"))
		Expect(f.Int("a", "missing", 42)).To(Equal(42))
	})

	It("parses booleans per the true/false/numeric rules", func() {
		path := writeTemp(`[a]
b1 = true
b2 = FALSE
b3 = 1
b4 = 0
b5 = garbage
`)
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())

		Expect(f.Bool("a", "b1", false)).To(BeTrue())
		Expect(f.Bool("a", "b2", true)).To(BeFalse())
		Expect(f.Bool("a", "b3", false)).To(BeTrue())
		Expect(f.Bool("a", "b4", true)).To(BeFalse())
		Expect(f.Bool("a", "b5", true)).To(BeFalse())
	})

	It("parses a brace-delimited list split on whitespace", func() {
		path := writeTemp("[a]\nitems = {one two  three}\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())
		Expect(f.List("a", "items")).To(Equal([]string{"one", "two", "three"}))
	})

	It("returns nil for a list value that isn't brace-delimited", func() {
		path := writeTemp("[a]\nitems = one two three\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())
		Expect(f.List("a", "items")).To(BeNil())
	})

	It("parses float values leniently", func() {
		path := writeTemp("[a]\nratio = 3.5\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())
		Expect(f.Float("a", "ratio", 0)).To(Equal(3.5))
	})

	It("ignores key=value lines that precede any section", func() {
		path := writeTemp("stray = 1\n[a]\nk = v\n")
		f, _ := ini.New(path)
		Expect(f.Parse()).To(Succeed())
		Expect(f.HasKey("a", "k")).To(BeTrue())
		Expect(f.Sections()).To(Equal([]string{"a"}))
	})
})
