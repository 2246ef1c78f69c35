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

// Package md5 is a hand-rolled streaming MD5 (RFC 1321): 64-byte block,
// 16-byte digest, little-endian word order.
package md5

import (
	"encoding/binary"
	"math/bits"

	"github.com/sabouaram/sysruntime/hash"
)

const (
	BlockSize  = 64
	DigestSize = 16
)

var shifts = [64]uint{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// k[i] = floor(abs(sin(i+1)) * 2^32), i in [0,64).
var k = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// Context is a streaming MD5 digest.
type Context struct {
	h      [4]uint32
	buf    [BlockSize]byte
	nbuf   int
	length uint64
	state  hash.State
}

// New returns an MD5 context in its initial state.
func New() *Context {
	c := &Context{}
	c.Reset()
	return c
}

func (c *Context) Reset() {
	c.h = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}
	c.nbuf = 0
	c.length = 0
	c.state = hash.StateInitial
}

func (c *Context) State() hash.State { return c.state }
func (c *Context) Size() int         { return DigestSize }
func (c *Context) BlockSize() int    { return BlockSize }

func (c *Context) Update(data []byte) {
	if c.state == hash.StateFinished {
		return
	}
	c.state = hash.StateUpdating
	c.length += uint64(len(data))

	if c.nbuf > 0 {
		n := copy(c.buf[c.nbuf:], data)
		c.nbuf += n
		data = data[n:]
		if c.nbuf == BlockSize {
			c.block(c.buf[:])
			c.nbuf = 0
		}
	}

	for len(data) >= BlockSize {
		c.block(data[:BlockSize])
		data = data[BlockSize:]
	}

	if len(data) > 0 {
		c.nbuf = copy(c.buf[:], data)
	}
}

func (c *Context) Finish() {
	if c.state == hash.StateFinished {
		return
	}

	bitLen := c.length * 8

	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	padLen := 56 - c.nbuf%BlockSize
	if padLen <= 0 {
		padLen += BlockSize
	}
	binary.LittleEndian.PutUint64(pad[padLen:padLen+8], bitLen)

	c.Update(pad[:padLen+8])
	c.state = hash.StateFinished
}

func (c *Context) Sum() ([]byte, error) {
	if c.state != hash.StateFinished {
		return nil, hash.ErrNotFinished()
	}

	out := make([]byte, DigestSize)
	for i, v := range c.h {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out, nil
}

func (c *Context) String() (string, error) {
	sum, err := c.Sum()
	if err != nil {
		return "", err
	}
	return hash.ToHex(sum), nil
}

func (c *Context) block(block []byte) {
	a, b, cc, d := c.h[0], c.h[1], c.h[2], c.h[3]

	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	for i := 0; i < 64; i++ {
		var f uint32
		var g int

		switch {
		case i < 16:
			f = (b & cc) | (^b & d)
			g = i
		case i < 32:
			f = (d & b) | (^d & cc)
			g = (5*i + 1) % 16
		case i < 48:
			f = b ^ cc ^ d
			g = (3*i + 5) % 16
		default:
			f = cc ^ (b | ^d)
			g = (7 * i) % 16
		}

		f += a + k[i] + m[g]
		a = d
		d = cc
		cc = b
		b += bits.RotateLeft32(f, int(shifts[i]))
	}

	c.h[0] += a
	c.h[1] += b
	c.h[2] += cc
	c.h[3] += d
}
