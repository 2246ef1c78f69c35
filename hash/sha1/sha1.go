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

// Package sha1 is a hand-rolled streaming SHA-1 (FIPS 180-4): 64-byte
// block, 20-byte digest, big-endian word order.
package sha1

import (
	"encoding/binary"
	"math/bits"

	"github.com/sabouaram/sysruntime/hash"
)

const (
	BlockSize  = 64
	DigestSize = 20
)

const (
	k0 = 0x5a827999
	k1 = 0x6ed9eba1
	k2 = 0x8f1bbcdc
	k3 = 0xca62c1d6
)

type Context struct {
	h      [5]uint32
	buf    [BlockSize]byte
	nbuf   int
	length uint64
	state  hash.State
}

func New() *Context {
	c := &Context{}
	c.Reset()
	return c
}

func (c *Context) Reset() {
	c.h = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}
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
	binary.BigEndian.PutUint64(pad[padLen:padLen+8], bitLen)

	c.Update(pad[:padLen+8])
	c.state = hash.StateFinished
}

func (c *Context) Sum() ([]byte, error) {
	if c.state != hash.StateFinished {
		return nil, hash.ErrNotFinished()
	}

	out := make([]byte, DigestSize)
	for i, v := range c.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
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
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, cc, d, e := c.h[0], c.h[1], c.h[2], c.h[3], c.h[4]

	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & cc) | (^b & d)
			k = k0
		case i < 40:
			f = b ^ cc ^ d
			k = k1
		case i < 60:
			f = (b & cc) | (b & d) | (cc & d)
			k = k2
		default:
			f = b ^ cc ^ d
			k = k3
		}

		tmp := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e = d
		d = cc
		cc = bits.RotateLeft32(b, 30)
		b = a
		a = tmp
	}

	c.h[0] += a
	c.h[1] += b
	c.h[2] += cc
	c.h[3] += d
	c.h[4] += e
}
