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

// Package sha3 is a hand-rolled streaming SHA-3/Keccak-f[1600] sponge
// (FIPS 202) covering the four fixed-output variants (224/256/384/512),
// each with domain separator 0x06 and rate = (1600 - 2*bits)/8 bytes.
package sha3

import (
	"encoding/binary"
	"math/bits"

	"github.com/sabouaram/sysruntime/hash"
)

// Variant selects which SHA-3 member a Context computes.
type Variant uint8

const (
	Variant224 Variant = iota
	Variant256
	Variant384
	Variant512
)

func (v Variant) digestSize() int {
	switch v {
	case Variant224:
		return 28
	case Variant256:
		return 32
	case Variant384:
		return 48
	case Variant512:
		return 64
	}
	return 0
}

// rate is (1600 - 2*outputBits) / 8, the sponge's absorb/squeeze block size.
func (v Variant) rate() int {
	return (1600 - 2*v.digestSize()*8) / 8
}

const domainSeparator = 0x06

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rhoOffsets[x+5*y] is the Keccak rotation offset for lane (x, y).
var rhoOffsets = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

func keccakF1600(a *[25]uint64) {
	var b [25]uint64
	var c, d [5]uint64

	for round := 0; round < 24; round++ {
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				nx := y
				ny := (2*x + 3*y) % 5
				b[nx+5*ny] = bits.RotateLeft64(a[x+5*y], rhoOffsets[x+5*y])
			}
		}

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & b[(x+2)%5+5*y])
			}
		}

		a[0] ^= roundConstants[round]
	}
}

// Context is a streaming SHA-3 digest for a fixed Variant.
type Context struct {
	variant Variant
	a       [25]uint64
	buf     [144]byte
	nbuf    int
	state   hash.State
}

// New returns a SHA-3 context for the given variant, in its initial state.
func New(v Variant) *Context {
	c := &Context{variant: v}
	c.Reset()
	return c
}

func (c *Context) Reset() {
	c.a = [25]uint64{}
	c.nbuf = 0
	c.state = hash.StateInitial
}

func (c *Context) State() hash.State { return c.state }
func (c *Context) Size() int         { return c.variant.digestSize() }
func (c *Context) BlockSize() int    { return c.variant.rate() }

func (c *Context) Update(data []byte) {
	if c.state == hash.StateFinished {
		return
	}
	c.state = hash.StateUpdating
	rate := c.BlockSize()

	if c.nbuf > 0 {
		n := copy(c.buf[c.nbuf:rate], data)
		c.nbuf += n
		data = data[n:]
		if c.nbuf == rate {
			c.absorb(c.buf[:rate])
			c.nbuf = 0
		}
	}

	for len(data) >= rate {
		c.absorb(data[:rate])
		data = data[rate:]
	}

	if len(data) > 0 {
		c.nbuf = copy(c.buf[:rate], data)
	}
}

func (c *Context) absorb(block []byte) {
	for i := 0; i < len(block)/8; i++ {
		c.a[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
	keccakF1600(&c.a)
}

func (c *Context) Finish() {
	if c.state == hash.StateFinished {
		return
	}

	rate := c.BlockSize()
	var block [144]byte
	copy(block[:], c.buf[:c.nbuf])
	block[c.nbuf] ^= domainSeparator
	block[rate-1] ^= 0x80

	c.absorb(block[:rate])
	c.nbuf = 0
	c.state = hash.StateFinished
}

func (c *Context) Sum() ([]byte, error) {
	if c.state != hash.StateFinished {
		return nil, hash.ErrNotFinished()
	}

	size := c.variant.digestSize()
	out := make([]byte, size)
	var lanes [200]byte
	for i := 0; i < 25; i++ {
		binary.LittleEndian.PutUint64(lanes[i*8:], c.a[i])
	}
	copy(out, lanes[:size])
	return out, nil
}

func (c *Context) String() (string, error) {
	sum, err := c.Sum()
	if err != nil {
		return "", err
	}
	return hash.ToHex(sum), nil
}
