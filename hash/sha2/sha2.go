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

// Package sha2 is a hand-rolled streaming SHA-2 family (FIPS 180-4)
// covering the 224/256 (32-bit word, 64-byte block) and 384/512 (64-bit
// word, 128-byte block) variants behind a single algorithm-selectable
// context, per the "algorithm-specific mode flag" requirement.
package sha2

import (
	"encoding/binary"
	"math/bits"

	"github.com/sabouaram/sysruntime/hash"
)

// Variant selects which SHA-2 member a Context computes.
type Variant uint8

const (
	Variant224 Variant = iota
	Variant256
	Variant384
	Variant512
)

func (v Variant) is64() bool { return v == Variant384 || v == Variant512 }

func (v Variant) blockSize() int {
	if v.is64() {
		return 128
	}
	return 64
}

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

var k32 = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var k64 = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

var iv224 = [8]uint32{0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939, 0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4}
var iv256 = [8]uint32{0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19}

var iv384 = [8]uint64{
	0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
	0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
}
var iv512 = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// Context is a streaming SHA-2 digest for a fixed Variant.
type Context struct {
	variant Variant
	h32     [8]uint32
	h64     [8]uint64
	buf     [128]byte
	nbuf    int
	length  uint64
	state   hash.State
}

// New returns a SHA-2 context for the given variant, in its initial state.
func New(v Variant) *Context {
	c := &Context{variant: v}
	c.Reset()
	return c
}

func (c *Context) Reset() {
	switch c.variant {
	case Variant224:
		c.h32 = iv224
	case Variant256:
		c.h32 = iv256
	case Variant384:
		c.h64 = iv384
	case Variant512:
		c.h64 = iv512
	}
	c.nbuf = 0
	c.length = 0
	c.state = hash.StateInitial
}

func (c *Context) State() hash.State { return c.state }
func (c *Context) Size() int         { return c.variant.digestSize() }
func (c *Context) BlockSize() int    { return c.variant.blockSize() }

func (c *Context) Update(data []byte) {
	if c.state == hash.StateFinished {
		return
	}
	c.state = hash.StateUpdating
	c.length += uint64(len(data))
	bs := c.BlockSize()

	if c.nbuf > 0 {
		n := copy(c.buf[c.nbuf:bs], data)
		c.nbuf += n
		data = data[n:]
		if c.nbuf == bs {
			c.block(c.buf[:bs])
			c.nbuf = 0
		}
	}

	for len(data) >= bs {
		c.block(data[:bs])
		data = data[bs:]
	}

	if len(data) > 0 {
		c.nbuf = copy(c.buf[:bs], data)
	}
}

func (c *Context) Finish() {
	if c.state == hash.StateFinished {
		return
	}

	bs := c.BlockSize()
	bitLen := c.length * 8

	if !c.variant.is64() {
		var pad [128 + 8]byte
		pad[0] = 0x80
		padLen := (bs - 8) - c.nbuf%bs
		if padLen <= 0 {
			padLen += bs
		}
		binary.BigEndian.PutUint64(pad[padLen:padLen+8], bitLen)
		c.Update(pad[:padLen+8])
	} else {
		var pad [256 + 16]byte
		pad[0] = 0x80
		padLen := (bs - 16) - c.nbuf%bs
		if padLen <= 0 {
			padLen += bs
		}
		binary.BigEndian.PutUint64(pad[padLen+8:padLen+16], bitLen)
		c.Update(pad[:padLen+16])
	}

	c.state = hash.StateFinished
}

func (c *Context) Sum() ([]byte, error) {
	if c.state != hash.StateFinished {
		return nil, hash.ErrNotFinished()
	}

	out := make([]byte, c.variant.digestSize())
	if !c.variant.is64() {
		var full [32]byte
		for i, v := range c.h32 {
			binary.BigEndian.PutUint32(full[i*4:], v)
		}
		copy(out, full[:])
	} else {
		var full [64]byte
		for i, v := range c.h64 {
			binary.BigEndian.PutUint64(full[i*8:], v)
		}
		copy(out, full[:])
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
	if !c.variant.is64() {
		c.block32(block)
	} else {
		c.block64(block)
	}
}

func (c *Context) block32(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, cc, d, e, f, g, h := c.h32[0], c.h32[1], c.h32[2], c.h32[3], c.h32[4], c.h32[5], c.h32[6], c.h32[7]

	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k32[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & cc) ^ (b & cc)
		t2 := s0 + maj

		h = g
		g = f
		f = e
		e = d + t1
		d = cc
		cc = b
		b = a
		a = t1 + t2
	}

	c.h32[0] += a
	c.h32[1] += b
	c.h32[2] += cc
	c.h32[3] += d
	c.h32[4] += e
	c.h32[5] += f
	c.h32[6] += g
	c.h32[7] += h
}

func (c *Context) block64(block []byte) {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(block[i*8:])
	}
	for i := 16; i < 80; i++ {
		s0 := bits.RotateLeft64(w[i-15], -1) ^ bits.RotateLeft64(w[i-15], -8) ^ (w[i-15] >> 7)
		s1 := bits.RotateLeft64(w[i-2], -19) ^ bits.RotateLeft64(w[i-2], -61) ^ (w[i-2] >> 6)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, cc, d, e, f, g, h := c.h64[0], c.h64[1], c.h64[2], c.h64[3], c.h64[4], c.h64[5], c.h64[6], c.h64[7]

	for i := 0; i < 80; i++ {
		s1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k64[i] + w[i]
		s0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
		maj := (a & b) ^ (a & cc) ^ (b & cc)
		t2 := s0 + maj

		h = g
		g = f
		f = e
		e = d + t1
		d = cc
		cc = b
		b = a
		a = t1 + t2
	}

	c.h64[0] += a
	c.h64[1] += b
	c.h64[2] += cc
	c.h64[3] += d
	c.h64[4] += e
	c.h64[5] += f
	c.h64[6] += g
	c.h64[7] += h
}
