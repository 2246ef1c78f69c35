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

// Package gost3411 is a hand-rolled streaming GOST R 34.11-94 digest:
// 32-byte block, 32-byte digest, using the id-GostR3411-94-CryptoProParamSet
// S-box (RFC 4357 sec. 11.2). The compression step runs GOST 28147-89 in
// ECB-like mode over four 64-bit sub-blocks of the chaining state, with a
// dedicated 256-bit bit-length accumulator and 256-bit sum folded in on
// Finish alongside the final data block.
package gost3411

import (
	"encoding/binary"

	"github.com/sabouaram/sysruntime/hash"
)

const (
	BlockSize  = 32
	DigestSize = 32
)

// kBlock is the id-GostR3411-94-CryptoProParamSet S-box (RFC 4357 sec. 11.2).
var kBlock = [8][16]byte{
	{0xA, 0x4, 0x5, 0x6, 0x8, 0x1, 0x3, 0x7, 0xD, 0xC, 0xE, 0x0, 0x9, 0x2, 0xB, 0xF},
	{0x5, 0xF, 0x4, 0x0, 0x2, 0xD, 0xB, 0x9, 0x1, 0x7, 0x6, 0x3, 0xC, 0xE, 0xA, 0x8},
	{0x7, 0xF, 0xC, 0xE, 0x9, 0x4, 0x1, 0x0, 0x3, 0xB, 0x5, 0x2, 0x6, 0xA, 0x8, 0xD},
	{0x4, 0xA, 0x7, 0xC, 0x0, 0xF, 0x2, 0x8, 0xE, 0x1, 0x6, 0x5, 0xD, 0xB, 0x9, 0x3},
	{0x7, 0x6, 0x4, 0xB, 0x9, 0xC, 0x2, 0xA, 0x1, 0x8, 0x0, 0xE, 0xF, 0xD, 0x3, 0x5},
	{0x7, 0x6, 0x2, 0x4, 0xD, 0x9, 0xF, 0x0, 0xA, 0x1, 0x5, 0xB, 0x8, 0xE, 0xC, 0x3},
	{0xD, 0xE, 0x4, 0x1, 0x7, 0x0, 0x5, 0xA, 0x3, 0xC, 0x8, 0xF, 0x6, 0x2, 0x9, 0xB},
	{0x1, 0x3, 0xA, 0x9, 0x5, 0xB, 0x4, 0xF, 0x8, 0x6, 0x7, 0xE, 0xD, 0x0, 0x2, 0xC},
}

func gostRound(n *[2]uint32, key uint32) {
	cm1 := n[0] + key

	cm1 = uint32(kBlock[0][cm1&0xF]) |
		uint32(kBlock[1][(cm1>>4)&0xF])<<4 |
		uint32(kBlock[2][(cm1>>8)&0xF])<<8 |
		uint32(kBlock[3][(cm1>>12)&0xF])<<12 |
		uint32(kBlock[4][(cm1>>16)&0xF])<<16 |
		uint32(kBlock[5][(cm1>>20)&0xF])<<20 |
		uint32(kBlock[6][(cm1>>24)&0xF])<<24 |
		uint32(kBlock[7][(cm1>>28)&0xF])<<28

	cm1 = (cm1<<11 | cm1>>21) ^ n[1]
	n[1] = n[0]
	n[0] = cm1
}

// gostE is the core GOST 28147-89 transformation: 3 forward passes over
// key[0..7] followed by one backward pass, 32 rounds total.
func gostE(data [2]uint32, key [8]uint32) [2]uint32 {
	n := data

	for pass := 0; pass < 3; pass++ {
		for i := 0; i < 8; i++ {
			gostRound(&n, key[i])
		}
	}
	for i := 7; i >= 0; i-- {
		gostRound(&n, key[i])
	}

	return [2]uint32{n[1], n[0]}
}

// pTransform is the P permutation from GOST R 34.11-94.
func pTransform(data [8]uint32) [8]uint32 {
	var out [8]uint32

	out[0] = (data[0] & 0x000000FF) | ((data[2] << 8) & 0x0000FF00) | ((data[4] << 16) & 0x00FF0000) | ((data[6] << 24) & 0xFF000000)
	out[1] = ((data[0] >> 8) & 0x000000FF) | (data[2] & 0x0000FF00) | ((data[4] << 8) & 0x00FF0000) | ((data[6] << 16) & 0xFF000000)
	out[2] = ((data[0] >> 16) & 0x000000FF) | ((data[2] >> 8) & 0x0000FF00) | (data[4] & 0x00FF0000) | ((data[6] << 8) & 0xFF000000)
	out[3] = ((data[0] >> 24) & 0x000000FF) | ((data[2] >> 16) & 0x0000FF00) | ((data[4] >> 8) & 0x00FF0000) | (data[6] & 0xFF000000)
	out[4] = (data[1] & 0x000000FF) | ((data[3] << 8) & 0x0000FF00) | ((data[5] << 16) & 0x00FF0000) | ((data[7] << 24) & 0xFF000000)
	out[5] = ((data[1] >> 8) & 0x000000FF) | (data[3] & 0x0000FF00) | ((data[5] << 8) & 0x00FF0000) | ((data[7] << 16) & 0xFF000000)
	out[6] = ((data[1] >> 16) & 0x000000FF) | ((data[3] >> 8) & 0x0000FF00) | (data[5] & 0x00FF0000) | ((data[7] << 8) & 0xFF000000)
	out[7] = ((data[1] >> 24) & 0x000000FF) | ((data[3] >> 16) & 0x0000FF00) | ((data[5] >> 8) & 0x00FF0000) | (data[7] & 0xFF000000)

	return out
}

// sum256 adds b into a as a 256-bit number (8 little-endian uint32 words),
// propagating carry across words.
func sum256(a *[8]uint32, b [8]uint32) {
	carry := false
	for i := 0; i < 8; i++ {
		old := a[i]
		v := a[i] + b[i]
		if carry {
			v++
		}
		a[i] = v
		carry = v < old || v < b[i]
	}
}

// Context is a streaming GOST R 34.11-94 digest.
type Context struct {
	buf    [BlockSize]byte
	nbuf   int
	hash   [8]uint32
	length [8]uint32
	sum    [8]uint32
	state  hash.State
}

func New() *Context {
	c := &Context{}
	c.Reset()
	return c
}

func (c *Context) Reset() {
	c.buf = [BlockSize]byte{}
	c.nbuf = 0
	c.hash = [8]uint32{}
	c.length = [8]uint32{}
	c.sum = [8]uint32{}
	c.state = hash.StateInitial
}

func (c *Context) State() hash.State { return c.state }
func (c *Context) Size() int         { return DigestSize }
func (c *Context) BlockSize() int    { return BlockSize }

func decodeBlock(block []byte) [8]uint32 {
	var w [8]uint32
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(block[i*4:])
	}
	return w
}

func (c *Context) absorb(block []byte) {
	data := decodeBlock(block)
	c.process(data)
	sum256(&c.sum, data)
}

func (c *Context) Update(data []byte) {
	if c.state == hash.StateFinished {
		return
	}
	c.state = hash.StateUpdating

	n := len(data)
	var len256 [8]uint32
	len256[0] = uint32(uint64(n) << 3)
	len256[1] = uint32(uint64(n) >> 29)
	sum256(&c.length, len256)

	if c.nbuf > 0 {
		toFill := BlockSize - c.nbuf
		if n >= toFill {
			copy(c.buf[c.nbuf:BlockSize], data[:toFill])
			c.absorb(c.buf[:])
			data = data[toFill:]
			n -= toFill
			c.nbuf = 0
		}
	}

	for n >= BlockSize {
		copy(c.buf[:], data[:BlockSize])
		c.absorb(c.buf[:])
		data = data[BlockSize:]
		n -= BlockSize
	}

	if n > 0 {
		copy(c.buf[c.nbuf:c.nbuf+n], data)
		c.nbuf += n
	}
}

func (c *Context) Finish() {
	if c.state == hash.StateFinished {
		return
	}

	if c.nbuf != 0 {
		for i := c.nbuf; i < BlockSize; i++ {
			c.buf[i] = 0
		}
		c.absorb(c.buf[:])
	}

	c.process(c.length)
	c.process(c.sum)

	c.state = hash.StateFinished
}

func (c *Context) Sum() ([]byte, error) {
	if c.state != hash.StateFinished {
		return nil, hash.ErrNotFinished()
	}

	out := make([]byte, DigestSize)
	for i, v := range c.hash {
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

// process is the core GOST R 34.11-94 step function:
// H(M, Hprev) = PSI^61(Hprev xor PSI(M xor PSI^12(S))), where S is the
// result of four GOST 28147-89 encryptions keyed by four P-transformed
// combinations of the current hash state and the incoming data block.
func (c *Context) process(data [8]uint32) {
	var U, V, W [8]uint32
	U = c.hash
	V = data

	var K [4][8]uint32

	for i := 0; i < 8; i++ {
		W[i] = U[i] ^ V[i]
	}
	K[0] = pTransform(W)

	W[0] = U[2] ^ V[4]
	W[1] = U[3] ^ V[5]
	W[2] = U[4] ^ V[6]
	W[3] = U[5] ^ V[7]
	V[0] ^= V[2]
	W[4] = U[6] ^ V[0]
	V[1] ^= V[3]
	W[5] = U[7] ^ V[1]
	U[0] ^= U[2]
	V[2] ^= V[4]
	W[6] = U[0] ^ V[2]
	U[1] ^= U[3]
	V[3] ^= V[5]
	W[7] = U[1] ^ V[3]
	K[1] = pTransform(W)

	U[2] ^= U[4] ^ 0x000000FF
	U[3] ^= U[5] ^ 0xFF00FFFF
	U[4] ^= 0xFF00FF00
	U[5] ^= 0xFF00FF00
	U[6] ^= 0x00FF00FF
	U[7] ^= 0x00FF00FF
	U[0] ^= 0x00FFFF00
	U[1] ^= 0xFF0000FF

	W[0] = U[4] ^ V[0]
	W[2] = U[6] ^ V[2]
	V[4] ^= V[6]
	W[4] = U[0] ^ V[4]
	V[6] ^= V[0]
	W[6] = U[2] ^ V[6]
	W[1] = U[5] ^ V[1]
	W[3] = U[7] ^ V[3]
	V[5] ^= V[7]
	W[5] = U[1] ^ V[5]
	V[7] ^= V[1]
	W[7] = U[3] ^ V[7]
	K[2] = pTransform(W)

	W[0] = U[6] ^ V[4]
	W[1] = U[7] ^ V[5]
	W[2] = U[0] ^ V[6]
	W[3] = U[1] ^ V[7]
	V[0] ^= V[2]
	W[4] = U[2] ^ V[0]
	V[1] ^= V[3]
	W[5] = U[3] ^ V[1]
	U[4] ^= U[6]
	V[2] ^= V[4]
	W[6] = U[4] ^ V[2]
	U[5] ^= U[7]
	V[3] ^= V[5]
	W[7] = U[5] ^ V[3]
	K[3] = pTransform(W)

	var S [8]uint32
	s01 := gostE([2]uint32{c.hash[0], c.hash[1]}, K[0])
	S[0], S[1] = s01[0], s01[1]
	s23 := gostE([2]uint32{c.hash[2], c.hash[3]}, K[1])
	S[2], S[3] = s23[0], s23[1]
	s45 := gostE([2]uint32{c.hash[4], c.hash[5]}, K[2])
	S[4], S[5] = s45[0], s45[1]
	s67 := gostE([2]uint32{c.hash[6], c.hash[7]}, K[3])
	S[6], S[7] = s67[0], s67[1]

	var Uf [8]uint32
	Uf[0] = data[0] ^ S[6]
	Uf[1] = data[1] ^ S[7]
	Uf[2] = data[2] ^ (S[0]&0x0000FFFF) ^ (S[0]>>16) ^ (S[0]<<16) ^
		(S[1]&0x0000FFFF) ^ (S[1]>>16) ^ (S[2]<<16) ^
		(S[7]&0xFFFF0000) ^ (S[6]<<16) ^ (S[7]>>16) ^
		S[6]
	Uf[3] = data[3] ^ (S[0]&0x0000FFFF) ^ (S[0]<<16) ^ (S[2]<<16) ^
		(S[1]&0x0000FFFF) ^ (S[1]<<16) ^ (S[1]>>16) ^
		(S[7]&0x0000FFFF) ^ (S[2]>>16) ^ (S[3]<<16) ^
		(S[6]<<16) ^ (S[6]>>16) ^ (S[7]<<16) ^
		(S[7]>>16) ^ S[6]
	Uf[4] = data[4] ^ (S[0]&0xFFFF0000) ^ (S[0]<<16) ^ (S[0]>>16) ^
		(S[1]&0xFFFF0000) ^ (S[1]>>16) ^ (S[2]<<16) ^
		(S[7]&0x0000FFFF) ^ (S[3]<<16) ^ (S[3]>>16) ^
		(S[4]<<16) ^ (S[6]<<16) ^ (S[6]>>16) ^
		(S[2]>>16) ^ (S[7]<<16) ^ (S[7]>>16)
	Uf[5] = data[5] ^ (S[0]&0xFFFF0000) ^ (S[0]>>16) ^ (S[0]<<16) ^
		(S[1]&0x0000FFFF) ^ (S[7]>>16) ^ (S[2]>>16) ^
		(S[7]&0xFFFF0000) ^ (S[3]>>16) ^ (S[4]<<16) ^
		(S[4]>>16) ^ (S[5]<<16) ^ (S[6]<<16) ^
		(S[6]>>16) ^ (S[3]<<16) ^ (S[7]<<16) ^
		S[2]
	Uf[6] = data[6] ^ (S[4]>>16) ^ (S[1]>>16) ^ (S[2]<<16) ^
		(S[7]<<16) ^ (S[3]>>16) ^ (S[4]<<16) ^
		(S[5]<<16) ^ (S[5]>>16) ^ (S[6]<<16) ^
		(S[6]>>16) ^ S[6] ^ S[0] ^
		S[3]
	Uf[7] = data[7] ^ (S[0]&0xFFFF0000) ^ (S[0]<<16) ^ (S[1]<<16) ^
		(S[1]&0x0000FFFF) ^ (S[2]>>16) ^ (S[3]<<16) ^
		(S[7]&0x0000FFFF) ^ (S[4]>>16) ^ (S[5]<<16) ^
		(S[5]>>16) ^ (S[6]>>16) ^ (S[7]<<16) ^
		(S[7]>>16) ^ S[4]

	var Vf [8]uint32
	Vf[0] = c.hash[0] ^ (Uf[1] << 16) ^ (Uf[0] >> 16)
	Vf[1] = c.hash[1] ^ (Uf[2] << 16) ^ (Uf[1] >> 16)
	Vf[2] = c.hash[2] ^ (Uf[3] << 16) ^ (Uf[2] >> 16)
	Vf[3] = c.hash[3] ^ (Uf[4] << 16) ^ (Uf[3] >> 16)
	Vf[4] = c.hash[4] ^ (Uf[5] << 16) ^ (Uf[4] >> 16)
	Vf[5] = c.hash[5] ^ (Uf[6] << 16) ^ (Uf[5] >> 16)
	Vf[6] = c.hash[6] ^ (Uf[7] << 16) ^ (Uf[6] >> 16)
	Vf[7] = c.hash[7] ^ (Uf[7] >> 16) ^
		(Uf[0] << 16) ^ (Uf[1] & 0xFFFF0000) ^
		(Uf[1] << 16) ^ (Uf[7] & 0xFFFF0000) ^
		(Uf[6] << 16) ^ (Uf[0] & 0xFFFF0000)

	c.hash[0] = (Vf[0]&0xFFFF0000) ^ (Vf[0]<<16) ^ (Vf[0]>>16) ^
		(Vf[1]&0xFFFF0000) ^ (Vf[1]>>16) ^ (Vf[2]<<16) ^
		(Vf[7]&0x0000FFFF) ^ (Vf[3]>>16) ^ (Vf[4]<<16) ^
		(Vf[5]>>16) ^ (Vf[6]>>16) ^ (Vf[7]<<16) ^
		(Vf[7]>>16) ^ Vf[5]
	c.hash[1] = (Vf[0]&0xFFFF0000) ^ (Vf[0]<<16) ^ (Vf[0]>>16) ^
		(Vf[1]&0x0000FFFF) ^ (Vf[2]>>16) ^ (Vf[3]<<16) ^
		(Vf[7]&0xFFFF0000) ^ (Vf[4]>>16) ^ (Vf[5]<<16) ^
		(Vf[6]<<16) ^ (Vf[7]>>16) ^ Vf[6] ^
		Vf[2]
	c.hash[2] = (Vf[0]&0x0000FFFF) ^ (Vf[0]<<16) ^ (Vf[1]<<16) ^
		(Vf[7]&0x0000FFFF) ^ (Vf[1]>>16) ^ (Vf[2]<<16) ^
		(Vf[1]&0xFFFF0000) ^ (Vf[3]>>16) ^ (Vf[4]<<16) ^
		(Vf[5]>>16) ^ (Vf[6]>>16) ^ (Vf[7]<<16) ^
		(Vf[7]>>16) ^ Vf[3] ^ Vf[6]
	c.hash[3] = (Vf[0]&0xFFFF0000) ^ (Vf[0]<<16) ^ (Vf[0]>>16) ^
		(Vf[1]&0xFFFF0000) ^ (Vf[1]>>16) ^ (Vf[2]<<16) ^
		(Vf[7]&0x0000FFFF) ^ (Vf[2]>>16) ^ (Vf[3]<<16) ^
		(Vf[4]>>16) ^ (Vf[5]<<16) ^ (Vf[6]<<16) ^
		(Vf[7]>>16) ^ Vf[2] ^ Vf[4]
	c.hash[4] = (Vf[0] >> 16) ^ (Vf[1] << 16) ^ (Vf[2] >> 16) ^
		(Vf[3] << 16) ^ (Vf[3] >> 16) ^ (Vf[4] << 16) ^
		(Vf[5] >> 16) ^ (Vf[6] << 16) ^ (Vf[6] >> 16) ^
		(Vf[7] << 16) ^ Vf[1] ^ Vf[2] ^
		Vf[3] ^ Vf[5]
	c.hash[5] = (Vf[0]&0xFFFF0000) ^ (Vf[0]<<16) ^ (Vf[1]<<16) ^
		(Vf[1]&0xFFFF0000) ^ (Vf[1]>>16) ^ (Vf[2]<<16) ^
		(Vf[7]&0xFFFF0000) ^ (Vf[3]>>16) ^ (Vf[4]<<16) ^
		(Vf[4]>>16) ^ (Vf[5]<<16) ^ (Vf[6]<<16) ^
		(Vf[6]>>16) ^ (Vf[7]<<16) ^ (Vf[7]>>16) ^
		Vf[2] ^ Vf[3] ^ Vf[4] ^
		Vf[6]
	c.hash[6] = (Vf[2] >> 16) ^ (Vf[3] << 16) ^ (Vf[4] >> 16) ^
		(Vf[5] << 16) ^ (Vf[5] >> 16) ^ (Vf[6] << 16) ^
		(Vf[6] >> 16) ^ (Vf[7] << 16) ^ Vf[7] ^
		Vf[0] ^ Vf[2] ^ Vf[3] ^
		Vf[4] ^ Vf[5] ^ Vf[6]
	c.hash[7] = (Vf[0] >> 16) ^ (Vf[1] << 16) ^ (Vf[1] >> 16) ^
		(Vf[2] << 16) ^ (Vf[3] >> 16) ^ (Vf[4] << 16) ^
		(Vf[5] >> 16) ^ (Vf[6] << 16) ^ (Vf[6] >> 16) ^
		(Vf[7] << 16) ^ Vf[7] ^ Vf[0] ^
		Vf[3] ^ Vf[4] ^ Vf[5]
}
