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

// Package byteorder provides endian-swap helpers and platform-independent
// fixed-width integer limits, the way the host toolchain's own <limits.h> +
// <arpa/inet.h> would, collapsed behind one small Go package.
//
// Host byte order is a compile-time constant on every platform this module
// targets (all supported GOARCH values are little-endian); HostOrder is
// exposed as a value rather than hard-coded so call sites read the same
// regardless.
package byteorder

// Order names a byte order.
type Order uint8

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// HostOrder is the byte order of the running process. Every architecture
// Go's toolchain supports for this module is little-endian.
const HostOrder = LittleEndian

// Platform-independent min/max constants, mirroring P_MININT8/P_MAXUINT64
// and friends.
const (
	MinInt8  = int8(-1 << 7)
	MaxInt8  = int8(1<<7 - 1)
	MaxUint8 = uint8(1<<8 - 1)

	MinInt16  = int16(-1 << 15)
	MaxInt16  = int16(1<<15 - 1)
	MaxUint16 = uint16(1<<16 - 1)

	MinInt32  = int32(-1 << 31)
	MaxInt32  = int32(1<<31 - 1)
	MaxUint32 = uint32(1<<32 - 1)

	MinInt64  = int64(-1 << 63)
	MaxInt64  = int64(1<<63 - 1)
	MaxUint64 = uint64(1<<64 - 1)
)

// Format modifiers for C printf-style format strings, mirroring
// PINT64_MODIFIER and friends. Go's fmt verbs take no length modifier, so
// these are not meant to be spliced into fmt.Sprintf formats.
const (
	Int16Modifier = "h"
	Int32Modifier = ""
	Int64Modifier = "ll"
)
