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

package byteorder

// Swap16 reverses the byte order of a 16-bit word.
func Swap16(v uint16) uint16 {
	return v>>8 | v<<8
}

// Swap32 reverses the byte order of a 32-bit word.
func Swap32(v uint32) uint32 {
	return v>>24 |
		(v<<8)&0x00FF0000 |
		(v>>8)&0x0000FF00 |
		v<<24
}

// Swap64 reverses the byte order of a 64-bit word.
func Swap64(v uint64) uint64 {
	return v>>56 |
		(v<<40)&0x00FF000000000000 |
		(v<<24)&0x0000FF0000000000 |
		(v<<8)&0x000000FF00000000 |
		(v>>8)&0x00000000FF000000 |
		(v>>24)&0x0000000000FF0000 |
		(v>>40)&0x000000000000FF00 |
		v<<56
}

// ToLE16 converts a host-order value to little-endian.
func ToLE16(v uint16) uint16 {
	if HostOrder == LittleEndian {
		return v
	}
	return Swap16(v)
}

// FromLE16 converts a little-endian value to host order.
func FromLE16(v uint16) uint16 { return ToLE16(v) }

// ToBE16 converts a host-order value to big-endian.
func ToBE16(v uint16) uint16 {
	if HostOrder == BigEndian {
		return v
	}
	return Swap16(v)
}

// FromBE16 converts a big-endian value to host order.
func FromBE16(v uint16) uint16 { return ToBE16(v) }

// ToLE32 converts a host-order value to little-endian.
func ToLE32(v uint32) uint32 {
	if HostOrder == LittleEndian {
		return v
	}
	return Swap32(v)
}

// FromLE32 converts a little-endian value to host order.
func FromLE32(v uint32) uint32 { return ToLE32(v) }

// ToBE32 converts a host-order value to big-endian.
func ToBE32(v uint32) uint32 {
	if HostOrder == BigEndian {
		return v
	}
	return Swap32(v)
}

// FromBE32 converts a big-endian value to host order.
func FromBE32(v uint32) uint32 { return ToBE32(v) }

// ToLE64 converts a host-order value to little-endian.
func ToLE64(v uint64) uint64 {
	if HostOrder == LittleEndian {
		return v
	}
	return Swap64(v)
}

// FromLE64 converts a little-endian value to host order.
func FromLE64(v uint64) uint64 { return ToLE64(v) }

// ToBE64 converts a host-order value to big-endian.
func ToBE64(v uint64) uint64 {
	if HostOrder == BigEndian {
		return v
	}
	return Swap64(v)
}

// FromBE64 converts a big-endian value to host order.
func FromBE64(v uint64) uint64 { return ToBE64(v) }

// Htons converts a 16-bit value from host to network (big-endian) byte order.
func Htons(v uint16) uint16 { return ToBE16(v) }

// Ntohs converts a 16-bit value from network to host byte order.
func Ntohs(v uint16) uint16 { return FromBE16(v) }

// Htonl converts a 32-bit value from host to network (big-endian) byte order.
func Htonl(v uint32) uint32 { return ToBE32(v) }

// Ntohl converts a 32-bit value from network to host byte order.
func Ntohl(v uint32) uint32 { return FromBE32(v) }
