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

// Package rt is the module's single internal header-equivalent: small
// pieces of plumbing shared by more than one public package that don't
// belong to any single one of them. The original C library split this
// role across plib-private.h and plibsys-private.h; this is the one Go
// package that replaces both.
package rt

import (
	"encoding/binary"

	"github.com/sabouaram/sysruntime/hash/md5"
)

// PlatformKey derives a stable, positive, non-zero 31-bit integer key
// from a namespaced, user-visible name - the same derivation
// ipc/semaphore and ipc/shm each need to turn a name into a SysV IPC
// key. namespace should be unique per caller (e.g. "semaphore", "shm")
// so the two packages never collide with each other over the same
// user-visible name.
func PlatformKey(namespace, name string) int32 {
	h := md5.New()
	h.Update([]byte("sysruntime/" + namespace + ":" + name))
	h.Finish()
	sum, _ := h.Sum()
	key := int32(binary.BigEndian.Uint32(sum[:4]) & 0x7fffffff)
	if key == 0 {
		key = 1
	}
	return key
}

// Fingerprint derives a 15-bit tag from name, independent of
// PlatformKey, used to detect a platform-key collision between two
// unrelated names: both ipc/semaphore and ipc/shm store one of these
// alongside the object they create and check it against a freshly
// derived one on every subsequent open.
func Fingerprint(namespace, name string) uint16 {
	h := md5.New()
	h.Update([]byte("sysruntime/" + namespace + "/fingerprint:" + name))
	h.Finish()
	sum, _ := h.Sum()
	return uint16(binary.BigEndian.Uint32(sum[4:8]) & 0x7fff)
}
