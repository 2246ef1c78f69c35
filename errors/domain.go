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

package errors

import "fmt"

// Domain pins how Code is interpreted, mirroring the two kinds the rest of
// the runtime surfaces failures in: filesystem/socket-adjacent I/O and
// cross-process IPC (semaphore, shared memory).
type Domain uint8

const (
	DomainNone Domain = iota
	DomainIO
	DomainIPC
)

func (d Domain) String() string {
	switch d {
	case DomainIO:
		return "io"
	case DomainIPC:
		return "ipc"
	default:
		return "none"
	}
}

// Code is a taxonomy entry, scoped to a Domain. The zero value, CodeNone,
// never carries a Domain other than DomainNone.
type Code uint16

const (
	CodeNone Code = iota
	CodeInvalidArgument
	CodeNoResources
	CodeNotAvailable
	CodeAccessDenied
	CodeAborted
	CodeNotSupported
	CodeTimedOut
	CodeWouldBlock
	CodeFailed
	// IPC-only codes (§7): valid only alongside DomainIPC.
	CodeConnected
	CodeConnecting
	CodeConnectionRefused
	CodeNotConnected
	CodeAddressInUse
)

var codeNames = map[Code]string{
	CodeNone:              "none",
	CodeInvalidArgument:   "invalid-argument",
	CodeNoResources:       "no-resources",
	CodeNotAvailable:      "not-available",
	CodeAccessDenied:      "access-denied",
	CodeAborted:           "aborted",
	CodeNotSupported:      "not-supported",
	CodeTimedOut:          "timed-out",
	CodeWouldBlock:        "would-block",
	CodeFailed:            "failed",
	CodeConnected:         "connected",
	CodeConnecting:        "connecting",
	CodeConnectionRefused: "connection-refused",
	CodeNotConnected:      "not-connected",
	CodeAddressInUse:      "address-in-use",
}

// ipcOnly lists the codes that §7 only defines under DomainIPC.
var ipcOnly = map[Code]bool{
	CodeConnected:         true,
	CodeConnecting:        true,
	CodeConnectionRefused: true,
	CodeNotConnected:      true,
	CodeAddressInUse:      true,
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// ValidIn reports whether c is part of the taxonomy for d, per §7: the ipc
// domain carries every io code plus a handful of connection-oriented ones.
func (c Code) ValidIn(d Domain) bool {
	if c == CodeNone {
		return true
	}
	if ipcOnly[c] {
		return d == DomainIPC
	}
	_, known := codeNames[c]
	return known && d != DomainNone
}
