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

//go:build linux

package socket

import (
	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/sysruntime/errors"
)

func invalidArgf(msg string) error {
	return liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, msg)
}

// wrapErrno mirrors psocket.c's errno-to-PSocketError translation table:
// the same errno groups into the same liberr.Code here.
func wrapErrno(err error, msg string) error {
	errno, ok := err.(unix.Errno)
	if !ok {
		return liberr.New(liberr.DomainIPC, liberr.CodeFailed, 0, msg, err)
	}

	code := liberr.CodeFailed
	switch errno {
	case unix.EACCES, unix.EPERM:
		code = liberr.CodeAccessDenied
	case unix.ENOMEM, unix.ENOSR, unix.ENOBUFS, unix.ENFILE, unix.EMFILE:
		code = liberr.CodeNoResources
	case unix.EINVAL, unix.EBADF, unix.ENOTSOCK, unix.EFAULT, unix.EPROTOTYPE:
		code = liberr.CodeInvalidArgument
	case unix.ENOTSUP, unix.ENOPROTOOPT, unix.EPROTONOSUPPORT, unix.EAFNOSUPPORT, unix.EOPNOTSUPP:
		code = liberr.CodeNotSupported
	case unix.EADDRNOTAVAIL, unix.ENETUNREACH, unix.ENETDOWN, unix.EHOSTDOWN, unix.EHOSTUNREACH:
		code = liberr.CodeNotAvailable
	case unix.EINPROGRESS, unix.EALREADY:
		code = liberr.CodeConnecting
	case unix.EISCONN:
		code = liberr.CodeConnected
	case unix.ECONNREFUSED:
		code = liberr.CodeConnectionRefused
	case unix.ENOTCONN:
		code = liberr.CodeNotConnected
	case unix.ECONNABORTED:
		code = liberr.CodeAborted
	case unix.EADDRINUSE:
		code = liberr.CodeAddressInUse
	case unix.ETIMEDOUT:
		code = liberr.CodeTimedOut
	case unix.EAGAIN, unix.EWOULDBLOCK:
		code = liberr.CodeWouldBlock
	}

	return liberr.New(liberr.DomainIPC, code, int(errno), msg, err)
}

func isWouldBlock(err error) bool {
	errno, ok := err.(unix.Errno)
	return ok && (errno == unix.EAGAIN || errno == unix.EWOULDBLOCK)
}

func isInProgress(err error) bool {
	errno, ok := err.(unix.Errno)
	return ok && errno == unix.EINPROGRESS
}

func isInterrupted(err error) bool {
	errno, ok := err.(unix.Errno)
	return ok && errno == unix.EINTR
}
