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

// IOConditionWait blocks (subject to the socket's timeout) until
// condition is satisfied, via poll. A zero or negative timeout means
// wait forever, matching the original's "timeout <= 0 means infinite".
func (s *Socket) IOConditionWait(condition IOCondition) error {
	if s == nil {
		return invalidArgf("socket: condition wait on nil handle")
	}
	if err := s.check(); err != nil {
		return err
	}

	timeout := -1
	if s.timeoutMs > 0 {
		timeout = s.timeoutMs
	}

	events := int16(unix.POLLIN)
	if condition == ConditionPollOut {
		events = int16(unix.POLLOUT)
	}

	for {
		pfd := []unix.PollFd{{Fd: int32(s.fd), Events: events}}
		n, err := unix.Poll(pfd, timeout)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: poll"))
			return werr
		}
		if n == 0 {
			werr := s.fail(liberr.New(liberr.DomainIPC, liberr.CodeTimedOut, 0, "socket: condition wait timed out"))
			return werr
		}
		return nil
	}
}

// Bind binds the socket to a local address. allowReuse sets SO_REUSEADDR
// on a best-effort basis before binding; a failure to set it is ignored,
// matching the original's "this is a best effort thing mainly" comment.
func (s *Socket) Bind(address *Address, allowReuse bool) error {
	if s == nil || address == nil {
		return invalidArgf("socket: bind with nil handle or address")
	}
	if err := s.check(); err != nil {
		return err
	}

	val := 0
	if allowReuse {
		val = 1
	}
	_ = unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, val)

	sa, err := address.toSockaddr()
	if err != nil {
		return err
	}
	if err := unix.Bind(s.fd, sa); err != nil {
		werr := s.fail(wrapErrno(err, "socket: bind"))
		return werr
	}
	return nil
}

// Connect connects the socket to address. For a blocking socket whose
// connect starts asynchronously (EINPROGRESS), it waits for
// writability and then checks SO_ERROR, same as the original's
// io_condition_wait + check_connect_result pairing.
func (s *Socket) Connect(address *Address) error {
	if s == nil || address == nil {
		return invalidArgf("socket: connect with nil handle or address")
	}
	if err := s.check(); err != nil {
		return err
	}

	sa, err := address.toSockaddr()
	if err != nil {
		return err
	}

	for {
		err := unix.Connect(s.fd, sa)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			if isWouldBlock(err) || isInProgress(err) {
				if s.blocking {
					if werr := s.IOConditionWait(ConditionPollOut); werr == nil {
						if s.CheckConnectResult() {
							break
						}
					}
				}
			}
			werr := s.fail(wrapErrno(err, "socket: connect"))
			return werr
		}
		break
	}

	s.connected = true
	return nil
}

// Listen marks the socket as passive, ready to Accept.
func (s *Socket) Listen() error {
	if s == nil {
		return invalidArgf("socket: listen on nil handle")
	}
	if err := s.check(); err != nil {
		return err
	}
	if err := unix.Listen(s.fd, s.listenBacklog); err != nil {
		werr := s.fail(wrapErrno(err, "socket: listen"))
		return werr
	}
	s.listening = true
	return nil
}

// Accept waits (if blocking) for a pending connection and returns a new
// Socket for it, inheriting the listener's protocol.
func (s *Socket) Accept() (*Socket, error) {
	if s == nil {
		return nil, invalidArgf("socket: accept on nil handle")
	}
	if err := s.check(); err != nil {
		return nil, err
	}

	for {
		if s.blocking {
			if err := s.IOConditionWait(ConditionPollIn); err != nil {
				return nil, err
			}
		}

		fd, _, err := unix.Accept4(s.fd, unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			if s.blocking && isWouldBlock(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: accept"))
			return nil, werr
		}

		child, err := NewFromFD(fd)
		if err != nil {
			_ = unix.Close(fd)
			return nil, err
		}
		child.protocol = s.protocol
		return child, nil
	}
}

// Receive reads into buf, waiting for readability first if blocking.
func (s *Socket) Receive(buf []byte) (int, error) {
	if s == nil || buf == nil {
		return -1, invalidArgf("socket: receive with nil handle or buffer")
	}
	if err := s.check(); err != nil {
		return -1, err
	}

	for {
		if s.blocking {
			if err := s.IOConditionWait(ConditionPollIn); err != nil {
				return -1, err
			}
		}

		n, err := unix.Read(s.fd, buf)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			if s.blocking && isWouldBlock(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: receive"))
			return -1, werr
		}
		return n, nil
	}
}

// ReceiveFrom reads a datagram into buf, returning its source address.
func (s *Socket) ReceiveFrom(buf []byte) (int, *Address, error) {
	if s == nil || len(buf) == 0 {
		return -1, nil, invalidArgf("socket: receive-from with nil handle or empty buffer")
	}
	if err := s.check(); err != nil {
		return -1, nil, err
	}

	for {
		if s.blocking {
			if err := s.IOConditionWait(ConditionPollIn); err != nil {
				return -1, nil, err
			}
		}

		n, from, err := unix.Recvfrom(s.fd, buf, 0)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			if s.blocking && isWouldBlock(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: receive-from"))
			return -1, nil, werr
		}
		return n, addressFromSockaddr(from), nil
	}
}

// Send writes buf, waiting for writability first if blocking.
func (s *Socket) Send(buf []byte) (int, error) {
	if s == nil || len(buf) == 0 {
		return -1, invalidArgf("socket: send with nil handle or empty buffer")
	}
	if err := s.check(); err != nil {
		return -1, err
	}

	for {
		if s.blocking {
			if err := s.IOConditionWait(ConditionPollOut); err != nil {
				return -1, err
			}
		}

		n, err := unix.Write(s.fd, buf)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			if s.blocking && isWouldBlock(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: send"))
			return -1, werr
		}
		return n, nil
	}
}

// SendTo writes a datagram to address.
func (s *Socket) SendTo(address *Address, buf []byte) (int, error) {
	if s == nil || address == nil || buf == nil {
		return -1, invalidArgf("socket: send-to with nil handle, address, or buffer")
	}
	if err := s.check(); err != nil {
		return -1, err
	}

	sa, err := address.toSockaddr()
	if err != nil {
		return -1, err
	}

	for {
		if s.blocking {
			if err := s.IOConditionWait(ConditionPollOut); err != nil {
				return -1, err
			}
		}

		if err := unix.Sendto(s.fd, buf, 0, sa); err != nil {
			if isInterrupted(err) {
				continue
			}
			if s.blocking && isWouldBlock(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: send-to"))
			return -1, werr
		}
		return len(buf), nil
	}
}

// Shutdown disables further reads and/or writes without closing the fd.
func (s *Socket) Shutdown(shutdownRead, shutdownWrite bool) error {
	if s == nil {
		return invalidArgf("socket: shutdown on nil handle")
	}
	if err := s.check(); err != nil {
		return err
	}
	if !shutdownRead && !shutdownWrite {
		return nil
	}

	how := unix.SHUT_WR
	switch {
	case shutdownRead && shutdownWrite:
		how = unix.SHUT_RDWR
	case shutdownRead:
		how = unix.SHUT_RD
	}

	if err := unix.Shutdown(s.fd, how); err != nil {
		werr := s.fail(wrapErrno(err, "socket: shutdown"))
		return werr
	}
	if shutdownRead && shutdownWrite {
		s.connected = false
	}
	return nil
}

// Close closes the underlying fd. Idempotent: closing an already-closed
// socket returns nil rather than an error.
func (s *Socket) Close() error {
	if s == nil {
		return nil
	}
	if s.closed {
		return nil
	}

	for {
		err := unix.Close(s.fd)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			werr := s.fail(wrapErrno(err, "socket: close"))
			return werr
		}
		break
	}

	s.connected = false
	s.closed = true
	s.listening = false
	return nil
}

// CheckConnectResult consults SO_ERROR to resolve a non-blocking
// connect's outcome, updating IsConnected and the last error.
func (s *Socket) CheckConnectResult() bool {
	if s == nil {
		return false
	}

	val, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		s.fail(wrapErrno(err, "socket: get SO_ERROR"))
		return false
	}

	if val != 0 {
		s.fail(wrapErrno(unix.Errno(val), "socket: connect failed"))
	} else {
		s.lastErr = nil
	}

	s.connected = val == 0
	return val == 0
}

// GetLocalAddress returns the address this socket is bound to.
func (s *Socket) GetLocalAddress() (*Address, error) {
	if s == nil {
		return nil, invalidArgf("socket: local address on nil handle")
	}
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		werr := s.fail(wrapErrno(err, "socket: getsockname"))
		return nil, werr
	}
	return addressFromSockaddr(sa), nil
}

// GetRemoteAddress returns the address of the connected peer.
func (s *Socket) GetRemoteAddress() (*Address, error) {
	if s == nil {
		return nil, invalidArgf("socket: remote address on nil handle")
	}
	sa, err := unix.Getpeername(s.fd)
	if err != nil {
		werr := s.fail(wrapErrno(err, "socket: getpeername"))
		return nil, werr
	}
	return addressFromSockaddr(sa), nil
}
