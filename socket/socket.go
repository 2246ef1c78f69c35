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

// Package socket is a raw, low-level BSD socket wrapper built directly on
// golang.org/x/sys/unix rather than net.Conn: every socket is created
// non-blocking at the OS level, and a logical "blocking" flag (true by
// default) makes the library emulate blocking semantics itself by
// waiting on poll before each syscall that could return EWOULDBLOCK.
// This mirrors what applications reaching for raw socket control (packet
// inspection, custom framing, accept-loop tuning) need that net.Conn's
// higher-level blocking-by-default model does not expose.
package socket

import (
	"sync"

	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/sysruntime/errors"
	"github.com/sabouaram/sysruntime/logger"
)

// Type is the socket's communication semantics.
type Type int

const (
	TypeUnknown Type = iota
	TypeStream
	TypeDatagram
	TypeSeqPacket
)

// Protocol identifies the wire protocol layered under Type; -1 means
// "unspecified, let the OS pick" exactly as in the native new(family,
// type, protocol) call.
type Protocol int

const (
	ProtocolUnknown Protocol = -1
	ProtocolDefault Protocol = 0
	ProtocolTCP     Protocol = unix.IPPROTO_TCP
	ProtocolUDP     Protocol = unix.IPPROTO_UDP
)

// Direction selects which buffer SetBufferSize resizes.
type Direction int

const (
	DirectionReceive Direction = iota
	DirectionSend
)

// IOCondition is what IOConditionWait polls for.
type IOCondition int

const (
	ConditionPollIn IOCondition = iota
	ConditionPollOut
)

// defaultBacklog is listen()'s default backlog, per spec §4.L.
const defaultBacklog = 5

// Socket is a handle to one BSD socket. The zero value is not usable;
// obtain one from New or NewFromFD.
type Socket struct {
	mu sync.Mutex

	fd       int
	family   Family
	sockType Type
	protocol Protocol

	blocking       bool
	listenBacklog  int
	timeoutMs      int
	keepalive      bool
	listening      bool
	connected      bool
	closed         bool

	lastErr error
	log     logger.Logger
}

// SetLogger attaches an optional Logger: every syscall failure recorded as
// GetLastError is also reported through it. Passing nil detaches logging.
func (s *Socket) SetLogger(l logger.Logger) {
	if s == nil {
		return
	}
	s.log = l
}

// fail records err as the socket's last error and reports it through the
// attached Logger, if any. Returns err unchanged so call sites can chain it
// straight into a return statement.
func (s *Socket) fail(err error) error {
	s.lastErr = err
	logger.Fail(s.log, "socket", "io", err)
	return err
}

// New creates a fresh, unconnected socket for family/typ/protocol. The
// new fd is always set non-blocking at the OS level and close-on-exec;
// the logical blocking flag starts true.
func New(family Family, typ Type, protocol Protocol) (*Socket, error) {
	if family == FamilyUnknown || typ == TypeUnknown || protocol == ProtocolUnknown {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "socket: family/type/protocol must be specified")
	}

	nativeType, err := nativeType(typ)
	if err != nil {
		return nil, err
	}
	nativeType |= unix.SOCK_CLOEXEC | unix.SOCK_NONBLOCK

	fd, errno := unix.Socket(int(nativeFamily(family)), nativeType, int(protocol))
	if errno != nil {
		return nil, wrapErrno(errno, "socket: create")
	}

	s := &Socket{
		fd: fd, family: family, sockType: typ, protocol: protocol,
		blocking: true, listenBacklog: defaultBacklog,
	}
	return s, nil
}

// NewFromFD wraps an existing, already-connected-or-bound file
// descriptor, probing SO_TYPE, getsockname, and SO_KEEPALIVE to
// reconstruct the socket's view of itself. Inconsistencies surface as a
// DomainIPC failure rather than a half-populated handle.
func NewFromFD(fd int) (*Socket, error) {
	if fd < 0 {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "socket: negative fd")
	}

	s := &Socket{fd: fd, blocking: true, listenBacklog: defaultBacklog}

	typVal, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_TYPE)
	if err != nil {
		return nil, wrapErrno(err, "socket: get SO_TYPE")
	}
	s.sockType = typeFromNative(typVal)

	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil, wrapErrno(err, "socket: getsockname")
	}
	addr := addressFromSockaddr(sa)
	if addr != nil {
		s.family = addr.Family
	}

	if s.family != FamilyUnknown {
		if _, err := unix.Getpeername(fd); err == nil {
			s.connected = true
		}
	}

	if ka, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE); err == nil {
		s.keepalive = ka != 0
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, wrapErrno(err, "socket: set non-blocking")
	}

	return s, nil
}

func nativeType(t Type) (int, error) {
	switch t {
	case TypeStream:
		return unix.SOCK_STREAM, nil
	case TypeDatagram:
		return unix.SOCK_DGRAM, nil
	case TypeSeqPacket:
		return unix.SOCK_SEQPACKET, nil
	default:
		return 0, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "socket: unknown type")
	}
}

func typeFromNative(v int) Type {
	switch v {
	case unix.SOCK_STREAM:
		return TypeStream
	case unix.SOCK_DGRAM:
		return TypeDatagram
	case unix.SOCK_SEQPACKET:
		return TypeSeqPacket
	default:
		return TypeUnknown
	}
}

// GetFD returns the underlying file descriptor, or -1 for a nil Socket.
func (s *Socket) GetFD() int {
	if s == nil {
		return -1
	}
	return s.fd
}

func (s *Socket) GetFamily() Family {
	if s == nil {
		return FamilyUnknown
	}
	return s.family
}

func (s *Socket) GetSocketType() Type {
	if s == nil {
		return TypeUnknown
	}
	return s.sockType
}

func (s *Socket) GetProtocol() Protocol {
	if s == nil {
		return ProtocolUnknown
	}
	return s.protocol
}

func (s *Socket) GetKeepalive() bool {
	if s == nil {
		return false
	}
	return s.keepalive
}

func (s *Socket) GetBlocking() bool {
	if s == nil {
		return false
	}
	return s.blocking
}

func (s *Socket) GetListenBacklog() int {
	if s == nil {
		return -1
	}
	return s.listenBacklog
}

func (s *Socket) GetTimeout() int {
	if s == nil {
		return -1
	}
	return s.timeoutMs
}

func (s *Socket) IsConnected() bool {
	if s == nil {
		return false
	}
	return s.connected
}

func (s *Socket) GetLastError() error {
	if s == nil {
		return nil
	}
	return s.lastErr
}

func (s *Socket) ClearLastError() {
	if s == nil {
		return
	}
	s.lastErr = nil
}

// SetKeepalive toggles SO_KEEPALIVE, a no-op if it already matches.
func (s *Socket) SetKeepalive(keepalive bool) {
	if s == nil || s.keepalive == keepalive {
		return
	}
	val := 0
	if keepalive {
		val = 1
	}
	if err := unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, val); err != nil {
		s.fail(wrapErrno(err, "socket: set keepalive"))
		return
	}
	s.keepalive = keepalive
}

// SetBlocking sets the logical blocking flag (the fd itself always stays
// non-blocking at the OS level; blocking is emulated via poll).
func (s *Socket) SetBlocking(blocking bool) {
	if s == nil {
		return
	}
	s.blocking = blocking
}

// SetListenBacklog is ignored once Listen has already succeeded.
func (s *Socket) SetListenBacklog(backlog int) {
	if s == nil || s.listening {
		return
	}
	s.listenBacklog = backlog
}

// SetTimeout sets the poll timeout in milliseconds used by
// IOConditionWait; timeoutMs <= 0 means "no timeout" (poll indefinitely).
func (s *Socket) SetTimeout(timeoutMs int) {
	if s == nil {
		return
	}
	if timeoutMs < 0 {
		timeoutMs = 0
	}
	s.timeoutMs = timeoutMs
}

// SetBufferSize resizes SO_RCVBUF or SO_SNDBUF.
func (s *Socket) SetBufferSize(dir Direction, size int) (bool, error) {
	if s == nil {
		return false, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "socket: nil handle")
	}
	opt := unix.SO_SNDBUF
	if dir == DirectionReceive {
		opt = unix.SO_RCVBUF
	}
	if err := unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, opt, size); err != nil {
		werr := s.fail(wrapErrno(err, "socket: set buffer size"))
		return false, werr
	}
	return true, nil
}

func (s *Socket) check() error {
	if s.closed {
		return liberr.New(liberr.DomainIPC, liberr.CodeNotAvailable, 0, "socket: already closed")
	}
	return nil
}
