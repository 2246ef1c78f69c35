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

package socket_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysruntime/logger"
	libsocket "github.com/sabouaram/sysruntime/socket"
)

var _ = Describe("Address", func() {
	It("parses IPv4 and IPv6 literals without a DNS lookup", func() {
		a := libsocket.NewAddress("127.0.0.1", 8080)
		Expect(a.GetFamily()).To(Equal(libsocket.FamilyInet))
		Expect(a.GetAddress()).To(Equal("127.0.0.1"))
		Expect(a.GetPort()).To(Equal(uint16(8080)))

		a6 := libsocket.NewAddress("::1", 9090)
		Expect(a6.GetFamily()).To(Equal(libsocket.FamilyInet6))
		Expect(a6.IsLoopback()).To(BeTrue())
	})

	It("rejects a non-IP literal", func() {
		Expect(libsocket.NewAddress("not-an-ip", 0)).To(BeNil())
	})

	It("builds the any and loopback addresses for a family", func() {
		any4 := libsocket.NewAddressAny(libsocket.FamilyInet, 0)
		Expect(any4.IsAny()).To(BeTrue())

		loop4 := libsocket.NewAddressLoopback(libsocket.FamilyInet, 0)
		Expect(loop4.IsLoopback()).To(BeTrue())
	})

	It("is nil-safe on every accessor", func() {
		var a *libsocket.Address
		Expect(a.GetFamily()).To(Equal(libsocket.FamilyUnknown))
		Expect(a.GetPort()).To(Equal(uint16(0)))
		Expect(a.GetAddress()).To(Equal(""))
		Expect(a.IsAny()).To(BeFalse())
		Expect(a.IsLoopback()).To(BeFalse())
	})
})

var _ = Describe("Socket", func() {
	It("reports a syscall failure through an attached Logger", func() {
		s, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeStream, libsocket.ProtocolTCP)
		Expect(err).NotTo(HaveOccurred())

		buf := &bytes.Buffer{}
		s.SetLogger(logger.NewLogrus(buf, logger.DebugLevel))

		Expect(s.Close()).NotTo(HaveOccurred())

		// SetBufferSize doesn't gate on the closed flag the way check()-based
		// methods do, so it reaches setsockopt on the now-closed fd, which
		// fails (EBADF); GetLastError surfaces it and, with a Logger
		// attached, it's also written to buf.
		_, bufErr := s.SetBufferSize(libsocket.DirectionSend, 4096)
		Expect(bufErr).To(HaveOccurred())
		Expect(s.GetLastError()).To(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("socket"))
	})

	It("round-trips a byte stream over a TCP loopback connection", func() {
		listener, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeStream, libsocket.ProtocolTCP)
		Expect(err).NotTo(HaveOccurred())
		defer listener.Close()

		Expect(listener.Bind(libsocket.NewAddressLoopback(libsocket.FamilyInet, 0), true)).NotTo(HaveOccurred())
		Expect(listener.Listen()).NotTo(HaveOccurred())

		local, err := listener.GetLocalAddress()
		Expect(err).NotTo(HaveOccurred())

		accepted := make(chan *libsocket.Socket, 1)
		go func() {
			conn, err := listener.Accept()
			Expect(err).NotTo(HaveOccurred())
			accepted <- conn
		}()

		client, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeStream, libsocket.ProtocolTCP)
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		Expect(client.Connect(libsocket.NewAddress("127.0.0.1", local.GetPort()))).NotTo(HaveOccurred())
		Expect(client.IsConnected()).To(BeTrue())

		server := <-accepted
		defer server.Close()

		n, err := client.Send([]byte("ping"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(4))

		buf := make([]byte, 16)
		n, err = server.Receive(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("ping"))
	})

	It("exchanges a datagram over UDP loopback", func() {
		recvSock, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeDatagram, libsocket.ProtocolUDP)
		Expect(err).NotTo(HaveOccurred())
		defer recvSock.Close()
		Expect(recvSock.Bind(libsocket.NewAddressLoopback(libsocket.FamilyInet, 0), true)).NotTo(HaveOccurred())

		local, err := recvSock.GetLocalAddress()
		Expect(err).NotTo(HaveOccurred())

		sendSock, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeDatagram, libsocket.ProtocolUDP)
		Expect(err).NotTo(HaveOccurred())
		defer sendSock.Close()

		n, err := sendSock.SendTo(libsocket.NewAddress("127.0.0.1", local.GetPort()), []byte("hello"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(5))

		buf := make([]byte, 16)
		n, from, err := recvSock.ReceiveFrom(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello"))
		Expect(from.GetFamily()).To(Equal(libsocket.FamilyInet))
	})

	It("reports Close as idempotent", func() {
		s, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeStream, libsocket.ProtocolTCP)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Close()).NotTo(HaveOccurred())
		Expect(s.Close()).NotTo(HaveOccurred())
	})

	It("toggles the logical blocking flag without touching the fd's own state", func() {
		s, err := libsocket.New(libsocket.FamilyInet, libsocket.TypeStream, libsocket.ProtocolTCP)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		Expect(s.GetBlocking()).To(BeTrue())
		s.SetBlocking(false)
		Expect(s.GetBlocking()).To(BeFalse())
	})

	It("is a no-op, not a panic, on a nil socket", func() {
		var s *libsocket.Socket
		Expect(s.GetFD()).To(Equal(-1))
		Expect(s.GetFamily()).To(Equal(libsocket.FamilyUnknown))
		Expect(s.IsConnected()).To(BeFalse())
		Expect(s.Close()).NotTo(HaveOccurred())
	})
})
