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
	"net"

	"golang.org/x/sys/unix"
)

// Family is the address family a Socket or Address belongs to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyInet
	FamilyInet6
)

func nativeFamily(f Family) int {
	switch f {
	case FamilyInet:
		return unix.AF_INET
	case FamilyInet6:
		return unix.AF_INET6
	default:
		return unix.AF_UNSPEC
	}
}

// Address is an IP address plus port, with the IPv6-only flow info and
// scope id carried alongside since they round-trip through the native
// sockaddr_in6 the same way the port does.
type Address struct {
	Family   Family
	IP       net.IP
	Port     uint16
	FlowInfo uint32
	ScopeID  uint32
}

// NewAddress parses a dotted-quad or colon-hex literal; it never performs
// a DNS lookup, matching p_socket_address_new's inet_pton-only behavior.
func NewAddress(address string, port uint16) *Address {
	ip := net.ParseIP(address)
	if ip == nil {
		return nil
	}
	if v4 := ip.To4(); v4 != nil {
		return &Address{Family: FamilyInet, IP: v4, Port: port}
	}
	return &Address{Family: FamilyInet6, IP: ip.To16(), Port: port}
}

// NewAddressAny builds the wildcard address (0.0.0.0 or ::) for family.
func NewAddressAny(family Family, port uint16) *Address {
	switch family {
	case FamilyInet:
		return &Address{Family: FamilyInet, IP: net.IPv4zero.To4(), Port: port}
	case FamilyInet6:
		return &Address{Family: FamilyInet6, IP: net.IPv6unspecified, Port: port}
	default:
		return nil
	}
}

// NewAddressLoopback builds 127.0.0.1 or ::1 for family.
func NewAddressLoopback(family Family, port uint16) *Address {
	switch family {
	case FamilyInet:
		return &Address{Family: FamilyInet, IP: net.IPv4(127, 0, 0, 1).To4(), Port: port}
	case FamilyInet6:
		return &Address{Family: FamilyInet6, IP: net.IPv6loopback, Port: port}
	default:
		return nil
	}
}

func (a *Address) GetFamily() Family {
	if a == nil {
		return FamilyUnknown
	}
	return a.Family
}

func (a *Address) GetPort() uint16 {
	if a == nil {
		return 0
	}
	return a.Port
}

// GetAddress renders the IP as its string form; empty if addr is nil or
// has no family.
func (a *Address) GetAddress() string {
	if a == nil || a.Family == FamilyUnknown {
		return ""
	}
	return a.IP.String()
}

func (a *Address) GetFlowInfo() uint32 {
	if a == nil || a.Family != FamilyInet6 {
		return 0
	}
	return a.FlowInfo
}

func (a *Address) GetScopeID() uint32 {
	if a == nil || a.Family != FamilyInet6 {
		return 0
	}
	return a.ScopeID
}

func (a *Address) SetFlowInfo(flowInfo uint32) {
	if a == nil || a.Family != FamilyInet6 {
		return
	}
	a.FlowInfo = flowInfo
}

func (a *Address) SetScopeID(scopeID uint32) {
	if a == nil || a.Family != FamilyInet6 {
		return
	}
	a.ScopeID = scopeID
}

// IsAny reports whether addr is the wildcard address for its family.
func (a *Address) IsAny() bool {
	if a == nil || a.Family == FamilyUnknown {
		return false
	}
	return a.IP.IsUnspecified()
}

// IsLoopback reports whether addr is in 127.0.0.0/8 (IPv4) or is ::1.
func (a *Address) IsLoopback() bool {
	if a == nil || a.Family == FamilyUnknown {
		return false
	}
	return a.IP.IsLoopback()
}

// toSockaddr converts to the golang.org/x/sys/unix representation used
// directly by Bind/Connect/Sendto/Accept, standing in for the original's
// p_socket_address_to_native.
func (a *Address) toSockaddr() (unix.Sockaddr, error) {
	if a == nil || a.Family == FamilyUnknown {
		return nil, invalidArgf("address: unsupported or nil address")
	}
	switch a.Family {
	case FamilyInet:
		sa := &unix.SockaddrInet4{Port: int(a.Port)}
		copy(sa.Addr[:], a.IP.To4())
		return sa, nil
	case FamilyInet6:
		sa := &unix.SockaddrInet6{Port: int(a.Port)}
		copy(sa.Addr[:], a.IP.To16())
		return sa, nil
	default:
		return nil, invalidArgf("address: unsupported family")
	}
}

// addressFromSockaddr is the inverse of toSockaddr, standing in for the
// original's p_socket_address_new_from_native.
func addressFromSockaddr(sa unix.Sockaddr) *Address {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		ip := make(net.IP, net.IPv4len)
		copy(ip, v.Addr[:])
		return &Address{Family: FamilyInet, IP: ip, Port: uint16(v.Port)}
	case *unix.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, v.Addr[:])
		return &Address{Family: FamilyInet6, IP: ip, Port: uint16(v.Port), ScopeID: v.ZoneId}
	default:
		return nil
	}
}
