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

//go:build !((darwin && !ios) || linux)

// Package shm has no SysV backend outside darwin/linux in this port; the
// original's Windows path (src/pshm-win.c) is not reconstructed here.
package shm

import liberr "github.com/sabouaram/sysruntime/errors"

// Perms restricts a handle's view of the segment.
type Perms int

const (
	ReadWrite Perms = iota
	ReadOnly
)

// Memory is a handle to a named shared-memory region.
type Memory struct{}

func New(name string, size int, perms Perms) (*Memory, error) {
	return nil, liberr.New(liberr.DomainIPC, liberr.CodeNotSupported, 0, "shm: not supported on this platform")
}

func (m *Memory) GetAddress() []byte              { return nil }
func (m *Memory) GetSize() int                    { return 0 }
func (m *Memory) Lock() (bool, error)              { return false, nil }
func (m *Memory) Unlock() (bool, error)            { return false, nil }
func (m *Memory) TakeOwnership() bool              { return false }
func (m *Memory) Close() error                     { return nil }
