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

//go:build (darwin && !ios) || linux

// Package shm is named, cross-process shared memory: processes opening
// the same name see the same bytes. Backed by a SysV shared memory
// segment (golang.org/x/sys/unix.SysvShm*); guarded against concurrent
// access by an internally-owned named semaphore (component ipc/semaphore)
// sharing the region's name.
package shm

import (
	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/sysruntime/errors"
	"github.com/sabouaram/sysruntime/internal/rt"
	"github.com/sabouaram/sysruntime/ipc/semaphore"
	"github.com/sabouaram/sysruntime/logger"
)

// Perms restricts a handle's view of the segment; the kernel object
// itself is always readable and writable by its creator.
type Perms int

const (
	ReadWrite Perms = iota
	ReadOnly
)

// Memory is a handle to a named shared-memory region.
type Memory struct {
	name  string
	id    int
	data  []byte
	perms Perms
	guard *semaphore.Semaphore
	owned bool
	log   logger.Logger
}

// SetLogger attaches an optional Logger: every failed Close on m, and on
// its internally-owned guard semaphore, is also reported through it.
// Passing nil detaches logging.
func (m *Memory) SetLogger(l logger.Logger) {
	if m == nil {
		return
	}
	m.log = l
	m.guard.SetLogger(l)
}

func platformKey(name string) int32 {
	return rt.PlatformKey("shm", name)
}

// New opens or creates the named region. size is a request: if a region
// with this name already exists, the caller is attached to it at its
// existing size instead (per spec, "size may be adjusted to the existing
// region's size").
func New(name string, size int, perms Perms) (*Memory, error) {
	if name == "" {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shm: name must not be empty")
	}
	if size < 0 {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shm: size must not be negative")
	}

	key := platformKey(name)

	// size == 0 means "attach to whatever already exists at this name";
	// shmget only honors a non-zero size when it actually creates the
	// segment, per SysV semantics.
	id, err := unix.SysvShmGet(int(key), size, unix.IPC_CREAT|0600)
	if err == unix.EINVAL && size > 0 {
		// An existing segment smaller than size makes shmget fail with
		// EINVAL; attach to that segment at its own size instead.
		if eid, eerr := unix.SysvShmGet(int(key), 0, 0); eerr == nil {
			id, err = eid, nil
		}
	}
	if err != nil {
		return nil, wrapErrno(err, "shm: get")
	}

	attachFlag := 0
	if perms == ReadOnly {
		attachFlag = unix.SHM_RDONLY
	}

	data, err := unix.SysvShmAttach(id, 0, attachFlag)
	if err != nil {
		return nil, wrapErrno(err, "shm: attach")
	}

	guard, err := semaphore.New(name, 1, semaphore.OpenOrCreate)
	if err != nil {
		_ = unix.SysvShmDetach(data)
		return nil, err
	}

	return &Memory{name: name, id: id, data: data, perms: perms, guard: guard}, nil
}

// GetAddress returns the mapped region. Writing into it when perms is
// ReadOnly is undefined, same as writing through a read-only mapping in C.
func (m *Memory) GetAddress() []byte {
	if m == nil {
		return nil
	}
	return m.data
}

// GetSize returns the region's actual size, which may exceed the size
// requested from New if the region already existed.
func (m *Memory) GetSize() int {
	if m == nil {
		return 0
	}
	return len(m.data)
}

// Lock acquires the region's guard semaphore.
func (m *Memory) Lock() (bool, error) {
	if m == nil {
		return false, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shm: lock on nil handle")
	}
	return m.guard.Acquire()
}

// Unlock releases the region's guard semaphore.
func (m *Memory) Unlock() (bool, error) {
	if m == nil {
		return false, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shm: unlock on nil handle")
	}
	return m.guard.Release()
}

// TakeOwnership marks both the segment and its guard semaphore for
// removal when Close is next called on this handle.
func (m *Memory) TakeOwnership() bool {
	if m == nil {
		return false
	}
	m.owned = true
	m.guard.TakeOwnership()
	return true
}

// Close detaches this handle's mapping and closes its semaphore handle.
// If TakeOwnership was called, the kernel segment is also removed.
func (m *Memory) Close() error {
	if m == nil {
		return nil
	}
	var first error
	if len(m.data) > 0 {
		if err := unix.SysvShmDetach(m.data); err != nil && first == nil {
			first = wrapErrno(err, "shm: detach")
		}
	}
	if m.owned {
		if _, err := unix.SysvShmCtl(m.id, unix.IPC_RMID, nil); err != nil && first == nil {
			first = wrapErrno(err, "shm: remove")
		}
	}
	if err := m.guard.Close(); err != nil && first == nil {
		first = err
	}
	if first != nil {
		logger.Fail(m.log, "shm", "close", first)
	}
	return first
}

func wrapErrno(err error, msg string) error {
	errno, _ := err.(unix.Errno)
	switch errno {
	case unix.EEXIST:
		return liberr.New(liberr.DomainIPC, liberr.CodeAddressInUse, int(errno), msg, err)
	case unix.ENOENT:
		return liberr.New(liberr.DomainIPC, liberr.CodeNotAvailable, int(errno), msg, err)
	case unix.EACCES, unix.EPERM:
		return liberr.New(liberr.DomainIPC, liberr.CodeAccessDenied, int(errno), msg, err)
	case unix.ENOSPC, unix.ENOMEM:
		return liberr.New(liberr.DomainIPC, liberr.CodeNoResources, int(errno), msg, err)
	default:
		return liberr.New(liberr.DomainIPC, liberr.CodeFailed, int(errno), msg, err)
	}
}
