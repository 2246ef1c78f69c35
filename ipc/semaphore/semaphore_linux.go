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

package semaphore

import (
	"unsafe"

	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/sysruntime/errors"
)

// nsems is the fixed set size: slot 0 is the user-visible count, slot 1
// carries the name fingerprint.
const (
	nsems         = 2
	valueSem      = 0
	fingerprintSem = 1

	// Linux semctl cmd values (bits/sem.h), not exported by x/sys/unix.
	getval = 12
	setval = 16
)

// sembuf mirrors struct sembuf from <sys/sem.h> for SYS_SEMOP.
type sembuf struct {
	semNum uint16
	semOp  int16
	semFlg int16
}

func semget(key int32, flags int) (int, error) {
	id, _, errno := unix.Syscall(unix.SYS_SEMGET, uintptr(key), uintptr(nsems), uintptr(flags))
	if errno != 0 {
		return 0, errno
	}
	return int(id), nil
}

func semctl(id, num, cmd int, arg uintptr) (int, error) {
	r, _, errno := unix.Syscall6(unix.SYS_SEMCTL, uintptr(id), uintptr(num), uintptr(cmd), arg, 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(r), nil
}

func semop(id int, ops []sembuf) error {
	_, _, errno := unix.Syscall(unix.SYS_SEMOP, uintptr(id), uintptr(unsafe.Pointer(&ops[0])), uintptr(len(ops)))
	if errno != 0 {
		return errno
	}
	return nil
}

// openOrCreateSet resolves mode against the platform key, returning the
// set's id and whether this call created it (in which case the caller
// still must seed both semaphore values).
func openOrCreateSet(key int32, mode Mode, initial uint16) (id int, created bool, err error) {
	const perm = 0600

	switch mode {
	case Create:
		id, err = semget(key, int(unix.IPC_CREAT|unix.IPC_EXCL|perm))
		if err != nil {
			return 0, false, wrapErrno(err, "semaphore: create")
		}
		if e := semctl(id, valueSem, setval, uintptr(initial)); e != nil {
			return 0, false, e
		}
		return id, true, nil

	case Open:
		id, err = semget(key, 0)
		if err != nil {
			return 0, false, wrapErrno(err, "semaphore: open")
		}
		return id, false, nil

	case OpenOrCreate:
		id, err = semget(key, int(unix.IPC_CREAT|unix.IPC_EXCL|perm))
		if err == nil {
			if e := semctl(id, valueSem, setval, uintptr(initial)); e != nil {
				return 0, false, e
			}
			return id, true, nil
		}
		id, err = semget(key, 0)
		if err != nil {
			return 0, false, wrapErrno(err, "semaphore: open-or-create")
		}
		return id, false, nil

	default:
		return 0, false, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "semaphore: unknown mode")
	}
}

func setFingerprint(id int, val uint16) error {
	if _, err := semctl(id, fingerprintSem, setval, uintptr(val)); err != nil {
		return err
	}
	return nil
}

func getFingerprint(id int) (uint16, error) {
	v, err := semctl(id, fingerprintSem, getval, 0)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func (s *Semaphore) op(delta int16) error {
	ops := []sembuf{{semNum: valueSem, semOp: delta, semFlg: 0}}
	if err := semop(s.id, ops); err != nil {
		return wrapErrno(err, "semaphore: op")
	}
	return nil
}

func removeSet(id int) error {
	if _, err := semctl(id, 0, unix.IPC_RMID, 0); err != nil {
		return wrapErrno(err, "semaphore: remove")
	}
	return nil
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
	case unix.EINTR:
		return liberr.New(liberr.DomainIPC, liberr.CodeAborted, int(errno), msg, err)
	default:
		return liberr.New(liberr.DomainIPC, liberr.CodeFailed, int(errno), msg, err)
	}
}
