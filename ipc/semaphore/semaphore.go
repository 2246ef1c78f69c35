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

// Package semaphore is a named, cross-process counting semaphore: the same
// user-visible name, opened from unrelated processes, resolves to the same
// kernel object. Backed by a two-member SysV semaphore set on Linux: sem 0
// is the user-visible count, sem 1 carries a name fingerprint so a 31-bit
// platform-key collision between two different names is detected rather
// than silently handing one caller the other's semaphore.
package semaphore

import (
	"github.com/google/uuid"

	liberr "github.com/sabouaram/sysruntime/errors"
	"github.com/sabouaram/sysruntime/internal/rt"
	"github.com/sabouaram/sysruntime/logger"
)

// Mode selects how New resolves name against any existing OS object.
type Mode int

const (
	// Open fails if no object named name already exists.
	Open Mode = iota
	// Create fails if an object named name already exists.
	Create
	// OpenOrCreate attaches to an existing object or creates one.
	OpenOrCreate
)

// maxPlatformAttempts bounds the key-collision retry loop in New. Each
// retry salts the name with a fresh UUID before re-hashing, so the loop
// terminates with overwhelming probability on the first or second try;
// the bound only guards against a pathological hash collision streak.
const maxPlatformAttempts = 4

// maxCount is the largest value a SysV semaphore can hold (SEMVMX on Linux).
const maxCount = 0x7fff

// Semaphore is a handle to a named counting semaphore. The zero value is
// not usable; obtain one from New.
type Semaphore struct {
	name  string
	id    int
	owned bool
	log   logger.Logger
}

// SetLogger attaches an optional Logger: every failed Acquire, Release, or
// Close on s is also reported through it. Passing nil detaches logging.
func (s *Semaphore) SetLogger(l logger.Logger) {
	if s == nil {
		return
	}
	s.log = l
}

// platformKey derives a stable, positive, non-zero 31-bit SysV key from a
// user-visible name, per spec: "hashing + safe-character alphabet so the
// same user name always yields the same OS object across processes."
func platformKey(name string) int32 {
	return rt.PlatformKey("semaphore", name)
}

// fingerprint derives a 15-bit tag from name, independent of platformKey,
// stored in the set's second semaphore so a key collision against an
// unrelated name can be detected on open.
func fingerprint(name string) uint16 {
	return rt.Fingerprint("semaphore", name)
}

// New opens or creates the named semaphore described by mode, with an
// initial count of initial. initial must fit in 15 bits (SysV semaphores
// are unsigned short on the kernel side).
func New(name string, initial uint, mode Mode) (*Semaphore, error) {
	if name == "" {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "semaphore: name must not be empty")
	}
	if initial > maxCount {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "semaphore: initial_count exceeds platform maximum")
	}

	want := fingerprint(name)
	seed := name

	var lastErr error
	for attempt := 0; attempt < maxPlatformAttempts; attempt++ {
		key := platformKey(seed)

		id, created, err := openOrCreateSet(key, mode, uint16(initial))
		if err != nil {
			lastErr = err
			if attempt == 0 && mode != Create {
				// Open/OpenOrCreate failures (e.g. ENOENT under Open) are
				// not collisions; don't burn retries salting the key.
				return nil, err
			}
			if attempt == 0 {
				// Under Create, an existing set that carries this name's
				// fingerprint means the name is taken, not a key collision.
				if eid, oerr := openOrCreateSet(key, Open, 0); oerr == nil {
					if got, ferr := getFingerprint(eid); ferr == nil && got == want {
						return nil, err
					}
				}
			}
			seed = name + ":" + uuid.NewString()
			continue
		}

		if created {
			if err := setFingerprint(id, want); err != nil {
				return nil, err
			}
			return &Semaphore{name: name, id: id}, nil
		}

		got, err := getFingerprint(id)
		if err != nil {
			return nil, err
		}
		if got == want {
			return &Semaphore{name: name, id: id}, nil
		}

		// Two different names hashed to the same platform key. Salt and
		// retry rather than handing the caller someone else's semaphore.
		seed = name + ":" + uuid.NewString()
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, liberr.New(liberr.DomainIPC, liberr.CodeFailed, 0, "semaphore: could not resolve a collision-free platform key for "+name)
}

// TakeOwnership marks s for removal (IPC_RMID) when Close is next called
// on it. Without ownership, Close only detaches this handle; the kernel
// object and its count survive for other processes/handles.
func (s *Semaphore) TakeOwnership() bool {
	if s == nil {
		return false
	}
	s.owned = true
	return true
}

// Acquire decrements the semaphore, blocking while its count is zero.
// Reports false and populates err on failure.
func (s *Semaphore) Acquire() (bool, error) {
	if s == nil {
		return false, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "semaphore: acquire on nil handle")
	}
	if err := s.op(-1); err != nil {
		logger.Fail(s.log, "semaphore", "acquire", err)
		return false, err
	}
	return true, nil
}

// Release increments the semaphore, waking one blocked Acquire if any.
// Reports false and populates err on failure.
func (s *Semaphore) Release() (bool, error) {
	if s == nil {
		return false, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "semaphore: release on nil handle")
	}
	if err := s.op(1); err != nil {
		logger.Fail(s.log, "semaphore", "release", err)
		return false, err
	}
	return true, nil
}

// Close releases this handle. If TakeOwnership was called, the kernel
// object is also removed; other open handles to it then see errors on
// their next operation, matching SysV's IPC_RMID semantics.
func (s *Semaphore) Close() error {
	if s == nil {
		return nil
	}
	if s.owned {
		if err := removeSet(s.id); err != nil {
			logger.Fail(s.log, "semaphore", "close", err)
			return err
		}
	}
	return nil
}
