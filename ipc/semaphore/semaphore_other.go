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

//go:build !linux

package semaphore

import liberr "github.com/sabouaram/sysruntime/errors"

// Named SysV semaphores are only wired up for Linux in this port; the
// original carries a separate Windows backend (src/psemaphore-win.c is
// not part of this retrieval pack) that this file does not attempt to
// reconstruct.
func notSupported(op string) error {
	return liberr.New(liberr.DomainIPC, liberr.CodeNotSupported, 0, "semaphore: "+op+" not supported on this platform")
}

func openOrCreateSet(key int32, mode Mode, initial uint16) (id int, created bool, err error) {
	return 0, false, notSupported("new")
}

func setFingerprint(id int, val uint16) error { return notSupported("new") }

func getFingerprint(id int) (uint16, error) { return 0, notSupported("new") }

func (s *Semaphore) op(delta int16) error { return notSupported("acquire/release") }

func removeSet(id int) error { return notSupported("close") }
