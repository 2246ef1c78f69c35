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

// Package hash defines the streaming digest contract shared by every
// algorithm under hash/ (md5, sha1, sha2, sha3, gost3411): a context moves
// through initial -> updating -> finished, update is a no-op past finished,
// and digest/get_string require finished.
//
// Each algorithm is a hand-rolled streaming state machine, not a wrapper
// around an existing digest implementation, so block buffering and endian
// handling are visible and testable at this layer.
package hash

import (
	"encoding/hex"

	"github.com/sabouaram/sysruntime/errors"
)

// State is a hash context's position in its lifecycle.
type State uint8

const (
	StateInitial State = iota
	StateUpdating
	StateFinished
)

// Digest is the common surface every algorithm package's context satisfies.
type Digest interface {
	// Update appends data to the stream. A no-op once Finish has been called.
	Update(data []byte)
	// Finish is terminal: no further Update takes effect until Reset.
	Finish()
	// Sum returns the raw digest bytes. Error if the context isn't finished.
	Sum() ([]byte, error)
	// String returns the lowercase hex digest. Error if the context isn't finished.
	String() (string, error)
	// Reset returns the context to its initial state.
	Reset()
	// State reports the context's current lifecycle position.
	State() State
	// Size returns the algorithm's fixed digest length, in bytes.
	Size() int
	// BlockSize returns the algorithm's internal block size, in bytes.
	BlockSize() int
}

// ErrNotFinished is returned by Sum/String when the context has not been
// finished yet, per the "digest must be called on a finished context" rule.
func ErrNotFinished() error {
	return errors.Invalid("hash: context is not finished")
}

// ToHex is the shared get_string helper: lowercase hex, no separators.
func ToHex(digest []byte) string {
	return hex.EncodeToString(digest)
}
