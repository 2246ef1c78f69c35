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

// Package shmbuffer is a single-producer/single-consumer ring buffer laid
// directly over a named shared-memory region (ipc/shm): the first 8 bytes
// of the region are a read position and a write position, each a little-
// endian u32; everything after that is the ring's data area. Guarded by
// the region's own semaphore (ipc/semaphore), same as ipc/shm's Lock.
package shmbuffer

import (
	"encoding/binary"

	liberr "github.com/sabouaram/sysruntime/errors"
	"github.com/sabouaram/sysruntime/ipc/shm"
	"github.com/sabouaram/sysruntime/logger"
)

const (
	readOffset  = 0
	writeOffset = 4
	dataOffset  = 8
)

// Buffer is a handle to a named ring buffer.
type Buffer struct {
	mem *shm.Memory
	// size is the ring's modulo base: the data area's length. One slot of
	// it is always left empty to disambiguate a full ring from an empty
	// one, so the greatest free_space ever reported is size-1.
	size int
}

// New opens or creates the named ring buffer. size is the data area's
// requested capacity in bytes; the underlying region is size+9 bytes
// (8-byte header plus the one-slot full/empty gap). Passing size 0
// attaches to an already-existing buffer of this name at its real size,
// without requesting one.
func New(name string, size int) (*Buffer, error) {
	if name == "" {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: name must not be empty")
	}
	if size < 0 {
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: size must not be negative")
	}

	regionSize := 0
	if size != 0 {
		regionSize = size + dataOffset + 1
	}

	mem, err := shm.New(name, regionSize, shm.ReadWrite)
	if err != nil {
		return nil, err
	}

	modBase := mem.GetSize() - dataOffset
	if modBase <= 0 {
		_ = mem.Close()
		return nil, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: too small memory segment opened")
	}

	return &Buffer{mem: mem, size: modBase}, nil
}

// SetLogger attaches an optional Logger, forwarded to the underlying
// region: every failure Close reports on it is also reported through l.
// Passing nil detaches logging.
func (b *Buffer) SetLogger(l logger.Logger) {
	if b == nil {
		return
	}
	b.mem.SetLogger(l)
}

// TakeOwnership marks the underlying region for removal when Close is
// next called.
func (b *Buffer) TakeOwnership() bool {
	if b == nil {
		return false
	}
	return b.mem.TakeOwnership()
}

// Close releases the underlying region.
func (b *Buffer) Close() error {
	if b == nil {
		return nil
	}
	return b.mem.Close()
}

func (b *Buffer) positions(addr []byte) (read, write uint32) {
	read = binary.LittleEndian.Uint32(addr[readOffset : readOffset+4])
	write = binary.LittleEndian.Uint32(addr[writeOffset : writeOffset+4])
	return
}

func (b *Buffer) setReadPos(addr []byte, pos uint32) {
	binary.LittleEndian.PutUint32(addr[readOffset:readOffset+4], pos)
}

func (b *Buffer) setWritePos(addr []byte, pos uint32) {
	binary.LittleEndian.PutUint32(addr[writeOffset:writeOffset+4], pos)
}

// freeSpaceLocked and usedSpaceLocked mirror the original library's
// internal helpers: callers must already hold the region's guard
// semaphore, since they read read_pos/write_pos without synchronization.
func (b *Buffer) freeSpaceLocked(read, write uint32) int {
	switch {
	case write < read:
		return int(read-write) - 1
	case write > read:
		return b.size - int(write-read) - 1
	default:
		return b.size - 1
	}
}

func (b *Buffer) usedSpaceLocked(read, write uint32) int {
	switch {
	case write > read:
		return int(write - read)
	case write < read:
		return b.size - int(read-write)
	default:
		return 0
	}
}

// Write copies the first n bytes of data into the ring, failing if fewer
// than n bytes are free. Returns the number of bytes written.
func (b *Buffer) Write(data []byte, n int) (int, error) {
	if b == nil {
		return -1, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: write on nil buffer")
	}
	if n <= 0 || n > len(data) {
		return -1, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: write length out of range")
	}

	if _, err := b.mem.Lock(); err != nil {
		return -1, err
	}
	defer b.mem.Unlock()

	addr := b.mem.GetAddress()
	read, write := b.positions(addr)

	if b.freeSpaceLocked(read, write) < n {
		return -1, liberr.New(liberr.DomainIPC, liberr.CodeNoResources, 0, "shmbuffer: not enough free space")
	}

	// Byte-by-byte, matching the original's tolerance for platforms where
	// a single large copy across the wraparound boundary can fault.
	for i := 0; i < n; i++ {
		addr[dataOffset+int((write+uint32(i))%uint32(b.size))] = data[i]
	}

	write = (write + uint32(n)) % uint32(b.size)
	b.setWritePos(addr, write)

	return n, nil
}

// Read copies up to n bytes out of the ring into out, returning how many
// bytes were actually copied (min(n, used_space)).
func (b *Buffer) Read(out []byte, n int) (int, error) {
	if b == nil {
		return -1, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: read on nil buffer")
	}
	if n <= 0 || n > len(out) {
		return -1, liberr.New(liberr.DomainIPC, liberr.CodeInvalidArgument, 0, "shmbuffer: read length out of range")
	}

	if _, err := b.mem.Lock(); err != nil {
		return -1, err
	}
	defer b.mem.Unlock()

	addr := b.mem.GetAddress()
	read, write := b.positions(addr)

	if read == write {
		return 0, nil
	}

	avail := b.usedSpaceLocked(read, write)
	toCopy := n
	if avail < toCopy {
		toCopy = avail
	}

	for i := 0; i < toCopy; i++ {
		out[i] = addr[dataOffset+int((read+uint32(i))%uint32(b.size))]
	}

	read = (read + uint32(toCopy)) % uint32(b.size)
	b.setReadPos(addr, read)

	return toCopy, nil
}

// GetFreeSpace reports how many bytes can currently be written. It
// acquires the guard semaphore only for the duration of the read; the
// result is stale the instant it's returned under concurrent access.
func (b *Buffer) GetFreeSpace() int {
	if b == nil {
		return 0
	}
	if _, err := b.mem.Lock(); err != nil {
		return 0
	}
	defer b.mem.Unlock()

	addr := b.mem.GetAddress()
	read, write := b.positions(addr)
	return b.freeSpaceLocked(read, write)
}

// GetUsedSpace reports how many bytes are currently available to Read,
// with the same staleness caveat as GetFreeSpace.
func (b *Buffer) GetUsedSpace() int {
	if b == nil {
		return -1
	}
	if _, err := b.mem.Lock(); err != nil {
		return -1
	}
	defer b.mem.Unlock()

	addr := b.mem.GetAddress()
	read, write := b.positions(addr)
	return b.usedSpaceLocked(read, write)
}

// Clear zeros the entire region (header and data area) under lock,
// resetting the ring to empty.
func (b *Buffer) Clear() error {
	if b == nil {
		return nil
	}
	if _, err := b.mem.Lock(); err != nil {
		return err
	}
	defer b.mem.Unlock()

	addr := b.mem.GetAddress()
	for i := range addr {
		addr[i] = 0
	}
	return nil
}
