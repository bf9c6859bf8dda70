package vfs

import (
	"github.com/google/uuid"
	"github.com/litebase/memvfs/pkg/buffer"
	"github.com/psanford/sqlite3vfs"
)

// DeviceCharacteristics is reported for every memory file. There is no
// medium that can tear a write, and appends never expose garbage.
const DeviceCharacteristics = sqlite3vfs.IocapAtomic64K | sqlite3vfs.IocapSafeAppend | sqlite3vfs.IocapSequential

// File is one open handle on a memory file. Named files share their buffer
// with every other handle open on the same name; anonymous files own a
// private buffer.
type File struct {
	anonymous  bool
	buffer     *buffer.Buffer
	closed     bool
	env        *Environment
	flags      sqlite3vfs.OpenFlag
	id         string
	lockLevel  sqlite3vfs.LockType
	name       string
	ownership  Ownership
	sectorSize int64
}

var _ sqlite3vfs.File = (*File)(nil)

func newFile(env *Environment, name string, mem *buffer.Buffer) *File {
	return &File{
		buffer:     mem,
		env:        env,
		id:         uuid.NewString(),
		name:       name,
		sectorSize: env.config.SectorSize,
	}
}

func (f *File) Anonymous() bool {
	return f.anonymous
}

// Buffer returns the buffer backing the handle, or nil once it is closed.
func (f *File) Buffer() *buffer.Buffer {
	return f.buffer
}

// CheckReservedLock always reports that no other handle holds a reserved
// lock.
func (f *File) CheckReservedLock() (bool, error) {
	if f.closed {
		return false, ErrInvalidHandle
	}

	return false, nil
}

// Close releases the handle. The hand-back is discarded; use Release to
// observe it.
func (f *File) Close() error {
	_, err := f.Release()

	return err
}

func (f *File) DeviceCharacteristics() sqlite3vfs.DeviceCharacteristic {
	return DeviceCharacteristics
}

func (f *File) FileSize() (int64, error) {
	if f.closed {
		return 0, ErrInvalidHandle
	}

	return f.buffer.Used(), nil
}

func (f *File) Flags() sqlite3vfs.OpenFlag {
	return f.flags
}

func (f *File) ID() string {
	return f.id
}

// Lock always succeeds. Memory files are private to the process, so there
// is no cross-process mutual exclusion at all; the requested level is only
// remembered on the handle.
func (f *File) Lock(elock sqlite3vfs.LockType) error {
	if f.closed {
		return ErrInvalidHandle
	}

	f.lockLevel = elock

	return nil
}

func (f *File) LockLevel() sqlite3vfs.LockType {
	return f.lockLevel
}

func (f *File) Name() string {
	return f.name
}

// ReadAt follows io.ReaderAt. Reading past the end of the file returns the
// available bytes and io.EOF, which the engine treats as a short read.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, ErrInvalidHandle
	}

	return f.buffer.ReadAt(p, off)
}

// Release closes the handle and reports what happened to its buffer. A
// second call fails with ErrInvalidHandle.
func (f *File) Release() (Handoff, error) {
	if f.closed {
		return Handoff{}, ErrInvalidHandle
	}

	f.closed = true
	mem := f.buffer
	f.buffer = nil

	if f.anonymous {
		return handoff(Released{Buffer: mem, Ownership: f.ownership}), nil
	}

	released, err := f.env.registry.Release(f.name)

	if err != nil {
		return Handoff{}, err
	}

	h := handoff(released)

	f.env.logger.Debug("Closed file", "file", f.id, "name", f.name, "references", released.Remaining, "handoff", h.State)

	return h, nil
}

func (f *File) SectorSize() int64 {
	return f.sectorSize
}

// Sync is a no-op; there is no durable medium behind a memory file.
func (f *File) Sync(flag sqlite3vfs.SyncType) error {
	if f.closed {
		return ErrInvalidHandle
	}

	return nil
}

func (f *File) Truncate(size int64) error {
	if f.closed {
		return ErrInvalidHandle
	}

	return f.buffer.Truncate(size)
}

func (f *File) Unlock(elock sqlite3vfs.LockType) error {
	if f.closed {
		return ErrInvalidHandle
	}

	f.lockLevel = elock

	return nil
}

func (f *File) WriteAt(b []byte, off int64) (int, error) {
	if f.closed {
		return 0, ErrInvalidHandle
	}

	return f.buffer.WriteAt(b, off)
}
