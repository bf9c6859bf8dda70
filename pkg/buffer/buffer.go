package buffer

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/litebase/memvfs/internal/utils"
)

// DefaultLimit is the largest size a buffer may grow to when no limit has
// been set.
const DefaultLimit int64 = 1 << 40

var (
	ErrInvalidOffset = errors.New("buffer: invalid offset")
	ErrOutOfMemory   = errors.New("buffer: out of memory")
)

// Buffer is a growable byte container with file semantics. Bytes in
// [0, Used()) are the contents of the file. Bytes in [Used(), Total()) are
// spare capacity and are never returned to readers.
//
// A Buffer does not synchronize access to its contents. Handles sharing a
// buffer must be serialized by the caller.
type Buffer struct {
	data  []byte
	used  int64
	limit int64
}

// New returns an empty buffer. Storage is allocated on first growth.
func New() *Buffer {
	return &Buffer{}
}

// FromBytes returns a buffer pre-populated with data. The buffer takes the
// slice as its storage, so used and total both equal len(data).
func FromBytes(data []byte) *Buffer {
	return &Buffer{
		data: data,
		used: int64(len(data)),
	}
}

// Bytes returns the used region of the buffer. The slice aliases the
// buffer's storage and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.used]
}

// EnsureCapacity grows the allocated capacity to at least n bytes. Capacity
// never shrinks. Existing used bytes are preserved.
func (b *Buffer) EnsureCapacity(n int64) error {
	if n < 0 {
		return ErrInvalidOffset
	}

	if n <= b.Total() {
		return nil
	}

	if n > b.Limit() {
		return fmt.Errorf("%w: %d bytes requested, limit is %d", ErrOutOfMemory, n, b.Limit())
	}

	total := b.Total() * 2

	if total < n {
		total = n
	}

	if total > b.Limit() {
		total = b.Limit()
	}

	data, err := allocate(total)

	if err != nil {
		return err
	}

	copy(data, b.data[:b.used])
	b.data = data

	return nil
}

// Free drops the buffer's storage. The buffer is empty afterwards and may be
// reused.
func (b *Buffer) Free() {
	b.data = nil
	b.used = 0
}

func (b *Buffer) Limit() int64 {
	if b.limit <= 0 {
		return DefaultLimit
	}

	return b.limit
}

// ReadAt copies the intersection of [off, off+len(p)) and [0, Used()) into
// p. A read that extends past the used region returns the bytes that exist
// together with io.EOF, and a read starting at or beyond Used() returns
// 0, io.EOF. Neither case changes the buffer.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidOffset
	}

	if off >= b.used {
		if len(p) == 0 {
			return 0, nil
		}

		return 0, io.EOF
	}

	n := copy(p, b.data[off:b.used])

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// SetLimit bounds how large the buffer may grow. A limit <= 0 restores
// DefaultLimit.
func (b *Buffer) SetLimit(limit int64) {
	b.limit = limit
}

// Total returns the allocated capacity.
func (b *Buffer) Total() int64 {
	return int64(len(b.data))
}

// Truncate sets the size of the file. Growing exposes zero bytes. Shrinking
// keeps the capacity; the discarded bytes are cleared again before they can
// become visible through a later growth.
func (b *Buffer) Truncate(size int64) error {
	if size < 0 {
		return ErrInvalidOffset
	}

	if size > b.used {
		if err := b.EnsureCapacity(size); err != nil {
			return err
		}

		clear(b.data[b.used:size])
	}

	b.used = size

	return nil
}

// Used returns the number of valid bytes, which is the size of the file.
func (b *Buffer) Used() int64 {
	return b.used
}

// WriteAt copies p into the buffer at off, growing the buffer as needed. A
// write beginning past Used() zero-fills the gap. Capacity is checked before
// any byte is modified, so a failed write leaves the buffer untouched.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidOffset
	}

	end, err := utils.SafeAddInt64(off, int64(len(p)))

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	if end > b.used {
		if err := b.EnsureCapacity(end); err != nil {
			return 0, err
		}

		if off > b.used {
			clear(b.data[b.used:off])
		}
	}

	copy(b.data[off:end], p)

	if end > b.used {
		b.used = end
	}

	return len(p), nil
}

// allocate returns a zeroed slice of size bytes. Sizes the runtime refuses
// to allocate are reported as ErrOutOfMemory instead of panicking.
func allocate(size int64) (data []byte, err error) {
	n, err := utils.SafeInt64ToInt(size)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}

			data = nil
			err = fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()

	return make([]byte, n), nil
}
