package vfs

import (
	"fmt"

	"github.com/litebase/memvfs/pkg/buffer"
)

type HandoffState int

const (
	// HandoffShared means other handles still reference the buffer. It stays
	// alive and must not be freed by the caller.
	HandoffShared HandoffState = iota
	// HandoffReturned means the last reference was dropped and the buffer was
	// supplied by the caller, who owns it again.
	HandoffReturned
	// HandoffFreed means the last reference was dropped and the buffer was
	// allocated internally, so its storage has been released.
	HandoffFreed
)

func (s HandoffState) String() string {
	switch s {
	case HandoffShared:
		return "shared"
	case HandoffReturned:
		return "returned"
	case HandoffFreed:
		return "freed"
	}

	return fmt.Sprintf("HandoffState(%d)", int(s))
}

// Handoff is the result of closing a handle. Buffer is set for shared and
// returned buffers and nil once a buffer has been freed.
type Handoff struct {
	Buffer *buffer.Buffer
	State  HandoffState
}

// Returned reports whether the caller now owns the buffer.
func (h Handoff) Returned() bool {
	return h.State == HandoffReturned
}

func handoff(released Released) Handoff {
	if released.Remaining > 0 {
		return Handoff{Buffer: released.Buffer, State: HandoffShared}
	}

	switch released.Ownership {
	case Borrowed:
		return Handoff{Buffer: released.Buffer, State: HandoffReturned}
	case Owned:
		released.Buffer.Free()

		return Handoff{State: HandoffFreed}
	}

	panic(fmt.Sprintf("vfs: unknown ownership %v", released.Ownership))
}
