package unmanaged

import (
	"context"
	"fmt"
)

// Handle is an opaque token identifying a resource owned outside of the Go
// runtime (a file descriptor, a Windows HANDLE, a slot in a foreign table).
type Handle uintptr

const InvalidHandle = Handle(0)

func (h Handle) String() string {
	if h == InvalidHandle {
		return "<invalid>"
	}
	return fmt.Sprintf("0x%X", uintptr(h))
}

// Releaser is the external primitive that frees a Handle. It is called at most
// once per Resource.
type Releaser interface {
	ReleaseHandle(ctx context.Context, handle Handle) error
}

type ReleaserFunc func(ctx context.Context, handle Handle) error

func (fn ReleaserFunc) ReleaseHandle(ctx context.Context, handle Handle) error {
	return fn(ctx, handle)
}
