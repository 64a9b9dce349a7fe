package unmanaged

import (
	"errors"
	"fmt"
)

var ErrUseAfterRelease = errors.New("the resource is already released")

type ErrReleaseHandle struct {
	Handle Handle
	Err    error
}

func (e ErrReleaseHandle) Error() string {
	return fmt.Sprintf("unable to release handle %s: %v", e.Handle, e.Err)
}

func (e ErrReleaseHandle) Unwrap() error {
	return e.Err
}
