//go:build unix && !linux

package platform

import (
	"github.com/xaionaro-go/unmanaged"
	"golang.org/x/sys/unix"
)

// there is no timerfd outside of linux; a socket is the closest waitable
// descriptor available everywhere.
func newWaitableTimer() (unmanaged.Handle, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return unmanaged.InvalidHandle, err
	}
	unix.CloseOnExec(fd)
	return unmanaged.Handle(fd), nil
}

func closeHandle(handle unmanaged.Handle) error {
	return unix.Close(int(handle))
}
