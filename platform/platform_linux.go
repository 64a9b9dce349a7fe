//go:build linux

package platform

import (
	"github.com/xaionaro-go/unmanaged"
	"golang.org/x/sys/unix"
)

func newWaitableTimer() (unmanaged.Handle, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_CLOEXEC)
	if err != nil {
		return unmanaged.InvalidHandle, err
	}
	return unmanaged.Handle(fd), nil
}

func closeHandle(handle unmanaged.Handle) error {
	return unix.Close(int(handle))
}
