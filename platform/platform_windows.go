//go:build windows

package platform

import (
	"github.com/xaionaro-go/unmanaged"
	"golang.org/x/sys/windows"
)

func newWaitableTimer() (unmanaged.Handle, error) {
	h, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return unmanaged.InvalidHandle, err
	}
	return unmanaged.Handle(h), nil
}

func closeHandle(handle unmanaged.Handle) error {
	return windows.CloseHandle(windows.Handle(handle))
}
