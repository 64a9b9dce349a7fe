//go:build linux

package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/unmanaged"
	"golang.org/x/sys/unix"
)

func TestWaitableTimerClose(t *testing.T) {
	ctx := context.Background()

	handle, err := NewWaitableTimer(ctx)
	require.NoError(t, err)
	require.NotEqual(t, unmanaged.InvalidHandle, handle)

	_, err = unix.FcntlInt(uintptr(handle), unix.F_GETFD, 0)
	require.NoError(t, err)

	r := unmanaged.New(ctx, handle, Releaser{})
	require.NoError(t, r.Close())
	require.True(t, r.IsReleased())

	_, err = unix.FcntlInt(uintptr(handle), unix.F_GETFD, 0)
	require.ErrorIs(t, err, unix.EBADF)
}

func TestReleaseInvalidDescriptor(t *testing.T) {
	ctx := context.Background()
	err := Releaser{}.ReleaseHandle(ctx, unmanaged.Handle(1<<30))
	require.ErrorIs(t, err, unix.EBADF)
}
