// Package platform releases and creates real operating system handles.
package platform

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/unmanaged"
)

type Releaser struct{}

var _ unmanaged.Releaser = Releaser{}

func (Releaser) ReleaseHandle(
	ctx context.Context,
	handle unmanaged.Handle,
) (_err error) {
	logger.Tracef(ctx, "ReleaseHandle(ctx, %s)", handle)
	defer func() { logger.Tracef(ctx, "/ReleaseHandle(ctx, %s): %v", handle, _err) }()
	if err := closeHandle(handle); err != nil {
		return fmt.Errorf("unable to close the OS handle: %w", err)
	}
	return nil
}

// NewWaitableTimer creates an OS object that can be waited on and must be
// released with Releaser.
func NewWaitableTimer(
	ctx context.Context,
) (_ unmanaged.Handle, _err error) {
	logger.Tracef(ctx, "NewWaitableTimer(ctx)")
	defer func() { logger.Tracef(ctx, "/NewWaitableTimer(ctx): %v", _err) }()
	handle, err := newWaitableTimer()
	if err != nil {
		return unmanaged.InvalidHandle, fmt.Errorf("unable to create a waitable timer: %w", err)
	}
	return handle, nil
}
