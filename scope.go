package unmanaged

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// Use wraps handle into a Resource, passes it to fn and closes it on every
// exit path of fn, including a panic. Errors of fn and of Close are combined.
func Use(
	ctx context.Context,
	handle Handle,
	releaser Releaser,
	fn func(context.Context, *Resource) error,
	opts ...Option,
) (_err error) {
	logger.Tracef(ctx, "Use(ctx, %s)", handle)
	defer func() { logger.Tracef(ctx, "/Use(ctx, %s): %v", handle, _err) }()

	r := New(ctx, handle, releaser, opts...)
	defer func() {
		if err := r.Close(); err != nil {
			_err = multierror.Append(_err, err)
		}
	}()

	return fn(ctx, r)
}
