package internal

import (
	"context"
	"fmt"
	"runtime"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// AddCleanup registers callback to be called with arg once obj becomes
// unreachable. The callback must not reference obj, otherwise obj is never
// collected.
func AddCleanup[T, S any](
	ctx context.Context,
	obj *T,
	callback func(S),
	arg S,
) runtime.Cleanup {
	objType := fmt.Sprintf("%T", obj)
	logger.Tracef(ctx, "registering a cleanup for %s", objType)
	return runtime.AddCleanup(obj, func(arg S) {
		logger.Debugf(ctx, "cleaning up %s", objType)
		callback(arg)
	}, arg)
}
