package internal

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
)

func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	msg := "assertion failed"
	if len(extraArgs) > 0 {
		msg = fmt.Sprintf("assertion failed: %s", fmt.Sprint(extraArgs...))
	}
	logger.Error(ctx, msg)
	panic(msg)
}
