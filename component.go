package unmanaged

import (
	"context"
	"sync/atomic"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/xsync"
)

type ComponentID uint64

var nextComponentID atomic.Uint64

// Component is the owned in-process resource of a Resource. It holds no
// external handle and is released only on the explicit path.
type Component struct {
	ID ComponentID

	ctx    context.Context
	locker xsync.Mutex
	closed bool
}

func NewComponent(ctx context.Context) *Component {
	c := &Component{
		ID:  ComponentID(nextComponentID.Add(1)),
		ctx: ctx,
	}
	logger.Debugf(ctx, "component %d created", c.ID)
	return c
}

func (c *Component) Close() error {
	closedNow := xsync.DoR1(c.ctx, &c.locker, func() bool {
		if c.closed {
			return false
		}
		c.closed = true
		return true
	})
	if closedNow {
		logger.Debugf(c.ctx, "component %d released", c.ID)
	}
	return nil
}

func (c *Component) IsClosed() bool {
	return xsync.DoR1(c.ctx, &c.locker, func() bool {
		return c.closed
	})
}
