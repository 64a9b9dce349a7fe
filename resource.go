package unmanaged

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/unmanaged/internal"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
)

// Resource owns an external Handle and an inner io.Closer.
//
// Close releases both. If Close is never called, the handle (and only the
// handle) is released by a cleanup registered with the garbage collector,
// unless Config.Fallback is FallbackModeDisabled.
type Resource struct {
	ctx     context.Context
	state   *handleState
	inner   io.Closer
	cleanup runtime.Cleanup
}

var _ io.Closer = (*Resource)(nil)

// handleState is everything the collector-driven cleanup may touch. It must
// never point back to the Resource or to the inner resource.
type handleState struct {
	ctx       context.Context
	locker    xsync.Mutex
	handle    Handle
	releasing bool
	released  bool
	armed     bool
	releaser  Releaser
	policy    FailurePolicy
	stats     *Statistics
}

// New wraps handle. A nil inner resource from OptionInnerFactory is replaced
// by a Component.
func New(
	ctx context.Context,
	handle Handle,
	releaser Releaser,
	opts ...Option,
) *Resource {
	ctx = xcontext.DetachDone(ctx)
	cfg, _ := GetOption[Config](opts)

	stats := &Statistics{}
	if opt, ok := GetOption[OptionStatistics](opts); ok && opt.Statistics != nil {
		stats = opt.Statistics
	}

	newInner := func(ctx context.Context) io.Closer {
		return NewComponent(ctx)
	}
	if opt, ok := GetOption[OptionInnerFactory](opts); ok && opt != nil {
		newInner = opt
	}

	inner := newInner(ctx)
	if inner == nil {
		inner = NewComponent(ctx)
	}

	r := &Resource{
		ctx: ctx,
		state: &handleState{
			ctx:      ctx,
			handle:   handle,
			releaser: releaser,
			policy:   cfg.FailurePolicy,
			stats:    stats,
		},
		inner: inner,
	}
	if cfg.Fallback != FallbackModeDisabled {
		r.state.armed = true
		r.cleanup = internal.AddCleanup(ctx, r, (*handleState).finalizeFallback, r.state)
	}
	stats.Created.Add(1)
	logger.Debugf(ctx, "resource with handle %s created", handle)
	return r
}

// Close releases the inner resource and then the handle, and disarms the
// collector-driven fallback, even if the release panics. Calls after the
// first one are no-ops.
func (r *Resource) Close() (_err error) {
	ctx := r.ctx
	logger.Debugf(ctx, "Close()")
	defer func() { logger.Debugf(ctx, "/Close(): %v", _err) }()

	defer r.disarm()
	return r.state.release(ctx, true, r.inner.Close)
}

func (r *Resource) disarm() {
	r.state.locker.Do(r.ctx, func() {
		if !r.state.armed {
			return
		}
		r.cleanup.Stop()
		r.state.armed = false
		logger.Tracef(r.ctx, "fallback disarmed")
	})
}

// Handle returns the owned handle. It panics with ErrUseAfterRelease once
// the resource is released.
//
// The Resource must be kept reachable while the returned value is in use
// (see WithHandle), otherwise the fallback may release it underneath.
func (r *Resource) Handle() Handle {
	handle, released := r.state.get(r.ctx)
	if released {
		panic(fmt.Errorf("unable to get the handle: %w", ErrUseAfterRelease))
	}
	return handle
}

func (r *Resource) WithHandle(fn func(Handle) error) error {
	defer runtime.KeepAlive(r)
	return fn(r.Handle())
}

func (r *Resource) IsReleased() bool {
	_, released := r.state.get(r.ctx)
	return released
}

func (r *Resource) IsFallbackArmed() bool {
	return xsync.DoR1(r.ctx, &r.state.locker, func() bool {
		return r.state.armed
	})
}

func (s *handleState) get(ctx context.Context) (Handle, bool) {
	return xsync.DoR2(ctx, &s.locker, func() (Handle, bool) {
		return s.handle, s.released
	})
}

func (s *handleState) finalizeFallback() {
	ctx := s.ctx
	logger.Debugf(ctx, "finalizeFallback()")

	wasArmed := xsync.DoR1(ctx, &s.locker, func() bool {
		wasArmed := s.armed
		s.armed = false
		return wasArmed
	})
	internal.Assert(ctx, wasArmed, "the fallback was invoked after being disarmed")

	if err := s.release(ctx, false, nil); err != nil {
		logger.Errorf(ctx, "unable to release the handle from the fallback: %v", err)
		errmon.ObserveErrorCtx(ctx, err)
	}
}

// release is the single release routine shared by Close and the fallback.
// closeInner is only called when explicit is true.
func (s *handleState) release(
	ctx context.Context,
	explicit bool,
	closeInner func() error,
) (_err error) {
	logger.Tracef(ctx, "release(explicit=%t)", explicit)
	defer func() { logger.Tracef(ctx, "/release(explicit=%t): %v", explicit, _err) }()

	handle, alreadyReleased := xsync.DoR2(ctx, &s.locker, func() (Handle, bool) {
		if s.released || s.releasing {
			return InvalidHandle, true
		}
		s.releasing = true
		return s.handle, false
	})
	if alreadyReleased {
		logger.Tracef(ctx, "already released")
		return nil
	}

	// the lock is not held below, so closeInner and the releaser may query
	// the Resource; concurrent callers see "releasing" and return early
	defer s.locker.Do(ctx, func() {
		s.handle = InvalidHandle
		s.releasing = false
		s.released = true
	})

	var innerErr, handleErr error
	if explicit && closeInner != nil {
		innerErr = closeInner()
		s.stats.InnerClosed.Add(1)
		logger.Debugf(ctx, "inner resource released")
	}

	if err := s.releaser.ReleaseHandle(ctx, handle); err != nil {
		handleErr = ErrReleaseHandle{Handle: handle, Err: err}
	}
	logger.Debugf(ctx, "handle %s released (explicit=%t)", handle, explicit)

	if explicit {
		s.stats.ReleasedExplicitly.Add(1)
	} else {
		s.stats.ReleasedByFallback.Add(1)
	}

	var result *multierror.Error
	if innerErr != nil {
		result = multierror.Append(result, fmt.Errorf("unable to release the inner resource: %w", innerErr))
	}
	if handleErr != nil {
		s.stats.ReleaseFailures.Add(1)
		if s.policy == FailurePolicyPanic {
			logger.Errorf(ctx, "%v", handleErr)
			panic(handleErr)
		}
		result = multierror.Append(result, handleErr)
	}
	return result.ErrorOrNil()
}
