// Package handletable is an in-memory stand-in for an external handle owner.
// It hands out handles, records every release call and can be told to fail.
package handletable

import (
	"context"
	"errors"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/unmanaged"
	"github.com/xaionaro-go/unmanaged/internal"
	"github.com/xaionaro-go/xsync"
)

var ErrInvalidHandle = errors.New("invalid handle")

type entry struct {
	value any
	live  bool
}

// Table never reuses handles, so release counts per handle stay meaningful.
type Table struct {
	locker     xsync.Mutex
	entries    []entry
	failures   map[unmanaged.Handle]error
	releaseLog []unmanaged.Handle
}

var _ unmanaged.Releaser = (*Table)(nil)

func New() *Table {
	return &Table{
		entries:  make([]entry, 0, 16),
		failures: make(map[unmanaged.Handle]error),
	}
}

func (t *Table) Allocate(
	ctx context.Context,
	value any,
) unmanaged.Handle {
	handle := xsync.DoR1(ctx, &t.locker, func() unmanaged.Handle {
		t.entries = append(t.entries, entry{
			value: value,
			live:  true,
		})
		return unmanaged.Handle(len(t.entries))
	})
	internal.Assert(ctx, handle != unmanaged.InvalidHandle)
	logger.Debugf(ctx, "allocated handle %s", handle)
	return handle
}

func (t *Table) Get(
	ctx context.Context,
	handle unmanaged.Handle,
) (any, bool) {
	return xsync.DoR2(ctx, &t.locker, func() (any, bool) {
		e := t.entry(handle)
		if e == nil || !e.live {
			return nil, false
		}
		return e.value, true
	})
}

func (t *Table) IsLive(
	ctx context.Context,
	handle unmanaged.Handle,
) bool {
	_, ok := t.Get(ctx, handle)
	return ok
}

func (t *Table) LiveCount(ctx context.Context) int {
	return xsync.DoR1(ctx, &t.locker, func() int {
		count := 0
		for _, e := range t.entries {
			if e.live {
				count++
			}
		}
		return count
	})
}

// FailNextRelease makes the next ReleaseHandle call for handle return err
// and leave the handle live.
func (t *Table) FailNextRelease(
	ctx context.Context,
	handle unmanaged.Handle,
	err error,
) {
	t.locker.Do(ctx, func() {
		t.failures[handle] = err
	})
}

func (t *Table) ReleaseHandle(
	ctx context.Context,
	handle unmanaged.Handle,
) (_err error) {
	logger.Tracef(ctx, "ReleaseHandle(ctx, %s)", handle)
	defer func() { logger.Tracef(ctx, "/ReleaseHandle(ctx, %s): %v", handle, _err) }()

	return xsync.DoR1(ctx, &t.locker, func() error {
		t.releaseLog = append(t.releaseLog, handle)

		e := t.entry(handle)
		if e == nil {
			return fmt.Errorf("handle %s is unknown: %w", handle, ErrInvalidHandle)
		}
		if !e.live {
			return fmt.Errorf("handle %s is already released: %w", handle, ErrInvalidHandle)
		}
		if err, ok := t.failures[handle]; ok {
			delete(t.failures, handle)
			return err
		}
		e.live = false
		e.value = nil
		return nil
	})
}

// Releases returns every handle ReleaseHandle was called with, in call order.
func (t *Table) Releases(ctx context.Context) []unmanaged.Handle {
	return xsync.DoR1(ctx, &t.locker, func() []unmanaged.Handle {
		result := make([]unmanaged.Handle, len(t.releaseLog))
		copy(result, t.releaseLog)
		return result
	})
}

func (t *Table) ReleaseCount(
	ctx context.Context,
	handle unmanaged.Handle,
) int {
	count := 0
	for _, h := range t.Releases(ctx) {
		if h == handle {
			count++
		}
	}
	return count
}

func (t *Table) entry(handle unmanaged.Handle) *entry {
	if handle == unmanaged.InvalidHandle || int(handle) > len(t.entries) {
		return nil
	}
	return &t.entries[handle-1]
}
