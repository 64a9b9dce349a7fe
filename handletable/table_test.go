package handletable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/unmanaged"
)

func TestTableAllocateRelease(t *testing.T) {
	ctx := context.Background()
	table := New()

	h1 := table.Allocate(ctx, "first")
	h2 := table.Allocate(ctx, "second")
	require.NotEqual(t, unmanaged.InvalidHandle, h1)
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, table.LiveCount(ctx))

	v, ok := table.Get(ctx, h1)
	require.True(t, ok)
	require.Equal(t, "first", v)

	require.NoError(t, table.ReleaseHandle(ctx, h1))
	require.False(t, table.IsLive(ctx, h1))
	require.True(t, table.IsLive(ctx, h2))
	require.Equal(t, 1, table.LiveCount(ctx))

	err := table.ReleaseHandle(ctx, h1)
	require.ErrorIs(t, err, ErrInvalidHandle)
	require.Equal(t, 2, table.ReleaseCount(ctx, h1))
	require.Equal(t, []unmanaged.Handle{h1, h1}, table.Releases(ctx))
}

func TestTableInvalidHandle(t *testing.T) {
	ctx := context.Background()
	table := New()

	require.ErrorIs(t, table.ReleaseHandle(ctx, unmanaged.InvalidHandle), ErrInvalidHandle)
	require.ErrorIs(t, table.ReleaseHandle(ctx, 42), ErrInvalidHandle)

	_, ok := table.Get(ctx, 42)
	require.False(t, ok)
}

func TestTableFailNextRelease(t *testing.T) {
	ctx := context.Background()
	table := New()
	h := table.Allocate(ctx, nil)

	errInjected := errors.New("injected")
	table.FailNextRelease(ctx, h, errInjected)

	require.ErrorIs(t, table.ReleaseHandle(ctx, h), errInjected)
	require.True(t, table.IsLive(ctx, h))

	require.NoError(t, table.ReleaseHandle(ctx, h))
	require.False(t, table.IsLive(ctx, h))
}
