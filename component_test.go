package unmanaged

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponentClose(t *testing.T) {
	ctx := context.Background()
	c := NewComponent(ctx)
	c2 := NewComponent(ctx)
	require.NotEqual(t, c.ID, c2.ID)

	require.False(t, c.IsClosed())
	require.NoError(t, c.Close())
	require.True(t, c.IsClosed())
	require.NoError(t, c.Close())
	require.True(t, c.IsClosed())
	require.False(t, c2.IsClosed())
}

func TestHandleString(t *testing.T) {
	require.Equal(t, "<invalid>", InvalidHandle.String())
	require.Equal(t, "0x2A", Handle(42).String())
}
