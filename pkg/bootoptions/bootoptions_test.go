package bootoptions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderEmpty(t *testing.T) {
	var s Set
	require.Equal(t, "", s.Render())
}

func TestToggleOnce(t *testing.T) {
	var s Set
	require.NoError(t, s.Toggle(0))
	require.True(t, s.Enabled(0))
	require.Equal(t, "nomodeset ", s.Render())
}

func TestToggleTwiceIsNoop(t *testing.T) {
	var s Set
	require.NoError(t, s.Toggle(0))
	require.NoError(t, s.Toggle(0))
	require.False(t, s.Enabled(0))
	require.Equal(t, "", s.Render())
}

func TestRenderIndexOrder(t *testing.T) {
	var s Set
	require.NoError(t, s.Toggle(1))
	require.NoError(t, s.Toggle(0))
	require.Equal(t, "nomodeset acpi=off ", s.Render())
}

func TestToggleOutOfRange(t *testing.T) {
	var s Set
	for _, i := range []int{-1, Count, Count + 5} {
		require.ErrorIs(t, s.Toggle(i), ErrOutOfRange)
		require.False(t, s.Enabled(i))
	}
	require.Equal(t, "", s.Render())
}

func TestReset(t *testing.T) {
	var s Set
	require.NoError(t, s.Toggle(0))
	require.NoError(t, s.Toggle(1))
	s.Reset()
	require.Equal(t, "", s.Render())
}
