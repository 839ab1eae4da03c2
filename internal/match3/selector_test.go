package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorFlow(t *testing.T) {
	s := NewSelector(DefaultSize)
	var transitions []string
	s.OnTransition = func(from, to string) {
		transitions = append(transitions, from+">"+to)
	}
	assert.Equal(t, StateIdle, s.State())

	click, err := s.Click(At(2, 2))
	require.NoError(t, err)
	assert.Equal(t, Click{Kind: ClickSelected, From: At(2, 2)}, click)
	assert.Equal(t, StateAwaitingSecond, s.State())
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, At(2, 2), sel)

	click, err = s.Click(At(5, 5))
	require.NoError(t, err)
	assert.Equal(t, ClickReselected, click.Kind)
	assert.Equal(t, StateAwaitingSecond, s.State())

	click, err = s.Click(At(5, 6))
	require.NoError(t, err)
	assert.Equal(t, Click{Kind: ClickSwap, From: At(5, 5), To: At(5, 6)}, click)
	assert.Equal(t, StateValidating, s.State())

	_, err = s.Click(At(0, 0))
	assert.ErrorIs(t, err, ErrConcurrentResolution)

	require.NoError(t, s.Complete(false))
	assert.Equal(t, StateIdle, s.State())

	assert.Equal(t, []string{
		"idle>awaiting_second",
		"awaiting_second>validating",
		"validating>reverted",
		"reverted>idle",
	}, transitions)
}

func TestSelectorDeselect(t *testing.T) {
	s := NewSelector(DefaultSize)
	_, err := s.Click(At(1, 1))
	require.NoError(t, err)
	click, err := s.Click(At(1, 1))
	require.NoError(t, err)
	assert.Equal(t, ClickDeselected, click.Kind)
	assert.Equal(t, StateIdle, s.State())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSelectorDiagonalIsReselection(t *testing.T) {
	s := NewSelector(DefaultSize)
	_, err := s.Click(At(1, 1))
	require.NoError(t, err)
	click, err := s.Click(At(2, 2))
	require.NoError(t, err)
	assert.Equal(t, ClickReselected, click.Kind)
}

func TestSelectorResolvedAndReset(t *testing.T) {
	s := NewSelector(DefaultSize)
	_, err := s.Click(At(0, 0))
	require.NoError(t, err)
	_, err = s.Click(At(1, 0))
	require.NoError(t, err)
	require.NoError(t, s.Complete(true))
	assert.Equal(t, StateIdle, s.State())

	assert.Error(t, s.Complete(true))

	_, err = s.Click(At(0, 0))
	require.NoError(t, err)
	s.Cancel()
	assert.Equal(t, StateIdle, s.State())

	_, err = s.Click(At(0, 0))
	require.NoError(t, err)
	_, err = s.Click(At(0, 1))
	require.NoError(t, err)
	s.Reset()
	assert.Equal(t, StateIdle, s.State())
}

func TestSelectorBounds(t *testing.T) {
	s := NewSelector(DefaultSize)
	_, err := s.Click(At(8, 0))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	assert.Equal(t, StateIdle, s.State())
}
