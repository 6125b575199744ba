package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpeningStatePriorityOrder(t *testing.T) {
	t.Parallel()

	require.Less(t, StateOpen.Priority(), StateOrderAhead.Priority(),
		"open restaurants should rank before order ahead")
	require.Less(t, StateOrderAhead.Priority(), StateClosed.Priority(),
		"order ahead restaurants should rank before closed")
	require.Less(t, StateClosed.Priority(), OpeningState("on holiday").Priority(),
		"unknown states should rank after every known state")
}

func TestOpeningStateKeepsRawValue(t *testing.T) {
	t.Parallel()

	s := OpeningState("on holiday")
	require.Equal(t, "on holiday", string(s), "unknown states should pass through unchanged")
}
