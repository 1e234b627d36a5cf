package extension

import (
	"testing"

	"github.com/katalvlaran/randfuel/combo"
	"github.com/katalvlaran/randfuel/fuel"
	"github.com/katalvlaran/randfuel/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevel_OutOfOrder drives a level through every illegal transition.
func TestLevel_OutOfOrder(t *testing.T) {
	tbl, err := fuel.NewTable([]fuel.Type{{Rate: 5, Fraction: 1}})
	require.NoError(t, err)
	base, err := combo.Generate(tbl, 1, 1, nil)
	require.NoError(t, err)
	defer base.Free()

	l := newLevel(0, 1, 1, 1, 1, nil)
	assert.Equal(t, StateUninitialized, l.State())

	var acc Contribution
	assert.ErrorIs(t, l.Seed(base, 0, 1), ErrState)
	assert.ErrorIs(t, l.Splice(l, nil), ErrState)
	assert.ErrorIs(t, l.Solve(l, 1), ErrState)
	assert.ErrorIs(t, l.Reduce(nil, &acc), ErrState)
	l.Free() // no-op before allocation
	assert.Equal(t, StateUninitialized, l.State())

	require.NoError(t, l.Allocate(nil))
	assert.Equal(t, StateAllocated, l.State())
	assert.ErrorIs(t, l.Allocate(nil), ErrState)
	assert.ErrorIs(t, l.Reduce(nil, &acc), ErrState)
	assert.ErrorIs(t, l.Seed(base, 3, 1), ErrBaseIndex)

	require.NoError(t, l.Seed(base, 0, 1))
	assert.Equal(t, StateSolved, l.State())
	assert.ErrorIs(t, l.Seed(base, 0, 1), ErrState)

	child := newLevel(1, 3, 1, 1, 1, nil)
	require.NoError(t, child.Allocate(nil))
	assert.ErrorIs(t, l.Reduce(child, &acc), ErrState, "child not reduced yet")
	child.Free()

	require.NoError(t, l.Reduce(nil, &acc))
	assert.Equal(t, StateReduced, l.State())

	l.Free()
	assert.Equal(t, StateFreed, l.State())
	l.Free()
	assert.Equal(t, StateFreed, l.State())
	assert.Nil(t, l.Combos())

	// A freed level can be reused by the next run.
	require.NoError(t, l.Allocate(nil))
	l.Free()
}

// TestLevel_AllocateSingleBlock verifies one allocation per level and release on Free.
func TestLevel_AllocateSingleBlock(t *testing.T) {
	ca := &matrix.CountingAllocator{}
	l := newLevel(2, 5, 2, 16, 4, nil)
	require.NoError(t, l.Allocate(ca))

	allocs, _, outstanding, _ := ca.Stats()
	assert.Equal(t, 1, allocs)
	assert.Equal(t, 2*16*10+4*16+4, outstanding)
	assert.Equal(t, 16, l.Combos().Count())
	assert.Len(t, l.cum, 4)

	l.Free()
	allocs, releases, outstanding, _ := ca.Stats()
	assert.Equal(t, allocs, releases)
	assert.Zero(t, outstanding)
}

// TestLevel_AllocateFailure leaves the level reusable and nothing outstanding.
func TestLevel_AllocateFailure(t *testing.T) {
	ca := &matrix.CountingAllocator{Next: matrix.HeapAllocator{Limit: 10}}
	l := newLevel(1, 3, 1, 4, 4, nil)
	assert.ErrorIs(t, l.Allocate(ca), matrix.ErrAllocation)
	assert.Equal(t, StateUninitialized, l.State())

	_, _, outstanding, _ := ca.Stats()
	assert.Zero(t, outstanding)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "spliced", StateSpliced.String())
	assert.Equal(t, "State(9)", State(9).String())
}
