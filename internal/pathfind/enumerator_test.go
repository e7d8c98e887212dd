package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

func buildLine(t *testing.T, capacity int) (*tetg.Graph, model.NodeID, model.NodeID) {
	t.Helper()
	g, idx, _, diags := tetg.Build(
		[]tetg.Station{{ID: "A"}, {ID: "B"}},
		[]tetg.Trip{{ID: "T1", From: "A", To: "B", Departure: 0, Arrival: 10, Capacity: capacity}},
		nil,
	)
	assert.Empty(t, diags)
	source, ok := idx.EarliestTransfer("A", 0)
	assert.True(t, ok)
	sink, ok := idx.MainArrival("B")
	assert.True(t, ok)
	return g, source, sink
}

func TestEnumerate_FindsDirectPath(t *testing.T) {
	g, source, sink := buildLine(t, 5)

	paths, err := Enumerate(g, source, sink, 1, 100, []int{10}, model.DefaultCosts, nil)

	assert.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Equal(t, 10, paths[0].Duration)
	assert.Equal(t, 7, paths[0].Cost) // Board(5) + Ride(2)
}

func TestEnumerate_CapacityPruned(t *testing.T) {
	g, source, sink := buildLine(t, 2)

	paths, err := Enumerate(g, source, sink, 3, 100, []int{10}, model.DefaultCosts, nil)

	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestEnumerate_DurationPruned(t *testing.T) {
	g, source, sink := buildLine(t, 5)

	paths, err := Enumerate(g, source, sink, 1, 5, []int{100}, model.DefaultCosts, nil)

	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestEnumerate_StopsAtFirstSuccessfulBudgetStep(t *testing.T) {
	g, source, sink := buildLine(t, 5)

	paths, err := Enumerate(g, source, sink, 1, 100, []int{3, 7, 50}, model.DefaultCosts, nil)

	assert.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Equal(t, 7, paths[0].Cost)
	assert.Equal(t, 0, paths[0].RemainingBudget) // found at budget step 7, none left over
}

func TestEnumerate_Cancelled(t *testing.T) {
	g, source, sink := buildLine(t, 5)
	cancel := make(chan struct{})
	close(cancel)

	paths, err := Enumerate(g, source, sink, 1, 100, []int{10}, model.DefaultCosts, cancel)

	assert.ErrorIs(t, err, model.ErrCancelled)
	assert.Nil(t, paths)
}
