package tetg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/transitsolve/internal/model"
)

func TestBuild_SingleDirectTrip(t *testing.T) {
	stations := []Station{{ID: "A"}, {ID: "B"}}
	trips := []Trip{{ID: "T1", From: "A", To: "B", Departure: 0, Arrival: 10, Capacity: 5}}

	g, idx, stats, diags := Build(stations, trips, nil)

	assert.Empty(t, diags)
	assert.Equal(t, 0, stats.SuccessfulFootpaths+stats.FailedFootpaths) // no footpaths supplied

	source, ok := idx.EarliestTransfer("A", 0)
	assert.True(t, ok)
	sink, ok := idx.MainArrival("B")
	assert.True(t, ok)

	assert.Equal(t, model.NodeTransfer, g.Node(source).Kind)
	assert.Equal(t, 0, g.Node(source).Time)
	assert.Equal(t, model.NodeMainArrival, g.Node(sink).Kind)

	boardEdges := g.OutEdges(source)
	assert.Len(t, boardEdges, 1)
	board := g.Edge(boardEdges[0])
	assert.Equal(t, model.EdgeBoard, board.Kind)

	rideEdges := g.OutEdges(board.To)
	assert.Len(t, rideEdges, 1)
	ride := g.Edge(rideEdges[0])
	assert.Equal(t, model.EdgeRide, ride.Kind)
	assert.Equal(t, 10, ride.Duration)
	assert.Equal(t, 5, ride.Capacity)

	arrivalEdges := g.OutEdges(ride.To)
	found := false
	for _, eid := range arrivalEdges {
		e := g.Edge(eid)
		if e.Kind == model.EdgeMainArrivalRelation {
			assert.Equal(t, sink, e.To)
			found = true
		}
	}
	assert.True(t, found, "expected a MainArrivalRelation edge from the trip's arrival")
}

func TestBuild_TransferChainSortedByTime(t *testing.T) {
	stations := []Station{{ID: "A"}, {ID: "B", TransferTime: 5}, {ID: "C"}}
	trips := []Trip{
		{ID: "T1", From: "A", To: "B", Departure: 0, Arrival: 10, Capacity: 10},
		{ID: "T2", From: "B", To: "C", Departure: 20, Arrival: 30, Capacity: 10},
		{ID: "T3", From: "B", To: "C", Departure: 15, Arrival: 25, Capacity: 10},
	}

	g, idx, _, _ := Build(stations, trips, nil)

	entries := idx.transfers["B"]
	assert.Len(t, entries, 2)
	assert.True(t, entries[0].Time < entries[1].Time)

	waitAt := 0
	for _, eid := range g.OutEdges(entries[0].Node) {
		if g.Edge(eid).Kind == model.EdgeWaitAtStation {
			waitAt++
			assert.Equal(t, entries[1].Time-entries[0].Time, g.Edge(eid).Duration)
		}
	}
	assert.Equal(t, 1, waitAt)
}

func TestBuild_DanglingReferenceSkipped(t *testing.T) {
	stations := []Station{{ID: "A"}}
	trips := []Trip{{ID: "T1", From: "A", To: "ghost", Departure: 0, Arrival: 10, Capacity: 1}}

	g, _, _, diags := Build(stations, trips, nil)

	assert.Len(t, diags, 1)
	assert.Equal(t, model.DanglingReference, diags[0].Kind)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuild_FootpathWalk(t *testing.T) {
	stations := []Station{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	trips := []Trip{
		{ID: "T1", From: "A", To: "B", Departure: 0, Arrival: 10, Capacity: 5},
		{ID: "T2", From: "C", To: "D", Departure: 15, Arrival: 25, Capacity: 5},
	}
	footpaths := []Footpath{{From: "B", To: "C", Duration: 3}}

	g, idx, stats, _ := Build(stations, trips, footpaths)

	assert.Equal(t, 1, stats.SuccessfulFootpaths)
	assert.Equal(t, 0, stats.FailedFootpaths)

	transferC, ok := idx.EarliestTransfer("C", 13)
	assert.True(t, ok)
	assert.Equal(t, 15, g.Node(transferC).Time)

	walkFound := false
	for _, e := range g.Edges {
		if e.Kind == model.EdgeWalk {
			walkFound = true
			assert.Equal(t, 3, e.Duration)
			assert.Equal(t, transferC, e.To)
		}
	}
	assert.True(t, walkFound)
}
