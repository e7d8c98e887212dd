package anneal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

func sampleAssignments() (*tetg.Graph, model.Assignments) {
	g, _, _, _ := tetg.Build(
		[]tetg.Station{{ID: "A"}, {ID: "B"}},
		[]tetg.Trip{{ID: "T1", From: "A", To: "B", Departure: 0, Arrival: 10, Capacity: 10}},
		nil,
	)
	var rideEdge model.EdgeID
	for i, e := range g.Edges {
		if e.Kind == model.EdgeRide {
			rideEdge = model.EdgeID(i)
		}
	}

	assignments := model.Assignments{
		Groups: []model.GroupResult{
			{
				GroupID:    "G1",
				Passengers: 2,
				Candidates: []model.Path{
					{Edges: []model.EdgeID{rideEdge}, Duration: 10, Cost: 2},
					{Edges: []model.EdgeID{rideEdge}, Duration: 20, Cost: 1},
				},
				Chosen: 0,
			},
		},
	}
	return g, assignments
}

func TestRun_PreservesCandidateStructure(t *testing.T) {
	g, assignments := sampleAssignments()

	result := Run(g, assignments, 42, DefaultOptions())

	assert.Len(t, result.Groups, 1)
	assert.True(t, result.Groups[0].Chosen == 0 || result.Groups[0].Chosen == 1)
}

func TestRun_DoesNotMutateGraphUtilization(t *testing.T) {
	g, assignments := sampleAssignments()

	_ = Run(g, assignments, 7, DefaultOptions())

	for _, e := range g.Edges {
		if e.Kind == model.EdgeRide {
			assert.Equal(t, 0, e.Utilization)
		}
	}
}

func TestCost_PenalizesUnassignedGroups(t *testing.T) {
	g, assignments := sampleAssignments()

	assigned := cost(g, assignments.Groups, selection{0})
	unassigned := cost(g, assignments.Groups, selection{-1})

	assert.Greater(t, unassigned, assigned)
}

func TestHillClimb_PicksLowestCostNeighbor(t *testing.T) {
	neighbors := []selection{{1}, {0}}
	costFn := func(s selection) int { return s[0] * 100 }

	chosen := HillClimb(neighbors, costFn, nil)

	assert.Equal(t, selection{0}, chosen)
}
