package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdge_RemainingCapacity(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want int
	}{
		{"ride with room", Edge{Kind: EdgeRide, Capacity: 10, Utilization: 4}, 6},
		{"ride full", Edge{Kind: EdgeRide, Capacity: 2, Utilization: 2}, 0},
		{"board is unlimited", Edge{Kind: EdgeBoard}, UnlimitedCapacity},
		{"walk is unlimited", Edge{Kind: EdgeWalk}, UnlimitedCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.edge.RemainingCapacity())
		})
	}
}

func TestEdge_IncreaseUtilization(t *testing.T) {
	ride := Edge{Kind: EdgeRide, Capacity: 10}
	ride.IncreaseUtilization(3)
	assert.Equal(t, 3, ride.Utilization)

	board := Edge{Kind: EdgeBoard}
	board.IncreaseUtilization(3)
	assert.Equal(t, 0, board.Utilization)
}

func TestCosts_DefaultTable(t *testing.T) {
	tests := []struct {
		kind EdgeKind
		want int
	}{
		{EdgeRide, 2},
		{EdgeWaitInTrain, 1},
		{EdgeBoard, 5},
		{EdgeAlight, 4},
		{EdgeWaitAtStation, 3},
		{EdgeWalk, 10},
		{EdgeMainArrivalRelation, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultCosts.Cost(tt.kind))
		})
	}
}
