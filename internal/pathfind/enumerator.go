// Package pathfind enumerates candidate itineraries through a
// timetable graph with an iterative-deepening, cost-bounded depth
// first search (IDDFS-by-cost).
package pathfind

import (
	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

// Enumerate finds every path from source to sink that carries at
// least minCapacity passengers on every Ride edge, stays within
// maxDuration total duration, and fits within one of the ascending
// budgetSteps. It tries each budget step in order and returns as soon
// as a step yields at least one path; larger steps are never tried
// once a smaller one succeeds.
//
// cancel is checked between budget steps, not between individual
// DFS edges: on a closed channel, Enumerate returns whatever paths it
// already found at the current step, together with model.ErrCancelled.
func Enumerate(g *tetg.Graph, source, sink model.NodeID, minCapacity, maxDuration int, budgetSteps []int, costs model.Costs, cancel <-chan struct{}) ([]model.Path, error) {
	for _, budget := range budgetSteps {
		select {
		case <-cancel:
			return nil, model.ErrCancelled
		default:
		}

		s := &search{
			graph:        g,
			sink:         sink,
			minCapacity:  minCapacity,
			costs:        costs,
			current:      make([]model.EdgeID, 0, 16),
		}
		s.visit(source, maxDuration, budget)
		if len(s.found) > 0 {
			return s.found, nil
		}
	}
	return nil, nil
}

type search struct {
	graph       *tetg.Graph
	sink        model.NodeID
	minCapacity int
	costs       model.Costs
	current     []model.EdgeID
	found       []model.Path
}

// visit explores every outgoing edge of node that fits within the
// remaining duration, capacity, and cost budget, recording a result
// whenever node is the sink. No visited-node set is kept. Zero-duration
// edges (Board, and any Ride, Alight, WaitAtStation or Walk edge whose
// two events share a time) can close a cycle, so the graph is not
// guaranteed acyclic; the cost budget bounds the DFS instead, since
// every DefaultCosts entry except MainArrivalRelation is positive and
// MainArrivalRelation leads into a MainArrival node, which has no
// outgoing edges.
func (s *search) visit(node model.NodeID, remainingDuration, remainingBudget int) {
	if node == s.sink {
		edges := make([]model.EdgeID, len(s.current))
		copy(edges, s.current)
		duration, cost := s.pathTotals(edges)
		s.found = append(s.found, model.Path{
			Edges:             edges,
			Duration:          duration,
			Cost:              cost,
			RemainingBudget:   remainingBudget,
			RemainingDuration: remainingDuration,
		})
		return
	}

	for _, eid := range s.graph.OutEdges(node) {
		e := s.graph.Edge(eid)
		if e.Duration > remainingDuration {
			continue
		}
		if e.RemainingCapacity() < s.minCapacity {
			continue
		}
		cost := s.costs.Cost(e.Kind)
		if cost > remainingBudget {
			continue
		}

		s.current = append(s.current, eid)
		s.visit(e.To, remainingDuration-e.Duration, remainingBudget-cost)
		s.current = s.current[:len(s.current)-1]
	}
}

func (s *search) pathTotals(edges []model.EdgeID) (duration, cost int) {
	for _, eid := range edges {
		e := s.graph.Edge(eid)
		duration += e.Duration
		cost += s.costs.Cost(e.Kind)
	}
	return duration, cost
}
