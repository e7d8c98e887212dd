// Package anneal runs a simulated-annealing local search over a
// solved batch's per-group candidate paths, looking for a lower-cost
// combination of choices without touching Ride-edge utilization.
package anneal

import (
	"math"
	"math/rand"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

const (
	unassignedPenalty = 100000
	overflowPenalty   = 100000
)

// Selector picks one neighbor state to propose at each annealing
// step. The default, HillClimb, matches the original solver: the
// neighbor scored lowest by cost is proposed before the
// temperature-based accept/reject test runs. Random is a pure-random
// alternative, exposed because the hill-climb-first shape is a
// deliberate but swappable choice, not an inherent part of simulated
// annealing.
type Selector func(neighbors []selection, cost func(selection) int, rng *rand.Rand) selection

// HillClimb proposes the lowest-cost neighbor.
func HillClimb(neighbors []selection, cost func(selection) int, rng *rand.Rand) selection {
	best := neighbors[0]
	bestCost := cost(best)
	for _, n := range neighbors[1:] {
		if c := cost(n); c < bestCost {
			best, bestCost = n, c
		}
	}
	return best
}

// Random proposes a uniformly chosen neighbor.
func Random(neighbors []selection, cost func(selection) int, rng *rand.Rand) selection {
	return neighbors[rng.Intn(len(neighbors))]
}

// selection assigns each group to a candidate index, or -1 if the
// group has no feasible candidate at all.
type selection []int

// Options configures an annealing run.
type Options struct {
	Selector Selector
}

// DefaultOptions selects HillClimb, the original solver's behavior.
func DefaultOptions() Options {
	return Options{Selector: HillClimb}
}

// Run searches for a lower-cost combination of per-group path choices
// starting from assignments' greedy selection, following a
// T(t) = 100/t^2 schedule until T drops below 0.1. It returns a new
// Assignments with possibly different Chosen indices; it never
// mutates g's edge utilization.
func Run(g *tetg.Graph, assignments model.Assignments, seed int64, opts Options) model.Assignments {
	rng := rand.New(rand.NewSource(seed))
	groups := assignments.Groups

	costOf := func(s selection) int {
		return cost(g, groups, s)
	}

	current := initialSelection(groups)
	currentCost := costOf(current)

	for t := 1; ; t++ {
		temperature := 100.0 / float64(t*t)
		if temperature < 0.1 {
			break
		}

		neighbors := neighborsOf(current, groups)
		if len(neighbors) == 0 {
			break
		}

		next := opts.Selector(neighbors, costOf, rng)
		nextCost := costOf(next)
		delta := currentCost - nextCost

		if delta > 0 {
			current, currentCost = next, nextCost
			continue
		}
		probability := math.Exp(float64(delta) / temperature)
		if rng.Float64() < probability {
			current, currentCost = next, nextCost
		}
	}

	return applySelection(assignments, current)
}

func initialSelection(groups []model.GroupResult) selection {
	s := make(selection, len(groups))
	for i, gr := range groups {
		s[i] = gr.Chosen
	}
	return s
}

func neighborsOf(s selection, groups []model.GroupResult) []selection {
	var out []selection
	for i, gr := range groups {
		for c := range gr.Candidates {
			if c == s[i] {
				continue
			}
			neighbor := make(selection, len(s))
			copy(neighbor, s)
			neighbor[i] = c
			out = append(out, neighbor)
		}
	}
	return out
}

func cost(g *tetg.Graph, groups []model.GroupResult, s selection) int {
	total := 0
	utilization := make(map[model.EdgeID]int)

	for i, gr := range groups {
		choice := s[i]
		if choice < 0 || choice >= len(gr.Candidates) {
			total += unassignedPenalty
			continue
		}
		path := gr.Candidates[choice]
		total += path.Duration
		for _, eid := range path.Edges {
			if g.Edge(eid).Kind == model.EdgeRide {
				utilization[eid] += gr.Passengers
			}
		}
	}

	for eid, used := range utilization {
		if capacity := g.Edge(eid).Capacity; used > capacity {
			total += (used - capacity) * overflowPenalty
		}
	}

	return total
}

func applySelection(assignments model.Assignments, s selection) model.Assignments {
	out := model.Assignments{Groups: make([]model.GroupResult, len(assignments.Groups))}
	for i, gr := range assignments.Groups {
		gr.Chosen = s[i]
		out.Groups[i] = gr
	}
	return out
}
