// Package solver drives the path enumerator per group, sorted by
// party size, and greedily augments the chosen path's capacity.
package solver

import (
	"sort"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/pathfind"
	"github.com/passbi/transitsolve/internal/tetg"
)

// DefaultBudgetSteps is the ascending cost-budget ladder the
// enumerator climbs until it finds a path, mirroring the original
// solver's ceiling of 100 total edge cost.
var DefaultBudgetSteps = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// Options configures a solve run. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	Costs          model.Costs
	BudgetSteps    []int
	DurationFactor float64
	DurationSlack  int
}

// DefaultOptions returns the solver's default tuning: the canonical
// cost table, the 10-step budget ladder, and a max-duration formula
// of 2x the requested travel time plus 50 minutes of slack.
func DefaultOptions() Options {
	return Options{
		Costs:          model.DefaultCosts,
		BudgetSteps:    DefaultBudgetSteps,
		DurationFactor: 2.0,
		DurationSlack:  50,
	}
}

// SolveGroups places each group onto the graph in descending order of
// party size, augmenting Ride-edge utilization for the best path it
// finds. It returns the resulting assignments plus a failure record
// for every group that could not be placed; failures never abort the
// batch.
func SolveGroups(g *tetg.Graph, idx *tetg.Indices, groups []model.Group, opts Options) (model.Assignments, []model.GroupFailure) {
	ordered := make([]model.Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Passengers != ordered[j].Passengers {
			return ordered[i].Passengers > ordered[j].Passengers
		}
		return ordered[i].ID < ordered[j].ID
	})

	var assignments model.Assignments
	var failures []model.GroupFailure

	for _, group := range ordered {
		result, failure := solveOne(g, idx, group, opts)
		assignments.Groups = append(assignments.Groups, result)
		if failure != nil {
			failures = append(failures, *failure)
		}
	}

	return assignments, failures
}

func solveOne(g *tetg.Graph, idx *tetg.Indices, group model.Group, opts Options) (model.GroupResult, *model.GroupFailure) {
	result := model.GroupResult{GroupID: group.ID, Passengers: group.Passengers, Chosen: -1}

	if group.Departure > group.Arrival {
		return result, &model.GroupFailure{GroupID: group.ID, Reason: "departure after desired arrival"}
	}

	source, ok := locateSource(idx, group)
	if !ok {
		return result, &model.GroupFailure{GroupID: group.ID, Reason: "no source node for " + group.Start}
	}
	sink, ok := idx.MainArrival(group.Destination)
	if !ok {
		return result, &model.GroupFailure{GroupID: group.ID, Reason: "no main arrival for " + group.Destination}
	}

	maxDuration := int(opts.DurationFactor*float64(group.TravelTime())) + opts.DurationSlack

	paths, err := pathfind.Enumerate(g, source, sink, group.Passengers, maxDuration, opts.BudgetSteps, opts.Costs, nil)
	if err != nil || len(paths) == 0 {
		return result, &model.GroupFailure{GroupID: group.ID, Reason: "no feasible path within budget"}
	}

	rankPaths(paths)
	result.Candidates = paths
	result.Chosen = 0
	Augment(g, paths[0], group.Passengers)

	return result, nil
}

// locateSource finds a group's entry point into the graph: the
// Arrival node of its in-progress trip if InTrip is set, otherwise
// the earliest platform-wait Transfer at or after its departure time.
func locateSource(idx *tetg.Indices, group model.Group) (model.NodeID, bool) {
	if group.InTrip != "" {
		return idx.ArrivalOnTrip(group.InTrip, group.Start)
	}
	return idx.EarliestTransfer(group.Start, group.Departure)
}

// rankPaths sorts candidates by remaining budget descending, then by
// duration ascending, per the enumerator's ranking contract.
func rankPaths(paths []model.Path) {
	sort.SliceStable(paths, func(i, j int) bool {
		if paths[i].RemainingBudget != paths[j].RemainingBudget {
			return paths[i].RemainingBudget > paths[j].RemainingBudget
		}
		return paths[i].Duration < paths[j].Duration
	})
}
