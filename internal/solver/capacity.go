package solver

import (
	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

// Augment charges partySize additional passengers onto every Ride
// edge of path. Capacity pruning in the enumerator is supposed to
// guarantee every Ride edge already has enough remaining capacity;
// if that invariant has somehow been violated, Augment panics rather
// than silently corrupting the graph.
func Augment(g *tetg.Graph, path model.Path, partySize int) {
	for _, eid := range path.Edges {
		e := g.EdgeRef(eid)
		if e.Kind != model.EdgeRide {
			continue
		}
		if e.RemainingCapacity() < partySize {
			panic(model.ErrCapacityOverflow{Edge: eid, Capacity: e.Capacity, Attempt: e.Utilization + partySize})
		}
		e.IncreaseUtilization(partySize)
	}
}
