// Package subgraph extracts a diagnostic view of a timetable graph
// restricted to a chosen set of edges, for external tooling rather
// than for use by the solver itself; nothing in this repository calls
// it.
package subgraph

import (
	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

// Extract builds a new graph containing exactly the given edges and
// the nodes incident to at least one of them, preserving node and
// edge weights. Node/edge identifiers in the result are renumbered;
// callers that need to correlate back to the source graph should keep
// their own mapping.
func Extract(g *tetg.Graph, edges []model.EdgeID) *tetg.Graph {
	out := tetg.NewGraph()
	nodeRemap := make(map[model.NodeID]model.NodeID)

	remap := func(n model.NodeID) model.NodeID {
		if id, ok := nodeRemap[n]; ok {
			return id
		}
		id := out.AddNode(g.Node(n))
		nodeRemap[n] = id
		return id
	}

	for _, eid := range edges {
		e := g.Edge(eid)
		from := remap(e.From)
		to := remap(e.To)
		out.AddEdge(model.Edge{
			Kind:        e.Kind,
			From:        from,
			To:          to,
			Duration:    e.Duration,
			Capacity:    e.Capacity,
			Utilization: e.Utilization,
		})
	}

	return out
}
