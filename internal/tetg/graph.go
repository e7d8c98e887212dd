// Package tetg builds and indexes the time-expanded timetable graph:
// the directed multi-layer graph of departure/arrival/transfer/
// main-arrival nodes and the ride/wait/board/alight/walk edges
// between them.
package tetg

import "github.com/passbi/transitsolve/internal/model"

// Graph is an arena of nodes and edges addressed by small integer
// IDs rather than pointers, so paths can be cloned cheaply as
// []model.EdgeID and node/edge references never form cycles of
// ownership.
type Graph struct {
	Nodes []model.Node
	Edges []model.Edge
	out   [][]model.EdgeID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends n and returns its ID.
func (g *Graph) AddNode(n model.Node) model.NodeID {
	id := model.NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, n)
	g.out = append(g.out, nil)
	return id
}

// AddEdge appends e and indexes it under e.From's adjacency list.
func (g *Graph) AddEdge(e model.Edge) model.EdgeID {
	id := model.EdgeID(len(g.Edges))
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], id)
	return id
}

// Node returns the node at id.
func (g *Graph) Node(id model.NodeID) model.Node {
	return g.Nodes[id]
}

// Edge returns the edge at id.
func (g *Graph) Edge(id model.EdgeID) model.Edge {
	return g.Edges[id]
}

// EdgeRef returns a pointer to the edge at id, for in-place
// utilization updates during capacity accounting.
func (g *Graph) EdgeRef(id model.EdgeID) *model.Edge {
	return &g.Edges[id]
}

// OutEdges returns the outgoing edge IDs of node id, in insertion order.
func (g *Graph) OutEdges(id model.NodeID) []model.EdgeID {
	return g.out[id]
}

// NodeCount and EdgeCount report the arena sizes, used for build
// diagnostics (node_count/edge_count in the builder's summary).
func (g *Graph) NodeCount() int { return len(g.Nodes) }
func (g *Graph) EdgeCount() int { return len(g.Edges) }
