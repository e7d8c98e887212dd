package subgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

func TestExtract_KeepsOnlyChosenEdgesAndIncidentNodes(t *testing.T) {
	g, idx, _, _ := tetg.Build(
		[]tetg.Station{{ID: "A"}, {ID: "B"}},
		[]tetg.Trip{{ID: "T1", From: "A", To: "B", Departure: 0, Arrival: 10, Capacity: 5}},
		nil,
	)
	source, _ := idx.EarliestTransfer("A", 0)
	boardEdge := g.OutEdges(source)[0]

	sub := Extract(g, []model.EdgeID{boardEdge})

	assert.Equal(t, 1, sub.EdgeCount())
	assert.Equal(t, 2, sub.NodeCount())
	assert.Equal(t, model.EdgeBoard, sub.Edge(0).Kind)
}
