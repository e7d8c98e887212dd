package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/transitsolve/internal/model"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	assignments := model.Assignments{
		Groups: []model.GroupResult{
			{
				GroupID:    "G1",
				Passengers: 3,
				Chosen:     0,
				Candidates: []model.Path{
					{Edges: []model.EdgeID{1, 2, 3}, Duration: 10, Cost: 7, RemainingBudget: 3, RemainingDuration: 90},
				},
			},
			{
				GroupID:    "G2",
				Passengers: 1,
				Chosen:     -1,
			},
		},
	}

	blob, err := Encode(assignments)
	assert.NoError(t, err)

	decoded, err := Decode(blob)
	assert.NoError(t, err)
	assert.Equal(t, assignments, decoded)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a gob stream"))
	assert.Error(t, err)
}
