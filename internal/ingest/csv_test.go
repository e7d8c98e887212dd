package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

func TestStationsFromReader(t *testing.T) {
	input := "id,transfer_time\nA,0\nB,5\n"

	stations, diags, err := stationsFromReader(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, []tetg.Station{{ID: "A", TransferTime: 0}, {ID: "B", TransferTime: 5}}, stations)
}

func TestStationsFromReader_SkipsMalformedRow(t *testing.T) {
	input := "id,transfer_time\nA,not-a-number\nB,5\n"

	stations, diags, err := stationsFromReader(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, stations, 1)
	assert.Equal(t, "B", stations[0].ID)
	assert.Len(t, diags, 1)
	assert.Equal(t, model.MalformedInput, diags[0].Kind)
}

func TestTripsFromReader_RejectsArrivalBeforeDeparture(t *testing.T) {
	input := "id,from_station,to_station,departure,arrival,capacity\nT1,A,B,10,5,3\n"

	trips, diags, err := tripsFromReader(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Empty(t, trips)
	assert.Len(t, diags, 1)
}

func TestGroupsFromReader_ParsesOptionalInTrip(t *testing.T) {
	input := "id,start,destination,departure,arrival,passengers,in_trip\nG1,A,B,0,10,3,\nG2,B,C,10,30,1,T1\n"

	groups, diags, err := groupsFromReader(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Empty(t, diags)
	assert.Len(t, groups, 2)
	assert.Equal(t, "", groups[0].InTrip)
	assert.Equal(t, "T1", groups[1].InTrip)
}

func TestFootpathsFromReader(t *testing.T) {
	input := "from_station,to_station,duration\nB,C,3\n"

	footpaths, diags, err := footpathsFromReader(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Empty(t, diags)
	assert.Len(t, footpaths, 1)
	assert.Equal(t, 3, footpaths[0].Duration)
}
