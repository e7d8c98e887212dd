// Package ingest reads the four flat CSV tables the core consumes
// (stations, trips, footpaths, groups), in the same streaming
// column-map style the teacher's GTFS parser uses. Unlike that
// parser, malformed rows are returned as model.Diagnostic values
// rather than logged, since this layer feeds the I/O-free core and
// callers decide how to surface problems. References to unknown
// stations are not checked here; tetg.Build reports those.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/tetg"
)

func makeColumnMap(header []string) map[string]int {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}
	return colMap
}

func getField(record []string, colMap map[string]int, name string) string {
	if idx, ok := colMap[name]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func getInt(record []string, colMap map[string]int, name string) (int, error) {
	raw := getField(record, colMap, name)
	if raw == "" {
		return 0, fmt.Errorf("missing field %q", name)
	}
	return strconv.Atoi(raw)
}

// Stations reads stations.csv: id, transfer_time.
func Stations(path string) ([]tetg.Station, []model.Diagnostic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return stationsFromReader(file)
}

func stationsFromReader(r io.Reader) ([]tetg.Station, []model.Diagnostic, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	colMap := makeColumnMap(header)

	var stations []tetg.Station
	var diags []model.Diagnostic

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: err.Error()})
			continue
		}

		id := getField(record, colMap, "id")
		if id == "" {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: "station row missing id"})
			continue
		}
		transferTime, err := getInt(record, colMap, "transfer_time")
		if err != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Subject: id, Message: "bad transfer_time: " + err.Error()})
			continue
		}

		stations = append(stations, tetg.Station{ID: id, TransferTime: transferTime})
	}

	return stations, diags, nil
}

// Trips reads trips.csv: id, from_station, to_station, departure, arrival, capacity.
func Trips(path string) ([]tetg.Trip, []model.Diagnostic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return tripsFromReader(file)
}

func tripsFromReader(r io.Reader) ([]tetg.Trip, []model.Diagnostic, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	colMap := makeColumnMap(header)

	var trips []tetg.Trip
	var diags []model.Diagnostic

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: err.Error()})
			continue
		}

		id := getField(record, colMap, "id")
		from := getField(record, colMap, "from_station")
		to := getField(record, colMap, "to_station")
		if id == "" || from == "" || to == "" {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Subject: id, Message: "trip row missing id/from_station/to_station"})
			continue
		}
		departure, errDep := getInt(record, colMap, "departure")
		arrival, errArr := getInt(record, colMap, "arrival")
		capacity, errCap := getInt(record, colMap, "capacity")
		if errDep != nil || errArr != nil || errCap != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Subject: id, Message: "bad departure/arrival/capacity"})
			continue
		}
		if arrival < departure {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Subject: id, Message: "arrival before departure"})
			continue
		}

		trips = append(trips, tetg.Trip{ID: id, From: from, To: to, Departure: departure, Arrival: arrival, Capacity: capacity})
	}

	return trips, diags, nil
}

// Footpaths reads footpaths.csv: from_station, to_station, duration.
func Footpaths(path string) ([]tetg.Footpath, []model.Diagnostic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return footpathsFromReader(file)
}

func footpathsFromReader(r io.Reader) ([]tetg.Footpath, []model.Diagnostic, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	colMap := makeColumnMap(header)

	var footpaths []tetg.Footpath
	var diags []model.Diagnostic

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: err.Error()})
			continue
		}

		from := getField(record, colMap, "from_station")
		to := getField(record, colMap, "to_station")
		if from == "" || to == "" {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: "footpath row missing from_station/to_station"})
			continue
		}
		duration, err := getInt(record, colMap, "duration")
		if err != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: "bad duration: " + err.Error()})
			continue
		}

		footpaths = append(footpaths, tetg.Footpath{From: from, To: to, Duration: duration})
	}

	return footpaths, diags, nil
}

// Groups reads groups.csv: id, start, destination, departure, arrival, passengers, in_trip.
func Groups(path string) ([]model.Group, []model.Diagnostic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return groupsFromReader(file)
}

func groupsFromReader(r io.Reader) ([]model.Group, []model.Diagnostic, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	colMap := makeColumnMap(header)

	var groups []model.Group
	var diags []model.Diagnostic

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Message: err.Error()})
			continue
		}

		id := getField(record, colMap, "id")
		start := getField(record, colMap, "start")
		destination := getField(record, colMap, "destination")
		if id == "" || start == "" || destination == "" {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Subject: id, Message: "group row missing id/start/destination"})
			continue
		}
		departure, errDep := getInt(record, colMap, "departure")
		arrival, errArr := getInt(record, colMap, "arrival")
		passengers, errPax := getInt(record, colMap, "passengers")
		if errDep != nil || errArr != nil || errPax != nil {
			diags = append(diags, model.Diagnostic{Kind: model.MalformedInput, Subject: id, Message: "bad departure/arrival/passengers"})
			continue
		}

		groups = append(groups, model.Group{
			ID:          id,
			Start:       start,
			Destination: destination,
			Departure:   departure,
			Arrival:     arrival,
			Passengers:  passengers,
			InTrip:      getField(record, colMap, "in_trip"),
		})
	}

	return groups, diags, nil
}
