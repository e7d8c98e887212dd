package tetg

import (
	"sort"

	"github.com/passbi/transitsolve/internal/model"
)

// Station is a validated timetable station: an identifier and the
// in-station transfer time used by alight edges.
type Station struct {
	ID           string
	TransferTime int
}

// Trip is a single scheduled ride between two stations. Several trip
// records may share the same TripID to model a train that calls at
// more than two stations; the builder links consecutive legs of the
// same trip with a WaitInTrain edge from each arrival of that trip at
// a station to the trip's next departure from that station.
type Trip struct {
	ID         string
	From       string
	To         string
	Departure  int
	Arrival    int
	Capacity   int
}

// Footpath is a walking connection between two stations.
type Footpath struct {
	From     string
	To       string
	Duration int
}

// tripEvent remembers, for a single trip leg, the nodes the trips
// pass created, so the station passes can wire Board/WaitInTrain/
// Alight without re-scanning the input.
type tripEvent struct {
	station  string
	time     int
	node     model.NodeID
}

// BuildStats summarizes a completed build, mirroring the node/edge/
// footpath counters the original builder logged.
type BuildStats struct {
	NodeCount           int
	EdgeCount           int
	SuccessfulFootpaths int
	FailedFootpaths     int
}

// Build constructs the time-expanded timetable graph from validated
// stations, trips and footpaths, following the four-pass procedure:
// trips, station platform chains, station sinks/alights, footpaths.
// Records referencing an unknown station are skipped and reported as
// a DanglingReference diagnostic; the build otherwise continues.
func Build(stations []Station, trips []Trip, footpaths []Footpath) (*Graph, *Indices, BuildStats, []model.Diagnostic) {
	g := NewGraph()
	idx := newIndices()
	var diags []model.Diagnostic

	stationSet := make(map[string]Station, len(stations))
	for _, s := range stations {
		stationSet[s.ID] = s
	}

	// Pass 1: trips. Build one Arrival + Departure + Ride edge per
	// trip leg, and remember the events grouped by (trip, station) so
	// the station passes can find same-trip continuations.
	departuresByTrip := make(map[string][]tripEvent) // tripID -> departure events
	arrivalsByTrip := make(map[string][]tripEvent)    // tripID -> arrival events
	arrivalsByStation := make(map[string][]tripEvent)
	var tripOrder []string // trip IDs in first-seen input order

	for _, t := range trips {
		if _, ok := stationSet[t.From]; !ok {
			diags = append(diags, model.Diagnostic{Kind: model.DanglingReference, Subject: t.ID, Message: "unknown from_station " + t.From})
			continue
		}
		if _, ok := stationSet[t.To]; !ok {
			diags = append(diags, model.Diagnostic{Kind: model.DanglingReference, Subject: t.ID, Message: "unknown to_station " + t.To})
			continue
		}

		depNode := g.AddNode(model.Node{Kind: model.NodeDeparture, TripID: t.ID, Time: t.Departure, StationID: t.From})
		arrNode := g.AddNode(model.Node{Kind: model.NodeArrival, TripID: t.ID, Time: t.Arrival, StationID: t.To})
		g.AddEdge(model.Edge{
			Kind:     model.EdgeRide,
			From:     depNode,
			To:       arrNode,
			Duration: t.Arrival - t.Departure,
			Capacity: t.Capacity,
		})

		dep := tripEvent{station: t.From, time: t.Departure, node: depNode}
		arr := tripEvent{station: t.To, time: t.Arrival, node: arrNode}
		if _, seen := departuresByTrip[t.ID]; !seen {
			tripOrder = append(tripOrder, t.ID)
		}
		departuresByTrip[t.ID] = append(departuresByTrip[t.ID], dep)
		arrivalsByTrip[t.ID] = append(arrivalsByTrip[t.ID], arr)
		arrivalsByStation[t.To] = append(arrivalsByStation[t.To], arr)
		idx.tripArrivals[tripArrivalKey(t.ID, t.To)] = arrNode
	}

	// Pass 2: station platform chains. One Transfer node per
	// departure, a Board edge into the departure, and a WaitInTrain
	// edge from each same-trip arrival at that station for which this
	// is the trip's next departure from the station.
	for _, tripID := range tripOrder {
		deps := departuresByTrip[tripID]
		arrs := arrivalsByTrip[tripID]
		for _, dep := range deps {
			transferNode := g.AddNode(model.Node{Kind: model.NodeTransfer, Time: dep.time, StationID: dep.station})
			g.AddEdge(model.Edge{Kind: model.EdgeBoard, From: transferNode, To: dep.node, Duration: 0, Capacity: model.UnlimitedCapacity})
			idx.transfers[dep.station] = append(idx.transfers[dep.station], transferEntry{Time: dep.time, Node: transferNode})

			for _, arr := range arrs {
				if arr.station != dep.station || arr.time > dep.time {
					continue
				}
				next := true
				for _, other := range deps {
					if other.station == dep.station && other.time >= arr.time && other.time < dep.time {
						next = false
					}
				}
				if next {
					g.AddEdge(model.Edge{Kind: model.EdgeWaitInTrain, From: arr.node, To: dep.node, Duration: dep.time - arr.time, Capacity: model.UnlimitedCapacity})
				}
			}
		}
	}

	for station, entries := range idx.transfers {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })
		idx.transfers[station] = entries
		for i := 1; i < len(entries); i++ {
			g.AddEdge(model.Edge{
				Kind:     model.EdgeWaitAtStation,
				From:     entries[i-1].Node,
				To:       entries[i].Node,
				Duration: entries[i].Time - entries[i-1].Time,
				Capacity: model.UnlimitedCapacity,
			})
		}
	}

	// Pass 3: station sinks and alights. One MainArrival per station;
	// every arrival relates to its station's MainArrival, and to the
	// earliest eligible Transfer.
	for _, s := range stations {
		sinkNode := g.AddNode(model.Node{Kind: model.NodeMainArrival, StationID: s.ID})
		idx.mainArrival[s.ID] = sinkNode
	}

	for station, arrs := range arrivalsByStation {
		s, ok := stationSet[station]
		if !ok {
			continue
		}
		sink, hasSink := idx.mainArrival[station]
		for _, arr := range arrs {
			if hasSink {
				g.AddEdge(model.Edge{Kind: model.EdgeMainArrivalRelation, From: arr.node, To: sink, Duration: 0, Capacity: model.UnlimitedCapacity})
			}
			if t, found := idx.EarliestTransfer(station, arr.time+s.TransferTime); found {
				g.AddEdge(model.Edge{Kind: model.EdgeAlight, From: arr.node, To: t, Duration: s.TransferTime, Capacity: model.UnlimitedCapacity})
			}
		}
	}

	// Pass 4: footpaths. For each arrival at a footpath's origin
	// station, walk to the earliest eligible Transfer at the
	// destination station.
	successfulFootpaths, failedFootpaths := 0, 0
	for _, fp := range footpaths {
		if _, ok := stationSet[fp.From]; !ok {
			diags = append(diags, model.Diagnostic{Kind: model.DanglingReference, Subject: fp.From, Message: "unknown footpath from_station"})
			continue
		}
		if _, ok := stationSet[fp.To]; !ok {
			diags = append(diags, model.Diagnostic{Kind: model.DanglingReference, Subject: fp.To, Message: "unknown footpath to_station"})
			continue
		}
		for _, arr := range arrivalsByStation[fp.From] {
			t, found := idx.EarliestTransfer(fp.To, arr.time+fp.Duration)
			if !found {
				failedFootpaths++
				continue
			}
			g.AddEdge(model.Edge{Kind: model.EdgeWalk, From: arr.node, To: t, Duration: fp.Duration, Capacity: model.UnlimitedCapacity})
			successfulFootpaths++
		}
	}

	stats := BuildStats{
		NodeCount:           g.NodeCount(),
		EdgeCount:           g.EdgeCount(),
		SuccessfulFootpaths: successfulFootpaths,
		FailedFootpaths:     failedFootpaths,
	}
	return g, idx, stats, diags
}
