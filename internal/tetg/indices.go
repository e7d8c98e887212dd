package tetg

import "github.com/passbi/transitsolve/internal/model"

// transferEntry pairs a Transfer node with its event time, kept
// sorted ascending per station so the earliest-eligible lookups used
// by alight/walk edges and by the solver's source lookup are a binary
// search rather than a scan.
type transferEntry struct {
	Time int
	Node model.NodeID
}

// Indices holds the lookups the builder produces alongside the
// graph: each station's ordered platform-wait chain, and each
// station's single MainArrival sink.
type Indices struct {
	transfers    map[string][]transferEntry
	mainArrival  map[string]model.NodeID
	tripArrivals map[string]model.NodeID // tripID + "\x00" + station -> Arrival node
}

func newIndices() *Indices {
	return &Indices{
		transfers:    make(map[string][]transferEntry),
		mainArrival:  make(map[string]model.NodeID),
		tripArrivals: make(map[string]model.NodeID),
	}
}

func tripArrivalKey(tripID, station string) string {
	return tripID + "\x00" + station
}

// ArrivalOnTrip returns the Arrival node of tripID at station, used to
// locate a group's source node when it starts already riding a trip.
func (idx *Indices) ArrivalOnTrip(tripID, station string) (model.NodeID, bool) {
	n, ok := idx.tripArrivals[tripArrivalKey(tripID, station)]
	return n, ok
}

// EarliestTransfer returns the earliest Transfer node at station
// whose time is >= minTime, or false if none exists. Transfers for a
// station are built and sorted once, so this is a binary search.
func (idx *Indices) EarliestTransfer(station string, minTime int) (model.NodeID, bool) {
	entries := idx.transfers[station]
	lo, hi := 0, len(entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if entries[mid].Time < minTime {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(entries) {
		return model.InvalidNode, false
	}
	return entries[lo].Node, true
}

// TransferAt returns the Transfer node at station with exactly the
// given time, or false if none exists.
func (idx *Indices) TransferAt(station string, time int) (model.NodeID, bool) {
	entries := idx.transfers[station]
	for _, e := range entries {
		if e.Time == time {
			return e.Node, true
		}
		if e.Time > time {
			break
		}
	}
	return model.InvalidNode, false
}

// MainArrival returns the MainArrival sink node of station.
func (idx *Indices) MainArrival(station string) (model.NodeID, bool) {
	n, ok := idx.mainArrival[station]
	return n, ok
}
