// Package model defines the node/edge/group/path data shared by the
// timetable graph builder, the path enumerator, and the solver.
package model

// NodeKind discriminates the variants of Node. The protocol fixes a
// closed set of event kinds, so a single tagged struct stands in for
// what would be a sum type.
type NodeKind int

const (
	NodeDeparture NodeKind = iota
	NodeArrival
	NodeTransfer
	NodeMainArrival
)

func (k NodeKind) String() string {
	switch k {
	case NodeDeparture:
		return "Departure"
	case NodeArrival:
		return "Arrival"
	case NodeTransfer:
		return "Transfer"
	case NodeMainArrival:
		return "MainArrival"
	default:
		return "Unknown"
	}
}

// NodeID is an index into a Graph's Nodes slice, not a pointer.
type NodeID int

// InvalidNode marks the absence of a node reference.
const InvalidNode NodeID = -1

// Node is an event in the time-expanded timetable graph. Only the
// fields relevant to Kind are meaningful:
//
//	Departure:   TripID, Time, StationID
//	Arrival:     TripID, Time, StationID
//	Transfer:    Time, StationID
//	MainArrival: StationID
type Node struct {
	Kind      NodeKind
	TripID    string
	Time      int
	StationID string
}

// GetTime returns the node's event time. MainArrival nodes carry no
// single time and return 0.
func (n Node) GetTime() int {
	return n.Time
}

// Station returns the station this node belongs to.
func (n Node) Station() string {
	return n.StationID
}

// IsArrivalAtStation reports whether n is an Arrival event.
func (n Node) IsArrivalAtStation() bool {
	return n.Kind == NodeArrival
}
