package model

// Group is an external travel request: a party of passengers that
// wants to go from Start to Destination no earlier than Departure and
// ideally by Arrival. InTrip, when non-empty, means the party already
// boarded that trip and begins its search from the trip's arrival
// event at Start rather than from a platform wait.
type Group struct {
	ID          string
	Start       string
	Destination string
	Departure   int
	Arrival     int
	Passengers  int
	InTrip      string
}

// TravelTime is the nominal point-to-point duration the group asked
// for, used to derive the search's max duration budget.
func (g Group) TravelTime() int {
	return g.Arrival - g.Departure
}

// Path is an ordered, non-empty sequence of edges from a group's
// source node to its destination's MainArrival sink.
type Path struct {
	Edges            []EdgeID
	Duration         int
	Cost             int
	RemainingBudget  int
	RemainingDuration int
}

// Assignments is the solver's output: per group, the ranked candidate
// paths found for it, plus which one (if any) was chosen and
// augmented onto the graph. It is gob-encodable so it can round-trip
// through the persistence layer as an opaque blob.
type Assignments struct {
	Groups    []GroupResult
}

// GroupResult records one group's outcome.
type GroupResult struct {
	GroupID    string
	Passengers int
	Candidates []Path
	Chosen     int // index into Candidates, or -1 if no path was found
}

// ChosenPath returns the group's selected path and whether one exists.
func (r GroupResult) ChosenPath() (Path, bool) {
	if r.Chosen < 0 || r.Chosen >= len(r.Candidates) {
		return Path{}, false
	}
	return r.Candidates[r.Chosen], true
}
