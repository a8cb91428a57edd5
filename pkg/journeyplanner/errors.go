package journeyplanner

import "errors"

var (
	// ErrUpstreamUnavailable is returned when a departure board cannot be fetched or comes back empty
	ErrUpstreamUnavailable = errors.New("departure data unavailable")
	// ErrNoCandidates is returned when no first leg departure falls inside the planning horizon
	ErrNoCandidates = errors.New("no first leg departures within horizon")
	// ErrAllCandidatesExhausted is returned when every first leg candidate was dropped
	ErrAllCandidatesExhausted = errors.New("no itinerary could be calculated")

	ErrMissingJourneyRef    = errors.New("departure has an incomplete journey reference")
	ErrTimetableUnavailable = errors.New("estimated timetable unavailable")
	ErrNoTimetableMatch     = errors.New("no timed timetable row matches stop")
	ErrNoConnectionFound    = errors.New("no connecting departure after transfer")
)
