package query

import (
	"time"

	"github.com/travigo/connections/pkg/ctdf"
)

// EstimatedTimetable requests the live timetable of one journey
type EstimatedTimetable struct {
	JourneyRef ctdf.JourneyRef

	// Direction is the upstream timetable direction, INBOUND or OUTBOUND
	Direction     string
	OriginStopRef string

	ScheduledDeparture time.Time
	RealtimeDeparture  time.Time
}

// EstimatedTimetableForDeparture builds the timetable query for a departure seen on the board of originStopRef
func EstimatedTimetableForDeparture(departure *ctdf.Departure, direction string, originStopRef string) EstimatedTimetable {
	scheduled := departure.ScheduledTime
	if scheduled.IsZero() {
		scheduled = departure.EffectiveTime()
	}

	return EstimatedTimetable{
		JourneyRef:         departure.JourneyRef,
		Direction:          direction,
		OriginStopRef:      originStopRef,
		ScheduledDeparture: scheduled,
		RealtimeDeparture:  departure.EffectiveTime(),
	}
}
