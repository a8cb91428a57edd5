package ctdf

import (
	"time"
)

// JourneyRef identifies a single dated run of a service with the upstream provider
type JourneyRef struct {
	TimetableID            string
	DataFrameRef           string
	DatedVehicleJourneyRef string
}

func (r JourneyRef) Complete() bool {
	return r.TimetableID != "" && r.DataFrameRef != "" && r.DatedVehicleJourneyRef != ""
}

type DepartureBoardRecordType string

const (
	DepartureBoardRecordTypeScheduled       DepartureBoardRecordType = "Scheduled"
	DepartureBoardRecordTypeRealtimeTracked DepartureBoardRecordType = "RealtimeTracked"
	DepartureBoardRecordTypeCancelled       DepartureBoardRecordType = "Cancelled"
)

// Departure is one run of a service calling at a stop, as listed on that stop's departure board
type Departure struct {
	StopID      string
	ServiceCode string
	Destination string

	ScheduledTime time.Time
	RealTime      *time.Time

	Cancelled bool

	JourneyRef JourneyRef
}

// EffectiveTime is the realtime estimate when present, otherwise the scheduled time
func (d *Departure) EffectiveTime() time.Time {
	if d.RealTime != nil {
		return *d.RealTime
	}

	return d.ScheduledTime
}

func (d *Departure) HasUsableTime() bool {
	return d.RealTime != nil || !d.ScheduledTime.IsZero()
}

func (d *Departure) IsRealtime() bool {
	return d.RealTime != nil
}

// Plannable reports whether the departure carries everything needed to request its timetable
func (d *Departure) Plannable() bool {
	return d.JourneyRef.Complete()
}

func (d *Departure) Type() DepartureBoardRecordType {
	switch {
	case d.Cancelled:
		return DepartureBoardRecordTypeCancelled
	case d.RealTime != nil:
		return DepartureBoardRecordTypeRealtimeTracked
	default:
		return DepartureBoardRecordTypeScheduled
	}
}
