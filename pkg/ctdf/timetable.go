package ctdf

import (
	"strings"
	"time"
)

type TimetableRow struct {
	StopName string
	RowIndex int
}

// TimetableEvent is one stop visit within a resolved journey
type TimetableEvent struct {
	StopName string
	RowIndex int

	ScheduledEventTime *time.Time
	RealTimeEventTime  *time.Time
}

// Time is the realtime estimate when present, otherwise the scheduled time
func (e *TimetableEvent) Time() *time.Time {
	if e.RealTimeEventTime != nil {
		return e.RealTimeEventTime
	}

	return e.ScheduledEventTime
}

type TimetableColumn struct {
	Events map[int]*TimetableEvent
}

// Timetable is the estimated timetable of a single journey. Rows are in route order and
// the first column holds the events of the requested journey.
type Timetable struct {
	Rows    []TimetableRow
	Columns []TimetableColumn
}

// StopEventTime returns the best known event time at the first stop whose name contains
// keyword (case-insensitive). Only the first matching row is considered, so the keyword has to
// be specific enough to not match an earlier stop on the route.
func (t *Timetable) StopEventTime(keyword string) *time.Time {
	if t == nil || len(t.Columns) == 0 {
		return nil
	}

	needle := strings.ToLower(keyword)
	events := t.Columns[0].Events

	for _, row := range t.Rows {
		if !strings.Contains(strings.ToLower(row.StopName), needle) {
			continue
		}

		event := events[row.RowIndex]
		if event == nil {
			return nil
		}

		return event.Time()
	}

	return nil
}
