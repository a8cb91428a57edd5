package journeyplanner

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/dataaggregator/source"
)

const (
	firstBoardID  = "8250DB002069"
	secondBoardID = "8220DB000299"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func testDirection() config.Direction {
	return config.Direction{
		Key:                "to-home",
		TimetableDirection: "INBOUND",
		Horizon:            "PT2H",
		WalkMinutes:        6,
		FirstLeg: config.LegConfig{
			Services: []string{"E1", "E2"},
			Board:    config.BoardStop{ID: firstBoardID, Name: "Booterstown Avenue, Mount Merrion", DisplayName: "Booterstown Avenue"},
			Alight:   config.AlightStop{DisplayName: "Westmoreland Street", Keyword: "Westmoreland"},
		},
		SecondLeg: config.LegConfig{
			Services:               []string{"15"},
			Board:                  config.BoardStop{ID: secondBoardID, Name: "Eden Quay, Dublin", DisplayName: "Eden Quay"},
			Alight:                 config.AlightStop{DisplayName: "Temple Vw Ave, Belmayne", Keyword: "Belmayne"},
			DefaultDurationMinutes: 25,
		},
	}
}

func departure(service string, ref string, scheduled time.Time) *ctdf.Departure {
	return &ctdf.Departure{
		ServiceCode:   service,
		Destination:   "City Centre",
		ScheduledTime: scheduled,
		JourneyRef: ctdf.JourneyRef{
			TimetableID:            "tt-" + ref,
			DataFrameRef:           "2025-03-04",
			DatedVehicleJourneyRef: ref,
		},
	}
}

func cancelled(d *ctdf.Departure) *ctdf.Departure {
	d.Cancelled = true
	return d
}

func withoutJourneyRef(d *ctdf.Departure) *ctdf.Departure {
	d.JourneyRef.DataFrameRef = ""
	return d
}

func realtime(d *ctdf.Departure, t time.Time) *ctdf.Departure {
	d.RealTime = &t
	return d
}

// calling builds a single journey timetable from stop name and time pairs
func calling(calls ...any) *ctdf.Timetable {
	timetable := &ctdf.Timetable{
		Columns: []ctdf.TimetableColumn{{Events: map[int]*ctdf.TimetableEvent{}}},
	}

	for i := 0; i+1 < len(calls); i += 2 {
		name := calls[i].(string)
		eventTime := calls[i+1].(time.Time)
		index := len(timetable.Rows)

		timetable.Rows = append(timetable.Rows, ctdf.TimetableRow{StopName: name, RowIndex: index})
		timetable.Columns[0].Events[index] = &ctdf.TimetableEvent{
			StopName:           name,
			RowIndex:           index,
			ScheduledEventTime: &eventTime,
		}
	}

	return timetable
}

type fakeSource struct {
	mu sync.Mutex

	boards          map[string][]*ctdf.Departure
	boardErrors     map[string]error
	timetables      map[string]*ctdf.Timetable
	timetableErrors map[string]error
	panicOnBoard    string

	boardQueries     []query.DepartureBoard
	timetableQueries []query.EstimatedTimetable
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		boards:          map[string][]*ctdf.Departure{},
		boardErrors:     map[string]error{},
		timetables:      map[string]*ctdf.Timetable{},
		timetableErrors: map[string]error{},
	}
}

func (f *fakeSource) GetName() string {
	return "Fake"
}

func (f *fakeSource) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.Departure{}),
		reflect.TypeOf(ctdf.Timetable{}),
	}
}

func (f *fakeSource) Lookup(ctx context.Context, q any) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch q := q.(type) {
	case query.DepartureBoard:
		f.boardQueries = append(f.boardQueries, q)

		if f.panicOnBoard == q.StopID {
			panic("board exploded")
		}
		if err := f.boardErrors[q.StopID]; err != nil {
			return nil, err
		}

		return f.boards[q.StopID], nil
	case query.EstimatedTimetable:
		f.timetableQueries = append(f.timetableQueries, q)

		ref := q.JourneyRef.DatedVehicleJourneyRef
		if err := f.timetableErrors[ref]; err != nil {
			return nil, err
		}

		timetable, ok := f.timetables[ref]
		if !ok {
			return nil, errors.New("journey not found")
		}

		return timetable, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (f *fakeSource) queriedBoards() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stops []string
	for _, q := range f.boardQueries {
		stops = append(stops, q.StopID)
	}

	return stops
}

func newTestPlanner(fake *fakeSource) *Planner {
	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(fake)

	return &Planner{
		Aggregator:            aggregator,
		MaxParallelCandidates: 4,
		Location:              time.UTC,
		Now: func() time.Time {
			return clock(9, 55)
		},
	}
}

// scenarioSource is a morning where E1 10:00 reaches Westmoreland at 10:20 and, after a six minute
// walk, connects to the 15 at 10:30 which reaches Belmayne at 10:52
func scenarioSource() *fakeSource {
	fake := newFakeSource()

	fake.boards[firstBoardID] = []*ctdf.Departure{
		departure("E1", "e1-1000", clock(10, 0)),
		departure("46A", "46a-1001", clock(10, 1)),
		cancelled(departure("E2", "e2-1002", clock(10, 2))),
		departure("E2", "e2-0950", clock(9, 50)),
		departure("E1", "e1-1230", clock(12, 30)),
	}
	fake.boards[secondBoardID] = []*ctdf.Departure{
		departure("15", "15-1050", clock(10, 50)),
		departure("15", "15-1020", clock(10, 20)),
		withoutJourneyRef(departure("15", "15-1027", clock(10, 27))),
		cancelled(departure("15", "15-1028", clock(10, 28))),
		departure("15", "15-1030", clock(10, 30)),
		departure("27", "27-1026", clock(10, 26)),
	}

	fake.timetables["e1-1000"] = calling(
		"Booterstown Avenue, Mount Merrion", clock(10, 0),
		"Westmoreland Street", clock(10, 20),
	)
	fake.timetables["15-1030"] = calling(
		"Eden Quay, Dublin", clock(10, 30),
		"Temple Vw Ave, Belmayne", clock(10, 52),
	)
	fake.timetables["15-1050"] = calling(
		"Eden Quay, Dublin", clock(10, 50),
		"Temple Vw Ave, Belmayne", clock(11, 12),
	)

	return fake
}
