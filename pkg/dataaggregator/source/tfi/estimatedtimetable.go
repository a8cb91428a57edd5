package tfi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/util"
)

func (s *Source) EstimatedTimetableQuery(ctx context.Context, q query.EstimatedTimetable) (*ctdf.Timetable, error) {
	request := estimatedTimetableRequest{
		ClientTimeZoneOffsetInMS: 0,
		DateAndTime:              util.FormatUpstreamTime(s.now()),
		IncludeNonTimingPoints:   true,
		MaxColumnsToFetch:        1,
		TimetableID:              q.JourneyRef.TimetableID,
		TimetableDirection:       q.Direction,
		OriginStopReference:      q.OriginStopRef,
		OriginDepartureTime:      util.FormatUpstreamTime(q.ScheduledDeparture),
		OriginDepartureRealtime:  util.FormatUpstreamTime(q.RealtimeDeparture),
		DataFrameRef:             q.JourneyRef.DataFrameRef,
		DatedVehicleJourneyRef:   q.JourneyRef.DatedVehicleJourneyRef,
	}

	var response estimatedTimetableResponse
	if err := s.post(ctx, "estimatedTimetable", request, &response); err != nil {
		return nil, fmt.Errorf("estimated timetable for journey %s: %w", q.JourneyRef.DatedVehicleJourneyRef, err)
	}

	return response.toCTDF(), nil
}

func (r *estimatedTimetableResponse) toCTDF() *ctdf.Timetable {
	timetable := &ctdf.Timetable{
		Rows:    make([]ctdf.TimetableRow, 0, len(r.Rows)),
		Columns: make([]ctdf.TimetableColumn, 0, len(r.Columns)),
	}

	stopNames := map[int]string{}
	for _, row := range r.Rows {
		stopNames[row.RowIndex] = row.StopName
		timetable.Rows = append(timetable.Rows, ctdf.TimetableRow{
			StopName: row.StopName,
			RowIndex: row.RowIndex,
		})
	}

	for _, column := range r.Columns {
		events := map[int]*ctdf.TimetableEvent{}

		for key, event := range column.Events {
			if event == nil {
				continue
			}

			rowIndex, err := strconv.Atoi(key)
			if err != nil {
				continue
			}

			events[rowIndex] = &ctdf.TimetableEvent{
				StopName:           stopNames[rowIndex],
				RowIndex:           rowIndex,
				ScheduledEventTime: util.ParseUpstreamTime(event.TimeOfEvent),
				RealTimeEventTime:  util.ParseUpstreamTime(event.RealTimeOfEvent),
			}
		}

		timetable.Columns = append(timetable.Columns, ctdf.TimetableColumn{Events: events})
	}

	return timetable
}
