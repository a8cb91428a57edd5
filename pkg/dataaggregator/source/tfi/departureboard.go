package tfi

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/util"
)

func (s *Source) DepartureBoardQuery(ctx context.Context, q query.DepartureBoard) ([]*ctdf.Departure, error) {
	now := util.FormatUpstreamTime(s.now())

	request := departuresRequest{
		ClientTimeZoneOffsetInMS: 0,
		DepartureDate:            now,
		DepartureTime:            now,
		StopIDs:                  []string{q.StopID},
		StopType:                 "BUS_STOP",
		StopName:                 q.StopName,
		RequestTime:              now,
		DepartureOrArrival:       "DEPARTURE",
		Refresh:                  true,
	}

	var response departuresResponse
	if err := s.post(ctx, "departures", request, &response); err != nil {
		return nil, fmt.Errorf("departures for stop %s: %w", q.StopID, err)
	}

	departures := make([]*ctdf.Departure, 0, len(response.StopDepartures))

	for _, stopDeparture := range response.StopDepartures {
		departure := &ctdf.Departure{
			StopID:      q.StopID,
			ServiceCode: stopDeparture.ServiceNumber,
			Destination: stopDeparture.Destination,
			RealTime:    util.ParseUpstreamTime(stopDeparture.RealTimeDeparture),
			Cancelled:   stopDeparture.Cancelled,
			JourneyRef: ctdf.JourneyRef{
				TimetableID: string(stopDeparture.ServiceID),
			},
		}

		if scheduled := util.ParseUpstreamTime(stopDeparture.ScheduledDeparture); scheduled != nil {
			departure.ScheduledTime = *scheduled
		} else if stopDeparture.ScheduledDeparture != "" {
			log.Debug().
				Str("stop", q.StopID).
				Str("service", stopDeparture.ServiceNumber).
				Str("value", stopDeparture.ScheduledDeparture).
				Msg("Ignoring unparseable scheduled departure time")
		}

		if stopDeparture.Vehicle != nil {
			departure.JourneyRef.DataFrameRef = string(stopDeparture.Vehicle.DataFrameRef)
			departure.JourneyRef.DatedVehicleJourneyRef = string(stopDeparture.Vehicle.DatedVehicleJourneyRef)
		}

		departures = append(departures, departure)
	}

	return departures, nil
}
