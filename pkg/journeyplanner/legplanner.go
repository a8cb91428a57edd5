package journeyplanner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/util"
	"golang.org/x/exp/slices"
)

// FirstLegCandidates keeps the live departures of the wanted services leaving between now and horizonEnd
func FirstLegCandidates(board []*ctdf.Departure, services []string, now time.Time, horizonEnd time.Time) []*ctdf.Departure {
	return util.Filter(board, func(departure *ctdf.Departure) bool {
		if departure.Cancelled || !departure.HasUsableTime() || !slices.Contains(services, departure.ServiceCode) {
			return false
		}

		departureTime := departure.EffectiveTime()

		return !departureTime.Before(now) && !departureTime.After(horizonEnd)
	})
}

// SecondLegDepartures keeps the plannable live departures of the wanted services in departure order
func SecondLegDepartures(board []*ctdf.Departure, services []string) []*ctdf.Departure {
	departures := util.Filter(board, func(departure *ctdf.Departure) bool {
		return !departure.Cancelled &&
			departure.HasUsableTime() &&
			departure.Plannable() &&
			slices.Contains(services, departure.ServiceCode)
	})

	slices.SortStableFunc(departures, func(a, b *ctdf.Departure) int {
		return a.EffectiveTime().Compare(b.EffectiveTime())
	})

	return departures
}

// NextDeparture returns the first departure leaving at or after ready. departures must be in departure order.
func NextDeparture(departures []*ctdf.Departure, ready time.Time) *ctdf.Departure {
	for _, departure := range departures {
		if !departure.EffectiveTime().Before(ready) {
			return departure
		}
	}

	return nil
}

type candidateOutcome struct {
	Candidate *ctdf.Departure
	Itinerary *ctdf.Itinerary
	Err       error
}

// PlanLegs builds an itinerary for every candidate in parallel. Candidates that cannot be planned are
// logged and counted in the returned demoted total.
func (p *Planner) PlanLegs(ctx context.Context, logger zerolog.Logger, direction config.Direction, candidates []*ctdf.Departure, secondBoard []*ctdf.Departure) ([]*ctdf.Itinerary, int) {
	connections := SecondLegDepartures(secondBoard, direction.SecondLeg.Services)

	candidatePool := pool.NewWithResults[candidateOutcome]().WithMaxGoroutines(p.maxParallel())

	for _, candidate := range candidates {
		candidate := candidate // per-iteration copy; go directive predates Go 1.22 loop semantics
		candidatePool.Go(func() candidateOutcome {
			itinerary, err := p.planCandidate(ctx, logger, direction, candidate, connections)

			return candidateOutcome{
				Candidate: candidate,
				Itinerary: itinerary,
				Err:       err,
			}
		})
	}

	var itineraries []*ctdf.Itinerary
	demoted := 0

	for _, outcome := range candidatePool.Wait() {
		if outcome.Err != nil {
			demoted++

			logger.Warn().
				Err(outcome.Err).
				Str("service", outcome.Candidate.ServiceCode).
				Str("type", string(outcome.Candidate.Type())).
				Time("departure", outcome.Candidate.EffectiveTime()).
				Str("journey", outcome.Candidate.JourneyRef.DatedVehicleJourneyRef).
				Msg("Skipping first leg candidate")

			continue
		}

		itineraries = append(itineraries, outcome.Itinerary)
	}

	return itineraries, demoted
}

func (p *Planner) planCandidate(ctx context.Context, logger zerolog.Logger, direction config.Direction, candidate *ctdf.Departure, connections []*ctdf.Departure) (*ctdf.Itinerary, error) {
	if !candidate.Plannable() {
		return nil, ErrMissingJourneyRef
	}

	departureTime := candidate.EffectiveTime()

	transferArrival, err := p.resolveStopTime(ctx, direction, candidate, direction.FirstLeg.Board.ID, direction.FirstLeg.Alight.Keyword)
	if err != nil {
		return nil, err
	}

	ready := transferArrival.Add(direction.Walk())

	connection := NextDeparture(connections, ready)
	if connection == nil {
		return nil, fmt.Errorf("%w at %s", ErrNoConnectionFound, ready.Format(time.RFC3339))
	}
	connectionTime := connection.EffectiveTime()

	secondLegDuration := ctdf.DurationEstimate{
		Duration: direction.SecondLegDefaultDuration(),
		Source:   ctdf.DurationSourceDefault,
	}

	secondLegArrival, err := p.resolveStopTime(ctx, direction, connection, direction.SecondLeg.Board.ID, direction.SecondLeg.Alight.Keyword)
	if err == nil {
		secondLegDuration = ctdf.DurationEstimate{
			Duration: secondLegArrival.Sub(connectionTime),
			Source:   ctdf.DurationSourceResolved,
		}
	} else {
		logger.Debug().
			Err(err).
			Str("journey", connection.JourneyRef.DatedVehicleJourneyRef).
			Float64("minutes", secondLegDuration.Minutes()).
			Msg("Using default second leg duration")
	}

	firstLeg := ctdf.LegResult{
		Service:       candidate.ServiceCode,
		Destination:   candidate.Destination,
		JourneyRef:    candidate.JourneyRef,
		DepartureStop: direction.FirstLeg.Board.DisplayName,
		DepartureTime: departureTime,
		Realtime:      candidate.IsRealtime(),
		ArrivalStop:   direction.FirstLeg.Alight.DisplayName,
		ArrivalTime:   transferArrival,
		Duration: ctdf.DurationEstimate{
			Duration: transferArrival.Sub(departureTime),
			Source:   ctdf.DurationSourceResolved,
		},
	}

	secondLeg := ctdf.LegResult{
		Service:       connection.ServiceCode,
		Destination:   connection.Destination,
		JourneyRef:    connection.JourneyRef,
		DepartureStop: direction.SecondLeg.Board.DisplayName,
		DepartureTime: connectionTime,
		Realtime:      connection.IsRealtime(),
		ArrivalStop:   direction.SecondLeg.Alight.DisplayName,
		ArrivalTime:   secondLegArrival,
		Duration:      secondLegDuration,
	}

	return ctdf.NewItinerary(firstLeg, direction.Walk(), secondLeg), nil
}

// resolveStopTime fetches the departure's estimated timetable and finds when it calls at the stop matching keyword
func (p *Planner) resolveStopTime(ctx context.Context, direction config.Direction, departure *ctdf.Departure, originStopRef string, keyword string) (*time.Time, error) {
	if !departure.Plannable() {
		return nil, ErrMissingJourneyRef
	}

	timetable, err := dataaggregator.Lookup[*ctdf.Timetable](ctx, p.Aggregator,
		query.EstimatedTimetableForDeparture(departure, direction.TimetableDirection, originStopRef))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTimetableUnavailable, err)
	}

	eventTime := timetable.StopEventTime(keyword)
	if eventTime == nil {
		return nil, fmt.Errorf("%w %q", ErrNoTimetableMatch, keyword)
	}

	resolved := eventTime.UTC()

	return &resolved, nil
}
