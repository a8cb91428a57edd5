package journeyplanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/summary"
	"github.com/travigo/connections/pkg/util"
)

type Status string

const (
	StatusOK                  Status = "ok"
	StatusNotFound            Status = "not_found"
	StatusUpstreamUnavailable Status = "upstream_unavailable"
	StatusInternalError       Status = "internal_error"
)

const defaultMaxParallelCandidates = 8

// Result is the outcome of planning one direction. When Status is not StatusOK, Err and Message
// describe the failure and no itineraries are set.
type Result struct {
	PlanID      string
	Status      Status
	Direction   config.Direction
	GeneratedAt time.Time
	Horizon     time.Duration

	Best       *ctdf.Itinerary
	Alternates []ctdf.AlternateSummary
	All        []*ctdf.Itinerary
	Summary    string

	Candidates int
	Demoted    int

	Message string
	Err     error
}

func (r *Result) fail(status Status, err error, message string) *Result {
	r.Status = status
	r.Err = err
	r.Message = message

	return r
}

// Planner holds no state between plans, so one instance can serve concurrent requests
type Planner struct {
	Aggregator *dataaggregator.Aggregator

	MaxParallelCandidates int
	Location              *time.Location

	Now func() time.Time
}

func NewPlanner(aggregator *dataaggregator.Aggregator, plannerConfig config.PlannerConfig) *Planner {
	return &Planner{
		Aggregator:            aggregator,
		MaxParallelCandidates: plannerConfig.MaxParallelCandidates,
		Location:              plannerConfig.Location(),
		Now:                   time.Now,
	}
}

// ComputeItineraries plans every ride, walk, ride combination for direction starting now and ranks
// them by total travel time
func (p *Planner) ComputeItineraries(ctx context.Context, direction config.Direction) (result *Result) {
	now := p.now()

	result = &Result{
		PlanID:      uuid.NewString(),
		Direction:   direction,
		GeneratedAt: now,
	}

	logger := log.With().
		Str("plan", result.PlanID).
		Str("direction", direction.Key).
		Logger()

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error().Interface("panic", recovered).Msg("Planning failed unexpectedly")

			result.Best = nil
			result.Alternates = nil
			result.All = nil
			result.Summary = ""
			result.fail(StatusInternalError, fmt.Errorf("planner panic: %v", recovered), fmt.Sprintf("Internal server error: %v", recovered))
		}
	}()

	horizonEnd := direction.HorizonEnd(now)
	result.Horizon = horizonEnd.Sub(now)

	firstBoard, err := p.fetchBoard(ctx, logger, direction.FirstLeg.Board)
	if err != nil {
		return result.fail(StatusUpstreamUnavailable, err, "Unable to fetch departure data")
	}

	candidates := FirstLegCandidates(firstBoard, direction.FirstLeg.Services, now, horizonEnd)
	result.Candidates = len(candidates)

	logger.Debug().
		Int("board", len(firstBoard)).
		Int("candidates", len(candidates)).
		Msg("Selected first leg candidates")

	if len(candidates) == 0 {
		return result.fail(StatusNotFound, ErrNoCandidates, fmt.Sprintf("No %s departures found in next %s",
			strings.Join(direction.FirstLeg.Services, "/"), util.HumaniseDuration(result.Horizon)))
	}

	secondBoard, err := p.fetchBoard(ctx, logger, direction.SecondLeg.Board)
	if err != nil {
		return result.fail(StatusUpstreamUnavailable, err, "Unable to fetch departure data")
	}

	itineraries, demoted := p.PlanLegs(ctx, logger, direction, candidates, secondBoard)
	result.Demoted = demoted

	if len(itineraries) == 0 {
		return result.fail(StatusNotFound, ErrAllCandidatesExhausted, "Could not calculate any routes")
	}

	result.All = SortItineraries(itineraries)
	result.Best, result.Alternates = Rank(result.All)
	result.Summary = summary.Render(result.All, result.Horizon, p.location())
	result.Status = StatusOK

	logger.Info().
		Int("routes", len(result.All)).
		Int("demoted", demoted).
		Float64("best_total_minutes", result.Best.TotalMinutes()).
		Msg("Planned route")

	return result
}

func (p *Planner) fetchBoard(ctx context.Context, logger zerolog.Logger, stop config.BoardStop) ([]*ctdf.Departure, error) {
	board, err := dataaggregator.Lookup[[]*ctdf.Departure](ctx, p.Aggregator, query.DepartureBoard{
		StopID:   stop.ID,
		StopName: stop.Name,
	})
	if err != nil {
		logger.Error().Err(err).Str("stop", stop.ID).Msg("Failed to fetch departure board")

		return nil, errors.Join(ErrUpstreamUnavailable, err)
	}

	if len(board) == 0 {
		logger.Warn().Str("stop", stop.ID).Msg("Departure board returned no departures")

		return nil, ErrUpstreamUnavailable
	}

	return board, nil
}

func (p *Planner) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}

	return p.Now().UTC()
}

func (p *Planner) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}

	return p.Location
}

func (p *Planner) maxParallel() int {
	if p.MaxParallelCandidates <= 0 {
		return defaultMaxParallelCandidates
	}

	return p.MaxParallelCandidates
}
