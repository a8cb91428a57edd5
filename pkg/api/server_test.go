package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/dataaggregator/source"
	"github.com/travigo/connections/pkg/journeyplanner"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, time.March, 4, hour, minute, 0, 0, time.UTC)
}

type boardSource struct {
	mu sync.Mutex

	boards     map[string][]*ctdf.Departure
	timetables map[string]*ctdf.Timetable
	err        error
}

func (s *boardSource) GetName() string {
	return "Boards"
}

func (s *boardSource) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.Departure{}),
		reflect.TypeOf(ctdf.Timetable{}),
	}
}

func (s *boardSource) Lookup(ctx context.Context, q any) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	switch q := q.(type) {
	case query.DepartureBoard:
		return s.boards[q.StopID], nil
	case query.EstimatedTimetable:
		timetable, ok := s.timetables[q.JourneyRef.DatedVehicleJourneyRef]
		if !ok {
			return nil, errors.New("journey not found")
		}
		return timetable, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func stopAt(name string, t time.Time) *ctdf.Timetable {
	return &ctdf.Timetable{
		Rows: []ctdf.TimetableRow{{StopName: name, RowIndex: 0}},
		Columns: []ctdf.TimetableColumn{{Events: map[int]*ctdf.TimetableEvent{
			0: {StopName: name, RowIndex: 0, ScheduledEventTime: &t},
		}}},
	}
}

func bus(service string, ref string, t time.Time) *ctdf.Departure {
	return &ctdf.Departure{
		ServiceCode:   service,
		ScheduledTime: t,
		JourneyRef: ctdf.JourneyRef{
			TimetableID:            "tt",
			DataFrameRef:           "2025-03-04",
			DatedVehicleJourneyRef: ref,
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Directions: []config.Direction{
			{
				Key:                "to-home",
				Description:        "Booterstown to Belmayne",
				TimetableDirection: "INBOUND",
				Horizon:            "PT2H",
				WalkMinutes:        6,
				FirstLeg: config.LegConfig{
					Services: []string{"E1", "E2"},
					Board:    config.BoardStop{ID: "first", Name: "Booterstown Avenue", DisplayName: "Booterstown Avenue"},
					Alight:   config.AlightStop{DisplayName: "Westmoreland Street", Keyword: "Westmoreland"},
				},
				SecondLeg: config.LegConfig{
					Services:               []string{"15"},
					Board:                  config.BoardStop{ID: "second", Name: "Eden Quay", DisplayName: "Eden Quay"},
					Alight:                 config.AlightStop{DisplayName: "Temple Vw Ave, Belmayne", Keyword: "Belmayne"},
					DefaultDurationMinutes: 25,
				},
			},
		},
	}
}

func newTestApp(boards *boardSource) *fiber.App {
	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(boards)

	planner := &journeyplanner.Planner{
		Aggregator:            aggregator,
		MaxParallelCandidates: 2,
		Location:              time.UTC,
		Now: func() time.Time {
			return clock(9, 55)
		},
	}

	return NewApp(testConfig(), planner)
}

func morning() *boardSource {
	return &boardSource{
		boards: map[string][]*ctdf.Departure{
			"first":  {bus("E1", "e1", clock(10, 0))},
			"second": {bus("15", "15", clock(10, 30))},
		},
		timetables: map[string]*ctdf.Timetable{
			"e1": stopAt("Westmoreland Street", clock(10, 20)),
			"15": stopAt("Temple Vw Ave, Belmayne", clock(10, 52)),
		},
	}
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]any) {
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	return resp, decoded
}

func TestDirectionsIndex(t *testing.T) {
	resp, body := get(t, newTestApp(morning()), "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"/best-route/to-home": "Booterstown to Belmayne"}, body["endpoints"])
}

func TestVersion(t *testing.T) {
	resp, body := get(t, newTestApp(morning()), "/version")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "v0.1", body["version"])
}

func TestBestRoute(t *testing.T) {
	resp, body := get(t, newTestApp(morning()), "/best-route/to-home")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "to_home", body["route"])
	assert.Equal(t, float64(1), body["total_routes"])
	assert.NotContains(t, body, "plan_id")

	best := body["best_route"].(map[string]any)
	assert.Equal(t, float64(4), best["wait_minutes"])
	assert.Equal(t, float64(52), best["total_journey_minutes"])
	assert.Contains(t, body["summary"], "⭐ FASTEST ROUTE (52 min):")
}

func TestBestRouteDetailed(t *testing.T) {
	resp, body := get(t, newTestApp(morning()), "/best-route/to-home?detail=detailed")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "plan_id")

	leg := body["best_route"].(map[string]any)["first_leg"].(map[string]any)
	assert.Equal(t, "resolved", leg["duration_source"])
}

func TestBestRouteStatusCodes(t *testing.T) {
	testCases := []struct {
		name     string
		boards   func() *boardSource
		target   string
		expected int
	}{
		{
			name:     "unknown direction",
			boards:   morning,
			target:   "/best-route/to-mars",
			expected: http.StatusNotFound,
		},
		{
			name:     "bad detail",
			boards:   morning,
			target:   "/best-route/to-home?detail=everything",
			expected: http.StatusBadRequest,
		},
		{
			name: "upstream unavailable",
			boards: func() *boardSource {
				return &boardSource{err: errors.New("connection refused")}
			},
			target:   "/best-route/to-home",
			expected: http.StatusServiceUnavailable,
		},
		{
			name: "no connection",
			boards: func() *boardSource {
				boards := morning()
				boards.boards["second"][0].Cancelled = true
				return boards
			},
			target:   "/best-route/to-home",
			expected: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := get(t, newTestApp(tc.boards()), tc.target)

			assert.Equal(t, tc.expected, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRecoversFromPanics(t *testing.T) {
	app := newTestApp(morning())
	app.Get("/explode", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, body := get(t, app, "/explode")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error: boom", body["error"])
}

func TestUnknownRoute(t *testing.T) {
	resp, body := get(t, newTestApp(morning()), "/nowhere")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Origin", "https://example.com")

	resp, err := newTestApp(morning()).Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
