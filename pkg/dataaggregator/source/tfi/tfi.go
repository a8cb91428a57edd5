package tfi

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/dataaggregator/query"
	"github.com/travigo/connections/pkg/dataaggregator/source"
)

const DefaultBaseURL = "https://api-lts.transportforireland.ie/lts/lts/v1/public"

// Source serves departure boards and estimated timetables from the Transport for Ireland
// journey planner API
type Source struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	Client *http.Client
	Now    func() time.Time
}

func NewSource(baseURL string, apiKey string, timeout time.Duration) *Source {
	return &Source{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
		Now: time.Now,
	}
}

func (s *Source) GetName() string {
	return "Transport for Ireland LTS API"
}

func (s *Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.Departure{}),
		reflect.TypeOf(ctdf.Timetable{}),
	}
}

func (s *Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.DepartureBoard:
		return s.DepartureBoardQuery(ctx, q)
	case query.EstimatedTimetable:
		return s.EstimatedTimetableQuery(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s *Source) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}

	return s.Now().UTC()
}
