package journeyplanner

import (
	"time"

	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/summary"
	"github.com/travigo/connections/pkg/util"
)

// Response types are projected with sheriff, so every field needs a group. The detailed group adds
// journey references and where each duration came from.

type JourneyRefResponse struct {
	TimetableID            string `json:"timetable_id" groups:"detailed"`
	DataFrameRef           string `json:"data_frame_ref" groups:"detailed"`
	DatedVehicleJourneyRef string `json:"dated_vehicle_journey_ref" groups:"detailed"`
}

type LegResponse struct {
	Service          string `json:"service" groups:"basic,detailed"`
	Destination      string `json:"destination" groups:"basic,detailed"`
	DepartureTime    string `json:"departure_time" groups:"basic,detailed"`
	DepartureTimeISO string `json:"departure_time_iso" groups:"basic,detailed"`
	IsRealtime       bool   `json:"is_realtime" groups:"basic,detailed"`
	DepartureStop    string `json:"departure_stop" groups:"basic,detailed"`
	ArrivalStop      string `json:"arrival_stop" groups:"basic,detailed"`

	// ArrivalTime is null when the arrival could not be resolved and DurationMinutes is the configured default
	ArrivalTime    *string `json:"arrival_time" groups:"basic,detailed"`
	ArrivalTimeISO *string `json:"arrival_time_iso" groups:"detailed"`

	DurationMinutes float64             `json:"duration_minutes" groups:"basic,detailed"`
	DurationSource  ctdf.DurationSource `json:"duration_source" groups:"detailed"`

	JourneyRef JourneyRefResponse `json:"journey_ref" groups:"detailed"`
}

type StopArrivalResponse struct {
	Time    string `json:"time" groups:"basic,detailed"`
	TimeISO string `json:"time_iso" groups:"basic,detailed"`
}

type WalkResponse struct {
	From            string  `json:"from" groups:"basic,detailed"`
	To              string  `json:"to" groups:"basic,detailed"`
	DurationMinutes float64 `json:"duration_minutes" groups:"basic,detailed"`
}

type ItineraryResponse struct {
	FirstLeg          LegResponse         `json:"first_leg" groups:"basic,detailed"`
	TransferArrival   StopArrivalResponse `json:"transfer_arrival" groups:"basic,detailed"`
	Walk              WalkResponse        `json:"walk" groups:"basic,detailed"`
	ConnectionArrival StopArrivalResponse `json:"connection_arrival" groups:"basic,detailed"`
	SecondLeg         LegResponse         `json:"second_leg" groups:"basic,detailed"`

	WaitMinutes         float64 `json:"wait_minutes" groups:"basic,detailed"`
	TotalJourneyMinutes float64 `json:"total_journey_minutes" groups:"basic,detailed"`
}

type AlternateResponse struct {
	DepartureTime string  `json:"departure_time" groups:"basic,detailed"`
	Service       string  `json:"service" groups:"basic,detailed"`
	WaitMinutes   float64 `json:"wait_minutes" groups:"basic,detailed"`
	TotalMinutes  float64 `json:"total_minutes" groups:"basic,detailed"`
	Summary       string  `json:"summary" groups:"basic,detailed"`
}

type RouteResponse struct {
	Success bool   `json:"success" groups:"basic,detailed"`
	Status  Status `json:"status" groups:"basic,detailed"`
	Route   string `json:"route" groups:"basic,detailed"`
	PlanID  string `json:"plan_id" groups:"detailed"`

	GeneratedAt string `json:"generated_at" groups:"detailed"`
	Candidates  int    `json:"candidates" groups:"detailed"`
	Demoted     int    `json:"demoted" groups:"detailed"`

	TotalRoutes int                 `json:"total_routes" groups:"basic,detailed"`
	BestRoute   *ItineraryResponse  `json:"best_route" groups:"basic,detailed"`
	OtherRoutes []AlternateResponse `json:"other_routes" groups:"basic,detailed"`
	AllRoutes   []ItineraryResponse `json:"all_routes" groups:"basic,detailed"`
	Summary     string              `json:"summary" groups:"basic,detailed"`

	Error string `json:"error,omitempty" groups:"basic,detailed"`
}

// NewRouteResponse converts a plan result into its wire form, rendering clock times in loc
func NewRouteResponse(result *Result, loc *time.Location) RouteResponse {
	if loc == nil {
		loc = time.UTC
	}

	response := RouteResponse{
		Success:     result.Status == StatusOK,
		Status:      result.Status,
		Route:       result.Direction.RouteName(),
		PlanID:      result.PlanID,
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
		Candidates:  result.Candidates,
		Demoted:     result.Demoted,
	}

	if !response.Success {
		response.Error = result.Message
		return response
	}

	response.TotalRoutes = len(result.All)
	response.Summary = result.Summary

	response.AllRoutes = make([]ItineraryResponse, 0, len(result.All))
	for _, itinerary := range result.All {
		response.AllRoutes = append(response.AllRoutes, newItineraryResponse(itinerary, loc))
	}

	if len(response.AllRoutes) > 0 {
		response.BestRoute = &response.AllRoutes[0]
	}

	response.OtherRoutes = []AlternateResponse{}
	if len(result.All) > 1 {
		for _, itinerary := range result.All[1:] {
			alternate := itinerary.Summarise()

			response.OtherRoutes = append(response.OtherRoutes, AlternateResponse{
				DepartureTime: summary.Clock(alternate.DepartureTime, loc),
				Service:       alternate.Service,
				WaitMinutes:   util.RoundMinutes(itinerary.Wait),
				TotalMinutes:  util.RoundMinutes(itinerary.Total),
				Summary:       summary.AlternateLine(itinerary, loc),
			})
		}
	}

	return response
}

func newItineraryResponse(itinerary *ctdf.Itinerary, loc *time.Location) ItineraryResponse {
	return ItineraryResponse{
		FirstLeg:        newLegResponse(itinerary.Leg1, loc),
		TransferArrival: newStopArrivalResponse(*itinerary.Leg1.ArrivalTime, loc),
		Walk: WalkResponse{
			From:            itinerary.Leg1.ArrivalStop,
			To:              itinerary.Leg2.DepartureStop,
			DurationMinutes: util.RoundMinutes(itinerary.Walk),
		},
		ConnectionArrival:   newStopArrivalResponse(itinerary.TransferReadyTime, loc),
		SecondLeg:           newLegResponse(itinerary.Leg2, loc),
		WaitMinutes:         util.RoundMinutes(itinerary.Wait),
		TotalJourneyMinutes: util.RoundMinutes(itinerary.Total),
	}
}

func newLegResponse(leg ctdf.LegResult, loc *time.Location) LegResponse {
	response := LegResponse{
		Service:          leg.Service,
		Destination:      leg.Destination,
		DepartureTime:    summary.Clock(leg.DepartureTime, loc),
		DepartureTimeISO: leg.DepartureTime.In(loc).Format(time.RFC3339),
		IsRealtime:       leg.Realtime,
		DepartureStop:    leg.DepartureStop,
		ArrivalStop:      leg.ArrivalStop,
		DurationMinutes:  util.RoundMinutes(leg.Duration.Duration),
		DurationSource:   leg.Duration.Source,
		JourneyRef: JourneyRefResponse{
			TimetableID:            leg.JourneyRef.TimetableID,
			DataFrameRef:           leg.JourneyRef.DataFrameRef,
			DatedVehicleJourneyRef: leg.JourneyRef.DatedVehicleJourneyRef,
		},
	}

	if leg.ArrivalTime != nil {
		arrival := summary.Clock(*leg.ArrivalTime, loc)
		arrivalISO := leg.ArrivalTime.In(loc).Format(time.RFC3339)

		response.ArrivalTime = &arrival
		response.ArrivalTimeISO = &arrivalISO
	}

	return response
}

func newStopArrivalResponse(t time.Time, loc *time.Location) StopArrivalResponse {
	return StopArrivalResponse{
		Time:    summary.Clock(t, loc),
		TimeISO: t.In(loc).Format(time.RFC3339),
	}
}
