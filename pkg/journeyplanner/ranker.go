package journeyplanner

import (
	"cmp"

	"github.com/travigo/connections/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// compareItineraries orders by total time, then earlier first leg departure. The remaining keys only
// make the order total so ranking never depends on the order itineraries were produced in.
func compareItineraries(a, b *ctdf.Itinerary) int {
	if c := cmp.Compare(a.Total, b.Total); c != 0 {
		return c
	}
	if c := a.Leg1.DepartureTime.Compare(b.Leg1.DepartureTime); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Leg1.Service, b.Leg1.Service); c != 0 {
		return c
	}
	if c := a.Leg2.DepartureTime.Compare(b.Leg2.DepartureTime); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Leg1.JourneyRef.DatedVehicleJourneyRef, b.Leg1.JourneyRef.DatedVehicleJourneyRef); c != 0 {
		return c
	}

	return cmp.Compare(a.Leg2.JourneyRef.DatedVehicleJourneyRef, b.Leg2.JourneyRef.DatedVehicleJourneyRef)
}

// SortItineraries returns a ranked copy of itineraries, fastest first
func SortItineraries(itineraries []*ctdf.Itinerary) []*ctdf.Itinerary {
	sorted := slices.Clone(itineraries)
	slices.SortStableFunc(sorted, compareItineraries)

	return sorted
}

// Rank picks the fastest itinerary and summarises the rest in rank order
func Rank(itineraries []*ctdf.Itinerary) (*ctdf.Itinerary, []ctdf.AlternateSummary) {
	if len(itineraries) == 0 {
		return nil, nil
	}

	sorted := SortItineraries(itineraries)

	alternates := make([]ctdf.AlternateSummary, 0, len(sorted)-1)
	for _, itinerary := range sorted[1:] {
		alternates = append(alternates, itinerary.Summarise())
	}

	return sorted[0], alternates
}
