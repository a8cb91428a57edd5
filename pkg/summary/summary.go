// Package summary renders ranked itineraries as the multi-line text shown to travellers
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/travigo/connections/pkg/ctdf"
	"github.com/travigo/connections/pkg/util"
)

const clockFormat = "15:04"

func Clock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	return t.In(loc).Format(clockFormat)
}

func minutes(d time.Duration) string {
	return fmt.Sprintf("%.0f", util.RoundMinutes(d))
}

// Render expects itineraries already ranked, fastest first. An empty slice renders nothing.
func Render(itineraries []*ctdf.Itinerary, horizon time.Duration, loc *time.Location) string {
	if len(itineraries) == 0 {
		return ""
	}

	best := itineraries[0]

	routes := "routes"
	if len(itineraries) == 1 {
		routes = "route"
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "📊 Found %d %s in next %s\n\n", len(itineraries), routes, util.HumaniseDuration(horizon))
	fmt.Fprintf(&builder, "⭐ FASTEST ROUTE (%s min):\n", minutes(best.Total))
	builder.WriteString(BestRoute(best, loc))

	if len(itineraries) > 1 {
		builder.WriteString("\n\n📋 Other options:\n")

		for i, itinerary := range itineraries[1:] {
			fmt.Fprintf(&builder, "%d. %s\n", i+1, AlternateLine(itinerary, loc))
		}
	}

	return builder.String()
}

// BestRoute is the step by step description of a single itinerary
func BestRoute(itinerary *ctdf.Itinerary, loc *time.Location) string {
	leg1 := itinerary.Leg1
	leg2 := itinerary.Leg2

	arrivalInfo := ""
	if leg2.ArrivalTime != nil {
		arrivalInfo = fmt.Sprintf(" (arrive %s)", Clock(*leg2.ArrivalTime, loc))
	}

	lines := []string{
		fmt.Sprintf("🚏 %s - Wait for %s at %s", Clock(leg1.DepartureTime, loc), leg1.Service, leg1.DepartureStop),
		fmt.Sprintf("🚌 Ride %s min to %s", minutes(leg1.Duration.Duration), leg1.ArrivalStop),
		fmt.Sprintf("🚶 Walk %s min from %s to %s", minutes(itinerary.Walk), leg1.ArrivalStop, leg2.DepartureStop),
		fmt.Sprintf("⏰ Arrive at %s at %s", leg2.DepartureStop, Clock(itinerary.TransferReadyTime, loc)),
		fmt.Sprintf("⏱️  Wait %s min", minutes(itinerary.Wait)),
		fmt.Sprintf("🚏 %s - Take bus %s at %s", Clock(leg2.DepartureTime, loc), leg2.Service, leg2.DepartureStop),
		fmt.Sprintf("🚌 Ride %s min to %s%s", minutes(leg2.Duration.Duration), leg2.ArrivalStop, arrivalInfo),
		fmt.Sprintf("⏱️  Total: %s min", minutes(itinerary.Total)),
	}

	return strings.Join(lines, "\n")
}

// AlternateLine is the one line form used for the other options, eg "10:15 E1→15 - Wait 2min, Total 55min"
func AlternateLine(itinerary *ctdf.Itinerary, loc *time.Location) string {
	return fmt.Sprintf("%s %s - Wait %smin, Total %smin",
		Clock(itinerary.Leg1.DepartureTime, loc),
		itinerary.Services(),
		minutes(itinerary.Wait),
		minutes(itinerary.Total),
	)
}
