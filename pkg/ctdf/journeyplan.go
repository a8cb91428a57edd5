package ctdf

import (
	"fmt"
	"time"
)

type DurationSource string

const (
	// DurationSourceResolved durations were measured from an estimated timetable
	DurationSourceResolved DurationSource = "resolved"
	// DurationSourceDefault durations are the configured fallback for the leg
	DurationSourceDefault DurationSource = "default"
)

type DurationEstimate struct {
	Duration time.Duration
	Source   DurationSource
}

func (e DurationEstimate) Minutes() float64 {
	return e.Duration.Minutes()
}

func (e DurationEstimate) Resolved() bool {
	return e.Source == DurationSourceResolved
}

// LegResult is one ride between a boarding stop and an alighting stop
type LegResult struct {
	Service     string
	Destination string
	JourneyRef  JourneyRef

	DepartureStop string
	DepartureTime time.Time
	Realtime      bool

	ArrivalStop string
	ArrivalTime *time.Time

	Duration DurationEstimate
}

// Itinerary is a ride, a walk to the connecting stop and a second ride
type Itinerary struct {
	Leg1 LegResult

	Walk              time.Duration
	TransferReadyTime time.Time

	Leg2 LegResult

	Wait  time.Duration
	Total time.Duration
}

// NewItinerary joins two legs with a walk. Leg 1 must have an arrival time.
func NewItinerary(leg1 LegResult, walk time.Duration, leg2 LegResult) *Itinerary {
	ready := leg1.ArrivalTime.Add(walk)

	return &Itinerary{
		Leg1:              leg1,
		Walk:              walk,
		TransferReadyTime: ready,
		Leg2:              leg2,
		Wait:              leg2.DepartureTime.Sub(ready),
		Total:             leg2.DepartureTime.Sub(leg1.DepartureTime) + leg2.Duration.Duration,
	}
}

func (i *Itinerary) WaitMinutes() float64 {
	return i.Wait.Minutes()
}

func (i *Itinerary) TotalMinutes() float64 {
	return i.Total.Minutes()
}

// Services is the pair of service codes, eg "E1→15"
func (i *Itinerary) Services() string {
	return fmt.Sprintf("%s→%s", i.Leg1.Service, i.Leg2.Service)
}

// AlternateSummary is the compact form of an Itinerary that did not rank first
type AlternateSummary struct {
	DepartureTime time.Time
	Service       string
	WaitMinutes   float64
	TotalMinutes  float64
}

func (i *Itinerary) Summarise() AlternateSummary {
	return AlternateSummary{
		DepartureTime: i.Leg1.DepartureTime,
		Service:       i.Services(),
		WaitMinutes:   i.WaitMinutes(),
		TotalMinutes:  i.TotalMinutes(),
	}
}
