package ctdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepartureEffectiveTime(t *testing.T) {
	scheduledOnly := &Departure{ScheduledTime: *at(10, 0)}
	assert.Equal(t, *at(10, 0), scheduledOnly.EffectiveTime())
	assert.False(t, scheduledOnly.IsRealtime())
	assert.Equal(t, DepartureBoardRecordTypeScheduled, scheduledOnly.Type())

	tracked := &Departure{ScheduledTime: *at(10, 0), RealTime: at(10, 4)}
	assert.Equal(t, *at(10, 4), tracked.EffectiveTime())
	assert.True(t, tracked.IsRealtime())
	assert.Equal(t, DepartureBoardRecordTypeRealtimeTracked, tracked.Type())

	cancelled := &Departure{ScheduledTime: *at(10, 0), RealTime: at(10, 4), Cancelled: true}
	assert.Equal(t, DepartureBoardRecordTypeCancelled, cancelled.Type())

	untimed := &Departure{}
	assert.False(t, untimed.HasUsableTime())
	assert.True(t, tracked.HasUsableTime())
}

func TestJourneyRefComplete(t *testing.T) {
	complete := JourneyRef{TimetableID: "E1", DataFrameRef: "2025-03-04", DatedVehicleJourneyRef: "4321"}
	assert.True(t, complete.Complete())
	assert.True(t, (&Departure{JourneyRef: complete}).Plannable())

	for _, ref := range []JourneyRef{
		{DataFrameRef: "2025-03-04", DatedVehicleJourneyRef: "4321"},
		{TimetableID: "E1", DatedVehicleJourneyRef: "4321"},
		{TimetableID: "E1", DataFrameRef: "2025-03-04"},
	} {
		assert.False(t, ref.Complete())
		assert.False(t, (&Departure{JourneyRef: ref}).Plannable())
	}
}
