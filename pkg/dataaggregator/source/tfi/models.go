package tfi

import (
	"bytes"
	"encoding/json"
)

type responseStatus struct {
	Status struct {
		Success bool `json:"success"`
	} `json:"status"`
}

func (r *responseStatus) succeeded() bool {
	return r.Status.Success
}

// flexibleString accepts identifiers that are sent either as JSON strings or numbers
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleString(n.String())

	return nil
}

type departuresRequest struct {
	ClientTimeZoneOffsetInMS int      `json:"clientTimeZoneOffsetInMS"`
	DepartureDate            string   `json:"departureDate"`
	DepartureTime            string   `json:"departureTime"`
	StopIDs                  []string `json:"stopIds"`
	StopType                 string   `json:"stopType"`
	StopName                 string   `json:"stopName"`
	RequestTime              string   `json:"requestTime"`
	DepartureOrArrival       string   `json:"departureOrArrival"`
	Refresh                  bool     `json:"refresh"`
}

type departuresResponse struct {
	responseStatus
	StopDepartures []stopDeparture `json:"stopDepartures"`
}

type stopDeparture struct {
	ServiceNumber      string         `json:"serviceNumber"`
	ServiceID          flexibleString `json:"serviceID"`
	Destination        string         `json:"destination"`
	ScheduledDeparture string         `json:"scheduledDeparture"`
	RealTimeDeparture  string         `json:"realTimeDeparture"`
	Cancelled          bool           `json:"cancelled"`
	Vehicle            *vehicle       `json:"vehicle"`
}

type vehicle struct {
	DataFrameRef           flexibleString `json:"dataFrameRef"`
	DatedVehicleJourneyRef flexibleString `json:"datedVehicleJourneyRef"`
}

type estimatedTimetableRequest struct {
	ClientTimeZoneOffsetInMS int    `json:"clientTimeZoneOffsetInMS"`
	DateAndTime              string `json:"dateAndTime"`
	IncludeNonTimingPoints   bool   `json:"includeNonTimingPoints"`
	MaxColumnsToFetch        int    `json:"maxColumnsToFetch"`
	TimetableID              string `json:"timetableId"`
	TimetableDirection       string `json:"timetableDirection"`
	OriginStopReference      string `json:"originStopReference"`
	OriginDepartureTime      string `json:"originDepartureTime"`
	OriginDepartureRealtime  string `json:"originDepartureRealtime"`
	DataFrameRef             string `json:"dataFrameRef"`
	DatedVehicleJourneyRef   string `json:"datedVehicleJourneyRef"`
}

type estimatedTimetableResponse struct {
	responseStatus
	Rows    []timetableRow    `json:"rows"`
	Columns []timetableColumn `json:"columns"`
}

type timetableRow struct {
	StopName string `json:"stopName"`
	RowIndex int    `json:"rowIndex"`
}

type timetableColumn struct {
	Events map[string]*timetableEvent `json:"events"`
}

type timetableEvent struct {
	TimeOfEvent     string `json:"timeOfEvent"`
	RealTimeOfEvent string `json:"realTimeOfEvent"`
}
