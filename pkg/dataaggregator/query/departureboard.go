package query

type DepartureBoard struct {
	StopID   string
	StopName string
}
