package config

import (
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gt=0"`
}

func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

type PlannerConfig struct {
	MaxParallelCandidates int    `yaml:"max_parallel_candidates" validate:"gt=0"`
	DisplayTimezone       string `yaml:"display_timezone" validate:"required"`
}

// Location loads the display timezone, falling back to UTC if it is unknown
func (p PlannerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(p.DisplayTimezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// BoardStop is a stop whose departure board is fetched
type BoardStop struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	DisplayName string `yaml:"display_name" validate:"required"`
}

// AlightStop is a stop found by name inside a journey's estimated timetable
type AlightStop struct {
	DisplayName string `yaml:"display_name" validate:"required"`
	Keyword     string `yaml:"keyword" validate:"required"`
}

type LegConfig struct {
	Services []string   `yaml:"services" validate:"required,min=1,dive,required"`
	Board    BoardStop  `yaml:"board" validate:"required"`
	Alight   AlightStop `yaml:"alight" validate:"required"`

	DefaultDurationMinutes int `yaml:"default_duration_minutes" validate:"gte=0"`
}

// Direction is a fixed origin stop, transfer and destination planned as one unit
type Direction struct {
	Key                string `yaml:"key" validate:"required"`
	Description        string `yaml:"description"`
	TimetableDirection string `yaml:"timetable_direction" validate:"required,oneof=INBOUND OUTBOUND"`
	Horizon            string `yaml:"horizon" validate:"required"`
	WalkMinutes        int    `yaml:"walk_minutes" validate:"gte=0"`

	FirstLeg  LegConfig `yaml:"first_leg" validate:"required"`
	SecondLeg LegConfig `yaml:"second_leg" validate:"required"`
}

func (d Direction) Walk() time.Duration {
	return time.Duration(d.WalkMinutes) * time.Minute
}

// SecondLegDefaultDuration is used when the second leg's arrival cannot be resolved
func (d Direction) SecondLegDefaultDuration() time.Duration {
	return time.Duration(d.SecondLeg.DefaultDurationMinutes) * time.Minute
}

func (d Direction) HorizonDuration() (iso8601.Duration, error) {
	return iso8601.ParseISO8601(d.Horizon)
}

// HorizonEnd is the latest eligible first leg departure for a plan made at now
func (d Direction) HorizonEnd(now time.Time) time.Time {
	horizon, err := d.HorizonDuration()
	if err != nil {
		return now
	}

	return horizon.Shift(now)
}

// RouteName is the key in snake case, eg "to_home"
func (d Direction) RouteName() string {
	return strings.ReplaceAll(d.Key, "-", "_")
}

type Config struct {
	Server     ServerConfig   `yaml:"server" validate:"required"`
	Upstream   UpstreamConfig `yaml:"upstream" validate:"required"`
	Planner    PlannerConfig  `yaml:"planner" validate:"required"`
	Directions []Direction    `yaml:"directions" validate:"required,min=1,dive"`
}

func (c *Config) Direction(key string) (Direction, bool) {
	for _, direction := range c.Directions {
		if direction.Key == key {
			return direction, true
		}
	}

	return Direction{}, false
}
