// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package forecast reduces a fine-grained forecast series to one representative reading per
// local calendar day and rates each day for cycling.
package forecast

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidInput is returned when a forecast series or horizon cannot be processed.
var ErrInvalidInput = errors.New("invalid forecast input")

// Reading is a single raw forecast sample. Temperatures are in degrees Celsius, wind speed
// in km/h.
type Reading struct {
	Time           time.Time
	Temperature    float64
	TemperatureMin float64
	TemperatureMax float64
	WindSpeed      float64
	Sky            SkyCondition
	Description    string
}

// SkyCondition is the closed set of sky categories the scorer understands.
type SkyCondition int

const (
	SkyOther SkyCondition = iota
	SkyClear
	SkyClouds
	SkyMist
	SkyFog
	SkyDrizzle
	SkyRain
	SkySnow
	SkyThunderstorm
)

var skyNames = map[SkyCondition]string{
	SkyOther:        "other",
	SkyClear:        "clear",
	SkyClouds:       "clouds",
	SkyMist:         "mist",
	SkyFog:          "fog",
	SkyDrizzle:      "drizzle",
	SkyRain:         "rain",
	SkySnow:         "snow",
	SkyThunderstorm: "thunderstorm",
}

// ParseSkyCondition maps a category name to a SkyCondition. Matching is case-insensitive and
// anything unrecognized becomes SkyOther.
func ParseSkyCondition(val string) SkyCondition {
	val = strings.ToLower(strings.TrimSpace(val))
	for sky, name := range skyNames {
		if name == val {
			return sky
		}
	}
	return SkyOther
}

func (s SkyCondition) String() string {
	if name, ok := skyNames[s]; ok {
		return name
	}
	return skyNames[SkyOther]
}

// MarshalText implements encoding.TextMarshaler.
func (s SkyCondition) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SkyCondition) UnmarshalText(text []byte) error {
	*s = ParseSkyCondition(string(text))
	return nil
}

// Date is a calendar date without a time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns the midnight instant of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for dates in YYYY-MM-DD form.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(time.DateOnly, string(text))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", text, err)
	}
	*d = DateOf(t)
	return nil
}
