// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"time"

	"github.com/wneessen/bestbikeday/internal/forecast"
	"github.com/wneessen/bestbikeday/internal/geo"
)

// ErrSuperseded is returned when a forecast request was overtaken by a newer one and its result
// has been discarded.
var ErrSuperseded = errors.New("forecast request superseded by a newer request")

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetForecast(ctx context.Context, coords geo.Coordinate) (*Data, error)
}

// Data holds the normalized forecast of a provider for one location.
type Data struct {
	GeneratedAt time.Time
	Coordinates geo.Coordinate
	// Location is the time zone reported by the provider, nil if it reported none.
	Location *time.Location
	Name     string
	Readings []forecast.Reading
}

func NewData(coords geo.Coordinate) *Data {
	return &Data{
		GeneratedAt: time.Now(),
		Coordinates: coords,
		Readings:    make([]forecast.Reading, 0),
	}
}

// Zone returns the time zone used to derive calendar days. An explicitly configured zone wins
// over the provider's, and the local zone is used if neither is known.
func (d *Data) Zone(configured *time.Location) *time.Location {
	switch {
	case configured != nil:
		return configured
	case d != nil && d.Location != nil:
		return d.Location
	default:
		return time.Local
	}
}

// Age returns how long ago the data was generated.
func (d *Data) Age(now time.Time) time.Duration {
	return now.Sub(d.GeneratedAt)
}
