// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"

	"github.com/wneessen/bestbikeday/internal/geo"
)

// Address is the result of a reverse lookup.
type Address struct {
	AddressFound bool
	CacheHit     bool
	Latitude     float64
	Longitude    float64
	DisplayName  string
	City         string
	State        string
	Country      string
}

// Geocoder resolves place names to coordinates and back.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, address string) (geo.Coordinate, error)
	Reverse(ctx context.Context, coords geo.Coordinate) (Address, error)
}
