// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package city holds the built-in list of selectable cities.
package city

import (
	"errors"
	"strings"

	"github.com/wneessen/bestbikeday/internal/geo"
)

// DefaultTimezone is the IANA zone shared by all built-in cities.
const DefaultTimezone = "Africa/Johannesburg"

var ErrUnknownCity = errors.New("unknown city")

type City struct {
	Name     string
	Coords   geo.Coordinate
	Timezone string
}

var cities = []City{
	{Name: "Johannesburg", Coords: geo.Coordinate{Lat: -26.2041, Lon: 28.0473, Found: true}},
	{Name: "Cape Town", Coords: geo.Coordinate{Lat: -33.9249, Lon: 18.4241, Found: true}},
	{Name: "Durban", Coords: geo.Coordinate{Lat: -29.8587, Lon: 31.0218, Found: true}},
	{Name: "Pretoria", Coords: geo.Coordinate{Lat: -25.7479, Lon: 28.2293, Found: true}},
	{Name: "Port Elizabeth", Coords: geo.Coordinate{Lat: -33.9608, Lon: 25.6022, Found: true}},
	{Name: "Bloemfontein", Coords: geo.Coordinate{Lat: -29.0852, Lon: 26.1596, Found: true}},
	{Name: "Nelspruit", Coords: geo.Coordinate{Lat: -25.4753, Lon: 30.9694, Found: true}},
	{Name: "Kimberley", Coords: geo.Coordinate{Lat: -28.7282, Lon: 24.7499, Found: true}},
	{Name: "Polokwane", Coords: geo.Coordinate{Lat: -23.9045, Lon: 29.4688, Found: true}},
	{Name: "East London", Coords: geo.Coordinate{Lat: -32.9783, Lon: 27.8645, Found: true}},
}

// All returns the built-in cities in display order.
func All() []City {
	list := make([]City, len(cities))
	for i, c := range cities {
		c.Timezone = DefaultTimezone
		list[i] = c
	}
	return list
}

// Lookup finds a built-in city by name, ignoring case and surrounding whitespace.
func Lookup(name string) (City, error) {
	name = strings.TrimSpace(name)
	for _, c := range All() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return City{}, ErrUnknownCity
}
