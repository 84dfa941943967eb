// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"fmt"
	"math"
)

// keyPrecision is the precision used to quantize coordinates for keys (0.01 degrees ≈ 1.1 km)
const keyPrecision = 1e-2

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64
	Lon float64

	CacheHit bool
	Found    bool
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Key returns a quantized string representation of the coordinate. Coordinates less than
// roughly a kilometre apart share a key.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%d:%d", quantize(c.Lat), quantize(c.Lon))
}

func quantize(val float64) int32 {
	return int32(math.Round(val / keyPrecision))
}
