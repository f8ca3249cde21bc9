/*
Copyright © 2025 the FeaturePick authors.
This file is part of FeaturePick.

FeaturePick is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FeaturePick is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FeaturePick.  If not, see <http://www.gnu.org/licenses/>.
*/

package featurepick

import (
	"math"

	"github.com/ctessum/geom"
)

// TranslateAnchor gives the frame of reference of a layer's paint
// translation offset.
type TranslateAnchor int

const (
	// TranslateMap anchors the offset to the map, so it rotates together
	// with the map.
	TranslateMap TranslateAnchor = iota
	// TranslateViewport anchors the offset to the screen, independent of
	// map rotation.
	TranslateViewport
)

// TranslateRadius returns the magnitude of a paint translation offset in
// screen pixels. It bounds how far a translated feature can be displaced
// from its footprint, whatever the anchor mode and bearing.
func TranslateRadius(offset geom.Point) float64 {
	return math.Hypot(offset.X, offset.Y)
}

// translateQuery shifts the query region opposite a layer's paint
// translation, which hits the same features as shifting the rendered
// geometry by the offset. The offset is given in screen pixels and scaled
// by pixelsPerTileUnit into tile units; a viewport-anchored offset is
// first rotated by the negated view bearing. A zero offset returns query
// unchanged.
func translateQuery(query []geom.Point, offset geom.Point, anchor TranslateAnchor, bearing, pixelsPerTileUnit float64) []geom.Point {
	if offset.X == 0 && offset.Y == 0 {
		return query
	}
	shift := geom.Point{
		X: offset.X * pixelsPerTileUnit,
		Y: offset.Y * pixelsPerTileUnit,
	}
	if anchor == TranslateViewport {
		shift = rotate(shift, -bearing)
	}
	o := make([]geom.Point, len(query))
	for i, p := range query {
		o[i] = geom.Point{X: p.X - shift.X, Y: p.Y - shift.Y}
	}
	return o
}

// rotate rotates p by angle radians about the origin.
func rotate(p geom.Point, angle float64) geom.Point {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return geom.Point{
		X: cos*p.X - sin*p.Y,
		Y: sin*p.X + cos*p.Y,
	}
}
