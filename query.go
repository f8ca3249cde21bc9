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
	"github.com/ctessum/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// QueryIntersection reports whether a screen-space query hits the
// extrusion formed by sweeping the footprint rings from the base
// elevation to the top elevation. On a hit it returns the minimum depth
// among the intersecting faces, for nearest-hit ranking across features;
// ok is false when nothing intersects.
//
// query is the query region in tile units, either a single point or the
// boundary of a box or other closed region. rings are the footprint
// rings in tile units. offset, anchor, bearing and pixelsPerTileUnit
// describe the layer's paint translation (see translateQuery); base and
// top come pre-evaluated from the layer's paint properties. m projects
// tile coordinates to screen space.
//
// The function is pure: its inputs are only read, each call allocates
// only its own intermediate state, and identical inputs give identical
// results, so evaluations for different features may run concurrently.
// The returned distance is always finite and never NaN.
func QueryIntersection(query []geom.Point, base, top float64, rings geom.Polygon,
	offset geom.Point, anchor TranslateAnchor, bearing, pixelsPerTileUnit float64,
	m mgl64.Mat4) (distance float64, ok bool) {

	translated := translateQuery(query, offset, anchor, bearing, pixelsPerTileUnit)
	projectedQuery := projectQuery(translated, 0, m)
	baseRings, topRings := projectExtrusion(rings, base, top, m)
	return extrusionDistance(baseRings, topRings, projectedQuery)
}
