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

// Package featurepick implements 3D hit-testing for extruded polygon
// geometry in tile-based map rendering. Given a query region in screen
// space and a feature's footprint rings with base and top elevations, it
// determines whether the query intersects any of the extrusion's visible
// surfaces and, if so, at what depth, so that overlapping features can be
// ranked by nearest hit.
package featurepick

import "math"

// Version gives the version number of this library.
const Version = "0.1.0"

// Point3 is a screen-space coordinate with a depth component, produced by
// projecting a tile-space point through a projection matrix and performing
// the perspective divide.
type Point3 struct {
	X, Y, Z float64
}

// Ring3 is one projected polygon ring.
type Ring3 []Point3

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
