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

// projectExtrusion transforms footprint rings in tile units through m at
// the base and top elevations, returning parallel ring sets of
// screen-space points with depth. The shape of the output matches the
// input: baseRings[i][j] and topRings[i][j] are the same footprint vertex
// at the two elevations.
//
// The elevation-dependent matrix column contributions are constant across
// vertices, so they are computed once per call and each vertex costs one
// shared transform plus two additions and divides. A vertex whose
// homogeneous w coordinate is near zero divides to infinities; such
// values are carried through rather than reported as errors, and are
// excluded later by finiteness checks.
func projectExtrusion(rings geom.Polygon, base, top float64, m mgl64.Mat4) (baseRings, topRings []Ring3) {
	baseRings = make([]Ring3, len(rings))
	topRings = make([]Ring3, len(rings))

	baseX := m[8] * base
	baseY := m[9] * base
	baseZ := m[10] * base
	baseW := m[11] * base
	topX := m[8] * top
	topY := m[9] * top
	topZ := m[10] * top
	topW := m[11] * top

	for i, ring := range rings {
		b := make(Ring3, len(ring))
		t := make(Ring3, len(ring))
		for j, p := range ring {
			// Part of the homogeneous coordinate that is shared between
			// the two elevations.
			sX := m[0]*p.X + m[4]*p.Y + m[12]
			sY := m[1]*p.X + m[5]*p.Y + m[13]
			sZ := m[2]*p.X + m[6]*p.Y + m[14]
			sW := m[3]*p.X + m[7]*p.Y + m[15]

			bW := sW + baseW
			tW := sW + topW
			b[j] = Point3{
				X: (sX + baseX) / bW,
				Y: (sY + baseY) / bW,
				Z: (sZ + baseZ) / bW,
			}
			t[j] = Point3{
				X: (sX + topX) / tW,
				Y: (sY + topY) / tW,
				Z: (sZ + topZ) / tW,
			}
		}
		baseRings[i] = b
		topRings[i] = t
	}
	return baseRings, topRings
}

// projectQuery transforms already-translated query points in tile units
// into screen space, treating each point as lying at the given elevation.
func projectQuery(pts []geom.Point, elevation float64, m mgl64.Mat4) []geom.Point {
	o := make([]geom.Point, len(pts))
	for i, p := range pts {
		v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, elevation, 1})
		o[i] = geom.Point{X: v[0] / v[3], Y: v[1] / v[3]}
	}
	return o
}
