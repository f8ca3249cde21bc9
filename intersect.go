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

// extrusionDistance tests the projected query region against the
// extrusion's top face and every side face, returning the minimum depth
// among the faces that intersect it. ok is false when no face with a
// finite depth intersects the query, so a returned distance of zero is
// always a real hit.
//
// Side faces are built per ring segment: for consecutive footprint
// vertices A and B, the face is the closed loop
// [Atop, Btop, Bbase, Abase, Atop]. The closing duplicate vertex of each
// ring produces no extra face.
func extrusionDistance(baseRings, topRings []Ring3, query []geom.Point) (distance float64, ok bool) {
	closest := math.Inf(1)

	if len(topRings) > 0 && queryIntersects(query, screenPolygon(topRings)) {
		if d := faceDistance(query, topRings[0]); d < closest {
			closest = d
		}
	}

	for r, ringTop := range topRings {
		ringBase := baseRings[r]
		for p := 0; p+1 < len(ringTop); p++ {
			face := Ring3{ringTop[p], ringTop[p+1], ringBase[p+1], ringBase[p], ringTop[p]}
			if !queryIntersects(query, geom.Polygon{face.screenRing()}) {
				continue
			}
			if d := faceDistance(query, face); d < closest {
				closest = d
			}
		}
	}

	if !isFinite(closest) {
		return 0, false
	}
	return closest, true
}

// queryIntersects reports whether the query region touches poly in the
// screen plane. A single-point query uses a point-in-polygon test, which
// counts points on the polygon boundary as inside; larger query regions
// use a polygon overlap test.
func queryIntersects(query []geom.Point, poly geom.Polygon) bool {
	if len(query) == 0 {
		return false
	}
	if len(query) == 1 {
		return query[0].Within(poly) != geom.Outside
	}
	q := geom.Polygon{closeRing(query)}
	return q.Intersection(poly).Len() > 0
}

// faceDistance returns the depth at which the query region meets the
// given face. For a point query the depth is interpolated at the query
// point; for a box query it is the depth of the face's nearest vertex.
// The nearest-vertex rule is an approximation (the true nearest point on
// the face may be deeper), kept because downstream hit ranking depends on
// it. A face with no finite vertex depth contributes +Inf, removing it
// from consideration.
func faceDistance(query []geom.Point, face Ring3) float64 {
	if len(query) == 1 {
		return pointFaceDistance(query[0], face)
	}
	closest := math.Inf(1)
	for _, p := range face {
		if isFinite(p.Z) && p.Z < closest {
			closest = p.Z
		}
	}
	return closest
}

// pointFaceDistance interpolates the face's depth at pt using barycentric
// coordinates in the screen plane. Triangle vertices are chosen in ring
// order: A is the first vertex, B the first vertex distinct from A, and
// each subsequent vertex is tried as C until the interpolated depth comes
// out finite. Collinear or coincident candidates make the barycentric
// denominator vanish and surface as non-finite results, so no separate
// degeneracy test is needed. If every candidate triangle is degenerate
// the face has no area at this point and contributes +Inf.
//
// The weights u, v, w sum to 1 and depend only on the xy geometry; depth
// enters only through the final weighted sum, so the interpolation is
// exact for the planar faces built here.
func pointFaceDistance(pt geom.Point, face Ring3) float64 {
	if len(face) == 0 {
		return math.Inf(1)
	}
	i := 0
	a := face[i]
	i++
	var b Point3
	for {
		if i >= len(face) {
			return math.Inf(1)
		}
		b = face[i]
		i++
		if b.X != a.X || b.Y != a.Y {
			break
		}
	}
	for ; i < len(face); i++ {
		c := face[i]
		abX, abY := b.X-a.X, b.Y-a.Y
		acX, acY := c.X-a.X, c.Y-a.Y
		apX, apY := pt.X-a.X, pt.Y-a.Y
		dotABAB := abX*abX + abY*abY
		dotABAC := abX*acX + abY*acY
		dotACAC := acX*acX + acY*acY
		dotAPAB := apX*abX + apY*abY
		dotAPAC := apX*acX + apY*acY
		denom := dotABAB*dotACAC - dotABAC*dotABAC
		v := (dotACAC*dotAPAB - dotABAC*dotAPAC) / denom
		w := (dotABAB*dotAPAC - dotABAC*dotAPAB) / denom
		u := 1 - v - w
		if d := a.Z*u + b.Z*v + c.Z*w; isFinite(d) {
			return d
		}
	}
	return math.Inf(1)
}

// screenRing drops the depth component, giving the ring's outline in the
// screen plane.
func (r Ring3) screenRing() []geom.Point {
	o := make([]geom.Point, len(r))
	for i, p := range r {
		o[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return o
}

// screenPolygon flattens projected rings into a multi-ring screen-plane
// polygon.
func screenPolygon(rings []Ring3) geom.Polygon {
	o := make(geom.Polygon, len(rings))
	for i, r := range rings {
		o[i] = r.screenRing()
	}
	return o
}

// closeRing returns pts as a closed ring, appending a copy of the first
// point when the loop is open.
func closeRing(pts []geom.Point) []geom.Point {
	if len(pts) == 0 || pts[0] == pts[len(pts)-1] {
		return pts
	}
	o := make([]geom.Point, len(pts)+1)
	copy(o, pts)
	o[len(pts)] = pts[0]
	return o
}
