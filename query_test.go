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
	"testing"

	"github.com/ctessum/geom"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

func noTranslate() geom.Point { return geom.Point{} }

// queryPoint runs a single-point query with no paint translation.
func queryPoint(t *testing.T, x, y, base, top float64, rings geom.Polygon, m mgl64.Mat4) (float64, bool) {
	t.Helper()
	return QueryIntersection([]geom.Point{{X: x, Y: y}}, base, top, rings,
		noTranslate(), TranslateMap, 0, 1, m)
}

func TestQueryPointOverCenter(t *testing.T) {
	d, ok := queryPoint(t, 0.5, 0.5, 0, 10, unitSquare(), mgl64.Ident4())
	if !ok {
		t.Fatal("want intersection over footprint center, got none")
	}
	if !scalar.EqualWithinAbs(d, 10, testTolerance) {
		t.Errorf("want top-face depth 10, got %g", d)
	}
}

func TestQueryPointOutside(t *testing.T) {
	if d, ok := queryPoint(t, 5, 5, 0, 10, unitSquare(), mgl64.Ident4()); ok {
		t.Errorf("want no intersection outside footprint, got distance %g", d)
	}
}

func TestQueryPointOnEdge(t *testing.T) {
	d, ok := queryPoint(t, 1, 0.5, 0, 10, unitSquare(), mgl64.Ident4())
	if !ok {
		t.Fatal("want intersection on footprint edge, got none")
	}
	if !isFinite(d) || d < 0 || d > 10 {
		t.Errorf("want finite depth in [0,10] on edge, got %g", d)
	}
}

func TestQueryDegenerateRing(t *testing.T) {
	rings := geom.Polygon{{
		{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2},
	}}
	if d, ok := queryPoint(t, 2, 2, 0, 10, rings, mgl64.Ident4()); ok {
		t.Errorf("want no intersection with zero-area ring, got distance %g", d)
	}
}

func TestQueryInvertedExtrusion(t *testing.T) {
	// Base above top is unusual but must still give a plain numeric
	// answer. With an identity projection the top face sits at depth 0.
	d, ok := queryPoint(t, 0.5, 0.5, 10, 0, unitSquare(), mgl64.Ident4())
	if !ok {
		t.Fatal("want intersection for inverted extrusion, got none")
	}
	if math.IsNaN(d) {
		t.Fatal("inverted extrusion returned NaN")
	}
	if !scalar.EqualWithinAbs(d, 0, testTolerance) {
		t.Errorf("want depth 0 for inverted extrusion, got %g", d)
	}
}

func TestQueryIdempotent(t *testing.T) {
	d1, ok1 := queryPoint(t, 0.5, 0.5, 0, 10, unitSquare(), mgl64.Ident4())
	d2, ok2 := queryPoint(t, 0.5, 0.5, 0, 10, unitSquare(), mgl64.Ident4())
	if d1 != d2 || ok1 != ok2 {
		t.Errorf("repeated query differs: (%g,%t) then (%g,%t)", d1, ok1, d2, ok2)
	}
}

// box returns a closed query region covering [x0,x1]x[y0,y1].
func box(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	}
}

func TestQueryBox(t *testing.T) {
	d, ok := QueryIntersection(box(0.25, 0.25, 0.75, 0.75), 0, 10, unitSquare(),
		noTranslate(), TranslateMap, 0, 1, mgl64.Ident4())
	if !ok {
		t.Fatal("want intersection for box over footprint, got none")
	}
	// Box queries report the nearest face vertex depth.
	if !scalar.EqualWithinAbs(d, 10, testTolerance) {
		t.Errorf("want nearest-vertex depth 10, got %g", d)
	}
}

func TestQueryBoxMonotonic(t *testing.T) {
	// Growing a box that already intersects must keep it intersecting.
	boxes := [][]geom.Point{
		box(2, 2, 3, 3),
		box(0.5, 0.5, 3, 3),
		box(-1, -1, 4, 4),
	}
	hit := make([]bool, len(boxes))
	for i, b := range boxes {
		_, hit[i] = QueryIntersection(b, 0, 10, unitSquare(),
			noTranslate(), TranslateMap, 0, 1, mgl64.Ident4())
	}
	if hit[0] {
		t.Error("want no intersection for the disjoint box")
	}
	if !hit[1] || !hit[2] {
		t.Errorf("want intersection for the overlapping boxes, got %v", hit[1:])
	}
}

func TestQueryTiltedNearestFace(t *testing.T) {
	// Screen y picks up half the elevation, so the top face and the side
	// faces separate vertically. The query point lies over two side
	// faces; the shallower one must win.
	m := mgl64.Ident4()
	m[9] = 0.5
	d, ok := queryPoint(t, 0.5, 2.5, 0, 10, unitSquare(), m)
	if !ok {
		t.Fatal("want intersection with side faces, got none")
	}
	if !scalar.EqualWithinAbs(d, 3, testTolerance) {
		t.Errorf("want nearer side-face depth 3, got %g", d)
	}
}

func TestQuerySingularMatrixTotality(t *testing.T) {
	// The base elevation drives w to zero, so every base vertex projects
	// to infinities. The query must still return a plain answer: either
	// no intersection, or a finite non-NaN depth.
	m := mgl64.Ident4()
	m[11] = -0.1
	d, ok := queryPoint(t, 0.5, 0.5, 10, 20, unitSquare(), m)
	if ok && !isFinite(d) {
		t.Errorf("non-finite distance %g leaked to caller", d)
	}
	if math.IsNaN(d) {
		t.Error("NaN distance leaked to caller")
	}
}

func TestQueryTranslateMap(t *testing.T) {
	// The feature renders 10 tile units east; querying at the rendered
	// position must hit, and querying the footprint must not.
	offset := geom.Point{X: 10, Y: 0}
	d, ok := QueryIntersection([]geom.Point{{X: 10.5, Y: 0.5}}, 0, 10, unitSquare(),
		offset, TranslateMap, 0, 1, mgl64.Ident4())
	if !ok {
		t.Fatal("want hit at translated position, got none")
	}
	if !scalar.EqualWithinAbs(d, 10, testTolerance) {
		t.Errorf("want depth 10 at translated position, got %g", d)
	}
	if _, ok := QueryIntersection([]geom.Point{{X: 0.5, Y: 0.5}}, 0, 10, unitSquare(),
		offset, TranslateMap, 0, 1, mgl64.Ident4()); ok {
		t.Error("want no hit at untranslated footprint")
	}
}

func TestQueryTranslateMatchesPretranslatedGeometry(t *testing.T) {
	// Supplying the shift as a paint offset must match translating the
	// geometry by hand and querying with no offset.
	shifted := geom.Polygon{{
		{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 3},
	}}
	d1, ok1 := QueryIntersection([]geom.Point{{X: 3.5, Y: 3.5}}, 0, 10, shifted,
		noTranslate(), TranslateMap, 0, 1, mgl64.Ident4())
	d2, ok2 := QueryIntersection([]geom.Point{{X: 3.5, Y: 3.5}}, 0, 10, unitSquare(),
		geom.Point{X: 3, Y: 3}, TranslateMap, 0, 1, mgl64.Ident4())
	if ok1 != ok2 || !scalar.EqualWithinAbs(d1, d2, testTolerance) {
		t.Errorf("pre-translated geometry gives (%g,%t), offset gives (%g,%t)",
			d1, ok1, d2, ok2)
	}
}
