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
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
	"github.com/go-gl/mathgl/mgl64"
)

// A Feature is one extruded footprint within a tile.
type Feature struct {
	// Footprint holds the feature's rings in tile units. The first ring
	// is the outer boundary; any further rings are holes.
	Footprint geom.Polygon

	// Base and Top are the extrusion elevations, pre-evaluated from the
	// layer's paint properties.
	Base, Top float64

	// Translate is the layer's paint translation offset in screen
	// pixels, and TranslateAnchor its frame of reference.
	Translate       geom.Point
	TranslateAnchor TranslateAnchor

	// ID identifies the feature to the caller.
	ID string
}

// A Feature satisfies geom.Geom by delegating to its footprint, so that
// it can be stored in the rtree index directly.

// Bounds returns the bounding box of the feature's footprint.
func (f *Feature) Bounds() *geom.Bounds {
	return f.Footprint.Bounds()
}

// Len returns the number of points in the feature's footprint.
func (f *Feature) Len() int {
	return f.Footprint.Len()
}

// Points returns an iterator over the footprint's points.
func (f *Feature) Points() func() geom.Point {
	return f.Footprint.Points()
}

// Similar reports whether the feature's footprint is within tolerance
// tol of g.
func (f *Feature) Similar(g geom.Geom, tol float64) bool {
	return f.Footprint.Similar(g, tol)
}

// Transform applies t to the feature's footprint.
func (f *Feature) Transform(t proj.Transformer) (geom.Geom, error) {
	return f.Footprint.Transform(t)
}

// A Hit is one feature intersected by a query, together with the depth
// at which the query meets it.
type Hit struct {
	Feature  *Feature
	Distance float64
}

// A FeatureSet holds a tile's extruded features in a spatial index for
// querying. Add is not safe to call concurrently with Query; once the
// set is populated, any number of Query calls may run in parallel.
type FeatureSet struct {
	tree              *rtree.Rtree
	pixelsPerTileUnit float64
	maxTranslate      float64 // largest translation radius added, tile units
}

// NewFeatureSet creates an empty feature set. pixelsPerTileUnit converts
// screen pixels to tile units at the tile's zoom level and applies to all
// features added to the set.
func NewFeatureSet(pixelsPerTileUnit float64) *FeatureSet {
	return &FeatureSet{
		tree:              rtree.NewTree(25, 50),
		pixelsPerTileUnit: pixelsPerTileUnit,
	}
}

// Add indexes f.
func (s *FeatureSet) Add(f *Feature) {
	s.tree.Insert(f)
	if r := TranslateRadius(f.Translate) * s.pixelsPerTileUnit; r > s.maxTranslate {
		s.maxTranslate = r
	}
}

// Query returns every feature whose extrusion intersects the query
// region, nearest hit first. The footprint index narrows the candidates
// before the full intersection test runs; the search box is padded by the
// largest translation radius in the set so that translated features near
// the region are not missed. Query does not choose among the returned
// hits; picking priority is left to the caller.
func (s *FeatureSet) Query(region []geom.Point, bearing float64, m mgl64.Mat4) []Hit {
	if len(region) == 0 {
		return nil
	}
	b := geom.NewBounds()
	for _, p := range region {
		b.Extend(geom.NewBoundsPoint(p))
	}
	b.Min.X -= s.maxTranslate
	b.Min.Y -= s.maxTranslate
	b.Max.X += s.maxTranslate
	b.Max.Y += s.maxTranslate

	var hits []Hit
	for _, c := range s.tree.SearchIntersect(b) {
		f := c.(*Feature)
		d, ok := QueryIntersection(region, f.Base, f.Top, f.Footprint,
			f.Translate, f.TranslateAnchor, bearing, s.pixelsPerTileUnit, m)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Feature: f, Distance: d})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Feature.ID < hits[j].Feature.ID
	})
	return hits
}
