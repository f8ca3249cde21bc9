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

package featurepickutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/spatialmodel/featurepick"
)

// jsonFeature is one entry in a features file: a GeoJSON geometry plus
// free-form properties.
type jsonFeature struct {
	ID         string                 `json:"id"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type jsonFeatureCollection struct {
	Features []jsonFeature `json:"features"`
}

// LoadFeatures reads extruded footprints from the JSON file at path into
// an indexed feature set. heightProp and baseProp name the properties
// holding the extrusion top and base elevations; a missing base property
// defaults to zero, but the height property is required. Geometries must
// be GeoJSON Polygons or MultiPolygons.
func LoadFeatures(path, heightProp, baseProp string, pixelsPerTileUnit float64) (*featurepick.FeatureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("featurepick: reading features file: %v", err)
	}
	var fc jsonFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("featurepick: parsing features file %s: %v", path, err)
	}

	set := featurepick.NewFeatureSet(pixelsPerTileUnit)
	for i, jf := range fc.Features {
		g, err := geojson.Decode(jf.Geometry)
		if err != nil {
			return nil, fmt.Errorf("featurepick: feature %d: %v", i, err)
		}
		p, ok := g.(geom.Polygonal)
		if !ok {
			return nil, fmt.Errorf("featurepick: feature %d: geometry type %T is not polygonal", i, g)
		}

		hVal, ok := jf.Properties[heightProp]
		if !ok {
			return nil, fmt.Errorf("featurepick: feature %d: missing property %q", i, heightProp)
		}
		height, err := cast.ToFloat64E(hVal)
		if err != nil {
			return nil, fmt.Errorf("featurepick: feature %d: property %q: %v", i, heightProp, err)
		}
		var base float64
		if bVal, ok := jf.Properties[baseProp]; ok {
			base, err = cast.ToFloat64E(bVal)
			if err != nil {
				return nil, fmt.Errorf("featurepick: feature %d: property %q: %v", i, baseProp, err)
			}
		}

		id := jf.ID
		if id == "" {
			id = fmt.Sprintf("feature-%d", i)
		}
		for j, poly := range p.Polygons() {
			f := &featurepick.Feature{
				ID:        id,
				Footprint: poly,
				Base:      base,
				Top:       height,
			}
			if j > 0 {
				f.ID = fmt.Sprintf("%s/%d", id, j)
			}
			set.Add(f)
		}
	}
	Log.WithFields(logrus.Fields{
		"path":     path,
		"features": len(fc.Features),
	}).Info("loaded features")
	return set, nil
}

// queryRegion parses the point or box option into a query region,
// requiring exactly one of the two to be set.
func queryRegion(point, box string) ([]geom.Point, error) {
	switch {
	case point != "" && box != "":
		return nil, fmt.Errorf("featurepick: point and box are mutually exclusive")
	case point != "":
		v, err := parseFloats(point, 2)
		if err != nil {
			return nil, fmt.Errorf("featurepick: parsing point: %v", err)
		}
		return []geom.Point{{X: v[0], Y: v[1]}}, nil
	case box != "":
		v, err := parseFloats(box, 4)
		if err != nil {
			return nil, fmt.Errorf("featurepick: parsing box: %v", err)
		}
		return []geom.Point{
			{X: v[0], Y: v[1]}, {X: v[2], Y: v[1]},
			{X: v[2], Y: v[3]}, {X: v[0], Y: v[3]},
			{X: v[0], Y: v[1]},
		}, nil
	default:
		return nil, fmt.Errorf("featurepick: one of point and box must be set")
	}
}

// parseFloats splits a comma-separated list into exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(parts))
	}
	o := make([]float64, n)
	for i, p := range parts {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		o[i] = v
	}
	return o, nil
}
