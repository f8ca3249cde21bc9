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
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// fovY is the vertical field of view of the query camera.
const fovY = math.Pi / 3

// PixelMatrix builds the matrix that takes tile coordinates with
// elevation to screen pixels for a camera centered on (centerX, centerY),
// rotated by bearing radians, tilted by pitch radians, at scale screen
// pixels per tile unit at ground level.
//
// The camera distance is chosen so that with zero pitch a ground-level
// tile unit maps to exactly scale pixels, which keeps point queries in
// pixel coordinates: tile point (centerX+dx, centerY+dy, 0) lands at
// screen (width/2 + scale*dx, height/2 + scale*dy), with y growing
// downward as both tile and screen coordinates do.
func PixelMatrix(width, height, bearing, pitch, scale, centerX, centerY float64) mgl64.Mat4 {
	dist := height / 2 / math.Tan(fovY/2)

	view := mgl64.Translate3D(0, 0, -dist).
		Mul4(mgl64.HomogRotate3DX(pitch)).
		Mul4(mgl64.HomogRotate3DZ(bearing)).
		Mul4(mgl64.Scale3D(scale, -scale, 1)).
		Mul4(mgl64.Translate3D(-centerX, -centerY, 0))
	proj := mgl64.Perspective(fovY, width/height, dist/10, dist*10)
	screen := mgl64.Translate3D(width/2, height/2, 0).
		Mul4(mgl64.Scale3D(width/2, -height/2, 1))

	return screen.Mul4(proj).Mul4(view)
}
