/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry in screen space (y grows downwards).
// Float values use float64: the angular search accumulates small steps
// and float32 drifts visibly after a few hundred of them.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Size is a width/height pair.
type Size struct{ W, H float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectAt returns the rectangle of size s with its top-left corner at p.
func RectAt(p Pt, s Size) Rect { return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H} }

// Centered returns the rectangle of size s centred on p.
func Centered(p Pt, s Size) Rect { return Rect{X: p.X - s.W/2, Y: p.Y - s.H/2, W: s.W, H: s.H} }

func (p Pt) Add(q Pt) Pt        { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt        { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Scale(f float64) Pt { return Pt{p.X * f, p.Y * f} }
func (p Pt) Valid() bool        { return finite(p.X) && finite(p.Y) }
func (s Size) Valid() bool      { return finite(s.W) && finite(s.H) && s.W >= 0 && s.H >= 0 }
func (s Size) Empty() bool      { return s.W <= 0 || s.H <= 0 }
func (r Rect) Min() Pt          { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt          { return Pt{r.X + r.W, r.Y + r.H} }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) Center() Pt       { return Pt{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect) Empty() bool      { return r.W <= 0 || r.H <= 0 }

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Intersects uses half-open intervals: rectangles that only share an edge do
// not intersect, and an empty rectangle intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// RectIntersectsAny reports whether candidate overlaps any rectangle in pool.
func RectIntersectsAny(candidate Rect, pool []Rect) bool {
	if candidate.Empty() {
		return false
	}
	for _, o := range pool {
		if candidate.Intersects(o) {
			return true
		}
	}
	return false
}

// PointInCircle reports whether p is within radius of center (boundary included).
func PointInCircle(center Pt, radius float64, p Pt) bool {
	return math.Hypot(p.X-center.X, p.Y-center.Y) <= radius
}

// AngleToPoint returns the point at angle (radians) on the circle around center.
func AngleToPoint(center Pt, radius, angle float64) Pt {
	return Pt{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// ClampInto shifts r so it lies inside bounds on the enabled axes. The size
// is never changed; a rect larger than bounds is aligned to the min edge.
func ClampInto(r Rect, bounds Rect, clampX, clampY bool) Rect {
	if clampX {
		if r.X+r.W > bounds.X+bounds.W {
			r.X = bounds.X + bounds.W - r.W
		}
		if r.X < bounds.X {
			r.X = bounds.X
		}
	}
	if clampY {
		if r.Y+r.H > bounds.Y+bounds.H {
			r.Y = bounds.Y + bounds.H - r.H
		}
		if r.Y < bounds.Y {
			r.Y = bounds.Y
		}
	}
	return r
}

// NormalizeAngle maps a into [start, start+2π).
func NormalizeAngle(a, start float64) float64 {
	d := math.Mod(a-start, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d >= 2*math.Pi {
		d = 0
	}
	return start + d
}

// RightHalf reports whether angle points into the right half of a circle,
// i.e. lies in the open interval (-π/2, π/2) modulo 2π.
func RightHalf(angle float64) bool {
	n := NormalizeAngle(angle, 0)
	return n < math.Pi/2 || n > 3*math.Pi/2
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
