/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package placement

import (
	"math"

	"gochartlabels/internal/label"
	"gochartlabels/internal/vector"
)

// barLike offsets the label along the value axis of the bar segment. The
// value end is the top (right for horizontal bars) unless the value is
// negative or the axis inverted; both together cancel out.
func barLike(l label.Label, s label.Settings, cat Category, ax AxisContext) candidate {
	seg := l.Segment
	flip := (l.Y < 0) != ax.Inverted
	horizontal := cat.horizontal()
	if horizontal {
		flip = (l.X < 0) != ax.Inverted
	}

	// value axis: v is the value end, b the base, dir the outward direction
	var v, b, dir, extent, cross float64
	if horizontal {
		v, b, dir = seg.Right(), seg.X, 1
		if flip {
			v, b, dir = seg.X, seg.Right(), -1
		}
		extent, cross = l.Size.W, seg.Center().Y-l.Size.H/2
	} else {
		v, b, dir = seg.Y, seg.Bottom(), -1
		if flip {
			v, b, dir = seg.Bottom(), seg.Y, 1
		}
		extent, cross = l.Size.H, seg.Center().X-l.Size.W/2
	}

	outer := func() float64 {
		if dir > 0 {
			return v + s.Padding
		}
		return v - s.Padding - extent
	}
	inner := func() float64 {
		if dir > 0 {
			return v - s.Padding - extent
		}
		return v + s.Padding
	}
	base := func() float64 {
		if dir > 0 {
			return b + s.Padding
		}
		return b - s.Padding - extent
	}
	center := func() float64 { return (v+b)/2 - extent/2 }

	var at float64
	switch s.Position {
	case label.PositionOuter:
		at = outer()
	case label.PositionInner:
		at = inner()
	case label.PositionCenter:
		at = center()
	case label.PositionAuto:
		at = outer()
		if !fitsAlong(at, extent, horizontal, ax.Plot) {
			at = inner()
		}
	default:
		align := s.VAlign
		if horizontal {
			align = s.HAlign
		}
		switch align {
		case label.AlignCenter:
			at = center()
		case label.AlignFar:
			at = base()
		default:
			at = outer()
		}
	}

	if horizontal {
		return candidate{rect: vector.R(at, cross, l.Size.W, l.Size.H)}
	}
	return candidate{rect: vector.R(cross, at, l.Size.W, l.Size.H)}
}

func fitsAlong(at, extent float64, horizontal bool, plot vector.Rect) bool {
	if plot.Empty() {
		return true
	}
	if horizontal {
		return at >= plot.X && at+extent <= plot.Right()
	}
	return at >= plot.Y && at+extent <= plot.Bottom()
}

// IsTop is the trend test for line-like series: the label goes above the
// point when the straight line through the neighbours passes below it. A
// missing current value or two missing neighbours default to above; with a
// single neighbour the point is compared against it.
func IsTop(prev, cur, next float64) bool {
	if math.IsNaN(cur) {
		return true
	}
	pOK, nOK := !math.IsNaN(prev), !math.IsNaN(next)
	switch {
	case !pOK && !nOK:
		return true
	case !pOK:
		return cur >= next
	case !nOK:
		return cur >= prev
	}
	return (prev+next)/2 < cur
}

// lineLike puts the label above or below the point, outside the marker.
func lineLike(l label.Label, s label.Settings, _ Category, ax AxisContext) candidate {
	x := l.Anchor.X - l.Size.W/2
	var above bool
	switch s.Position {
	case label.PositionCenter:
		return candidate{rect: vector.Centered(l.Anchor, l.Size)}
	case label.PositionOuter:
		above = true
	case label.PositionInner:
		above = false
	default:
		above = IsTop(l.Prev, l.Y, l.Next)
	}
	if ax.Inverted {
		above = !above
	}
	gap := l.Radius + s.Padding
	if above {
		return candidate{rect: vector.R(x, l.Anchor.Y-gap-l.Size.H, l.Size.W, l.Size.H)}
	}
	return candidate{rect: vector.R(x, l.Anchor.Y+gap, l.Size.W, l.Size.H)}
}

// radial moves the label away from a bubble or scatter marker along the
// connector rotation. Inner keeps it centred when it fits inside the marker.
func radial(l label.Label, s label.Settings, _ Category, _ AxisContext) candidate {
	if s.Position == label.PositionCenter {
		return candidate{rect: vector.Centered(l.Anchor, l.Size)}
	}
	if s.Position == label.PositionInner {
		r := vector.Centered(l.Anchor, l.Size)
		if vector.PointInCircle(l.Anchor, l.Radius, r.Max()) {
			return candidate{rect: r}
		}
	}
	dir := vector.Pt{X: math.Cos(s.ConnectorRotation), Y: math.Sin(s.ConnectorRotation)}
	reach := l.Radius + s.Padding
	if s.ShowConnector {
		reach += s.ConnectorLength
	}
	edge := l.Anchor.Add(dir.Scale(l.Radius))
	end := l.Anchor.Add(dir.Scale(reach))
	c := end.Add(dir.Scale(halfExtent(l.Size, dir)))
	return candidate{rect: vector.Centered(c, l.Size), raw: []vector.Pt{edge, end}}
}

// halfExtent is the distance from a rectangle's centre to its boundary along
// the unit vector dir.
func halfExtent(size vector.Size, dir vector.Pt) float64 {
	tx, ty := math.Inf(1), math.Inf(1)
	if dir.X != 0 {
		tx = size.W / 2 / math.Abs(dir.X)
	}
	if dir.Y != 0 {
		ty = size.H / 2 / math.Abs(dir.Y)
	}
	return math.Min(tx, ty)
}

// funnelLike centres the label vertically on its segment. Outside labels sit
// to the right of the segment; exploded segments shift horizontally.
func funnelLike(l label.Label, s label.Settings, _ Category, _ AxisContext) candidate {
	seg := l.Segment
	y := seg.Y + seg.H/2 - l.Size.H/2
	switch s.Position {
	case label.PositionOuter, label.PositionOutside, label.PositionOutsideExtended:
		edge := vector.Pt{X: seg.Right() + l.Explode, Y: seg.Y + seg.H/2}
		x := edge.X + s.Padding
		if s.ShowConnector {
			x += s.ConnectorLength
		}
		end := vector.Pt{X: x, Y: edge.Y}
		return candidate{rect: vector.R(x, y, l.Size.W, l.Size.H), raw: []vector.Pt{edge, end}}
	}
	x := seg.Center().X - l.Size.W/2 + l.Explode
	return candidate{rect: vector.R(x, y, l.Size.W, l.Size.H)}
}

// polar offsets the label along the ray from the series origin through the
// point, by half the label size plus padding. With a connector the ray starts
// at the plot centre instead and the padding goes on the x axis for the left
// and right quadrants, on the y axis for the top and bottom ones.
func polar(l label.Label, s label.Settings, _ Category, ax AxisContext) candidate {
	if s.Position == label.PositionCenter {
		return candidate{rect: vector.Centered(l.Anchor, l.Size)}
	}
	if !s.ShowConnector || s.ConnectorLength == 0 {
		d := unit(l.Anchor.Sub(ax.Origin))
		c := vector.Pt{
			X: l.Anchor.X + d.X*(l.Size.W/2+s.Padding),
			Y: l.Anchor.Y + d.Y*(l.Size.H/2+s.Padding),
		}
		return candidate{rect: vector.Centered(c, l.Size)}
	}

	d := unit(l.Anchor.Sub(ax.Plot.Center()))
	end := l.Anchor.Add(d.Scale(s.ConnectorLength))
	var r vector.Rect
	if math.Abs(d.X) >= math.Abs(d.Y) {
		x := end.X + s.Padding
		if d.X < 0 {
			x = end.X - s.Padding - l.Size.W
		}
		r = vector.R(x, end.Y-l.Size.H/2, l.Size.W, l.Size.H)
	} else {
		y := end.Y + s.Padding
		if d.Y < 0 {
			y = end.Y - s.Padding - l.Size.H
		}
		r = vector.R(end.X-l.Size.W/2, y, l.Size.W, l.Size.H)
	}
	return candidate{rect: r, raw: []vector.Pt{l.Anchor, end}}
}

// unit normalises p; a zero vector points up.
func unit(p vector.Pt) vector.Pt {
	n := math.Hypot(p.X, p.Y)
	if n == 0 {
		return vector.Pt{X: 0, Y: -1}
	}
	return p.Scale(1 / n)
}
