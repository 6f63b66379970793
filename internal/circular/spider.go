/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package circular

import (
	"math"

	"github.com/samber/lo"

	"gochartlabels/internal/connector"
	"gochartlabels/internal/label"
	"gochartlabels/internal/vector"
)

// column is one side of the spider layout. x is the column's left edge.
type column struct {
	x, width float64
	right    bool
	last     *vector.Rect
}

// nearEdge is where connectors enter the column.
func (col *column) nearEdge() float64 {
	if col.right {
		return col.x
	}
	return col.x + col.width
}

// labelX aligns a label of width w against the near edge.
func (col *column) labelX(w float64) float64 {
	if col.right {
		return col.x
	}
	return col.x + col.width - w
}

// columns computes the two spider columns. Widths come from the widest label
// on each side; both columns are pulled back inside plot when it is set.
func columns(labels []label.Label, order []int, s label.Settings, c Circle) (left, right *column) {
	right = &column{right: true}
	left = &column{}
	maxExplode := 0.0
	for _, i := range order {
		l := labels[i]
		maxExplode = max(maxExplode, l.Explode)
		if vector.RightHalf(l.Angle) {
			right.width = max(right.width, l.Size.W)
		} else {
			left.width = max(left.width, l.Size.W)
		}
	}
	offset := c.Radius + maxExplode + s.Extension + s.ConnectorLength
	right.x = c.Center.X + offset
	left.x = c.Center.X - offset - left.width

	if !c.Plot.Empty() {
		if right.x+right.width > c.Plot.Right() {
			right.x = c.Plot.Right() - right.width
		}
		if left.x < c.Plot.X {
			left.x = c.Plot.X
		}
	}
	return left, right
}

// layoutSpider stacks labels into the side columns. Within a column a label
// that would reach above the previous one's bottom plus padding is pushed
// down; a label is never hidden and may overflow the plot's bottom edge.
func layoutSpider(labels []label.Label, order []int, s label.Settings, c Circle, pool *vector.Pool, out []label.Placed) {
	left, right := columns(labels, order, s, c)
	for _, i := range order {
		l := labels[i]
		col := left
		if vector.RightHalf(l.Angle) {
			col = right
		}
		edgeR := c.Radius + l.Explode
		ext := vector.AngleToPoint(c.Center, edgeR+s.Extension, l.Angle)
		r := vector.R(col.labelX(l.Size.W), ext.Y-l.Size.H/2, l.Size.W, l.Size.H)

		if col.last != nil && r.Y < col.last.Bottom()+s.Padding {
			r.Y = col.last.Bottom() + s.Padding
		}
		r = clearOfPool(r, s.Padding, pool)
		col.last = &r
		if !r.Empty() {
			pool.Add(pad(r, s.Padding))
		}

		placed := label.Placed{Index: l.Index, Position: r.Min(), Size: l.Size, Visible: true, Angle: l.Angle}
		if s.ShowConnector {
			mid := r.Center().Y
			end := vector.Pt{X: col.nearEdge(), Y: mid}
			elbowX := end.X - s.ElbowLength
			if !col.right {
				elbowX = end.X + s.ElbowLength
			}
			raw := connector.Elbow(vector.AngleToPoint(c.Center, edgeR, l.Angle), ext, vector.Pt{X: elbowX, Y: mid}, end)
			placed = placed.WithConnector(connector.Route(raw, s.Curve), s.MarkerAtConnectorEnd)
		}
		out[i] = placed
	}
}

// clearOfPool moves r down until its padded rectangle no longer overlaps any
// pool entry. This only triggers when the clamp made the two columns meet.
// Every step clears at least the lowest hit for good, so the loop runs at
// most once per pool entry.
func clearOfPool(r vector.Rect, padding float64, pool *vector.Pool) vector.Rect {
	if r.Empty() {
		return r
	}
	for i, n := 0, pool.Len()+1; i < n; i++ {
		hits := lo.Filter(pool.Rects(), func(o vector.Rect, _ int) bool { return pad(r, padding).Intersects(o) })
		if len(hits) == 0 {
			return r
		}
		bottom := lo.MaxBy(hits, func(a, b vector.Rect) bool { return a.Bottom() > b.Bottom() }).Bottom()
		r.Y = below(bottom, padding)
	}
	return r
}

// below is the smallest y whose padded top does not reach above bottom.
func below(bottom, padding float64) float64 {
	y := bottom + padding/2
	for y-padding/2 < bottom {
		y = math.Nextafter(y, math.Inf(1))
	}
	return y
}
