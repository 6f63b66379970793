/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package label holds the data model shared by every placement strategy:
// the per-point label descriptor, the per-series placement settings and the
// immutable per-pass placement output.
package label

import (
	"math"

	"gochartlabels/internal/vector"
)

// Label describes one visible data point's annotation. Sizes come from a
// Measurer and stay fixed for the duration of a layout pass.
type Label struct {
	Index int    // position of the point in its series
	Text  string // content handed to the Measurer
	X, Y  float64

	// Anchor is the plotted screen coordinate of the data value.
	Anchor vector.Pt
	// Angle is the slice mid angle in radians (circular series only).
	Angle float64
	// Sweep is the slice angular width in radians (circular series only).
	Sweep float64
	// Explode is the radial offset of a pulled-out slice, or the horizontal
	// shift of an exploded funnel/pyramid segment.
	Explode float64
	Size    vector.Size

	// Segment is the bar or funnel segment rectangle backing the point.
	Segment vector.Rect
	// Radius is the bubble/marker radius around Anchor.
	Radius float64
	// Prev and Next are the neighbouring values used by the line trend test;
	// NaN marks a missing neighbour.
	Prev, Next float64
}

// Valid reports whether the label can take part in a layout pass. NaN or
// infinite coordinates, angles and sizes are rejected up front so they never
// reach the geometry code.
func (l Label) Valid() bool {
	if !l.Anchor.Valid() || !l.Size.Valid() {
		return false
	}
	if math.IsNaN(l.Angle) || math.IsInf(l.Angle, 0) {
		return false
	}
	if math.IsNaN(l.Explode) || math.IsInf(l.Explode, 0) {
		return false
	}
	return true
}

// Placed is the outcome for one label after a pass.
type Placed struct {
	Index    int         `json:"index"`
	Position vector.Pt   `json:"position"` // top-left corner
	Size     vector.Size `json:"size"`
	Visible  bool        `json:"visible"`
	// Angle is the final angle used for circular placements.
	Angle     float64     `json:"angle,omitempty"`
	Connector []vector.Pt `json:"connector,omitempty"`
	Marker    vector.Pt   `json:"marker,omitempty"`
	HasMarker bool        `json:"hasMarker,omitempty"`
}

func (p Placed) Rect() vector.Rect { return vector.RectAt(p.Position, p.Size) }

// Hidden returns the placement of a label that could not be laid out.
// Non-finite input is zeroed so the result stays serialisable.
func Hidden(l Label) Placed {
	p := Placed{Index: l.Index}
	if l.Anchor.Valid() {
		p.Position = l.Anchor
	}
	if l.Size.Valid() {
		p.Size = l.Size
	}
	return p
}

// WithConnector attaches the routed connector and, when requested, the
// marker at its far end.
func (p Placed) WithConnector(pts []vector.Pt, marker bool) Placed {
	p.Connector = pts
	if marker && len(pts) > 0 {
		p.Marker = pts[len(pts)-1]
		p.HasMarker = true
	}
	return p
}
