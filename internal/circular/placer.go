/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package circular places the labels of pie and doughnut series around their
// circle, resolving overlaps by stepping each label's angle until its
// rectangle no longer hits a label placed earlier in the same pass.
package circular

import (
	"log/slog"
	"math"

	"gochartlabels/internal/connector"
	"gochartlabels/internal/label"
	applog "gochartlabels/internal/log"
	"gochartlabels/internal/vector"
)

// Circle is the shape geometry for one pass.
type Circle struct {
	Center     vector.Pt
	Radius     float64
	StartAngle float64
	// Plot bounds the spider columns; an empty Plot disables the clamp.
	Plot vector.Rect
}

func (c Circle) valid() bool {
	return c.Center.Valid() && !math.IsNaN(c.Radius) && !math.IsInf(c.Radius, 0) && c.Radius >= 0 &&
		!math.IsNaN(c.StartAngle) && !math.IsInf(c.StartAngle, 0)
}

// Result is the immutable output of one pass. Labels are in input order.
type Result struct {
	Labels   []label.Placed
	Occupied []vector.Rect
}

// Visible counts the labels that were placed.
func (r Result) Visible() int {
	n := 0
	for _, p := range r.Labels {
		if p.Visible {
			n++
		}
	}
	return n
}

// Mode maps a series position onto one of the three circular modes.
// Cartesian-only values fall back to Inside, Outer to Outside.
func Mode(p label.Position) label.Position {
	switch p {
	case label.PositionOutside, label.PositionOuter:
		return label.PositionOutside
	case label.PositionOutsideExtended:
		return label.PositionOutsideExtended
	}
	return label.PositionInside
}

// PlaceLabels lays out all labels of one circular series. The pool is local
// to the call; nothing is shared between calls.
func PlaceLabels(labels []label.Label, s label.Settings, c Circle) Result {
	s = s.Normalized()
	res := Result{Labels: make([]label.Placed, len(labels))}
	for i, l := range labels {
		res.Labels[i] = label.Hidden(l)
	}
	if !c.valid() {
		applog.WithComponent("circular").Debug("invalid circle geometry", slog.Float64("radius", c.Radius))
		return res
	}

	prepared := prepare(labels, c)
	order := VisitOrder(prepared, c)
	pool := &vector.Pool{}

	if Mode(s.Position) == label.PositionOutsideExtended {
		layoutSpider(prepared, order, s, c, pool, res.Labels)
	} else {
		p := placer{s: s, c: c, pool: pool, bound: searchBound(prepared, s, c)}
		for _, i := range order {
			res.Labels[i] = p.place(prepared[i])
		}
	}
	res.Occupied = pool.Rects()

	applog.WithComponent("circular").Debug("circular pass",
		slog.String("mode", Mode(s.Position).String()),
		slog.Int("labels", len(labels)),
		slog.Int("visible", res.Visible()))
	return res
}

// prepare returns a copy of labels with angles normalised into
// [StartAngle, StartAngle+2π). Invalid labels are marked with a NaN angle so
// VisitOrder skips them.
func prepare(labels []label.Label, c Circle) []label.Label {
	out := make([]label.Label, len(labels))
	for i, l := range labels {
		if !l.Valid() {
			l.Angle = math.NaN()
		} else {
			l.Angle = vector.NormalizeAngle(l.Angle, c.StartAngle)
		}
		out[i] = l
	}
	return out
}

// searchBound is the angle past which the search gives up: one revolution
// after the start angle plus half of the first slice.
func searchBound(labels []label.Label, s label.Settings, c Circle) float64 {
	first := 0.0
	if len(labels) > 0 && !math.IsNaN(labels[0].Sweep) && !math.IsInf(labels[0].Sweep, 0) {
		first = math.Abs(labels[0].Sweep)
	}
	return c.StartAngle + 2*math.Pi + s.RevolutionSlack*first/2
}

type placer struct {
	s     label.Settings
	c     Circle
	pool  *vector.Pool
	bound float64
}

func (p placer) place(l label.Label) label.Placed {
	edgeR := p.c.Radius + l.Explode
	outR := edgeR + p.s.ConnectorLength

	if Mode(p.s.Position) == label.PositionInside {
		at := vector.AngleToPoint(p.c.Center, edgeR-p.c.Radius*p.s.PullIn, l.Angle)
		r := vector.Centered(at, l.Size)
		if !p.s.SmartLabels || !p.pool.IntersectsAny(p.padded(r)) {
			p.accept(r)
			return label.Placed{Index: l.Index, Position: r.Min(), Size: l.Size, Visible: true, Angle: l.Angle}
		}
	}

	// Outside candidates, and inside labels that collided: the radius is held
	// at the connector end and only the angle moves.
	for k := 0; ; k++ {
		angle := l.Angle + float64(k)*p.s.AngleStep
		if k > 0 && angle > p.bound {
			applog.WithComponent("circular").Debug("label hidden", slog.Int("index", l.Index))
			return label.Hidden(l)
		}
		end := vector.AngleToPoint(p.c.Center, outR, angle)
		r := OutsideRect(end, l.Size, angle)
		if p.s.SmartLabels && p.pool.IntersectsAny(p.padded(r)) {
			continue
		}
		p.accept(r)
		placed := label.Placed{Index: l.Index, Position: r.Min(), Size: l.Size, Visible: true, Angle: angle}
		if p.s.ShowConnector {
			placed = placed.WithConnector(p.outsideConnector(l, angle, end), p.s.MarkerAtConnectorEnd)
		}
		return placed
	}
}

func (p placer) outsideConnector(l label.Label, angle float64, end vector.Pt) []vector.Pt {
	edge := vector.AngleToPoint(p.c.Center, p.c.Radius+l.Explode, l.Angle)
	if angle == l.Angle {
		return connector.Route(connector.Direct(edge, end), p.s.Curve)
	}
	hitch := vector.AngleToPoint(p.c.Center, p.c.Radius+l.Explode+p.s.ConnectorLength*p.s.HitchFraction, l.Angle)
	return connector.Route(connector.WithHitch(edge, hitch, end), p.s.Curve)
}

func (p placer) padded(r vector.Rect) vector.Rect { return pad(r, p.s.Padding) }

func (p placer) accept(r vector.Rect) {
	if !r.Empty() {
		p.pool.Add(p.padded(r))
	}
}

// pad grows r by half the padding on every side. Empty rectangles stay
// empty so they keep intersecting nothing.
func pad(r vector.Rect, padding float64) vector.Rect {
	if r.Empty() || padding == 0 {
		return r
	}
	return r.Inset(-padding/2, -padding/2)
}

// OutsideRect is the label rectangle whose near edge touches end: labels on
// the right half extend to the right, on the left half to the left. The
// rectangle is vertically centred on end.
func OutsideRect(end vector.Pt, size vector.Size, angle float64) vector.Rect {
	x := end.X
	if !vector.RightHalf(angle) {
		x -= size.W
	}
	return vector.R(x, end.Y-size.H/2, size.W, size.H)
}
