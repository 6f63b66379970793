/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package placement holds the closed-form label strategies for cartesian,
// polar and funnel-like series and dispatches circular series to the
// circular placer. Every strategy is O(1) per label.
package placement

import (
	"log/slog"

	"gochartlabels/internal/circular"
	"gochartlabels/internal/connector"
	"gochartlabels/internal/label"
	applog "gochartlabels/internal/log"
	"gochartlabels/internal/vector"
)

// AxisContext is the plot state a strategy may consult.
type AxisContext struct {
	Plot     vector.Rect
	Inverted bool
	// ZoomX and ZoomY are the axis zoom factors; zero means unzoomed. Below 1
	// the axis is zoomed in and labels may leave the plot.
	ZoomX, ZoomY float64
	// Origin is the centre of a polar series.
	Origin vector.Pt
	// Circle is used by circular categories.
	Circle circular.Circle
}

func (a AxisContext) clampX() bool { return zoom(a.ZoomX) >= 1 }
func (a AxisContext) clampY() bool { return zoom(a.ZoomY) >= 1 }

func zoom(z float64) float64 {
	if z == 0 {
		return 1
	}
	return z
}

// candidate is what a strategy produces: the label rectangle and the raw
// connector points (data side first), if any.
type candidate struct {
	rect vector.Rect
	raw  []vector.Pt
}

// strategy computes the closed-form candidate for one label.
type strategy func(l label.Label, s label.Settings, cat Category, ax AxisContext) candidate

var strategies = map[Category]strategy{
	Column:        barLike,
	Bar:           barLike,
	StackedColumn: barLike,
	StackedBar:    barLike,
	Line:          lineLike,
	Spline:        lineLike,
	StepLine:      lineLike,
	Area:          lineLike,
	Bubble:        radial,
	Scatter:       radial,
	Funnel:        funnelLike,
	Pyramid:       funnelLike,
	Polar:         polar,
	Radar:         polar,
}

// Result is the per-series output of Layout.
type Result = circular.Result

// PlaceLabel positions a single label. Circular categories run the circular
// placer on a one-label series.
func PlaceLabel(l label.Label, s label.Settings, cat Category, ax AxisContext) label.Placed {
	if cat.Circular() {
		return circular.PlaceLabels([]label.Label{l}, s, ax.Circle).Labels[0]
	}
	s = s.Normalized()
	place, ok := strategies[cat]
	if !ok || !l.Valid() {
		return label.Hidden(l)
	}
	c := place(l, s, cat, ax)

	r := c.rect
	if !ax.Plot.Empty() {
		r = vector.ClampInto(r, ax.Plot, ax.clampX(), ax.clampY())
	}
	p := label.Placed{Index: l.Index, Position: r.Min(), Size: l.Size, Visible: true}
	if s.ShowConnector && len(c.raw) > 1 {
		// keep the connector attached to a clamped label
		raw := append([]vector.Pt(nil), c.raw...)
		last := len(raw) - 1
		raw[last] = raw[last].Add(r.Min().Sub(c.rect.Min()))
		p = p.WithConnector(connector.Route(raw, s.Curve), s.MarkerAtConnectorEnd)
	}
	return p
}

// Layout places every label of one series.
func Layout(labels []label.Label, s label.Settings, cat Category, ax AxisContext) Result {
	if cat.Circular() {
		return circular.PlaceLabels(labels, s, ax.Circle)
	}
	res := Result{Labels: make([]label.Placed, len(labels))}
	for i, l := range labels {
		res.Labels[i] = PlaceLabel(l, s, cat, ax)
	}
	applog.WithComponent("placement").Debug("series placed",
		slog.String("category", cat.String()),
		slog.Int("labels", len(labels)),
		slog.Int("visible", res.Visible()))
	return res
}
