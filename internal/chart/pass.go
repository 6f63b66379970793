/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chart

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/samber/lo"

	"gochartlabels/internal/circular"
	"gochartlabels/internal/connector"
	"gochartlabels/internal/label"
	applog "gochartlabels/internal/log"
	"gochartlabels/internal/placement"
	"gochartlabels/internal/textlayout"
	"gochartlabels/internal/tooltip"
	"gochartlabels/internal/vector"
)

// Options configure a pass.
type Options struct {
	// Defaults are the series settings before document overrides.
	Defaults label.Settings
	// Provider resolves fonts for measurement; nil uses basicfont.
	Provider textlayout.Provider
	// Styles adds or replaces label text styles by name.
	Styles textlayout.Styles
	// Nose is the tooltip nose offset; zero uses the default.
	Nose float64
}

// Pass is the immutable result of one layout pass. It holds no timestamps so
// two passes over the same input compare equal.
type Pass struct {
	ID       string          `json:"id"`
	Canvas   vector.Size     `json:"canvas"`
	Plot     vector.Rect     `json:"plot"`
	Series   []SeriesResult  `json:"series"`
	Tooltips []TooltipResult `json:"tooltips,omitempty"`
}

// SeriesResult holds the labels of one series in point order.
type SeriesResult struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Circle   *circular.Circle `json:"circle,omitempty"`
	Texts    []string         `json:"texts"`
	Anchors  []vector.Pt      `json:"anchors"`
	Labels   []label.Placed   `json:"labels"`
	Occupied []vector.Rect    `json:"occupied,omitempty"`
}

type TooltipResult struct {
	Text        string      `json:"text,omitempty"`
	Anchor      vector.Pt   `json:"anchor"`
	Position    vector.Pt   `json:"position"`
	Size        vector.Size `json:"size"`
	Orientation string      `json:"orientation"`
}

// Stats summarises one series.
type Stats struct {
	Series  string
	Labels  int
	Visible int
	Hidden  int
}

// Stats returns per-series visible and hidden counts.
func (p *Pass) Stats() []Stats {
	return lo.Map(p.Series, func(s SeriesResult, _ int) Stats {
		visible := lo.CountBy(s.Labels, func(l label.Placed) bool { return l.Visible })
		return Stats{Series: s.Name, Labels: len(s.Labels), Visible: visible, Hidden: len(s.Labels) - visible}
	})
}

// Layout runs one pass over doc. Series are laid out one after another,
// each with its own occupied pool. Errors only come from unknown names in
// the document; collisions never fail a pass.
func Layout(ctx context.Context, doc *Document, opts Options) (*Pass, error) {
	if doc == nil {
		return nil, fmt.Errorf("layout: nil document")
	}
	id := doc.Digest
	if len(id) > 12 {
		id = id[:12]
	}
	ctx = applog.WithPass(ctx, id)
	l := applog.WithOperation(applog.WithComponent("chart"), "layout")

	pass := &Pass{ID: id, Canvas: vector.Size{W: doc.Width, H: doc.Height}, Plot: plotRect(doc)}
	for i, s := range doc.Series {
		res, err := layoutSeries(s, pass.Plot, opts)
		if err != nil {
			return nil, fmt.Errorf("series %d (%s): %w", i, s.Name, err)
		}
		pass.Series = append(pass.Series, res)
	}
	for _, st := range pass.Stats() {
		l.DebugContext(ctx, "series placed",
			slog.String("series", st.Series),
			slog.Int("visible", st.Visible),
			slog.Int("hidden", st.Hidden))
	}

	aligner := tooltip.Aligner{Nose: opts.Nose}
	measure := opts.Styles.Measurer(opts.Provider, "tooltip")
	for _, t := range doc.Tooltips {
		size := vector.Size{W: t.Width, H: t.Height}
		if size.Empty() {
			size = measure.Measure(label.Label{Text: t.Text})
		}
		anchor := vector.Pt{X: t.X, Y: t.Y}
		pos, o := aligner.Align(anchor, size, pass.Plot)
		pass.Tooltips = append(pass.Tooltips, TooltipResult{Text: t.Text, Anchor: anchor, Position: pos, Size: size, Orientation: o.String()})
	}

	l.InfoContext(ctx, "layout pass done", slog.Int("series", len(pass.Series)), slog.Int("tooltips", len(pass.Tooltips)))
	return pass, nil
}

func plotRect(doc *Document) vector.Rect {
	if doc.Plot != nil {
		return vector.R(doc.Plot.X, doc.Plot.Y, doc.Plot.W, doc.Plot.H)
	}
	return vector.R(0, 0, doc.Width, doc.Height)
}

func layoutSeries(s Series, plot vector.Rect, opts Options) (SeriesResult, error) {
	cat, err := placement.ParseCategory(s.Category)
	if err != nil {
		return SeriesResult{}, err
	}
	settings, err := seriesSettings(s, opts.Defaults)
	if err != nil {
		return SeriesResult{}, err
	}

	ax := placement.AxisContext{Plot: plot, Inverted: s.Axis.Inverted, ZoomX: s.Axis.ZoomX, ZoomY: s.Axis.ZoomY, Origin: plot.Center()}
	if s.Axis.OriginX != nil {
		ax.Origin.X = *s.Axis.OriginX
	}
	if s.Axis.OriginY != nil {
		ax.Origin.Y = *s.Axis.OriginY
	}

	var labels []label.Label
	res := SeriesResult{Name: s.Name, Category: cat.String()}
	if cat.Circular() {
		ax.Circle = circleFor(s, plot)
		res.Circle = &ax.Circle
		labels = circularLabels(s.Points, ax.Circle)
	} else {
		labels = cartesianLabels(s.Points, cat)
	}

	labels = label.MeasureAll(opts.Styles.Measurer(opts.Provider, s.Style), labels)
	out := placement.Layout(labels, settings, cat, ax)

	res.Texts = lo.Map(labels, func(l label.Label, _ int) string { return l.Text })
	res.Anchors = lo.Map(labels, func(l label.Label, _ int) vector.Pt {
		if !l.Anchor.Valid() {
			return vector.Pt{}
		}
		return l.Anchor
	})
	res.Labels = out.Labels
	res.Occupied = out.Occupied
	return res, nil
}

func seriesSettings(s Series, defaults label.Settings) (label.Settings, error) {
	st := defaults
	pos, err := label.ParsePosition(s.Position)
	if err != nil {
		return st, err
	}
	st.Position = pos
	o := s.Settings
	if o.ShowConnector != nil {
		st.ShowConnector = *o.ShowConnector
	}
	if o.ConnectorLength != nil {
		st.ConnectorLength = *o.ConnectorLength
	}
	if o.Curve != "" {
		if st.Curve, err = connector.ParseMode(o.Curve); err != nil {
			return st, err
		}
	}
	if o.SmartLabels != nil {
		st.SmartLabels = *o.SmartLabels
	}
	if o.MarkerAtConnectorEnd != nil {
		st.MarkerAtConnectorEnd = *o.MarkerAtConnectorEnd
	}
	if o.Padding != nil {
		st.Padding = *o.Padding
	}
	if o.HAlign != "" {
		if st.HAlign, err = label.ParseAlignment(o.HAlign); err != nil {
			return st, err
		}
	}
	if o.VAlign != "" {
		if st.VAlign, err = label.ParseAlignment(o.VAlign); err != nil {
			return st, err
		}
	}
	if o.Rotation != nil {
		st.ConnectorRotation = radians(*o.Rotation)
	}
	if o.AngleStep != nil {
		st.AngleStep = *o.AngleStep
	}
	return st.Normalized(), nil
}

// circleFor uses the series circle, or centres one in the plot.
func circleFor(s Series, plot vector.Rect) circular.Circle {
	c := circular.Circle{Plot: plot}
	if s.Circle == nil {
		c.Center = plot.Center()
		c.Radius = 0.35 * math.Min(plot.W, plot.H)
		return c
	}
	c.Center = vector.Pt{X: s.Circle.CX, Y: s.Circle.CY}
	c.Radius = s.Circle.R
	c.StartAngle = radians(s.Circle.StartAngle)
	return c
}

// circularLabels derives slice angles from the values: each slice spans its
// share of the full turn, clockwise from the start angle, and the label
// angle is the slice middle. Points may override angle and sweep.
func circularLabels(points []Point, c circular.Circle) []label.Label {
	total := lo.SumBy(points, func(p Point) float64 {
		if p.Value == nil || *p.Value < 0 || math.IsNaN(*p.Value) {
			return 0
		}
		return *p.Value
	})
	labels := make([]label.Label, len(points))
	at := c.StartAngle
	for i, p := range points {
		l := label.Label{Index: i, Text: pointText(p), Explode: p.Explode, Size: vector.Size{W: p.Width, H: p.Height}}
		switch {
		case p.Angle != nil:
			l.Angle = radians(*p.Angle)
			if p.Sweep != nil {
				l.Sweep = radians(*p.Sweep)
			}
		case p.Value == nil || math.IsNaN(*p.Value) || total == 0:
			l.Angle = math.NaN()
		default:
			l.Sweep = 2 * math.Pi * math.Max(*p.Value, 0) / total
			l.Angle = at + l.Sweep/2
			at += l.Sweep
		}
		if p.Value != nil {
			l.Y = *p.Value
		}
		l.Anchor = vector.AngleToPoint(c.Center, c.Radius+l.Explode, l.Angle)
		labels[i] = l
	}
	return labels
}

// cartesianLabels keeps the plotted anchors from the document and fills the
// neighbour values used by the line trend test.
func cartesianLabels(points []Point, cat placement.Category) []label.Label {
	value := func(i int) float64 {
		if i < 0 || i >= len(points) || points[i].Value == nil {
			return math.NaN()
		}
		return *points[i].Value
	}
	labels := make([]label.Label, len(points))
	for i, p := range points {
		v := value(i)
		l := label.Label{
			Index:   i,
			Text:    pointText(p),
			X:       v,
			Y:       v,
			Anchor:  vector.Pt{X: p.X, Y: p.Y},
			Explode: p.Explode,
			Radius:  p.Radius,
			Size:    vector.Size{W: p.Width, H: p.Height},
			Prev:    value(i - 1),
			Next:    value(i + 1),
		}
		if p.Value == nil {
			// missing data is never labelled
			l.Anchor = vector.Pt{X: math.NaN(), Y: math.NaN()}
		}
		if p.Segment != nil {
			l.Segment = vector.R(p.Segment.X, p.Segment.Y, p.Segment.W, p.Segment.H)
		} else if cat == placement.Funnel || cat == placement.Pyramid {
			l.Segment = vector.Centered(l.Anchor, vector.Size{})
		}
		labels[i] = l
	}
	return labels
}

func pointText(p Point) string {
	if p.Text != "" || p.Value == nil {
		return p.Text
	}
	return strconv.FormatFloat(*p.Value, 'g', -1, 64)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
