/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/samber/lo"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/label"
)

// Color is an 8-bit RGBA colour.
type Color struct{ R, G, B, A uint8 }

type Stroke struct {
	Color Color
	Width float64
}

// Options controls every preview renderer. Zero values get defaults.
//
//nolint:revive // keep fields explicit for clarity
type Options struct {
	// IncludeGuides draws the plot area and the occupied pool of each series.
	IncludeGuides bool
	// Scale maps layout units to output pixels (PNG, SVG size attributes).
	Scale           float64
	GuideColor      Color
	LabelStroke     Stroke
	LabelFill       Color
	ConnectorStroke Stroke
	AnchorColor     Color
	TooltipFill     Color
	TextColor       Color
	// ShowHidden outlines hidden labels at their anchor.
	ShowHidden bool
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.GuideColor == (Color{}) {
		o.GuideColor = Color{R: 255, G: 0, B: 0, A: 255}
	}
	if o.LabelStroke.Width == 0 {
		o.LabelStroke = Stroke{Color: Color{R: 0, G: 0, B: 0, A: 255}, Width: 1}
	}
	if o.LabelFill == (Color{}) {
		o.LabelFill = Color{R: 255, G: 255, B: 255, A: 255}
	}
	if o.ConnectorStroke.Width == 0 {
		o.ConnectorStroke = Stroke{Color: Color{R: 90, G: 90, B: 90, A: 255}, Width: 1}
	}
	if o.AnchorColor == (Color{}) {
		o.AnchorColor = Color{R: 30, G: 110, B: 200, A: 255}
	}
	if o.TooltipFill == (Color{}) {
		o.TooltipFill = Color{R: 255, G: 250, B: 205, A: 255}
	}
	if o.TextColor == (Color{}) {
		o.TextColor = Color{R: 0, G: 0, B: 0, A: 255}
	}
	return o
}

func (c Color) hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) rgba() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// item is one drawable label of a pass.
type item struct {
	text   string
	placed label.Placed
}

func visibleItems(s chart.SeriesResult) []item {
	all := lo.Map(s.Labels, func(p label.Placed, i int) item {
		var text string
		if i < len(s.Texts) {
			text = s.Texts[i]
		}
		return item{text: text, placed: p}
	})
	return lo.Filter(all, func(it item, _ int) bool { return it.placed.Visible && !it.placed.Size.Empty() })
}

func hiddenItems(s chart.SeriesResult) []item {
	return lo.FilterMap(s.Labels, func(p label.Placed, _ int) (item, bool) {
		return item{placed: p}, !p.Visible
	})
}

func px(v, scale float64) int { return int(math.Round(v * scale)) }

// errWriter keeps the first write error so renderers without error returns
// can still report one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
