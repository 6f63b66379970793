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
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/samber/lo"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/vector"
)

// WriteSVG renders a preview of the pass. Coordinates are pixels, i.e.
// layout units times Scale.
func WriteSVG(w io.Writer, p *chart.Pass, opt Options) error {
	if p == nil {
		return fmt.Errorf("pass is nil")
	}
	opt = opt.withDefaults()
	s := opt.Scale
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Start(px(p.Canvas.W, s), px(p.Canvas.H, s))
	canvas.Title("chartlabels pass " + p.ID)
	canvas.Rect(0, 0, px(p.Canvas.W, s), px(p.Canvas.H, s), "fill:#ffffff")

	if opt.IncludeGuides {
		guide := fmt.Sprintf("fill:none;stroke:%s;stroke-width:0.5", opt.GuideColor.hex())
		svgRect(canvas, p.Plot, s, guide)
		canvas.Gid("occupied")
		for _, series := range p.Series {
			for _, r := range series.Occupied {
				svgRect(canvas, r, s, guide+";stroke-dasharray:2,2")
			}
		}
		canvas.Gend()
	}

	labelStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", opt.LabelFill.hex(), opt.LabelStroke.Color.hex(), opt.LabelStroke.Width)
	lineStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", opt.ConnectorStroke.Color.hex(), opt.ConnectorStroke.Width)
	textColor := opt.TextColor.hex()
	for _, series := range p.Series {
		canvas.Gid("series-" + series.Name)
		for _, a := range series.Anchors {
			canvas.Circle(px(a.X, s), px(a.Y, s), 2, "fill:"+opt.AnchorColor.hex())
		}
		for _, it := range visibleItems(series) {
			if len(it.placed.Connector) > 1 {
				path := vector.Polyline(lo.Map(it.placed.Connector, func(pt vector.Pt, _ int) vector.Pt { return pt.Scale(s) }))
				canvas.Path(path.D(), lineStyle)
			}
			if it.placed.HasMarker {
				canvas.Circle(px(it.placed.Marker.X, s), px(it.placed.Marker.Y, s), 2, "fill:"+opt.ConnectorStroke.Color.hex())
			}
			r := it.placed.Rect()
			svgRect(canvas, r, s, labelStyle)
			svgText(canvas, r, it.text, s, textColor)
		}
		if opt.ShowHidden {
			for _, it := range hiddenItems(series) {
				svgRect(canvas, it.placed.Rect(), s, "fill:none;stroke:#999999;stroke-dasharray:1,2")
			}
		}
		canvas.Gend()
	}

	tipStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", opt.TooltipFill.hex(), opt.LabelStroke.Color.hex())
	for _, t := range p.Tooltips {
		r := vector.RectAt(t.Position, t.Size)
		svgRect(canvas, r, s, tipStyle)
		svgText(canvas, r, t.Text, s, textColor)
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

func svgRect(canvas *svg.SVG, r vector.Rect, s float64, style string) {
	canvas.Rect(px(r.X, s), px(r.Y, s), px(r.W, s), px(r.H, s), style)
}

// svgText centres text in r; the font is a hint only, nothing is embedded.
func svgText(canvas *svg.SVG, r vector.Rect, text string, s float64, fill string) {
	if text == "" {
		return
	}
	c := r.Center()
	size := 0.6 * r.H * s
	canvas.Text(px(c.X, s), px(c.Y, s)+int(size/3), text,
		fmt.Sprintf("font-family:Helvetica,Arial,sans-serif;font-size:%.1fpx;text-anchor:middle;fill:%s", size, fill))
}
