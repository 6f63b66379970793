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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/vector"
)

// RenderPNG rasterises a preview of the pass. Label text uses the 7x13
// bitmap face regardless of Scale.
func RenderPNG(p *chart.Pass, opt Options) (*image.RGBA, error) {
	if p == nil {
		return nil, fmt.Errorf("pass is nil")
	}
	opt = opt.withDefaults()
	s := opt.Scale
	w, h := px(p.Canvas.W, s), px(p.Canvas.H, s)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	if opt.IncludeGuides {
		gc := opt.GuideColor.rgba()
		strokeBox(img, p.Plot, s, gc)
		for _, series := range p.Series {
			for _, r := range series.Occupied {
				strokeBox(img, r, s, gc)
			}
		}
	}

	ls, lf := opt.LabelStroke.Color.rgba(), opt.LabelFill.rgba()
	for _, series := range p.Series {
		for _, a := range series.Anchors {
			x, y := px(a.X, s), px(a.Y, s)
			fillRect(img, x-1, y-1, x+1, y+1, opt.AnchorColor.rgba())
		}
		for _, it := range visibleItems(series) {
			strokePolyline(img, it.placed.Connector, s, opt.ConnectorStroke)
			if it.placed.HasMarker {
				x, y := px(it.placed.Marker.X, s), px(it.placed.Marker.Y, s)
				fillRect(img, x-1, y-1, x+1, y+1, opt.ConnectorStroke.Color.rgba())
			}
			r := it.placed.Rect()
			fillBox(img, r, s, lf)
			strokeBox(img, r, s, ls)
			drawText(img, r, it.text, s, opt.TextColor.rgba())
		}
	}
	for _, t := range p.Tooltips {
		r := vector.RectAt(t.Position, t.Size)
		fillBox(img, r, s, opt.TooltipFill.rgba())
		strokeBox(img, r, s, ls)
		drawText(img, r, t.Text, s, opt.TextColor.rgba())
	}
	return img, nil
}

// WritePNG renders and encodes the preview.
func WritePNG(w io.Writer, p *chart.Pass, opt Options) error {
	img, err := RenderPNG(p, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func fillBox(img *image.RGBA, r vector.Rect, s float64, col color.RGBA) {
	x, y := px(r.X, s), px(r.Y, s)
	fillRect(img, x, y, x+px(r.W, s)-1, y+px(r.H, s)-1, col)
}

func strokeBox(img *image.RGBA, r vector.Rect, s float64, col color.RGBA) {
	x, y := px(r.X, s), px(r.Y, s)
	strokeRect(img, x, y, x+px(r.W, s)-1, y+px(r.H, s)-1, col)
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
// SetRGBA ignores points outside the image.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// strokePolyline fills one thin quad per segment; the rasterizer
// antialiases and clamps overlapping coverage at the joints.
func strokePolyline(img *image.RGBA, pts []vector.Pt, s float64, st Stroke) {
	if len(pts) < 2 {
		return
	}
	b := img.Bounds()
	z := xvector.NewRasterizer(b.Dx(), b.Dy())
	half := math.Max(st.Width*s, 1) / 2
	for i := 1; i < len(pts); i++ {
		a, c := pts[i-1].Scale(s), pts[i].Scale(s)
		d := c.Sub(a)
		n := math.Hypot(d.X, d.Y)
		if n == 0 {
			continue
		}
		off := vector.Pt{X: -d.Y / n * half, Y: d.X / n * half}
		z.MoveTo(float32(a.X+off.X), float32(a.Y+off.Y))
		z.LineTo(float32(c.X+off.X), float32(c.Y+off.Y))
		z.LineTo(float32(c.X-off.X), float32(c.Y-off.Y))
		z.LineTo(float32(a.X-off.X), float32(a.Y-off.Y))
		z.ClosePath()
	}
	z.Draw(img, b, image.NewUniform(st.Color.rgba()), image.Point{})
}

func drawText(img *image.RGBA, r vector.Rect, text string, s float64, col color.RGBA) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
	width := d.MeasureString(text).Round()
	c := r.Center().Scale(s)
	m := face.Metrics()
	baseline := int(math.Round(c.Y)) + (m.Ascent.Round()-m.Descent.Round())/2
	d.Dot = fixed.P(int(math.Round(c.X))-width/2, baseline)
	d.DrawString(text)
}
