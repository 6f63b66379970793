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
	"time"

	"github.com/jung-kurt/gofpdf"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/vector"
)

// WritePDF writes a one-page vector preview. One layout unit maps to one
// point; Scale is ignored. Text uses built-in Helvetica so nothing is
// embedded.
func WritePDF(w io.Writer, p *chart.Pass, opt Options) error {
	if p == nil {
		return fmt.Errorf("pass is nil")
	}
	if p.Canvas.Empty() {
		return fmt.Errorf("empty canvas")
	}
	opt = opt.withDefaults()
	size := gofpdf.SizeType{Wd: p.Canvas.W, Ht: p.Canvas.H}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetTitle("chartlabels pass "+p.ID, false)
	pdf.SetCreator("chartlabels", false)
	// fixed date keeps identical passes byte-identical
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", size)

	if opt.IncludeGuides {
		setDrawColor(pdf, opt.GuideColor)
		pdf.SetLineWidth(0.3)
		pdfRect(pdf, p.Plot, "D")
		pdf.SetDashPattern([]float64{2, 2}, 0)
		for _, series := range p.Series {
			for _, r := range series.Occupied {
				pdfRect(pdf, r, "D")
			}
		}
		pdf.SetDashPattern([]float64{}, 0)
	}

	for _, series := range p.Series {
		setFillColor(pdf, opt.AnchorColor)
		for _, a := range series.Anchors {
			pdf.Circle(a.X, a.Y, 1.5, "F")
		}
		for _, it := range visibleItems(series) {
			setDrawColor(pdf, opt.ConnectorStroke.Color)
			pdf.SetLineWidth(opt.ConnectorStroke.Width)
			pdfPath(pdf, vector.Polyline(it.placed.Connector))
			if it.placed.HasMarker {
				setFillColor(pdf, opt.ConnectorStroke.Color)
				pdf.Circle(it.placed.Marker.X, it.placed.Marker.Y, 1.5, "F")
			}
			setFillColor(pdf, opt.LabelFill)
			setDrawColor(pdf, opt.LabelStroke.Color)
			pdf.SetLineWidth(opt.LabelStroke.Width)
			r := it.placed.Rect()
			pdfRect(pdf, r, "FD")
			pdfText(pdf, r, it.text, opt.TextColor)
		}
	}

	for _, t := range p.Tooltips {
		r := vector.RectAt(t.Position, t.Size)
		setFillColor(pdf, opt.TooltipFill)
		setDrawColor(pdf, opt.LabelStroke.Color)
		pdfRect(pdf, r, "FD")
		pdfText(pdf, r, t.Text, opt.TextColor)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfRect(pdf *gofpdf.Fpdf, r vector.Rect, style string) {
	pdf.Rect(r.X, r.Y, r.W, r.H, style)
}

// pdfText centres text in r with a font sized to the box height.
func pdfText(pdf *gofpdf.Fpdf, r vector.Rect, text string, c Color) {
	if text == "" {
		return
	}
	size := 0.6 * r.H
	pdf.SetFont("Helvetica", "", size)
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	center := r.Center()
	pdf.Text(center.X-pdf.GetStringWidth(text)/2, center.Y+size/3, text)
}

func setDrawColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

// pdfPath strokes an open path.
func pdfPath(pdf *gofpdf.Fpdf, p vector.Path) {
	if len(p.Cmds) == 0 {
		return
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case vector.MoveTo:
			pdf.MoveTo(c.P.X, c.P.Y)
		case vector.LineTo:
			pdf.LineTo(c.P.X, c.P.Y)
		}
	}
	pdf.DrawPath("D")
}
