/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/label"
)

const sampleDoc = `
width: 300
height: 200
series:
  - name: pie
    category: pie
    position: outside
    points:
      - {text: alpha, value: 3}
      - {text: beta, value: 1}
  - name: bars
    category: column
    points:
      - {value: 4, x: 40, y: 60, segment: {x: 30, y: 60, w: 20, h: 100}}
tooltips:
  - {x: 150, y: 100, text: tip}
`

func samplePass(t *testing.T) *chart.Pass {
	t.Helper()
	doc, err := chart.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := chart.Layout(context.Background(), doc, chart.Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return p
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, samplePass(t), Options{IncludeGuides: true, Scale: 2}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "width=\"600\"", "alpha", "series-pie", "<path d=\"M", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	p := samplePass(t)
	img, err := RenderPNG(p, Options{})
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("bounds = %v", b)
	}
	// the border of the first visible pie label is stroked in black
	l := p.Series[0].Labels[0]
	if !l.Visible {
		t.Fatalf("expected visible label")
	}
	x, y := px(l.Position.X, 1), px(l.Position.Y, 1)
	if got := img.RGBAAt(x, y); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("label corner = %v", got)
	}
	if _, err := RenderPNG(&chart.Pass{}, Options{}); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, samplePass(t), Options{IncludeGuides: true}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf")
	}
	if err := WritePDF(&buf, nil, Options{}); err == nil {
		t.Fatalf("expected error for nil pass")
	}
}

func TestBatchExportPresets(t *testing.T) {
	dir := t.TempDir()
	p := samplePass(t)
	paths, err := BatchExport(p, BatchOptions{Preset: PresetPrint, OutDir: dir, Base: "chart"})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	want := []string{filepath.Join(dir, "chart.pdf"), filepath.Join(dir, "chart.png")}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i, path := range paths {
		if path != want[i] {
			t.Fatalf("path %d = %s", i, path)
		}
		st, err := os.Stat(path)
		if err != nil || st.Size() == 0 {
			t.Fatalf("stat %s: %v", path, err)
		}
	}
	if _, err := BatchExport(p, BatchOptions{Formats: []string{"gif"}, OutDir: dir}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
