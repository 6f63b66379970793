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
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gochartlabels/internal/label"
	"gochartlabels/internal/vector"
)

const pieDoc = `
title: shares
width: 400
height: 300
series:
  - name: pie
    category: pie
    points:
      - {value: 1, width: 20, height: 10}
      - {value: 1, width: 20, height: 10}
      - {value: 2, width: 20, height: 10}
  - name: columns
    category: column
    points:
      - {value: 10, x: 100, y: 50, segment: {x: 90, y: 50, w: 20, h: 100}}
      - {value: null, x: 150, y: 150}
      - {value: 2.5, x: 200, y: 130, segment: {x: 190, y: 130, w: 20, h: 20}}
tooltips:
  - {x: 200, y: 20, width: 40, height: 12}
`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestParseValidDocument(t *testing.T) {
	doc := mustParse(t, pieDoc)
	if doc.Title != "shares" || len(doc.Series) != 2 || len(doc.Tooltips) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Series[1].Points[1].Value != nil {
		t.Fatalf("null value should decode as missing")
	}
	if len(doc.Digest) != 64 || doc.Digest != Digest([]byte(pieDoc)) {
		t.Fatalf("digest not recorded: %q", doc.Digest)
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing width":    "height: 10\nseries: []\n",
		"unknown category": "width: 10\nheight: 10\nseries:\n  - category: gauge\n    points: []\n",
		"unknown field":    "width: 10\nheight: 10\nseries: []\ncolour: red\n",
		"negative size":    "width: 10\nheight: 10\nseries:\n  - category: pie\n    points:\n      - {value: 1, width: -3}\n",
	}
	for name, src := range cases {
		if _, err := Parse([]byte(src)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if _, err := Parse([]byte("")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty document: expected ErrInvalid, got %v", err)
	}
	if _, err := Parse([]byte("width: [")); err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("malformed yaml should be a decode error, got %v", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(pieDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Width != 400 {
		t.Fatalf("width = %v", doc.Width)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLayoutPieDefaultsCircleFromPlot(t *testing.T) {
	pass, err := Layout(context.Background(), mustParse(t, pieDoc), Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	pie := pass.Series[0]
	if pie.Circle == nil || pie.Circle.Center.X != 200 || pie.Circle.Center.Y != 150 || pie.Circle.Radius != 105 {
		t.Fatalf("unexpected circle: %+v", pie.Circle)
	}
	// slices of 1,1,2 have mid angles at 45, 135 and 270 degrees
	angles := []float64{math.Pi / 4, 3 * math.Pi / 4, 3 * math.Pi / 2}
	for i, want := range angles {
		l := pie.Labels[i]
		if !l.Visible {
			t.Fatalf("label %d hidden", i)
		}
		c := l.Rect().Center()
		wx := 200 + 52.5*math.Cos(want)
		wy := 150 + 52.5*math.Sin(want)
		if math.Abs(c.X-wx) > 1e-9 || math.Abs(c.Y-wy) > 1e-9 {
			t.Fatalf("label %d centre %v, want (%v,%v)", i, c, wx, wy)
		}
	}
	if pie.Texts[2] != "2" {
		t.Fatalf("value text = %q", pie.Texts[2])
	}
}

func TestLayoutPieNaNValueHidesOnlyItsSlice(t *testing.T) {
	doc := mustParse(t, `
width: 400
height: 300
series:
  - name: pie
    category: pie
    points:
      - {value: 3, width: 20, height: 10}
      - {value: 1, width: 20, height: 10}
      - {value: 2, width: 20, height: 10}
      - {value: 5, width: 20, height: 10}
`)
	nan := math.NaN()
	doc.Series[0].Points[1].Value = &nan
	pass, err := Layout(context.Background(), doc, Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	want := []bool{true, false, true, true}
	for i, v := range want {
		if pass.Series[0].Labels[i].Visible != v {
			t.Fatalf("label %d visible = %v, want %v", i, pass.Series[0].Labels[i].Visible, v)
		}
	}

	labels := circularLabels(doc.Series[0].Points, *pass.Series[0].Circle)
	if !math.IsNaN(labels[1].Angle) {
		t.Fatalf("NaN value should give a NaN angle, got %v", labels[1].Angle)
	}
	// the NaN slice takes no room: slice 2 follows slice 0 directly
	if got, want := labels[2].Angle, 2*math.Pi*(3.0/10+1.0/10); math.Abs(got-want) > 1e-12 {
		t.Fatalf("slice 2 angle = %v, want %v", got, want)
	}
}

func TestLayoutCartesianSeries(t *testing.T) {
	pass, err := Layout(context.Background(), mustParse(t, pieDoc), Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	cols := pass.Series[1]
	if cols.Category != "column" {
		t.Fatalf("category = %q", cols.Category)
	}
	if cols.Labels[1].Visible {
		t.Fatalf("missing value must not be labelled")
	}
	if cols.Texts[2] != "2.5" {
		t.Fatalf("text = %q", cols.Texts[2])
	}
	for _, i := range []int{0, 2} {
		l := cols.Labels[i]
		if !l.Visible || l.Size.Empty() {
			t.Fatalf("label %d: %+v", i, l)
		}
		if !containsRect(pass.Plot, l.Rect()) {
			t.Fatalf("label %d escapes plot: %v", i, l.Rect())
		}
	}
	stats := pass.Stats()
	if stats[1].Visible != 2 || stats[1].Hidden != 1 || stats[0].Visible != 3 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestLayoutTooltip(t *testing.T) {
	pass, err := Layout(context.Background(), mustParse(t, pieDoc), Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	tt := pass.Tooltips[0]
	if tt.Size.W != 40 || tt.Size.H != 12 {
		t.Fatalf("size = %+v", tt.Size)
	}
	if tt.Position.X != 180 {
		t.Fatalf("tooltip should be centred on the anchor, x = %v", tt.Position.X)
	}
	if tt.Orientation == "" {
		t.Fatalf("orientation missing")
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	doc := mustParse(t, pieDoc)
	a, err := Layout(context.Background(), doc, Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	b, _ := Layout(context.Background(), doc, Options{Defaults: label.DefaultSettings()})
	if a.ID != doc.Digest[:12] {
		t.Fatalf("pass id = %q", a.ID)
	}
	// the missing column point carries NaN neighbours only in its input, not its output
	if !reflect.DeepEqual(a.Series[0], b.Series[0]) || !reflect.DeepEqual(a.Tooltips, b.Tooltips) {
		t.Fatalf("passes differ")
	}
}

func TestLayoutOverridesAndErrors(t *testing.T) {
	doc := mustParse(t, `
width: 200
height: 200
series:
  - category: doughnut
    position: outside
    settings: {connectorLength: 15, curve: bezier, padding: 0}
    circle: {cx: 100, cy: 100, r: 40, startAngle: -90}
    points:
      - {text: a, value: 3, width: 10, height: 6}
`)
	pass, err := Layout(context.Background(), doc, Options{Defaults: label.DefaultSettings()})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	l := pass.Series[0].Labels[0]
	if !l.Visible || len(l.Connector) != 256 {
		t.Fatalf("expected a sampled bezier connector, got %d points", len(l.Connector))
	}
	// single slice spans the full turn: mid angle is start + 180 degrees
	if math.Abs(l.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("angle = %v", l.Angle)
	}

	doc.Series[0].Settings.HAlign = "sideways"
	if _, err := Layout(context.Background(), doc, Options{Defaults: label.DefaultSettings()}); err == nil {
		t.Fatalf("expected error for unknown alignment")
	}
	if _, err := Layout(context.Background(), nil, Options{}); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func containsRect(outer, inner vector.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y && inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}
