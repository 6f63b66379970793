/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"gochartlabels/internal/label"
)

func TestWrapBreaksOnWidth(t *testing.T) {
	box := Wrap(BasicProvider{}, FontSpec{}, "Hello world from Go", 50)
	if len(box.Lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %v", box.Lines)
	}
	if box.Width <= 0 || box.Height <= 0 {
		t.Fatalf("expected positive box size: %+v", box)
	}
}

func TestWrapBasicFontIsFixedWidth(t *testing.T) {
	// Face7x13 advances 7px per glyph; ascent 11, descent 2
	box := Wrap(BasicProvider{}, FontSpec{}, "ABC", 0)
	if box.Width != 21 || box.Height != 13 {
		t.Fatalf("unexpected box %+v", box)
	}
	two := Wrap(BasicProvider{}, FontSpec{}, "AB\nC", 0)
	if len(two.Lines) != 2 || two.Width != 14 || two.Height != 26 {
		t.Fatalf("newline should force a second line: %+v", two)
	}
}

func TestMeasurerPadsBox(t *testing.T) {
	m := NewMeasurer(BasicProvider{}, "data")
	s := m.Measure(label.Label{Text: "42%"})
	if s.W != 21+4 || s.H != 13+4 {
		t.Fatalf("unexpected size %+v", s)
	}
	if z := m.Measure(label.Label{}); z.W != 0 || z.H != 0 {
		t.Fatalf("empty text should measure zero, got %+v", z)
	}
	labels := label.MeasureAll(m, []label.Label{{Text: "A"}, {Text: "B", Size: s}})
	if labels[0].Size.W != 7+4 || labels[1].Size != s {
		t.Fatalf("MeasureAll mismatch: %+v", labels)
	}
}

func TestUnknownStyleFallsBack(t *testing.T) {
	m := NewMeasurer(nil, "nope")
	if m.Style.Name != DefaultStyle {
		t.Fatalf("expected fallback to %s, got %s", DefaultStyle, m.Style.Name)
	}
	if got := ListStyles(); len(got) != 3 || got[0] != "compact" {
		t.Fatalf("unexpected builtin list %v", got)
	}
}

func TestOTProviderFallsBack(t *testing.T) {
	p := OTProvider{Lib: NewFontLibrary()}
	_, met := p.Resolve(FontSpec{Family: "missing"})
	_, basic := BasicProvider{}.Resolve(FontSpec{})
	if met != basic {
		t.Fatalf("unknown family should use the fallback metrics: %+v vs %+v", met, basic)
	}
	if err := NewFontLibrary().Add("broken", 400, false, []byte("not a font")); err == nil {
		t.Fatalf("expected parse error for invalid font data")
	}
}
