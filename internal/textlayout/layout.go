/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout measures label text. It isolates font resolution and
// line breaking behind small interfaces so layout passes stay deterministic
// in tests (basicfont) and realistic with loaded OpenType fonts.
package textlayout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string  `yaml:"family" json:"family"`
	SizePt float64 `yaml:"size" json:"size"`
	Weight int     `yaml:"weight" json:"weight"` // 100..900
	Italic bool    `yaml:"italic" json:"italic"`
}

// Metrics are font metrics in pixels for a resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is the distance between two baselines.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps a FontSpec to a concrete face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider always returns basicfont.Face7x13. Its metrics are fixed,
// which keeps measurements reproducible across machines.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float64(m.Ascent.Round()),
		Descent: float64(m.Descent.Round()),
		LineGap: float64(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Box is the measured extent of a block of lines.
type Box struct {
	Lines         []string
	Width, Height float64
}

// Wrap breaks text into lines no wider than maxWidth (0 disables wrapping)
// and measures the result. Explicit newlines always break. A single word
// wider than maxWidth gets a line of its own.
func Wrap(p Provider, spec FontSpec, text string, maxWidth float64) Box {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	space := advance(d, " ")

	var box Box
	flush := func(line string, w float64) {
		box.Lines = append(box.Lines, line)
		box.Width = max(box.Width, w)
	}
	for _, para := range strings.Split(text, "\n") {
		var cur []string
		curW := 0.0
		for _, word := range strings.Fields(para) {
			w := advance(d, word)
			if len(cur) > 0 && maxWidth > 0 && curW+space+w > maxWidth {
				flush(strings.Join(cur, " "), curW)
				cur, curW = nil, 0
			}
			if len(cur) > 0 {
				curW += space
			}
			cur = append(cur, word)
			curW += w
		}
		flush(strings.Join(cur, " "), curW)
	}
	n := float64(len(box.Lines))
	box.Height = n*(met.Ascent+met.Descent) + (n-1)*met.LineGap
	return box
}

// advance converts the fixed-point advance to whole pixels.
func advance(d *font.Drawer, s string) float64 {
	return float64(d.MeasureString(s).Ceil())
}
