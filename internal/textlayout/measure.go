/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"gochartlabels/internal/label"
	"gochartlabels/internal/vector"
)

// Measurer sizes labels from their text with one style. It implements
// label.Measurer.
type Measurer struct {
	Provider Provider
	Style    TextStyle
}

// NewMeasurer returns a Measurer for the named builtin style, falling back
// to DefaultStyle for unknown names.
func NewMeasurer(p Provider, style string) Measurer { return Styles(nil).Measurer(p, style) }

// Measurer resolves style in s, falling back to DefaultStyle.
func (s Styles) Measurer(p Provider, style string) Measurer {
	st, ok := s.Get(style)
	if !ok {
		st, _ = s.Get(DefaultStyle)
	}
	return Measurer{Provider: p, Style: st}
}

// Measure returns the padded text box. Empty text measures as zero so the
// label never takes part in collisions.
func (m Measurer) Measure(l label.Label) vector.Size {
	if l.Text == "" {
		return vector.Size{}
	}
	box := Wrap(m.Provider, m.Style.Font, l.Text, m.Style.MaxWidth)
	h := box.Height + float64(len(box.Lines)-1)*m.Style.Leading
	return vector.Size{W: box.Width + 2*m.Style.Padding, H: h + 2*m.Style.Padding}
}
