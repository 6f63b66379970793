/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "sort"

// TextStyle is a reusable label text preset. Padding is the inner margin
// between the text and the label box; MaxWidth wraps long labels (0 never
// wraps). All lengths are pixels.
type TextStyle struct {
	Name     string   `yaml:"name" json:"name"`
	Font     FontSpec `yaml:"font" json:"font"`
	Padding  float64  `yaml:"padding" json:"padding"`
	MaxWidth float64  `yaml:"maxWidth" json:"maxWidth"`
	Leading  float64  `yaml:"leading" json:"leading"`
}

var builtinStyles = map[string]TextStyle{
	"data": {
		Name:    "data",
		Font:    FontSpec{Family: "sans", SizePt: 10, Weight: 400},
		Padding: 2,
	},
	"compact": {
		Name: "compact",
		Font: FontSpec{Family: "sans", SizePt: 8, Weight: 400},
	},
	"tooltip": {
		Name:     "tooltip",
		Font:     FontSpec{Family: "sans", SizePt: 10, Weight: 600},
		Padding:  4,
		MaxWidth: 160,
		Leading:  1,
	},
}

// DefaultStyle is used when a series names no style.
const DefaultStyle = "data"

// GetStyle returns a builtin style by name.
func GetStyle(name string) (TextStyle, bool) {
	s, ok := builtinStyles[name]
	return s, ok
}

// Styles overlays custom styles on the builtins, e.g. from a style pack.
type Styles map[string]TextStyle

// Get prefers a custom style over a builtin of the same name.
func (s Styles) Get(name string) (TextStyle, bool) {
	if st, ok := s[name]; ok {
		return st, true
	}
	return GetStyle(name)
}

// Names lists builtin and custom names in sorted order.
func (s Styles) Names() []string {
	seen := map[string]bool{}
	out := ListStyles()
	for _, n := range out {
		seen[n] = true
	}
	for n := range s {
		if !seen[n] {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// ListStyles lists the builtin style names in sorted order.
func ListStyles() []string {
	out := make([]string, 0, len(builtinStyles))
	for k := range builtinStyles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
