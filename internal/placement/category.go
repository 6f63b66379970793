/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package placement

import (
	"fmt"
	"strings"
)

// Category identifies the kind of series a label belongs to. It keys the
// strategy table; nothing else in this package looks at series types.
type Category int

const (
	Column Category = iota
	Bar
	StackedColumn
	StackedBar
	Line
	Spline
	StepLine
	Area
	Bubble
	Scatter
	Funnel
	Pyramid
	Polar
	Radar
	Pie
	Doughnut
)

var categoryNames = [...]string{
	Column:        "column",
	Bar:           "bar",
	StackedColumn: "stackedColumn",
	StackedBar:    "stackedBar",
	Line:          "line",
	Spline:        "spline",
	StepLine:      "stepLine",
	Area:          "area",
	Bubble:        "bubble",
	Scatter:       "scatter",
	Funnel:        "funnel",
	Pyramid:       "pyramid",
	Polar:         "polar",
	Radar:         "radar",
	Pie:           "pie",
	Doughnut:      "doughnut",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory is case-insensitive and accepts the names produced by String.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return Column, fmt.Errorf("unknown series category %q", s)
}

// Circular reports whether the category is laid out by the circular placer.
func (c Category) Circular() bool { return c == Pie || c == Doughnut }

// horizontal reports whether values grow along the x axis.
func (c Category) horizontal() bool { return c == Bar || c == StackedBar }
