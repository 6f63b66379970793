/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package connector routes the line between a data point and its label.
package connector

import (
	"fmt"
	"strings"

	"gochartlabels/internal/vector"
)

// Mode selects how raw connector points are turned into a polyline.
type Mode int

const (
	Straight Mode = iota
	Bezier
)

// Resolution is the number of samples emitted for a bezier connector.
const Resolution = 256

func (m Mode) String() string {
	switch m {
	case Straight:
		return "straight"
	case Bezier:
		return "bezier"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "straight"/"line" and "bezier"/"curve". Empty means Straight.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "straight", "line":
		return Straight, nil
	case "bezier", "curve":
		return Bezier, nil
	}
	return Straight, fmt.Errorf("unknown connector mode %q", s)
}

// Route turns raw points (data anchor first, label edge last) into the
// polyline handed to the renderer. Straight mode returns a copy of the input;
// Bezier mode treats all points as control points of one curve.
func Route(points []vector.Pt, mode Mode) []vector.Pt {
	switch {
	case len(points) == 0:
		return nil
	case len(points) == 1 || mode != Bezier:
		out := make([]vector.Pt, len(points))
		copy(out, points)
		return out
	}
	return Sample(points, Resolution)
}

// Sample evaluates the bezier curve defined by ctrl at n parameters evenly
// spaced over [0,1]. The first and last samples equal the first and last
// control points.
func Sample(ctrl []vector.Pt, n int) []vector.Pt {
	if len(ctrl) == 0 || n <= 0 {
		return nil
	}
	if n == 1 {
		return []vector.Pt{ctrl[0]}
	}
	out := make([]vector.Pt, n)
	last := float64(n - 1)
	for i := 0; i < n; i++ {
		out[i] = BezierAt(ctrl, float64(i)/last)
	}
	return out
}

// BezierAt is the recursive de Casteljau evaluation: the curve over n points
// is the interpolation at t between the curves over the first n-1 and the
// last n-1 points.
func BezierAt(ctrl []vector.Pt, t float64) vector.Pt {
	switch len(ctrl) {
	case 0:
		return vector.Pt{}
	case 1:
		return ctrl[0]
	}
	a := BezierAt(ctrl[:len(ctrl)-1], t)
	b := BezierAt(ctrl[1:], t)
	return lerp(a, b, t)
}

// lerp is written as (1-t)a + tb so t=0 and t=1 reproduce a and b exactly.
func lerp(a, b vector.Pt, t float64) vector.Pt {
	u := 1 - t
	return vector.Pt{X: u*a.X + t*b.X, Y: u*a.Y + t*b.Y}
}
