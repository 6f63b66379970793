/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package circular

import (
	"math"
	"testing"

	"gochartlabels/internal/label"
	"gochartlabels/internal/vector"
)

func TestSpiderColumnsCascade(t *testing.T) {
	s := settings(label.PositionOutsideExtended)
	labels := []label.Label{
		{Index: 0, Angle: 0.10, Size: vector.Size{W: 40, H: 12}},
		{Index: 1, Angle: 0.12, Size: vector.Size{W: 20, H: 12}},
		{Index: 2, Angle: 0.14, Size: vector.Size{W: 30, H: 12}},
		{Index: 3, Angle: 3.0, Size: vector.Size{W: 50, H: 12}},
		{Index: 4, Angle: 3.05, Size: vector.Size{W: 10, H: 12}},
	}
	res := PlaceLabels(labels, s, pie())
	if res.Visible() != len(labels) {
		t.Fatalf("spider layout never hides labels, got %d visible", res.Visible())
	}
	// columns sit at radius + extension + connector length from the centre
	rightX := 100 + 100 + s.Extension + s.ConnectorLength
	for _, i := range []int{0, 1, 2} {
		if got := res.Labels[i].Position.X; got != rightX {
			t.Fatalf("right label %d x=%v, want %v", i, got, rightX)
		}
	}
	leftEdge := 100 - (100 + s.Extension + s.ConnectorLength)
	for _, i := range []int{3, 4} {
		r := res.Labels[i].Rect()
		if r.Right() != leftEdge {
			t.Fatalf("left label %d should end at the column edge %v, got %v", i, leftEdge, r.Right())
		}
	}
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {3, 4}} {
		a, b := res.Labels[pair[0]].Rect(), res.Labels[pair[1]].Rect()
		if a.Intersects(b) {
			t.Fatalf("column labels %v overlap: %v %v", pair, a, b)
		}
	}
	// angles 0.10..0.14 project only a few pixels apart, so the cascade decides
	if got, want := res.Labels[1].Position.Y, res.Labels[0].Rect().Bottom()+s.Padding; math.Abs(got-want) > 1e-9 {
		t.Fatalf("label 1 should be pushed below label 0: y=%v want %v", got, want)
	}
	for _, p := range res.Labels {
		if len(p.Connector) != 4 {
			t.Fatalf("spider connector should have 4 points, got %v", p.Connector)
		}
		end := p.Connector[3]
		if end.Y != p.Rect().Center().Y {
			t.Fatalf("elbow should enter at the label's middle: %v vs %v", end, p.Rect())
		}
	}
	assertPoolDisjoint(t, res.Occupied)
}

func TestSpiderClampedToPlot(t *testing.T) {
	s := settings(label.PositionOutsideExtended)
	c := pie()
	c.Plot = vector.R(-20, -20, 240, 240)
	labels := []label.Label{
		{Index: 0, Angle: 0.2, Size: vector.Size{W: 40, H: 12}},
		{Index: 1, Angle: 3.0, Size: vector.Size{W: 30, H: 12}},
	}
	res := PlaceLabels(labels, s, c)
	right := res.Labels[0].Rect()
	if right.Right() > c.Plot.Right() {
		t.Fatalf("right column should be clamped to %v, got %v", c.Plot.Right(), right.Right())
	}
	left := res.Labels[1].Rect()
	if left.X < c.Plot.X {
		t.Fatalf("left column should be clamped to %v, got %v", c.Plot.X, left.X)
	}
}

func TestSpiderTinyPlotKeepsPoolDisjoint(t *testing.T) {
	s := settings(label.PositionOutsideExtended)
	c := Circle{Center: vector.Pt{X: 10, Y: 10}, Radius: 5, Plot: vector.R(0, 0, 20, 20)}
	labels := make([]label.Label, 12)
	for i := range labels {
		labels[i] = label.Label{Index: i, Angle: float64(i) * 0.5, Size: vector.Size{W: 30, H: 8}}
	}
	res := PlaceLabels(labels, s, c)
	assertPoolDisjoint(t, res.Occupied)
	assertVisibleDisjoint(t, res.Labels)
}

func TestSpiderMeetingColumnsTerminate(t *testing.T) {
	s := label.DefaultSettings()
	s.Position = label.PositionOutsideExtended
	c := Circle{Center: vector.Pt{X: 50, Y: 50}, Radius: 20, Plot: vector.R(0, 0, 100, 100)}
	labels := []label.Label{
		{Index: 0, Angle: -0.3, Size: vector.Size{W: 80, H: 10.1}},
		{Index: 1, Angle: 3.491, Size: vector.Size{W: 80, H: 10.1}},
		{Index: 2, Angle: 0.249, Size: vector.Size{W: 80, H: 10.1}},
	}
	res := PlaceLabels(labels, s, c)
	if res.Visible() != 3 {
		t.Fatalf("spider labels are never hidden, got %d visible", res.Visible())
	}
	assertPoolDisjoint(t, res.Occupied)
	assertVisibleDisjoint(t, res.Labels)
}

func TestSpiderFractionalHeightsTerminate(t *testing.T) {
	s := label.DefaultSettings()
	s.Position = label.PositionOutsideExtended
	s.Padding = 0.3
	c := Circle{Center: vector.Pt{X: 50, Y: 50}, Radius: 20, Plot: vector.R(0, 0, 100, 100)}
	labels := make([]label.Label, 40)
	for i := range labels {
		labels[i] = label.Label{Index: i, Angle: float64(i) * 0.37, Size: vector.Size{W: 70 + float64(i%5), H: 7.1 + 0.13*float64(i%7)}}
	}
	res := PlaceLabels(labels, s, c)
	assertPoolDisjoint(t, res.Occupied)
	assertVisibleDisjoint(t, res.Labels)
}

func TestBelowClearsPaddedTop(t *testing.T) {
	for _, bottom := range []float64{0.1, 10.1, 30.3, 1e9 + 0.7} {
		for _, padding := range []float64{0, 0.1, 0.3, 4} {
			y := below(bottom, padding)
			if y-padding/2 < bottom {
				t.Fatalf("below(%v, %v) = %v reaches above the bottom", bottom, padding, y)
			}
		}
	}
}
