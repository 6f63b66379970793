/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tooltip

import (
	"testing"

	"gochartlabels/internal/vector"
)

func TestAlignCentredAboveAnchor(t *testing.T) {
	p, o := AlignTooltip(vector.Pt{X: 100, Y: 100}, vector.Size{W: 40, H: 20}, vector.R(0, 0, 200, 200))
	if o != (Orientation{}) {
		t.Fatalf("expected middle-center, got %v", o)
	}
	if p != (vector.Pt{X: 80, Y: 76}) {
		t.Fatalf("unexpected position %v", p)
	}
}

func TestAlignEdges(t *testing.T) {
	clip := vector.R(0, 0, 200, 200)
	box := vector.Size{W: 40, H: 20}

	p, o := AlignTooltip(vector.Pt{X: 100, Y: 5}, box, clip)
	if o.Vertical != Top || p.Y != 9 {
		t.Fatalf("near top: %v %v", o, p)
	}
	p, o = AlignTooltip(vector.Pt{X: 100, Y: 195}, box, clip)
	if o.Vertical != Bottom || p.Y != 171 {
		t.Fatalf("near bottom: %v %v", o, p)
	}
	p, o = AlignTooltip(vector.Pt{X: 5, Y: 100}, box, clip)
	if o.Horizontal != Left || p.X != 9 || p.Y != 90 {
		t.Fatalf("near left: %v %v", o, p)
	}
	p, o = AlignTooltip(vector.Pt{X: 195, Y: 100}, box, clip)
	if o.Horizontal != Right || p.X != 151 {
		t.Fatalf("near right: %v %v", o, p)
	}
	if o.String() != "middle-right" {
		t.Fatalf("orientation string %q", o)
	}
}

func TestAlignAlwaysInsideClip(t *testing.T) {
	clip := vector.R(10, 20, 150, 100)
	box := vector.Size{W: 30, H: 16}
	for x := -50.0; x <= 250; x += 7 {
		for y := -50.0; y <= 200; y += 7 {
			p, _ := AlignTooltip(vector.Pt{X: x, Y: y}, box, clip)
			if !containsRect(clip, vector.RectAt(p, box)) {
				t.Fatalf("anchor (%v,%v): box %v leaves clip %v", x, y, vector.RectAt(p, box), clip)
			}
		}
	}
}

func TestAlignCustomNose(t *testing.T) {
	p, _ := Aligner{Nose: 10}.Align(vector.Pt{X: 100, Y: 100}, vector.Size{W: 40, H: 20}, vector.R(0, 0, 200, 200))
	if p.Y != 70 {
		t.Fatalf("custom nose ignored: %v", p)
	}
}

func containsRect(outer, inner vector.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y && inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}
