/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectInsetAndCorners(t *testing.T) {
	r := R(10, 20, 100, 50)
	if r.Min() != (Pt{10, 20}) || r.Max() != (Pt{110, 70}) {
		t.Fatalf("unexpected corners: %v %v", r.Min(), r.Max())
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
	out := r.Inset(-2, -2)
	if out.X != 8 || out.W != 104 {
		t.Fatalf("negative inset should grow: %+v", out)
	}
}

func TestRectIntersects_TouchingEdgesDoNotOverlap(t *testing.T) {
	a := R(0, 0, 10, 10)
	if a.Intersects(R(10, 0, 10, 10)) {
		t.Fatalf("rects sharing an edge must not intersect")
	}
	if a.Intersects(R(0, 10, 10, 10)) {
		t.Fatalf("rects sharing a bottom edge must not intersect")
	}
	if !a.Intersects(R(9.5, 9.5, 10, 10)) {
		t.Fatalf("expected overlap")
	}
}

func TestRectIntersectsAny_ZeroSizeNeverIntersects(t *testing.T) {
	pool := []Rect{R(0, 0, 100, 100)}
	if RectIntersectsAny(R(50, 50, 0, 10), pool) {
		t.Fatalf("zero-width rect must not intersect")
	}
	if RectIntersectsAny(R(50, 50, 0, 0), pool) {
		t.Fatalf("zero-size rect must not intersect")
	}
	if !RectIntersectsAny(R(50, 50, 1, 1), pool) {
		t.Fatalf("expected intersection")
	}
	if RectIntersectsAny(R(50, 50, 1, 1), nil) {
		t.Fatalf("empty pool must not intersect")
	}
}

func TestPointInCircle(t *testing.T) {
	c := Pt{100, 100}
	if !PointInCircle(c, 10, Pt{110, 100}) {
		t.Fatalf("boundary point should be inside")
	}
	if PointInCircle(c, 10, Pt{108, 108}) {
		t.Fatalf("point at distance ~11.3 should be outside")
	}
	if !PointInCircle(c, 0, c) {
		t.Fatalf("centre is inside a zero-radius circle")
	}
}

func TestAngleToPoint(t *testing.T) {
	p := AngleToPoint(Pt{100, 100}, 50, math.Pi/2)
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-150) > 1e-9 {
		t.Fatalf("expected (100,150) got %+v", p)
	}
	p = AngleToPoint(Pt{0, 0}, 10, 0)
	if p.X != 10 || p.Y != 0 {
		t.Fatalf("expected (10,0) got %+v", p)
	}
}

func TestClampInto_ShiftsNeverShrinks(t *testing.T) {
	bounds := R(0, 0, 100, 50)
	r := ClampInto(R(95, -5, 20, 10), bounds, true, true)
	if r.X != 80 || r.Y != 0 || r.W != 20 || r.H != 10 {
		t.Fatalf("unexpected clamp: %+v", r)
	}
	r = ClampInto(R(95, -5, 20, 10), bounds, false, true)
	if r.X != 95 || r.Y != 0 {
		t.Fatalf("x must be untouched when not clamped: %+v", r)
	}
	r = ClampInto(R(10, 10, 200, 10), bounds, true, true)
	if r.X != 0 || r.W != 200 {
		t.Fatalf("oversized rect should align to min edge: %+v", r)
	}
}

func TestNormalizeAngleAndHalves(t *testing.T) {
	if a := NormalizeAngle(-math.Pi/2, 0); math.Abs(a-3*math.Pi/2) > 1e-12 {
		t.Fatalf("expected 3π/2 got %v", a)
	}
	if a := NormalizeAngle(5*math.Pi, 0); math.Abs(a-math.Pi) > 1e-9 {
		t.Fatalf("expected π got %v", a)
	}
	if a := NormalizeAngle(0, -math.Pi/2); math.Abs(a) > 1e-12 {
		t.Fatalf("expected 0 got %v", a)
	}
	if !RightHalf(0) || !RightHalf(-0.3) || !RightHalf(2*math.Pi-0.1) {
		t.Fatalf("expected right half")
	}
	if RightHalf(math.Pi) || RightHalf(math.Pi/2) || RightHalf(3*math.Pi/2) {
		t.Fatalf("expected left half")
	}
}

func TestPool_AddAndCopy(t *testing.T) {
	var p Pool
	if p.IntersectsAny(R(0, 0, 10, 10)) {
		t.Fatalf("empty pool must not intersect")
	}
	p.Add(R(0, 0, 10, 10))
	if !p.IntersectsAny(R(5, 5, 10, 10)) {
		t.Fatalf("expected intersection with added rect")
	}
	rs := p.Rects()
	rs[0].X = 500
	if !p.IntersectsAny(R(5, 5, 10, 10)) {
		t.Fatalf("Rects must return a copy")
	}
	if p.Len() != 1 {
		t.Fatalf("expected one rect, got %d", p.Len())
	}
}
