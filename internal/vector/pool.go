/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Pool accumulates the rectangles already occupied during one layout pass.
// The zero value is an empty pool ready to use. A Pool is not safe for
// concurrent use and must not outlive the pass that filled it.
type Pool struct {
	rects []Rect
}

// IntersectsAny reports whether r overlaps any occupied rectangle.
func (p *Pool) IntersectsAny(r Rect) bool { return RectIntersectsAny(r, p.rects) }

// Add records r as occupied. Callers add a rectangle only once its label
// position is final.
func (p *Pool) Add(r Rect) { p.rects = append(p.rects, r) }

func (p *Pool) Len() int { return len(p.rects) }

// Rects returns a copy of the occupied rectangles in insertion order.
func (p *Pool) Rects() []Rect {
	out := make([]Rect, len(p.rects))
	copy(out, p.rects)
	return out
}
