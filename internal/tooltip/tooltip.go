/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tooltip positions a single fixed-size box next to an anchor point
// and keeps it inside a clip rectangle.
package tooltip

import "gochartlabels/internal/vector"

// DefaultNose is the gap between the anchor and the box edge facing it.
const DefaultNose = 4.0

type Vertical int

const (
	Middle Vertical = iota
	Top
	Bottom
)

func (v Vertical) String() string {
	switch v {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "middle"
}

type Horizontal int

const (
	Center Horizontal = iota
	Left
	Right
)

func (h Horizontal) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "center"
}

// Orientation names the clip edges the box was pushed away from. Top means
// the box would have crossed the clip top and now hangs below the anchor.
type Orientation struct {
	Vertical   Vertical
	Horizontal Horizontal
}

func (o Orientation) String() string { return o.Vertical.String() + "-" + o.Horizontal.String() }

// Aligner carries the nose offset; the zero value uses DefaultNose.
type Aligner struct {
	Nose float64
}

// AlignTooltip aligns with the default nose offset.
func AlignTooltip(anchor vector.Pt, box vector.Size, clip vector.Rect) (vector.Pt, Orientation) {
	return Aligner{}.Align(anchor, box, clip)
}

// Align returns the top-left corner of the box and the chosen orientation.
// The box is shifted, never shrunk, to stay inside clip.
func (a Aligner) Align(anchor vector.Pt, box vector.Size, clip vector.Rect) (vector.Pt, Orientation) {
	nose := a.Nose
	if nose <= 0 {
		nose = DefaultNose
	}
	if !anchor.Valid() || !box.Valid() {
		return clip.Min(), Orientation{}
	}

	var o Orientation
	centred := vector.Centered(anchor, box)
	r := centred

	switch {
	case centred.Y < clip.Y:
		o.Vertical = Top
		r.Y = anchor.Y + nose
	case centred.Bottom() > clip.Bottom():
		o.Vertical = Bottom
		r.Y = anchor.Y - box.H - nose
	}
	switch {
	case centred.X < clip.X:
		o.Horizontal = Left
		r.X = anchor.X + nose
	case centred.Right() > clip.Right():
		o.Horizontal = Right
		r.X = anchor.X - box.W - nose
	}
	if o == (Orientation{}) {
		// nothing in the way: sit above the anchor
		r.Y = anchor.Y - box.H - nose
	}
	return vector.ClampInto(r, clip, true, true).Min(), o
}
