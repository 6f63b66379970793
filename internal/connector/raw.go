/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package connector

import "gochartlabels/internal/vector"

// Raw point builders. Each returns the control points for Route; repeated
// consecutive points are dropped so a zero connector length does not produce
// degenerate segments.

// Direct is the plain connector from the slice edge (or data anchor) to the
// label edge.
func Direct(edge, end vector.Pt) []vector.Pt {
	return compact([]vector.Pt{edge, end})
}

// WithHitch is used for outside labels that were rotated away from their
// slice angle: the line leaves the slice along the original angle up to
// hitch, then kinks toward the label edge.
func WithHitch(edge, hitch, end vector.Pt) []vector.Pt {
	return compact([]vector.Pt{edge, hitch, end})
}

// Elbow routes a spider-column connector: slice edge, radial extension, the
// start of the horizontal run, and the label's near edge.
func Elbow(edge, extension, elbow, end vector.Pt) []vector.Pt {
	return compact([]vector.Pt{edge, extension, elbow, end})
}

func compact(pts []vector.Pt) []vector.Pt {
	out := pts[:0]
	for i, p := range pts {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
