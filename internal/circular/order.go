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
	"sort"

	"github.com/samber/lo"

	"gochartlabels/internal/label"
	"gochartlabels/internal/vector"
)

// VisitOrder returns the indexes of valid labels in placement order: labels
// on the right half of the circle first, then the left half, each group
// sorted top to bottom by the projected slice point. Equal heights keep input
// order. Labels with a NaN angle are left out.
func VisitOrder(labels []label.Label, c Circle) []int {
	valid := lo.Filter(lo.Range(len(labels)), func(i int, _ int) bool {
		return !math.IsNaN(labels[i].Angle)
	})
	right, left := lo.FilterReject(valid, func(i int, _ int) bool {
		return vector.RightHalf(labels[i].Angle)
	})
	y := func(i int) float64 {
		l := labels[i]
		return vector.AngleToPoint(c.Center, c.Radius+l.Explode, l.Angle).Y
	}
	byY := func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool { return y(idx[a]) < y(idx[b]) })
	}
	byY(right)
	byY(left)
	return append(right, left...)
}
