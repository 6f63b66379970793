/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package label

import "gochartlabels/internal/vector"

// Measurer supplies the desired size of a label's content.
type Measurer interface {
	Measure(Label) vector.Size
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(Label) vector.Size

func (f MeasurerFunc) Measure(l Label) vector.Size { return f(l) }

// MeasureAll fills Size for every label that has none yet and returns the
// same slice. Labels with an explicit size are left untouched.
func MeasureAll(m Measurer, labels []Label) []Label {
	if m == nil {
		return labels
	}
	for i := range labels {
		if labels[i].Size.W == 0 && labels[i].Size.H == 0 {
			labels[i].Size = m.Measure(labels[i])
		}
	}
	return labels
}
