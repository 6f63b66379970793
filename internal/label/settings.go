/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package label

import (
	"fmt"
	"strings"

	"gochartlabels/internal/connector"
)

// Position selects where labels sit relative to their data points. The first
// five apply to cartesian series, the last three to circular ones.
type Position int

const (
	PositionDefault Position = iota
	PositionAuto
	PositionInner
	PositionOuter
	PositionCenter
	PositionInside
	PositionOutside
	PositionOutsideExtended
)

var positionNames = map[Position]string{
	PositionDefault:         "default",
	PositionAuto:            "auto",
	PositionInner:           "inner",
	PositionOuter:           "outer",
	PositionCenter:          "center",
	PositionInside:          "inside",
	PositionOutside:         "outside",
	PositionOutsideExtended: "outsideExtended",
}

func (p Position) String() string {
	if s, ok := positionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// ParsePosition accepts the names produced by String, case-insensitively.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PositionDefault, nil
	}
	for p, name := range positionNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return PositionDefault, fmt.Errorf("unknown label position %q", s)
}

// Alignment is the preferred placement along one axis for Default mode.
// For vertical bars Near means the value end (top), Far the base.
type Alignment int

const (
	AlignNear Alignment = iota
	AlignCenter
	AlignFar
)

// ParseAlignment accepts near/top/left, center/middle and far/bottom/right.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "near", "top", "left":
		return AlignNear, nil
	case "center", "middle":
		return AlignCenter, nil
	case "far", "bottom", "right":
		return AlignFar, nil
	}
	return AlignNear, fmt.Errorf("unknown alignment %q", s)
}

// Default tuning constants of the circular search and connector routing.
const (
	DefaultAngleStep       = 0.01
	DefaultRevolutionSlack = 1.0
	DefaultPullIn          = 0.5
	DefaultHitchFraction   = 0.5
	DefaultExtension       = 10.0
	DefaultElbowLength     = 10.0
)

// Settings are shared by all labels of one series.
type Settings struct {
	Position        Position
	ShowConnector   bool
	ConnectorLength float64
	Curve           connector.Mode
	// SmartLabels enables angular-search collision resolution for circular
	// series. When false, labels keep their closed-form position.
	SmartLabels          bool
	MarkerAtConnectorEnd bool
	Padding              float64
	HAlign, VAlign       Alignment
	// ConnectorRotation is the direction (radians) used by bubble/scatter
	// labels.
	ConnectorRotation float64

	// AngleStep is the angular search increment in radians.
	AngleStep float64
	// RevolutionSlack scales the half first-slice width added to the
	// one-revolution search bound.
	RevolutionSlack float64
	// PullIn is the fraction of the radius an inside label is moved toward
	// the centre.
	PullIn float64
	// HitchFraction places the kink of a displaced outside connector along
	// the connector length.
	HitchFraction float64
	// Extension is the radial stub used by outside-extended connectors.
	Extension float64
	// ElbowLength is the horizontal run into a spider column label.
	ElbowLength float64
}

// DefaultSettings returns the settings used when a series overrides nothing.
func DefaultSettings() Settings {
	return Settings{
		Position:        PositionDefault,
		ShowConnector:   true,
		ConnectorLength: 10,
		Curve:           connector.Straight,
		SmartLabels:     true,
		Padding:         2,
		VAlign:          AlignNear,
		HAlign:          AlignCenter,
		AngleStep:       DefaultAngleStep,
		RevolutionSlack: DefaultRevolutionSlack,
		PullIn:          DefaultPullIn,
		HitchFraction:   DefaultHitchFraction,
		Extension:       DefaultExtension,
		ElbowLength:     DefaultElbowLength,
	}
}

// Normalized fills tuning constants left at zero and clamps negative lengths.
// Zero ConnectorLength and Padding are legitimate and kept.
func (s Settings) Normalized() Settings {
	if s.AngleStep <= 0 {
		s.AngleStep = DefaultAngleStep
	}
	if s.RevolutionSlack <= 0 {
		s.RevolutionSlack = DefaultRevolutionSlack
	}
	if s.PullIn <= 0 || s.PullIn > 1 {
		s.PullIn = DefaultPullIn
	}
	if s.HitchFraction <= 0 || s.HitchFraction >= 1 {
		s.HitchFraction = DefaultHitchFraction
	}
	if s.Extension <= 0 {
		s.Extension = DefaultExtension
	}
	if s.ElbowLength <= 0 {
		s.ElbowLength = DefaultElbowLength
	}
	if s.ConnectorLength < 0 {
		s.ConnectorLength = 0
	}
	if s.Padding < 0 {
		s.Padding = 0
	}
	return s
}
