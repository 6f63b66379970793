/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package chart reads chart documents and runs layout passes over them. A
// document lists series of data points with their plotted geometry; a pass
// turns it into label positions, visibility and connector paths.
package chart

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Box is a rectangle in document coordinates.
type Box struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// Document is the input of a layout pass. Angles are in degrees.
type Document struct {
	Title    string    `yaml:"title" json:"title,omitempty"`
	Width    float64   `yaml:"width" json:"width"`
	Height   float64   `yaml:"height" json:"height"`
	Plot     *Box      `yaml:"plot" json:"plot,omitempty"`
	Series   []Series  `yaml:"series" json:"series"`
	Tooltips []Tooltip `yaml:"tooltips" json:"tooltips,omitempty"`

	// Digest is the SHA-256 of the raw document, set by Parse.
	Digest string `yaml:"-" json:"-"`
}

type Series struct {
	Name     string      `yaml:"name" json:"name,omitempty"`
	Category string      `yaml:"category" json:"category"`
	Position string      `yaml:"position" json:"position,omitempty"`
	Style    string      `yaml:"style" json:"style,omitempty"`
	Settings Overrides   `yaml:"settings" json:"settings"`
	Circle   *CircleSpec `yaml:"circle" json:"circle,omitempty"`
	Axis     AxisSpec    `yaml:"axis" json:"axis"`
	Points   []Point     `yaml:"points" json:"points"`
}

// Overrides change the configured series defaults; nil keeps the default.
type Overrides struct {
	ShowConnector        *bool    `yaml:"showConnector" json:"showConnector,omitempty"`
	ConnectorLength      *float64 `yaml:"connectorLength" json:"connectorLength,omitempty"`
	Curve                string   `yaml:"curve" json:"curve,omitempty"`
	SmartLabels          *bool    `yaml:"smartLabels" json:"smartLabels,omitempty"`
	MarkerAtConnectorEnd *bool    `yaml:"markerAtConnectorEnd" json:"markerAtConnectorEnd,omitempty"`
	Padding              *float64 `yaml:"padding" json:"padding,omitempty"`
	HAlign               string   `yaml:"hAlign" json:"hAlign,omitempty"`
	VAlign               string   `yaml:"vAlign" json:"vAlign,omitempty"`
	Rotation             *float64 `yaml:"rotation" json:"rotation,omitempty"`
	AngleStep            *float64 `yaml:"angleStep" json:"angleStep,omitempty"`
}

type CircleSpec struct {
	CX         float64 `yaml:"cx" json:"cx"`
	CY         float64 `yaml:"cy" json:"cy"`
	R          float64 `yaml:"r" json:"r"`
	StartAngle float64 `yaml:"startAngle" json:"startAngle"`
}

type AxisSpec struct {
	Inverted bool     `yaml:"inverted" json:"inverted,omitempty"`
	ZoomX    float64  `yaml:"zoomX" json:"zoomX,omitempty"`
	ZoomY    float64  `yaml:"zoomY" json:"zoomY,omitempty"`
	OriginX  *float64 `yaml:"originX" json:"originX,omitempty"`
	OriginY  *float64 `yaml:"originY" json:"originY,omitempty"`
}

// Point is one data point. A nil Value marks missing data.
type Point struct {
	Text    string   `yaml:"text" json:"text,omitempty"`
	Value   *float64 `yaml:"value" json:"value"`
	X       float64  `yaml:"x" json:"x"`
	Y       float64  `yaml:"y" json:"y"`
	Segment *Box     `yaml:"segment" json:"segment,omitempty"`
	Radius  float64  `yaml:"radius" json:"radius,omitempty"`
	Explode float64  `yaml:"explode" json:"explode,omitempty"`
	Angle   *float64 `yaml:"angle" json:"angle,omitempty"`
	Sweep   *float64 `yaml:"sweep" json:"sweep,omitempty"`
	Width   float64  `yaml:"width" json:"width,omitempty"`
	Height  float64  `yaml:"height" json:"height,omitempty"`
}

// Tooltip asks for one tooltip box aligned at (X,Y) inside the plot.
type Tooltip struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Text   string  `yaml:"text" json:"text,omitempty"`
	Width  float64 `yaml:"width" json:"width,omitempty"`
	Height float64 `yaml:"height" json:"height,omitempty"`
}

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ErrInvalid wraps every schema violation returned by Parse.
var ErrInvalid = errors.New("invalid chart document")

// Parse decodes a YAML or JSON document, validates it against the embedded
// schema and records its digest.
func Parse(data []byte) (*Document, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if generic == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(generic))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.Digest = Digest(data)
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Digest is the hex SHA-256 of raw document bytes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
