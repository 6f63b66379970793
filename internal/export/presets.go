/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gochartlabels/internal/chart"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls batch export of one pass to several formats.
//
// Files are named <Base>.<format> inside OutDir, which is created when
// missing.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset        PresetName
	Formats       []string // allowed: pdf, png, svg; empty means preset defaults
	Scale         float64  // when > 0 overrides the preset scale
	IncludeGuides *bool    // when set, overrides preset's default for guides
	OutDir        string
	Base          string // file name without extension; defaults to the pass ID
}

// BatchExport writes the pass in every requested format and returns the
// written paths in format order.
func BatchExport(p *chart.Pass, opt BatchOptions) ([]string, error) {
	if p == nil {
		return nil, fmt.Errorf("pass is nil")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	o := Options{IncludeGuides: presetIncludeGuides(opt.Preset), Scale: presetScale(opt.Preset)}
	if opt.IncludeGuides != nil {
		o.IncludeGuides = *opt.IncludeGuides
	}
	if opt.Scale > 0 {
		o.Scale = opt.Scale
	}
	base := opt.Base
	if base == "" {
		base = "pass-" + p.ID
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}

	var written []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		out := filepath.Join(opt.OutDir, base+"."+f)
		if err := WriteFile(out, p, o); err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

// WriteFile renders p in the format named by the extension of path.
func WriteFile(path string, p *chart.Pass, opt Options) error {
	var buf bytes.Buffer
	var err error
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "svg":
		err = WriteSVG(&buf, p, opt)
	case "png":
		err = WritePNG(&buf, p, opt)
	case "pdf":
		err = WritePDF(&buf, p, opt)
	default:
		return fmt.Errorf("unknown format: %q", ext)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"svg", "png"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"svg"}
	}
}

func presetIncludeGuides(p PresetName) bool {
	return p != PresetWeb
}

func presetScale(p PresetName) float64 {
	if p == PresetPrint {
		return 2
	}
	return 1
}
