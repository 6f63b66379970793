/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package stylepack bundles label text styles and the fonts they use into a
// single zip so a chart's measurement setup can be shared.
package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	applog "gochartlabels/internal/log"
	"gochartlabels/internal/textlayout"
)

// ManifestName is the manifest at the root of every pack.
const ManifestName = "stylepack.yaml"

// Manifest describes the pack contents.
type Manifest struct {
	Name   string                 `yaml:"name"`
	Styles []textlayout.TextStyle `yaml:"styles"`
	Fonts  []FontEntry            `yaml:"fonts"`
}

// FontEntry maps a font file inside the pack to a family/weight/style key.
type FontEntry struct {
	Family string `yaml:"family"`
	Weight int    `yaml:"weight"`
	Italic bool   `yaml:"italic"`
	File   string `yaml:"file"`
}

// Pack is an opened style pack with font data loaded.
type Pack struct {
	Manifest
	fonts map[string][]byte
}

func (m Manifest) validate() error {
	for i, st := range m.Styles {
		if strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("style %d has no name", i)
		}
	}
	for _, f := range m.Fonts {
		if f.Family == "" || f.File == "" {
			return fmt.Errorf("font entry %+v needs family and file", f)
		}
		if !safePath(f.File) {
			return fmt.Errorf("font file %q escapes the pack", f.File)
		}
	}
	return nil
}

// safePath rejects absolute and parent-relative names inside the archive.
func safePath(name string) bool {
	clean := path.Clean(filepath.ToSlash(name))
	return clean != ".." && !strings.HasPrefix(clean, "../") && !path.IsAbs(clean)
}

// Build zips dir into destZip. dir must hold a valid stylepack.yaml; every
// font it names is added, other files are ignored.
func Build(dir, destZip string) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "build").With(slog.String("dir", dir))
	if strings.TrimSpace(dir) == "" || strings.TrimSpace(destZip) == "" {
		return errors.New("source dir and destination zip are required")
	}
	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destZip), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	zf, err := os.Create(destZip)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)

	add := func(name string, r io.Reader) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, r)
		return err
	}
	if err := add(ManifestName, strings.NewReader(string(raw))); err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	for _, f := range m.Fonts {
		src, err := os.Open(filepath.Join(dir, filepath.FromSlash(f.File)))
		if err != nil {
			return fmt.Errorf("open font: %w", err)
		}
		err = add(path.Clean(filepath.ToSlash(f.File)), src)
		_ = src.Close()
		if err != nil {
			return fmt.Errorf("add font %s: %w", f.File, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	l.Info("style pack built", slog.Int("styles", len(m.Styles)), slog.Int("fonts", len(m.Fonts)), slog.String("zip", destZip))
	return nil
}

// Open reads a pack and loads the fonts named by its manifest.
func Open(zipPath string) (*Pack, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "open").With(slog.String("zip", zipPath))
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	files := map[string]*zip.File{}
	for _, f := range r.File {
		files[path.Clean(f.Name)] = f
	}
	mf, ok := files[ManifestName]
	if !ok {
		return nil, fmt.Errorf("pack %s has no %s", zipPath, ManifestName)
	}
	raw, err := readAll(mf)
	if err != nil {
		return nil, err
	}
	p := &Pack{fonts: map[string][]byte{}}
	if err := yaml.Unmarshal(raw, &p.Manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	for _, fe := range p.Fonts {
		name := path.Clean(filepath.ToSlash(fe.File))
		f, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("font %s missing from pack", fe.File)
		}
		if p.fonts[name], err = readAll(f); err != nil {
			return nil, err
		}
	}
	l.Debug("style pack opened", slog.String("name", p.Name), slog.Int("styles", len(p.Styles)))
	return p, nil
}

func readAll(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}

// Apply registers the pack fonts in lib and returns the pack styles keyed by
// name.
func (p *Pack) Apply(lib *textlayout.FontLibrary) (textlayout.Styles, error) {
	for _, fe := range p.Fonts {
		weight := fe.Weight
		if weight == 0 {
			weight = 400
		}
		if err := lib.Add(fe.Family, weight, fe.Italic, p.fonts[path.Clean(filepath.ToSlash(fe.File))]); err != nil {
			return nil, fmt.Errorf("font %s: %w", fe.File, err)
		}
	}
	styles := make(textlayout.Styles, len(p.Styles))
	for _, st := range p.Styles {
		styles[st.Name] = st
	}
	return styles, nil
}
