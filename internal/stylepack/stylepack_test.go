/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package stylepack

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"gochartlabels/internal/label"
	"gochartlabels/internal/textlayout"
)

const manifest = `name: corporate
styles:
  - name: headline
    font: {family: corp, size: 14, weight: 400}
    padding: 3
fonts:
  - {family: corp, weight: 400, file: fonts/regular.ttf}
`

func writePackDir(t *testing.T, m string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "fonts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fonts", "regular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(m), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return dir
}

func TestBuildOpenApply(t *testing.T) {
	dir := writePackDir(t, manifest)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	zipPath := filepath.Join(t.TempDir(), "out", "corp.zip")
	if err := Build(dir, zipPath); err != nil {
		t.Fatalf("build: %v", err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(r.File) != 2 {
		t.Fatalf("expected manifest and font only, got %d entries", len(r.File))
	}
	_ = r.Close()

	p, err := Open(zipPath)
	if err != nil {
		t.Fatalf("open pack: %v", err)
	}
	if p.Name != "corporate" || len(p.Styles) != 1 {
		t.Fatalf("manifest = %+v", p.Manifest)
	}

	lib := textlayout.NewFontLibrary()
	styles, err := p.Apply(lib)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	m := styles.Measurer(textlayout.OTProvider{Lib: lib}, "headline")
	if m.Style.Padding != 3 || m.Style.Font.Family != "corp" {
		t.Fatalf("style = %+v", m.Style)
	}
	if sz := m.Measure(label.Label{Text: "Revenue"}); sz.Empty() {
		t.Fatalf("expected a measured size")
	}
}

func TestBuildRejectsBadManifest(t *testing.T) {
	bad := map[string]string{
		"escape":   "fonts:\n  - {family: x, file: ../evil.ttf}\n",
		"nameless": "styles:\n  - {padding: 1}\n",
		"missing":  "fonts:\n  - {family: x, file: fonts/none.ttf}\n",
	}
	for name, m := range bad {
		dir := writePackDir(t, m)
		if err := Build(dir, filepath.Join(t.TempDir(), "p.zip")); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestOpenRequiresManifest(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("readme.txt")
	_, _ = w.Write([]byte("hi"))
	_ = zw.Close()
	_ = f.Close()
	if _, err := Open(zipPath); err == nil {
		t.Fatalf("expected error for pack without manifest")
	}
}
