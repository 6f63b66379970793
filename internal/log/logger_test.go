/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func lastJSONLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	sc := bufio.NewScanner(bytes.NewReader(b))
	var last string
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	return m
}

// TestInitFileSink checks the rotated JSON sink carries static and
// contextual attributes.
func TestInitFileSink(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "chartlabels.json")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "json", File: fpath, Output: &console})
	t.Cleanup(func() { Init(Options{Output: &bytes.Buffer{}}) })

	l := WithOperation(WithComponent("circular"), "place")
	l.InfoContext(WithPass(context.Background(), "p1"), "pass done", slog.Int("visible", 3))

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	m := lastJSONLine(t, b)
	if m["app"] != "chartlabels" {
		t.Fatalf("missing app attr: %v", m["app"])
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr")
	}
	if m["component"] != "circular" || m["op"] != "place" {
		t.Fatalf("context attrs mismatch: %v", m)
	}
	if m["pass"] != "p1" {
		t.Fatalf("pass id not enriched: %v", m["pass"])
	}
	if m["visible"] != float64(3) {
		t.Fatalf("record attr missing: %v", m["visible"])
	}
	if c := lastJSONLine(t, console.Bytes()); c["msg"] != "pass done" {
		t.Fatalf("console sink missed the record: %v", c)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(Options{Output: &bytes.Buffer{}}) })

	L().Info("quiet")
	L().Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Fatalf("unexpected filtering: %q", out)
	}
	if !strings.Contains(out, "WRN") || !strings.Contains(out, "app=chartlabels") {
		t.Fatalf("console format mismatch: %q", out)
	}
}
