/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a crash report file and a
// non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	applog "gochartlabels/internal/log"
	"gochartlabels/internal/version"
)

// exitFn lets tests observe Recover without terminating the process.
var exitFn = os.Exit

// Info describes the run that crashed. A nil Info writes to the temp dir.
type Info struct {
	// Dir receives the report; empty means os.TempDir().
	Dir string
	// Document is the chart document being processed, kept so the crash can
	// be reproduced.
	Document string
	Args     []string
	// Upload, when set, receives the report text after it was written.
	Upload func(report []byte)
}

// Recover captures a panic, logs it with its stack, writes a crash report
// and exits with code 2.
//
// Usage: defer crash.Recover(info)
func Recover(info *Info) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, report, err := writeReport(info, r, stack)
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err))
	}
	if info != nil && info.Upload != nil {
		info.Upload(report)
	}
	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func writeReport(info *Info, panicVal any, stack []byte) (string, []byte, error) {
	dir := os.TempDir()
	if info != nil && info.Dir != "" {
		dir = info.Dir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", nil, fmt.Errorf("create crash dir: %w", err)
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("chartlabels-crash-%s.log", time.Now().Format("20060102-150405.000")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "chartlabels crash report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if info != nil {
		if info.Document != "" {
			fmt.Fprintf(&buf, "Document: %s\n", info.Document)
		}
		if len(info.Args) > 0 {
			fmt.Fprintf(&buf, "Args: %s\n", strings.Join(info.Args, " "))
		}
	}
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, buf.Bytes(), fmt.Errorf("write crash report: %w", err)
	}
	return path, buf.Bytes(), nil
}
