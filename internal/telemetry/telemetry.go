/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry is an opt-in reporter for layout pass statistics and
// crash reports. It sends counts only, never label text or document paths.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"gochartlabels/internal/chart"
	applog "gochartlabels/internal/log"
	"gochartlabels/internal/version"
)

// Config is read from the environment by FromEnv:
//
//	GCL_TELEMETRY_OPT_IN       1, true, yes or on enables reporting
//	GCL_TELEMETRY_URL          endpoint receiving JSON pass events
//	GCL_CRASH_UPLOAD_URL       endpoint receiving plain-text crash reports
//	GCL_TELEMETRY_TIMEOUT_MS   request timeout, default 1500
//
// Without a URL nothing is sent, even when opted in.
type Config struct {
	OptIn     bool
	EventsURL string
	CrashURL  string
	Timeout   time.Duration
}

func FromEnv() Config {
	cfg := Config{
		OptIn:     parseBool(os.Getenv("GCL_TELEMETRY_OPT_IN")),
		EventsURL: strings.TrimSpace(os.Getenv("GCL_TELEMETRY_URL")),
		CrashURL:  strings.TrimSpace(os.Getenv("GCL_CRASH_UPLOAD_URL")),
		Timeout:   1500 * time.Millisecond,
	}
	if ms := strings.TrimSpace(os.Getenv("GCL_TELEMETRY_TIMEOUT_MS")); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil && v > 0 {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// SeriesCount is the per-series part of a pass event.
type SeriesCount struct {
	Category string `json:"category"`
	Labels   int    `json:"labels"`
	Visible  int    `json:"visible"`
	Hidden   int    `json:"hidden"`
}

// PassEvent is the JSON body posted for one layout pass.
type PassEvent struct {
	Name      string        `json:"name"`
	TS        string        `json:"ts"`
	Version   string        `json:"version"`
	OS        string        `json:"os"`
	Arch      string        `json:"arch"`
	Pass      string        `json:"pass"`
	ElapsedMS int64         `json:"elapsedMs"`
	Series    []SeriesCount `json:"series"`
}

// Client queues events and sends them from one goroutine. A full queue drops
// events; Report never blocks the caller.
type Client struct {
	cfg     Config
	log     *slog.Logger
	cli     *http.Client
	q       chan PassEvent
	pending sync.WaitGroup
	once    sync.Once
	closed  chan struct{}
}

func New(cfg Config) *Client {
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		cli:    &http.Client{Timeout: cfg.Timeout},
		q:      make(chan PassEvent, 64),
		closed: make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether pass events will be sent.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Report queues the statistics of a finished pass.
func (c *Client) Report(p *chart.Pass, elapsed time.Duration) {
	if !c.Enabled() || p == nil {
		return
	}
	ev := PassEvent{
		Name:      "layout",
		TS:        time.Now().UTC().Format(time.RFC3339Nano),
		Version:   version.String(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Pass:      p.ID,
		ElapsedMS: elapsed.Milliseconds(),
		Series: lo.Map(p.Stats(), func(st chart.Stats, i int) SeriesCount {
			return SeriesCount{Category: p.Series[i].Category, Labels: st.Labels, Visible: st.Visible, Hidden: st.Hidden}
		}),
	}
	c.pending.Add(1)
	select {
	case c.q <- ev:
	default:
		c.pending.Done()
		c.log.Debug("telemetry queue full, event dropped")
	}
}

// Flush waits until every queued event was attempted or ctx ends.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close stops the sender goroutine; queued events are dropped.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.closed) })
}

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			return
		case ev := <-c.q:
			if err := c.post(c.cfg.EventsURL, "application/json", ev); err != nil {
				c.log.Debug("telemetry send failed", slog.Any("err", err))
			}
			c.pending.Done()
		}
	}
}

func (c *Client) post(url, contentType string, body any) error {
	var buf []byte
	switch b := body.(type) {
	case []byte:
		buf = b
	default:
		var err error
		if buf, err = json.Marshal(b); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// UploadCrash posts a crash report when opted in. It blocks for at most the
// client timeout because the process exits right after.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	if err := c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", report); err != nil {
		c.log.Debug("crash upload failed", slog.Any("err", err))
	}
}
