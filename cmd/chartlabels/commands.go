/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/export"
	"gochartlabels/internal/storage"
	"gochartlabels/internal/tooltip"
	"gochartlabels/internal/vector"
	"gochartlabels/internal/version"
)

// errDrift makes verify exit non-zero without printing usage.
var errDrift = errors.New("layout differs from snapshot")

func newLayoutCommand(a *app) *cobra.Command {
	var svgOut, pngOut, pdfOut string
	var asJSON, guides, showHidden bool
	var scale float64

	cmd := &cobra.Command{
		Use:   "layout <document>",
		Short: "Run one layout pass and print or export the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			pass, err := chart.Layout(cmd.Context(), doc, a.opts)
			if err != nil {
				return err
			}
			a.tel.Report(pass, time.Since(start))
			defer a.flushTelemetry(cmd.Context())

			opt := export.Options{IncludeGuides: guides, Scale: scale, ShowHidden: showHidden}
			var written []string
			for _, out := range []string{svgOut, pngOut, pdfOut} {
				if out == "" {
					continue
				}
				if err := export.WriteFile(out, pass, opt); err != nil {
					return err
				}
				written = append(written, out)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(pass)
			}
			_, _ = fmt.Fprintf(w, "pass %s  canvas %gx%g\n", pass.ID, pass.Canvas.W, pass.Canvas.H)
			for _, st := range pass.Stats() {
				_, _ = fmt.Fprintf(w, "  %-16s labels %3d  visible %3d  hidden %3d\n", st.Series, st.Labels, st.Visible, st.Hidden)
			}
			for _, t := range pass.Tooltips {
				_, _ = fmt.Fprintf(w, "  tooltip %q at (%g,%g) %s\n", t.Text, t.Position.X, t.Position.Y, t.Orientation)
			}
			if len(written) > 0 {
				_, _ = fmt.Fprintf(w, "wrote %s\n", joinNonEmpty(written...))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&svgOut, "svg", "", "write an SVG preview to this file")
	cmd.Flags().StringVar(&pngOut, "png", "", "write a PNG preview to this file")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "write a PDF preview to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pass as JSON")
	cmd.Flags().BoolVar(&guides, "guides", false, "draw the plot area and occupied rectangles")
	cmd.Flags().BoolVar(&showHidden, "show-hidden", false, "outline hidden labels in the SVG preview")
	cmd.Flags().Float64Var(&scale, "scale", 1, "pixels per layout unit for PNG and SVG")
	return cmd
}

func newTooltipCommand(a *app) *cobra.Command {
	var nose float64
	cmd := &cobra.Command{
		Use:   "tooltip <x> <y> <width> <height> <clipX> <clipY> <clipW> <clipH>",
		Short: "Align a tooltip box at an anchor inside a clip rectangle",
		Args:  cobra.ExactArgs(8),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("nose") {
				nose = a.cfg.Tooltip.Nose
			}
			pos, o := tooltip.Aligner{Nose: nose}.Align(
				vector.Pt{X: v[0], Y: v[1]},
				vector.Size{W: v[2], H: v[3]},
				vector.R(v[4], v[5], v[6], v[7]))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%g %g %s\n", pos.X, pos.Y, o)
			return nil
		},
	}
	cmd.Flags().Float64Var(&nose, "nose", tooltip.DefaultNose, "gap between anchor and box")
	return cmd
}

func newSnapshotCommand(a *app) *cobra.Command {
	var dbPath string
	var keep int
	cmd := &cobra.Command{
		Use:   "snapshot <document>",
		Short: "Store the layout of a document for later verification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, pass, store, err := a.passWithStore(cmd.Context(), args[0], dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.Save(cmd.Context(), doc.Digest, pass)
			if err != nil {
				return err
			}
			if keep > 0 {
				if _, err := store.Prune(cmd.Context(), doc.Digest, keep); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "snapshot %d  pass %s  visible %d  hidden %d  %s\n",
				snap.ID, snap.PassID, snap.Visible, snap.Hidden, store.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "snapshot database (default from config)")
	cmd.Flags().IntVar(&keep, "keep", 0, "keep only the newest N snapshots of this document")
	return cmd
}

func newVerifyCommand(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "verify <document>",
		Short: "Re-run the layout and compare it with the newest snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, pass, store, err := a.passWithStore(cmd.Context(), args[0], dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			v, err := store.Verify(cmd.Context(), doc.Digest, pass)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if v.Match {
				_, _ = fmt.Fprintf(w, "ok  pass %s matches snapshot %d\n", pass.ID, v.Stored.ID)
				return nil
			}
			_, _ = fmt.Fprintf(w, "DRIFT  pass %s differs from snapshot %d in: %s\n",
				pass.ID, v.Stored.ID, strings.Join(v.Differ, ", "))
			return errDrift
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "snapshot database (default from config)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "chartlabels", version.String())
			return nil
		},
	}
}

func (a *app) passWithStore(ctx context.Context, path, dbPath string) (*chart.Document, *chart.Pass, *storage.Store, error) {
	doc, err := a.load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	pass, err := chart.Layout(ctx, doc, a.opts)
	if err != nil {
		return nil, nil, nil, err
	}
	if dbPath == "" {
		dbPath = a.cfg.Storage.SnapshotDB
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, pass, store, nil
}

func (a *app) flushTelemetry(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	a.tel.Flush(ctx)
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
