/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"gochartlabels/internal/chart"
	"gochartlabels/internal/config"
	"gochartlabels/internal/crash"
	applog "gochartlabels/internal/log"
	"gochartlabels/internal/stylepack"
	"gochartlabels/internal/telemetry"
	"gochartlabels/internal/textlayout"
)

// app is the state shared by every subcommand after the root pre-run.
type app struct {
	configPath string
	logLevel   string
	fonts      []string
	stylepack  string

	cfg  config.AppConfig
	opts chart.Options
	info *crash.Info
	tel  *telemetry.Client
}

func newRootCommand(info *crash.Info, tel *telemetry.Client) *cobra.Command {
	a := &app{info: info, tel: tel}
	root := &cobra.Command{
		Use:   "chartlabels",
		Short: "Place chart data labels without collisions",
		Long: `chartlabels lays out the data labels of a chart document: it chooses a
position for every label, avoids overlaps, hides what does not fit and routes
connector lines for labels moved away from their points.`,
		Example: `  chartlabels layout chart.yaml --svg preview.svg
  chartlabels layout chart.yaml --json
  chartlabels snapshot chart.yaml --db labels.db
  chartlabels verify chart.yaml --db labels.db
  chartlabels tooltip 10 5 60 20 0 0 200 100`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: per-user config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	root.PersistentFlags().StringSliceVar(&a.fonts, "font", nil, "TTF/OTF file used for the sans family; repeatable")
	root.PersistentFlags().StringVar(&a.stylepack, "stylepack", "", "zip with extra text styles and their fonts")

	root.AddCommand(newLayoutCommand(a))
	root.AddCommand(newTooltipCommand(a))
	root.AddCommand(newSnapshotCommand(a))
	root.AddCommand(newVerifyCommand(a))
	root.AddCommand(newStylesCommand(a))
	root.AddCommand(newStylepackCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	applog.Init(cfg.LogOptions())

	defaults, err := cfg.Settings()
	if err != nil {
		return fmt.Errorf("config layout section: %w", err)
	}
	a.cfg = cfg
	a.opts = chart.Options{Defaults: defaults, Nose: cfg.Tooltip.Nose}

	if len(a.fonts) > 0 || a.stylepack != "" {
		lib := textlayout.NewFontLibrary()
		for _, path := range a.fonts {
			if err := lib.LoadTTF("sans", 400, false, path); err != nil {
				return fmt.Errorf("load font %s: %w", path, err)
			}
		}
		if a.stylepack != "" {
			pack, err := stylepack.Open(a.stylepack)
			if err != nil {
				return err
			}
			if a.opts.Styles, err = pack.Apply(lib); err != nil {
				return err
			}
		}
		a.opts.Provider = textlayout.OTProvider{Lib: lib}
	}
	applog.WithComponent("cli").Debug("ready",
		slog.String("curve", defaults.Curve.String()),
		slog.Int("fonts", len(a.fonts)))
	return nil
}

// load parses the document and records it for crash reports.
func (a *app) load(path string) (*chart.Document, error) {
	if a.info != nil {
		a.info.Document = path
	}
	return chart.Load(path)
}

func newStylesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the label text styles, including those of --stylepack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.opts.Styles.Names() {
				st, _ := a.opts.Styles.Get(name)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s %gpt w%d pad %g\n",
					name, st.Font.Family, st.Font.SizePt, st.Font.Weight, st.Padding)
			}
			return nil
		},
	}
}

func newStylepackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stylepack",
		Short: "Manage style packs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "build <dir> <zip>",
		Short: "Zip a directory holding stylepack.yaml and its fonts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stylepack.Build(args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wrote", args[1])
			return nil
		},
	})
	return cmd
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
