/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gochartlabels/internal/connector"
	"gochartlabels/internal/label"
	applog "gochartlabels/internal/log"
)

// AppConfig is the user configuration persisted as YAML. Environment
// variables override it at runtime and are never written back.
//
// config_version: bump when the structure changes incompatibly.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Layout        LayoutConfig  `yaml:"layout"`
	Tooltip       TooltipConfig `yaml:"tooltip"`
	Storage       StorageConfig `yaml:"storage"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// LayoutConfig holds the series defaults and the tuning constants of the
// circular search. Documents may override the series defaults.
type LayoutConfig struct {
	ConnectorLength float64 `yaml:"connector_length"`
	Padding         float64 `yaml:"padding"`
	Curve           string  `yaml:"curve"`
	SmartLabels     bool    `yaml:"smart_labels"`
	ShowConnector   bool    `yaml:"show_connector"`

	AngleStep       float64 `yaml:"angle_step"`
	RevolutionSlack float64 `yaml:"revolution_slack"`
	PullIn          float64 `yaml:"pull_in"`
	HitchFraction   float64 `yaml:"hitch_fraction"`
	Extension       float64 `yaml:"extension"`
	ElbowLength     float64 `yaml:"elbow_length"`
}

type TooltipConfig struct {
	Nose float64 `yaml:"nose"`
}

type StorageConfig struct {
	// SnapshotDB is the sqlite file used by snapshot and verify.
	SnapshotDB string `yaml:"snapshot_db"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	d := label.DefaultSettings()
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Layout: LayoutConfig{
			ConnectorLength: d.ConnectorLength,
			Padding:         d.Padding,
			Curve:           d.Curve.String(),
			SmartLabels:     d.SmartLabels,
			ShowConnector:   d.ShowConnector,
			AngleStep:       d.AngleStep,
			RevolutionSlack: d.RevolutionSlack,
			PullIn:          d.PullIn,
			HitchFraction:   d.HitchFraction,
			Extension:       d.Extension,
			ElbowLength:     d.ElbowLength,
		},
		Tooltip: TooltipConfig{Nose: 4},
		Storage: StorageConfig{SnapshotDB: "chartlabels.db"},
	}
}

// Env var names used as overrides.
const (
	EnvLogLevel   = "GCL_LOG_LEVEL"
	EnvLogFormat  = "GCL_LOG_FORMAT"
	EnvLogSource  = "GCL_LOG_SOURCE"
	EnvLogFile    = "GCL_LOG_FILE"
	EnvAngleStep  = "GCL_ANGLE_STEP"
	EnvSmart      = "GCL_SMART_LABELS"
	EnvSnapshotDB = "GCL_SNAPSHOT_DB"
)

// ErrNoConfigDir is returned when no per-user config directory can be found.
var ErrNoConfigDir = errors.New("cannot resolve config directory")

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ChartLabels")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ChartLabels")
	default:
		home := os.Getenv("HOME")
		if home == "" {
			return "", ErrNoConfigDir
		}
		base = filepath.Join(home, ".config", "chartlabels")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config at path (the per-user path when empty), applies
// defaults and merges environment overrides. A missing file is not an error;
// a malformed one is.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applog.WithComponent("config").Debug("no config file", "path", path)
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg, data)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML to path (the per-user path when empty).
func Save(cfg AppConfig, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// mergeInto copies non-zero file values. Booleans are copied only when the
// file names them, so an absent key keeps the default.
func mergeInto(dst, src *AppConfig, raw []byte) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}

	l, s := &dst.Layout, src.Layout
	setPositive(&l.ConnectorLength, s.ConnectorLength)
	setPositive(&l.Padding, s.Padding)
	if v := strings.TrimSpace(s.Curve); v != "" {
		l.Curve = v
	}
	setPositive(&l.AngleStep, s.AngleStep)
	setPositive(&l.RevolutionSlack, s.RevolutionSlack)
	setPositive(&l.PullIn, s.PullIn)
	setPositive(&l.HitchFraction, s.HitchFraction)
	setPositive(&l.Extension, s.Extension)
	setPositive(&l.ElbowLength, s.ElbowLength)

	keys := layoutKeys(raw)
	if keys["smart_labels"] {
		l.SmartLabels = s.SmartLabels
	}
	if keys["show_connector"] {
		l.ShowConnector = s.ShowConnector
	}
	if keys["connector_length"] {
		l.ConnectorLength = s.ConnectorLength
	}
	if keys["padding"] {
		l.Padding = s.Padding
	}

	setPositive(&dst.Tooltip.Nose, src.Tooltip.Nose)
	if v := strings.TrimSpace(src.Storage.SnapshotDB); v != "" {
		dst.Storage.SnapshotDB = v
	}
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// layoutKeys lists the keys present under "layout" in the raw document.
func layoutKeys(raw []byte) map[string]bool {
	var doc struct {
		Layout map[string]yaml.Node `yaml:"layout"`
	}
	keys := map[string]bool{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return keys
	}
	for k := range doc.Layout {
		keys[k] = true
	}
	return keys
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAngleStep)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Layout.AngleStep = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSmart)); v != "" {
		cfg.Layout.SmartLabels = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapshotDB)); v != "" {
		cfg.Storage.SnapshotDB = v
	}
}

// EnvOverrideFor returns the env var name if the key is overridden by the
// environment.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"logging.level":       EnvLogLevel,
		"logging.format":      EnvLogFormat,
		"logging.source":      EnvLogSource,
		"logging.file":        EnvLogFile,
		"layout.angle_step":   EnvAngleStep,
		"layout.smart_labels": EnvSmart,
		"storage.snapshot_db": EnvSnapshotDB,
	}
	if env, ok := names[key]; ok && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

// Settings returns the series defaults described by the layout section.
func (c AppConfig) Settings() (label.Settings, error) {
	s := label.DefaultSettings()
	mode, err := connector.ParseMode(c.Layout.Curve)
	if err != nil {
		return s, err
	}
	l := c.Layout
	s.Curve = mode
	s.ConnectorLength = l.ConnectorLength
	s.Padding = l.Padding
	s.SmartLabels = l.SmartLabels
	s.ShowConnector = l.ShowConnector
	s.AngleStep = l.AngleStep
	s.RevolutionSlack = l.RevolutionSlack
	s.PullIn = l.PullIn
	s.HitchFraction = l.HitchFraction
	s.Extension = l.Extension
	s.ElbowLength = l.ElbowLength
	return s.Normalized(), nil
}
