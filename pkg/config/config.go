// Package config handles loading and saving dsv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/dsv/config.yaml
//   - State:   ~/.local/state/dsv/ (debug log, exports)
//
// A project-local .dsv.yaml found by walking up from the working directory
// takes precedence over the XDG file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/dsv/pkg/anim"
	"github.com/vanderheijden86/dsv/pkg/layout"
	"github.com/vanderheijden86/dsv/pkg/model"
)

// AppName names the XDG subdirectories.
const AppName = "dsv"

// LayoutConfig holds node spacing for image exports and the terminal canvas.
type LayoutConfig struct {
	StepX     float64 `yaml:"step_x"`
	StepY     float64 `yaml:"step_y"`
	TopMargin float64 `yaml:"top_margin"`
	CellStepX int     `yaml:"cell_step_x"` // columns between in-order neighbours
	CellStepY int     `yaml:"cell_step_y"` // rows between levels
}

// TimingConfig holds animation cadences as Go durations ("800ms").
type TimingConfig struct {
	InsertHighlight time.Duration `yaml:"insert_highlight"`
	RemoveBusy      time.Duration `yaml:"remove_busy"`
	ClearBusy       time.Duration `yaml:"clear_busy"`
	TraversalStep   time.Duration `yaml:"traversal_step"`
	RandomLeadIn    time.Duration `yaml:"random_lead_in"`
	RandomStep      time.Duration `yaml:"random_step"`
	ListFlash       time.Duration `yaml:"list_flash"`
	ListDelete      time.Duration `yaml:"list_delete"`
}

// RandomConfig controls the random fill.
type RandomConfig struct {
	Count int    `yaml:"count"`
	Max   int    `yaml:"max"`
	Seed  uint64 `yaml:"seed,omitempty"` // 0 means seed from the clock
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultTab   string `yaml:"default_tab,omitempty"` // list, stack, queue, tree
	DefaultOrder string `yaml:"default_order,omitempty"`
}

// ExportConfig controls snapshot exports.
type ExportConfig struct {
	Dir            string   `yaml:"dir,omitempty"`
	Formats        []string `yaml:"formats,omitempty"`
	ContainerWidth float64  `yaml:"container_width,omitempty"`
}

// Config is the top-level configuration for dsv.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Timing TimingConfig `yaml:"timing"`
	Random RandomConfig `yaml:"random"`
	UI     UIConfig     `yaml:"ui,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// Tabs lists the valid ui.default_tab values in display order.
var Tabs = []string{"list", "stack", "queue", "tree"}

// ExportFormats lists the valid export.formats values.
var ExportFormats = []string{"svg", "png", "json", "md", "sqlite"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	lo := layout.DefaultOptions()
	cell := layout.CellOptions(0)
	tm := anim.DefaultTiming()
	return Config{
		Layout: LayoutConfig{
			StepX:     lo.StepX,
			StepY:     lo.StepY,
			TopMargin: lo.TopMargin,
			CellStepX: int(cell.StepX),
			CellStepY: int(cell.StepY),
		},
		Timing: TimingConfig{
			InsertHighlight: tm.InsertHighlight,
			RemoveBusy:      tm.RemoveBusy,
			ClearBusy:       tm.ClearBusy,
			TraversalStep:   tm.TraversalStep,
			RandomLeadIn:    tm.RandomLeadIn,
			RandomStep:      tm.RandomStep,
			ListFlash:       tm.ListFlash,
			ListDelete:      tm.ListDelete,
		},
		Random: RandomConfig{
			Count: 7,
			Max:   100,
		},
		UI: UIConfig{
			DefaultTab:   "tree",
			DefaultOrder: string(model.OrderIn),
		},
		Export: ExportConfig{
			Formats:        []string{"svg", "json"},
			ContainerWidth: 800,
		},
	}
}

// AnimTiming converts the timing section for the sequencer.
func (c Config) AnimTiming() anim.Timing {
	return anim.Timing{
		InsertHighlight: c.Timing.InsertHighlight,
		RemoveBusy:      c.Timing.RemoveBusy,
		ClearBusy:       c.Timing.ClearBusy,
		TraversalStep:   c.Timing.TraversalStep,
		RandomLeadIn:    c.Timing.RandomLeadIn,
		RandomStep:      c.Timing.RandomStep,
		ListFlash:       c.Timing.ListFlash,
		ListDelete:      c.Timing.ListDelete,
	}
}

// LayoutOptions returns pixel layout options centred in width.
func (c Config) LayoutOptions(width float64) layout.Options {
	return layout.Options{
		StepX:          c.Layout.StepX,
		StepY:          c.Layout.StepY,
		TopMargin:      c.Layout.TopMargin,
		ContainerWidth: width,
	}
}

// CellOptions returns terminal layout options centred in width columns.
func (c Config) CellOptions(width int) layout.Options {
	return layout.Options{
		StepX:          float64(c.Layout.CellStepX),
		StepY:          float64(c.Layout.CellStepY),
		ContainerWidth: float64(width),
	}
}

// Order returns the configured default traversal order, or inorder.
func (c Config) Order() model.Order {
	if o, err := model.ParseOrder(c.UI.DefaultOrder); err == nil {
		return o
	}
	return model.OrderIn
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.Layout.StepX <= 0 || c.Layout.StepY <= 0 {
		return fmt.Errorf("layout: step_x and step_y must be positive")
	}
	if c.Layout.CellStepX < 2 || c.Layout.CellStepY < 2 {
		return fmt.Errorf("layout: cell_step_x and cell_step_y must be at least 2")
	}
	if c.Layout.TopMargin < 0 {
		return fmt.Errorf("layout: top_margin cannot be negative")
	}
	durations := map[string]time.Duration{
		"insert_highlight": c.Timing.InsertHighlight,
		"remove_busy":      c.Timing.RemoveBusy,
		"clear_busy":       c.Timing.ClearBusy,
		"traversal_step":   c.Timing.TraversalStep,
		"random_lead_in":   c.Timing.RandomLeadIn,
		"random_step":      c.Timing.RandomStep,
		"list_flash":       c.Timing.ListFlash,
		"list_delete":      c.Timing.ListDelete,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("timing: %s cannot be negative (%s)", name, d)
		}
	}
	if c.Random.Count < 0 || c.Random.Count > 1000 {
		return fmt.Errorf("random: count must be between 0 and 1000, got %d", c.Random.Count)
	}
	if c.Random.Max <= 0 {
		return fmt.Errorf("random: max must be positive, got %d", c.Random.Max)
	}
	if c.UI.DefaultTab != "" && !contains(Tabs, c.UI.DefaultTab) {
		return fmt.Errorf("ui: invalid default_tab %q (want one of %s)", c.UI.DefaultTab, strings.Join(Tabs, ", "))
	}
	if c.UI.DefaultOrder != "" {
		if _, err := model.ParseOrder(c.UI.DefaultOrder); err != nil {
			return fmt.Errorf("ui: %w", err)
		}
	}
	seen := make(map[string]bool, len(c.Export.Formats))
	for _, f := range c.Export.Formats {
		if !contains(ExportFormats, f) {
			return fmt.Errorf("export: unknown format %q (want one of %s)", f, strings.Join(ExportFormats, ", "))
		}
		if seen[f] {
			return fmt.Errorf("export: format %q listed more than once", f)
		}
		seen[f] = true
	}
	if c.Export.ContainerWidth < 0 {
		return fmt.Errorf("export: container_width cannot be negative")
	}
	return nil
}

// ConfigDir returns the XDG config directory for dsv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// StateDir returns the XDG state directory for dsv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Keys missing from the file
// keep their defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
