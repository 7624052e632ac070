package render

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

// Style selects how the two half-day marks of a day are laid out.
type Style string

const (
	// StyleInline prints morning and afternoon marks side by side.
	StyleInline Style = "inline"
	// StyleVertical stacks the afternoon mark under the morning mark.
	StyleVertical Style = "vertical"
)

type Labels struct {
	Rest        string   `yaml:"rest"`
	Leave       string   `yaml:"leave"`
	BothMissing string   `yaml:"both_missing"`
	Pending     string   `yaml:"pending"`
	Check       string   `yaml:"check"`
	Cross       string   `yaml:"cross"`
	Weekdays    []string `yaml:"weekdays"`
}

// Config holds renderer-only choices; it never changes classification.
type Config struct {
	Style     Style  `yaml:"style"`
	Color     bool   `yaml:"color"`
	CellWidth int    `yaml:"cell_width"`
	Labels    Labels `yaml:"labels"`
}

func DefaultConfig() Config {
	return Config{
		Style:     StyleInline,
		Color:     true,
		CellWidth: 8,
		Labels: Labels{
			Rest:        "休",
			Leave:       "假",
			BothMissing: "缺",
			Pending:     "待",
			Check:       "✓",
			Cross:       "✕",
			Weekdays:    []string{"日", "一", "二", "三", "四", "五", "六"},
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Unset keys keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read render config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse render config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if !validator.IsInSlice(string(c.Style), []string{string(StyleInline), string(StyleVertical)}) {
		return fmt.Errorf("style must be one of: %s, %s", StyleInline, StyleVertical)
	}
	if c.CellWidth < 4 {
		return fmt.Errorf("cell_width must be at least 4")
	}
	if len(c.Labels.Weekdays) != 7 {
		return fmt.Errorf("labels.weekdays must list 7 names starting on Sunday")
	}
	return nil
}
