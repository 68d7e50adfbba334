// Package config reads the optional effect pipeline file of the pixfx
// command.
//
// A pipeline file lists effects applied in order:
//
//	workers: 4
//	backdrop: "#FFFFFF"
//	effects:
//	  - filter: blur
//	    rect: [10, 10, 200, 80]
//	    radius: 4
//	  - filter: Highlight
//	    rect: [0, 100, 320, 120]
//	    color: "#FFFF00"
//	  - filter: pixelate
//	    rect: [40, 40, 120, 120]
//	    size: 8
//	    invert: true
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pixfx"
	"github.com/gogpu/pixfx/filter"
)

// Defaults applied by Resolve when a parameter is not set.
const (
	DefaultRadius = 4
	DefaultSize   = 8
	DefaultFactor = 2
	DefaultColor  = "#FFFF00"
	DefaultAmount = 1.0
)

// Config is the pipeline file.
type Config struct {
	Workers  int            `yaml:"workers,omitempty"`
	Backdrop string         `yaml:"backdrop,omitempty"`
	Effects  []EffectConfig `yaml:"effects"`
}

// EffectConfig is one pipeline step. Parameters that do not apply to the
// named filter are ignored.
type EffectConfig struct {
	Filter string   `yaml:"filter"`
	Rect   []int    `yaml:"rect,omitempty"`
	Invert bool     `yaml:"invert,omitempty"`
	Radius int      `yaml:"radius,omitempty"`
	Size   int      `yaml:"size,omitempty"`
	Factor int      `yaml:"factor,omitempty"`
	Color  string   `yaml:"color,omitempty"`
	Amount *float32 `yaml:"amount,omitempty"`
}

// Resolved is a validated pipeline ready to run.
type Resolved struct {
	Workers  int
	Backdrop *pixfx.Color
	Effects  []Effect
}

// Effect is a resolved pipeline step.
type Effect struct {
	Filter filter.Filter
	Rect   image.Rectangle
	Invert bool
}

// Options returns the filter.Process options of e under r.
func (r *Resolved) Options(e Effect) []filter.Option {
	opts := []filter.Option{filter.WithWorkers(r.Workers), filter.WithInvert(e.Invert)}
	if r.Backdrop != nil {
		opts = append(opts, filter.WithBackdrop(*r.Backdrop))
	}
	return opts
}

// LoadOptional reads the pipeline file at path if present. A missing file
// yields an empty configuration.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a pipeline from YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve validates cfg and fills in defaults. Effects without a rect cover
// bounds.
func Resolve(cfg *Config, bounds image.Rectangle) (*Resolved, error) {
	r := &Resolved{Workers: cfg.Workers}

	if s := strings.TrimSpace(cfg.Backdrop); s != "" {
		c, err := pixfx.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("backdrop: %w", err)
		}
		r.Backdrop = &c
	}

	for i, ec := range cfg.Effects {
		e, err := resolveEffect(ec, bounds)
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i+1, err)
		}
		r.Effects = append(r.Effects, e)
	}
	return r, nil
}

func resolveEffect(ec EffectConfig, bounds image.Rectangle) (Effect, error) {
	rect := bounds
	switch len(ec.Rect) {
	case 0:
	case 4:
		rect = image.Rect(ec.Rect[0], ec.Rect[1], ec.Rect[2], ec.Rect[3])
	default:
		return Effect{}, fmt.Errorf("rect needs 4 values, got %d", len(ec.Rect))
	}

	f, err := NewFilter(ec)
	if err != nil {
		return Effect{}, err
	}
	return Effect{Filter: f, Rect: rect, Invert: ec.Invert}, nil
}

// NewFilter builds the filter named by ec.Filter. Names are matched without
// regard to case.
func NewFilter(ec EffectConfig) (filter.Filter, error) {
	amount := float32(DefaultAmount)
	if ec.Amount != nil {
		amount = *ec.Amount
	}

	switch cases.Fold().String(strings.TrimSpace(ec.Filter)) {
	case "blur":
		return filter.NewBlur(orDefault(ec.Radius, DefaultRadius)), nil
	case "pixelate":
		return filter.NewPixelate(orDefault(ec.Size, DefaultSize)), nil
	case "highlight":
		s := ec.Color
		if s == "" {
			s = DefaultColor
		}
		c, err := pixfx.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("highlight color: %w", err)
		}
		return filter.NewHighlight(c), nil
	case "magnify":
		return filter.NewMagnify(orDefault(ec.Factor, DefaultFactor)), nil
	case "grayscale":
		return filter.Grayscale(), nil
	case "invert":
		return filter.Invert(), nil
	case "brightness":
		return filter.Brightness(amount), nil
	case "contrast":
		return filter.Contrast(amount), nil
	case "":
		return nil, errors.New("missing filter name")
	default:
		return nil, fmt.Errorf("unknown filter %q", ec.Filter)
	}
}

// ParseRect parses "x0,y0,x1,y1".
func ParseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("rect %q: want x0,y0,x1,y1", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
