// Command pixfx applies annotation effects to an image file.
//
// A single effect is given with flags:
//
//	pixfx -in shot.png -out out.png -filter blur -rect 10,10,200,80 -radius 4
//
// A pipeline of effects is read from a YAML file:
//
//	pixfx -in shot.png -out out.png -config effects.yaml -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/pixfx"
	"github.com/gogpu/pixfx/cmd/pixfx/internal/config"
	"github.com/gogpu/pixfx/filter"
	"github.com/gogpu/pixfx/internal/imageio"
	"github.com/gogpu/pixfx/surface"
)

type flags struct {
	in, out    string
	configPath string
	quality    int
	verbose    bool

	workers  int
	backdrop string
	effect   config.EffectConfig
	rect     string
	amount   float64
}

func main() {
	var f flags
	flag.StringVar(&f.in, "in", "", "input image file")
	flag.StringVar(&f.out, "out", "out.png", "output image file")
	flag.StringVar(&f.configPath, "config", "", "effect pipeline file (YAML)")
	flag.IntVar(&f.quality, "quality", imageio.DefaultJPEGQuality, "JPEG quality (1-100)")
	flag.BoolVar(&f.verbose, "v", false, "verbose logging")
	flag.IntVar(&f.workers, "workers", 0, "parallel chunks per filter (0 = one per CPU)")
	flag.StringVar(&f.backdrop, "backdrop", "", "blend translucent pixels over this color before filtering")
	flag.StringVar(&f.effect.Filter, "filter", "blur", "blur, pixelate, highlight, magnify, grayscale, invert, brightness or contrast")
	flag.StringVar(&f.rect, "rect", "", "target rectangle x0,y0,x1,y1 (default: whole image)")
	flag.BoolVar(&f.effect.Invert, "invert", false, "apply outside the rectangle")
	flag.IntVar(&f.effect.Radius, "radius", config.DefaultRadius, "blur radius")
	flag.IntVar(&f.effect.Size, "size", config.DefaultSize, "pixelation block size")
	flag.IntVar(&f.effect.Factor, "factor", config.DefaultFactor, "magnification factor")
	flag.StringVar(&f.effect.Color, "color", config.DefaultColor, "highlight color (#RGB, #RRGGBB or #RRGGBBAA)")
	flag.Float64Var(&f.amount, "amount", config.DefaultAmount, "brightness or contrast factor")
	flag.Parse()

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	pixfx.SetLogger(logger)

	if err := run(f, logger); err != nil {
		logger.Error("pixfx failed", "err", err)
		os.Exit(1)
	}
}

func run(f flags, logger *slog.Logger) error {
	if f.in == "" {
		return errors.New("missing -in")
	}

	img, format, err := imageio.Load(f.in)
	if err != nil {
		return err
	}
	defer func() { _ = img.Close() }()
	logger.Info("loaded image", "path", f.in, "format", format, "bounds", img.Bounds(), "layout", img.Layout())

	cfg, err := pipeline(f)
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(cfg, img.Bounds())
	if err != nil {
		return err
	}

	canvas := surface.NewCanvas(img)
	defer func() { _ = canvas.Close() }()

	for _, e := range resolved.Effects {
		buf, err := filter.Process(canvas, img, e.Rect, e.Filter, resolved.Options(e)...)
		if err != nil {
			return fmt.Errorf("%s %v: %w", e.Filter.Name(), e.Rect, err)
		}
		if buf != nil {
			_ = buf.Close()
		}
		logger.Info("applied", "filter", e.Filter.Name(), "rect", e.Rect, "invert", e.Invert)
	}

	if err := imageio.Save(f.out, img, f.quality); err != nil {
		return err
	}
	logger.Info("saved image", "path", f.out)
	return nil
}

// pipeline returns the configured effects: the pipeline file when -config is
// set, otherwise the single effect described by the flags.
func pipeline(f flags) (*config.Config, error) {
	if f.configPath != "" {
		cfg, err := config.LoadOptional(f.configPath)
		if err != nil {
			return nil, err
		}
		if len(cfg.Effects) == 0 {
			return nil, fmt.Errorf("%s: no effects", f.configPath)
		}
		if f.workers != 0 {
			cfg.Workers = f.workers
		}
		return cfg, nil
	}

	e := f.effect
	if f.rect != "" {
		r, err := config.ParseRect(f.rect)
		if err != nil {
			return nil, err
		}
		e.Rect = []int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
	}
	amount := float32(f.amount)
	e.Amount = &amount

	return &config.Config{
		Workers:  f.workers,
		Backdrop: f.backdrop,
		Effects:  []config.EffectConfig{e},
	}, nil
}
