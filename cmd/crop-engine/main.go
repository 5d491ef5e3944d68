package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	cropengine "github.com/menta2k/crop-engine"
	"github.com/menta2k/crop-engine/internal/config"
	"github.com/menta2k/crop-engine/internal/utils"
	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/render"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

func main() {
	var in, outDir, configPath string
	var mode string
	var containerW, containerH float64
	var aspect float64
	var minW, minH, maxW, maxH float64
	var pixels bool
	var defaultSize float64
	var zoom float64
	var dx, dy float64
	var ext string
	var quality int
	var lossless bool
	var preview bool
	var verbose bool

	flag.StringVar(&in, "in", "", "input image path, URL or directory (jpg/png/webp)")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&configPath, "config", "", "config file path (JSON)")

	flag.Float64Var(&containerW, "cw", 800, "container width in screen pixels")
	flag.Float64Var(&containerH, "ch", 600, "container height in screen pixels")

	flag.StringVar(&mode, "mode", "area", "restriction mode: none|stencil|area")
	flag.Float64Var(&aspect, "aspect", 0, "locked aspect ratio (width/height), 0=free")
	flag.Float64Var(&minW, "minw", 0, "minimum crop width")
	flag.Float64Var(&minH, "minh", 0, "minimum crop height")
	flag.Float64Var(&maxW, "maxw", 0, "maximum crop width, 0=unbounded")
	flag.Float64Var(&maxH, "maxh", 0, "maximum crop height, 0=unbounded")
	flag.BoolVar(&pixels, "pixels", false, "interpret min/max limits as pixels instead of percent")
	flag.Float64Var(&defaultSize, "size", 0.8, "initial crop size as a fraction of the displayable extent (0..1)")

	flag.Float64Var(&zoom, "zoom", 1.0, "zoom to apply after reset (>1 zooms in)")
	flag.Float64Var(&dx, "dx", 0, "pan the image horizontally after reset (image pixels)")
	flag.Float64Var(&dy, "dy", 0, "pan the image vertically after reset (image pixels)")

	flag.StringVar(&ext, "ext", "", "output format: jpg|png|webp (default from config)")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality (1-100, default from config)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")
	flag.BoolVar(&preview, "preview", false, "also write a preview of the widget viewport")
	flag.BoolVar(&verbose, "v", false, "verbose logging")

	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if in == "" {
		logger.Fatal().Msgf("usage: %s -in input.jpg|URL|dir [-cw 800 -ch 600] [-mode area] [-aspect 1.777] [-zoom 1.5] [-out outdir]", filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
		}
		cfg = loaded
	}

	// Flags override config only when passed explicitly.
	flagsSet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { flagsSet[f.Name] = true })

	if flagsSet["mode"] {
		cfg.Cropper.Mode = mode
	}
	if flagsSet["minw"] {
		cfg.Cropper.MinWidth = minW
	}
	if flagsSet["minh"] {
		cfg.Cropper.MinHeight = minH
	}
	if flagsSet["maxw"] {
		cfg.Cropper.MaxWidth = maxW
	}
	if flagsSet["maxh"] {
		cfg.Cropper.MaxHeight = maxH
	}
	if pixels {
		cfg.Cropper.LimitUnit = string(restrictions.UnitPixels)
	}
	if flagsSet["aspect"] {
		cfg.Cropper.AspectMin = aspect
		cfg.Cropper.AspectMax = aspect
	}
	if flagsSet["size"] {
		cfg.Cropper.DefaultSize = defaultSize
	}
	if ext != "" {
		cfg.Output.DefaultFormat = ext
	}
	if quality > 0 {
		cfg.Output.Quality = quality
	}
	if flagsSet["lossless"] {
		cfg.Output.Lossless = lossless
	}
	if flagsSet["out"] {
		cfg.Output.OutputDir = outDir
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
		logger.Fatal().Err(err).Msg("failed to create output directory")
	}

	isURL := strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://")

	inputs := []string{in}
	if info, err := os.Stat(in); err == nil && info.IsDir() {
		files, err := utils.ListImageFiles(in)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to list input directory")
		}
		if len(files) == 0 {
			logger.Fatal().Str("dir", in).Msg("no image files found")
		}
		inputs = files
	} else if !isURL && !utils.FileExists(in) {
		logger.Fatal().Str("path", in).Msg("input file does not exist")
	}

	container := geometry.Size{Width: containerW, Height: containerH}
	renderer := render.NewRenderer()

	for _, input := range inputs {
		if err := processImage(logger, renderer, cfg, input, container, zoom, dx, dy, preview); err != nil {
			logger.Error().Err(err).Str("input", input).Msg("processing failed")
		}
	}
}

func processImage(logger zerolog.Logger, renderer *render.Renderer, cfg *config.Config, input string, container geometry.Size, zoom, dx, dy float64, preview bool) error {
	img, err := renderer.LoadImageSmart(input)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	imageSize := renderer.ImageSize(img)
	logger.Debug().Float64("width", imageSize.Width).Float64("height", imageSize.Height).Msg("image loaded")

	cropper := cropengine.NewWithConfig(cropengine.Settings{
		Mode: restrictions.Mode(cfg.Cropper.Mode),
		AspectRatio: restrictions.AspectRatio{
			Minimum: cfg.Cropper.AspectMin,
			Maximum: cfg.Cropper.AspectMax,
		},
		Limits:          cfg.Limits(),
		DefaultSize:     cfg.Cropper.DefaultSize,
		AdjustStencil:   cfg.Cropper.AdjustStencil,
		FitContainer:    cfg.Cropper.FitContainer,
		WheelSpeed:      cfg.Gesture.WheelSpeed,
		MinResizeExtent: cfg.Gesture.MinResizeExtent,
	}, cropengine.Algorithms{})
	cropper.SetLogger(logger)

	if err := cropper.SetImage(imageSize); err != nil {
		return err
	}
	if err := cropper.SetContainer(container); err != nil {
		return fmt.Errorf("container %gx%g: %w", container.Width, container.Height, err)
	}

	if zoom != 1 {
		cropper.Zoom(zoom, nil)
	}
	if dx != 0 || dy != 0 {
		cropper.MoveImage(geometry.Point{Left: dx, Top: dy})
	}

	coordinates := cropper.Coordinates()
	logger.Info().
		Float64("left", coordinates.Left).
		Float64("top", coordinates.Top).
		Float64("width", coordinates.Width).
		Float64("height", coordinates.Height).
		Float64("coefficient", cropper.Coefficient()).
		Str("input", input).
		Msg("crop computed")

	cropped, err := renderer.Apply(img, coordinates)
	if err != nil {
		return fmt.Errorf("apply crop: %w", err)
	}

	outPath := utils.GenerateOutputFilename(input, cfg.Output.OutputDir, cfg.Output.Prefix, cfg.Output.Suffix, cfg.Output.DefaultFormat)
	if err := renderer.SaveImage(cropped, outPath, cfg.Output.DefaultFormat, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
		return fmt.Errorf("save crop: %w", err)
	}
	logger.Info().Str("path", outPath).Msg("crop written")

	if preview {
		view, err := renderer.Preview(img, cropper.VisibleArea(), cropper.Boundaries())
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		previewPath := utils.GenerateOutputFilename(input, cfg.Output.OutputDir, cfg.Output.Prefix, "_preview", cfg.Output.DefaultFormat)
		if err := renderer.SaveImage(view, previewPath, cfg.Output.DefaultFormat, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
			return fmt.Errorf("save preview: %w", err)
		}
		logger.Info().Str("path", previewPath).Msg("preview written")
	}

	return nil
}
