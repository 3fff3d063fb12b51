// Command stab-analyze runs the stabilization pipeline over a directory
// of frame images and writes a JSON motion report, plus an optional HTML
// chart comparing the raw and smoothed camera paths.
//
// Frames are read in lexical filename order; PNG, JPEG, and BMP are
// supported. The tool exists for offline tuning and debugging; the
// pipeline itself is a library and has no file or CLI surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"golang.org/x/image/draw"

	"github.com/framewright/stabilize/internal/config"
	"github.com/framewright/stabilize/internal/fsutil"
	"github.com/framewright/stabilize/internal/imaging"
	"github.com/framewright/stabilize/internal/monitoring"
	"github.com/framewright/stabilize/internal/stabilize"
	"github.com/framewright/stabilize/internal/version"
)

func main() {
	framesDir := flag.String("frames", "", "directory of frame images (required)")
	configPath := flag.String("config", "", "tuning config JSON (optional)")
	outPath := flag.String("o", "motion.json", "output report path")
	chartPath := flag.String("chart", "", "optional HTML chart of raw vs smoothed path")
	method := flag.String("method", "", "override stabilization method")
	smoothness := flag.Float64("smoothness", -1, "override smoothness (sigma, frame pairs)")
	scale := flag.Int("scale", 1, "integer downsample factor applied before analysis")
	debug := flag.Bool("debug", false, "log per-pair motion diagnostics")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("stab-analyze %s\n", version.String())
		return
	}
	if *debug {
		monitoring.EnableDebug()
	}
	if *framesDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	params, err := loadParams(*configPath, *method, *smoothness)
	if err != nil {
		log.Fatalf("params: %v", err)
	}

	frames, err := loadFrames(*framesDir, *scale)
	if err != nil {
		log.Fatalf("load frames: %v", err)
	}
	log.Printf("loaded %d frames from %s", len(frames), *framesDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := stabilize.Stabilize(ctx, frames, params)
	if err != nil {
		log.Fatalf("stabilize: %v", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	if err := fsutil.EnsureDir(filepath.Dir(*outPath)); err != nil {
		log.Fatalf("output dir: %v", err)
	}
	if err := fsutil.WriteFileAtomic(*outPath, data, 0o644); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("✓ Wrote report: %s (%d frame pairs)", *outPath, result.Raw.Len())

	if *chartPath != "" {
		if err := writeChart(*chartPath, result); err != nil {
			log.Fatalf("write chart: %v", err)
		}
		log.Printf("✓ Wrote chart: %s", *chartPath)
	}
}

// loadParams resolves the tuning config and applies flag overrides.
func loadParams(path, method string, smoothness float64) (stabilize.Params, error) {
	cfg := config.EmptyTuningConfig()
	if path != "" {
		loaded, err := config.LoadTuningConfig(path)
		if err != nil {
			return stabilize.Params{}, err
		}
		cfg = loaded
	}
	params := cfg.Params()
	if method != "" {
		params.Method = method
	}
	if smoothness >= 0 {
		params.Smoothness = float32(smoothness)
	}
	return params, params.Validate()
}

// loadFrames decodes every image in dir in lexical order and converts to
// the pipeline's grayscale representation, downsampling by the given
// integer factor first.
func loadFrames(dir string, scale int) ([]*imaging.GrayImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".bmp":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no frame images in %s", dir)
	}

	frames := make([]*imaging.GrayImage, 0, len(names))
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		frames = append(frames, toGray(img, scale))
	}
	return frames, nil
}

// toGray renders a decoded image into an RGBA buffer (scaled down when
// requested) and converts it to grayscale.
func toGray(img image.Image, scale int) *imaging.GrayImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if scale > 1 {
		w /= scale
		h /= scale
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	return imaging.FromRGBA(rgba.Pix, w, h)
}
