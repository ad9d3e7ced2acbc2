// Command crispfontbuild renders a family/style/weight across a list of
// sizes into a metrics blob and a wide atlas image per size (spec §6).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/crispfont"
	"github.com/gogpu/crispfont/builder"
	"github.com/gogpu/crispfont/imagecodec"
	"github.com/gogpu/crispfont/rasterhost"
)

func main() {
	var (
		density     = flag.Float64("density", 1, "pixel density (CSS px to physical px multiplier)")
		family      = flag.String("family", "Go Regular", "font family name")
		style       = flag.String("style", "normal", "font style: normal, italic, oblique")
		weight      = flag.String("weight", "normal", "font weight: normal, bold, or 100..900")
		sizes       = flag.String("sizes", "16", "comma-separated list of sizes in CSS px")
		corrections = flag.String("corrections", "", "path to a corrections YAML spec (optional)")
		fontPath    = flag.String("font", "", "path to a TTF/OTF for the reference rasteriser (empty uses the embedded Go Regular face)")
		out         = flag.String("out", "font-assets", "output directory")
	)
	flag.Parse()

	if err := run(*density, *family, *style, *weight, *sizes, *corrections, *fontPath, *out); err != nil {
		log.Fatalf("crispfontbuild: %v", err)
	}
}

func run(density float64, family, style, weight, sizesFlag, correctionsPath, fontPath, out string) error {
	sizeList, err := parseSizes(sizesFlag)
	if err != nil {
		return err
	}

	rasterizer, err := loadRasterizer(fontPath)
	if err != nil {
		return err
	}

	spec, err := loadCorrections(correctionsPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	b := builder.New(rasterizer, spec)
	codec := imagecodec.PNGCodec{}

	for _, size := range sizeList {
		id := crispfont.FontIdentity{
			PixelDensity: density,
			Family:       family,
			Style:        crispfont.Style(style),
			Weight:       crispfont.Weight(weight),
			Size:         size,
		}
		if err := id.Validate(); err != nil {
			return fmt.Errorf("size %g: %w", size, err)
		}

		result, err := b.Build(id)
		if err != nil {
			return fmt.Errorf("build %s: %w", id.String(), err)
		}

		minified, err := crispfont.MinifyWithVerification(result.Metrics)
		if err != nil {
			return fmt.Errorf("minify %s: %w", id.String(), err)
		}

		metricsJSON, err := json.Marshal(minified)
		if err != nil {
			return fmt.Errorf("encode metrics %s: %w", id.String(), err)
		}
		metricsFile := filepath.Join(out, "metrics-"+id.String()+".js")
		if err := os.WriteFile(metricsFile, metricsJSON, 0o644); err != nil {
			return fmt.Errorf("write metrics %s: %w", id.String(), err)
		}

		atlasPNG, err := codec.Encode(result.WideAtlas.Pix())
		if err != nil {
			return fmt.Errorf("encode atlas %s: %w", id.String(), err)
		}
		atlasFile := filepath.Join(out, "atlas-"+id.String()+".png")
		if err := os.WriteFile(atlasFile, atlasPNG, 0o644); err != nil {
			return fmt.Errorf("write atlas %s: %w", id.String(), err)
		}

		log.Printf("built %s: %d glyphs -> %s, %s", id.String(), len(result.Glyphs), metricsFile, atlasFile)
	}

	return nil
}

func parseSizes(flagValue string) ([]float64, error) {
	parts := strings.Split(flagValue, ",")
	sizes := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", p, err)
		}
		sizes = append(sizes, v)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("-sizes produced no values")
	}
	return sizes, nil
}

func loadRasterizer(fontPath string) (*rasterhost.OpenTypeRasterizer, error) {
	if fontPath == "" {
		return rasterhost.NewDefaultRasterizer(), nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fontPath, err)
	}
	r, err := rasterhost.NewOpenTypeRasterizer(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontPath, err)
	}
	return r, nil
}

func loadCorrections(path string) (builder.CorrectionsSpec, error) {
	if path == "" {
		return builder.CorrectionsSpec{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return builder.CorrectionsSpec{}, fmt.Errorf("read corrections %s: %w", path, err)
	}
	return builder.LoadCorrections(data)
}
