// Command crtdemo applies a CRT filter pipeline to an image on the CPU.
//
// Usage:
//
//	crtdemo -in photo.jpg -out crt.png -preset arcade.toml
//	crtdemo -arcade -out pattern.png
//	crtdemo -list
//
// Without -in a color-bar test pattern is rendered.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/software"
)

type config struct {
	in      string
	out     string
	preset  string
	arcade  bool
	only    string
	scale   float64
	width   int
	height  int
	workers int
	dump    string
}

func main() {
	var (
		cfg     config
		list    = flag.Bool("list", false, "list stages and their options, then exit")
		verbose = flag.Bool("v", false, "log pipeline construction")
	)
	flag.StringVar(&cfg.in, "in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
	flag.StringVar(&cfg.out, "out", "crt.png", "output PNG file")
	flag.StringVar(&cfg.preset, "preset", "", "preset file (.toml, .yaml)")
	flag.BoolVar(&cfg.arcade, "arcade", false, "use the built-in arcade preset")
	flag.StringVar(&cfg.only, "only", "", "comma-separated stages to keep, e.g. scanlines,bloom")
	flag.Float64Var(&cfg.scale, "scale", 1, "resize the input by this factor first")
	flag.IntVar(&cfg.width, "width", 640, "test pattern width")
	flag.IntVar(&cfg.height, "height", 480, "test pattern height")
	flag.IntVar(&cfg.workers, "workers", 0, "goroutines per stage (0 = one per CPU)")
	flag.StringVar(&cfg.dump, "dump", "", "write the generated WGSL of every stage to this directory")
	flag.Parse()

	if *verbose {
		crt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *list {
		listTunables(os.Stdout)
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("crtdemo: %v", err)
	}
	log.Printf("Saved %s\n", cfg.out)
}

func run(cfg config) error {
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}

	pipeline, err := crt.NewPipeline(opts)
	if err != nil {
		return err
	}

	if cfg.dump != "" {
		if err := dumpShaders(pipeline, cfg.dump); err != nil {
			return err
		}
	}

	src, err := loadInput(cfg)
	if err != nil {
		return err
	}

	in := software.FromImage(src)
	out := software.NewImage(in.Width, in.Height)
	renderer := software.NewRenderer(software.WithWorkers(cfg.workers))
	if err := pipeline.Apply(renderer, in, out); err != nil {
		return err
	}
	log.Printf("Applied %d stages to %dx%d image\n", pipeline.Len(), in.Width, in.Height)

	return savePNG(cfg.out, out.ToRGBA())
}

func pipelineOptions(cfg config) (crt.PipelineOptions, error) {
	var opts crt.PipelineOptions
	switch {
	case cfg.preset != "" && cfg.arcade:
		return opts, fmt.Errorf("-preset and -arcade are mutually exclusive")
	case cfg.preset != "":
		var err error
		if opts, err = crt.LoadPreset(cfg.preset); err != nil {
			return opts, err
		}
	case cfg.arcade:
		opts = crt.ArcadePreset()
	}

	if cfg.only == "" {
		return opts, nil
	}
	keep := make(map[crt.Kind]bool)
	for _, name := range strings.Split(cfg.only, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := crt.ParseKind(name)
		if err != nil {
			return opts, err
		}
		keep[k] = true
	}
	if len(keep) == 0 {
		return opts, fmt.Errorf("-only %q names no stage", cfg.only)
	}
	for _, k := range crt.Kinds() {
		if !keep[k] {
			opts.SetEnabled(k, false)
		}
	}
	return opts, nil
}

func loadInput(cfg config) (image.Image, error) {
	var src image.Image
	if cfg.in == "" {
		src = testPattern(cfg.width, cfg.height)
	} else {
		f, err := os.Open(cfg.in)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, format, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", cfg.in, err)
		}
		crt.Logger().Debug("decoded input", "path", cfg.in, "format", format)
		src = img
	}

	if cfg.scale <= 0 || cfg.scale == 1 {
		return src, nil
	}
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*cfg.scale))
	h := max(1, int(float64(b.Dy())*cfg.scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// testPattern draws vertical color bars over a dark-to-light gradient strip.
func testPattern(w, h int) *image.RGBA {
	bars := []color.RGBA{
		{192, 192, 192, 255},
		{192, 192, 0, 255},
		{0, 192, 192, 255},
		{0, 192, 0, 255},
		{192, 0, 192, 255},
		{192, 0, 0, 255},
		{0, 0, 192, 255},
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	split := h * 3 / 4
	for x := range w {
		bar := bars[x*len(bars)/w]
		ramp := uint8(x * 255 / max(w-1, 1))
		for y := range h {
			if y < split {
				img.SetRGBA(x, y, bar)
			} else {
				img.SetRGBA(x, y, color.RGBA{ramp, ramp, ramp, 255})
			}
		}
	}
	return img
}

func dumpShaders(p *crt.Pipeline, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range p.Filters() {
		path := filepath.Join(dir, f.Kind().String()+".wgsl")
		if err := os.WriteFile(path, []byte(f.Program().Source()), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func listTunables(w io.Writer) {
	title := cases.Title(language.English)
	for _, k := range crt.Kinds() {
		fmt.Fprintf(w, "%s [%s]\n", title.String(strings.ReplaceAll(k.String(), "-", " ")), k.Key())
		for _, t := range crt.Tunables(k) {
			note := ""
			if t.Structural {
				note = " (structural)"
			}
			fmt.Fprintf(w, "  %-18s %-5s default %-6g range %g..%g%s\n", t.Key, t.Type, t.Default, t.Min, t.Max, note)
			fmt.Fprintf(w, "  %-18s %s\n", "", t.Doc)
		}
	}
}
