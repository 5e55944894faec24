// Package synth is the bundled capture collaborator: it renders proxy
// geometry for each sampled frame and writes a WebP image and a JSON
// annotation next to it.
package synth

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"face-synth/internal/background"
	"face-synth/internal/capture"
	"face-synth/internal/postprocess"
	"face-synth/internal/raster"

	"github.com/HugoSmits86/nativewebp"
	"github.com/rs/zerolog"
)

// Writer implements capture.Saver.
type Writer struct {
	plates *background.Cache
	light  raster.LightConfig
	logger zerolog.Logger

	mu      sync.Mutex
	entries []ManifestEntry
}

var _ capture.Saver = (*Writer)(nil)

// NewWriter returns a Writer compositing over plates. plates may be nil.
func NewWriter(plates *background.Cache, logger zerolog.Logger) *Writer {
	return &Writer{
		plates: plates,
		light:  raster.DefaultLightConfig(),
		logger: logger,
	}
}

// Save writes <name>.webp when req.SaveImage and <name>.json when
// req.SaveData into req.OutputFolder, creating it if needed.
func (w *Writer) Save(req capture.Request) error {
	if !req.SaveImage && !req.SaveData {
		return nil
	}
	if err := os.MkdirAll(req.OutputFolder, 0755); err != nil {
		return fmt.Errorf("synth: create %s: %w", req.OutputFolder, err)
	}

	entry := ManifestEntry{Iteration: req.Iteration, Frame: req.Frame, Name: req.Filename}

	if req.SaveImage {
		name := req.Filename + ".webp"
		if err := encodeWebP(filepath.Join(req.OutputFolder, name), w.render(req)); err != nil {
			return err
		}
		entry.Image = name
	}

	if req.SaveData {
		name := req.Filename + ".json"
		data, err := json.MarshalIndent(Annotate(req), "", "  ")
		if err != nil {
			return fmt.Errorf("synth: marshal %s: %w", name, err)
		}
		path := filepath.Join(req.OutputFolder, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("synth: write %s: %w", path, err)
		}
		entry.Data = name
	}

	w.mu.Lock()
	w.entries = append(w.entries, entry)
	w.mu.Unlock()

	w.logger.Debug().Str("name", req.Filename).Bool("image", entry.Image != "").Bool("data", entry.Data != "").Msg("Frame written")
	return nil
}

// render draws req at Quality times the output size and filters it down.
func (w *Writer) render(req capture.Request) *image.NRGBA {
	q := req.Quality
	if q < 1 {
		q = 1
	}
	rw, rh := req.Width*q, req.Height*q

	var plate *image.NRGBA
	if w.plates != nil {
		plate = w.plates.Plate(req.Iteration, rw, rh)
	}

	img := Render(req.Snapshot, rw, rh, plate, &w.light)
	if q > 1 {
		img = postprocess.Downsample(img, req.Width, req.Height)
	}
	return img
}

// Manifest returns a copy of the entries written so far.
func (w *Writer) Manifest() []ManifestEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]ManifestEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

func encodeWebP(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("synth: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("synth: close %s: %w", path, cerr)
		}
	}()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("synth: WebP encode %s: %w", path, err)
	}
	return nil
}
