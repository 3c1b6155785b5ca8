package doodle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for an export destination with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is a raster export format.
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	}
	return "png"
}

// FormatFromPath returns the export format matching the file extension.
// An empty path or the pipe name "-" selects PNG.
func FormatFromPath(path string) (Format, error) {
	if path == "" || path == pipeName {
		return PNG, nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	default:
		return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Export encodes the canvas in the given format. The quality is only used by JPEG.
func Export(w io.Writer, f Format, dc *gg.Context, quality int) error {
	switch f {
	case PNG:
		return dc.EncodePNG(w)
	case JPEG:
		return dc.EncodeJPEG(w, quality)
	case BMP:
		return bmp.Encode(w, dc.Image())
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

// ExportFile encodes the canvas into the file at path, with the format
// chosen by its extension. The pipe name "-" writes to the standard output.
func ExportFile(path string, dc *gg.Context, quality int) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if path == pipeName {
		return Export(os.Stdout, f, dc, quality)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Export(out, f, dc, quality); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	Logger().Info("canvas exported", "path", path, "format", f, "size", fmt.Sprintf("%dx%d", dc.Width(), dc.Height()))

	return nil
}

// ExportPNG snapshots the current engine state and encodes it as PNG.
// A blank canvas encodes to a blank image.
func (e *Engine) ExportPNG(w io.Writer, r *Renderer) error {
	dc, err := r.RenderScene(e.Scene())
	if err != nil {
		return err
	}
	defer dc.Close()

	return Export(w, PNG, dc, 0)
}
