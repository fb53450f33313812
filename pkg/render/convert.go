package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Format is a raster or print format SVG can be converted to.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ErrNoConverter is returned when rsvg-convert is not installed.
var ErrNoConverter = errors.New("rsvg-convert not found; install librsvg (brew install librsvg, apt install librsvg2-bin)")

// converter is the external tool; tests point it elsewhere.
var converter = "rsvg-convert"

// Convert renders svg as format. scale multiplies the PNG resolution and
// is ignored for PDF; values <= 0 mean 1.
func Convert(ctx context.Context, svg []byte, format Format, scale float64) ([]byte, error) {
	args := []string{"-f", string(format)}
	switch format {
	case FormatPNG:
		if scale <= 0 {
			scale = 1
		}
		args = append(args, "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	case FormatPDF:
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, ErrNoConverter
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", converter, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

// ToPNG converts svg to PNG at the given scale.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return Convert(ctx, svg, FormatPNG, scale)
}

// ToPDF converts svg to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return Convert(ctx, svg, FormatPDF, 0)
}
