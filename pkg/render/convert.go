package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrNoConverter is returned when rsvg-convert is not on PATH.
var ErrNoConverter = errors.New("rsvg-convert not found: install librsvg (brew install librsvg, apt install librsvg2-bin)")

// converterBin is the external tool used for raster and PDF output.
var converterBin = "rsvg-convert"

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2 doubles the pixel
// dimensions; values <= 0 are treated as 1.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func convert(svg []byte, format string, args ...string) ([]byte, error) {
	if len(svg) == 0 {
		return nil, fmt.Errorf("%s export: empty svg", format)
	}
	bin, err := exec.LookPath(converterBin)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", format, ErrNoConverter)
	}

	cmd := exec.Command(bin, append([]string{"-f", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s export: %v: %s", format, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
