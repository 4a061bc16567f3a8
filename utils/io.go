package utils

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the output extensions SaveImage understands.
var Formats = []string{"png", "bmp", "tiff"}

// NormalizeFormat maps an extension (with or without dot, any case) to one of Formats.
func NormalizeFormat(ext string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "png", nil
	case "bmp":
		return "bmp", nil
	case "tif", "tiff":
		return "tiff", nil
	}
	return "", fmt.Errorf("unsupported image format %q", ext)
}

func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img with the encoder matching filename's extension.
func SaveImage(img image.Image, filename string) (err error) {
	format, err := NormalizeFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	switch format {
	case "bmp":
		err = bmp.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return nil
}

// Sibling derives "<base>-<suffix>.png" next to filename.
func Sibling(filename, suffix string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "-" + suffix + ".png"
}
