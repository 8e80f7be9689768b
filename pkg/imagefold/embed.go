package imagefold

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultMaxSide is the longest edge, in pixels, of an embedded raster image.
const DefaultMaxSide = 1024

const jpegQuality = 90

// ErrUnsupportedImage is returned for files that are not a known image type.
var ErrUnsupportedImage = errors.New("unsupported image type")

var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// MimeType returns the image MIME type for a file name, based on its extension.
func MimeType(name string) (string, bool) {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	return mime, ok
}

// EmbedOptions controls image embedding.
type EmbedOptions struct {
	// MaxSide bounds the width and height of raster images. Zero means DefaultMaxSide.
	MaxSide int
}

// EmbedImage converts image bytes into a Markdown image with a data URI.
// Raster images larger than MaxSide are scaled down, preserving aspect ratio.
// SVG images are embedded as-is.
func EmbedImage(name string, data []byte, opts EmbedOptions) (string, error) {
	mime, ok := MimeType(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnsupportedImage)
	}

	alt := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	if mime == "image/svg+xml" {
		return Snippet(alt, DataURL(mime, data)), nil
	}

	maxSide := opts.MaxSide
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}

	encoded, outMime, err := fitImage(data, mime, maxSide)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return Snippet(alt, DataURL(outMime, encoded)), nil
}

// DataURL encodes data as a base64 data URI.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// fitImage scales the image down to maxSide when needed. Images already within
// bounds keep their original bytes.
func fitImage(data []byte, mime string, maxSide int) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	width, height := ScaledSize(bounds.Dx(), bounds.Dy(), maxSide)
	if width == bounds.Dx() && height == bounds.Dy() {
		return data, mime, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if mime == "image/jpeg" {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encoding jpeg: %w", err)
		}
		return buf.Bytes(), mime, nil
	}

	if err := png.Encode(&buf, dst); err != nil {
		return nil, "", fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

// ScaledSize returns the dimensions of a width x height image scaled to fit
// within a maxSide square. Smaller images are returned unchanged.
func ScaledSize(width, height, maxSide int) (int, int) {
	if width <= maxSide && height <= maxSide {
		return width, height
	}

	if width >= height {
		return maxSide, max(1, height*maxSide/width)
	}
	return max(1, width*maxSide/height), maxSide
}
