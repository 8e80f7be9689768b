package imagefold_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdedit/pkg/imagefold"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSnippet(t *testing.T, snippet string) image.Config {
	t.Helper()

	spans := imagefold.FindSpans(snippet)
	require.Len(t, spans, 1)

	uri := spans[0].URL(snippet)
	_, payload, ok := strings.Cut(uri, ",")
	require.True(t, ok)

	data, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg
}

func TestEmbedImage(t *testing.T) {
	t.Parallel()

	t.Run("large image is scaled down", func(t *testing.T) {
		t.Parallel()
		snippet, err := imagefold.EmbedImage("shot.png", encodePNG(t, 2048, 1024), imagefold.EmbedOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(snippet, "![shot](data:image/png;base64,"))

		cfg := decodeSnippet(t, snippet)
		assert.Equal(t, 1024, cfg.Width)
		assert.Equal(t, 512, cfg.Height)
	})

	t.Run("small image keeps bytes", func(t *testing.T) {
		t.Parallel()
		data := encodePNG(t, 10, 20)
		snippet, err := imagefold.EmbedImage("dir/tiny.PNG", data, imagefold.EmbedOptions{MaxSide: 64})
		require.NoError(t, err)
		assert.Equal(t, "![tiny]("+imagefold.DataURL("image/png", data)+")", snippet)
	})

	t.Run("svg embedded verbatim", func(t *testing.T) {
		t.Parallel()
		svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
		snippet, err := imagefold.EmbedImage("logo.svg", svg, imagefold.EmbedOptions{})
		require.NoError(t, err)
		assert.Equal(t, "![logo]("+imagefold.DataURL("image/svg+xml", svg)+")", snippet)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		_, err := imagefold.EmbedImage("notes.txt", []byte("x"), imagefold.EmbedOptions{})
		require.ErrorIs(t, err, imagefold.ErrUnsupportedImage)
	})

	t.Run("corrupt image", func(t *testing.T) {
		t.Parallel()
		_, err := imagefold.EmbedImage("broken.png", []byte("not a png"), imagefold.EmbedOptions{})
		require.Error(t, err)
	})

	t.Run("embedded image folds", func(t *testing.T) {
		t.Parallel()
		snippet, err := imagefold.EmbedImage("a.png", encodePNG(t, 4, 4), imagefold.EmbedOptions{})
		require.NoError(t, err)
		assert.Equal(t, "![a]([base64 image hidden])", imagefold.Fold(snippet))
	})
}

func TestScaledSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{name: "within bounds", width: 800, height: 600, wantW: 800, wantH: 600},
		{name: "wide", width: 4000, height: 1000, wantW: 1024, wantH: 256},
		{name: "tall", width: 1000, height: 4000, wantW: 256, wantH: 1024},
		{name: "square", width: 2048, height: 2048, wantW: 1024, wantH: 1024},
		{name: "extreme ratio keeps a pixel", width: 100000, height: 1, wantW: 1024, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h := imagefold.ScaledSize(tt.width, tt.height, imagefold.DefaultMaxSide)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestMimeType(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{
		"a.png": "image/png", "b.JPG": "image/jpeg", "c.jpeg": "image/jpeg",
		"d.gif": "image/gif", "e.webp": "image/webp", "f.svg": "image/svg+xml",
	} {
		got, ok := imagefold.MimeType(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := imagefold.MimeType("g.bmp")
	assert.False(t, ok)
}
