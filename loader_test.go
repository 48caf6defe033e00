package bramble

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS(t *testing.T) fstest.MapFS {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 9, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	tga := tgaSpec{
		imageType: tgaTrueColor, width: 1, height: 1, depth: 24,
		pixels: []byte{0, 0, 0xFF},
	}
	return fstest.MapFS{
		"atlas.json":    {Data: []byte(singlePageJSON)},
		"hello.txt":     {Data: []byte("hello")},
		"pages/0.png":   {Data: buf.Bytes()},
		"pages/1.TGA":   {Data: tga.bytes()},
		"broken.tga":    {Data: []byte{1, 2, 3}},
		"fonts/ui.json": {Data: []byte(testFontJSON)},
	}
}

func TestLoader_ResolvesOnlyOnPoll(t *testing.T) {
	l := NewLoader(testFS(t))
	f := l.LoadText("hello.txt")
	var got string
	f.Then(func(s string, err error) {
		assert.NoError(t, err)
		got = s
	})
	require.False(t, f.Done(), "future resolved before Poll")
	require.Empty(t, got)
	assert.Equal(t, 1, l.Pending())

	assert.Equal(t, 1, l.Flush())
	assert.True(t, f.Done())
	assert.Equal(t, "hello", got)
	assert.Equal(t, 0, l.Pending())

	// Late subscribers run immediately.
	var late bool
	f.Then(func(string, error) { late = true })
	assert.True(t, late, "Then on a resolved future did not run")
}

func TestLoader_LoadBytesMissing(t *testing.T) {
	l := NewLoader(testFS(t))
	f := l.LoadBytes("nope.bin")
	l.Flush()
	_, err := f.Result()
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadTexture(t *testing.T) {
	l := NewLoader(testFS(t))
	pngF := l.LoadTexture("pages/0.png")
	tgaF := l.LoadTexture("pages/1.TGA")
	badF := l.LoadTexture("broken.tga")
	l.Flush()

	td, err := pngF.Result()
	require.NoError(t, err, "png")
	assert.Equal(t, 2, td.Width)
	assert.Equal(t, byte(9), pixelAt(td, 1, 1)[0])

	td, err = tgaF.Result()
	require.NoError(t, err, "tga")
	assert.Equal(t, red, pixelAt(td, 0, 0))

	_, err = badF.Result()
	assert.ErrorIs(t, err, ErrCorruptTGA)
}

func TestLoader_Preload(t *testing.T) {
	l := NewLoader(testFS(t))
	got, err := l.Preload(context.Background(), "atlas.json", "hello.txt", "fonts/ui.json")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "hello", string(got["hello.txt"]))

	_, err = l.Preload(context.Background(), "hello.txt", "missing.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_PreloadCancelled(t *testing.T) {
	l := NewLoader(testFS(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Preload(ctx, "hello.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeTexture_UnknownFormat(t *testing.T) {
	_, err := DecodeTexture("x.png", []byte("not an image"))
	assert.Error(t, err)
}
