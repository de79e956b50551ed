package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"pixelfrag/pkg/convert"
	"pixelfrag/pkg/shader"
	"pixelfrag/pkg/store"
)

func writePNG(t *testing.T, fs afero.Fs, path string, c color.NRGBA) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
}

func TestConvertAllDryRunPrint(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/in/red.png", color.NRGBA{R: 255, A: 255})

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	var stdout bytes.Buffer
	failed := convertAll(context.Background(), fs, convert.New(logger), store.Log(logger), []string{"/in/red.png"}, &stdout, nil, logger)
	assert.Zero(t, failed)

	assert.True(t, strings.HasPrefix(stdout.String(), "#version "+shader.DefaultVersion+"\n"))
	assert.True(t, strings.HasSuffix(stdout.String(), "}\n"))
	assert.Contains(t, stdout.String(), "vec3(1.000000, 0.000000, 0.000000)")

	published := logs.FilterMessage("publish").All()
	require.Len(t, published, 2)
	assert.Equal(t, "red_16x16.frag", published[0].ContextMap()["name"])
	assert.Equal(t, "red_preview_256.png", published[1].ContextMap()["name"])

	// dry run leaves the input directory alone
	infos, err := afero.ReadDir(fs, "/in")
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestConvertAllNoPrint(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/in/a.png", color.NRGBA{G: 255, A: 255})
	logger := zaptest.NewLogger(t)

	d := store.NewDirFs(afero.NewBasePathFs(fs, "/in"), logger)
	assert.Zero(t, convertAll(context.Background(), fs, convert.New(logger), d, []string{"/in/a.png"}, nil, nil, logger))

	bs, err := d.Open("a_16x16.frag")
	require.NoError(t, err)
	assert.Contains(t, string(bs), "vec3(0.000000, 1.000000, 0.000000)")
}

func TestConvertAllCountsFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/in/ok.png", color.NRGBA{B: 255, A: 255})
	require.NoError(t, afero.WriteFile(fs, "/in/broken.png", []byte("nope"), 0644))

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	bar := progressbar.NewOptions(3, progressbar.OptionSetWriter(io.Discard))

	var stdout bytes.Buffer
	failed := convertAll(context.Background(), fs, convert.New(logger), store.Log(logger),
		[]string{"/in/missing.png", "/in/broken.png", "/in/ok.png"}, &stdout, bar, logger)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, strings.Count(stdout.String(), "#version "))
	assert.Len(t, logs.FilterMessage("conversion failed").All(), 2)
	assert.Len(t, logs.FilterMessage("publish").All(), 2)
}

func TestConvertAllStopsWhenCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/in/a.png", color.NRGBA{A: 255})
	writePNG(t, fs, "/in/b.png", color.NRGBA{A: 255})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := zaptest.NewLogger(t)
	failed := convertAll(ctx, fs, convert.New(logger), store.Log(logger), []string{"/in/a.png", "/in/b.png"}, nil, nil, logger)
	assert.Equal(t, 1, failed)
}
