package doodle

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec_ReplayAndExport(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.png")
	secondary := filepath.Join(dir, "secondary.png")
	script := filepath.Join(dir, "events.yaml")
	out := filepath.Join(dir, "result.png")

	writeFile(t, primary, encodePNG(t, 10, 10))
	writeFile(t, secondary, encodePNG(t, 10, 10))
	writeFile(t, script, []byte(`
secondary: `+secondary+`
events:
  - {op: tool, tool: polygon}
  - {op: click, x: 600, y: 100}
  - {op: click, x: 800, y: 100}
  - {op: click, x: 700, y: 300}
`))

	e := NewEngine(nil)
	err := e.Execute(context.Background(), &Ops{Script: script, Out: out, Primary: primary})
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultCanvasWidth, DefaultCanvasHeight), img.Bounds())

	// Primary image at its placement, clipped secondary inside the polygon.
	assert.Greater(t, alphaAt(img, 300, 300), uint8(200))
	assert.Greater(t, alphaAt(img, 700, 150), uint8(200))
	assert.Zero(t, alphaAt(img, 1300, 450))

	sc := e.Scene()
	assert.NotNil(t, sc.Primary)
	assert.NotNil(t, sc.Secondary)
}

func TestExec_MissingImageFails(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result.png")

	err := NewEngine(nil).Execute(context.Background(), &Ops{
		Primary: filepath.Join(dir, "missing.png"),
		Out:     out,
	})
	assert.Error(t, err)

	_, statErr := os.Stat(out)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestExec_UnsupportedOutput(t *testing.T) {
	err := NewEngine(nil).Execute(context.Background(), &Ops{Out: filepath.Join(t.TempDir(), "result.tiff")})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExec_RepeatedRunsDoNotLeakGoroutines(t *testing.T) {
	run := func() {
		err := NewEngine(nil).Execute(context.Background(), &Ops{Out: filepath.Join(t.TempDir(), "result.png")})
		require.NoError(t, err)
	}
	// The first run starts the process-wide signal watcher.
	run()
	before := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		run()
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLogger_SetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	e := NewEngine(nil)
	drag(e, ToolCircle, Pt(0, 0), Pt(3, 4))
	assert.Contains(t, buf.String(), "shape finalized")
	assert.Contains(t, buf.String(), "kind=circle")

	SetLogger(nil)
	buf.Reset()
	drag(e, ToolCircle, Pt(0, 0), Pt(3, 4))
	assert.Empty(t, buf.String())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
