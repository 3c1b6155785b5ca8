package utils

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMath_MinMax(t *testing.T) {
	assert.Equal(t, 2, Min(2, 3))
	assert.Equal(t, 2, Min(3, 2))
	assert.Equal(t, 3.5, Max(3.5, -1))
	assert.Equal(t, 4, Abs(-4))

	lo, hi := MinMax(3.0, -2.0, 10.0, 0.5)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 10.0, hi)

	lo, hi = MinMax[float64]()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	assert.Equal(t, 5, Clamp(12, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
}

func TestColor_HexToRGBA(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{A: 0xff}},
		{"ff0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}},
		{"#2196f380", color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0x80}},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := HexToRGBA(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		_, err := HexToRGBA(bad)
		assert.ErrorIs(t, err, ErrInvalidHex, bad)
	}
}

func TestColor_RGBAToHex(t *testing.T) {
	assert.Equal(t, "#ff0000", RGBAToHex(color.NRGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, "#00000080", RGBAToHex(color.NRGBA{A: 0x80}))
}

func TestFormat_DecorateText(t *testing.T) {
	s := DecorateText("done", SuccessMessage)
	assert.True(t, strings.HasPrefix(s, SuccessColor))
	assert.True(t, strings.HasSuffix(s, DefaultColor))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
	assert.Equal(t, ErrorColor+"x"+DefaultColor, DecorateText("x", ErrorMessage))
}

func TestFormat_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "26h 0m 0.25s", FormatTime(26*time.Hour+250*time.Millisecond))
	assert.Equal(t, "0.00s", FormatTime(0))
}

func TestSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner("working", time.Millisecond, false)
	sp.SetWriter(&buf)
	sp.StopMsg = "finished"

	sp.Start()
	sp.Start()
	time.Sleep(5 * time.Millisecond)
	sp.Stop()
	sp.Stop()

	out := buf.String()
	assert.Contains(t, out, "working")
	assert.True(t, strings.HasSuffix(out, "finished"))
}
