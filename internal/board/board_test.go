package board

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{name: "short", in: "#fff", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "rgb", in: "#336699", want: color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{name: "rgba", in: "#99999999", want: color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0x99}},
		{name: "no hash", in: "00ff00ff", want: color.NRGBA{G: 255, A: 255}},
		{name: "padded", in: " #000000 ", want: color.NRGBA{A: 255}},
		{name: "name", in: "green", wantErr: true},
		{name: "bad alpha", in: "#000000zz", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func defaultPalette(t *testing.T) Palette {
	t.Helper()
	p, err := ParsePalette(DefaultLight, DefaultDark, DefaultHighlight)
	require.NoError(t, err)
	return p
}

func TestParsePalette(t *testing.T) {
	p := defaultPalette(t)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, p.Light)
	assert.Equal(t, color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0x99}, p.Dark)

	_, err := ParsePalette(DefaultLight, "nope", DefaultHighlight)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark squares")
}

func TestSVGRenderer_Render(t *testing.T) {
	r := NewSVGRenderer(chess.White, defaultPalette(t))
	pos := chess.StartingPosition()

	var plain bytes.Buffer
	require.NoError(t, r.Render(&plain, pos, nil))
	assert.Contains(t, plain.String(), "<svg")

	move := pos.ValidMoves()[0]
	var marked bytes.Buffer
	require.NoError(t, r.Render(&marked, pos, &move))
	assert.NotEqual(t, plain.String(), marked.String(), "the last move should be highlighted")

	var flipped bytes.Buffer
	require.NoError(t, NewSVGRenderer(chess.Black, defaultPalette(t)).Render(&flipped, pos, nil))
	assert.NotEqual(t, plain.String(), flipped.String())
}

func TestStore_Snapshot(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "Ruy Lopez", NewSVGRenderer(chess.White, defaultPalette(t)))

	path, err := s.Snapshot(chess.StartingPosition(), nil, 3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Ruy Lopez_board_3.svg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	missing := NewStore(filepath.Join(dir, "missing"), "x", s.Renderer)
	_, err = missing.Snapshot(chess.StartingPosition(), nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write board 1")
}

func TestNameOnly(t *testing.T) {
	name, err := NameOnly{Prefix: "Sicilian"}.Snapshot(nil, nil, 12)
	require.NoError(t, err)
	assert.Equal(t, "Sicilian_board_12.svg", name)
	assert.Equal(t, name, Name("Sicilian", 12))
}
