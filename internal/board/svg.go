// Package board renders chess positions to SVG images and stages them on disk.
package board

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/image"
)

// ImageExt is the extension of every rendered board.
const ImageExt = ".svg"

// SVGRenderer draws a board from one side's point of view.
type SVGRenderer struct {
	Orientation chess.Color
	Palette     Palette
}

// NewSVGRenderer creates a renderer for the given perspective.
func NewSVGRenderer(orientation chess.Color, palette Palette) *SVGRenderer {
	return &SVGRenderer{Orientation: orientation, Palette: palette}
}

// Render writes pos as SVG to w. When last is non-nil its origin and
// destination squares are marked.
func (r *SVGRenderer) Render(w io.Writer, pos *chess.Position, last *chess.Move) error {
	var marked []chess.Square
	if last != nil {
		marked = []chess.Square{last.S1(), last.S2()}
	}
	return image.SVG(w, pos.Board(),
		image.SquareColors(r.Palette.Light, r.Palette.Dark),
		image.Perspective(r.Orientation),
		image.MarkSquares(r.Palette.Highlight, marked...),
	)
}

// Store renders boards into files named <prefix>_board_<n>.svg under Dir.
type Store struct {
	Dir      string
	Prefix   string
	Renderer *SVGRenderer
}

// NewStore creates a store writing into dir.
func NewStore(dir, prefix string, renderer *SVGRenderer) *Store {
	return &Store{Dir: dir, Prefix: prefix, Renderer: renderer}
}

// Name returns the file name used for image n.
func Name(prefix string, n int) string {
	return fmt.Sprintf("%s_board_%d%s", prefix, n, ImageExt)
}

// Snapshot renders pos and writes it as image n, returning the file path.
func (s *Store) Snapshot(pos *chess.Position, last *chess.Move, n int) (string, error) {
	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, pos, last); err != nil {
		return "", fmt.Errorf("failed to render board %d: %w", n, err)
	}

	path := filepath.Join(s.Dir, Name(s.Prefix, n))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write board %d: %w", n, err)
	}
	return path, nil
}

// NameOnly hands out the names a Store would use without rendering anything.
type NameOnly struct {
	Prefix string
}

// Snapshot returns the name of image n.
func (s NameOnly) Snapshot(_ *chess.Position, _ *chess.Move, n int) (string, error) {
	return Name(s.Prefix, n), nil
}
