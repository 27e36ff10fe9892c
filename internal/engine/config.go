package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corentings/chess/v2"

	"github.com/leapstack-labs/pgnanki/internal/apkg"
	"github.com/leapstack-labs/pgnanki/internal/board"
)

// Error classes of a run.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInput         = errors.New("invalid game record")
	ErrFinalize      = errors.New("failed to write package")
)

// Defaults for a run.
const (
	DefaultStartMove = 1
	DefaultEndMove   = 100
)

// RunConfig holds everything one conversion needs.
type RunConfig struct {
	PGNPath   string
	DeckName  string
	StartMove int
	EndMove   int
	IsBlack   bool

	LightSquares string
	DarkSquares  string
	Highlight    string

	// OutputDir receives <DeckName>.apkg.
	OutputDir string
	// MediaDir stages board images. Empty means a temporary directory.
	MediaDir string

	Verbose bool
	DryRun  bool
}

// DefaultRunConfig returns a config with the documented defaults.
func DefaultRunConfig(pgnPath, deckName string) RunConfig {
	return RunConfig{
		PGNPath:      pgnPath,
		DeckName:     deckName,
		StartMove:    DefaultStartMove,
		EndMove:      DefaultEndMove,
		LightSquares: board.DefaultLight,
		DarkSquares:  board.DefaultDark,
		Highlight:    board.DefaultHighlight,
		OutputDir:    ".",
	}
}

// Validate checks the config without touching the filesystem.
func (c RunConfig) Validate() error {
	if c.StartMove < 1 {
		return fmt.Errorf("%w: start_move must be greater than 0", ErrInvalidConfig)
	}
	if c.StartMove > c.EndMove {
		return fmt.Errorf("%w: start_move must be less than end_move", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DeckName) == "" {
		return fmt.Errorf("%w: deck name is required", ErrInvalidConfig)
	}
	if c.PGNPath == "" {
		return fmt.Errorf("%w: game record path is required", ErrInvalidConfig)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Side returns the study side.
func (c RunConfig) Side() chess.Color {
	if c.IsBlack {
		return chess.Black
	}
	return chess.White
}

// Palette parses the configured colours.
func (c RunConfig) Palette() (board.Palette, error) {
	return board.ParsePalette(c.LightSquares, c.DarkSquares, c.Highlight)
}

// PackagePath returns where the package is written.
func (c RunConfig) PackagePath() string {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, c.DeckName+apkg.Extension)
}

// ImagePrefix is the file name prefix of staged images. Path separators in
// the deck name would escape the media directory, so they are replaced.
func (c RunConfig) ImagePrefix() string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(c.DeckName)
}
