// Package engine runs a game-to-deck conversion: it validates the run
// configuration, locates the starting position, walks the game tree and hands
// the resulting deck to the package writer.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/leapstack-labs/pgnanki/internal/apkg"
	"github.com/leapstack-labs/pgnanki/internal/board"
	"github.com/leapstack-labs/pgnanki/internal/deck"
	"github.com/leapstack-labs/pgnanki/internal/movetree"
	"github.com/leapstack-labs/pgnanki/internal/traverse"
)

// PackageWriter persists a deck and its media.
type PackageWriter interface {
	WriteToFile(ctx context.Context, path string, d *deck.Deck, media []string) (*apkg.Package, error)
}

// Options configures an Engine. Zero values select the production defaults.
type Options struct {
	Writer PackageWriter
	IDs    deck.IDSource
	Logger *slog.Logger
	// Trace receives per-card lines for verbose runs.
	Trace io.Writer
}

// Engine converts games into packages.
type Engine struct {
	writer PackageWriter
	ids    deck.IDSource
	logger *slog.Logger
	trace  io.Writer
}

// Result describes a finished run.
type Result struct {
	RunID string
	// PackagePath is empty for dry runs.
	PackagePath string
	Deck        *deck.Deck
	// Media lists the image names referenced by the deck.
	Media  []string
	DryRun bool
}

// New creates an engine.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	writer := opts.Writer
	if writer == nil {
		writer = apkg.NewWriter(logger)
	}
	ids := opts.IDs
	if ids == nil {
		ids = deck.RandomID
	}
	return &Engine{writer: writer, ids: ids, logger: logger, trace: opts.Trace}
}

// Run performs one conversion. Configuration errors are reported before any
// file is read or written, and staged images never outlive the run.
func (e *Engine) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID)
	logger.Debug("starting run", "pgn", cfg.PGNPath, "deck", cfg.DeckName,
		"start_move", cfg.StartMove, "end_move", cfg.EndMove, "black", cfg.IsBlack)

	game, err := movetree.ParseFile(cfg.PGNPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInput, cfg.PGNPath, err)
	}
	logger.Debug("game loaded", "event", game.Tag("Event"), "white", game.Tag("White"),
		"black", game.Tag("Black"), "first_ply", game.Root.Ply()+1)
	start := game.Root.MainLineAt(cfg.StartMove)
	if start == nil {
		return nil, fmt.Errorf("%w: %s ends before ply %d", ErrInput, cfg.PGNPath, cfg.StartMove)
	}

	d := deck.New(e.ids(), cfg.DeckName)
	opts := traverse.Options{
		EndPly: cfg.EndMove,
		Side:   cfg.Side(),
		Logger: logger,
	}
	if cfg.Verbose {
		opts.Trace = e.trace
	}

	if cfg.DryRun {
		res, err := traverse.New(board.NameOnly{Prefix: cfg.ImagePrefix()}, opts).Walk(start, d)
		if err != nil {
			return nil, err
		}
		return &Result{RunID: runID, Deck: d, Media: res.Media, DryRun: true}, nil
	}

	palette, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	mediaDir, release, err := stageDir(cfg.MediaDir)
	if err != nil {
		return nil, err
	}
	defer release()

	store := board.NewStore(mediaDir, cfg.ImagePrefix(), board.NewSVGRenderer(cfg.Side(), palette))
	res, err := traverse.New(store, opts).Walk(start, d)
	if err != nil {
		removeMedia(logger, res.Media)
		return nil, err
	}
	logger.Info("traversal finished", "cards", d.Len(), "images", len(res.Media))

	pkg, err := e.Finalize(ctx, d, res.Media, cfg.PackagePath())
	if err != nil {
		return nil, err
	}

	return &Result{RunID: runID, PackagePath: pkg.Path, Deck: d, Media: res.Media}, nil
}

// Finalize writes the package and then deletes the media files. Media files
// are deleted whether or not the write succeeds.
func (e *Engine) Finalize(ctx context.Context, d *deck.Deck, media []string, path string) (*apkg.Package, error) {
	pkg, err := e.writer.WriteToFile(ctx, path, d, media)
	if err != nil {
		removeMedia(e.logger, media)
		return nil, fmt.Errorf("%w: %s: %w", ErrFinalize, path, err)
	}

	removeMedia(e.logger, pkg.MediaFiles)
	return pkg, nil
}

// stageDir returns the directory images are written to and a release func.
// A directory created here is removed on release; a configured one is kept.
func stageDir(dir string) (string, func(), error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "pgnanki-media-*")
		if err != nil {
			return "", nil, fmt.Errorf("failed to create media directory: %w", err)
		}
		return tmp, func() { _ = os.RemoveAll(tmp) }, nil
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return dir, func() {}, nil
}

func removeMedia(logger *slog.Logger, files []string) {
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove media file", "path", f, "error", err)
		}
	}
}
