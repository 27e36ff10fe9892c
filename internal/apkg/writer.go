// Package apkg writes and reads Anki packages: a zip archive holding a
// SQLite collection, a media manifest and the media files themselves.
package apkg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zip"

	"github.com/leapstack-labs/pgnanki/internal/deck"
)

// Extension is the file extension of a package.
const Extension = ".apkg"

const (
	collectionEntry = "collection.anki2"
	mediaEntry      = "media"
)

// Package describes a package written to disk.
type Package struct {
	Path string
	// MediaFiles lists the source paths of every embedded media file.
	MediaFiles []string
}

// Writer builds packages for decks of one note model.
type Writer struct {
	Model  deck.Model
	Now    func() time.Time
	Logger *slog.Logger
}

// NewWriter creates a writer for the openings note model.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{Model: deck.OpeningsModel, Now: time.Now, Logger: logger}
}

// WriteToFile writes d and the media files to a package at path. The archive
// is assembled next to path and renamed into place, so a failure never
// leaves a truncated package behind.
func (w *Writer) WriteToFile(ctx context.Context, path string, d *deck.Deck, media []string) (*Package, error) {
	workDir, err := os.MkdirTemp("", "pgnanki-collection-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	dbPath := filepath.Join(workDir, collectionEntry)
	if err := buildCollection(ctx, dbPath, w.Model, d, w.Now()); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := writeArchive(tmp, dbPath, media); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("failed to move package into place: %w", err)
	}

	w.Logger.Debug("package written", "path", path, "notes", d.Len(), "media", len(media))
	return &Package{Path: path, MediaFiles: append([]string(nil), media...)}, nil
}

func writeArchive(path, dbPath string, media []string) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close package: %w", cerr)
		}
	}()

	zw := zip.NewWriter(f)
	if err := addFile(zw, collectionEntry, dbPath); err != nil {
		return err
	}

	manifest := make(map[string]string, len(media))
	for i, p := range media {
		manifest[strconv.Itoa(i)] = filepath.Base(p)
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode media manifest: %w", err)
	}
	mw, err := zw.Create(mediaEntry)
	if err != nil {
		return fmt.Errorf("failed to add media manifest: %w", err)
	}
	if _, err := mw.Write(data); err != nil {
		return fmt.Errorf("failed to write media manifest: %w", err)
	}

	for i, p := range media {
		if err := addFile(zw, strconv.Itoa(i), p); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, name, src string) error {
	in, err := os.Open(src) //nolint:gosec // G304: files produced by this run
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
