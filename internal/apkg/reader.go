package apkg

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zip"
)

// Note is a note read back from a package.
type Note struct {
	ID     int64
	GUID   string
	Fields []string
}

// Contents summarises a package.
type Contents struct {
	// Decks maps deck ids to names, without the built-in default deck.
	Decks map[int64]string
	Notes []Note
	// Media maps archive entry names to media file names.
	Media map[string]string
}

// DeckNames returns the deck names in id order.
func (c *Contents) DeckNames() []string {
	ids := make([]int64, 0, len(c.Decks))
	for id := range c.Decks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = c.Decks[id]
	}
	return names
}

// Read opens the package at path and returns its decks, notes and media manifest.
func Read(ctx context.Context, path string) (*Contents, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	defer func() { _ = zr.Close() }()

	workDir, err := os.MkdirTemp("", "pgnanki-inspect-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	contents := &Contents{Media: map[string]string{}}
	dbPath := ""
	for _, f := range zr.File {
		switch f.Name {
		case collectionEntry:
			dbPath = filepath.Join(workDir, collectionEntry)
			if err := extract(f, dbPath); err != nil {
				return nil, err
			}
		case mediaEntry:
			if err := readManifest(f, &contents.Media); err != nil {
				return nil, err
			}
		}
	}
	if dbPath == "" {
		return nil, fmt.Errorf("package %s has no %s", path, collectionEntry)
	}

	if err := readCollection(ctx, dbPath, contents); err != nil {
		return nil, err
	}
	return contents, nil
}

func extract(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.Create(dst) //nolint:gosec // G304: dst is inside our temp directory
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // G110: packages are produced locally
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return nil
}

func readManifest(f *zip.File, into *map[string]string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open media manifest: %w", err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read media manifest: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to decode media manifest: %w", err)
	}
	return nil
}

func readCollection(ctx context.Context, dbPath string, contents *Contents) error {
	db, err := openCollection(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var decksJSON string
	if err := db.QueryRowContext(ctx, `SELECT decks FROM col LIMIT 1`).Scan(&decksJSON); err != nil {
		return fmt.Errorf("failed to read decks: %w", err)
	}
	var decks map[string]struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(decksJSON), &decks); err != nil {
		return fmt.Errorf("failed to decode decks: %w", err)
	}
	contents.Decks = make(map[int64]string, len(decks))
	for _, d := range decks {
		if d.ID == 1 {
			continue
		}
		contents.Decks[d.ID] = d.Name
	}

	rows, err := db.QueryContext(ctx, `SELECT id, guid, flds FROM notes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to read notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var n Note
		var flds string
		if err := rows.Scan(&n.ID, &n.GUID, &flds); err != nil {
			return fmt.Errorf("failed to scan note: %w", err)
		}
		n.Fields = strings.Split(flds, fieldSeparator)
		contents.Notes = append(contents.Notes, n)
	}
	return rows.Err()
}
