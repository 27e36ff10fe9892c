package apkg

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/pgnanki/internal/deck"
)

// collectionVersion is the legacy schema version understood by every Anki 2.1 release.
const collectionVersion = 11

// fieldSeparator joins note fields inside notes.flds.
const fieldSeparator = "\x1f"

// openCollection opens (creating if needed) a collection database at path.
func openCollection(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping collection: %w", err)
	}
	return db, nil
}

// buildCollection writes a complete collection for d into a new database at path.
func buildCollection(ctx context.Context, path string, model deck.Model, d *deck.Deck, now time.Time) error {
	db, err := openCollection(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := migrate(ctx, db); err != nil {
		return err
	}
	if err := writeCol(ctx, db, model, d, now); err != nil {
		return err
	}
	return writeNotes(ctx, db, model, d, now)
}

// writeCol inserts the single collection row holding models, decks and options.
func writeCol(ctx context.Context, db *sql.DB, model deck.Model, d *deck.Deck, now time.Time) error {
	conf, err := json.Marshal(collectionConf(model))
	if err != nil {
		return fmt.Errorf("failed to encode collection config: %w", err)
	}
	models, err := json.Marshal(map[string]any{strconv.FormatInt(model.ID, 10): modelJSON(model, d.ID, now)})
	if err != nil {
		return fmt.Errorf("failed to encode models: %w", err)
	}
	deckMap := map[string]any{"1": deckJSON(1, "Default", now)}
	deckMap[strconv.FormatInt(d.ID, 10)] = deckJSON(d.ID, d.Name, now)
	decks, err := json.Marshal(deckMap)
	if err != nil {
		return fmt.Errorf("failed to encode decks: %w", err)
	}
	dconf, err := json.Marshal(map[string]any{"1": deckOptionsJSON()})
	if err != nil {
		return fmt.Errorf("failed to encode deck options: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	_, err = db.ExecContext(ctx,
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		dayStart.Unix(), now.UnixMilli(), now.UnixMilli(), collectionVersion,
		string(conf), string(models), string(decks), string(dconf),
	)
	if err != nil {
		return fmt.Errorf("failed to write collection row: %w", err)
	}
	return nil
}

// writeNotes inserts one note and one new card per deck card in a single transaction.
func writeNotes(ctx context.Context, db *sql.DB, model deck.Model, d *deck.Deck, now time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	noteStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`)
	if err != nil {
		return fmt.Errorf("failed to prepare note insert: %w", err)
	}
	defer func() { _ = noteStmt.Close() }()

	cardStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return fmt.Errorf("failed to prepare card insert: %w", err)
	}
	defer func() { _ = cardStmt.Close() }()

	base := now.UnixMilli()
	mod := now.Unix()
	for i, card := range d.Cards {
		fields := card.Fields()
		sortField := fields[0]
		id := base + int64(i)

		if _, err := noteStmt.ExecContext(ctx,
			id, noteGUID(fields), model.ID, mod,
			strings.Join(fields, fieldSeparator), sortField, fieldChecksum(sortField),
		); err != nil {
			return fmt.Errorf("failed to insert note %d: %w", i+1, err)
		}

		if _, err := cardStmt.ExecContext(ctx, id, id, d.ID, mod, i+1); err != nil {
			return fmt.Errorf("failed to insert card %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notes: %w", err)
	}
	return nil
}

func modelJSON(m deck.Model, deckID int64, now time.Time) map[string]any {
	fields := make([]map[string]any, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = map[string]any{
			"name":   f.Name,
			"ord":    i,
			"font":   "Liberation Sans",
			"media":  []string{},
			"rtl":    false,
			"size":   20,
			"sticky": false,
		}
	}

	templates := make([]map[string]any, len(m.Templates))
	req := make([]any, len(m.Templates))
	for i, t := range m.Templates {
		templates[i] = map[string]any{
			"name":  t.Name,
			"ord":   i,
			"qfmt":  t.Front,
			"afmt":  t.Back,
			"bqfmt": "",
			"bafmt": "",
			"did":   nil,
		}
		req[i] = []any{i, "any", requiredFields(m, t)}
	}

	return map[string]any{
		"id":        strconv.FormatInt(m.ID, 10),
		"name":      m.Name,
		"type":      0,
		"mod":       now.Unix(),
		"usn":       -1,
		"sortf":     0,
		"did":       deckID,
		"tmpls":     templates,
		"flds":      fields,
		"css":       m.CSS,
		"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n",
		"latexPost": "\\end{document}",
		"latexsvg":  false,
		"req":       req,
		"tags":      []string{},
		"vers":      []any{},
	}
}

// requiredFields lists the fields referenced on the template's front; a card
// is generated when any of them is non-empty.
func requiredFields(m deck.Model, t deck.Template) []int {
	var ords []int
	for i, f := range m.Fields {
		if strings.Contains(t.Front, "{{"+f.Name+"}}") {
			ords = append(ords, i)
		}
	}
	return ords
}

func deckJSON(id int64, name string, now time.Time) map[string]any {
	return map[string]any{
		"id":               id,
		"name":             name,
		"desc":             "",
		"conf":             1,
		"dyn":              0,
		"collapsed":        false,
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
		"mod":              now.Unix(),
		"usn":              -1,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
	}
}

func deckOptionsJSON() map[string]any {
	return map[string]any{
		"id":       1,
		"name":     "Default",
		"autoplay": true,
		"maxTaken": 60,
		"mod":      0,
		"usn":      0,
		"replayq":  true,
		"timer":    0,
		"new": map[string]any{
			"bury":          true,
			"delays":        []int{1, 10},
			"initialFactor": 2500,
			"ints":          []int{1, 4, 7},
			"order":         1,
			"perDay":        20,
			"separate":      true,
		},
		"rev": map[string]any{
			"bury":     true,
			"ease4":    1.3,
			"fuzz":     0.05,
			"ivlFct":   1,
			"maxIvl":   36500,
			"minSpace": 1,
			"perDay":   100,
		},
		"lapse": map[string]any{
			"delays":      []int{10},
			"leechAction": 0,
			"leechFails":  8,
			"minInt":      1,
			"mult":        0,
		},
	}
}

func collectionConf(m deck.Model) map[string]any {
	return map[string]any{
		"activeDecks":   []int{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      strconv.FormatInt(m.ID, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}
}
