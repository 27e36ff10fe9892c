package output

import (
	"io"

	"github.com/goccy/go-json"
)

// BuildOutput is the JSON form of a build result.
type BuildOutput struct {
	RunID   string     `json:"run_id"`
	Deck    string     `json:"deck"`
	DeckID  int64      `json:"deck_id"`
	Package string     `json:"package,omitempty"`
	DryRun  bool       `json:"dry_run"`
	Cards   []CardInfo `json:"cards"`
	Media   []string   `json:"media"`
}

// CardInfo is the JSON form of one note.
type CardInfo struct {
	Moves   string `json:"moves"`
	Initial string `json:"initial"`
	Final   string `json:"final"`
	Comment string `json:"comment,omitempty"`
}

// InspectOutput is the JSON form of a package listing.
type InspectOutput struct {
	Path  string            `json:"path"`
	Decks []string          `json:"decks"`
	Notes []CardInfo        `json:"notes"`
	Media map[string]string `json:"media"`
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
