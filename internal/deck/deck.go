package deck

import (
	"math/rand/v2"
)

// Deck is a named collection of cards.
type Deck struct {
	ID    int64
	Name  string
	Cards []Card
}

// New creates an empty deck.
func New(id int64, name string) *Deck {
	return &Deck{ID: id, Name: name}
}

// Add appends a card.
func (d *Deck) Add(c Card) {
	d.Cards = append(d.Cards, c)
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// IDSource yields deck identifiers.
type IDSource func() int64

// Deck ids are drawn from [MinID, MaxID) so they never collide with the
// default deck and stay clear of ids generated from timestamps.
const (
	MinID int64 = 1 << 31
	MaxID int64 = 1 << 32
)

// RandomID draws a deck id uniformly from [MinID, MaxID).
func RandomID() int64 {
	return MinID + rand.Int64N(MaxID-MinID) //nolint:gosec // ids only need to avoid collisions
}

// FixedID returns a source that always yields id.
func FixedID(id int64) IDSource {
	return func() int64 { return id }
}
