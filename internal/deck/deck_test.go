package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCard(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		final    string
		notation string
		comment  string
		want     Card
	}{
		{
			name:     "first move",
			initial:  "Open_board_1.svg",
			final:    "Open_board_2.svg",
			notation: "",
			want: Card{
				Initial: `<img src="Open_board_1.svg">`,
				Final:   `<img src="Open_board_2.svg">`,
			},
		},
		{
			name:     "trims notation and comment",
			initial:  "a.svg",
			final:    "b.svg",
			notation: "e4 e5 Nf3 ",
			comment:  "  Main line.\n",
			want: Card{
				Moves:   "e4 e5 Nf3",
				Initial: `<img src="a.svg">`,
				Final:   `<img src="b.svg">`,
				Comment: "Main line.",
			},
		},
		{
			name:    "escapes image names",
			initial: `Tom & "Jerry"_board_1.svg`,
			final:   "x.svg",
			want: Card{
				Initial: `<img src="Tom &amp; &#34;Jerry&#34;_board_1.svg">`,
				Final:   `<img src="x.svg">`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCard(tt.initial, tt.final, tt.notation, tt.comment)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{tt.initial, tt.final}, got.Images())
		})
	}
}

func TestCard_Fields(t *testing.T) {
	c := NewCard("a.svg", "b.svg", "d4", "Queen's pawn")
	assert.Equal(t, []string{"d4", `<img src="a.svg">`, `<img src="b.svg">`, "Queen's pawn"}, c.Fields())
	assert.Len(t, c.Fields(), len(OpeningsModel.Fields))
}

func TestDeck(t *testing.T) {
	d := New(FixedID(42)(), "London")
	assert.Equal(t, int64(42), d.ID)
	assert.Equal(t, "London", d.Name)
	assert.Zero(t, d.Len())

	d.Add(NewCard("a.svg", "b.svg", "", ""))
	d.Add(NewCard("c.svg", "d.svg", "d4 d5", ""))
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "d4 d5", d.Cards[1].Moves)
}

func TestRandomID(t *testing.T) {
	for range 1000 {
		id := RandomID()
		assert.GreaterOrEqual(t, id, MinID)
		assert.Less(t, id, MaxID)
	}
}
