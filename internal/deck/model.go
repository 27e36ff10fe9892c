package deck

// Field is one named field of a note model.
type Field struct {
	Name string
}

// Template renders the two sides of a card.
type Template struct {
	Name  string
	Front string
	Back  string
}

// Model describes the note type every card is stored as.
type Model struct {
	ID        int64
	Name      string
	Fields    []Field
	Templates []Template
	CSS       string
}

const openingsCSS = `
.card {
    font-family: helvetica;
    font-size: 20px;
    text-align: center;
    color: black;
    background-color: white;
}
img{
    width: 35vh;
    height: 35vh;
}

`

// OpeningsModel is the note type for opening cards. The front shows the moves
// so far and the position to answer from; the back adds the position after
// the answer and its comment.
var OpeningsModel = Model{
	ID:   1224149397,
	Name: "Chess openings",
	Fields: []Field{
		{Name: "Moves"},
		{Name: "Initial"},
		{Name: "Final"},
		{Name: "Comment"},
	},
	Templates: []Template{
		{
			Name:  "Chess openings card",
			Front: "{{Moves}}\n\n<div>{{Initial}}</div>",
			Back:  "{{FrontSide}}<hr id=\"answer\">{{Final}}<div>{{Comment}}</div>",
		},
	},
	CSS: openingsCSS,
}
