// Package deck assembles study cards and the deck that holds them.
package deck

import (
	"html"
	"strings"
)

// Card pairs the moves played so far with the boards before and after the
// move to find. Image fields hold display markup, not bare file names.
type Card struct {
	Moves   string
	Initial string
	Final   string
	Comment string
}

// NewCard builds a card. Notation and comment are trimmed and each image
// reference is wrapped in an <img> tag.
func NewCard(initialImage, finalImage, notation, comment string) Card {
	return Card{
		Moves:   strings.TrimSpace(notation),
		Initial: ImageTag(initialImage),
		Final:   ImageTag(finalImage),
		Comment: strings.TrimSpace(comment),
	}
}

// ImageTag returns the markup showing a media file.
func ImageTag(name string) string {
	return `<img src="` + html.EscapeString(name) + `">`
}

// Fields returns the note fields in model order.
func (c Card) Fields() []string {
	return []string{c.Moves, c.Initial, c.Final, c.Comment}
}

// Images returns the media file names the card displays.
func (c Card) Images() []string {
	return []string{imageSource(c.Initial), imageSource(c.Final)}
}

func imageSource(tag string) string {
	_, rest, ok := strings.Cut(tag, `src="`)
	if !ok {
		return ""
	}
	src, _, _ := strings.Cut(rest, `"`)
	return html.UnescapeString(src)
}
