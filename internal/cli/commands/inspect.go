package commands

import (
	"fmt"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnanki/internal/apkg"
	"github.com/leapstack-labs/pgnanki/internal/cli/output"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <apkg>",
		Short: "List the notes of a package",
		Long: `Open an .apkg file and list its decks, notes and media files.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown, with image fields shown as markdown images

Use --output to override: auto, text, markdown, json`,
		Example: `  pgnanki inspect "Ruy Lopez.apkg"
  pgnanki inspect "Ruy Lopez.apkg" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

func runInspect(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	contents, err := apkg.Read(cmd.Context(), path)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("package read", "path", path, "notes", len(contents.Notes), "media", len(contents.Media))

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return inspectJSON(r, path, contents)
	case output.ModeMarkdown:
		return inspectMarkdown(r, contents)
	default:
		return inspectText(r, contents)
	}
}

func inspectText(r *output.Renderer, c *apkg.Contents) error {
	r.Header(1, strings.Join(c.DeckNames(), ", "))
	r.KeyValue("Notes", strconv.Itoa(len(c.Notes)))
	r.KeyValue("Media", strconv.Itoa(len(c.Media)))
	r.Println("")

	rows := make([][]string, len(c.Notes))
	for i, n := range c.Notes {
		rows[i] = noteRow(i, n.Fields)
	}
	output.Table(r.Writer(), output.ModeText, cardHeader, rows)
	return nil
}

func inspectMarkdown(r *output.Renderer, c *apkg.Contents) error {
	r.Println(output.FormatHeader(1, strings.Join(c.DeckNames(), ", ")))
	r.Println("")
	r.Println(output.FormatKeyValue("Notes", strconv.Itoa(len(c.Notes))))
	r.Println(output.FormatKeyValue("Media", strconv.Itoa(len(c.Media))))
	r.Println("")

	rows := make([][]string, len(c.Notes))
	for i, n := range c.Notes {
		fields := make([]string, len(n.Fields))
		for j, f := range n.Fields {
			md, err := htmltomarkdown.ConvertString(f)
			if err != nil {
				return fmt.Errorf("failed to convert note %d: %w", n.ID, err)
			}
			fields[j] = strings.TrimSpace(md)
		}
		rows[i] = noteRow(i, fields)
	}
	output.Table(r.Writer(), output.ModeMarkdown, cardHeader, rows)
	return nil
}

func inspectJSON(r *output.Renderer, path string, c *apkg.Contents) error {
	notes := make([]output.CardInfo, len(c.Notes))
	for i, n := range c.Notes {
		f := padFields(n.Fields)
		notes[i] = output.CardInfo{Moves: f[0], Initial: f[1], Final: f[2], Comment: f[3]}
	}
	return output.WriteJSON(r.Writer(), output.InspectOutput{
		Path:  path,
		Decks: c.DeckNames(),
		Notes: notes,
		Media: c.Media,
	})
}

func noteRow(i int, fields []string) []string {
	return append([]string{strconv.Itoa(i + 1)}, padFields(fields)...)
}

// padFields returns exactly the four model fields, filling missing ones.
func padFields(fields []string) []string {
	out := make([]string, 4)
	copy(out, fields)
	return out
}
