package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnanki/internal/board"
	"github.com/leapstack-labs/pgnanki/internal/cli/output"
	"github.com/leapstack-labs/pgnanki/internal/deck"
	"github.com/leapstack-labs/pgnanki/internal/engine"
)

// BuildOptions holds options for the build command that are not part of the
// persistent configuration.
type BuildOptions struct {
	DryRun bool
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build <pgn-file> <deck-name>",
		Short: "Build an Anki deck from a PGN game",
		Long: `Walk the moves of a PGN game and create one flashcard for every position
where the studied side has to move. Variations are followed at those
positions; at the opponent's turn only the main line is played.

The package is written to <output-dir>/<deck-name>.apkg.`,
		Example: `  # Cards for white from move 1 to 100
  pgnanki build ruy_lopez.pgn "Ruy Lopez"

  # Cards for black between plies 2 and 20
  pgnanki build sicilian.pgn Sicilian --is-black --start-move 2 --end-move 20

  # List the cards without writing anything
  pgnanki build sicilian.pgn Sicilian --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().Int("start-move", engine.DefaultStartMove, "First ply to consider (1 is white's first move)")
	cmd.Flags().Int("end-move", engine.DefaultEndMove, "Last ply to consider")
	cmd.Flags().Bool("is-black", false, "Study the game from black's side")
	cmd.Flags().String("light-squares", board.DefaultLight, "Colour of the light squares")
	cmd.Flags().String("dark-squares", board.DefaultDark, "Colour of the dark squares")
	cmd.Flags().String("highlight", board.DefaultHighlight, "Colour of the last move's squares")
	cmd.Flags().String("output-dir", ".", "Directory the package is written to")
	cmd.Flags().String("media-dir", "", "Directory board images are staged in (default: a temporary directory)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List the cards without writing images or a package")

	return cmd
}

func runBuild(cmd *cobra.Command, pgnPath, deckName string, opts *BuildOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	rc := cmdCtx.Cfg.RunConfig(pgnPath, deckName)
	rc.DryRun = opts.DryRun

	res, err := cmdCtx.NewEngine().Run(cmd.Context(), rc)
	if err != nil {
		return err
	}

	if res.Deck.Len() == 0 {
		r.Warning(fmt.Sprintf("No cards between moves %d and %d for this side", rc.StartMove, rc.EndMove))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return buildJSON(r, res)
	case output.ModeMarkdown:
		return buildMarkdown(r, res)
	default:
		return buildText(r, res)
	}
}

func buildText(r *output.Renderer, res *engine.Result) error {
	if res.DryRun {
		r.Header(1, fmt.Sprintf("%s (%d cards)", res.Deck.Name, res.Deck.Len()))
		output.Table(r.Writer(), output.ModeText, cardHeader, cardRows(res.Deck.Cards))
		return nil
	}
	r.Success(fmt.Sprintf("Package %s created", res.PackagePath))
	return nil
}

func buildMarkdown(r *output.Renderer, res *engine.Result) error {
	if res.DryRun {
		r.Println(output.FormatHeader(1, fmt.Sprintf("%s (%d cards)", res.Deck.Name, res.Deck.Len())))
		r.Println("")
		output.Table(r.Writer(), output.ModeMarkdown, cardHeader, cardRows(res.Deck.Cards))
		return nil
	}
	r.Printf("Package %s created\n", res.PackagePath)
	return nil
}

func buildJSON(r *output.Renderer, res *engine.Result) error {
	media := res.Media
	if media == nil {
		media = []string{}
	}
	return output.WriteJSON(r.Writer(), output.BuildOutput{
		RunID:   res.RunID,
		Deck:    res.Deck.Name,
		DeckID:  res.Deck.ID,
		Package: res.PackagePath,
		DryRun:  res.DryRun,
		Cards:   cardInfos(res.Deck.Cards),
		Media:   media,
	})
}

var cardHeader = []string{"#", "Moves", "Initial", "Final", "Comment"}

func cardRows(cards []deck.Card) [][]string {
	rows := make([][]string, len(cards))
	for i, c := range cards {
		images := c.Images()
		rows[i] = []string{strconv.Itoa(i + 1), c.Moves, images[0], images[1], c.Comment}
	}
	return rows
}

func cardInfos(cards []deck.Card) []output.CardInfo {
	infos := make([]output.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = output.CardInfo{
			Moves:   c.Moves,
			Initial: c.Initial,
			Final:   c.Final,
			Comment: c.Comment,
		}
	}
	return infos
}
