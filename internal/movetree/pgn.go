package movetree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
)

// Parse errors.
var (
	ErrNoGame      = errors.New("no game found")
	ErrIllegalMove = errors.New("illegal move")
	ErrSyntax      = errors.New("malformed movetext")
)

// Game is a parsed game record.
type Game struct {
	Root *Node

	game *chess.Game
}

// Tag returns the value of a tag pair, or "" when absent.
func (g *Game) Tag(name string) string {
	return g.game.GetTagPair(name)
}

// ParseFile reads the first game of the PGN file at path.
func ParseFile(path string) (*Game, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the user on purpose
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads the first game from r. Moves, variations, comments and a FEN
// starting position are taken from the record; NAGs and glyphs are dropped.
func Parse(r io.Reader) (*Game, error) {
	opt, err := chess.PGN(r)
	if err != nil {
		return nil, classify(err)
	}
	g := chess.NewGame(opt)

	return &Game{
		Root: newTree(g.GetRootMove(), plyFromFEN(g.GetTagPair("FEN"))),
		game: g,
	}, nil
}

// classify maps library parse failures onto the package errors.
func classify(err error) error {
	if errors.Is(err, chess.ErrNoGameFound) {
		return ErrNoGame
	}

	var perr *chess.ParserError
	if errors.As(err, &perr) && strings.Contains(perr.Message, "legal") {
		return fmt.Errorf("%w: %s", ErrIllegalMove, perr.Message)
	}
	return fmt.Errorf("%w: %v", ErrSyntax, err)
}

// plyFromFEN derives the half-move count from the side to move and the
// full-move number so that ply parity always names the side that moved.
// An empty FEN is the standard starting position.
func plyFromFEN(fen string) int {
	fields := strings.Fields(fen)
	fullMove := 1
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			fullMove = n
		}
	}
	ply := 2 * (fullMove - 1)
	if len(fields) >= 2 && fields[1] == "b" {
		ply++
	}
	return ply
}
