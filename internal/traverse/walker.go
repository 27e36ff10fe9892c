// Package traverse walks a game tree and turns the study side's decision
// points into cards.
//
// A node is due when its move was made by the study side. At a due node the
// card pairs the parent position (the question) with the node position (the
// answer), and every reply below it is explored. At any other node only the
// main line is followed, so the deck grows with the replies the learner has to
// answer and not with the learner's own alternatives.
package traverse

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/corentings/chess/v2"

	"github.com/leapstack-labs/pgnanki/internal/deck"
	"github.com/leapstack-labs/pgnanki/internal/movetree"
)

// ErrMalformedTree is returned when a due node has no parent position.
var ErrMalformedTree = errors.New("malformed move tree")

// Snapshotter turns a position into a stored image and returns its path.
// n numbers the images of one run, starting at 1.
type Snapshotter interface {
	Snapshot(pos *chess.Position, last *chess.Move, n int) (string, error)
}

// Options configures a Walker.
type Options struct {
	// EndPly is the last ply that can produce a card.
	EndPly int
	// Side is the study side.
	Side chess.Color
	// Trace receives one line per card when non-nil.
	Trace io.Writer
	// Logger is optional.
	Logger *slog.Logger
}

// Result is the state accumulated over one walk.
type Result struct {
	// Counter is the number of the next image.
	Counter int
	// Media lists every image path written, in order.
	Media []string
	Deck  *deck.Deck
}

// Walker emits cards for one study side.
type Walker struct {
	snap   Snapshotter
	opts   Options
	logger *slog.Logger
}

// New creates a walker rendering through snap.
func New(snap Snapshotter, opts Options) *Walker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{snap: snap, opts: opts, logger: logger}
}

// Due reports whether a card is due for a node at ply when side studies:
// (side is white) XOR (ply is odd) must be false.
func Due(ply int, side chess.Color) bool {
	isWhite := side == chess.White
	odd := ply&1 == 1
	return isWhite == odd
}

type item struct {
	node   *movetree.Node
	prefix string
}

// Walk visits the tree below start depth first and adds a card to d for each
// due node up to EndPly. The partial result is returned with any error so
// callers can clean up the images already written.
func (w *Walker) Walk(start *movetree.Node, d *deck.Deck) (*Result, error) {
	res := &Result{Counter: 1, Deck: d}

	// Children are pushed in reverse so the first variation is visited first.
	stack := []item{{node: start}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := it.node
		if node == nil || node.Ply() > w.opts.EndPly {
			continue
		}

		// The root carries no move, so it is never a decision point even
		// when a FEN start gives it a due ply.
		if node.IsRoot() || !Due(node.Ply(), w.opts.Side) {
			if next := node.Next(); next != nil {
				stack = append(stack, item{node: next, prefix: extend(it.prefix, node)})
			}
			continue
		}

		if err := w.emit(res, node, it.prefix); err != nil {
			return res, err
		}

		prefix := extend(it.prefix, node)
		variations := node.Variations()
		for i := len(variations) - 1; i >= 0; i-- {
			stack = append(stack, item{node: variations[i], prefix: prefix})
		}
	}

	return res, nil
}

func (w *Walker) emit(res *Result, node *movetree.Node, prefix string) error {
	parent := node.Parent()
	if parent == nil {
		return fmt.Errorf("%w: due node at ply %d has no parent position", ErrMalformedTree, node.Ply())
	}

	initial, err := w.snap.Snapshot(parent.Position(), parent.Move(), res.Counter)
	if err != nil {
		return err
	}
	res.Media = append(res.Media, initial)

	final, err := w.snap.Snapshot(node.Position(), node.Move(), res.Counter+1)
	if err != nil {
		return err
	}
	res.Media = append(res.Media, final)
	res.Counter += 2

	card := deck.NewCard(filepath.Base(initial), filepath.Base(final), prefix, node.Comment())
	res.Deck.Add(card)

	w.logger.Debug("card created", "ply", node.Ply(), "move", node.SAN(), "moves", card.Moves)
	w.trace(node)
	return nil
}

func (w *Walker) trace(node *movetree.Node) {
	if w.opts.Trace == nil {
		return
	}
	if c := node.Comment(); c != "" {
		_, _ = fmt.Fprintf(w.opts.Trace, "Created note with move %s with comment: %s\n", node.SAN(), c)
		return
	}
	_, _ = fmt.Fprintf(w.opts.Trace, "Created note with move %s\n", node.SAN())
}

// extend appends the node's move to a notation prefix.
func extend(prefix string, node *movetree.Node) string {
	if node.SAN() == "" {
		return prefix
	}
	return prefix + node.SAN() + " "
}
