// Package movetree holds the branching move tree of a recorded chess game.
//
// Trees come from Parse, which reads PGN with the chess library and wraps its
// move tree. Every node owns the position reached after its move, so
// consumers never replay moves themselves.
package movetree

import (
	"strings"

	"github.com/corentings/chess/v2"
)

// Node is one position in the game tree.
// The root has no move and no parent; every other node records the move that
// produced it. Variations are ordered and the first one is the main line.
type Node struct {
	ply        int
	move       *chess.Move
	san        string
	parent     *Node
	variations []*Node
}

// newTree wraps the library tree below root. ply is the number of
// half-moves already played in root's position.
func newTree(root *chess.Move, ply int) *Node {
	top := &Node{ply: ply, move: root}

	stack := []*Node{top}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := n.move.Children()
		n.variations = make([]*Node, len(children))
		for i, m := range children {
			child := &Node{
				ply:    n.ply + 1,
				move:   m,
				san:    chess.AlgebraicNotation{}.Encode(n.move.Position(), m),
				parent: n,
			}
			n.variations[i] = child
			stack = append(stack, child)
		}
	}
	return top
}

// Ply returns the half-move count from the start of the game.
func (n *Node) Ply() int { return n.ply }

// Move returns the move that produced this node, nil for the root.
func (n *Node) Move() *chess.Move {
	if n.IsRoot() {
		return nil
	}
	return n.move
}

// SAN returns the move in standard algebraic notation, empty for the root.
func (n *Node) SAN() string { return n.san }

// Comment returns the annotation attached after the move. On the root it is
// the comment preceding the first move.
func (n *Node) Comment() string { return strings.TrimSpace(n.move.Comments()) }

// Position returns the position after the move.
func (n *Node) Position() *chess.Position { return n.move.Position() }

// Parent returns the previous node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Variations returns the child nodes, main line first.
func (n *Node) Variations() []*Node { return n.variations }

// IsRoot reports whether n starts the game. The root carries no move.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Next returns the main-line continuation or nil at a leaf.
func (n *Node) Next() *Node {
	if len(n.variations) == 0 {
		return nil
	}
	return n.variations[0]
}

// MainLineAt follows first variations from n until a node with the given ply
// is reached. It returns nil when the main line ends earlier.
func (n *Node) MainLineAt(ply int) *Node {
	node := n
	for node != nil && node.ply < ply {
		node = node.Next()
	}
	return node
}
