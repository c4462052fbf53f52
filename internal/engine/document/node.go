package document

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// NodeID uniquely identifies a content node within a document.
// IDs are stable across structural edits of other nodes.
type NodeID string

// String returns the id as a string.
func (id NodeID) String() string {
	return string(id)
}

// DefaultKind is the node kind used when none is given.
const DefaultKind = "text"

// newNodeID generates a random node id.
func newNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// Node is a read-only view of a content node.
type Node struct {
	ID      NodeID
	Kind    string
	Content string
}

// Len returns the content length in runes.
func (n Node) Len() int {
	return utf8.RuneCountInString(n.Content)
}

// contentNode is the arena entry backing a Node.
type contentNode struct {
	id      NodeID
	kind    string
	content []rune
}

func (n *contentNode) view() Node {
	return Node{ID: n.id, Kind: n.kind, Content: string(n.content)}
}
