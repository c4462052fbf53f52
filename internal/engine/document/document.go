package document

import (
	"fmt"
	"strings"
)

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithNodes appends one node of DefaultKind per content string.
func WithNodes(contents ...string) Option {
	return func(d *Document) {
		d.pending = append(d.pending, contents...)
	}
}

// WithIDGenerator replaces the random UUID generator used for new node ids.
func WithIDGenerator(gen func() NodeID) Option {
	return func(d *Document) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// Document is an ordered collection of content nodes.
type Document struct {
	arena []contentNode
	order []int          // arena slots in document order
	slots map[NodeID]int // node id -> arena slot
	free  []int          // recycled arena slots

	newID   func() NodeID
	pending []string
}

// New creates a document with the given options.
func New(opts ...Option) *Document {
	d := &Document{
		slots: make(map[NodeID]int),
		newID: newNodeID,
	}
	for _, opt := range opts {
		opt(d)
	}
	for _, content := range d.pending {
		d.AppendNode(DefaultKind, content)
	}
	d.pending = nil
	return d
}

// NodeCount returns the number of nodes in the document.
func (d *Document) NodeCount() int {
	return len(d.order)
}

// IsEmpty returns true if the document has no nodes.
func (d *Document) IsEmpty() bool {
	return len(d.order) == 0
}

// Node returns the node at the given index.
func (d *Document) Node(index int) (Node, error) {
	n, err := d.at(index)
	if err != nil {
		return Node{}, err
	}
	return n.view(), nil
}

// NodeByID returns the node with the given id.
func (d *Document) NodeByID(id NodeID) (Node, error) {
	slot, ok := d.slots[id]
	if !ok {
		return Node{}, fmt.Errorf("node %q: %w", id, ErrNotFound)
	}
	return d.arena[slot].view(), nil
}

// IndexOf returns the document index of the node with the given id.
func (d *Document) IndexOf(id NodeID) (int, error) {
	slot, ok := d.slots[id]
	if !ok {
		return -1, fmt.Errorf("node %q: %w", id, ErrNotFound)
	}
	for i, s := range d.order {
		if s == slot {
			return i, nil
		}
	}
	return -1, fmt.Errorf("node %q: %w", id, ErrNotFound)
}

// NodeText returns the content of the node at index, or "" if the index is
// out of range.
func (d *Document) NodeText(index int) string {
	n, err := d.at(index)
	if err != nil {
		return ""
	}
	return string(n.content)
}

// NodeLen returns the rune length of the node at index, or 0 if the index is
// out of range.
func (d *Document) NodeLen(index int) int {
	n, err := d.at(index)
	if err != nil {
		return 0
	}
	return len(n.content)
}

// Nodes returns views of all nodes in document order.
func (d *Document) Nodes() []Node {
	nodes := make([]Node, len(d.order))
	for i, slot := range d.order {
		nodes[i] = d.arena[slot].view()
	}
	return nodes
}

// Contents returns the content of every node in document order.
func (d *Document) Contents() []string {
	contents := make([]string, len(d.order))
	for i, slot := range d.order {
		contents[i] = string(d.arena[slot].content)
	}
	return contents
}

// Text returns the node contents joined with newlines.
func (d *Document) Text() string {
	return strings.Join(d.Contents(), "\n")
}

// End returns the coordinate after the last character of the last node.
// For an empty document it returns the zero coordinate.
func (d *Document) End() Coordinate {
	if len(d.order) == 0 {
		return Coordinate{}
	}
	last := len(d.order) - 1
	return Coordinate{Node: last, Offset: d.NodeLen(last)}
}

// Clamp returns c moved into document bounds: the node index is clamped to
// [0, NodeCount-1] and the offset to [0, node length].
func (d *Document) Clamp(c Coordinate) Coordinate {
	if len(d.order) == 0 {
		return Coordinate{}
	}
	node := clampInt(c.Node, 0, len(d.order)-1)
	offset := clampInt(c.Offset, 0, d.NodeLen(node))
	return Coordinate{Node: node, Offset: offset}
}

// Validate returns an error if c does not address a position in the document.
func (d *Document) Validate(c Coordinate) error {
	n, err := d.at(c.Node)
	if err != nil {
		return err
	}
	if c.Offset < 0 || c.Offset > len(n.content) {
		return fmt.Errorf("offset %d in node %d of length %d: %w",
			c.Offset, c.Node, len(n.content), ErrInvalidCoordinate)
	}
	return nil
}

// at returns the arena entry for a document index.
func (d *Document) at(index int) (*contentNode, error) {
	if index < 0 || index >= len(d.order) {
		return nil, fmt.Errorf("node index %d: %w", index, ErrNotFound)
	}
	return &d.arena[d.order[index]], nil
}

// alloc stores a node in the arena, reusing a free slot when one exists.
func (d *Document) alloc(kind string, content []rune) int {
	n := contentNode{id: d.newID(), kind: kind, content: content}
	var slot int
	if len(d.free) > 0 {
		slot = d.free[len(d.free)-1]
		d.free = d.free[:len(d.free)-1]
		d.arena[slot] = n
	} else {
		slot = len(d.arena)
		d.arena = append(d.arena, n)
	}
	d.slots[n.id] = slot
	return slot
}

// release frees the arena slot at a document index and drops it from the order.
func (d *Document) release(index int) {
	slot := d.order[index]
	delete(d.slots, d.arena[slot].id)
	d.arena[slot] = contentNode{}
	d.free = append(d.free, slot)
	d.order = append(d.order[:index], d.order[index+1:]...)
}

// place inserts an arena slot into the order at a document index.
func (d *Document) place(index, slot int) {
	d.order = append(d.order, 0)
	copy(d.order[index+1:], d.order[index:])
	d.order[index] = slot
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
