package document

import (
	"fmt"
	"strings"
)

// AppendNode adds a node with the given kind and content after the last node.
func (d *Document) AppendNode(kind, content string) Change {
	if kind == "" {
		kind = DefaultKind
	}
	slot := d.alloc(kind, []rune(content))
	index := len(d.order)
	d.place(index, slot)
	return Change{
		Kind:   ChangeAppend,
		Start:  Coordinate{Node: index},
		End:    Coordinate{Node: index, Offset: len(d.arena[slot].content)},
		Text:   content,
		NodeID: d.arena[slot].id,
	}
}

// InsertContent inserts text into the node at c.Node at c.Offset.
// It returns the coordinate immediately after the inserted text.
func (d *Document) InsertContent(c Coordinate, text string) (Coordinate, Change, error) {
	if err := d.Validate(c); err != nil {
		return c, Change{}, err
	}
	n, _ := d.at(c.Node)
	ins := []rune(text)

	content := make([]rune, 0, len(n.content)+len(ins))
	content = append(content, n.content[:c.Offset]...)
	content = append(content, ins...)
	content = append(content, n.content[c.Offset:]...)
	n.content = content

	end := Coordinate{Node: c.Node, Offset: c.Offset + len(ins)}
	return end, Change{Kind: ChangeInsert, Start: c, End: end, Text: text, NodeID: n.id}, nil
}

// DeleteRange removes the characters in [start, end). When the range spans
// several nodes, the head of the start node and the tail of the end node are
// joined into the start node and every node after it up to and including the
// end node is removed. It returns start, where the join now sits.
// A range ending after the document end fails with ErrBoundary.
func (d *Document) DeleteRange(start, end Coordinate) (Coordinate, Change, error) {
	r := NewRange(start, end)
	if last := d.End(); r.End.After(last) {
		return r.Start, Change{}, fmt.Errorf("delete to %s past document end %s: %w", r.End, last, ErrBoundary)
	}
	if err := d.Validate(r.Start); err != nil {
		return r.Start, Change{}, err
	}
	if err := d.Validate(r.End); err != nil {
		return r.Start, Change{}, err
	}

	first, _ := d.at(r.Start.Node)
	change := Change{Kind: ChangeDelete, Start: r.Start, End: r.End, NodeID: first.id}

	if r.IsSingleNode() {
		change.Text = string(first.content[r.Start.Offset:r.End.Offset])
		content := make([]rune, 0, len(first.content)-(r.End.Offset-r.Start.Offset))
		content = append(content, first.content[:r.Start.Offset]...)
		content = append(content, first.content[r.End.Offset:]...)
		first.content = content
		return r.Start, change, nil
	}

	last, _ := d.at(r.End.Node)

	var removed strings.Builder
	removed.WriteString(string(first.content[r.Start.Offset:]))
	for i := r.Start.Node + 1; i < r.End.Node; i++ {
		mid, _ := d.at(i)
		removed.WriteByte('\n')
		removed.WriteString(string(mid.content))
	}
	removed.WriteByte('\n')
	removed.WriteString(string(last.content[:r.End.Offset]))
	change.Text = removed.String()

	content := make([]rune, 0, r.Start.Offset+len(last.content)-r.End.Offset)
	content = append(content, first.content[:r.Start.Offset]...)
	content = append(content, last.content[r.End.Offset:]...)
	first.content = content

	for i := r.End.Node; i > r.Start.Node; i-- {
		d.release(i)
	}
	return r.Start, change, nil
}

// SplitNode splits the node at c.Node at c.Offset. The original node keeps
// [0, offset) and a new node of the given kind holding [offset, end) is
// inserted right after it. An empty kind reuses the original node's kind.
// It returns the start of the new node.
func (d *Document) SplitNode(c Coordinate, kind string) (Coordinate, Change, error) {
	if err := d.Validate(c); err != nil {
		return c, Change{}, err
	}
	n, _ := d.at(c.Node)
	if kind == "" {
		kind = n.kind
	}

	tail := make([]rune, len(n.content)-c.Offset)
	copy(tail, n.content[c.Offset:])
	n.content = n.content[:c.Offset:c.Offset]

	// alloc may grow the arena, so n must not be used after this point.
	slot := d.alloc(kind, tail)
	d.place(c.Node+1, slot)

	next := Coordinate{Node: c.Node + 1}
	return next, Change{Kind: ChangeSplit, Start: c, End: next, NodeID: d.arena[slot].id}, nil
}

// MergeWithPrevious appends the content of the node at index to the node
// before it and removes the node at index. It returns the join point, the
// coordinate in the previous node where the merged content begins.
func (d *Document) MergeWithPrevious(index int) (Coordinate, Change, error) {
	n, err := d.at(index)
	if err != nil {
		return Coordinate{}, Change{}, err
	}
	if index == 0 {
		return Coordinate{}, Change{}, fmt.Errorf("merge node 0 with previous: %w", ErrBoundary)
	}
	prev, _ := d.at(index - 1)

	join := Coordinate{Node: index - 1, Offset: len(prev.content)}
	change := Change{Kind: ChangeMerge, Start: Coordinate{Node: index}, End: join, NodeID: n.id}

	content := make([]rune, 0, len(prev.content)+len(n.content))
	content = append(content, prev.content...)
	content = append(content, n.content...)
	prev.content = content

	d.release(index)
	return join, change, nil
}

// RemoveNode removes the node at index. Coordinates that pointed into the
// removed node land at the end of the previous node, or at the start of the
// following node when index is 0. The last remaining node cannot be removed.
func (d *Document) RemoveNode(index int) (Coordinate, Change, error) {
	n, err := d.at(index)
	if err != nil {
		return Coordinate{}, Change{}, err
	}
	if len(d.order) == 1 {
		return Coordinate{}, Change{}, fmt.Errorf("remove only node: %w", ErrBoundary)
	}

	var landing Coordinate
	if index > 0 {
		landing = Coordinate{Node: index - 1, Offset: d.NodeLen(index - 1)}
	}
	change := Change{
		Kind:   ChangeRemove,
		Start:  Coordinate{Node: index},
		End:    landing,
		Text:   string(n.content),
		NodeID: n.id,
	}

	d.release(index)
	return landing, change, nil
}
