package cursor

import "github.com/dshills/quire/internal/engine/document"

// Change is an alias for document.Change for convenience.
type Change = document.Change

// TransformCoordinate maps a coordinate taken before a change onto the
// document after it.
//
// Transformation rules:
//   - Insert: positions at or after the insertion point in the same node
//     shift right by the inserted length
//   - Delete: positions inside the deleted range move to its start;
//     positions after it shift left, and nodes after a multi-node delete
//     shift up
//   - Split: positions at or after the split point move into the new node
//   - Merge: positions in the merged node move into the previous node after
//     the join point
//   - Remove: positions in the removed node move to the landing coordinate
func TransformCoordinate(c Coordinate, ch Change) Coordinate {
	switch ch.Kind {
	case document.ChangeInsert:
		if c.Node == ch.Start.Node && c.Offset >= ch.Start.Offset {
			return Coordinate{Node: c.Node, Offset: c.Offset + ch.End.Offset - ch.Start.Offset}
		}
	case document.ChangeDelete:
		if !c.After(ch.Start) {
			return c
		}
		if !c.After(ch.End) {
			return ch.Start
		}
		if c.Node == ch.End.Node {
			return Coordinate{Node: ch.Start.Node, Offset: ch.Start.Offset + c.Offset - ch.End.Offset}
		}
		return Coordinate{Node: c.Node - (ch.End.Node - ch.Start.Node), Offset: c.Offset}
	case document.ChangeSplit:
		if c.Node == ch.Start.Node && c.Offset >= ch.Start.Offset {
			return Coordinate{Node: c.Node + 1, Offset: c.Offset - ch.Start.Offset}
		}
		if c.Node > ch.Start.Node {
			return Coordinate{Node: c.Node + 1, Offset: c.Offset}
		}
	case document.ChangeMerge:
		if c.Node == ch.Start.Node {
			return Coordinate{Node: ch.End.Node, Offset: ch.End.Offset + c.Offset}
		}
		if c.Node > ch.Start.Node {
			return Coordinate{Node: c.Node - 1, Offset: c.Offset}
		}
	case document.ChangeRemove:
		if c.Node == ch.Start.Node {
			return ch.End
		}
		if c.Node > ch.Start.Node {
			return Coordinate{Node: c.Node - 1, Offset: c.Offset}
		}
	}
	return c
}

// TransformSelection updates a selection after a change.
// Both endpoints are transformed independently; a selection that collapses
// loses its direction.
func TransformSelection(sel Selection, ch Change) Selection {
	out := Selection{
		Start:     TransformCoordinate(sel.Start, ch),
		End:       TransformCoordinate(sel.End, ch),
		Direction: sel.Direction,
	}
	if out.IsCollapsed() {
		out.Direction = None
	}
	return out
}

// TransformCoordinates updates coordinates after a sequence of changes.
// Changes must be provided in the order they were applied.
func TransformCoordinates(coords []Coordinate, changes []Change) []Coordinate {
	result := make([]Coordinate, len(coords))
	for i, c := range coords {
		for _, ch := range changes {
			c = TransformCoordinate(c, ch)
		}
		result[i] = c
	}
	return result
}
