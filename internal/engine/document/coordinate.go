package document

import "fmt"

// Coordinate addresses a position in the document.
// Node is the 0-indexed position of the node in document order and Offset is
// the 0-indexed rune offset inside that node's content. Offset may equal the
// node length, meaning the position after the last character.
type Coordinate struct {
	Node   int
	Offset int
}

// At returns the coordinate (node, offset).
func At(node, offset int) Coordinate {
	return Coordinate{Node: node, Offset: offset}
}

// String returns a human-readable representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("[%d,%d]", c.Node, c.Offset)
}

// Compare returns -1 if c < other, 0 if c == other, 1 if c > other.
// Coordinates are ordered by node index, then by offset.
func (c Coordinate) Compare(other Coordinate) int {
	if c.Node < other.Node {
		return -1
	}
	if c.Node > other.Node {
		return 1
	}
	if c.Offset < other.Offset {
		return -1
	}
	if c.Offset > other.Offset {
		return 1
	}
	return 0
}

// Before returns true if c comes before other.
func (c Coordinate) Before(other Coordinate) bool {
	return c.Compare(other) < 0
}

// After returns true if c comes after other.
func (c Coordinate) After(other Coordinate) bool {
	return c.Compare(other) > 0
}

// Range is a span between two coordinates.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Coordinate
	End   Coordinate
}

// NewRange creates a range from start and end, swapping them if needed so
// that Start <= End.
func NewRange(start, end Coordinate) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsSingleNode returns true if the range starts and ends in the same node.
func (r Range) IsSingleNode() bool {
	return r.Start.Node == r.End.Node
}

// Contains returns true if c is within [Start, End).
func (r Range) Contains(c Coordinate) bool {
	return c.Compare(r.Start) >= 0 && c.Before(r.End)
}
