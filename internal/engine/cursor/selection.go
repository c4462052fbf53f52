package cursor

import (
	"fmt"

	"github.com/dshills/quire/internal/engine/boundary"
	"github.com/dshills/quire/internal/engine/document"
)

// Coordinate is an alias for document.Coordinate for convenience.
type Coordinate = document.Coordinate

// Range is an alias for document.Range for convenience.
type Range = document.Range

// Direction is the side a selection is being extended toward.
type Direction uint8

const (
	None Direction = iota
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return None, fmt.Errorf("unknown direction %q", s)
	}
}

// Clamper moves coordinates into document bounds.
type Clamper interface {
	Clamp(c Coordinate) Coordinate
}

// Stepper finds the next or previous boundary of a coordinate.
// *boundary.Finder satisfies it.
type Stepper interface {
	Next(c Coordinate, g boundary.Granularity) Coordinate
	Prev(c Coordinate, g boundary.Granularity) Coordinate
}

// Selection is a range of the document with an expansion direction.
// Start <= End always holds. Selection is an immutable value type.
type Selection struct {
	Start     Coordinate
	End       Coordinate
	Direction Direction
}

// NewSelection creates a selection covering start and end in either order,
// with no direction.
func NewSelection(start, end Coordinate) Selection {
	r := document.NewRange(start, end)
	return Selection{Start: r.Start, End: r.End}
}

// NewCursorSelection creates a collapsed selection at c.
func NewCursorSelection(c Coordinate) Selection {
	return Selection{Start: c, End: c}
}

// NewClampedSelection creates a selection like NewSelection after clamping
// both endpoints into the bounds of cl.
func NewClampedSelection(cl Clamper, start, end Coordinate) Selection {
	return NewSelection(cl.Clamp(start), cl.Clamp(end))
}

// IsCollapsed returns true if the selection is a cursor (Start == End).
func (s Selection) IsCollapsed() bool {
	return s.Start == s.End
}

// Range returns the selected range.
func (s Selection) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// Anchor returns the endpoint held fixed while expanding.
func (s Selection) Anchor() Coordinate {
	if s.Direction == Left {
		return s.End
	}
	return s.Start
}

// Head returns the endpoint that moves while expanding.
func (s Selection) Head() Coordinate {
	if s.Direction == Left {
		return s.Start
	}
	return s.End
}

// Move collapses a range to its endpoint on the dir side. A collapsed
// selection moves one unit of g in dir, clamped at the document edges.
// The result always has no direction.
func (s Selection) Move(st Stepper, dir Direction, g boundary.Granularity) Selection {
	if !s.IsCollapsed() {
		switch dir {
		case Left:
			return NewCursorSelection(s.Start)
		case Right:
			return NewCursorSelection(s.End)
		default:
			return s
		}
	}
	switch dir {
	case Left:
		return NewCursorSelection(st.Prev(s.Start, g))
	case Right:
		return NewCursorSelection(st.Next(s.End, g))
	default:
		return NewCursorSelection(s.Start)
	}
}

// Expand moves the head of the selection one unit of g in dir while the
// anchor stays fixed.
//
// With no direction, the endpoint on the dir side moves outward and the
// direction becomes dir. Expanding in the current direction grows the
// selection; expanding against it shrinks the selection toward the anchor.
// Shrinking onto (or past) the anchor collapses the selection there and
// resets the direction to None.
func (s Selection) Expand(st Stepper, dir Direction, g boundary.Granularity) Selection {
	switch s.Direction {
	case Right:
		if dir == Right {
			return Selection{Start: s.Start, End: st.Next(s.End, g), Direction: Right}
		}
		if dir == Left {
			end := st.Prev(s.End, g)
			if !end.After(s.Start) {
				return NewCursorSelection(s.Start)
			}
			return Selection{Start: s.Start, End: end, Direction: Right}
		}
	case Left:
		if dir == Left {
			return Selection{Start: st.Prev(s.Start, g), End: s.End, Direction: Left}
		}
		if dir == Right {
			start := st.Next(s.Start, g)
			if !start.Before(s.End) {
				return NewCursorSelection(s.End)
			}
			return Selection{Start: start, End: s.End, Direction: Left}
		}
	default:
		if dir == Right {
			end := st.Next(s.End, g)
			if end == s.End {
				return s
			}
			return Selection{Start: s.Start, End: end, Direction: Right}
		}
		if dir == Left {
			start := st.Prev(s.Start, g)
			if start == s.Start {
				return s
			}
			return Selection{Start: start, End: s.End, Direction: Left}
		}
	}
	return s
}

// Clamp returns the selection with both endpoints clamped into cl's bounds.
// The direction is kept unless the clamped selection is collapsed.
func (s Selection) Clamp(cl Clamper) Selection {
	out := Selection{Start: cl.Clamp(s.Start), End: cl.Clamp(s.End), Direction: s.Direction}
	if out.IsCollapsed() {
		out.Direction = None
	}
	return out
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Cursor(%s)", s.Start)
	}
	dir := ""
	switch s.Direction {
	case Left:
		dir = "←"
	case Right:
		dir = "→"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Start, dir, s.End)
}

// Equals returns true if two selections have the same endpoints and direction.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// SameRange returns true if two selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start == other.Start && s.End == other.End
}
