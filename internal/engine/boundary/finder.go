package boundary

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/quire/internal/engine/document"
)

// Coordinate is an alias for document.Coordinate for convenience.
type Coordinate = document.Coordinate

// Source is the read-only view of a document the finder scans.
type Source interface {
	NodeCount() int
	NodeText(index int) string
}

// Granularity is the unit of a boundary step.
type Granularity uint8

const (
	Char Granularity = iota
	Word
)

// String returns the granularity name.
func (g Granularity) String() string {
	switch g {
	case Char:
		return "char"
	case Word:
		return "word"
	default:
		return "unknown"
	}
}

// ParseGranularity parses "char" or "word". An empty string means Char.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "", "char":
		return Char, nil
	case "word":
		return Word, nil
	default:
		return Char, fmt.Errorf("unknown granularity %q", s)
	}
}

// nodeBreak is the cluster reported when a step crosses between nodes.
const nodeBreak = "\n"

// Option configures a Finder.
type Option func(*Finder)

// WithClassifier sets the word classifier. The default is Whitespace.
func WithClassifier(c Classifier) Option {
	return func(f *Finder) {
		if c != nil {
			f.classify = c
		}
	}
}

// Finder computes boundaries over a Source. It holds no document state of
// its own and reads the source on every call.
type Finder struct {
	src      Source
	classify Classifier
}

// New creates a Finder over src.
func New(src Source, opts ...Option) *Finder {
	f := &Finder{src: src, classify: Whitespace}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NextChar returns the coordinate one character after c. At the end of a
// node it moves to the start of the next node. At the end of the document it
// returns c unchanged and false.
func (f *Finder) NextChar(c Coordinate) (Coordinate, bool) {
	s := f.stream()
	next, _, ok := s.next(s.clamp(c))
	if !ok {
		return s.clamp(c), false
	}
	return next, true
}

// PrevChar returns the coordinate one character before c. At the start of a
// node it moves after the last character of the previous node. At the start
// of the document it returns c unchanged and false.
func (f *Finder) PrevChar(c Coordinate) (Coordinate, bool) {
	s := f.stream()
	prev, _, ok := s.prev(s.clamp(c))
	if !ok {
		return s.clamp(c), false
	}
	return prev, true
}

// NextWordBoundary skips whitespace after c, then the run of characters of
// the same class, and returns the position where that run ends.
func (f *Finder) NextWordBoundary(c Coordinate) Coordinate {
	s := f.stream()
	pos := s.clamp(c)

	next, cluster, ok := s.next(pos)
	for ok && f.classify(cluster) == ClassSpace {
		pos = next
		next, cluster, ok = s.next(pos)
	}
	if !ok {
		return pos
	}
	class := f.classify(cluster)
	for ok && f.classify(cluster) == class {
		pos = next
		next, cluster, ok = s.next(pos)
	}
	return pos
}

// PrevWordBoundary skips whitespace before c, then the run of characters of
// the same class, and returns the position where that run starts.
func (f *Finder) PrevWordBoundary(c Coordinate) Coordinate {
	s := f.stream()
	pos := s.clamp(c)

	prev, cluster, ok := s.prev(pos)
	for ok && f.classify(cluster) == ClassSpace {
		pos = prev
		prev, cluster, ok = s.prev(pos)
	}
	if !ok {
		return pos
	}
	class := f.classify(cluster)
	for ok && f.classify(cluster) == class {
		pos = prev
		prev, cluster, ok = s.prev(pos)
	}
	return pos
}

// Next steps forward from c by one unit of g, clamped at the document end.
func (f *Finder) Next(c Coordinate, g Granularity) Coordinate {
	if g == Word {
		return f.NextWordBoundary(c)
	}
	next, _ := f.NextChar(c)
	return next
}

// Prev steps backward from c by one unit of g, clamped at the document start.
func (f *Finder) Prev(c Coordinate, g Granularity) Coordinate {
	if g == Word {
		return f.PrevWordBoundary(c)
	}
	prev, _ := f.PrevChar(c)
	return prev
}

// Clamp moves c into document bounds and snaps its offset back to the start
// of the grapheme cluster containing it. It satisfies cursor.Clamper.
func (f *Finder) Clamp(c Coordinate) Coordinate {
	s := f.stream()
	c = s.clamp(c)
	if s.src.NodeCount() == 0 {
		return c
	}
	s.load(c.Node)
	for i := len(s.bounds) - 1; i > 0; i-- {
		if s.bounds[i] <= c.Offset {
			return Coordinate{Node: c.Node, Offset: s.bounds[i]}
		}
	}
	return Coordinate{Node: c.Node}
}

func (f *Finder) stream() *stream {
	return &stream{src: f.src, node: -1}
}

// stream walks the source cluster by cluster, caching the segmentation of
// the node it is currently in.
type stream struct {
	src Source

	node     int
	bounds   []int    // rune offsets where clusters start, then the node length
	clusters []string // clusters[i] spans bounds[i]..bounds[i+1]
}

func (s *stream) load(node int) {
	if s.node == node {
		return
	}
	s.node = node
	s.bounds = s.bounds[:0]
	s.clusters = s.clusters[:0]

	offset := 0
	g := uniseg.NewGraphemes(s.src.NodeText(node))
	for g.Next() {
		s.bounds = append(s.bounds, offset)
		s.clusters = append(s.clusters, g.Str())
		offset += len(g.Runes())
	}
	s.bounds = append(s.bounds, offset)
}

func (s *stream) length(node int) int {
	s.load(node)
	return s.bounds[len(s.bounds)-1]
}

func (s *stream) clamp(c Coordinate) Coordinate {
	count := s.src.NodeCount()
	if count == 0 {
		return Coordinate{}
	}
	node := min(max(c.Node, 0), count-1)
	offset := min(max(c.Offset, 0), s.length(node))
	return Coordinate{Node: node, Offset: offset}
}

// next returns the position after the cluster that follows c and that
// cluster. c must be clamped.
func (s *stream) next(c Coordinate) (Coordinate, string, bool) {
	if s.src.NodeCount() == 0 {
		return c, "", false
	}
	s.load(c.Node)
	if c.Offset < s.bounds[len(s.bounds)-1] {
		for i := 1; i < len(s.bounds); i++ {
			if s.bounds[i] > c.Offset {
				return Coordinate{Node: c.Node, Offset: s.bounds[i]}, s.clusters[i-1], true
			}
		}
	}
	if c.Node+1 < s.src.NodeCount() {
		return Coordinate{Node: c.Node + 1}, nodeBreak, true
	}
	return c, "", false
}

// prev returns the position before the cluster that precedes c and that
// cluster. c must be clamped.
func (s *stream) prev(c Coordinate) (Coordinate, string, bool) {
	if s.src.NodeCount() == 0 {
		return c, "", false
	}
	if c.Offset > 0 {
		s.load(c.Node)
		for i := len(s.bounds) - 2; i >= 0; i-- {
			if s.bounds[i] < c.Offset {
				return Coordinate{Node: c.Node, Offset: s.bounds[i]}, s.clusters[i], true
			}
		}
	}
	if c.Node > 0 {
		return Coordinate{Node: c.Node - 1, Offset: s.length(c.Node - 1)}, nodeBreak, true
	}
	return c, "", false
}
