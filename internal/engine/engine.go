package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/quire/internal/engine/boundary"
	"github.com/dshills/quire/internal/engine/cursor"
	"github.com/dshills/quire/internal/engine/document"
	"github.com/dshills/quire/internal/event"
)

// Re-export commonly used types for convenience.
type (
	// Coordinate is a (node index, character offset) position.
	Coordinate = document.Coordinate

	// Node is a read-only view of a content node.
	Node = document.Node

	// NodeID uniquely identifies a content node.
	NodeID = document.NodeID

	// Change describes an applied document mutation.
	Change = document.Change

	// Selection is the current selection with its expansion direction.
	Selection = cursor.Selection

	// Direction is a selection direction.
	Direction = cursor.Direction

	// Granularity is the unit of movement.
	Granularity = boundary.Granularity
)

// Re-export constants.
const (
	None  = cursor.None
	Left  = cursor.Left
	Right = cursor.Right

	Char = boundary.Char
	Word = boundary.Word
)

// At returns the coordinate (node, offset).
func At(node, offset int) Coordinate {
	return document.At(node, offset)
}

// eventSource is the Source recorded on published events.
const eventSource = "engine"

// Snapshot is an immutable view of the document and selection, handed to
// render hooks.
type Snapshot struct {
	Nodes     []Node
	Selection Selection
}

// Contents returns the content of every node in the snapshot.
func (s Snapshot) Contents() []string {
	contents := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		contents[i] = n.Content
	}
	return contents
}

// DocumentChanged is the payload of event.TopicDocumentChanged.
type DocumentChanged struct {
	Op       string
	Changes  []Change
	Snapshot Snapshot
}

// SelectionChanged is the payload of event.TopicSelectionChanged.
type SelectionChanged struct {
	Previous Selection
	Snapshot Snapshot
}

// Engine is the editing session: it owns the document and the selection and
// applies every operation to both atomically.
//
// All operations are serialized by a mutex. Events are published after the
// lock is released, so handlers may call back into the engine.
type Engine struct {
	mu sync.RWMutex

	// Core components
	doc    *document.Document
	sel    cursor.Selection
	finder *boundary.Finder
	bus    *event.Bus
	logger *zap.Logger

	// Configuration
	policy      EmptyNodePolicy
	defaultKind string
	kinds       map[string]struct{} // nil allows any kind
	classifier  boundary.Classifier
	readOnly    bool

	// Initialization
	docOpts []document.Option
}

// New creates a new Engine with the given options.
// The selection starts collapsed at the start of the document.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      zap.NewNop(),
		defaultKind: document.DefaultKind,
		classifier:  boundary.Whitespace,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = event.NewBus(event.WithLogger(e.logger))
	}

	e.doc = document.New(e.docOpts...)
	e.docOpts = nil
	e.finder = boundary.New(e.doc, boundary.WithClassifier(e.classifier))
	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Node returns the node at the given index.
func (e *Engine) Node(index int) (Node, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, err := e.doc.Node(index)
	if err != nil {
		return Node{}, &OpError{Op: "getNode", Coord: At(index, 0), Err: err}
	}
	return n, nil
}

// NodeByID returns the node with the given id.
func (e *Engine) NodeByID(id NodeID) (Node, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, err := e.doc.NodeByID(id)
	if err != nil {
		return Node{}, &OpError{Op: "getNode", Err: err}
	}
	return n, nil
}

// IndexOf returns the document index of the node with the given id.
func (e *Engine) IndexOf(id NodeID) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	i, err := e.doc.IndexOf(id)
	if err != nil {
		return -1, &OpError{Op: "getNode", Err: err}
	}
	return i, nil
}

// NodeCount returns the number of nodes.
func (e *Engine) NodeCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.NodeCount()
}

// Contents returns the content of every node in document order.
func (e *Engine) Contents() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Contents()
}

// Text returns the node contents joined with newlines.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Text()
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// Snapshot returns an immutable view of the document and selection.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot()
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{Nodes: e.doc.Nodes(), Selection: e.sel}
}

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Selection Operations
// ============================================================================

// SetSelection sets the selection to cover start and end, in either order.
// Out-of-range coordinates are clamped into the document. The direction is
// reset to None.
func (e *Engine) SetSelection(start, end Coordinate) Selection {
	return e.updateSelection("setSelection", func(Selection) Selection {
		return cursor.NewClampedSelection(e.finder, start, end)
	})
}

// MoveSelection collapses a range toward dir, or moves a collapsed cursor by
// one unit of g. Movement clamps at the document edges.
func (e *Engine) MoveSelection(dir Direction, g Granularity) Selection {
	return e.updateSelection("moveSelection", func(s Selection) Selection {
		return s.Move(e.finder, dir, g)
	})
}

// ExpandSelection moves the head of the selection by one unit of g in dir,
// keeping the anchor fixed.
func (e *Engine) ExpandSelection(dir Direction, g Granularity) Selection {
	return e.updateSelection("expandSelection", func(s Selection) Selection {
		return s.Expand(e.finder, dir, g)
	})
}

func (e *Engine) updateSelection(op string, fn func(Selection) Selection) Selection {
	e.mu.Lock()
	prev := e.sel
	e.sel = fn(prev)
	sel := e.sel
	snap := e.snapshot()
	e.mu.Unlock()

	if sel == prev {
		return sel
	}
	e.logger.Debug(op,
		zap.Stringer("start", sel.Start),
		zap.Stringer("end", sel.End),
		zap.Stringer("direction", sel.Direction))
	e.publish(event.TopicSelectionChanged, SelectionChanged{Previous: prev, Snapshot: snap})
	return sel
}

// ============================================================================
// Write Operations
// ============================================================================

// InsertContent replaces the selection with text. A range is deleted first;
// the text is then inserted at the cursor, which ends up collapsed after the
// inserted text. On an empty document a node of the default kind is created.
func (e *Engine) InsertContent(text string) error {
	return e.mutate("insertContent", func() ([]Change, error) {
		return e.insertContentLocked(text)
	})
}

// Write is an alias for InsertContent.
func (e *Engine) Write(text string) error {
	return e.InsertContent(text)
}

func (e *Engine) insertContentLocked(text string) ([]Change, error) {
	var changes []Change
	if e.doc.IsEmpty() {
		changes = append(changes, e.doc.AppendNode(e.defaultKind, ""))
		e.sel = cursor.NewCursorSelection(At(0, 0))
	}
	if e.sel.IsCollapsed() && text == "" {
		return changes, nil
	}

	at := e.sel.Start
	if !e.sel.IsCollapsed() {
		deleted, err := e.deleteRangeLocked(e.sel.Start, e.sel.End)
		if err != nil {
			return nil, err
		}
		changes = append(changes, deleted...)
		at = e.sel.Start
		if text == "" {
			return changes, nil
		}
	}

	end, ch, err := e.doc.InsertContent(at, text)
	if err != nil {
		return changes, &OpError{Op: "insertContent", Coord: at, Err: err}
	}
	e.sel = cursor.NewCursorSelection(end)
	return append(changes, ch), nil
}

// Delete removes the selected range, or the character before a collapsed
// cursor. At the start of a node the node is merged into the previous one;
// at the start of the document Delete does nothing.
func (e *Engine) Delete() error {
	return e.mutate("delete", e.deleteLocked)
}

func (e *Engine) deleteLocked() ([]Change, error) {
	if e.doc.IsEmpty() {
		return nil, nil
	}
	if !e.sel.IsCollapsed() {
		return e.deleteRangeLocked(e.sel.Start, e.sel.End)
	}

	c := e.sel.Start
	if c.Offset > 0 {
		prev, _ := e.finder.PrevChar(c)
		return e.deleteRangeLocked(prev, c)
	}
	if c.Node == 0 {
		return nil, nil
	}

	join, ch, err := e.doc.MergeWithPrevious(c.Node)
	if err != nil {
		return nil, &OpError{Op: "delete", Coord: c, Err: err}
	}
	e.sel = cursor.NewCursorSelection(join)
	changes := []Change{ch}
	return append(changes, e.pruneLocked()...), nil
}

// deleteRangeLocked deletes [start, end) and collapses the selection at start.
func (e *Engine) deleteRangeLocked(start, end Coordinate) ([]Change, error) {
	at, ch, err := e.doc.DeleteRange(start, end)
	if err != nil {
		return nil, &OpError{Op: "deleteRange", Coord: start, Err: err}
	}
	e.sel = cursor.NewCursorSelection(at)
	changes := []Change{ch}
	return append(changes, e.pruneLocked()...), nil
}

// pruneLocked removes the node under a collapsed cursor if the policy asks
// for it and the node is empty.
func (e *Engine) pruneLocked() []Change {
	c := e.sel.Start
	if e.policy != PruneEmptyNodes || e.doc.NodeCount() < 2 || e.doc.NodeLen(c.Node) != 0 {
		return nil
	}
	landing, ch, err := e.doc.RemoveNode(c.Node)
	if err != nil {
		return nil
	}
	e.sel = cursor.NewCursorSelection(landing)
	return []Change{ch}
}

// InsertNode splits the node under the cursor, giving the second half the
// given kind (the default kind when empty), and moves the cursor to the
// start of the new node. The selection must be collapsed.
func (e *Engine) InsertNode(kind string) error {
	return e.mutate("insertNode", func() ([]Change, error) {
		return e.insertNodeLocked(kind)
	})
}

func (e *Engine) insertNodeLocked(kind string) ([]Change, error) {
	if kind == "" {
		kind = e.defaultKind
	}
	if !e.kindAllowed(kind) {
		return nil, &OpError{Op: "insertNode", Coord: e.sel.Start, Err: ErrUnknownNodeKind}
	}
	if !e.sel.IsCollapsed() {
		return nil, &OpError{Op: "insertNode", Coord: e.sel.Start, Err: ErrInvalidState}
	}

	var changes []Change
	if e.doc.IsEmpty() {
		changes = append(changes, e.doc.AppendNode(e.defaultKind, ""))
		e.sel = cursor.NewCursorSelection(At(0, 0))
	}

	next, ch, err := e.doc.SplitNode(e.sel.Start, kind)
	if err != nil {
		return changes, &OpError{Op: "insertNode", Coord: e.sel.Start, Err: err}
	}
	e.sel = cursor.NewCursorSelection(next)
	return append(changes, ch), nil
}

// AppendNode adds a node after the last node without moving the selection.
func (e *Engine) AppendNode(kind, text string) (NodeID, error) {
	var id NodeID
	err := e.mutate("appendNode", func() ([]Change, error) {
		if kind == "" {
			kind = e.defaultKind
		}
		if !e.kindAllowed(kind) {
			return nil, &OpError{Op: "appendNode", Coord: e.doc.End(), Err: ErrUnknownNodeKind}
		}
		ch := e.doc.AppendNode(kind, text)
		id = ch.NodeID
		return []Change{ch}, nil
	})
	return id, err
}

func (e *Engine) kindAllowed(kind string) bool {
	if e.kinds == nil {
		return true
	}
	_, ok := e.kinds[kind]
	return ok
}

// mutate runs fn under the write lock and publishes the resulting changes.
// Every fn validates before mutating, so an error means nothing changed.
func (e *Engine) mutate(op string, fn func() ([]Change, error)) error {
	if e.readOnly {
		return &OpError{Op: op, Err: ErrReadOnly}
	}

	e.mu.Lock()
	before := e.sel
	changes, err := fn()
	if err != nil {
		e.sel = before
	}
	sel := e.sel
	snap := e.snapshot()
	e.mu.Unlock()

	if err != nil {
		e.logger.Debug(op+" rejected", zap.Stringer("at", sel.Start), zap.Error(err))
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	e.logger.Debug(op,
		zap.Stringer("start", sel.Start),
		zap.Stringer("end", sel.End),
		zap.Int("changes", len(changes)),
		zap.Int("nodes", len(snap.Nodes)))
	e.publish(event.TopicDocumentChanged, DocumentChanged{Op: op, Changes: changes, Snapshot: snap})
	return nil
}

// ============================================================================
// Events
// ============================================================================

// Bus returns the event bus the engine publishes on.
func (e *Engine) Bus() *event.Bus {
	return e.bus
}

// Subscribe registers a handler for engine events matching pattern.
func (e *Engine) Subscribe(pattern event.Topic, h event.Handler) (*event.Subscription, error) {
	return e.bus.Subscribe(pattern, h)
}

// OnRender registers a render hook. It is invoked with a snapshot after
// every document mutation and every selection change.
func (e *Engine) OnRender(fn func(Snapshot)) (*event.Subscription, error) {
	if fn == nil {
		return nil, event.ErrNilHandler
	}
	return e.bus.Subscribe(event.WildcardMulti, func(_ context.Context, ev event.Event) error {
		switch p := ev.Payload.(type) {
		case DocumentChanged:
			fn(p.Snapshot)
		case SelectionChanged:
			fn(p.Snapshot)
		}
		return nil
	})
}

func (e *Engine) publish(t event.Topic, payload any) {
	// Handler failures are logged by the bus and never undo an applied edit.
	_ = e.bus.Publish(context.Background(), event.NewEvent(t, payload, eventSource))
}
