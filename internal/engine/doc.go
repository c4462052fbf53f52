// Package engine provides the structured-text editing engine for Quire.
//
// The engine package serves as the main facade, combining the node document,
// boundary finding and selection handling into a single editing session.
// Every operation mutates the document and then repositions the selection,
// and no intermediate state is observable by callers or event handlers.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - document: arena of content nodes addressed by (node, offset) coordinates
//   - boundary: character and word boundary finding across node breaks
//   - cursor: the selection state machine and coordinate transformation
//
// Changes are announced on an event.Bus after each operation completes.
//
// # Thread Safety
//
// All Engine operations are serialized by a read-write mutex. Read
// operations like Text() or Node() may run concurrently with each other.
// Events are published after the lock is released, so handlers may call
// back into the engine.
//
// # Basic Usage
//
//	e := engine.New(engine.WithNodes("Pack my box"))
//
//	e.SetSelection(engine.At(0, 4), engine.At(0, 4))
//	e.InsertNode("text")  // ["Pack", " my box"], cursor at [1,0]
//	e.Delete()            // ["Pack my box"], cursor at [0,4]
//
//	e.ExpandSelection(engine.Right, engine.Word)
//	e.InsertContent(" your") // "Pack your box"
//
// # Render Hooks
//
// OnRender registers a function that receives a Snapshot of the document
// and selection after every mutation and every selection change:
//
//	e.OnRender(func(s engine.Snapshot) {
//		draw(s.Contents(), s.Selection)
//	})
//
// # Empty Nodes
//
// By default a deletion that empties a node leaves a zero-length node in
// place. WithEmptyNodePolicy(PruneEmptyNodes) removes such a node instead,
// moving the cursor to the end of the previous node. The last remaining node
// is never removed.
package engine
