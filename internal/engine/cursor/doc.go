// Package cursor provides selection management for the node-structured
// document.
//
// Selection Model:
//
// A Selection stores an ordered pair of coordinates (Start <= End) and a
// Direction recording which endpoint the user is extending:
//
//   - None: no expansion in progress (always the case for a collapsed
//     selection)
//   - Right: Start is the anchor and End moves
//   - Left: End is the anchor and Start moves
//
// Expanding toward the anchor shrinks the selection one step at a time. When
// it shrinks onto the anchor the direction returns to None, and a further
// step in the same direction grows the selection on the other side.
//
// Move collapses a range to the endpoint on the side of the move; on a
// collapsed selection it advances the cursor by one character or word.
//
// Selections are immutable value types. Operations return a new Selection,
// and edits replace the selection wholesale instead of patching it.
//
// Basic usage:
//
//	doc := document.New(document.WithNodes("Pack my box"))
//	f := boundary.New(doc)
//
//	sel := cursor.NewCursorSelection(document.At(0, 4))
//	sel = sel.Expand(f, cursor.Right, boundary.Char)  // [0,4]..[0,5], Right
//	sel = sel.Move(f, cursor.Right, boundary.Char)    // collapsed at [0,5]
//
// After a document edit, TransformCoordinate and TransformSelection map
// coordinates cached before the edit onto the edited document.
package cursor
