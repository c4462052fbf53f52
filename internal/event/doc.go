// Package event provides the synchronous event bus the engine publishes on.
//
// Presentation layers subscribe to engine topics to learn about document and
// selection changes; the engine never calls them directly.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	document.changed   - Document content or structure changed
//	selection.changed  - The selection was set, moved or expanded
//
// # Wildcard Patterns
//
// Subscriptions support wildcard patterns:
//
//	document.*   - matches document.changed (single segment)
//	**           - matches every topic (zero or more segments)
//
// # Delivery
//
// Publish runs every matching handler in the publisher's goroutine, in
// subscription order, before returning. A handler that panics is recovered
// and reported as ErrHandlerPanic; remaining handlers still run.
package event
