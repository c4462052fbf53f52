// Package document provides the node-structured document model used by the
// editing engine.
//
// A Document is an ordered sequence of content nodes (paragraphs). Each node
// has a stable NodeID, a kind (for example "text") and a run of characters.
// Positions are addressed with a Coordinate, a (node index, character offset)
// pair where offsets count runes and an offset equal to the node length means
// "after the last character".
//
// Storage:
//
// Nodes live in an arena (a dense slice) and the document order is a separate
// list of arena slots. Splitting, merging and removing nodes rewrite that
// order list and recycle freed slots, so node ids never change when the
// structure around them does.
//
// Mutations:
//
//   - InsertContent: insert text inside a node
//   - DeleteRange: remove the characters between two coordinates, joining
//     the boundary nodes when the range spans more than one node
//   - SplitNode: break a node in two at a coordinate
//   - MergeWithPrevious: append a node's content to its predecessor
//   - RemoveNode / AppendNode: structural edits used by the engine
//
// Every mutation validates its arguments before touching the document and
// returns a Change describing what happened, which callers can use to
// revalidate coordinates they cached before the edit.
//
// Thread Safety:
//
// Document is not safe for concurrent use. The engine serializes access.
package document
