// Package boundary finds character and word boundaries across the nodes of a
// document.
//
// A "character" is a user-perceived grapheme cluster, segmented with
// github.com/rivo/uniseg. Offsets are rune offsets, so one character step may
// advance an offset by more than one when a cluster has combining marks.
//
// The document is scanned as a single stream: stepping right from the end of
// a node lands at the start of the next node, and stepping left from the
// start of a node lands after the last character of the previous node. For
// word scanning the step across a node break counts as whitespace.
//
// Movement clamps at the start and end of the document; it never fails.
package boundary
