package document

import "fmt"

// ChangeKind categorizes a document mutation.
type ChangeKind uint8

const (
	ChangeInsert ChangeKind = iota // Text was inserted inside a node
	ChangeDelete                   // A range was removed
	ChangeSplit                    // A node was split in two
	ChangeMerge                    // A node was merged into its predecessor
	ChangeRemove                   // A node was removed
	ChangeAppend                   // A node was appended
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeSplit:
		return "split"
	case ChangeMerge:
		return "merge"
	case ChangeRemove:
		return "remove"
	case ChangeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Change describes a single applied mutation.
//
// The meaning of Start and End depends on Kind:
//
//   - ChangeInsert: Start is the insertion point, End the coordinate after
//     the inserted text.
//   - ChangeDelete: Start and End are the removed range in pre-edit
//     coordinates.
//   - ChangeSplit: Start is the split point; End is the start of the new node.
//   - ChangeMerge: Start is (merged node, 0) in pre-edit coordinates; End is
//     the join point in the previous node.
//   - ChangeRemove: Start is (removed node, 0); End is where coordinates that
//     pointed into the removed node now land.
//   - ChangeAppend: Start is (new node, 0).
type Change struct {
	Kind   ChangeKind
	Start  Coordinate
	End    Coordinate
	Text   string // inserted or removed text, node breaks as "\n"
	NodeID NodeID // edited node (insert, delete), created (split, append) or destroyed (merge, remove)
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("%s%s->%s", c.Kind, c.Start, c.End)
}
