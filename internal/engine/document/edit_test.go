package document

import (
	"errors"
	"reflect"
	"testing"
)

const pangram = "Pack my box with five dozen liquor jugs"

func TestInsertContent(t *testing.T) {
	d := New(WithNodes("ab"))

	end, change, err := d.InsertContent(At(0, 1), "XYZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != At(0, 4) {
		t.Errorf("expected end [0,4], got %s", end)
	}
	if d.NodeText(0) != "aXYZb" {
		t.Errorf("expected %q, got %q", "aXYZb", d.NodeText(0))
	}
	if change.Kind != ChangeInsert || change.Start != At(0, 1) || change.End != end || change.Text != "XYZ" {
		t.Errorf("unexpected change %+v", change)
	}
	if d.NodeCount() != 1 {
		t.Errorf("insert must not change node count, got %d", d.NodeCount())
	}
}

func TestInsertContentAfterLastChar(t *testing.T) {
	d := New(WithNodes("first", pangram))

	if _, _, err := d.InsertContent(At(1, 39), "."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NodeText(1) != pangram+"." {
		t.Errorf("expected %q, got %q", pangram+".", d.NodeText(1))
	}
}

func TestInsertContentMultibyte(t *testing.T) {
	d := New(WithNodes("héllo"))

	end, _, err := d.InsertContent(At(0, 2), "ü")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NodeText(0) != "héüllo" || end != At(0, 3) {
		t.Errorf("got %q at %s", d.NodeText(0), end)
	}
}

func TestInsertContentInvalid(t *testing.T) {
	d := New(WithNodes("ab"))

	if _, _, err := d.InsertContent(At(0, 5), "x"); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
	if _, _, err := d.InsertContent(At(3, 0), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if d.NodeText(0) != "ab" {
		t.Error("failed insert must not mutate the document")
	}
}

func TestDeleteRangeSingleNode(t *testing.T) {
	d := New(WithNodes("abcdef"))

	at, change, err := d.DeleteRange(At(0, 1), At(0, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at != At(0, 1) || d.NodeText(0) != "aef" {
		t.Errorf("got %q at %s", d.NodeText(0), at)
	}
	if change.Text != "bcd" {
		t.Errorf("expected removed text %q, got %q", "bcd", change.Text)
	}
}

func TestDeleteRangeAcrossNodes(t *testing.T) {
	d := New(WithNodes("The quick brown fox", pangram, "middle", "Heavy boxes"))
	firstID := d.Nodes()[0].ID

	at, change, err := d.DeleteRange(At(0, 5), At(3, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at != At(0, 5) {
		t.Errorf("expected [0,5], got %s", at)
	}
	if !reflect.DeepEqual(d.Contents(), []string{"The qboxes"}) {
		t.Errorf("unexpected contents %q", d.Contents())
	}
	if d.Nodes()[0].ID != firstID {
		t.Error("start node should keep its id")
	}
	want := "uick brown fox\n" + pangram + "\nmiddle\nHeavy "
	if change.Text != want {
		t.Errorf("expected removed text %q, got %q", want, change.Text)
	}
}

func TestDeleteRangeReversedArguments(t *testing.T) {
	d := New(WithNodes("abc", "def"))

	at, _, err := d.DeleteRange(At(1, 1), At(0, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at != At(0, 2) || !reflect.DeepEqual(d.Contents(), []string{"abef"}) {
		t.Errorf("got %q at %s", d.Contents(), at)
	}
}

func TestDeleteRangeInvalidLeavesDocument(t *testing.T) {
	tests := []struct {
		name       string
		start, end Coordinate
		want       error
	}{
		{"offset past last node", At(0, 1), At(1, 9), ErrBoundary},
		{"node past last node", At(0, 1), At(5, 0), ErrBoundary},
		{"both past end", At(3, 0), At(4, 0), ErrBoundary},
		{"offset past inner node", At(0, 9), At(1, 1), ErrInvalidCoordinate},
		{"negative offset", At(0, -1), At(0, 2), ErrInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(WithNodes("abc", "def"))
			if _, _, err := d.DeleteRange(tt.start, tt.end); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !reflect.DeepEqual(d.Contents(), []string{"abc", "def"}) {
				t.Errorf("failed delete must not mutate, got %q", d.Contents())
			}
		})
	}
}

func TestDeleteRangePastEndSingleNode(t *testing.T) {
	d := New(WithNodes("abc"))

	if _, _, err := d.DeleteRange(At(0, 1), At(0, 99)); !errors.Is(err, ErrBoundary) {
		t.Errorf("expected ErrBoundary, got %v", err)
	}
	if got := d.Contents(); !reflect.DeepEqual(got, []string{"abc"}) {
		t.Errorf("failed delete must not mutate, got %q", got)
	}
}

func TestEditChangesNameEditedNode(t *testing.T) {
	d := New(WithNodes("abc", "def"))
	first, second := d.Nodes()[0].ID, d.Nodes()[1].ID

	_, ins, err := d.InsertContent(At(1, 1), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ins.NodeID != second {
		t.Errorf("insert NodeID = %q, want %q", ins.NodeID, second)
	}

	_, del, err := d.DeleteRange(At(0, 2), At(1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if del.NodeID != first {
		t.Errorf("delete NodeID = %q, want %q", del.NodeID, first)
	}
}

func TestDeleteRangeEmptiesNode(t *testing.T) {
	d := New(WithNodes("abc", "def"))

	if _, _, err := d.DeleteRange(At(0, 0), At(0, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := d.Node(0)
	if err != nil {
		t.Fatalf("empty node should be retained: %v", err)
	}
	if n.Content != "" || n.Len() != 0 {
		t.Errorf("expected empty node, got %q", n.Content)
	}
	if d.NodeCount() != 2 {
		t.Errorf("expected 2 nodes, got %d", d.NodeCount())
	}
}

func TestSplitNode(t *testing.T) {
	d := New(WithNodes("Pack my box"))
	origID := d.Nodes()[0].ID

	next, change, err := d.SplitNode(At(0, 4), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != At(1, 0) {
		t.Errorf("expected [1,0], got %s", next)
	}
	if !reflect.DeepEqual(d.Contents(), []string{"Pack", " my box"}) {
		t.Errorf("unexpected contents %q", d.Contents())
	}
	nodes := d.Nodes()
	if nodes[0].ID != origID {
		t.Error("split node should keep its id")
	}
	if nodes[1].ID != change.NodeID || nodes[1].ID == origID {
		t.Error("split-off node should get a new id")
	}
	if nodes[1].Kind != DefaultKind {
		t.Errorf("expected inherited kind, got %q", nodes[1].Kind)
	}
}

func TestSplitNodeWithKindAtEdges(t *testing.T) {
	d := New(WithNodes("abc"))

	if _, _, err := d.SplitNode(At(0, 3), "heading"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := d.SplitNode(At(0, 0), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(d.Contents(), []string{"", "abc", ""}) {
		t.Errorf("unexpected contents %q", d.Contents())
	}
	if k := d.Nodes()[2].Kind; k != "heading" {
		t.Errorf("expected kind heading, got %q", k)
	}
}

func TestMergeWithPrevious(t *testing.T) {
	d := New(WithNodes("abc", "def", "ghi"))
	firstID := d.Nodes()[0].ID

	join, change, err := d.MergeWithPrevious(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if join != At(0, 3) {
		t.Errorf("expected join [0,3], got %s", join)
	}
	if !reflect.DeepEqual(d.Contents(), []string{"abcdef", "ghi"}) {
		t.Errorf("unexpected contents %q", d.Contents())
	}
	if d.Nodes()[0].ID != firstID {
		t.Error("surviving node should keep its id")
	}
	if _, err := d.NodeByID(change.NodeID); !errors.Is(err, ErrNotFound) {
		t.Error("merged node should no longer resolve")
	}
}

func TestMergeWithPreviousBoundary(t *testing.T) {
	d := New(WithNodes("abc"))

	if _, _, err := d.MergeWithPrevious(0); !errors.Is(err, ErrBoundary) {
		t.Errorf("expected ErrBoundary, got %v", err)
	}
	if _, _, err := d.MergeWithPrevious(4); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if d.NodeText(0) != "abc" {
		t.Error("failed merge must not mutate")
	}
}

func TestRemoveNode(t *testing.T) {
	d := New(WithNodes("abc", "", "ghi"))

	landing, change, err := d.RemoveNode(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landing != At(0, 3) || change.Kind != ChangeRemove {
		t.Errorf("unexpected landing %s change %+v", landing, change)
	}
	landing, _, err = d.RemoveNode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landing != At(0, 0) || !reflect.DeepEqual(d.Contents(), []string{"ghi"}) {
		t.Errorf("got %q landing %s", d.Contents(), landing)
	}
	if _, _, err := d.RemoveNode(0); !errors.Is(err, ErrBoundary) {
		t.Errorf("expected ErrBoundary for last node, got %v", err)
	}
}

func TestArenaSlotsAreRecycled(t *testing.T) {
	d := New(WithNodes("a", "b", "c"))

	if _, _, err := d.MergeWithPrevious(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := d.SplitNode(At(1, 1), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.arena) != 3 {
		t.Errorf("expected freed slot to be reused, arena has %d slots", len(d.arena))
	}
	if !reflect.DeepEqual(d.Contents(), []string{"a", "b", "c"}) {
		t.Errorf("unexpected contents %q", d.Contents())
	}
	for i, n := range d.Nodes() {
		if idx, err := d.IndexOf(n.ID); err != nil || idx != i {
			t.Errorf("node %d: IndexOf returned %d (%v)", i, idx, err)
		}
	}
}

func TestSplitThenMergeRestores(t *testing.T) {
	for k := 0; k <= len(pangram); k += 5 {
		d := New(WithNodes("before", pangram))

		next, _, err := d.SplitNode(At(1, k), "")
		if err != nil {
			t.Fatalf("split at %d: %v", k, err)
		}
		join, _, err := d.MergeWithPrevious(next.Node)
		if err != nil {
			t.Fatalf("merge at %d: %v", k, err)
		}
		if join != At(1, k) {
			t.Errorf("split at %d: expected join [1,%d], got %s", k, k, join)
		}
		if !reflect.DeepEqual(d.Contents(), []string{"before", pangram}) {
			t.Errorf("split at %d: unexpected contents %q", k, d.Contents())
		}
	}
}

func TestInsertThenDeleteRestores(t *testing.T) {
	d := New(WithNodes("abc", "def"))

	end, _, err := d.InsertContent(At(1, 1), "inserted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := d.DeleteRange(At(1, 1), end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(d.Contents(), []string{"abc", "def"}) {
		t.Errorf("unexpected contents %q", d.Contents())
	}
}
