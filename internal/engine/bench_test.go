package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeEngine(b *testing.B, nodes int) *Engine {
	b.Helper()
	contents := make([]string, nodes)
	line := strings.Repeat("lorem ipsum ", 8)
	for i := range contents {
		contents[i] = line
	}
	return New(WithNodes(contents...))
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkEngineText(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Text()
	}
}

func BenchmarkEngineNode(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.Node(i % 10000)
	}
}

func BenchmarkEngineSnapshot(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Snapshot()
	}
}

// ============================================================================
// Selection Benchmarks
// ============================================================================

func BenchmarkEngineMoveChar(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.MoveSelection(Right, Char)
	}
}

func BenchmarkEngineMoveWord(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.MoveSelection(Right, Word)
	}
}

func BenchmarkEngineExpandWord(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.ExpandSelection(Right, Word)
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkEngineInsertContent(b *testing.B) {
	e := New(WithNodes(""))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.InsertContent("x")
	}
}

func BenchmarkEngineInsertNodeDelete(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	e.SetSelection(At(500, 6), At(500, 6))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.InsertNode("")
		_ = e.Delete()
	}
}

func BenchmarkEngineDeleteRange(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := setupLargeEngine(b, 1000)
		e.SetSelection(At(100, 3), At(900, 3))
		b.StartTimer()

		_ = e.Delete()
	}
}

// ============================================================================
// Workflow Benchmarks
// ============================================================================

func BenchmarkEngineTypicalEditWorkflow(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	var renders int
	_, _ = e.OnRender(func(Snapshot) { renders++ })
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.SetSelection(At(i%1000, 0), At(i%1000, 0))
		e.ExpandSelection(Right, Word)
		_ = e.InsertContent("dolor")
		e.MoveSelection(Left, Word)
	}
}
