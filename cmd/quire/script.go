package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/quire/internal/engine"
	"github.com/dshills/quire/internal/engine/boundary"
	"github.com/dshills/quire/internal/engine/cursor"
)

// Errors returned while replaying a script.
var (
	// ErrUnknownCommand indicates a line whose first word is not a command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrSyntax indicates malformed command arguments.
	ErrSyntax = errors.New("syntax error")

	// ErrExpectation indicates a failed expect command.
	ErrExpectation = errors.New("expectation failed")
)

// script replays editing commands against an engine, one per line.
//
//	append KIND TEXT           append a node
//	set N A [N A]              set the selection
//	move left|right [char|word]
//	expand left|right [char|word]
//	insert TEXT                replace the selection with TEXT ("quoted" keeps spaces)
//	delete                     delete the selection or the previous character
//	split [KIND]               split the node at the cursor
//	print                      print the nodes and the selection
//	expect node N [TEXT]
//	expect cursor N A
//	expect selection N A N A [left|right|none]
//	expect count N
//
// Blank lines and lines starting with # are skipped.
type script struct {
	e   *engine.Engine
	out io.Writer
}

func newScript(e *engine.Engine, out io.Writer) *script {
	return &script{e: e, out: out}
}

// run replays every line of r and stops at the first failing line.
func (s *script) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := s.exec(line); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}
	}
	return sc.Err()
}

func (s *script) exec(line string) error {
	name, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")

	switch name {
	case "append":
		kind, text, _ := strings.Cut(rest, " ")
		text, err := unquote(text)
		if err != nil {
			return err
		}
		_, err = s.e.AppendNode(kind, text)
		return err

	case "set":
		coords, err := parseInts(strings.Fields(rest), 2, 4)
		if err != nil {
			return err
		}
		start := engine.At(coords[0], coords[1])
		end := start
		if len(coords) == 4 {
			end = engine.At(coords[2], coords[3])
		}
		s.e.SetSelection(start, end)
		return nil

	case "move", "expand":
		dir, g, err := parseMotion(strings.Fields(rest))
		if err != nil {
			return err
		}
		if name == "move" {
			s.e.MoveSelection(dir, g)
		} else {
			s.e.ExpandSelection(dir, g)
		}
		return nil

	case "insert":
		text, err := unquote(rest)
		if err != nil {
			return err
		}
		return s.e.InsertContent(text)

	case "delete":
		return s.e.Delete()

	case "split":
		return s.e.InsertNode(strings.TrimSpace(rest))

	case "print":
		s.print()
		return nil

	case "expect":
		return s.expect(rest)

	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
}

func (s *script) print() {
	snap := s.e.Snapshot()
	for i, n := range snap.Nodes {
		fmt.Fprintf(s.out, "[%d] %s: %s\n", i, n.Kind, n.Content)
	}
	fmt.Fprintf(s.out, "%s %s\n", snap.Selection, snap.Selection.Direction)
}

func (s *script) expect(args string) error {
	what, rest, _ := strings.Cut(args, " ")
	sel := s.e.Selection()

	switch what {
	case "node":
		idxStr, want, _ := strings.Cut(rest, " ")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return fmt.Errorf("%w: node index %q", ErrSyntax, idxStr)
		}
		if want, err = unquote(want); err != nil {
			return err
		}
		n, err := s.e.Node(idx)
		if err != nil {
			return err
		}
		if n.Content != want {
			return fmt.Errorf("%w: node %d is %q, want %q", ErrExpectation, idx, n.Content, want)
		}

	case "cursor":
		c, err := parseInts(strings.Fields(rest), 2, 2)
		if err != nil {
			return err
		}
		want := cursor.NewCursorSelection(engine.At(c[0], c[1]))
		if sel != want {
			return fmt.Errorf("%w: selection is %s (%s), want %s", ErrExpectation, sel, sel.Direction, want)
		}

	case "selection":
		fields := strings.Fields(rest)
		dir := engine.None
		if len(fields) == 5 {
			if fields[4] != engine.None.String() {
				d, err := cursor.ParseDirection(fields[4])
				if err != nil {
					return fmt.Errorf("%w: %v", ErrSyntax, err)
				}
				dir = d
			}
			fields = fields[:4]
		}
		c, err := parseInts(fields, 4, 4)
		if err != nil {
			return err
		}
		want := engine.Selection{Start: engine.At(c[0], c[1]), End: engine.At(c[2], c[3]), Direction: dir}
		if sel != want {
			return fmt.Errorf("%w: selection is %s (%s), want %s (%s)", ErrExpectation, sel, sel.Direction, want, want.Direction)
		}

	case "count":
		c, err := parseInts(strings.Fields(rest), 1, 1)
		if err != nil {
			return err
		}
		if got := s.e.NodeCount(); got != c[0] {
			return fmt.Errorf("%w: %d nodes, want %d", ErrExpectation, got, c[0])
		}

	default:
		return fmt.Errorf("%w: unknown expectation %q", ErrSyntax, what)
	}
	return nil
}

func parseMotion(fields []string) (engine.Direction, engine.Granularity, error) {
	if len(fields) < 1 || len(fields) > 2 {
		return engine.None, engine.Char, fmt.Errorf("%w: expected direction [granularity]", ErrSyntax)
	}
	dir, err := cursor.ParseDirection(fields[0])
	if err != nil {
		return engine.None, engine.Char, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	g := engine.Char
	if len(fields) == 2 {
		if g, err = boundary.ParseGranularity(fields[1]); err != nil {
			return engine.None, engine.Char, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
	}
	return dir, g, nil
}

func parseInts(fields []string, lo, hi int) ([]int, error) {
	if len(fields) < lo || len(fields) > hi || len(fields)%2 != lo%2 {
		return nil, fmt.Errorf("%w: expected %d to %d numbers, got %d", ErrSyntax, lo, hi, len(fields))
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrSyntax, f)
		}
		out[i] = n
	}
	return out, nil
}

// unquote returns s, or its Go-unquoted value when s is double quoted.
func unquote(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) {
		return s, nil
	}
	u, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("%w: bad quoted text %s", ErrSyntax, s)
	}
	return u, nil
}
