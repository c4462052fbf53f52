package boundary

import (
	"fmt"
	"unicode"
)

// Class is the category a word scan assigns to a character.
type Class uint8

const (
	ClassSpace Class = iota
	ClassWord
	ClassPunct
)

// Classifier maps a grapheme cluster to its class.
type Classifier func(cluster string) Class

// Whitespace splits words on whitespace only. Everything else is ClassWord.
func Whitespace(cluster string) Class {
	if isSpace(cluster) {
		return ClassSpace
	}
	return ClassWord
}

// Punctuation splits on whitespace and also treats runs of punctuation and
// symbols as words of their own, so "foo.bar" holds three words.
func Punctuation(cluster string) Class {
	if isSpace(cluster) {
		return ClassSpace
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return ClassWord
		}
	}
	return ClassPunct
}

// ClassifierByName returns the classifier registered under name.
// Known names are "whitespace" and "punctuation".
func ClassifierByName(name string) (Classifier, error) {
	switch name {
	case "", "whitespace":
		return Whitespace, nil
	case "punctuation":
		return Punctuation, nil
	default:
		return nil, fmt.Errorf("unknown word classifier %q", name)
	}
}

// isSpace reports whether every rune in cluster is Unicode whitespace.
func isSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
