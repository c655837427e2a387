// Package statement converts free-text statements such as
// "Alice loves Bob, Carol and Dave but hates Eve." into atoms.
package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CanopyHQ/lovegraph/internal/relation"
)

// ErrTooFewTokens is returned for a sentence with a subject but no verb.
var ErrTooFewTokens = errors.New("sentence needs a subject and a verb")

// ParseError reports a sentence that produced no atoms.
type ParseError struct {
	Sentence string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Sentence, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Atom is a single (subject, relation, object) triple.
type Atom struct {
	Subject  string
	Relation relation.Relation
	Object   string
}

// Reverse swaps subject and object, for insertion into a transpose graph.
func (a Atom) Reverse() Atom {
	return Atom{Subject: a.Object, Relation: a.Relation, Object: a.Subject}
}

func (a Atom) String() string {
	return a.Subject + " " + string(a.Relation) + " " + a.Object
}

// decorations are deleted as plain substrings, so names containing them
// are altered too ("Bandit" becomes "Bit").
var decorations = []string{",", "and", "but"}

// Parse converts one sentence into atoms.
//
// The first token is the subject for the whole sentence and the second the
// initial verb. A later token that is a known verb switches the verb for the
// tokens after it; any other token becomes an object. A blank sentence
// yields no atoms and no error.
func Parse(sentence string) ([]Atom, error) {
	text := strings.TrimSuffix(sentence, ".")
	for _, d := range decorations {
		text = strings.ReplaceAll(text, d, "")
	}

	tokens := strings.Fields(text)
	switch len(tokens) {
	case 0:
		return nil, nil
	case 1:
		return nil, &ParseError{Sentence: strings.TrimSpace(sentence), Err: ErrTooFewTokens}
	}

	subject := tokens[0]
	current := relation.Relation(tokens[1])
	var atoms []Atom
	for _, tok := range tokens[2:] {
		if relation.IsKnown(tok) {
			current = relation.Relation(tok)
			continue
		}
		atoms = append(atoms, Atom{Subject: subject, Relation: current, Object: tok})
	}
	return atoms, nil
}

// ParseText splits text on "." and parses each sentence, concatenating the
// atoms. Sentences that fail to parse are skipped; their errors are joined
// into the returned error alongside the atoms that did parse.
func ParseText(text string) ([]Atom, error) {
	var atoms []Atom
	var errs []error
	for _, sentence := range strings.Split(text, ".") {
		parsed, err := Parse(sentence)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		atoms = append(atoms, parsed...)
	}
	return atoms, errors.Join(errs...)
}
