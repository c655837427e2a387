// Package query classifies questions about the relations graph and answers them.
package query

import (
	"fmt"
	"strings"

	"github.com/CanopyHQ/lovegraph/internal/graph"
	"github.com/CanopyHQ/lovegraph/internal/relation"
)

// Shape is the recognized form of a question.
type Shape int

const (
	// Unclear matches no other shape.
	Unclear Shape = iota
	// Whom is "Whom <verb> <person>" or "Whom <person> <verb>".
	Whom
	// Who is "Who <verb> <person>".
	Who
	// PersonRelation is "<person> <verb>".
	PersonRelation
	// Person is "<person>".
	Person
)

func (s Shape) String() string {
	switch s {
	case Whom:
		return "whom"
	case Who:
		return "who"
	case PersonRelation:
		return "person-relation"
	case Person:
		return "person"
	default:
		return "unclear"
	}
}

// UnclearAnswer is returned for questions of no recognized shape.
const UnclearAnswer = "The question is unclear."

// Query is a classified question.
type Query struct {
	Shape    Shape
	Person   string
	Relation relation.Relation
}

// Classify determines the shape of question. Only the leading who/whom
// keyword is matched case-insensitively; verbs and names are literal.
func Classify(question string) Query {
	tokens := strings.Fields(question)
	lead := ""
	if len(tokens) > 0 {
		lead = strings.ToLower(tokens[0])
	}

	switch {
	case len(tokens) == 3 && lead == "whom":
		if relation.IsKnown(tokens[1]) {
			return Query{Shape: Whom, Relation: relation.Relation(tokens[1]), Person: tokens[2]}
		}
		return Query{Shape: Whom, Person: tokens[1], Relation: relation.Relation(tokens[2])}
	case len(tokens) == 3 && lead == "who":
		return Query{Shape: Who, Relation: relation.Relation(tokens[1]), Person: tokens[2]}
	case len(tokens) == 2 && lead != "who" && lead != "whom":
		return Query{Shape: PersonRelation, Person: tokens[0], Relation: relation.Relation(tokens[1])}
	case len(tokens) == 1:
		return Query{Shape: Person, Person: tokens[0]}
	}
	return Query{Shape: Unclear}
}

// Answer classifies question and resolves it against the forward graph and
// its transpose. Neither graph is modified.
func Answer(question string, forward, transpose graph.Graph) string {
	return Resolve(Classify(question), forward, transpose)
}

// Resolve answers an already classified query.
func Resolve(q Query, forward, transpose graph.Graph) string {
	switch q.Shape {
	case Whom, PersonRelation:
		return graph.DescribeAttitude(forward, q.Person, q.Relation, false, false)
	case Who:
		return graph.DescribeAttitude(transpose, q.Person, q.Relation, true, false)
	case Person:
		return describeBoth(q.Person, forward, transpose)
	}
	return UnclearAnswer
}

func describeBoth(person string, forward, transpose graph.Graph) string {
	fwd := graph.DescribePerson(forward, person, false)
	back := graph.DescribePerson(transpose, person, true)
	switch {
	case fwd == "" && back == "":
		return fmt.Sprintf("No info on %s.", person)
	case fwd == "" || back == "":
		return fwd + back + "."
	}
	return fwd + ". " + back + "."
}
