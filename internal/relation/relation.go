// Package relation defines the verbs that label edges in the relations graph.
package relation

import "strings"

// Relation is the verb token of an atom (e.g. "loves").
// Any token can label an edge; only the Known verbs switch the current
// relation mid-sentence or classify questions.
type Relation string

const (
	Loves Relation = "loves"
	Likes Relation = "likes"
	Hates Relation = "hates"
)

// Known lists the closed verb vocabulary in canonical order.
var Known = []Relation{Loves, Likes, Hates}

var passive = map[Relation]string{
	Loves: "is loved by",
	Likes: "is liked by",
	Hates: "is hated by",
}

// IsKnown reports whether token is exactly one of the Known verbs.
// No conjugation or case folding is applied.
func IsKnown(token string) bool {
	_, ok := passive[Relation(token)]
	return ok
}

// Passive returns the passive voice phrase for r ("loves" -> "is loved by").
// Verbs outside the vocabulary get the naive stem: last character dropped, "d by" appended.
func (r Relation) Passive() string {
	if p, ok := passive[r]; ok {
		return p
	}
	s := string(r)
	if s != "" {
		s = s[:len(s)-1]
	}
	return "is " + s + "d by"
}

func (r Relation) String() string { return string(r) }

// Join renders relations as a comma separated list.
func Join(rels []Relation, sep string) string {
	parts := make([]string, len(rels))
	for i, r := range rels {
		parts[i] = string(r)
	}
	return strings.Join(parts, sep)
}
