package graph

import (
	"fmt"
	"strings"

	"github.com/CanopyHQ/lovegraph/internal/relation"
)

// SmartCommas joins items as "a", "a and b", "a, b and c".
func SmartCommas(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// DescribeAttitude verbalizes whom person relates to under rel.
//
// With reverse set, g is expected to be a transpose graph and the verb is
// rendered in passive voice ("Bob is loved by Alice"). With short set the
// leading person is omitted, for chaining several relations of one person.
func DescribeAttitude(g Graph, person string, rel relation.Relation, reverse, short bool) string {
	objects := g.Objects(person, rel)
	if len(objects) == 0 {
		if reverse {
			return fmt.Sprintf("No information on who %s %s", rel, person)
		}
		return fmt.Sprintf("No information on whom %s %s", person, rel)
	}

	verb := string(rel)
	if reverse {
		verb = rel.Passive()
	}
	parts := []string{person, verb, SmartCommas(objects)}
	if short {
		parts = parts[1:]
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// DescribePerson verbalizes every relation recorded for person, or returns
// "" when person is not in g.
func DescribePerson(g Graph, person string, reverse bool) string {
	rels := g.Relations(person)
	if len(rels) == 0 {
		return ""
	}
	descriptions := make([]string, 0, len(rels))
	for _, rel := range rels {
		descriptions = append(descriptions, DescribeAttitude(g, person, rel, reverse, true))
	}
	return person + " " + SmartCommas(descriptions)
}
