// Package graph provides the directed, relation-labeled multigraph of named
// entities and renders natural-language descriptions of it.
//
// Callers keep two graphs in lockstep: a forward graph (subject -> objects)
// and a transpose graph built from the same atoms with subject and object
// swapped, so "who loves X" is a direct lookup instead of a scan.
package graph

import "github.com/CanopyHQ/lovegraph/internal/relation"

// Graph stores edges person -> relation -> ordered objects.
// Implementations keep first-insertion order for entities, for each
// entity's relations, and for objects; duplicate edges are kept.
type Graph interface {
	// Insert appends object to the sequence at [subject][rel].
	Insert(subject string, rel relation.Relation, object string) error
	// Entities returns every subject in first-insertion order.
	Entities() []string
	// Relations returns the relations recorded for person in first-insertion order.
	Relations(person string) []relation.Relation
	// Objects returns the objects recorded for person under rel.
	Objects(person string, rel relation.Relation) []string
}

type node struct {
	rels    []relation.Relation
	objects map[relation.Relation][]string
}

// Memory is the in-memory Graph. The zero value is not usable; call NewMemory.
type Memory struct {
	order []string
	nodes map[string]*node
}

// NewMemory creates an empty in-memory graph.
func NewMemory() *Memory {
	return &Memory{nodes: make(map[string]*node)}
}

// Insert never fails.
func (m *Memory) Insert(subject string, rel relation.Relation, object string) error {
	n, ok := m.nodes[subject]
	if !ok {
		n = &node{objects: make(map[relation.Relation][]string)}
		m.nodes[subject] = n
		m.order = append(m.order, subject)
	}
	if _, ok := n.objects[rel]; !ok {
		n.rels = append(n.rels, rel)
	}
	n.objects[rel] = append(n.objects[rel], object)
	return nil
}

func (m *Memory) Entities() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Memory) Relations(person string) []relation.Relation {
	n, ok := m.nodes[person]
	if !ok {
		return nil
	}
	out := make([]relation.Relation, len(n.rels))
	copy(out, n.rels)
	return out
}

func (m *Memory) Objects(person string, rel relation.Relation) []string {
	n, ok := m.nodes[person]
	if !ok {
		return nil
	}
	objs := n.objects[rel]
	out := make([]string, len(objs))
	copy(out, objs)
	return out
}
