// Package sqlitegraph implements graph.Graph on an in-memory SQLite database.
package sqlitegraph

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/CanopyHQ/lovegraph/internal/relation"
)

// Edge is one stored row of the graph
type Edge struct {
	Seq       int64
	ID        string
	Subject   string
	Relation  relation.Relation
	Object    string
	CreatedAt time.Time
}

// Store keeps edges in a private in-memory database. Each Store is
// independent; a forward/transpose pair is two Stores.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open creates an empty in-memory store. logger may be nil.
func Open(logger *log.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if logger == nil {
		logger = log.Default()
	}
	s := &Store{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS edges (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		subject TEXT NOT NULL,
		relation TEXT NOT NULL,
		object TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_edges_subject_relation ON edges(subject, relation);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database; the graph contents are gone afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert appends an edge.
func (s *Store) Insert(subject string, rel relation.Relation, object string) error {
	_, err := s.db.Exec(`
		INSERT INTO edges (id, subject, relation, object, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), subject, string(rel), object, time.Now())
	if err != nil {
		return fmt.Errorf("insert edge %s %s %s: %w", subject, rel, object, err)
	}
	return nil
}

// Entities returns subjects ordered by their first edge.
func (s *Store) Entities() []string {
	return s.strings(`SELECT subject FROM edges GROUP BY subject ORDER BY MIN(seq)`)
}

// Relations returns person's relations ordered by their first edge.
func (s *Store) Relations(person string) []relation.Relation {
	names := s.strings(`SELECT relation FROM edges WHERE subject = ? GROUP BY relation ORDER BY MIN(seq)`, person)
	if len(names) == 0 {
		return nil
	}
	rels := make([]relation.Relation, len(names))
	for i, n := range names {
		rels[i] = relation.Relation(n)
	}
	return rels
}

// Objects returns person's objects under rel in insertion order.
func (s *Store) Objects(person string, rel relation.Relation) []string {
	return s.strings(`SELECT object FROM edges WHERE subject = ? AND relation = ? ORDER BY seq`, person, string(rel))
}

// Edges returns every edge in insertion order.
func (s *Store) Edges() ([]Edge, error) {
	rows, err := s.db.Query(`SELECT seq, id, subject, relation, object, created_at FROM edges ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var edges []Edge
	for rows.Next() {
		var e Edge
		var rel string
		if err := rows.Scan(&e.Seq, &e.ID, &e.Subject, &rel, &e.Object, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Relation = relation.Relation(rel)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// strings runs a single-column query. Read errors are logged and yield nil,
// since the graph read methods have no error return.
func (s *Store) strings(query string, args ...interface{}) []string {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logger.Error("graph query failed", "query", query, "error", err)
		return nil
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			s.logger.Error("graph scan failed", "error", err)
			continue
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("graph rows failed", "error", err)
	}
	return out
}
