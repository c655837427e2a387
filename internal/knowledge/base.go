// Package knowledge keeps a forward relations graph and its transpose in
// lockstep and answers questions against them.
package knowledge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/CanopyHQ/lovegraph/internal/graph"
	"github.com/CanopyHQ/lovegraph/internal/query"
	"github.com/CanopyHQ/lovegraph/internal/statement"
)

// MaxLineSize bounds a single input line. Statement files and MCP
// requests can carry far more than bufio's 64 KiB default on one line.
const MaxLineSize = 10 * 1024 * 1024

// NewLineScanner returns a line scanner over r that accepts lines up to
// MaxLineSize.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return scanner
}

// Base owns one forward/transpose graph pair. All methods are safe for
// concurrent use; a single mutex guards the pair.
type Base struct {
	mu        sync.Mutex
	forward   graph.Graph
	transpose graph.Graph
	logger    *log.Logger
}

// New creates a Base over two empty graphs. logger may be nil.
func New(forward, transpose graph.Graph, logger *log.Logger) *Base {
	if logger == nil {
		logger = log.Default()
	}
	return &Base{forward: forward, transpose: transpose, logger: logger}
}

// NewMemory creates a Base over two fresh in-memory graphs.
func NewMemory(logger *log.Logger) *Base {
	return New(graph.NewMemory(), graph.NewMemory(), logger)
}

// Tell parses line and stores every atom in both graphs. Sentences that
// cannot be parsed are logged and skipped. It returns the number of atoms
// stored.
//
// Inserts are not transactional. If a graph fails, the atoms before the
// failing one are fully stored and counted; the failing atom may already
// be in the forward graph without its transpose entry, leaving the pair
// out of lockstep for that edge. The Memory backend never fails.
func (b *Base) Tell(line string) (int, error) {
	atoms, err := statement.ParseText(line)
	if err != nil {
		b.warnSkipped(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, a := range atoms {
		if err := b.forward.Insert(a.Subject, a.Relation, a.Object); err != nil {
			return i, fmt.Errorf("failed to store %q: %w", a, err)
		}
		r := a.Reverse()
		if err := b.transpose.Insert(r.Subject, r.Relation, r.Object); err != nil {
			return i, fmt.Errorf("failed to store reverse of %q: %w", a, err)
		}
	}
	b.logger.Debug("stored statement", "atoms", len(atoms))
	return len(atoms), nil
}

func (b *Base) warnSkipped(err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			b.logger.Warn("skipped sentence", "error", e)
		}
		return
	}
	b.logger.Warn("skipped sentence", "error", err)
}

// TellReader tells every line of r, trimmed.
func (b *Base) TellReader(r io.Reader) (int, error) {
	total := 0
	scanner := NewLineScanner(r)
	for scanner.Scan() {
		n, err := b.Tell(strings.TrimSpace(scanner.Text()))
		total += n
		if err != nil {
			return total, err
		}
	}
	if err := scanner.Err(); err != nil {
		return total, fmt.Errorf("failed to read statements: %w", err)
	}
	return total, nil
}

// TellFile tells every line of the file at path.
func (b *Base) TellFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	n, err := b.TellReader(f)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	b.logger.Info("loaded statements", "file", path, "atoms", n)
	return n, nil
}

// Ask answers question. It never fails; unanswerable questions produce an
// informational string.
func (b *Base) Ask(question string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := query.Classify(question)
	b.logger.Debug("answering", "question", question, "shape", q.Shape)
	return query.Resolve(q, b.forward, b.transpose)
}

// Subjects returns everyone who feels something about someone.
func (b *Base) Subjects() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.forward.Entities()
}

// Objects returns everyone someone feels something about.
func (b *Base) Objects() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transpose.Entities()
}

// Summary lists all subjects and all objects on two lines.
func (b *Base) Summary() string {
	return "All Subjects: " + strings.Join(b.Subjects(), ", ") +
		"\nAll Objects: " + strings.Join(b.Objects(), ", ")
}
