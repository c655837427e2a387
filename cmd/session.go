package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/CanopyHQ/lovegraph/internal/config"
	"github.com/CanopyHQ/lovegraph/internal/graph"
	"github.com/CanopyHQ/lovegraph/internal/graph/sqlitegraph"
	"github.com/CanopyHQ/lovegraph/internal/knowledge"
)

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  cfg.Level(),
		Prefix: "lovegraph",
	})
}

// session is one knowledge base plus the settings it was built from.
type session struct {
	base    *knowledge.Base
	cfg     *config.Config
	logger  *log.Logger
	closers []func() error
}

// openSession loads config and builds an empty knowledge base on the
// configured backend.
func openSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: newLogger(cfg)}

	var forward, transpose graph.Graph
	switch cfg.GraphBackend {
	case config.BackendSQLite:
		fwd, err := sqlitegraph.Open(s.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open forward graph: %w", err)
		}
		s.closers = append(s.closers, fwd.Close)
		tr, err := sqlitegraph.Open(s.logger)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to open transpose graph: %w", err)
		}
		s.closers = append(s.closers, tr.Close)
		forward, transpose = fwd, tr
	default:
		forward, transpose = graph.NewMemory(), graph.NewMemory()
	}
	s.logger.Debug("session opened", "backend", cfg.GraphBackend)
	s.base = knowledge.New(forward, transpose, s.logger)
	return s, nil
}

// Close releases the graphs.
func (s *session) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("failed to close graph", "error", err)
		}
	}
	s.closers = nil
}

// process applies one round of options in the original order: file, line,
// question, describe. It reports whether the session should end.
func process(base *knowledge.Base, opts rootOptions, out io.Writer) (bool, error) {
	if file := strings.TrimSpace(opts.file); file != "" {
		if _, err := base.TellFile(file); err != nil {
			return false, err
		}
	}
	if line := strings.TrimSpace(opts.line); line != "" {
		if _, err := base.Tell(line); err != nil {
			return false, err
		}
	}
	if question := strings.TrimSpace(opts.question); question != "" {
		fmt.Fprintln(out, base.Ask(question))
	}
	if opts.describe {
		fmt.Fprintln(out, base.Summary())
	}
	return opts.exit, nil
}
