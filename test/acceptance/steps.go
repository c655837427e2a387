package acceptance

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cucumber/godog"

	"github.com/CanopyHQ/lovegraph/internal/graph/sqlitegraph"
	"github.com/CanopyHQ/lovegraph/internal/knowledge"
)

// TestContext holds state between steps
type TestContext struct {
	base       *knowledge.Base
	closers    []func() error
	stored     int
	lastAnswer string
	logs       bytes.Buffer
}

func (tc *TestContext) reset(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	for _, c := range tc.closers {
		_ = c()
	}
	*tc = TestContext{}
	return ctx, nil
}

func (tc *TestContext) logger() *log.Logger {
	return log.NewWithOptions(&tc.logs, log.Options{Level: log.DebugLevel})
}

func (tc *TestContext) emptyBase() error {
	tc.base = knowledge.NewMemory(tc.logger())
	return nil
}

func (tc *TestContext) emptyBaseOn(backend string) error {
	switch backend {
	case "memory":
		return tc.emptyBase()
	case "sqlite":
		fwd, err := sqlitegraph.Open(tc.logger())
		if err != nil {
			return err
		}
		tr, err := sqlitegraph.Open(tc.logger())
		if err != nil {
			fwd.Close()
			return err
		}
		tc.closers = append(tc.closers, fwd.Close, tr.Close)
		tc.base = knowledge.New(fwd, tr, tc.logger())
		return nil
	}
	return fmt.Errorf("unknown backend %q", backend)
}

func (tc *TestContext) tell(text string) error {
	n, err := tc.base.Tell(text)
	tc.stored += n
	return err
}

func (tc *TestContext) tellFile(doc *godog.DocString) error {
	dir, err := os.MkdirTemp("", "lovegraph-acceptance-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "facts.txt")
	if err := os.WriteFile(path, []byte(doc.Content), 0600); err != nil {
		return err
	}
	n, err := tc.base.TellFile(path)
	tc.stored += n
	return err
}

func (tc *TestContext) checkAtomsStored(want int) error {
	if tc.stored != want {
		return fmt.Errorf("expected %d atoms stored, got %d", want, tc.stored)
	}
	return nil
}

func (tc *TestContext) ask(question string) error {
	tc.lastAnswer = tc.base.Ask(question)
	return nil
}

func (tc *TestContext) checkAnswer(want string) error {
	if tc.lastAnswer != want {
		return fmt.Errorf("expected answer %q, got %q", want, tc.lastAnswer)
	}
	return nil
}

func (tc *TestContext) checkAskAgain(question string) error {
	if again := tc.base.Ask(question); again != tc.lastAnswer {
		return fmt.Errorf("answer changed from %q to %q", tc.lastAnswer, again)
	}
	return nil
}

func (tc *TestContext) checkSubjects(want string) error {
	return compareList("subjects", want, tc.base.Subjects())
}

func (tc *TestContext) checkObjects(want string) error {
	return compareList("objects", want, tc.base.Objects())
}

func compareList(what, want string, got []string) error {
	if joined := strings.Join(got, ", "); joined != want {
		return fmt.Errorf("expected %s %q, got %q", what, want, joined)
	}
	return nil
}
