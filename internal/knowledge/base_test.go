package knowledge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CanopyHQ/lovegraph/internal/graph"
	"github.com/CanopyHQ/lovegraph/internal/graph/sqlitegraph"
	"github.com/CanopyHQ/lovegraph/internal/relation"
)

func newTestBase(t *testing.T) (*Base, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewMemory(logger), &buf
}

func TestTell_KeepsGraphsInLockstep(t *testing.T) {
	b, _ := newTestBase(t)
	n, err := b.Tell("Alice loves Bob, Carol and Dave. Bob hates Alice but likes Carol.")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Equal(t, []string{"Alice", "Bob"}, b.Subjects())
	assert.Equal(t, []string{"Bob", "Carol", "Dave", "Alice"}, b.Objects())

	for _, s := range b.forward.Entities() {
		for _, rel := range b.forward.Relations(s) {
			for _, o := range b.forward.Objects(s, rel) {
				assert.Contains(t, b.transpose.Objects(o, rel), s)
			}
		}
	}
}

func TestTell_SkipsBadSentencesWithWarning(t *testing.T) {
	b, logs := newTestBase(t)
	n, err := b.Tell("Alice. Bob likes Carol.")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, logs.String(), "skipped sentence")
	assert.Contains(t, logs.String(), "Alice")
}

type failingGraph struct{ graph.Graph }

func (failingGraph) Insert(string, relation.Relation, string) error {
	return errors.New("disk on fire")
}

func TestTell_InsertError(t *testing.T) {
	b := New(graph.NewMemory(), failingGraph{graph.NewMemory()}, log.New(&bytes.Buffer{}))
	n, err := b.Tell("Alice loves Bob and Carol")
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestTell_TransposeErrorLeavesForwardEdge(t *testing.T) {
	fwd := graph.NewMemory()
	b := New(fwd, failingGraph{graph.NewMemory()}, log.New(&bytes.Buffer{}))
	n, err := b.Tell("Alice loves Bob and Carol")
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, err.Error(), "reverse of")

	// The first atom reached the forward graph before the transpose failed.
	assert.Equal(t, []string{"Bob"}, fwd.Objects("Alice", relation.Loves))
	assert.Empty(t, b.Objects())
}

func TestAsk(t *testing.T) {
	b, _ := newTestBase(t)
	_, err := b.Tell("Alice loves Bob but hates Carol. Dave loves Bob.")
	require.NoError(t, err)

	assert.Equal(t, "Bob is loved by Alice and Dave", b.Ask("Who loves Bob"))
	assert.Equal(t, "Alice hates Carol", b.Ask("Whom hates Alice"))
	assert.Equal(t, "Alice loves Bob and hates Carol.", b.Ask("Alice"))
	assert.Equal(t, "No info on Zed.", b.Ask("Zed"))
	assert.Equal(t, "The question is unclear.", b.Ask("Whom does Alice love"))
}

func TestTellReader(t *testing.T) {
	b, _ := newTestBase(t)
	n, err := b.TellReader(strings.NewReader("  Alice loves Bob.  \n\nCarol likes Dave and Eve.\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Carol likes Dave and Eve", b.Ask("Carol likes"))
}

func TestTellReader_LongLine(t *testing.T) {
	b, _ := newTestBase(t)
	names := make([]string, 20000)
	for i := range names {
		names[i] = "Person"
	}
	line := "Alice loves " + strings.Join(names, " ") + ".\nDave hates Eve.\n"
	require.Greater(t, len(line), 64*1024)

	n, err := b.TellReader(strings.NewReader(line))
	require.NoError(t, err)
	assert.Equal(t, 20001, n)
	assert.Equal(t, []string{"Alice", "Dave"}, b.Subjects())
}

func TestTellFile(t *testing.T) {
	b, logs := newTestBase(t)
	path := filepath.Join(t.TempDir(), "facts.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice loves Bob.\nBob hates Alice.\n"), 0600))

	n, err := b.TellFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Alice loves Bob. Alice is hated by Bob.", b.Ask("Alice"))
	assert.Contains(t, logs.String(), "loaded statements")
}

func TestTellFile_Missing(t *testing.T) {
	b, _ := newTestBase(t)
	_, err := b.TellFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSummary(t *testing.T) {
	b, _ := newTestBase(t)
	assert.Equal(t, "All Subjects: \nAll Objects: ", b.Summary())

	_, _ = b.Tell("Alice loves Bob and Carol. Bob likes Dave.")
	assert.Equal(t, "All Subjects: Alice, Bob\nAll Objects: Bob, Carol, Dave", b.Summary())
}

func TestBase_SQLiteBackendMatchesMemory(t *testing.T) {
	fwd, err := sqlitegraph.Open(nil)
	require.NoError(t, err)
	defer fwd.Close()
	tr, err := sqlitegraph.Open(nil)
	require.NoError(t, err)
	defer tr.Close()

	sq := New(fwd, tr, log.New(&bytes.Buffer{}))
	mem, _ := newTestBase(t)
	text := "Alice loves Bob, Carol and Dave but hates Eve. Eve likes Alice."
	_, err = sq.Tell(text)
	require.NoError(t, err)
	_, err = mem.Tell(text)
	require.NoError(t, err)

	for _, q := range []string{"Alice", "Eve", "Who loves Carol", "Whom Alice hates", "Bob likes", "x y z w"} {
		assert.Equal(t, mem.Ask(q), sq.Ask(q), q)
	}
	assert.Equal(t, mem.Summary(), sq.Summary())
}

func TestBase_ConcurrentAccess(t *testing.T) {
	b, _ := newTestBase(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = b.Tell("Alice loves Bob")
				_ = b.Ask("Who loves Bob")
			}
		}()
	}
	wg.Wait()
	assert.Len(t, b.forward.Objects("Alice", relation.Loves), 400)
}
