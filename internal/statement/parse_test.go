package statement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CanopyHQ/lovegraph/internal/relation"
)

func atom(s, r, o string) Atom {
	return Atom{Subject: s, Relation: relation.Relation(r), Object: o}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []Atom
	}{
		{"single", "Alice loves Bob.", []Atom{atom("Alice", "loves", "Bob")}},
		{"no period", "Alice loves Bob", []Atom{atom("Alice", "loves", "Bob")}},
		{
			"list",
			"Alice loves Bob, Carol and Dave.",
			[]Atom{atom("Alice", "loves", "Bob"), atom("Alice", "loves", "Carol"), atom("Alice", "loves", "Dave")},
		},
		{
			"verb switch",
			"Alice loves Bob but hates Carol.",
			[]Atom{atom("Alice", "loves", "Bob"), atom("Alice", "hates", "Carol")},
		},
		{
			"verb switch with and",
			"Alice likes Bob and hates Carol and Dave",
			[]Atom{atom("Alice", "likes", "Bob"), atom("Alice", "hates", "Carol"), atom("Alice", "hates", "Dave")},
		},
		{"subject and verb only", "Alice loves", nil},
		{"unknown initial verb kept", "Alice eats Bob", []Atom{atom("Alice", "eats", "Bob")}},
		{"extra whitespace", "  Alice \t loves   Bob  ", []Atom{atom("Alice", "loves", "Bob")}},
		{"substring deletion", "Alice loves Bandit", []Atom{atom("Alice", "loves", "Bit")}},
		{"comma without space", "Alice loves Bob,Carol", []Atom{atom("Alice", "loves", "BobCarol")}},
		{"blank", "   ", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.sentence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_stripsOnlyOneTrailingPeriod(t *testing.T) {
	got, err := Parse("Alice loves Bob..")
	require.NoError(t, err)
	assert.Equal(t, []Atom{atom("Alice", "loves", "Bob.")}, got)
}

func TestParse_tooFewTokens(t *testing.T) {
	for _, s := range []string{"Alice", "Alice.", "Alice and", "Alice, but"} {
		got, err := Parse(s)
		assert.Nil(t, got, s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrTooFewTokens), s)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), s)
		assert.Equal(t, s, pe.Sentence)
	}
}

func TestParseText(t *testing.T) {
	got, err := ParseText("Alice loves Bob. Bob hates Carol and Dave. ")
	require.NoError(t, err)
	assert.Equal(t, []Atom{
		atom("Alice", "loves", "Bob"),
		atom("Bob", "hates", "Carol"),
		atom("Bob", "hates", "Dave"),
	}, got)
}

func TestParseText_skipsBadSentences(t *testing.T) {
	got, err := ParseText("Alice. Bob likes Carol. Dave.")
	assert.Equal(t, []Atom{atom("Bob", "likes", "Carol")}, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooFewTokens))
	assert.Contains(t, err.Error(), `"Alice"`)
	assert.Contains(t, err.Error(), `"Dave"`)
}

func TestParseText_empty(t *testing.T) {
	got, err := ParseText("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAtom_Reverse(t *testing.T) {
	a := atom("Alice", "loves", "Bob")
	assert.Equal(t, atom("Bob", "loves", "Alice"), a.Reverse())
	assert.Equal(t, a, a.Reverse().Reverse())
	assert.Equal(t, "Alice loves Bob", a.String())
}
