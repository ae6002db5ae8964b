package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravan-sql/sqlfront/pkg/dialect"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

func words(t *testing.T, toks []lexer.Token) []string {
	t.Helper()
	var out []string
	for _, tok := range toks {
		if tok.Kind == lexer.KindWord {
			out = append(out, tok.Word)
		}
	}
	return out
}

func TestTokenizeBasicSelect(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT id FROM users WHERE id = 1", dialect.GetDialect("generic"))
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT", "id", "FROM", "users", "WHERE", "id"}, words(t, toks))
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT 'it''s fine'", dialect.GetDialect("generic"))
	require.NoError(t, err)
	var found bool
	for _, tok := range toks {
		if tok.Kind == lexer.KindString {
			found = true
			assert.Equal(t, "it's fine", tok.String)
		}
	}
	assert.True(t, found, "expected a string token")
}

func TestTokenizeQuotedIdentifier(t *testing.T) {
	toks, err := lexer.Tokenize(`SELECT "my col" FROM t`, dialect.GetDialect("postgresql"))
	require.NoError(t, err)
	var found bool
	for _, tok := range toks {
		if tok.Kind == lexer.KindWord && tok.Word == "my col" {
			found = true
			assert.NotEqual(t, rune(0), tok.QuoteStyle)
		}
	}
	assert.True(t, found, "expected a quoted identifier token")
}

func TestTokenizeOperators(t *testing.T) {
	toks, err := lexer.Tokenize("a->>'b' <> c::int", dialect.GetDialect("postgresql"))
	require.NoError(t, err)
	var puncts []string
	for _, tok := range toks {
		if tok.Kind == lexer.KindPunctuation {
			puncts = append(puncts, tok.Punct.String())
		}
	}
	assert.Contains(t, puncts, "->>")
	assert.Contains(t, puncts, "<>")
	assert.Contains(t, puncts, "::")
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT 1, 1.5, .5, 1e10", dialect.GetDialect("generic"))
	require.NoError(t, err)
	var nums []string
	for _, tok := range toks {
		if tok.Kind == lexer.KindNumber {
			nums = append(nums, tok.Number)
		}
	}
	assert.Equal(t, []string{"1", "1.5", ".5", "1e10"}, nums)
}
