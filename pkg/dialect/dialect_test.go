package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/dialect"
)

func TestGetDialectFallsBackToGeneric(t *testing.T) {
	d := dialect.GetDialect("not-a-real-dialect")
	assert.Equal(t, "generic", d.Name())
}

func TestGetDialectAliases(t *testing.T) {
	assert.Equal(t, dialect.GetDialect("postgresql").Name(), dialect.GetDialect("postgres").Name())
	assert.Equal(t, dialect.GetDialect("mssql").Name(), dialect.GetDialect("sqlserver").Name())
}

type stubCursor struct {
	word string
}

func (s stubCursor) PeekWord() (string, bool)  { return s.word, s.word != "" }
func (s stubCursor) SkipToStatementEnd() string { return s.word }

func TestBogusCounterDialectHook(t *testing.T) {
	custom := dialect.BogusCounterDialect(dialect.NewGeneric())
	stmt, ok, err := custom.ParseStatement(stubCursor{word: "COUNT"})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.IsType(t, ast.OpaqueStatement{}, stmt)

	_, ok, err = custom.ParseStatement(stubCursor{word: "SELECT"})
	assert.NoError(t, err)
	assert.False(t, ok)
}
