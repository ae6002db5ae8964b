package dialect

import "github.com/caravan-sql/sqlfront/pkg/ast"

// StatementParser is the hook a custom dialect can install to take over
// top-level statement parsing before the generic grammar runs. Cursor is
// the minimal interface the parser exposes to a hook; it lets a hook
// consume tokens without depending on pkg/parser and creating an import
// cycle.
type Cursor interface {
	PeekWord() (string, bool)
	SkipToStatementEnd() string
}

// StatementParser attempts to parse a custom statement starting at the
// cursor's current position. Returning ok=false leaves the cursor
// untouched and falls through to the generic parser.
type StatementParser func(c Cursor) (stmt ast.Statement, ok bool, err error)

// Custom wraps a base dialect and adds a ParseStatement hook, letting a
// caller extend the grammar without forking the whole dialect.
type Custom struct {
	Dialect
	ParseStatementHook StatementParser
}

// ParseStatement runs the hook if one is installed.
func (c Custom) ParseStatement(cur Cursor) (ast.Statement, bool, error) {
	if c.ParseStatementHook == nil {
		return nil, false, nil
	}
	return c.ParseStatementHook(cur)
}

// BogusCounterDialect is a worked example of Custom: it claims every
// statement whose first word is COUNT and parses it into an
// OpaqueStatement carrying the text SkipToStatementEnd reports for it
// (the statement's tokens joined by single spaces), demonstrating how a downstream
// project teaches the parser a vendor-specific statement it has no
// built-in grammar for.
func BogusCounterDialect(base Dialect) Custom {
	return Custom{
		Dialect: base,
		ParseStatementHook: func(c Cursor) (ast.Statement, bool, error) {
			word, ok := c.PeekWord()
			if !ok || (word != "COUNT" && word != "count") {
				return nil, false, nil
			}
			src := c.SkipToStatementEnd()
			return ast.OpaqueStatement{Source: src}, true, nil
		},
	}
}
