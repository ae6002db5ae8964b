// Package ast defines the abstract syntax tree produced by pkg/parser:
// closed sum types for statements, expressions, data types and values,
// each carrying its own canonical-SQL serializer so printing never drifts
// from parsing.
package ast

import "strings"

// Node is implemented by every AST type. SQL renders the node as
// canonical, upper-keyword, single-space-normalized SQL text.
type Node interface {
	SQL() string
}

// Statement is the root of one parsed SQL statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is the root of one parsed value-producing expression.
type Expression interface {
	Node
	expressionNode()
}

// TableFactor is a FROM-clause relation: a named table, a derived
// subquery, a function call, an UNNEST, a nested join, and so on.
type TableFactor interface {
	Node
	tableFactorNode()
}

// Sequence is an ordered, duplicate-preserving list. It exists as a named
// type (rather than a bare slice) so AST fields read the same everywhere
// a list of nodes is needed.
type Sequence[T any] []T

// Ident is a single, possibly quote-delimited, identifier.
type Ident struct {
	Value      string
	QuoteStyle rune // 0 if unquoted, else the opening quote rune
}

func NewIdent(value string) Ident { return Ident{Value: value} }

func (i Ident) SQL() string {
	if i.QuoteStyle == 0 {
		return i.Value
	}
	end := i.QuoteStyle
	switch i.QuoteStyle {
	case '[':
		end = ']'
	}
	// A literal occurrence of the closing quote inside a delimited
	// identifier is doubled on write-back, mirroring how the lexer
	// reads a doubled closing quote as one literal character.
	escaped := strings.ReplaceAll(i.Value, string(end), string(end)+string(end))
	return string(i.QuoteStyle) + escaped + string(end)
}

// ObjectName is a dot-separated, ordered list of identifiers
// (`schema.table`, `db.schema.table`, …).
type ObjectName Sequence[Ident]

func (o ObjectName) SQL() string {
	parts := make([]string, len(o))
	for i, id := range o {
		parts[i] = id.SQL()
	}
	return strings.Join(parts, ".")
}

// Location is a token's position in the original source, 1-indexed.
type Location struct {
	Line   int
	Column int
}

// joinSQL renders nodes separated by sep, skipping the call entirely
// (returning "") when the sequence is empty, so callers can omit
// surrounding keywords for empty clauses per the serializer's rules.
func joinSQL[T Node](nodes []T, sep string) string {
	if len(nodes) == 0 {
		return ""
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.SQL()
	}
	return strings.Join(parts, sep)
}

func joinExprs(exprs []Expression, sep string) string {
	if len(exprs) == 0 {
		return ""
	}
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.SQL()
	}
	return strings.Join(parts, sep)
}
