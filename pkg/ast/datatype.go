package ast

import (
	"fmt"
	"strings"
)

// DataType is the closed set of type names the parser recognizes in
// CREATE TABLE column definitions, CAST targets and typed-string
// literals.
type DataType interface {
	Node
	dataTypeNode()
}

// Named covers simple fixed-width and parameterless types: BOOLEAN,
// DATE, TIME, TIMESTAMP, JSON, TEXT, BYTEA, UUID, INET, MONEY, …
type Named struct{ Name string }

func (Named) dataTypeNode() {}
func (n Named) SQL() string { return n.Name }

// Sized covers types with a single optional length/precision parameter:
// VARCHAR(n), CHAR(n), BIT(n), BINARY(n).
type Sized struct {
	Name   string
	Length *int
}

func (Sized) dataTypeNode() {}
func (s Sized) SQL() string {
	if s.Length == nil {
		return s.Name
	}
	return fmt.Sprintf("%s(%d)", s.Name, *s.Length)
}

// Decimal covers NUMERIC/DECIMAL(precision, scale).
type Decimal struct {
	Name      string
	Precision *int
	Scale     *int
}

func (Decimal) dataTypeNode() {}
func (d Decimal) SQL() string {
	switch {
	case d.Precision == nil:
		return d.Name
	case d.Scale == nil:
		return fmt.Sprintf("%s(%d)", d.Name, *d.Precision)
	default:
		return fmt.Sprintf("%s(%d,%d)", d.Name, *d.Precision, *d.Scale)
	}
}

// Timestamp covers TIMESTAMP/TIME with optional precision and an
// optional WITH/WITHOUT TIME ZONE qualifier.
type Timestamp struct {
	WithTimeZone    bool
	WithoutTimeZone bool
	Precision       *int
}

func (Timestamp) dataTypeNode() {}
func (t Timestamp) SQL() string {
	var b strings.Builder
	b.WriteString("TIMESTAMP")
	if t.Precision != nil {
		fmt.Fprintf(&b, "(%d)", *t.Precision)
	}
	switch {
	case t.WithTimeZone:
		b.WriteString(" WITH TIME ZONE")
	case t.WithoutTimeZone:
		b.WriteString(" WITHOUT TIME ZONE")
	}
	return b.String()
}

// Array is T[] (unbounded) or T[n] (bounded), or ARRAY<T> in the
// BigQuery/DuckDb angle-bracket style.
type Array struct {
	Elem        DataType
	Size        *int
	AngleBraces bool
}

func (Array) dataTypeNode() {}
func (a Array) SQL() string {
	if a.AngleBraces {
		return "ARRAY<" + a.Elem.SQL() + ">"
	}
	if a.Size != nil {
		return fmt.Sprintf("%s[%d]", a.Elem.SQL(), *a.Size)
	}
	return a.Elem.SQL() + "[]"
}

// Custom is a dialect-specific or user-defined type name with an
// optional comma-separated modifier list, e.g. `GEOGRAPHY(POINT, 4326)`.
type Custom struct {
	Name      ObjectName
	Modifiers []string
}

func (Custom) dataTypeNode() {}
func (c Custom) SQL() string {
	if len(c.Modifiers) == 0 {
		return c.Name.SQL()
	}
	return c.Name.SQL() + "(" + strings.Join(c.Modifiers, ", ") + ")"
}
