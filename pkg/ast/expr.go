package ast

import (
	"fmt"
	"strings"
)

// Identifier is a single unqualified name used as an expression (a
// column reference, a variable, a function name standing alone).
type Identifier struct{ Ident Ident }

func (Identifier) expressionNode() {}
func (i Identifier) SQL() string   { return i.Ident.SQL() }

// CompoundIdentifier is a dot-separated chain: `t.col`, `schema.t.col`.
type CompoundIdentifier struct{ Parts []Ident }

func (CompoundIdentifier) expressionNode() {}
func (c CompoundIdentifier) SQL() string {
	parts := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		parts[i] = p.SQL()
	}
	return strings.Join(parts, ".")
}

// Wildcard is a bare `*`.
type Wildcard struct{}

func (Wildcard) expressionNode() {}
func (Wildcard) SQL() string     { return "*" }

// QualifiedWildcard is `qualifier.*`, optionally followed by EXCEPT/
// REPLACE modifiers in dialects that support it.
type QualifiedWildcard struct {
	Qualifier ObjectName
	Except    []Ident
	Replace   []AliasedExpr
}

func (QualifiedWildcard) expressionNode() {}
func (q QualifiedWildcard) SQL() string {
	var b strings.Builder
	b.WriteString(q.Qualifier.SQL())
	b.WriteString(".*")
	writeWildcardModifiers(&b, q.Except, q.Replace)
	return b.String()
}

// WildcardWithModifiers is the bare `*` form with EXCEPT/REPLACE.
type WildcardWithModifiers struct {
	Except  []Ident
	Replace []AliasedExpr
}

func (WildcardWithModifiers) expressionNode() {}
func (w WildcardWithModifiers) SQL() string {
	var b strings.Builder
	b.WriteString("*")
	writeWildcardModifiers(&b, w.Except, w.Replace)
	return b.String()
}

func writeWildcardModifiers(b *strings.Builder, except []Ident, replace []AliasedExpr) {
	if len(except) > 0 {
		parts := make([]string, len(except))
		for i, id := range except {
			parts[i] = id.SQL()
		}
		fmt.Fprintf(b, " EXCEPT (%s)", strings.Join(parts, ", "))
	}
	if len(replace) > 0 {
		parts := make([]string, len(replace))
		for i, r := range replace {
			parts[i] = r.Expr.SQL() + " AS " + r.Alias.SQL()
		}
		fmt.Fprintf(b, " REPLACE (%s)", strings.Join(parts, ", "))
	}
}

// AliasedExpr is `expr AS alias`. It appears both as a projection item
// and inside wildcard REPLACE lists.
type AliasedExpr struct {
	Expr  Expression
	Alias Ident
}

func (AliasedExpr) expressionNode() {}
func (a AliasedExpr) SQL() string   { return a.Expr.SQL() + " AS " + a.Alias.SQL() }

// UnaryOp is a prefix operator: NOT, -, +, ~, PRIOR.
type UnaryOp struct {
	Op   string
	Expr Expression
}

func (UnaryOp) expressionNode() {}
func (u UnaryOp) SQL() string {
	if u.Op == "NOT" || u.Op == "PRIOR" {
		return u.Op + " " + u.Expr.SQL()
	}
	return u.Op + u.Expr.SQL()
}

// BinaryOp is an infix operator expression.
type BinaryOp struct {
	Left  Expression
	Op    string
	Right Expression
}

func (BinaryOp) expressionNode() {}
func (b BinaryOp) SQL() string { return b.Left.SQL() + " " + b.Op + " " + b.Right.SQL() }

// Nested is a parenthesized sub-expression, preserved so the printer can
// reproduce explicit grouping.
type Nested struct{ Expr Expression }

func (Nested) expressionNode() {}
func (n Nested) SQL() string   { return "(" + n.Expr.SQL() + ")" }

// Tuple is a parenthesized, comma-separated expression list used as a
// single value, e.g. `(a, b) = (1, 2)` or `DISTINCT (name, id)`.
type Tuple struct{ Exprs []Expression }

func (Tuple) expressionNode() {}
func (t Tuple) SQL() string   { return "(" + joinExprs(t.Exprs, ", ") + ")" }

// Cast is CAST(expr AS type); TryCast is TRY_CAST(expr AS type).
type Cast struct {
	Expr    Expression
	Type    DataType
	TryCast bool
}

func (Cast) expressionNode() {}
func (c Cast) SQL() string {
	name := "CAST"
	if c.TryCast {
		name = "TRY_CAST"
	}
	return fmt.Sprintf("%s(%s AS %s)", name, c.Expr.SQL(), c.Type.SQL())
}

// Extract is EXTRACT(field FROM expr).
type Extract struct {
	Field string
	Expr  Expression
}

func (Extract) expressionNode() {}
func (e Extract) SQL() string {
	return fmt.Sprintf("EXTRACT(%s FROM %s)", strings.ToUpper(e.Field), e.Expr.SQL())
}

// CeilFloor is CEIL/FLOOR(expr [TO field]) or the two-argument scale
// form CEIL(expr, scale).
type CeilFloor struct {
	Floor bool
	Expr  Expression
	Field string
	Scale Expression
}

func (CeilFloor) expressionNode() {}
func (c CeilFloor) SQL() string {
	name := "CEIL"
	if c.Floor {
		name = "FLOOR"
	}
	switch {
	case c.Field != "":
		return fmt.Sprintf("%s(%s TO %s)", name, c.Expr.SQL(), strings.ToUpper(c.Field))
	case c.Scale != nil:
		return fmt.Sprintf("%s(%s, %s)", name, c.Expr.SQL(), c.Scale.SQL())
	default:
		return fmt.Sprintf("%s(%s)", name, c.Expr.SQL())
	}
}

// Position is POSITION(needle IN haystack).
type Position struct {
	Needle   Expression
	Haystack Expression
}

func (Position) expressionNode() {}
func (p Position) SQL() string {
	return fmt.Sprintf("POSITION(%s IN %s)", p.Needle.SQL(), p.Haystack.SQL())
}

// Overlay is OVERLAY(expr PLACING replacement FROM start [FOR length]).
type Overlay struct {
	Expr        Expression
	Placing     Expression
	From        Expression
	For         Expression
}

func (Overlay) expressionNode() {}
func (o Overlay) SQL() string {
	s := fmt.Sprintf("OVERLAY(%s PLACING %s FROM %s", o.Expr.SQL(), o.Placing.SQL(), o.From.SQL())
	if o.For != nil {
		s += " FOR " + o.For.SQL()
	}
	return s + ")"
}

// Trim is TRIM([LEADING|TRAILING|BOTH] [chars FROM] expr).
type Trim struct {
	Where TrimWhere
	Chars Expression
	Expr  Expression
}

type TrimWhere int

const (
	TrimNone TrimWhere = iota
	TrimLeading
	TrimTrailing
	TrimBoth
)

func (Trim) expressionNode() {}
func (t Trim) SQL() string {
	var b strings.Builder
	b.WriteString("TRIM(")
	switch t.Where {
	case TrimLeading:
		b.WriteString("LEADING ")
	case TrimTrailing:
		b.WriteString("TRAILING ")
	case TrimBoth:
		b.WriteString("BOTH ")
	}
	if t.Chars != nil {
		b.WriteString(t.Chars.SQL())
		b.WriteString(" FROM ")
	}
	b.WriteString(t.Expr.SQL())
	b.WriteString(")")
	return b.String()
}

// Substring is SUBSTRING(expr [FROM start] [FOR length]); CommaForm
// renders the MsSql SUBSTRING(expr, start, length) spelling instead.
type Substring struct {
	Expr      Expression
	From      Expression
	For       Expression
	CommaForm bool
}

func (Substring) expressionNode() {}
func (s Substring) SQL() string {
	if s.CommaForm {
		parts := []string{s.Expr.SQL()}
		if s.From != nil {
			parts = append(parts, s.From.SQL())
		}
		if s.For != nil {
			parts = append(parts, s.For.SQL())
		}
		return "SUBSTRING(" + strings.Join(parts, ", ") + ")"
	}
	b := "SUBSTRING(" + s.Expr.SQL()
	if s.From != nil {
		b += " FROM " + s.From.SQL()
	}
	if s.For != nil {
		b += " FOR " + s.For.SQL()
	}
	return b + ")"
}

// Between is `expr [NOT] BETWEEN low AND high`.
type Between struct {
	Expr Expression
	Not  bool
	Low  Expression
	High Expression
}

func (Between) expressionNode() {}
func (b Between) SQL() string {
	not := ""
	if b.Not {
		not = "NOT "
	}
	return fmt.Sprintf("%s %sBETWEEN %s AND %s", b.Expr.SQL(), not, b.Low.SQL(), b.High.SQL())
}

// Like is `expr [NOT] LIKE|ILIKE pattern [ESCAPE ch]`.
type Like struct {
	Expr    Expression
	Not     bool
	CaseInsensitive bool
	Pattern Expression
	Escape  Expression
}

func (Like) expressionNode() {}
func (l Like) SQL() string {
	op := "LIKE"
	if l.CaseInsensitive {
		op = "ILIKE"
	}
	not := ""
	if l.Not {
		not = "NOT "
	}
	s := fmt.Sprintf("%s %s%s %s", l.Expr.SQL(), not, op, l.Pattern.SQL())
	if l.Escape != nil {
		s += " ESCAPE " + l.Escape.SQL()
	}
	return s
}

// SimilarTo is `expr [NOT] SIMILAR TO pattern [ESCAPE ch]`.
type SimilarTo struct {
	Expr    Expression
	Not     bool
	Pattern Expression
	Escape  Expression
}

func (SimilarTo) expressionNode() {}
func (s SimilarTo) SQL() string {
	not := ""
	if s.Not {
		not = "NOT "
	}
	out := fmt.Sprintf("%s %sSIMILAR TO %s", s.Expr.SQL(), not, s.Pattern.SQL())
	if s.Escape != nil {
		out += " ESCAPE " + s.Escape.SQL()
	}
	return out
}

// InList is `expr [NOT] IN (list)`.
type InList struct {
	Expr Expression
	Not  bool
	List []Expression
}

func (InList) expressionNode() {}
func (i InList) SQL() string {
	not := ""
	if i.Not {
		not = "NOT "
	}
	return fmt.Sprintf("%s %sIN (%s)", i.Expr.SQL(), not, joinExprs(i.List, ", "))
}

// InSubquery is `expr [NOT] IN (subquery)`.
type InSubquery struct {
	Expr     Expression
	Not      bool
	Subquery *Query
}

func (InSubquery) expressionNode() {}
func (i InSubquery) SQL() string {
	not := ""
	if i.Not {
		not = "NOT "
	}
	return fmt.Sprintf("%s %sIN (%s)", i.Expr.SQL(), not, i.Subquery.SQL())
}

// InUnnest is `expr [NOT] IN UNNEST(array_expr)`.
type InUnnest struct {
	Expr  Expression
	Not   bool
	Array Expression
}

func (InUnnest) expressionNode() {}
func (i InUnnest) SQL() string {
	not := ""
	if i.Not {
		not = "NOT "
	}
	return fmt.Sprintf("%s %sIN UNNEST(%s)", i.Expr.SQL(), not, i.Array.SQL())
}

// AnyAllOp is `expr op ANY(subquery)` / `expr op ALL(subquery)`.
type AnyAllOp struct {
	Left  Expression
	Op    string
	All   bool
	Right Expression
}

func (AnyAllOp) expressionNode() {}
func (a AnyAllOp) SQL() string {
	kw := "ANY"
	if a.All {
		kw = "ALL"
	}
	return fmt.Sprintf("%s %s %s(%s)", a.Left.SQL(), a.Op, kw, a.Right.SQL())
}

// Subquery wraps a parenthesized Query used where an expression is
// expected (scalar subqueries).
type Subquery struct{ Query *Query }

func (Subquery) expressionNode() {}
func (s Subquery) SQL() string   { return "(" + s.Query.SQL() + ")" }

// Exists is `[NOT] EXISTS (subquery)`.
type Exists struct {
	Not      bool
	Subquery *Query
}

func (Exists) expressionNode() {}
func (e Exists) SQL() string {
	if e.Not {
		return "NOT EXISTS (" + e.Subquery.SQL() + ")"
	}
	return "EXISTS (" + e.Subquery.SQL() + ")"
}

// Case is `CASE [operand] WHEN cond THEN result ... [ELSE else] END`.
type Case struct {
	Operand Expression
	Whens   []WhenClause
	Else    Expression
}

type WhenClause struct {
	Condition Expression
	Result    Expression
}

func (Case) expressionNode() {}
func (c Case) SQL() string {
	var b strings.Builder
	b.WriteString("CASE")
	if c.Operand != nil {
		b.WriteString(" " + c.Operand.SQL())
	}
	for _, w := range c.Whens {
		fmt.Fprintf(&b, " WHEN %s THEN %s", w.Condition.SQL(), w.Result.SQL())
	}
	if c.Else != nil {
		b.WriteString(" ELSE " + c.Else.SQL())
	}
	b.WriteString(" END")
	return b.String()
}

// FunctionArg is a call argument: positional, or `name => expr` / `name
// = expr` in dialects permitting the named form.
type FunctionArg struct {
	Name     *Ident
	EqOp     bool // true renders `=`, false renders `=>`
	Expr     Expression
	Wildcard bool // bare `*` argument, e.g. COUNT(*)
}

func (a FunctionArg) SQL() string {
	if a.Wildcard {
		return "*"
	}
	if a.Name == nil {
		return a.Expr.SQL()
	}
	op := "=>"
	if a.EqOp {
		op = "="
	}
	return fmt.Sprintf("%s %s %s", a.Name.SQL(), op, a.Expr.SQL())
}

// Function is a call expression with the full set of post-paren
// modifiers the grammar allows.
type Function struct {
	Name        ObjectName
	Distinct    bool
	Args        []FunctionArg
	OrderBy     []OrderByExpr
	Filter      Expression
	WithinGroup []OrderByExpr
	IgnoreNulls bool
	RespectNulls bool
	Over        *WindowSpecOrName
}

func (Function) expressionNode() {}
func (f Function) SQL() string {
	var b strings.Builder
	b.WriteString(f.Name.SQL())
	b.WriteString("(")
	if f.Distinct {
		b.WriteString("DISTINCT ")
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.SQL()
	}
	b.WriteString(strings.Join(args, ", "))
	if len(f.OrderBy) > 0 {
		b.WriteString(" ORDER BY " + joinOrderBy(f.OrderBy))
	}
	b.WriteString(")")
	if f.Filter != nil {
		b.WriteString(" FILTER (WHERE " + f.Filter.SQL() + ")")
	}
	if len(f.WithinGroup) > 0 {
		b.WriteString(" WITHIN GROUP (ORDER BY " + joinOrderBy(f.WithinGroup) + ")")
	}
	if f.RespectNulls {
		b.WriteString(" RESPECT NULLS")
	}
	if f.IgnoreNulls {
		b.WriteString(" IGNORE NULLS")
	}
	if f.Over != nil {
		b.WriteString(" OVER " + f.Over.SQL())
	}
	return b.String()
}

// WindowSpecOrName is the argument to OVER: either a bare named-window
// reference or a parenthesized window specification.
type WindowSpecOrName struct {
	Name *Ident
	Spec *WindowSpec
}

func (w WindowSpecOrName) SQL() string {
	if w.Name != nil {
		return w.Name.SQL()
	}
	return "(" + w.Spec.SQL() + ")"
}

// WindowSpec is the body of an OVER(...) clause.
type WindowSpec struct {
	ExistingWindow *Ident
	PartitionBy    []Expression
	OrderBy        []OrderByExpr
	Frame          *WindowFrame
}

func (w WindowSpec) SQL() string {
	var parts []string
	if w.ExistingWindow != nil {
		parts = append(parts, w.ExistingWindow.SQL())
	}
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+joinExprs(w.PartitionBy, ", "))
	}
	if len(w.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+joinOrderBy(w.OrderBy))
	}
	if w.Frame != nil {
		parts = append(parts, w.Frame.SQL())
	}
	return strings.Join(parts, " ")
}

// WindowFrame is `(ROWS|RANGE|GROUPS) frame-bound|BETWEEN a AND b`.
type WindowFrame struct {
	Unit  string
	Start WindowFrameBound
	End   *WindowFrameBound
}

func (f WindowFrame) SQL() string {
	if f.End == nil {
		return f.Unit + " " + f.Start.SQL()
	}
	return fmt.Sprintf("%s BETWEEN %s AND %s", f.Unit, f.Start.SQL(), f.End.SQL())
}

// WindowFrameBound is one bound of a WindowFrame.
type WindowFrameBound struct {
	Unbounded bool
	CurrentRow bool
	Offset    Expression
	Preceding bool // false means FOLLOWING
}

func (b WindowFrameBound) SQL() string {
	switch {
	case b.CurrentRow:
		return "CURRENT ROW"
	case b.Unbounded:
		if b.Preceding {
			return "UNBOUNDED PRECEDING"
		}
		return "UNBOUNDED FOLLOWING"
	default:
		dir := "FOLLOWING"
		if b.Preceding {
			dir = "PRECEDING"
		}
		return b.Offset.SQL() + " " + dir
	}
}

// OrderByExpr is one item of an ORDER BY list.
type OrderByExpr struct {
	Expr  Expression
	Asc   *bool // nil means unspecified
	NullsFirst *bool
}

func (o OrderByExpr) SQL() string {
	s := o.Expr.SQL()
	if o.Asc != nil {
		if *o.Asc {
			s += " ASC"
		} else {
			s += " DESC"
		}
	}
	if o.NullsFirst != nil {
		if *o.NullsFirst {
			s += " NULLS FIRST"
		} else {
			s += " NULLS LAST"
		}
	}
	return s
}

func joinOrderBy(items []OrderByExpr) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.SQL()
	}
	return strings.Join(parts, ", ")
}

// Interval is an `INTERVAL value [field [TO field]]` literal.
type Interval struct {
	Value        Expression
	LeadingField string
	LastField    string
	Precision    *int
}

func (Interval) expressionNode() {}
func (iv Interval) SQL() string {
	s := "INTERVAL " + iv.Value.SQL()
	if iv.LeadingField != "" {
		s += " " + strings.ToUpper(iv.LeadingField)
	}
	if iv.LastField != "" {
		s += " TO " + strings.ToUpper(iv.LastField)
	}
	return s
}

// TypedString is a typed string literal: `DATE '2024-01-01'`, `JSON
// '{}'`, `TIMESTAMP '...'`.
type TypedString struct {
	Type  DataType
	Value string
}

func (TypedString) expressionNode() {}
func (t TypedString) SQL() string { return t.Type.SQL() + " " + quoteSingle(t.Value) }

// AtTimeZone is `expr AT TIME ZONE zone`.
type AtTimeZone struct {
	Expr Expression
	Zone Expression
}

func (AtTimeZone) expressionNode() {}
func (a AtTimeZone) SQL() string { return a.Expr.SQL() + " AT TIME ZONE " + a.Zone.SQL() }

// IsKind enumerates the `IS ...` predicate forms.
type IsKind int

const (
	IsNullKind IsKind = iota
	IsTrueKind
	IsFalseKind
	IsUnknownKind
	IsDistinctFromKind
	IsNormalizedKind
)

// Is is `expr IS [NOT] <predicate>`.
type Is struct {
	Expr  Expression
	Not   bool
	Kind  IsKind
	Other Expression // for DISTINCT FROM
	Form  string      // for IS [NOT] [form] NORMALIZED
}

func (Is) expressionNode() {}
func (is Is) SQL() string {
	not := ""
	if is.Not {
		not = "NOT "
	}
	switch is.Kind {
	case IsNullKind:
		return fmt.Sprintf("%s IS %sNULL", is.Expr.SQL(), not)
	case IsTrueKind:
		return fmt.Sprintf("%s IS %sTRUE", is.Expr.SQL(), not)
	case IsFalseKind:
		return fmt.Sprintf("%s IS %sFALSE", is.Expr.SQL(), not)
	case IsUnknownKind:
		return fmt.Sprintf("%s IS %sUNKNOWN", is.Expr.SQL(), not)
	case IsDistinctFromKind:
		return fmt.Sprintf("%s IS %sDISTINCT FROM %s", is.Expr.SQL(), not, is.Other.SQL())
	case IsNormalizedKind:
		form := ""
		if is.Form != "" {
			form = strings.ToUpper(is.Form) + " "
		}
		return fmt.Sprintf("%s IS %s%sNORMALIZED", is.Expr.SQL(), not, form)
	}
	return ""
}

// NotNullPostfix is the Postgres-ism `expr NOTNULL` / `expr ISNULL`.
type NotNullPostfix struct {
	Expr  Expression
	IsNull bool // true renders ISNULL, false renders NOTNULL
}

func (NotNullPostfix) expressionNode() {}
func (n NotNullPostfix) SQL() string {
	if n.IsNull {
		return n.Expr.SQL() + " ISNULL"
	}
	return n.Expr.SQL() + " NOTNULL"
}

// MemberOf is `expr MEMBER OF(array_expr)`.
type MemberOf struct {
	Expr  Expression
	Array Expression
}

func (MemberOf) expressionNode() {}
func (m MemberOf) SQL() string { return fmt.Sprintf("%s MEMBER OF(%s)", m.Expr.SQL(), m.Array.SQL()) }

// Overlaps is `expr OVERLAPS (start, end)`.
type Overlaps struct {
	Left  Expression
	Right Expression
}

func (Overlaps) expressionNode() {}
func (o Overlaps) SQL() string { return o.Left.SQL() + " OVERLAPS " + o.Right.SQL() }

// ConnectByRoot is Oracle's `CONNECT_BY_ROOT expr`.
type ConnectByRoot struct{ Expr Expression }

func (ConnectByRoot) expressionNode() {}
func (c ConnectByRoot) SQL() string { return "CONNECT_BY_ROOT " + c.Expr.SQL() }

// Subscript is `expr[index]`, chainable for nested array/map access.
type Subscript struct {
	Expr  Expression
	Index Expression
}

func (Subscript) expressionNode() {}
func (s Subscript) SQL() string { return s.Expr.SQL() + "[" + s.Index.SQL() + "]" }

// MapAccess is `expr['key']` rendered distinctly from Subscript when the
// source dialect uses bracket map access semantically (kept separate so
// a future printer can special-case it; today it serializes the same).
type MapAccess struct {
	Expr Expression
	Key  Expression
}

func (MapAccess) expressionNode() {}
func (m MapAccess) SQL() string { return m.Expr.SQL() + "[" + m.Key.SQL() + "]" }

// ArrayLiteral is `ARRAY[expr, ...]`.
type ArrayLiteral struct{ Elems []Expression }

func (ArrayLiteral) expressionNode() {}
func (a ArrayLiteral) SQL() string { return "ARRAY[" + joinExprs(a.Elems, ", ") + "]" }

// MapLiteral is `MAP {key: value, ...}`.
type MapEntry struct {
	Key   Expression
	Value Expression
}

type MapLiteral struct{ Entries []MapEntry }

func (MapLiteral) expressionNode() {}
func (m MapLiteral) SQL() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Key.SQL() + ": " + e.Value.SQL()
	}
	return "MAP {" + strings.Join(parts, ", ") + "}"
}

// DictionaryLiteral is a bare `{key: value, ...}` literal (ClickHouse
// dictionary syntax).
type DictionaryLiteral struct{ Entries []MapEntry }

func (DictionaryLiteral) expressionNode() {}
func (d DictionaryLiteral) SQL() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = e.Key.SQL() + ": " + e.Value.SQL()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Collate is `expr COLLATE name`.
type Collate struct {
	Expr Expression
	Name ObjectName
}

func (Collate) expressionNode() {}
func (c Collate) SQL() string { return c.Expr.SQL() + " COLLATE " + c.Name.SQL() }

// StructLiteral is `STRUCT(expr AS field, ...)`.
type StructLiteral struct{ Fields []AliasedExpr }

func (StructLiteral) expressionNode() {}
func (s StructLiteral) SQL() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.SQL()
	}
	return "STRUCT(" + strings.Join(parts, ", ") + ")"
}
