package ast

import (
	"fmt"
	"strings"
)

// Query is the outermost shape of anything that produces rows: an
// optional WITH clause wrapping a SetExpression body, plus the trailing
// ORDER BY/LIMIT/OFFSET/FETCH/locking clauses that apply to the whole
// query rather than to one SELECT.
type Query struct {
	With    *WithClause
	Body    SetExpression
	OrderBy []OrderByExpr
	Limit   Expression
	LimitAll bool
	Offset  *Offset
	Fetch   *Fetch
	Locks   []Lock
}

func (q Query) SQL() string {
	var parts []string
	if q.With != nil {
		parts = append(parts, q.With.SQL())
	}
	parts = append(parts, q.Body.SQL())
	if len(q.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+joinOrderBy(q.OrderBy))
	}
	switch {
	case q.LimitAll:
		parts = append(parts, "LIMIT ALL")
	case q.Limit != nil:
		parts = append(parts, "LIMIT "+q.Limit.SQL())
	}
	if q.Offset != nil {
		parts = append(parts, q.Offset.SQL())
	}
	if q.Fetch != nil {
		parts = append(parts, q.Fetch.SQL())
	}
	for _, l := range q.Locks {
		parts = append(parts, l.SQL())
	}
	return strings.Join(parts, " ")
}

func (Query) expressionNode() {}

// WithClause is `WITH [RECURSIVE] cte [, cte ...]`.
type WithClause struct {
	Recursive bool
	CTEs      []CTE
}

func (w WithClause) SQL() string {
	kw := "WITH"
	if w.Recursive {
		kw = "WITH RECURSIVE"
	}
	parts := make([]string, len(w.CTEs))
	for i, c := range w.CTEs {
		parts[i] = c.SQL()
	}
	return kw + " " + strings.Join(parts, ", ")
}

// CTE is one named entry of a WITH clause.
type CTE struct {
	Name    Ident
	Columns []Ident
	Query   *Query
	Materialized *bool // nil = unspecified, true = MATERIALIZED, false = NOT MATERIALIZED
}

func (c CTE) SQL() string {
	var b strings.Builder
	b.WriteString(c.Name.SQL())
	if len(c.Columns) > 0 {
		cols := make([]string, len(c.Columns))
		for i, col := range c.Columns {
			cols[i] = col.SQL()
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(cols, ", "))
	}
	b.WriteString(" AS ")
	if c.Materialized != nil {
		if *c.Materialized {
			b.WriteString("MATERIALIZED ")
		} else {
			b.WriteString("NOT MATERIALIZED ")
		}
	}
	fmt.Fprintf(&b, "(%s)", c.Query.SQL())
	return b.String()
}

// Offset is `OFFSET expr [ROW|ROWS]`.
type Offset struct {
	Value Expression
	Rows  bool
}

func (o Offset) SQL() string {
	if o.Rows {
		return "OFFSET " + o.Value.SQL() + " ROWS"
	}
	return "OFFSET " + o.Value.SQL()
}

// Fetch is `FETCH FIRST|NEXT [n [PERCENT]] ROW[S] [ONLY|WITH TIES]`.
type Fetch struct {
	First    bool // false means NEXT
	Quantity Expression
	Percent  bool
	WithTies bool
}

func (f Fetch) SQL() string {
	kw := "NEXT"
	if f.First {
		kw = "FIRST"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "FETCH %s", kw)
	if f.Quantity != nil {
		b.WriteString(" " + f.Quantity.SQL())
	}
	if f.Percent {
		b.WriteString(" PERCENT")
	}
	b.WriteString(" ROWS")
	if f.WithTies {
		b.WriteString(" WITH TIES")
	} else {
		b.WriteString(" ONLY")
	}
	return b.String()
}

// Lock is `FOR UPDATE|SHARE [OF name,...] [NOWAIT|SKIP LOCKED]`.
type Lock struct {
	Share    bool
	Of       []ObjectName
	Nowait   bool
	SkipLocked bool
}

func (l Lock) SQL() string {
	kw := "UPDATE"
	if l.Share {
		kw = "SHARE"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "FOR %s", kw)
	if len(l.Of) > 0 {
		names := make([]string, len(l.Of))
		for i, n := range l.Of {
			names[i] = n.SQL()
		}
		b.WriteString(" OF " + strings.Join(names, ", "))
	}
	if l.Nowait {
		b.WriteString(" NOWAIT")
	}
	if l.SkipLocked {
		b.WriteString(" SKIP LOCKED")
	}
	return b.String()
}

// SetExpression is the body of a Query: a bare SELECT, a parenthesized
// sub-query, a UNION/INTERSECT/EXCEPT combination, a VALUES list, or a
// bare table reference (`TABLE t`).
type SetExpression interface {
	Node
	setExpressionNode()
}

func (Select) setExpressionNode() {}

type QueryExpression struct{ Query *Query }

func (QueryExpression) setExpressionNode() {}
func (q QueryExpression) SQL() string      { return "(" + q.Query.SQL() + ")" }

type SetOperation struct {
	Left     SetExpression
	Op       string // UNION, INTERSECT, EXCEPT
	Quantifier string // "", ALL, DISTINCT, BY NAME
	Right    SetExpression
}

func (SetOperation) setExpressionNode() {}
func (s SetOperation) SQL() string {
	q := s.Op
	if s.Quantifier != "" {
		q += " " + s.Quantifier
	}
	return s.Left.SQL() + " " + q + " " + s.Right.SQL()
}

type ValuesExpression struct{ Rows [][]Expression }

func (ValuesExpression) setExpressionNode() {}
func (v ValuesExpression) SQL() string {
	rows := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = "(" + joinExprs(r, ", ") + ")"
	}
	return "VALUES " + strings.Join(rows, ", ")
}

type TableExpression struct{ Name ObjectName }

func (TableExpression) setExpressionNode() {}
func (t TableExpression) SQL() string      { return "TABLE " + t.Name.SQL() }

// Select is the body of a SELECT statement, used both standalone and as
// the top of a SetExpression.
type Select struct {
	Distinct      *DistinctClause
	Projection    []Expression
	Into          *IntoClause
	From          []TableWithJoins
	Selection     Expression
	GroupBy       []Expression
	ClusterBy     []Expression
	DistributeBy  []Expression
	SortBy        []OrderByExpr
	Having        Expression
	NamedWindow   []NamedWindow
	Qualify       Expression
	ConnectBy     *ConnectBy
	WindowBeforeQualify bool
}

func (s Select) SQL() string {
	var b strings.Builder
	b.WriteString("SELECT")
	if s.Distinct != nil {
		b.WriteString(" " + s.Distinct.SQL())
	}
	if len(s.Projection) > 0 {
		b.WriteString(" " + joinExprs(s.Projection, ", "))
	}
	if s.Into != nil {
		b.WriteString(" " + s.Into.SQL())
	}
	if len(s.From) > 0 {
		parts := make([]string, len(s.From))
		for i, f := range s.From {
			parts[i] = f.SQL()
		}
		b.WriteString(" FROM " + strings.Join(parts, ", "))
	}
	if s.Selection != nil {
		b.WriteString(" WHERE " + s.Selection.SQL())
	}
	windowClause := ""
	if len(s.NamedWindow) > 0 {
		parts := make([]string, len(s.NamedWindow))
		for i, w := range s.NamedWindow {
			parts[i] = w.SQL()
		}
		windowClause = " WINDOW " + strings.Join(parts, ", ")
	}
	if s.ConnectBy != nil {
		b.WriteString(" " + s.ConnectBy.SQL())
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY " + joinExprs(s.GroupBy, ", "))
	}
	if len(s.ClusterBy) > 0 {
		b.WriteString(" CLUSTER BY " + joinExprs(s.ClusterBy, ", "))
	}
	if len(s.DistributeBy) > 0 {
		b.WriteString(" DISTRIBUTE BY " + joinExprs(s.DistributeBy, ", "))
	}
	if len(s.SortBy) > 0 {
		b.WriteString(" SORT BY " + joinOrderBy(s.SortBy))
	}
	if s.Having != nil {
		b.WriteString(" HAVING " + s.Having.SQL())
	}
	if s.WindowBeforeQualify {
		b.WriteString(windowClause)
		if s.Qualify != nil {
			b.WriteString(" QUALIFY " + s.Qualify.SQL())
		}
	} else {
		if s.Qualify != nil {
			b.WriteString(" QUALIFY " + s.Qualify.SQL())
		}
		b.WriteString(windowClause)
	}
	return b.String()
}

// DistinctClause is DISTINCT or Postgres DISTINCT ON (exprs).
type DistinctClause struct{ On []Expression }

func (d DistinctClause) SQL() string {
	if len(d.On) == 0 {
		return "DISTINCT"
	}
	return "DISTINCT ON (" + joinExprs(d.On, ", ") + ")"
}

// IntoClause is `INTO [TEMPORARY] [UNLOGGED] TABLE name`.
type IntoClause struct {
	Name      ObjectName
	Temporary bool
	Unlogged  bool
}

func (i IntoClause) SQL() string {
	var b strings.Builder
	b.WriteString("INTO ")
	if i.Temporary {
		b.WriteString("TEMPORARY ")
	}
	if i.Unlogged {
		b.WriteString("UNLOGGED ")
	}
	b.WriteString("TABLE " + i.Name.SQL())
	return b.String()
}

// NamedWindow is one entry of a WINDOW clause: `name AS (spec)`.
type NamedWindow struct {
	Name Ident
	Spec WindowSpec
}

func (n NamedWindow) SQL() string { return n.Name.SQL() + " AS (" + n.Spec.SQL() + ")" }

// ConnectBy is Oracle's `CONNECT BY [NOCYCLE] cond [START WITH cond]`
// (the START WITH clause may also precede CONNECT BY in source order;
// the AST normalizes to this field order and the parser records which
// order was seen only insofar as both render correctly).
type ConnectBy struct {
	Condition Expression
	NoCycle   bool
	StartWith Expression
}

func (c ConnectBy) SQL() string {
	var b strings.Builder
	if c.StartWith != nil {
		fmt.Fprintf(&b, "START WITH %s ", c.StartWith.SQL())
	}
	b.WriteString("CONNECT BY ")
	if c.NoCycle {
		b.WriteString("NOCYCLE ")
	}
	b.WriteString(c.Condition.SQL())
	return b.String()
}

// TableWithJoins is one FROM-list item: a relation plus zero or more
// joins against it, in source order.
type TableWithJoins struct {
	Relation TableFactor
	Joins    []Join
}

func (t TableWithJoins) SQL() string {
	s := t.Relation.SQL()
	for _, j := range t.Joins {
		s += " " + j.SQL()
	}
	return s
}

// JoinOperator enumerates the join kinds the dispatch in §4.4
// recognizes.
type JoinOperator int

const (
	JoinInner JoinOperator = iota
	JoinLeft
	JoinLeftOuter
	JoinRight
	JoinRightOuter
	JoinFull
	JoinFullOuter
	JoinCross
	JoinCrossApply
	JoinOuterApply
	JoinLeftSemi
	JoinRightSemi
	JoinLeftAnti
	JoinRightAnti
)

var joinOperatorText = map[JoinOperator]string{
	JoinInner: "JOIN", JoinLeft: "LEFT JOIN", JoinLeftOuter: "LEFT OUTER JOIN",
	JoinRight: "RIGHT JOIN", JoinRightOuter: "RIGHT OUTER JOIN",
	JoinFull: "FULL JOIN", JoinFullOuter: "FULL OUTER JOIN",
	JoinCross: "CROSS JOIN", JoinCrossApply: "CROSS APPLY", JoinOuterApply: "OUTER APPLY",
	JoinLeftSemi: "LEFT SEMI JOIN", JoinRightSemi: "RIGHT SEMI JOIN",
	JoinLeftAnti: "LEFT ANTI JOIN", JoinRightAnti: "RIGHT ANTI JOIN",
}

// JoinConstraint is ON expr, USING(cols), NATURAL, or no constraint
// (CROSS JOIN).
type JoinConstraint interface{ joinConstraintSQL() string }

type OnConstraint struct{ Expr Expression }

func (o OnConstraint) joinConstraintSQL() string { return "ON " + o.Expr.SQL() }

type UsingConstraint struct{ Columns []Ident }

func (u UsingConstraint) joinConstraintSQL() string {
	cols := make([]string, len(u.Columns))
	for i, c := range u.Columns {
		cols[i] = c.SQL()
	}
	return "USING(" + strings.Join(cols, ", ") + ")"
}

type NaturalConstraint struct{}

func (NaturalConstraint) joinConstraintSQL() string { return "" }

type NoConstraint struct{}

func (NoConstraint) joinConstraintSQL() string { return "" }

// Join is one join clause attached to a TableWithJoins.
type Join struct {
	Operator   JoinOperator
	Natural    bool
	Global     bool
	Relation   TableFactor
	Constraint JoinConstraint
}

func (j Join) SQL() string {
	op := joinOperatorText[j.Operator]
	var b strings.Builder
	if j.Global {
		b.WriteString("GLOBAL ")
	}
	if j.Natural {
		b.WriteString("NATURAL ")
	}
	b.WriteString(op)
	if j.Relation != nil {
		b.WriteString(" " + j.Relation.SQL())
	}
	if j.Constraint != nil {
		if c := j.Constraint.joinConstraintSQL(); c != "" {
			b.WriteString(" " + c)
		}
	}
	return b.String()
}

// ---- TableFactor variants ----

// TableRelation is a plain table/view reference, with optional alias
// and column-alias list.
type TableRelation struct {
	Name    ObjectName
	Alias   *TableAlias
}

func (TableRelation) tableFactorNode() {}
func (t TableRelation) SQL() string {
	s := t.Name.SQL()
	if t.Alias != nil {
		s += " " + t.Alias.SQL()
	}
	return s
}

type TableAlias struct {
	Name    Ident
	Columns []Ident
}

func (a TableAlias) SQL() string {
	if len(a.Columns) == 0 {
		return a.Name.SQL()
	}
	cols := make([]string, len(a.Columns))
	for i, c := range a.Columns {
		cols[i] = c.SQL()
	}
	return fmt.Sprintf("%s (%s)", a.Name.SQL(), strings.Join(cols, ", "))
}

// DerivedTable is `[LATERAL] (subquery) [alias]`.
type DerivedTable struct {
	Lateral bool
	Query   *Query
	Alias   *TableAlias
}

func (DerivedTable) tableFactorNode() {}
func (d DerivedTable) SQL() string {
	var b strings.Builder
	if d.Lateral {
		b.WriteString("LATERAL ")
	}
	fmt.Fprintf(&b, "(%s)", d.Query.SQL())
	if d.Alias != nil {
		b.WriteString(" " + d.Alias.SQL())
	}
	return b.String()
}

// TableFunctionCall is `name(args) [alias]` used as a relation, or the
// explicit `TABLE(expr)` set-returning-function form.
type TableFunctionCall struct {
	Wrapped bool // true renders TABLE(expr)
	Call    Function
	Alias   *TableAlias
}

func (TableFunctionCall) tableFactorNode() {}
func (t TableFunctionCall) SQL() string {
	s := t.Call.SQL()
	if t.Wrapped {
		s = "TABLE(" + s + ")"
	}
	if t.Alias != nil {
		s += " " + t.Alias.SQL()
	}
	return s
}

// UnnestRelation is `UNNEST(expr,...) [alias] [WITH OFFSET [AS name]]`.
type UnnestRelation struct {
	Exprs       []Expression
	Alias       *TableAlias
	WithOffset  bool
	OffsetAlias *Ident
}

func (UnnestRelation) tableFactorNode() {}
func (u UnnestRelation) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "UNNEST(%s)", joinExprs(u.Exprs, ", "))
	if u.Alias != nil {
		b.WriteString(" " + u.Alias.SQL())
	}
	if u.WithOffset {
		b.WriteString(" WITH OFFSET")
		if u.OffsetAlias != nil {
			b.WriteString(" AS " + u.OffsetAlias.SQL())
		}
	}
	return b.String()
}

// NestedJoinRelation is a parenthesized join tree used as a relation.
type NestedJoinRelation struct{ TableWithJoins TableWithJoins }

func (NestedJoinRelation) tableFactorNode() {}
func (n NestedJoinRelation) SQL() string { return "(" + n.TableWithJoins.SQL() + ")" }

// TableSample is `relation TABLESAMPLE [method] (expr PERCENT|ROWS)
// [REPEATABLE(seed)]`.
type TableSample struct {
	Relation   TableFactor
	Method     string
	Quantity   Expression
	Percent    bool
	Repeatable Expression
}

func (TableSample) tableFactorNode() {}
func (t TableSample) SQL() string {
	var b strings.Builder
	b.WriteString(t.Relation.SQL())
	b.WriteString(" TABLESAMPLE ")
	if t.Method != "" {
		b.WriteString(strings.ToUpper(t.Method) + " ")
	}
	b.WriteString("(" + t.Quantity.SQL())
	if t.Percent {
		b.WriteString(" PERCENT")
	} else {
		b.WriteString(" ROWS")
	}
	b.WriteString(")")
	if t.Repeatable != nil {
		b.WriteString(" REPEATABLE(" + t.Repeatable.SQL() + ")")
	}
	return b.String()
}

// PivotRelation is `relation PIVOT(agg FOR col IN (values)) [alias]`.
type PivotRelation struct {
	Relation  TableFactor
	Aggregate Expression
	ForColumn Ident
	InValues  []Expression
	Alias     *TableAlias
}

func (PivotRelation) tableFactorNode() {}
func (p PivotRelation) SQL() string {
	s := fmt.Sprintf("%s PIVOT(%s FOR %s IN (%s))", p.Relation.SQL(), p.Aggregate.SQL(), p.ForColumn.SQL(), joinExprs(p.InValues, ", "))
	if p.Alias != nil {
		s += " " + p.Alias.SQL()
	}
	return s
}

// UnpivotRelation is `relation UNPIVOT(value FOR name IN (cols)) [alias]`.
type UnpivotRelation struct {
	Relation    TableFactor
	ValueColumn Ident
	NameColumn  Ident
	InColumns   []Ident
	Alias       *TableAlias
}

func (UnpivotRelation) tableFactorNode() {}
func (u UnpivotRelation) SQL() string {
	cols := make([]string, len(u.InColumns))
	for i, c := range u.InColumns {
		cols[i] = c.SQL()
	}
	s := fmt.Sprintf("%s UNPIVOT(%s FOR %s IN (%s))", u.Relation.SQL(), u.ValueColumn.SQL(), u.NameColumn.SQL(), strings.Join(cols, ", "))
	if u.Alias != nil {
		s += " " + u.Alias.SQL()
	}
	return s
}

// OpenJSON is SQL Server's `OPENJSON(expr [, path]) [WITH (...)]`, kept
// opaque beyond its source text for the WITH schema list.
type OpenJSON struct {
	Expr  Expression
	Path  Expression
	With  string
	Alias *TableAlias
}

func (OpenJSON) tableFactorNode() {}
func (o OpenJSON) SQL() string {
	s := "OPENJSON(" + o.Expr.SQL()
	if o.Path != nil {
		s += ", " + o.Path.SQL()
	}
	s += ")"
	if o.With != "" {
		s += " WITH (" + o.With + ")"
	}
	if o.Alias != nil {
		s += " " + o.Alias.SQL()
	}
	return s
}
