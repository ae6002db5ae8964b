package ast

import (
	"fmt"
	"strings"
)

// SetVariableStatement is `SET [SESSION|LOCAL] name = value [, ...]`.
type SetVariableStatement struct {
	Local bool
	Name  ObjectName
	Values []Expression
}

func (SetVariableStatement) statementNode() {}
func (s SetVariableStatement) SQL() string {
	kw := "SET"
	if s.Local {
		kw = "SET LOCAL"
	}
	return fmt.Sprintf("%s %s = %s", kw, s.Name.SQL(), joinExprs(s.Values, ", "))
}

// SetTimeZoneStatement is `SET TIME ZONE value`.
type SetTimeZoneStatement struct{ Value Expression }

func (SetTimeZoneStatement) statementNode() {}
func (s SetTimeZoneStatement) SQL() string { return "SET TIME ZONE " + s.Value.SQL() }

// ShowStatement covers SHOW VARIABLES/SHOW TABLES/SHOW name, keeping
// the raw object name general enough for any dialect's SHOW flavor.
type ShowStatement struct {
	What   string // e.g. "TABLES", "VARIABLES", a bare name
	Filter string // raw LIKE/WHERE tail, empty if absent
}

func (ShowStatement) statementNode() {}
func (s ShowStatement) SQL() string {
	out := "SHOW " + s.What
	if s.Filter != "" {
		out += " " + s.Filter
	}
	return out
}

// ResetStatement is `RESET name` / `RESET ALL`.
type ResetStatement struct{ Name string }

func (ResetStatement) statementNode() {}
func (r ResetStatement) SQL() string { return "RESET " + r.Name }

// DiscardStatement is `DISCARD {ALL|PLANS|SEQUENCES|TEMP}`.
type DiscardStatement struct{ What string }

func (DiscardStatement) statementNode() {}
func (d DiscardStatement) SQL() string { return "DISCARD " + d.What }

// UseStatement is `USE name`.
type UseStatement struct{ Name ObjectName }

func (UseStatement) statementNode() {}
func (u UseStatement) SQL() string { return "USE " + u.Name.SQL() }

// ExplainStatement is `EXPLAIN [ANALYZE] [VERBOSE] statement` or, when
// UtilityOptions is set, the `EXPLAIN (opt, ...)` parenthesized form.
type ExplainStatement struct {
	Analyze        bool
	Verbose        bool
	UtilityOptions map[string]string
	Statement      Statement
}

func (ExplainStatement) statementNode() {}
func (e ExplainStatement) SQL() string {
	var b strings.Builder
	b.WriteString("EXPLAIN ")
	if len(e.UtilityOptions) > 0 {
		keys := make([]string, 0, len(e.UtilityOptions))
		for k := range e.UtilityOptions {
			keys = append(keys, k)
		}
		sortStrings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			v := e.UtilityOptions[k]
			if v == "" {
				parts[i] = k
			} else {
				parts[i] = k + " " + v
			}
		}
		fmt.Fprintf(&b, "(%s) ", strings.Join(parts, ", "))
	} else {
		if e.Analyze {
			b.WriteString("ANALYZE ")
		}
		if e.Verbose {
			b.WriteString("VERBOSE ")
		}
	}
	b.WriteString(e.Statement.SQL())
	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// CopyStatement is `COPY table [(cols)] {FROM|TO} target [options]`.
type CopyStatement struct {
	Table   ObjectName
	Columns []Ident
	To      bool // false means FROM
	Target  string
	Options string
}

func (CopyStatement) statementNode() {}
func (c CopyStatement) SQL() string {
	dir := "FROM"
	if c.To {
		dir = "TO"
	}
	var b strings.Builder
	b.WriteString("COPY " + c.Table.SQL())
	if len(c.Columns) > 0 {
		b.WriteString(" (" + identListSQL(c.Columns) + ")")
	}
	fmt.Fprintf(&b, " %s %s", dir, c.Target)
	if c.Options != "" {
		b.WriteString(" " + c.Options)
	}
	return b.String()
}

// VacuumStatement is `VACUUM [FULL] [FREEZE] [VERBOSE] [table]`.
type VacuumStatement struct {
	Full    bool
	Freeze  bool
	Verbose bool
	Table   ObjectName
}

func (VacuumStatement) statementNode() {}
func (v VacuumStatement) SQL() string {
	var b strings.Builder
	b.WriteString("VACUUM")
	if v.Full {
		b.WriteString(" FULL")
	}
	if v.Freeze {
		b.WriteString(" FREEZE")
	}
	if v.Verbose {
		b.WriteString(" VERBOSE")
	}
	if len(v.Table) > 0 {
		b.WriteString(" " + v.Table.SQL())
	}
	return b.String()
}

// GrantStatement / RevokeStatement / DenyStatement share a shape.
type GrantStatement struct {
	Privileges []string
	On         ObjectName
	To         []Ident
	WithGrantOption bool
}

func (GrantStatement) statementNode() {}
func (g GrantStatement) SQL() string {
	s := fmt.Sprintf("GRANT %s ON %s TO %s", strings.Join(g.Privileges, ", "), g.On.SQL(), identListSQL(g.To))
	if g.WithGrantOption {
		s += " WITH GRANT OPTION"
	}
	return s
}

type RevokeStatement struct {
	Privileges []string
	On         ObjectName
	From       []Ident
	Cascade    bool
}

func (RevokeStatement) statementNode() {}
func (r RevokeStatement) SQL() string {
	s := fmt.Sprintf("REVOKE %s ON %s FROM %s", strings.Join(r.Privileges, ", "), r.On.SQL(), identListSQL(r.From))
	if r.Cascade {
		s += " CASCADE"
	}
	return s
}

type DenyStatement struct {
	Privileges []string
	On         ObjectName
	To         []Ident
}

func (DenyStatement) statementNode() {}
func (d DenyStatement) SQL() string {
	return fmt.Sprintf("DENY %s ON %s TO %s", strings.Join(d.Privileges, ", "), d.On.SQL(), identListSQL(d.To))
}

// CommentStatement is `COMMENT ON kind name IS 'text'`.
type CommentStatement struct {
	ObjectKind string
	Name       ObjectName
	Text       string
}

func (CommentStatement) statementNode() {}
func (c CommentStatement) SQL() string {
	return fmt.Sprintf("COMMENT ON %s %s IS %s", c.ObjectKind, c.Name.SQL(), quoteSingle(c.Text))
}

// PrepareStatement / ExecuteStatement / DeallocateStatement cover
// prepared-statement lifecycle.
type PrepareStatement struct {
	Name      string
	ArgTypes  []DataType
	Statement Statement
}

func (PrepareStatement) statementNode() {}
func (p PrepareStatement) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PREPARE %s", p.Name)
	if len(p.ArgTypes) > 0 {
		parts := make([]string, len(p.ArgTypes))
		for i, t := range p.ArgTypes {
			parts[i] = t.SQL()
		}
		fmt.Fprintf(&b, "(%s)", strings.Join(parts, ", "))
	}
	b.WriteString(" AS " + p.Statement.SQL())
	return b.String()
}

type ExecuteStatement struct {
	Name string
	Args []Expression
}

func (ExecuteStatement) statementNode() {}
func (e ExecuteStatement) SQL() string {
	s := "EXECUTE " + e.Name
	if len(e.Args) > 0 {
		s += "(" + joinExprs(e.Args, ", ") + ")"
	}
	return s
}

type DeallocateStatement struct{ Name string }

func (DeallocateStatement) statementNode() {}
func (d DeallocateStatement) SQL() string { return "DEALLOCATE " + d.Name }

// CallStatement is `CALL name(args)`.
type CallStatement struct {
	Name ObjectName
	Args []Expression
}

func (CallStatement) statementNode() {}
func (c CallStatement) SQL() string {
	return fmt.Sprintf("CALL %s(%s)", c.Name.SQL(), joinExprs(c.Args, ", "))
}

// AssertStatement is `ASSERT condition [AS message]`.
type AssertStatement struct {
	Condition Expression
	Message   Expression
}

func (AssertStatement) statementNode() {}
func (a AssertStatement) SQL() string {
	s := "ASSERT " + a.Condition.SQL()
	if a.Message != nil {
		s += " AS " + a.Message.SQL()
	}
	return s
}

// PrintStatement is T-SQL's `PRINT expr`.
type PrintStatement struct{ Expr Expression }

func (PrintStatement) statementNode() {}
func (p PrintStatement) SQL() string { return "PRINT " + p.Expr.SQL() }

// RaiseStatement / RaiseErrorStatement cover PL/pgSQL RAISE and T-SQL
// RAISERROR, kept with just the pieces that round-trip cleanly.
type RaiseStatement struct {
	Level   string // NOTICE, WARNING, EXCEPTION
	Message Expression
	Args    []Expression
}

func (RaiseStatement) statementNode() {}
func (r RaiseStatement) SQL() string {
	var b strings.Builder
	b.WriteString("RAISE")
	if r.Level != "" {
		b.WriteString(" " + r.Level)
	}
	if r.Message != nil {
		b.WriteString(" " + r.Message.SQL())
	}
	if len(r.Args) > 0 {
		b.WriteString(", " + joinExprs(r.Args, ", "))
	}
	return b.String()
}

type RaiseErrorStatement struct {
	Message  Expression
	Severity Expression
	State    Expression
	Args     []Expression
}

func (RaiseErrorStatement) statementNode() {}
func (r RaiseErrorStatement) SQL() string {
	parts := []string{r.Message.SQL()}
	if r.Severity != nil {
		parts = append(parts, r.Severity.SQL())
	}
	if r.State != nil {
		parts = append(parts, r.State.SQL())
	}
	parts = append(parts, exprSlice(r.Args)...)
	return "RAISERROR(" + strings.Join(parts, ", ") + ")"
}

func exprSlice(exprs []Expression) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.SQL()
	}
	return out
}

// LockTablesStatement is MySQL's `LOCK TABLES t1 READ, t2 WRITE`.
type LockTablesStatement struct {
	Locks []TableLock
}

type TableLock struct {
	Table ObjectName
	Mode  string // READ, WRITE, READ LOCAL, LOW_PRIORITY WRITE
}

func (LockTablesStatement) statementNode() {}
func (l LockTablesStatement) SQL() string {
	parts := make([]string, len(l.Locks))
	for i, lk := range l.Locks {
		parts[i] = lk.Table.SQL() + " " + lk.Mode
	}
	return "LOCK TABLES " + strings.Join(parts, ", ")
}

// ListenStatement / NotifyStatement cover Postgres's LISTEN/NOTIFY.
type ListenStatement struct{ Channel string }

func (ListenStatement) statementNode() {}
func (l ListenStatement) SQL() string { return "LISTEN " + l.Channel }

type NotifyStatement struct {
	Channel string
	Payload string
}

func (NotifyStatement) statementNode() {}
func (n NotifyStatement) SQL() string {
	if n.Payload == "" {
		return "NOTIFY " + n.Channel
	}
	return "NOTIFY " + n.Channel + ", " + quoteSingle(n.Payload)
}

// CacheStatement / UncacheStatement are Spark SQL's table-caching hints.
type CacheStatement struct {
	Lazy  bool
	Table ObjectName
	Query *Query
}

func (CacheStatement) statementNode() {}
func (c CacheStatement) SQL() string {
	var b strings.Builder
	b.WriteString("CACHE ")
	if c.Lazy {
		b.WriteString("LAZY ")
	}
	fmt.Fprintf(&b, "TABLE %s", c.Table.SQL())
	if c.Query != nil {
		b.WriteString(" AS " + c.Query.SQL())
	}
	return b.String()
}

type UncacheStatement struct{ Table ObjectName }

func (UncacheStatement) statementNode() {}
func (u UncacheStatement) SQL() string { return "UNCACHE TABLE " + u.Table.SQL() }

// ---- Procedural control flow ----

// IfStatement is `IF cond THEN stmts [ELSIF cond THEN stmts]* [ELSE
// stmts] END IF`.
type IfStatement struct {
	Branches []IfBranch
	Else     []Statement
}

type IfBranch struct {
	Condition Expression
	Body      []Statement
}

func (IfStatement) statementNode() {}
func (i IfStatement) SQL() string {
	var b strings.Builder
	for idx, br := range i.Branches {
		if idx == 0 {
			b.WriteString("IF " + br.Condition.SQL() + " THEN ")
		} else {
			b.WriteString(" ELSIF " + br.Condition.SQL() + " THEN ")
		}
		b.WriteString(statementsSQL(br.Body))
	}
	if len(i.Else) > 0 {
		b.WriteString(" ELSE " + statementsSQL(i.Else))
	}
	b.WriteString(" END IF")
	return b.String()
}

func statementsSQL(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.SQL()
	}
	return strings.Join(parts, "; ")
}

// WhileStatement is `WHILE cond LOOP stmts END LOOP`.
type WhileStatement struct {
	Condition Expression
	Body      []Statement
}

func (WhileStatement) statementNode() {}
func (w WhileStatement) SQL() string {
	return "WHILE " + w.Condition.SQL() + " LOOP " + statementsSQL(w.Body) + " END LOOP"
}

// LoopStatement is a bare `LOOP stmts END LOOP` (exited via an inner
// EXIT/LEAVE, not modeled separately here).
type LoopStatement struct{ Body []Statement }

func (LoopStatement) statementNode() {}
func (l LoopStatement) SQL() string { return "LOOP " + statementsSQL(l.Body) + " END LOOP" }

// DeclareStatement is `DECLARE name type [:= default]` or a cursor
// declaration `DECLARE name CURSOR FOR query`.
type DeclareStatement struct {
	Name    Ident
	Type    DataType
	Default Expression
	Cursor  *Query
}

func (DeclareStatement) statementNode() {}
func (d DeclareStatement) SQL() string {
	if d.Cursor != nil {
		return fmt.Sprintf("DECLARE %s CURSOR FOR %s", d.Name.SQL(), d.Cursor.SQL())
	}
	s := "DECLARE " + d.Name.SQL() + " " + d.Type.SQL()
	if d.Default != nil {
		s += " := " + d.Default.SQL()
	}
	return s
}

// OpenStatement / CloseStatement / ReturnStatement round out the
// procedural-statement surface.
type OpenStatement struct{ Cursor Ident }

func (OpenStatement) statementNode() {}
func (o OpenStatement) SQL() string { return "OPEN " + o.Cursor.SQL() }

type CloseStatement struct{ Cursor Ident }

func (CloseStatement) statementNode() {}
func (c CloseStatement) SQL() string { return "CLOSE " + c.Cursor.SQL() }

type ReturnStatement struct{ Expr Expression }

func (ReturnStatement) statementNode() {}
func (r ReturnStatement) SQL() string {
	if r.Expr == nil {
		return "RETURN"
	}
	return "RETURN " + r.Expr.SQL()
}

// EmptyStatement represents a statement with no content. ParseStatement
// returns it for an input that is empty or just `;`; ParseStatements drops
// it, so `";;"` parses to an empty statement list rather than an error.
type EmptyStatement struct{}

func (EmptyStatement) statementNode() {}
func (EmptyStatement) SQL() string    { return "" }

// OpaqueStatement lets a custom dialect's ParseStatement hook hand back
// a statement whose only obligation is to reproduce its original source
// text verbatim.
type OpaqueStatement struct{ Source string }

func (OpaqueStatement) statementNode() {}
func (o OpaqueStatement) SQL() string { return o.Source }
