package ast

import (
	"fmt"
	"strings"
)

// ColumnDef is one column of a CREATE TABLE column list.
type ColumnDef struct {
	Name        Ident
	Type        DataType
	Constraints []ColumnConstraint
}

func (c ColumnDef) SQL() string {
	s := c.Name.SQL() + " " + c.Type.SQL()
	for _, cc := range c.Constraints {
		s += " " + cc.SQL()
	}
	return s
}

// ColumnConstraint is one inline constraint on a column definition.
type ColumnConstraint struct {
	Name string // constraint name, empty if unnamed

	NotNull    bool
	Null       bool
	Default    Expression
	PrimaryKey bool
	Unique     bool
	Check      Expression
	References *ForeignKeyRef
	Collate    ObjectName
	Invisible  bool
	Comment    string
	Generated  *GeneratedAs
}

func (c ColumnConstraint) SQL() string {
	var b strings.Builder
	if c.Name != "" {
		fmt.Fprintf(&b, "CONSTRAINT %s ", c.Name)
	}
	switch {
	case c.NotNull:
		b.WriteString("NOT NULL")
	case c.Null:
		b.WriteString("NULL")
	case c.Default != nil:
		b.WriteString("DEFAULT " + c.Default.SQL())
	case c.PrimaryKey:
		b.WriteString("PRIMARY KEY")
	case c.Unique:
		b.WriteString("UNIQUE")
	case c.Check != nil:
		b.WriteString("CHECK(" + c.Check.SQL() + ")")
	case c.References != nil:
		b.WriteString(c.References.SQL())
	case len(c.Collate) > 0:
		b.WriteString("COLLATE " + c.Collate.SQL())
	case c.Invisible:
		b.WriteString("INVISIBLE")
	case c.Comment != "":
		b.WriteString("COMMENT " + quoteSingle(c.Comment))
	case c.Generated != nil:
		b.WriteString(c.Generated.SQL())
	}
	return b.String()
}

// GeneratedAs is `GENERATED ALWAYS AS (expr) STORED|VIRTUAL` or
// `GENERATED ALWAYS AS IDENTITY`.
type GeneratedAs struct {
	Identity bool
	Expr     Expression
	Stored   bool
}

func (g GeneratedAs) SQL() string {
	if g.Identity {
		return "GENERATED ALWAYS AS IDENTITY"
	}
	kind := "VIRTUAL"
	if g.Stored {
		kind = "STORED"
	}
	return fmt.Sprintf("GENERATED ALWAYS AS (%s) %s", g.Expr.SQL(), kind)
}

// ForeignKeyRef is `REFERENCES name[(cols)] [ON DELETE act] [ON UPDATE act]`.
type ForeignKeyRef struct {
	Name     ObjectName
	Columns  []Ident
	OnDelete string
	OnUpdate string
}

func (f ForeignKeyRef) SQL() string {
	var b strings.Builder
	b.WriteString("REFERENCES " + f.Name.SQL())
	if len(f.Columns) > 0 {
		cols := make([]string, len(f.Columns))
		for i, c := range f.Columns {
			cols[i] = c.SQL()
		}
		fmt.Fprintf(&b, "(%s)", strings.Join(cols, ", "))
	}
	if f.OnDelete != "" {
		b.WriteString(" ON DELETE " + f.OnDelete)
	}
	if f.OnUpdate != "" {
		b.WriteString(" ON UPDATE " + f.OnUpdate)
	}
	return b.String()
}

// TableConstraint is a table-level constraint (as opposed to a column's
// inline ColumnConstraint).
type TableConstraint struct {
	Name       string
	PrimaryKey []Ident
	Unique     []Ident
	Check      Expression
	ForeignKey *TableForeignKey
}

type TableForeignKey struct {
	Columns    []Ident
	References ForeignKeyRef
}

func (t TableConstraint) SQL() string {
	var b strings.Builder
	if t.Name != "" {
		fmt.Fprintf(&b, "CONSTRAINT %s ", t.Name)
	}
	switch {
	case len(t.PrimaryKey) > 0:
		b.WriteString("PRIMARY KEY (" + identListSQL(t.PrimaryKey) + ")")
	case len(t.Unique) > 0:
		b.WriteString("UNIQUE (" + identListSQL(t.Unique) + ")")
	case t.Check != nil:
		b.WriteString("CHECK (" + t.Check.SQL() + ")")
	case t.ForeignKey != nil:
		fmt.Fprintf(&b, "FOREIGN KEY (%s) %s", identListSQL(t.ForeignKey.Columns), t.ForeignKey.References.SQL())
	}
	return b.String()
}

func identListSQL(ids []Ident) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.SQL()
	}
	return strings.Join(parts, ", ")
}

// CreateTableStatement covers `CREATE TABLE`.
type CreateTableStatement struct {
	IfNotExists   bool
	Name          ObjectName
	Columns       []ColumnDef
	Constraints   []TableConstraint
	OnCluster     string
	PartitionBy   []Expression
	AsQuery       *Query
	AsTable       ObjectName
	Like          ObjectName
	CloneOf       ObjectName
	Concurrently  bool // only meaningful on CreateIndexStatement; kept off here
	External      bool
	FileFormat    string
	Location      string
}

func (CreateTableStatement) statementNode() {}
func (c CreateTableStatement) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if c.External {
		b.WriteString("EXTERNAL ")
	}
	b.WriteString("TABLE ")
	if c.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(c.Name.SQL())
	if len(c.Like) > 0 {
		b.WriteString(" LIKE " + c.Like.SQL())
		return b.String()
	}
	if len(c.CloneOf) > 0 {
		b.WriteString(" CLONE " + c.CloneOf.SQL())
		return b.String()
	}
	if len(c.Columns) > 0 || len(c.Constraints) > 0 {
		items := make([]string, 0, len(c.Columns)+len(c.Constraints))
		for _, col := range c.Columns {
			items = append(items, col.SQL())
		}
		for _, cons := range c.Constraints {
			items = append(items, cons.SQL())
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(items, ", "))
	}
	if c.OnCluster != "" {
		b.WriteString(" ON CLUSTER " + c.OnCluster)
	}
	if len(c.PartitionBy) > 0 {
		b.WriteString(" PARTITION BY (" + joinExprs(c.PartitionBy, ", ") + ")")
	}
	if c.FileFormat != "" {
		b.WriteString(" STORED AS " + c.FileFormat)
	}
	if c.Location != "" {
		b.WriteString(" LOCATION " + quoteSingle(c.Location))
	}
	if len(c.AsTable) > 0 {
		b.WriteString(" AS TABLE " + c.AsTable.SQL())
	} else if c.AsQuery != nil {
		b.WriteString(" AS " + c.AsQuery.SQL())
	}
	return b.String()
}

// AlterTableAction is the closed set of ALTER TABLE operations.
type AlterTableAction interface{ alterActionSQL() string }

type AddColumn struct {
	IfNotExists bool
	Column      ColumnDef
}

func (a AddColumn) alterActionSQL() string {
	s := "ADD COLUMN "
	if a.IfNotExists {
		s += "IF NOT EXISTS "
	}
	return s + a.Column.SQL()
}

type AddTableConstraint struct{ Constraint TableConstraint }

func (a AddTableConstraint) alterActionSQL() string { return "ADD " + a.Constraint.SQL() }

type DropColumn struct {
	IfExists bool
	Name     Ident
	Cascade  bool
}

func (d DropColumn) alterActionSQL() string {
	s := "DROP COLUMN "
	if d.IfExists {
		s += "IF EXISTS "
	}
	s += d.Name.SQL()
	if d.Cascade {
		s += " CASCADE"
	}
	return s
}

type AlterColumnOp interface{ alterColumnOpSQL() string }

type SetNotNull struct{}

func (SetNotNull) alterColumnOpSQL() string { return "SET NOT NULL" }

type DropNotNull struct{}

func (DropNotNull) alterColumnOpSQL() string { return "DROP NOT NULL" }

type SetColumnDefault struct{ Expr Expression }

func (s SetColumnDefault) alterColumnOpSQL() string { return "SET DEFAULT " + s.Expr.SQL() }

type DropColumnDefault struct{}

func (DropColumnDefault) alterColumnOpSQL() string { return "DROP DEFAULT" }

type SetDataType struct{ Type DataType }

func (s SetDataType) alterColumnOpSQL() string { return "SET DATA TYPE " + s.Type.SQL() }

type AlterColumn struct {
	Name Ident
	Op   AlterColumnOp
}

func (a AlterColumn) alterActionSQL() string {
	return "ALTER COLUMN " + a.Name.SQL() + " " + a.Op.alterColumnOpSQL()
}

type RenameTable struct{ NewName ObjectName }

func (r RenameTable) alterActionSQL() string { return "RENAME TO " + r.NewName.SQL() }

type RenameColumn struct {
	OldName Ident
	NewName Ident
}

func (r RenameColumn) alterActionSQL() string {
	return "RENAME COLUMN " + r.OldName.SQL() + " TO " + r.NewName.SQL()
}

type DropConstraint struct {
	IfExists bool
	Name     string
	Cascade  bool
}

func (d DropConstraint) alterActionSQL() string {
	s := "DROP CONSTRAINT "
	if d.IfExists {
		s += "IF EXISTS "
	}
	s += d.Name
	if d.Cascade {
		s += " CASCADE"
	}
	return s
}

type ValidateConstraint struct{ Name string }

func (v ValidateConstraint) alterActionSQL() string { return "VALIDATE CONSTRAINT " + v.Name }

type ReplicaIdentity struct{ Value string } // DEFAULT | FULL | NOTHING | USING INDEX name

func (r ReplicaIdentity) alterActionSQL() string { return "REPLICA IDENTITY " + r.Value }

type SetSchema struct{ Name Ident }

func (s SetSchema) alterActionSQL() string { return "SET SCHEMA " + s.Name.SQL() }

type OwnerTo struct{ Name Ident }

func (o OwnerTo) alterActionSQL() string { return "OWNER TO " + o.Name.SQL() }

// AlterTableStatement is `ALTER TABLE [IF EXISTS] name action [, action...]`.
type AlterTableStatement struct {
	IfExists bool
	Name     ObjectName
	Actions  []AlterTableAction
	OnCluster string
}

func (AlterTableStatement) statementNode() {}
func (a AlterTableStatement) SQL() string {
	var b strings.Builder
	b.WriteString("ALTER TABLE ")
	if a.IfExists {
		b.WriteString("IF EXISTS ")
	}
	b.WriteString(a.Name.SQL())
	actions := make([]string, len(a.Actions))
	for i, act := range a.Actions {
		actions[i] = act.alterActionSQL()
	}
	b.WriteString(" " + strings.Join(actions, ", "))
	if a.OnCluster != "" {
		b.WriteString(" ON CLUSTER " + a.OnCluster)
	}
	return b.String()
}

// CreateIndexStatement is `CREATE [UNIQUE] INDEX [CONCURRENTLY] [IF NOT
// EXISTS] name ON table (cols) [WHERE predicate]`.
type CreateIndexStatement struct {
	Unique       bool
	Concurrently bool
	IfNotExists  bool
	Name         Ident
	Table        ObjectName
	Using        string
	Columns      []Expression
	Predicate    Expression
}

func (CreateIndexStatement) statementNode() {}
func (c CreateIndexStatement) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if c.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if c.Concurrently {
		b.WriteString("CONCURRENTLY ")
	}
	if c.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	if c.Name.Value != "" {
		b.WriteString(c.Name.SQL() + " ")
	}
	fmt.Fprintf(&b, "ON %s ", c.Table.SQL())
	if c.Using != "" {
		fmt.Fprintf(&b, "USING %s ", c.Using)
	}
	fmt.Fprintf(&b, "(%s)", joinExprs(c.Columns, ", "))
	if c.Predicate != nil {
		b.WriteString(" WHERE " + c.Predicate.SQL())
	}
	return b.String()
}

// CreateViewStatement is `CREATE [OR REPLACE] [MATERIALIZED] VIEW name
// [(cols)] AS query`.
type CreateViewStatement struct {
	OrReplace    bool
	Materialized bool
	Name         ObjectName
	Columns      []Ident
	Query        *Query
}

func (CreateViewStatement) statementNode() {}
func (c CreateViewStatement) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if c.OrReplace {
		b.WriteString("OR REPLACE ")
	}
	if c.Materialized {
		b.WriteString("MATERIALIZED ")
	}
	b.WriteString("VIEW " + c.Name.SQL())
	if len(c.Columns) > 0 {
		b.WriteString(" (" + identListSQL(c.Columns) + ")")
	}
	b.WriteString(" AS " + c.Query.SQL())
	return b.String()
}

// CreateSchemaStatement is `CREATE SCHEMA [IF NOT EXISTS] name`.
type CreateSchemaStatement struct {
	IfNotExists bool
	Name        ObjectName
}

func (CreateSchemaStatement) statementNode() {}
func (c CreateSchemaStatement) SQL() string {
	s := "CREATE SCHEMA "
	if c.IfNotExists {
		s += "IF NOT EXISTS "
	}
	return s + c.Name.SQL()
}

// CreateRoleStatement / CreateDatabaseStatement share this simple shape.
type CreateRoleStatement struct {
	IfNotExists bool
	Name        Ident
}

func (CreateRoleStatement) statementNode() {}
func (c CreateRoleStatement) SQL() string {
	s := "CREATE ROLE "
	if c.IfNotExists {
		s += "IF NOT EXISTS "
	}
	return s + c.Name.SQL()
}

type CreateDatabaseStatement struct {
	IfNotExists bool
	Name        Ident
}

func (CreateDatabaseStatement) statementNode() {}
func (c CreateDatabaseStatement) SQL() string {
	s := "CREATE DATABASE "
	if c.IfNotExists {
		s += "IF NOT EXISTS "
	}
	return s + c.Name.SQL()
}

// CreateSequenceStatement is `CREATE SEQUENCE [IF NOT EXISTS] name`.
type CreateSequenceStatement struct {
	IfNotExists bool
	Name        ObjectName
	MinValue    Expression
	MaxValue    Expression
}

func (CreateSequenceStatement) statementNode() {}
func (c CreateSequenceStatement) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE SEQUENCE ")
	if c.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(c.Name.SQL())
	if c.MinValue != nil {
		b.WriteString(" MINVALUE " + c.MinValue.SQL())
	}
	if c.MaxValue != nil {
		b.WriteString(" MAXVALUE " + c.MaxValue.SQL())
	}
	return b.String()
}

// CreateTypeStatement is `CREATE TYPE name AS ...` (kept as raw
// definition text since type bodies vary widely by dialect).
type CreateTypeStatement struct {
	Name       ObjectName
	Definition string
}

func (CreateTypeStatement) statementNode() {}
func (c CreateTypeStatement) SQL() string {
	return "CREATE TYPE " + c.Name.SQL() + " AS " + c.Definition
}

// FunctionParam is one parameter of a CREATE FUNCTION/PROCEDURE.
type FunctionParam struct {
	Name Ident
	Type DataType
}

func (p FunctionParam) SQL() string { return p.Name.SQL() + " " + p.Type.SQL() }

// CreateFunctionStatement is `CREATE [OR REPLACE] FUNCTION name(params)
// RETURNS type [LANGUAGE lang] AS $$ body $$`.
type CreateFunctionStatement struct {
	OrReplace bool
	Name      ObjectName
	Params    []FunctionParam
	Returns   DataType
	Language  string
	Body      string
}

func (CreateFunctionStatement) statementNode() {}
func (c CreateFunctionStatement) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if c.OrReplace {
		b.WriteString("OR REPLACE ")
	}
	b.WriteString("FUNCTION " + c.Name.SQL() + "(")
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.SQL()
	}
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(")")
	if c.Returns != nil {
		b.WriteString(" RETURNS " + c.Returns.SQL())
	}
	if c.Language != "" {
		b.WriteString(" LANGUAGE " + c.Language)
	}
	if c.Body != "" {
		fmt.Fprintf(&b, " AS $$%s$$", c.Body)
	}
	return b.String()
}

// CreateTriggerStatement is `CREATE TRIGGER name {BEFORE|AFTER} event ON
// table FOR EACH ROW EXECUTE FUNCTION fn()`.
type CreateTriggerStatement struct {
	Name      Ident
	Timing    string // BEFORE, AFTER, INSTEAD OF
	Events    []string
	Table     ObjectName
	ForEachRow bool
	Execute   ObjectName
}

func (CreateTriggerStatement) statementNode() {}
func (c CreateTriggerStatement) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TRIGGER %s %s %s ON %s", c.Name.SQL(), c.Timing, strings.Join(c.Events, " OR "), c.Table.SQL())
	if c.ForEachRow {
		b.WriteString(" FOR EACH ROW")
	}
	if len(c.Execute) > 0 {
		b.WriteString(" EXECUTE FUNCTION " + c.Execute.SQL() + "()")
	}
	return b.String()
}

// CreatePolicyStatement is `CREATE POLICY name ON table [FOR cmd] [TO
// role] [USING (expr)] [WITH CHECK (expr)]`.
type CreatePolicyStatement struct {
	Name    Ident
	Table   ObjectName
	For     string
	To      []Ident
	Using   Expression
	Check   Expression
}

func (CreatePolicyStatement) statementNode() {}
func (c CreatePolicyStatement) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE POLICY %s ON %s", c.Name.SQL(), c.Table.SQL())
	if c.For != "" {
		b.WriteString(" FOR " + c.For)
	}
	if len(c.To) > 0 {
		b.WriteString(" TO " + identListSQL(c.To))
	}
	if c.Using != nil {
		b.WriteString(" USING (" + c.Using.SQL() + ")")
	}
	if c.Check != nil {
		b.WriteString(" WITH CHECK (" + c.Check.SQL() + ")")
	}
	return b.String()
}

// DropStatement is the generic `DROP kind [IF EXISTS] names
// [CASCADE|RESTRICT]` form covering TABLE/VIEW/INDEX/SCHEMA/SEQUENCE/
// TYPE/ROLE and similar object kinds.
type DropStatement struct {
	ObjectKind string // TABLE, VIEW, INDEX, SCHEMA, SEQUENCE, TYPE, ROLE, ...
	IfExists   bool
	Names      []ObjectName
	Cascade    bool
	Restrict   bool
}

func (DropStatement) statementNode() {}
func (d DropStatement) SQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DROP %s ", d.ObjectKind)
	if d.IfExists {
		b.WriteString("IF EXISTS ")
	}
	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		names[i] = n.SQL()
	}
	b.WriteString(strings.Join(names, ", "))
	if d.Cascade {
		b.WriteString(" CASCADE")
	}
	if d.Restrict {
		b.WriteString(" RESTRICT")
	}
	return b.String()
}

// DropFunctionStatement separates function drops because they take a
// name plus an optional argument-type list rather than a bare
// ObjectName list.
type DropFunctionStatement struct {
	IfExists bool
	Names    []ObjectName
	Cascade  bool
}

func (DropFunctionStatement) statementNode() {}
func (d DropFunctionStatement) SQL() string {
	var b strings.Builder
	b.WriteString("DROP FUNCTION ")
	if d.IfExists {
		b.WriteString("IF EXISTS ")
	}
	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		names[i] = n.SQL()
	}
	b.WriteString(strings.Join(names, ", "))
	if d.Cascade {
		b.WriteString(" CASCADE")
	}
	return b.String()
}

// TruncateStatement is `TRUNCATE [TABLE] name [, name ...] [CASCADE|RESTRICT]`.
type TruncateStatement struct {
	Tables   []ObjectName
	Cascade  bool
	Restrict bool
}

func (TruncateStatement) statementNode() {}
func (t TruncateStatement) SQL() string {
	names := make([]string, len(t.Tables))
	for i, n := range t.Tables {
		names[i] = n.SQL()
	}
	s := "TRUNCATE TABLE " + strings.Join(names, ", ")
	if t.Cascade {
		s += " CASCADE"
	}
	if t.Restrict {
		s += " RESTRICT"
	}
	return s
}
