// Package visitor implements the generic double-dispatch traversal over
// pkg/ast nodes: a pre-hook fires on entry to a node, its children are
// walked in declaration order, then a post-hook fires on exit.
package visitor

import "github.com/caravan-sql/sqlfront/pkg/ast"

// ControlFlow is returned by every visit hook. Break short-circuits the
// remainder of the walk; Continue lets it proceed.
type ControlFlow int

const (
	Continue ControlFlow = iota
	Break
)

// Visitor is implemented by callers that want to observe a walk. Each
// node category gets its own pre/post pair so a caller can react to,
// say, every Expression without caring about Statement shape.
type Visitor interface {
	PreVisitStatement(ast.Statement) ControlFlow
	PostVisitStatement(ast.Statement) ControlFlow

	PreVisitQuery(*ast.Query) ControlFlow
	PostVisitQuery(*ast.Query) ControlFlow

	PreVisitTableFactor(ast.TableFactor) ControlFlow
	PostVisitTableFactor(ast.TableFactor) ControlFlow

	PreVisitRelation(ast.ObjectName) ControlFlow
	PostVisitRelation(ast.ObjectName) ControlFlow

	PreVisitExpression(ast.Expression) ControlFlow
	PostVisitExpression(ast.Expression) ControlFlow
}

// BaseVisitor supplies no-op hooks so callers embed it and override only
// what they need.
type BaseVisitor struct{}

func (BaseVisitor) PreVisitStatement(ast.Statement) ControlFlow    { return Continue }
func (BaseVisitor) PostVisitStatement(ast.Statement) ControlFlow   { return Continue }
func (BaseVisitor) PreVisitQuery(*ast.Query) ControlFlow           { return Continue }
func (BaseVisitor) PostVisitQuery(*ast.Query) ControlFlow          { return Continue }
func (BaseVisitor) PreVisitTableFactor(ast.TableFactor) ControlFlow  { return Continue }
func (BaseVisitor) PostVisitTableFactor(ast.TableFactor) ControlFlow { return Continue }
func (BaseVisitor) PreVisitRelation(ast.ObjectName) ControlFlow    { return Continue }
func (BaseVisitor) PostVisitRelation(ast.ObjectName) ControlFlow   { return Continue }
func (BaseVisitor) PreVisitExpression(ast.Expression) ControlFlow  { return Continue }
func (BaseVisitor) PostVisitExpression(ast.Expression) ControlFlow { return Continue }

// Walk traverses stmt: pre(parent) -> children in declared order -> post(parent).
func Walk(v Visitor, stmt ast.Statement) ControlFlow {
	if stmt == nil {
		return Continue
	}
	if v.PreVisitStatement(stmt) == Break {
		return Break
	}
	if walkStatementChildren(v, stmt) == Break {
		return Break
	}
	return v.PostVisitStatement(stmt)
}

func walkStatementChildren(v Visitor, stmt ast.Statement) ControlFlow {
	switch s := stmt.(type) {
	case ast.SelectStatement:
		return walkQuery(v, s.Query)
	case ast.InsertStatement:
		if q, ok := s.Source.(ast.InsertQuery); ok {
			return walkQuery(v, q.Query)
		}
		return Continue
	case ast.UpdateStatement:
		if walkTableWithJoins(v, s.Table) == Break {
			return Break
		}
		for _, a := range s.Set {
			if walkExpr(v, a.Value) == Break {
				return Break
			}
		}
		if s.Selection != nil {
			return walkExpr(v, s.Selection)
		}
		return Continue
	case ast.DeleteStatement:
		for _, f := range s.From {
			if walkTableWithJoins(v, f) == Break {
				return Break
			}
		}
		if s.Selection != nil {
			return walkExpr(v, s.Selection)
		}
		return Continue
	case ast.ExplainStatement:
		return Walk(v, s.Statement)
	case ast.IfStatement:
		for _, br := range s.Branches {
			if walkExpr(v, br.Condition) == Break {
				return Break
			}
			for _, inner := range br.Body {
				if Walk(v, inner) == Break {
					return Break
				}
			}
		}
		for _, inner := range s.Else {
			if Walk(v, inner) == Break {
				return Break
			}
		}
		return Continue
	case ast.WhileStatement:
		if walkExpr(v, s.Condition) == Break {
			return Break
		}
		for _, inner := range s.Body {
			if Walk(v, inner) == Break {
				return Break
			}
		}
		return Continue
	default:
		return Continue
	}
}

func walkQuery(v Visitor, q *ast.Query) ControlFlow {
	if q == nil {
		return Continue
	}
	if v.PreVisitQuery(q) == Break {
		return Break
	}
	if sel, ok := q.Body.(ast.Select); ok {
		if walkSelect(v, sel) == Break {
			return Break
		}
	}
	for _, o := range q.OrderBy {
		if walkExpr(v, o.Expr) == Break {
			return Break
		}
	}
	return v.PostVisitQuery(q)
}

func walkSelect(v Visitor, s ast.Select) ControlFlow {
	for _, p := range s.Projection {
		if walkExpr(v, p) == Break {
			return Break
		}
	}
	for _, f := range s.From {
		if walkTableWithJoins(v, f) == Break {
			return Break
		}
	}
	if s.Selection != nil {
		if walkExpr(v, s.Selection) == Break {
			return Break
		}
	}
	for _, g := range s.GroupBy {
		if walkExpr(v, g) == Break {
			return Break
		}
	}
	if s.Having != nil {
		if walkExpr(v, s.Having) == Break {
			return Break
		}
	}
	return Continue
}

func walkTableWithJoins(v Visitor, t ast.TableWithJoins) ControlFlow {
	if walkTableFactor(v, t.Relation) == Break {
		return Break
	}
	for _, j := range t.Joins {
		if walkTableFactor(v, j.Relation) == Break {
			return Break
		}
		if on, ok := j.Constraint.(ast.OnConstraint); ok {
			if walkExpr(v, on.Expr) == Break {
				return Break
			}
		}
	}
	return Continue
}

func walkTableFactor(v Visitor, t ast.TableFactor) ControlFlow {
	if t == nil {
		return Continue
	}
	if v.PreVisitTableFactor(t) == Break {
		return Break
	}
	switch rel := t.(type) {
	case ast.TableRelation:
		if walkRelation(v, rel.Name) == Break {
			return Break
		}
	case ast.DerivedTable:
		if walkQuery(v, rel.Query) == Break {
			return Break
		}
	case ast.NestedJoinRelation:
		if walkTableWithJoins(v, rel.TableWithJoins) == Break {
			return Break
		}
	}
	return v.PostVisitTableFactor(t)
}

func walkRelation(v Visitor, name ast.ObjectName) ControlFlow {
	if v.PreVisitRelation(name) == Break {
		return Break
	}
	return v.PostVisitRelation(name)
}

func walkExpr(v Visitor, e ast.Expression) ControlFlow {
	if e == nil {
		return Continue
	}
	if v.PreVisitExpression(e) == Break {
		return Break
	}
	switch expr := e.(type) {
	case ast.BinaryOp:
		if walkExpr(v, expr.Left) == Break {
			return Break
		}
		if walkExpr(v, expr.Right) == Break {
			return Break
		}
	case ast.UnaryOp:
		if walkExpr(v, expr.Expr) == Break {
			return Break
		}
	case ast.Nested:
		if walkExpr(v, expr.Expr) == Break {
			return Break
		}
	case ast.Between:
		for _, sub := range []ast.Expression{expr.Expr, expr.Low, expr.High} {
			if walkExpr(v, sub) == Break {
				return Break
			}
		}
	case ast.Function:
		for _, a := range expr.Args {
			if a.Expr != nil {
				if walkExpr(v, a.Expr) == Break {
					return Break
				}
			}
		}
	case ast.Case:
		if expr.Operand != nil {
			if walkExpr(v, expr.Operand) == Break {
				return Break
			}
		}
		for _, w := range expr.Whens {
			if walkExpr(v, w.Condition) == Break {
				return Break
			}
			if walkExpr(v, w.Result) == Break {
				return Break
			}
		}
		if expr.Else != nil {
			if walkExpr(v, expr.Else) == Break {
				return Break
			}
		}
	case ast.Subquery:
		if walkQuery(v, expr.Query) == Break {
			return Break
		}
	}
	return v.PostVisitExpression(e)
}
