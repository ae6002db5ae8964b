package parser

import (
	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

func (p *Parser) parseCreateStatement() (ast.Statement, error) {
	p.advance() // CREATE

	orReplace := false
	if p.curIsKeyword(keyword.OR) {
		p.advance()
		if err := p.expectKeyword(keyword.REPLACE); err != nil {
			return nil, err
		}
		orReplace = true
	}

	unique := false
	if p.eatKeyword(keyword.UNIQUE) {
		unique = true
	}

	materialized := false
	if p.eatKeyword(keyword.MATERIALIZED) {
		materialized = true
	}

	switch {
	case p.curIsKeyword(keyword.TABLE):
		return p.parseCreateTable(false)
	case p.curIsKeyword(keyword.EXTERNAL) && p.peekIsKeyword(keyword.TABLE):
		p.advance()
		return p.parseCreateTable(true)
	case p.curIsKeyword(keyword.INDEX):
		return p.parseCreateIndex(unique)
	case p.curIsKeyword(keyword.VIEW):
		return p.parseCreateView(orReplace, materialized)
	case p.curIsKeyword(keyword.SCHEMA):
		return p.parseCreateSchema()
	case p.curIsKeyword(keyword.ROLE):
		return p.parseCreateRole()
	case p.curIsKeyword(keyword.DATABASE):
		return p.parseCreateDatabase()
	case p.curIsKeyword(keyword.SEQUENCE):
		return p.parseCreateSequence()
	case p.curIsKeyword(keyword.TYPE):
		return p.parseCreateType()
	case p.curIsKeyword(keyword.FUNCTION):
		return p.parseCreateFunction(orReplace)
	case p.curIsKeyword(keyword.TRIGGER):
		return p.parseCreateTrigger()
	case p.curIsKeyword(keyword.POLICY):
		return p.parseCreatePolicy()
	}
	return nil, errExpected("TABLE, VIEW, INDEX or other creatable object", tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) parseCreateTable(external bool) (ast.Statement, error) {
	p.advance() // TABLE
	c := ast.CreateTableStatement{External: external}
	if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		c.IfNotExists = true
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Name = name

	if p.eatKeyword(keyword.LIKE) {
		like, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		c.Like = like
		return c, nil
	}
	if p.eatKeyword(keyword.CLONE) {
		clone, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		c.CloneOf = clone
		return c, nil
	}

	if p.eatPunct(lexer.PLParen) {
		for {
			if p.curIsKeyword(keyword.PRIMARY) || p.curIsKeyword(keyword.UNIQUE) ||
				p.curIsKeyword(keyword.CHECK) || p.curIsKeyword(keyword.FOREIGN) ||
				p.curIsKeyword(keyword.CONSTRAINT) {
				tc, err := p.parseTableConstraint()
				if err != nil {
					return nil, err
				}
				c.Constraints = append(c.Constraints, tc)
			} else {
				col, err := p.parseColumnDef()
				if err != nil {
					return nil, err
				}
				c.Columns = append(c.Columns, col)
			}
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}

	if p.curIsKeyword(keyword.ON) && p.peekIsKeyword(keyword.CLUSTER) {
		p.advance()
		p.advance()
		cluster, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.OnCluster = cluster.Value
	}

	if p.eatKeyword(keyword.PARTITION) {
		if err := p.expectKeyword(keyword.BY); err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			c.PartitionBy = append(c.PartitionBy, e)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}

	if p.curIsKeyword(keyword.STORED) && p.peekIsKeyword(keyword.AS) {
		p.advance()
		p.advance()
		fmtIdent, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.FileFormat = fmtIdent.Value
	}

	if p.eatKeyword(keyword.LOCATION) {
		loc := p.cur()
		if loc.Kind != lexer.KindString {
			return nil, errExpected("string literal", tokenDescription(loc), loc.Loc)
		}
		p.advance()
		c.Location = loc.String
	}

	if p.eatKeyword(keyword.AS) {
		if p.curIsKeyword(keyword.TABLE) {
			p.advance()
			asTable, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			c.AsTable = asTable
		} else {
			q, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			c.AsQuery = q
		}
	}

	return c, nil
}

func (p *Parser) parseColumnDef() (ast.ColumnDef, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	col := ast.ColumnDef{Name: name, Type: typ}
	for {
		cc, ok, err := p.tryParseColumnConstraint()
		if err != nil {
			return ast.ColumnDef{}, err
		}
		if !ok {
			break
		}
		col.Constraints = append(col.Constraints, cc)
	}
	return col, nil
}

func (p *Parser) tryParseColumnConstraint() (ast.ColumnConstraint, bool, error) {
	name := ""
	if p.eatKeyword(keyword.CONSTRAINT) {
		id, err := p.parseIdent()
		if err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		name = id.Value
	}
	cc := ast.ColumnConstraint{Name: name}
	switch {
	case p.curIsKeyword(keyword.NOT) && p.peekIsKeyword(keyword.NULL):
		p.advance()
		p.advance()
		cc.NotNull = true
	case p.eatKeyword(keyword.NULL):
		cc.Null = true
	case p.eatKeyword(keyword.DEFAULT):
		e, err := p.parseExpr(bpOr)
		if err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		cc.Default = e
	case p.curIsKeyword(keyword.PRIMARY) && p.peekIsKeyword(keyword.KEY):
		p.advance()
		p.advance()
		cc.PrimaryKey = true
	case p.eatKeyword(keyword.UNIQUE):
		cc.Unique = true
	case p.eatKeyword(keyword.CHECK):
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		cc.Check = e
	case p.eatKeyword(keyword.REFERENCES):
		ref, err := p.parseForeignKeyRef()
		if err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		cc.References = &ref
	case p.eatKeyword(keyword.COLLATE):
		n, err := p.parseObjectName()
		if err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		cc.Collate = n
	case p.eatKeyword(keyword.INVISIBLE):
		cc.Invisible = true
	case p.eatKeyword(keyword.COMMENT):
		s := p.cur()
		if s.Kind != lexer.KindString {
			return ast.ColumnConstraint{}, false, errExpected("string literal", tokenDescription(s), s.Loc)
		}
		p.advance()
		cc.Comment = s.String
	case p.curIsKeyword(keyword.GENERATED):
		g, err := p.parseGeneratedAs()
		if err != nil {
			return ast.ColumnConstraint{}, false, err
		}
		cc.Generated = &g
	default:
		return ast.ColumnConstraint{}, false, nil
	}
	return cc, true, nil
}

func (p *Parser) parseGeneratedAs() (ast.GeneratedAs, error) {
	p.advance() // GENERATED
	if err := p.expectKeyword(keyword.ALWAYS); err != nil {
		return ast.GeneratedAs{}, err
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return ast.GeneratedAs{}, err
	}
	if p.eatKeyword(keyword.IDENTITY) {
		return ast.GeneratedAs{Identity: true}, nil
	}
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return ast.GeneratedAs{}, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return ast.GeneratedAs{}, err
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return ast.GeneratedAs{}, err
	}
	g := ast.GeneratedAs{Expr: e}
	if p.eatKeyword(keyword.STORED) {
		g.Stored = true
	} else {
		p.eatKeyword(keyword.VIRTUAL)
	}
	return g, nil
}

func (p *Parser) parseForeignKeyRef() (ast.ForeignKeyRef, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return ast.ForeignKeyRef{}, err
	}
	ref := ast.ForeignKeyRef{Name: name}
	if p.eatPunct(lexer.PLParen) {
		for {
			c, err := p.parseIdent()
			if err != nil {
				return ast.ForeignKeyRef{}, err
			}
			ref.Columns = append(ref.Columns, c)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return ast.ForeignKeyRef{}, err
		}
	}
	for p.curIsKeyword(keyword.ON) {
		p.advance()
		isDelete := false
		switch {
		case p.eatKeyword(keyword.DELETE):
			isDelete = true
		case p.eatKeyword(keyword.UPDATE):
		default:
			return ast.ForeignKeyRef{}, errExpected("DELETE or UPDATE", tokenDescription(p.cur()), p.cur().Loc)
		}
		action, err := p.parseReferentialAction()
		if err != nil {
			return ast.ForeignKeyRef{}, err
		}
		if isDelete {
			ref.OnDelete = action
		} else {
			ref.OnUpdate = action
		}
	}
	return ref, nil
}

// parseReferentialAction consumes the action text following ON
// DELETE/UPDATE: CASCADE, RESTRICT, NO ACTION, SET NULL or SET DEFAULT.
func (p *Parser) parseReferentialAction() (string, error) {
	switch {
	case p.eatKeyword(keyword.CASCADE):
		return "CASCADE", nil
	case p.eatKeyword(keyword.RESTRICT):
		return "RESTRICT", nil
	case p.curIsKeyword(keyword.NO):
		p.advance()
		if err := p.expectKeyword(keyword.ACTION); err != nil {
			return "", err
		}
		return "NO ACTION", nil
	case p.curIsKeyword(keyword.SET):
		p.advance()
		switch {
		case p.eatKeyword(keyword.NULL):
			return "SET NULL", nil
		case p.eatKeyword(keyword.DEFAULT):
			return "SET DEFAULT", nil
		}
		return "", errExpected("NULL or DEFAULT", tokenDescription(p.cur()), p.cur().Loc)
	}
	return "", errExpected("CASCADE, RESTRICT, NO ACTION, SET NULL or SET DEFAULT", tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) parseTableConstraint() (ast.TableConstraint, error) {
	name := ""
	if p.eatKeyword(keyword.CONSTRAINT) {
		id, err := p.parseIdent()
		if err != nil {
			return ast.TableConstraint{}, err
		}
		name = id.Value
	}
	tc := ast.TableConstraint{Name: name}
	switch {
	case p.curIsKeyword(keyword.PRIMARY):
		p.advance()
		if err := p.expectKeyword(keyword.KEY); err != nil {
			return ast.TableConstraint{}, err
		}
		cols, err := p.parseParenIdentList()
		if err != nil {
			return ast.TableConstraint{}, err
		}
		tc.PrimaryKey = cols
	case p.eatKeyword(keyword.UNIQUE):
		cols, err := p.parseParenIdentList()
		if err != nil {
			return ast.TableConstraint{}, err
		}
		tc.Unique = cols
	case p.eatKeyword(keyword.CHECK):
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return ast.TableConstraint{}, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return ast.TableConstraint{}, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return ast.TableConstraint{}, err
		}
		tc.Check = e
	case p.eatKeyword(keyword.FOREIGN):
		if err := p.expectKeyword(keyword.KEY); err != nil {
			return ast.TableConstraint{}, err
		}
		cols, err := p.parseParenIdentList()
		if err != nil {
			return ast.TableConstraint{}, err
		}
		if err := p.expectKeyword(keyword.REFERENCES); err != nil {
			return ast.TableConstraint{}, err
		}
		ref, err := p.parseForeignKeyRef()
		if err != nil {
			return ast.TableConstraint{}, err
		}
		tc.ForeignKey = &ast.TableForeignKey{Columns: cols, References: ref}
	default:
		return ast.TableConstraint{}, errExpected("PRIMARY KEY, UNIQUE, CHECK or FOREIGN KEY", tokenDescription(p.cur()), p.cur().Loc)
	}
	return tc, nil
}

func (p *Parser) parseParenIdentList() ([]ast.Ident, error) {
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	var cols []ast.Ident
	for {
		c, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return cols, nil
}

func (p *Parser) parseAlterTableStatement() (ast.Statement, error) {
	p.advance() // ALTER
	if err := p.expectKeyword(keyword.TABLE); err != nil {
		return nil, err
	}
	a := ast.AlterTableStatement{}
	if p.eatKeyword(keyword.IF) {
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		a.IfExists = true
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	a.Name = name
	for {
		action, err := p.parseAlterTableAction()
		if err != nil {
			return nil, err
		}
		a.Actions = append(a.Actions, action)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return a, nil
}

func (p *Parser) parseAlterTableAction() (ast.AlterTableAction, error) {
	switch {
	case p.eatKeyword(keyword.ADD):
		if p.curIsKeyword(keyword.COLUMN) || p.isPlainWord() {
			p.eatKeyword(keyword.COLUMN)
			ifNotExists := false
			if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
				p.advance()
				p.advance()
				if err := p.expectKeyword(keyword.EXISTS); err != nil {
					return nil, err
				}
				ifNotExists = true
			}
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			return ast.AddColumn{IfNotExists: ifNotExists, Column: col}, nil
		}
		tc, err := p.parseTableConstraint()
		if err != nil {
			return nil, err
		}
		return ast.AddTableConstraint{Constraint: tc}, nil
	case p.eatKeyword(keyword.DROP):
		switch {
		case p.eatKeyword(keyword.COLUMN):
			ifExists := false
			if p.eatKeyword(keyword.IF) {
				if err := p.expectKeyword(keyword.EXISTS); err != nil {
					return nil, err
				}
				ifExists = true
			}
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			cascade := p.eatKeyword(keyword.CASCADE)
			return ast.DropColumn{IfExists: ifExists, Name: name, Cascade: cascade}, nil
		case p.eatKeyword(keyword.CONSTRAINT):
			ifExists := false
			if p.eatKeyword(keyword.IF) {
				if err := p.expectKeyword(keyword.EXISTS); err != nil {
					return nil, err
				}
				ifExists = true
			}
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			cascade := p.eatKeyword(keyword.CASCADE)
			return ast.DropConstraint{IfExists: ifExists, Name: name.Value, Cascade: cascade}, nil
		}
		return nil, errExpected("COLUMN or CONSTRAINT", tokenDescription(p.cur()), p.cur().Loc)
	case p.eatKeyword(keyword.ALTER):
		p.eatKeyword(keyword.COLUMN)
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		op, err := p.parseAlterColumnOp()
		if err != nil {
			return nil, err
		}
		return ast.AlterColumn{Name: name, Op: op}, nil
	case p.curIsKeyword(keyword.RENAME):
		p.advance()
		if p.eatKeyword(keyword.TO) {
			n, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			return ast.RenameTable{NewName: n}, nil
		}
		p.eatKeyword(keyword.COLUMN)
		old, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(keyword.TO); err != nil {
			return nil, err
		}
		newName, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.RenameColumn{OldName: old, NewName: newName}, nil
	case p.curIsKeyword(keyword.VALIDATE):
		p.advance()
		if err := p.expectKeyword(keyword.CONSTRAINT); err != nil {
			return nil, err
		}
		n, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.ValidateConstraint{Name: n.Value}, nil
	case p.curIsKeyword(keyword.REPLICA):
		p.advance()
		if err := p.expectKeyword(keyword.IDENTITY); err != nil {
			return nil, err
		}
		val, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.ReplicaIdentity{Value: val.Value}, nil
	case p.curIsKeyword(keyword.SET):
		p.advance()
		if err := p.expectKeyword(keyword.SCHEMA); err != nil {
			return nil, err
		}
		n, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.SetSchema{Name: n}, nil
	case p.curIsKeyword(keyword.OWNER):
		p.advance()
		if err := p.expectKeyword(keyword.TO); err != nil {
			return nil, err
		}
		n, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return ast.OwnerTo{Name: n}, nil
	}
	return nil, errExpected("ADD, DROP, ALTER, RENAME or other alter action", tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) parseAlterColumnOp() (ast.AlterColumnOp, error) {
	switch {
	case p.curIsKeyword(keyword.SET) && p.peekIsKeyword(keyword.NOT):
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.NULL); err != nil {
			return nil, err
		}
		return ast.SetNotNull{}, nil
	case p.curIsKeyword(keyword.DROP) && p.peekIsKeyword(keyword.NOT):
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.NULL); err != nil {
			return nil, err
		}
		return ast.DropNotNull{}, nil
	case p.curIsKeyword(keyword.SET) && p.peekIsKeyword(keyword.DEFAULT):
		p.advance()
		p.advance()
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		return ast.SetColumnDefault{Expr: e}, nil
	case p.curIsKeyword(keyword.DROP) && p.peekIsKeyword(keyword.DEFAULT):
		p.advance()
		p.advance()
		return ast.DropColumnDefault{}, nil
	case p.curIsKeyword(keyword.SET) && p.peekIsKeyword(keyword.DATA):
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.TYPE); err != nil {
			return nil, err
		}
		t, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		return ast.SetDataType{Type: t}, nil
	case p.eatKeyword(keyword.TYPE):
		t, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		return ast.SetDataType{Type: t}, nil
	}
	return nil, errExpected("SET/DROP NOT NULL, SET/DROP DEFAULT or SET DATA TYPE", tokenDescription(p.cur()), p.cur().Loc)
}

func (p *Parser) parseCreateIndex(unique bool) (ast.Statement, error) {
	p.advance() // INDEX
	c := ast.CreateIndexStatement{Unique: unique}
	if p.eatKeyword(keyword.CONCURRENTLY) {
		c.Concurrently = true
	}
	if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		c.IfNotExists = true
	}
	if !p.curIsKeyword(keyword.ON) {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.Name = name
	}
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Table = table
	if p.eatKeyword(keyword.USING) {
		using, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.Using = using.Value
	}
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	for {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		c.Columns = append(c.Columns, e)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.WHERE) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		c.Predicate = e
	}
	return c, nil
}

func (p *Parser) parseCreateView(orReplace, materialized bool) (ast.Statement, error) {
	p.advance() // VIEW
	c := ast.CreateViewStatement{OrReplace: orReplace, Materialized: materialized}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Name = name
	if p.eatPunct(lexer.PLParen) {
		cols, err := p.parseIdentListUntilRParen()
		if err != nil {
			return nil, err
		}
		c.Columns = cols
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return nil, err
	}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	c.Query = q
	return c, nil
}

func (p *Parser) parseIdentListUntilRParen() ([]ast.Ident, error) {
	var cols []ast.Ident
	for {
		c, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return cols, nil
}

func (p *Parser) parseCreateSchema() (ast.Statement, error) {
	p.advance()
	c := ast.CreateSchemaStatement{}
	if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		c.IfNotExists = true
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Name = name
	return c, nil
}

func (p *Parser) parseCreateRole() (ast.Statement, error) {
	p.advance()
	c := ast.CreateRoleStatement{}
	if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		c.IfNotExists = true
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c.Name = name
	return c, nil
}

func (p *Parser) parseCreateDatabase() (ast.Statement, error) {
	p.advance()
	c := ast.CreateDatabaseStatement{}
	if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		c.IfNotExists = true
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c.Name = name
	return c, nil
}

func (p *Parser) parseCreateSequence() (ast.Statement, error) {
	p.advance()
	c := ast.CreateSequenceStatement{}
	if p.curIsKeyword(keyword.IF) && p.peekIsKeyword(keyword.NOT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		c.IfNotExists = true
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Name = name
	for {
		switch {
		case p.eatKeyword(keyword.MINVALUE):
			e, err := p.parseExpr(bpUnary)
			if err != nil {
				return nil, err
			}
			c.MinValue = e
			continue
		case p.eatKeyword(keyword.MAXVALUE):
			e, err := p.parseExpr(bpUnary)
			if err != nil {
				return nil, err
			}
			c.MaxValue = e
			continue
		}
		break
	}
	return c, nil
}

func (p *Parser) parseCreateType() (ast.Statement, error) {
	p.advance()
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return nil, err
	}
	def := p.SkipToStatementEnd()
	return ast.CreateTypeStatement{Name: name, Definition: def}, nil
}

func (p *Parser) parseCreateFunction(orReplace bool) (ast.Statement, error) {
	p.advance()
	c := ast.CreateFunctionStatement{OrReplace: orReplace}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	if !p.curIsPunct(lexer.PRParen) {
		for {
			pname, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			ptype, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			c.Params = append(c.Params, ast.FunctionParam{Name: pname, Type: ptype})
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.RETURNS) {
		t, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		c.Returns = t
	}
	if p.eatKeyword(keyword.LANGUAGE) {
		lang, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.Language = lang.Value
	}
	if p.eatKeyword(keyword.AS) {
		t := p.cur()
		if t.Kind != lexer.KindString {
			return nil, errExpected("function body", tokenDescription(t), t.Loc)
		}
		p.advance()
		c.Body = t.String
	}
	return c, nil
}

func (p *Parser) parseCreateTrigger() (ast.Statement, error) {
	p.advance()
	c := ast.CreateTriggerStatement{}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c.Name = name
	switch {
	case p.eatKeyword(keyword.BEFORE):
		c.Timing = "BEFORE"
	case p.eatKeyword(keyword.AFTER):
		c.Timing = "AFTER"
	case p.curIsKeyword(keyword.INSTEAD):
		p.advance()
		if err := p.expectKeyword(keyword.OF); err != nil {
			return nil, err
		}
		c.Timing = "INSTEAD OF"
	}
	for {
		ev, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.Events = append(c.Events, ev.Value)
		if !p.eatKeyword(keyword.OR) {
			break
		}
	}
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Table = table
	if p.curIsKeyword(keyword.FOR) {
		p.advance()
		p.eatKeyword(keyword.EACH)
		if err := p.expectKeyword(keyword.ROW); err != nil {
			return nil, err
		}
		c.ForEachRow = true
	}
	if p.eatKeyword(keyword.EXECUTE) {
		if err := p.expectKeyword(keyword.FUNCTION); err != nil {
			return nil, err
		}
		fn, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		c.Execute = fn
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (p *Parser) parseCreatePolicy() (ast.Statement, error) {
	p.advance()
	c := ast.CreatePolicyStatement{}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Table = table
	if p.eatKeyword(keyword.FOR) {
		cmd, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		c.For = cmd.Value
	}
	if p.eatKeyword(keyword.TO) {
		for {
			r, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			c.To = append(c.To, r)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
	}
	if p.eatKeyword(keyword.USING) {
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		c.Using = e
	}
	if p.curIsKeyword(keyword.WITH) && p.peekIsKeyword(keyword.CHECK) {
		p.advance()
		p.advance()
		if err := p.expectPunct(lexer.PLParen); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		c.Check = e
	}
	return c, nil
}

func (p *Parser) parseDropStatement() (ast.Statement, error) {
	p.advance() // DROP
	kw, _ := p.curKeyword()
	var kind string
	switch kw {
	case keyword.TABLE:
		kind = "TABLE"
	case keyword.VIEW:
		kind = "VIEW"
	case keyword.INDEX:
		kind = "INDEX"
	case keyword.SCHEMA:
		kind = "SCHEMA"
	case keyword.SEQUENCE:
		kind = "SEQUENCE"
	case keyword.TYPE:
		kind = "TYPE"
	case keyword.ROLE:
		kind = "ROLE"
	case keyword.DATABASE:
		kind = "DATABASE"
	case keyword.TRIGGER:
		kind = "TRIGGER"
	case keyword.POLICY:
		kind = "POLICY"
	case keyword.FUNCTION:
		p.advance()
		return p.parseDropFunction()
	default:
		return nil, errExpected("TABLE, VIEW, INDEX or other dropable object kind", tokenDescription(p.cur()), p.cur().Loc)
	}
	p.advance()
	d := ast.DropStatement{ObjectKind: kind}
	if p.eatKeyword(keyword.IF) {
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		d.IfExists = true
	}
	for {
		n, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		d.Names = append(d.Names, n)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	switch {
	case p.eatKeyword(keyword.CASCADE):
		d.Cascade = true
	case p.eatKeyword(keyword.RESTRICT):
		d.Restrict = true
	}
	return d, nil
}

func (p *Parser) parseDropFunction() (ast.Statement, error) {
	d := ast.DropFunctionStatement{}
	if p.eatKeyword(keyword.IF) {
		if err := p.expectKeyword(keyword.EXISTS); err != nil {
			return nil, err
		}
		d.IfExists = true
	}
	for {
		n, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		d.Names = append(d.Names, n)
		if p.eatPunct(lexer.PLParen) {
			if !p.curIsPunct(lexer.PRParen) {
				for {
					if _, err := p.parseDataType(); err != nil {
						return nil, err
					}
					if !p.eatPunct(lexer.PComma) {
						break
					}
				}
			}
			if err := p.expectPunct(lexer.PRParen); err != nil {
				return nil, err
			}
		}
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	if p.eatKeyword(keyword.CASCADE) {
		d.Cascade = true
	}
	return d, nil
}

func (p *Parser) parseTruncateStatement() (ast.Statement, error) {
	p.advance()
	p.eatKeyword(keyword.TABLE)
	t := ast.TruncateStatement{}
	for {
		n, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		t.Tables = append(t.Tables, n)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	switch {
	case p.eatKeyword(keyword.CASCADE):
		t.Cascade = true
	case p.eatKeyword(keyword.RESTRICT):
		t.Restrict = true
	}
	return t, nil
}
