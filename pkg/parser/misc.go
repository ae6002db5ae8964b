package parser

import (
	"strings"

	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

func (p *Parser) parseSetStatement() (ast.Statement, error) {
	p.advance() // SET
	if p.curIsKeyword(keyword.TRANSACTION) {
		return p.parseSetTransactionFromSet()
	}
	if p.curIsKeyword(keyword.TIME) && p.peekIsKeyword(keyword.ZONE) {
		p.advance()
		p.advance()
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		return ast.SetTimeZoneStatement{Value: e}, nil
	}
	local := false
	if p.eatKeyword(keyword.SESSION) {
	} else if p.eatKeyword(keyword.LOCAL) {
		local = true
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if !p.eatPunct(lexer.PEq) {
		if err := p.expectKeyword(keyword.TO); err != nil {
			return nil, err
		}
	}
	values, err := p.parseExprListNoParens()
	if err != nil {
		return nil, err
	}
	return ast.SetVariableStatement{Local: local, Name: name, Values: values}, nil
}

func (p *Parser) parseSetTransactionFromSet() (ast.Statement, error) {
	p.advance() // TRANSACTION
	modes, err := p.parseTransactionModes()
	if err != nil {
		return nil, err
	}
	return ast.SetTransactionStatement{Modes: modes}, nil
}

func (p *Parser) parseShowStatement() (ast.Statement, error) {
	p.advance() // SHOW
	what, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	s := ast.ShowStatement{What: what.Value}
	if !p.atEOF() && !p.curIsPunct(lexer.PSemicolon) {
		s.Filter = p.SkipToStatementEnd()
	}
	return s, nil
}

func (p *Parser) parseResetStatement() (ast.Statement, error) {
	p.advance() // RESET
	if p.eatKeyword(keyword.ALL) {
		return ast.ResetStatement{Name: "ALL"}, nil
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.ResetStatement{Name: name.Value}, nil
}

func (p *Parser) parseDiscardStatement() (ast.Statement, error) {
	p.advance() // DISCARD
	what, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.DiscardStatement{What: what.Value}, nil
}

func (p *Parser) parseUseStatement() (ast.Statement, error) {
	p.advance() // USE
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	return ast.UseStatement{Name: name}, nil
}

func (p *Parser) parseExplainStatement() (ast.Statement, error) {
	p.advance() // EXPLAIN
	e := ast.ExplainStatement{}
	if p.eatPunct(lexer.PLParen) {
		opts := map[string]string{}
		for {
			key, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			val := ""
			if p.isPlainWord() {
				v, err := p.parseIdent()
				if err != nil {
					return nil, err
				}
				val = v.Value
			}
			opts[key.Value] = val
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
		e.UtilityOptions = opts
	} else {
		if p.eatKeyword(keyword.ANALYZE) {
			e.Analyze = true
		}
		if p.eatKeyword(keyword.VERBOSE) {
			e.Verbose = true
		}
	}
	if p.curIsKeyword(keyword.EXPLAIN) {
		return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	e.Statement = stmt
	return e, nil
}

func (p *Parser) parseCopyStatement() (ast.Statement, error) {
	p.advance() // COPY
	c := ast.CopyStatement{}
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Table = table
	if p.eatPunct(lexer.PLParen) {
		cols, err := p.parseIdentListUntilRParen()
		if err != nil {
			return nil, err
		}
		c.Columns = cols
	}
	switch {
	case p.eatKeyword(keyword.TO):
		c.To = true
	case p.eatKeyword(keyword.FROM):
	default:
		return nil, errExpected("FROM or TO", tokenDescription(p.cur()), p.cur().Loc)
	}
	target := p.cur()
	c.Target = tokenDescription(target)
	p.advance()
	if !p.atEOF() && !p.curIsPunct(lexer.PSemicolon) {
		c.Options = p.SkipToStatementEnd()
	}
	return c, nil
}

func (p *Parser) parseVacuumStatement() (ast.Statement, error) {
	p.advance() // VACUUM
	v := ast.VacuumStatement{}
	for {
		switch {
		case p.eatKeyword(keyword.FULL):
			v.Full = true
			continue
		case p.eatKeyword(keyword.FREEZE):
			v.Freeze = true
			continue
		case p.eatKeyword(keyword.VERBOSE):
			v.Verbose = true
			continue
		}
		break
	}
	if p.isPlainWord() {
		t, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		v.Table = t
	}
	return v, nil
}

func (p *Parser) parsePrivilegeList() ([]string, error) {
	var privs []string
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		priv := strings.ToUpper(id.Value)
		for p.isPlainWord() {
			id2, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			priv += " " + strings.ToUpper(id2.Value)
		}
		privs = append(privs, priv)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return privs, nil
}

func (p *Parser) parseGrantStatement() (ast.Statement, error) {
	p.advance() // GRANT
	privs, err := p.parsePrivilegeList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	on, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.TO); err != nil {
		return nil, err
	}
	var to []ast.Ident
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		to = append(to, id)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	g := ast.GrantStatement{Privileges: privs, On: on, To: to}
	if p.curIsKeyword(keyword.WITH) && p.peekIsKeyword(keyword.GRANT) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(keyword.OPTION); err != nil {
			return nil, err
		}
		g.WithGrantOption = true
	}
	return g, nil
}

func (p *Parser) parseRevokeStatement() (ast.Statement, error) {
	p.advance() // REVOKE
	privs, err := p.parsePrivilegeList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	on, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.FROM); err != nil {
		return nil, err
	}
	var from []ast.Ident
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		from = append(from, id)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	r := ast.RevokeStatement{Privileges: privs, On: on, From: from}
	if p.eatKeyword(keyword.CASCADE) {
		r.Cascade = true
	}
	return r, nil
}

func (p *Parser) parseDenyStatement() (ast.Statement, error) {
	p.advance() // DENY
	privs, err := p.parsePrivilegeList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	on, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.TO); err != nil {
		return nil, err
	}
	var to []ast.Ident
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		to = append(to, id)
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return ast.DenyStatement{Privileges: privs, On: on, To: to}, nil
}

func (p *Parser) parseCommentStatement() (ast.Statement, error) {
	p.advance() // COMMENT
	if err := p.expectKeyword(keyword.ON); err != nil {
		return nil, err
	}
	kind, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.IS); err != nil {
		return nil, err
	}
	t := p.cur()
	if t.Kind != lexer.KindString {
		return nil, errExpected("string literal", tokenDescription(t), t.Loc)
	}
	p.advance()
	return ast.CommentStatement{ObjectKind: strings.ToUpper(kind.Value), Name: name, Text: t.String}, nil
}

func (p *Parser) parsePrepareStatement() (ast.Statement, error) {
	p.advance() // PREPARE
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	pr := ast.PrepareStatement{Name: name.Value}
	if p.eatPunct(lexer.PLParen) {
		for {
			t, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			pr.ArgTypes = append(pr.ArgTypes, t)
			if !p.eatPunct(lexer.PComma) {
				break
			}
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	pr.Statement = stmt
	return pr, nil
}

func (p *Parser) parseExecuteStatement() (ast.Statement, error) {
	p.advance() // EXECUTE
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	e := ast.ExecuteStatement{Name: name.Value}
	if p.eatPunct(lexer.PLParen) {
		if !p.curIsPunct(lexer.PRParen) {
			args, err := p.parseExprListNoParens()
			if err != nil {
				return nil, err
			}
			e.Args = args
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (p *Parser) parseDeallocateStatement() (ast.Statement, error) {
	p.advance() // DEALLOCATE
	p.eatKeyword(keyword.PREPARE)
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.DeallocateStatement{Name: name.Value}, nil
}

func (p *Parser) parseCallStatement() (ast.Statement, error) {
	p.advance() // CALL
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c := ast.CallStatement{Name: name}
	if p.eatPunct(lexer.PLParen) {
		if !p.curIsPunct(lexer.PRParen) {
			args, err := p.parseExprListNoParens()
			if err != nil {
				return nil, err
			}
			c.Args = args
		}
		if err := p.expectPunct(lexer.PRParen); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (p *Parser) parseAssertStatement() (ast.Statement, error) {
	p.advance() // ASSERT
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	a := ast.AssertStatement{Condition: cond}
	if p.eatKeyword(keyword.AS) {
		msg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		a.Message = msg
	}
	return a, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	p.advance() // PRINT
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return ast.PrintStatement{Expr: e}, nil
}

func (p *Parser) parseRaiseStatement() (ast.Statement, error) {
	p.advance() // RAISE
	r := ast.RaiseStatement{}
	switch {
	case p.eatKeyword(keyword.NOTICE):
		r.Level = "NOTICE"
	case p.eatKeyword(keyword.WARNING):
		r.Level = "WARNING"
	case p.eatKeyword(keyword.EXCEPTION):
		r.Level = "EXCEPTION"
	}
	if p.atEOF() || p.curIsPunct(lexer.PSemicolon) {
		return r, nil
	}
	msg, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	r.Message = msg
	for p.eatPunct(lexer.PComma) {
		a, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		r.Args = append(r.Args, a)
	}
	return r, nil
}

func (p *Parser) parseRaiseErrorStatement() (ast.Statement, error) {
	p.advance() // RAISERROR
	if err := p.expectPunct(lexer.PLParen); err != nil {
		return nil, err
	}
	msg, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	r := ast.RaiseErrorStatement{Message: msg}
	if p.eatPunct(lexer.PComma) {
		sev, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		r.Severity = sev
	}
	if p.eatPunct(lexer.PComma) {
		state, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		r.State = state
	}
	for p.eatPunct(lexer.PComma) {
		a, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		r.Args = append(r.Args, a)
	}
	if err := p.expectPunct(lexer.PRParen); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Parser) parseLockTablesStatement() (ast.Statement, error) {
	p.advance() // LOCK
	p.eatKeyword(keyword.TABLES)
	l := ast.LockTablesStatement{}
	for {
		name, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		mode, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		modeText := strings.ToUpper(mode.Value)
		if p.isPlainWord() {
			mode2, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			modeText += " " + strings.ToUpper(mode2.Value)
		}
		l.Locks = append(l.Locks, ast.TableLock{Table: name, Mode: modeText})
		if !p.eatPunct(lexer.PComma) {
			break
		}
	}
	return l, nil
}

func (p *Parser) parseListenStatement() (ast.Statement, error) {
	p.advance() // LISTEN
	ch, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.ListenStatement{Channel: ch.Value}, nil
}

func (p *Parser) parseNotifyStatement() (ast.Statement, error) {
	p.advance() // NOTIFY
	ch, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n := ast.NotifyStatement{Channel: ch.Value}
	if p.eatPunct(lexer.PComma) {
		t := p.cur()
		if t.Kind != lexer.KindString {
			return nil, errExpected("string literal", tokenDescription(t), t.Loc)
		}
		p.advance()
		n.Payload = t.String
	}
	return n, nil
}

func (p *Parser) parseCacheStatement() (ast.Statement, error) {
	p.advance() // CACHE
	c := ast.CacheStatement{}
	if p.eatKeyword(keyword.LAZY) {
		c.Lazy = true
	}
	if err := p.expectKeyword(keyword.TABLE); err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	c.Table = name
	if p.eatKeyword(keyword.AS) {
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		c.Query = q
	}
	return c, nil
}

func (p *Parser) parseUncacheStatement() (ast.Statement, error) {
	p.advance() // UNCACHE
	if err := p.expectKeyword(keyword.TABLE); err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	return ast.UncacheStatement{Table: name}, nil
}
