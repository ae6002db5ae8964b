package parser

import (
	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

// parseStatementBlock parses statements separated by semicolons until
// one of the given terminator keywords is seen (without consuming it).
func (p *Parser) parseStatementBlock(terminators ...keyword.Keyword) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		if p.atEOF() {
			return stmts, nil
		}
		for _, t := range terminators {
			if p.curIsKeyword(t) {
				return stmts, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.eatPunct(lexer.PSemicolon)
	}
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	p.advance() // IF
	i := ast.IfStatement{}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.THEN); err != nil {
		return nil, err
	}
	body, err := p.parseStatementBlock(keyword.ELSIF, keyword.ELSE, keyword.END)
	if err != nil {
		return nil, err
	}
	i.Branches = append(i.Branches, ast.IfBranch{Condition: cond, Body: body})

	for p.eatKeyword(keyword.ELSIF) {
		c, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(keyword.THEN); err != nil {
			return nil, err
		}
		b, err := p.parseStatementBlock(keyword.ELSIF, keyword.ELSE, keyword.END)
		if err != nil {
			return nil, err
		}
		i.Branches = append(i.Branches, ast.IfBranch{Condition: c, Body: b})
	}

	if p.eatKeyword(keyword.ELSE) {
		b, err := p.parseStatementBlock(keyword.END)
		if err != nil {
			return nil, err
		}
		i.Else = b
	}

	if err := p.expectKeyword(keyword.END); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.IF); err != nil {
		return nil, err
	}
	return i, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	p.advance() // WHILE
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.LOOP); err != nil {
		return nil, err
	}
	body, err := p.parseStatementBlock(keyword.END)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.END); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.LOOP); err != nil {
		return nil, err
	}
	return ast.WhileStatement{Condition: cond, Body: body}, nil
}

func (p *Parser) parseLoopStatement() (ast.Statement, error) {
	p.advance() // LOOP
	body, err := p.parseStatementBlock(keyword.END)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.END); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.LOOP); err != nil {
		return nil, err
	}
	return ast.LoopStatement{Body: body}, nil
}

func (p *Parser) parseDeclareStatement() (ast.Statement, error) {
	p.advance() // DECLARE
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if p.eatKeyword(keyword.CURSOR) {
		if err := p.expectKeyword(keyword.FOR); err != nil {
			return nil, err
		}
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		return ast.DeclareStatement{Name: name, Cursor: q}, nil
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	d := ast.DeclareStatement{Name: name, Type: typ}
	if p.eatPunct(lexer.PDuckAssignment) || p.eatPunct(lexer.PEq) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		d.Default = e
	}
	return d, nil
}

func (p *Parser) parseOpenStatement() (ast.Statement, error) {
	p.advance() // OPEN
	c, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.OpenStatement{Cursor: c}, nil
}

func (p *Parser) parseCloseStatement() (ast.Statement, error) {
	p.advance() // CLOSE
	c, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.CloseStatement{Cursor: c}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	p.advance() // RETURN
	if p.atEOF() || p.curIsPunct(lexer.PSemicolon) {
		return ast.ReturnStatement{}, nil
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return ast.ReturnStatement{Expr: e}, nil
}
