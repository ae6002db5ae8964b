package parser

import (
	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

func (p *Parser) parseStartTransaction() (ast.Statement, error) {
	if p.eatKeyword(keyword.BEGIN) {
		p.eatKeyword(keyword.WORK)
	} else {
		p.advance() // START
		if err := p.expectKeyword(keyword.TRANSACTION); err != nil {
			return nil, err
		}
	}
	modes, err := p.parseTransactionModes()
	if err != nil {
		return nil, err
	}
	return ast.StartTransactionStatement{Modes: modes}, nil
}

func (p *Parser) parseSetTransaction() (ast.Statement, error) {
	p.advance() // SET
	if err := p.expectKeyword(keyword.TRANSACTION); err != nil {
		return nil, err
	}
	modes, err := p.parseTransactionModes()
	if err != nil {
		return nil, err
	}
	return ast.SetTransactionStatement{Modes: modes}, nil
}

func (p *Parser) parseTransactionModes() ([]string, error) {
	var modes []string
	for {
		switch {
		case p.curIsKeyword(keyword.ISOLATION):
			p.advance()
			if err := p.expectKeyword(keyword.LEVEL); err != nil {
				return nil, err
			}
			level, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			second := ""
			if p.isPlainWord() {
				id2, err := p.parseIdent()
				if err != nil {
					return nil, err
				}
				second = " " + id2.Value
			}
			modes = append(modes, "ISOLATION LEVEL "+level.Value+second)
		case p.curIsKeyword(keyword.READ):
			p.advance()
			switch {
			case p.eatKeyword(keyword.ONLY):
				modes = append(modes, "READ ONLY")
			case p.eatKeyword(keyword.WRITE):
				modes = append(modes, "READ WRITE")
			default:
				return nil, errExpected("ONLY or WRITE", tokenDescription(p.cur()), p.cur().Loc)
			}
		case p.curIsKeyword(keyword.DEFERRABLE):
			p.advance()
			modes = append(modes, "DEFERRABLE")
		case p.curIsKeyword(keyword.NOT) && p.peekIsKeyword(keyword.DEFERRABLE):
			p.advance()
			p.advance()
			modes = append(modes, "NOT DEFERRABLE")
		default:
			return modes, nil
		}
		if !p.eatPunct(lexer.PComma) {
			return modes, nil
		}
	}
}

func (p *Parser) parseCommit() (ast.Statement, error) {
	p.advance() // COMMIT
	p.eatKeyword(keyword.WORK)
	c := ast.CommitStatement{}
	if p.eatKeyword(keyword.AND) {
		p.eatKeyword(keyword.CHAIN)
		c.Chain = true
	}
	return c, nil
}

func (p *Parser) parseRollback() (ast.Statement, error) {
	p.advance() // ROLLBACK
	p.eatKeyword(keyword.WORK)
	r := ast.RollbackStatement{}
	if p.eatKeyword(keyword.TO) {
		p.eatKeyword(keyword.SAVEPOINT)
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		r.SavepointName = name.Value
	}
	return r, nil
}

func (p *Parser) parseSavepoint() (ast.Statement, error) {
	p.advance() // SAVEPOINT
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.SavepointStatement{Name: name.Value}, nil
}

func (p *Parser) parseReleaseSavepoint() (ast.Statement, error) {
	p.advance() // RELEASE
	p.eatKeyword(keyword.SAVEPOINT)
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return ast.ReleaseSavepointStatement{Name: name.Value}, nil
}
