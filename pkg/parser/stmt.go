package parser

import (
	"context"

	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/dialect"
	"github.com/caravan-sql/sqlfront/pkg/keyword"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

// parseStatement dispatches on the current keyword to the grammar for one
// top-level statement. A Custom dialect's hook gets first refusal.
func (p *Parser) parseStatement() (ast.Statement, error) {
	if err := p.checkCtx(); err != nil {
		return nil, err
	}
	if c, ok := p.d.(dialect.Custom); ok {
		stmt, handled, err := c.ParseStatement(p)
		if err != nil {
			return nil, err
		}
		if handled {
			return stmt, nil
		}
	}

	if p.curIsPunct(lexer.PSemicolon) || p.atEOF() {
		return ast.EmptyStatement{}, nil
	}

	kw, isKw := p.curKeyword()
	if !isKw {
		return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
	}

	switch kw {
	case keyword.SELECT, keyword.WITH, keyword.VALUES, keyword.TABLE:
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		return ast.SelectStatement{Query: q}, nil
	case keyword.INSERT:
		return p.parseInsertStatement()
	case keyword.UPDATE:
		return p.parseUpdateStatement()
	case keyword.DELETE:
		return p.parseDeleteStatement()
	case keyword.MERGE:
		return p.parseMergeStatement()

	case keyword.CREATE:
		return p.parseCreateStatement()
	case keyword.ALTER:
		return p.parseAlterTableStatement()
	case keyword.DROP:
		return p.parseDropStatement()
	case keyword.TRUNCATE:
		return p.parseTruncateStatement()

	case keyword.BEGIN, keyword.START:
		return p.parseStartTransaction()
	case keyword.COMMIT:
		return p.parseCommit()
	case keyword.ROLLBACK:
		return p.parseRollback()
	case keyword.SAVEPOINT:
		return p.parseSavepoint()
	case keyword.RELEASE:
		return p.parseReleaseSavepoint()

	case keyword.SET:
		if p.peekIsKeyword(keyword.TRANSACTION) {
			return p.parseSetTransaction()
		}
		return p.parseSetStatement()
	case keyword.SHOW:
		return p.parseShowStatement()
	case keyword.RESET:
		return p.parseResetStatement()
	case keyword.DISCARD:
		return p.parseDiscardStatement()
	case keyword.USE:
		return p.parseUseStatement()
	case keyword.EXPLAIN:
		return p.parseExplainStatement()
	case keyword.COPY:
		return p.parseCopyStatement()
	case keyword.VACUUM:
		return p.parseVacuumStatement()
	case keyword.GRANT:
		return p.parseGrantStatement()
	case keyword.REVOKE:
		return p.parseRevokeStatement()
	case keyword.DENY:
		return p.parseDenyStatement()
	case keyword.COMMENT:
		return p.parseCommentStatement()
	case keyword.PREPARE:
		return p.parsePrepareStatement()
	case keyword.EXECUTE:
		return p.parseExecuteStatement()
	case keyword.DEALLOCATE:
		return p.parseDeallocateStatement()
	case keyword.CALL:
		return p.parseCallStatement()
	case keyword.ASSERT:
		return p.parseAssertStatement()
	case keyword.PRINT:
		return p.parsePrintStatement()
	case keyword.RAISE:
		return p.parseRaiseStatement()
	case keyword.RAISERROR:
		return p.parseRaiseErrorStatement()
	case keyword.LOCK:
		return p.parseLockTablesStatement()
	case keyword.LISTEN:
		return p.parseListenStatement()
	case keyword.NOTIFY:
		return p.parseNotifyStatement()
	case keyword.CACHE:
		return p.parseCacheStatement()
	case keyword.UNCACHE:
		return p.parseUncacheStatement()

	case keyword.IF:
		return p.parseIfStatement()
	case keyword.WHILE:
		return p.parseWhileStatement()
	case keyword.LOOP:
		return p.parseLoopStatement()
	case keyword.DECLARE:
		return p.parseDeclareStatement()
	case keyword.OPEN:
		return p.parseOpenStatement()
	case keyword.CLOSE:
		return p.parseCloseStatement()
	case keyword.RETURN:
		return p.parseReturnStatement()
	}

	return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
}

// ParseStatement parses a single statement, bounding recursion via the
// Parser's options, and requires the entire input be consumed (aside from
// one optional trailing semicolon).
func (p *Parser) ParseStatement() (ast.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	p.eatPunct(lexer.PSemicolon)
	if !p.atEOF() {
		return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
	}
	return stmt, nil
}

// ParseStatements parses a semicolon-separated sequence of statements,
// stopping at EOF. Empty statements (a bare `;`) are dropped.
func (p *Parser) ParseStatements() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.atEOF() {
		if p.eatPunct(lexer.PSemicolon) {
			continue
		}
		if err := p.enter(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		p.leave()
		if err != nil {
			return nil, err
		}
		if _, empty := stmt.(ast.EmptyStatement); !empty {
			stmts = append(stmts, stmt)
		}
		if !p.eatPunct(lexer.PSemicolon) && !p.atEOF() {
			return nil, errExpected(";", tokenDescription(p.cur()), p.cur().Loc)
		}
	}
	return stmts, nil
}

// ParseSQL tokenizes and parses input as a sequence of statements under
// dialect d with the given options.
func ParseSQL(input string, d dialect.Dialect, opts ParserOptions) ([]ast.Statement, error) {
	p, err := NewWithOptions(context.Background(), input, d, opts)
	if err != nil {
		return nil, err
	}
	return p.ParseStatements()
}

// ParseExpression parses input as a single expression under dialect d,
// using default options.
func ParseExpression(input string, d dialect.Dialect) (ast.Expression, error) {
	p, err := New(input, d)
	if err != nil {
		return nil, err
	}
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
	}
	return expr, nil
}

// ParseDataType parses input as a single data type name under dialect d,
// using default options.
func ParseDataType(input string, d dialect.Dialect) (ast.DataType, error) {
	p, err := New(input, d)
	if err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
	}
	return typ, nil
}

// ParseObjectName parses input as a single dotted object name under
// dialect d, using default options.
func ParseObjectName(input string, d dialect.Dialect) (ast.ObjectName, error) {
	p, err := New(input, d)
	if err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, errUnexpected(tokenDescription(p.cur()), p.cur().Loc)
	}
	return name, nil
}
