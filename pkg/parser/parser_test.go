package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravan-sql/sqlfront/pkg/dialect"
	"github.com/caravan-sql/sqlfront/pkg/parser"
)

func parseOne(t *testing.T, sql, dialectName string) (interface {
	SQL() string
}, error) {
	t.Helper()
	p, err := parser.New(sql, dialect.GetDialect(dialectName))
	require.NoError(t, err)
	return p.ParseStatement()
}

func TestParseSelectStatements(t *testing.T) {
	cases := []struct {
		name    string
		sql     string
		dialect string
	}{
		{"simple select", "SELECT id, name FROM users WHERE active = 1", "generic"},
		{"select with join", "SELECT u.name, o.id FROM users u JOIN orders o ON u.id = o.user_id", "generic"},
		{"select with group by having", "SELECT dept, COUNT(*) FROM employees GROUP BY dept HAVING COUNT(*) > 5", "generic"},
		{"select with cte", "WITH recent AS (SELECT * FROM orders WHERE created_at > '2024-01-01') SELECT * FROM recent", "postgresql"},
		{"select with union", "SELECT id FROM a UNION SELECT id FROM b", "generic"},
		{"select with window function", "SELECT id, ROW_NUMBER() OVER (PARTITION BY dept ORDER BY salary DESC) FROM employees", "postgresql"},
		{"select with subquery", "SELECT * FROM users WHERE id IN (SELECT user_id FROM orders)", "generic"},
		{"select with limit offset", "SELECT * FROM users ORDER BY id LIMIT 10 OFFSET 5", "generic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := parseOne(t, tc.sql, tc.dialect)
			require.NoError(t, err)
			assert.NotEmpty(t, stmt.SQL())
		})
	}
}

func TestParseDDLStatements(t *testing.T) {
	cases := []struct {
		name    string
		sql     string
		dialect string
	}{
		{"create table", "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(100) NOT NULL, email VARCHAR(255) UNIQUE)", "generic"},
		{"create table with fk", "CREATE TABLE orders (id INT PRIMARY KEY, user_id INT REFERENCES users(id) ON DELETE CASCADE)", "postgresql"},
		{"alter table add column", "ALTER TABLE users ADD COLUMN age INT", "generic"},
		{"create index", "CREATE UNIQUE INDEX idx_email ON users (email)", "generic"},
		{"create view", "CREATE OR REPLACE VIEW active_users AS SELECT * FROM users WHERE active = 1", "mysql"},
		{"drop table", "DROP TABLE IF EXISTS users", "generic"},
		{"truncate table", "TRUNCATE TABLE logs", "generic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := parseOne(t, tc.sql, tc.dialect)
			require.NoError(t, err)
			assert.NotEmpty(t, stmt.SQL())
		})
	}
}

func TestParseDMLStatements(t *testing.T) {
	cases := []struct {
		name    string
		sql     string
		dialect string
	}{
		{"insert values", "INSERT INTO users (id, name) VALUES (1, 'alice')", "generic"},
		{"insert select", "INSERT INTO users_archive SELECT * FROM users WHERE active = 0", "generic"},
		{"update", "UPDATE users SET active = 0 WHERE last_login < '2023-01-01'", "generic"},
		{"delete", "DELETE FROM users WHERE active = 0", "generic"},
		{"merge", "MERGE INTO target t USING source s ON t.id = s.id WHEN MATCHED THEN UPDATE SET t.val = s.val WHEN NOT MATCHED THEN INSERT (id, val) VALUES (s.id, s.val)", "postgresql"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := parseOne(t, tc.sql, tc.dialect)
			require.NoError(t, err)
			assert.NotEmpty(t, stmt.SQL())
		})
	}
}

func TestParseTransactionAndMiscStatements(t *testing.T) {
	cases := []struct {
		name    string
		sql     string
		dialect string
	}{
		{"begin commit", "BEGIN", "generic"},
		{"start transaction with modes", "START TRANSACTION ISOLATION LEVEL SERIALIZABLE, READ ONLY", "postgresql"},
		{"rollback to savepoint", "ROLLBACK TO SAVEPOINT sp1", "generic"},
		{"set variable", "SET SESSION search_path TO public", "postgresql"},
		{"show", "SHOW search_path", "postgresql"},
		{"grant", "GRANT SELECT, INSERT ON users TO app_user", "generic"},
		{"explain select", "EXPLAIN ANALYZE SELECT * FROM users", "postgresql"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := parseOne(t, tc.sql, tc.dialect)
			require.NoError(t, err)
			assert.NotEmpty(t, stmt.SQL())
		})
	}
}

func TestParseStatementsMultiple(t *testing.T) {
	p, err := parser.New("SELECT 1; SELECT 2;", dialect.GetDialect("generic"))
	require.NoError(t, err)
	stmts, err := p.ParseStatements()
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestParseErrorOnGarbage(t *testing.T) {
	p, err := parser.New("SELECT FROM FROM FROM", dialect.GetDialect("generic"))
	require.NoError(t, err)
	_, err = p.ParseStatement()
	assert.Error(t, err)
}

func TestRecursionLimit(t *testing.T) {
	sql := "SELECT "
	for i := 0; i < 200; i++ {
		sql += "("
	}
	sql += "1"
	for i := 0; i < 200; i++ {
		sql += ")"
	}
	p, err := parser.NewWithOptions(context.Background(), sql, dialect.GetDialect("generic"), parser.ParserOptions{RecursionLimit: 20, Unescape: true})
	require.NoError(t, err)
	_, err = p.ParseStatement()
	assert.Error(t, err)
}
