// Command sqlfront tokenizes, parses, and re-serializes SQL across the
// dialects pkg/dialect understands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/caravan-sql/sqlfront/internal/config"
	"github.com/caravan-sql/sqlfront/pkg/ast"
	"github.com/caravan-sql/sqlfront/pkg/dialect"
	"github.com/caravan-sql/sqlfront/pkg/lexer"
	"github.com/caravan-sql/sqlfront/pkg/parser"
)

type commonOpts struct {
	Dialect string `short:"d" long:"dialect" description:"SQL dialect name" default:"generic"`
	Config  string `short:"c" long:"config" description:"Path to a YAML config file"`
	Args    struct {
		File string `positional-arg-name:"file" description:"SQL file to read (stdin if omitted)"`
	} `positional-args:"yes"`
}

type tokenizeCmd struct {
	commonOpts
}

type parseCmd struct {
	commonOpts
}

type formatCmd struct {
	commonOpts
}

var opts struct {
	Tokenize tokenizeCmd `command:"tokenize" description:"print one token per line"`
	Parse    parseCmd    `command:"parse" description:"parse and dump the AST as JSON"`
	Format   formatCmd   `command:"format" description:"parse and re-serialize as canonical SQL"`
}

func (c *commonOpts) resolve() (dialect.Dialect, parser.ParserOptions, string, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, parser.ParserOptions{}, "", err
		}
		cfg = loaded
	}
	dialectName := cfg.Dialect
	if c.Dialect != "" && c.Dialect != "generic" {
		dialectName = c.Dialect
	}
	input, err := readInput(c.Args.File)
	if err != nil {
		return nil, parser.ParserOptions{}, "", err
	}
	return dialect.GetDialect(dialectName), cfg.Options, input, nil
}

func readInput(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(file)
	return string(data), err
}

func (c *tokenizeCmd) Execute(_ []string) error {
	d, _, input, err := c.resolve()
	if err != nil {
		return err
	}
	toks, err := lexer.Tokenize(input, d)
	if err != nil {
		return err
	}
	for _, t := range toks {
		if t.Kind == lexer.KindWhitespace || t.Kind == lexer.KindEOF {
			continue
		}
		fmt.Println(t.Text())
	}
	return nil
}

func (c *parseCmd) Execute(_ []string) error {
	d, popts, input, err := c.resolve()
	if err != nil {
		return err
	}
	stmts, err := parseAll(input, d, popts)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(stmts, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func (c *formatCmd) Execute(_ []string) error {
	d, popts, input, err := c.resolve()
	if err != nil {
		return err
	}
	stmts, err := parseAll(input, d, popts)
	if err != nil {
		return err
	}
	for _, s := range stmts {
		fmt.Println(s.SQL() + ";")
	}
	return nil
}

func parseAll(input string, d dialect.Dialect, popts parser.ParserOptions) ([]ast.Statement, error) {
	p, err := parser.NewWithOptions(context.Background(), input, d, popts)
	if err != nil {
		return nil, err
	}
	return p.ParseStatements()
}

func main() {
	parserFlags := flags.NewParser(&opts, flags.Default)
	if _, err := parserFlags.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
