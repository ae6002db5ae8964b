package parser

import (
	"fmt"

	"github.com/caravan-sql/sqlfront/pkg/lexer"
)

// ParserError is the only error type the parser itself raises; ParseSQL
// and the New constructors also pass through the lexer's TokenizeError.
// Parsing is fatal on the first syntax error; the parser never attempts
// local recovery or reports more than one diagnostic per call.
type ParserError struct {
	Message  string
	Location lexer.Location
}

func (e *ParserError) Error() string { return e.Message }

func errUnexpected(got string, loc lexer.Location) *ParserError {
	return &ParserError{Message: fmt.Sprintf("Unexpected token %s, %s", got, loc), Location: loc}
}

func errExpected(want, got string, loc lexer.Location) *ParserError {
	return &ParserError{Message: fmt.Sprintf("Expected %s, found %s, %s", want, got, loc), Location: loc}
}

func errRecursionLimit(loc lexer.Location) *ParserError {
	return &ParserError{Message: "Recursion limit exceeded.", Location: loc}
}
