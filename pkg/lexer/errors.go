package lexer

import "fmt"

// TokenizeError is the only error type Tokenize returns. Message is
// already the complete, stable diagnostic text (including any trailing
// location) the way the test suite expects it verbatim.
type TokenizeError struct {
	Message string
	Loc     Location
}

func (e *TokenizeError) Error() string { return e.Message }

func unterminatedString(quote string, loc Location) *TokenizeError {
	return &TokenizeError{
		Message: fmt.Sprintf("Unterminated string literal. Expected %s after %s", quote, loc),
		Loc:     loc,
	}
}

func unterminatedComment(loc Location) *TokenizeError {
	return &TokenizeError{
		Message: fmt.Sprintf("Unterminated multi-line comment, %s", loc),
		Loc:     loc,
	}
}

func unterminatedDollarQuoted(tag string, loc Location) *TokenizeError {
	return &TokenizeError{
		Message: fmt.Sprintf("Unterminated dollar-quoted string $%s$, %s", tag, loc),
		Loc:     loc,
	}
}

func unterminatedDelimitedIdentifier(closeQuote string) *TokenizeError {
	return &TokenizeError{Message: fmt.Sprintf("Expected close delimiter '%s' before EOF.", closeQuote)}
}
