package lexer

import (
	"strings"
	"unicode"

	"github.com/caravan-sql/sqlfront/pkg/dialect"
)

// Lexer is a stateful character scanner with a one-rune lookahead. It
// holds no knowledge of keywords — classifying a Word token as a
// keyword is the parser's job via pkg/keyword.
type Lexer struct {
	input   []rune
	pos     int
	d       dialect.Dialect
	line    int
	column  int
	unescape bool
}

// New constructs a Lexer over input for dialect d with unescape turned
// on (the ParserOptions default).
func New(input string, d dialect.Dialect) *Lexer {
	return &Lexer{input: []rune(input), d: d, line: 1, column: 1, unescape: true}
}

// NewWithOptions additionally lets the caller turn escape-folding off.
func NewWithOptions(input string, d dialect.Dialect, unescape bool) *Lexer {
	l := New(input, d)
	l.unescape = unescape
	return l
}

// Tokenize scans input to completion, returning every token including a
// trailing EOF, or the first fatal TokenizeError encountered.
func Tokenize(input string, d dialect.Dialect) ([]Token, error) {
	l := New(input, d)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) loc() Location { return Location{Line: l.line, Column: l.column} }

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	idx := l.pos + offset
	if idx >= len(l.input) {
		return 0, false
	}
	return l.input[idx], true
}

func (l *Lexer) advance() rune {
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

// Next scans and returns the next token.
func (l *Lexer) Next() (Token, error) {
	c, ok := l.peek()
	if !ok {
		return Token{Kind: KindEOF, Loc: l.loc()}, nil
	}

	switch {
	case c == ' ':
		loc := l.loc()
		l.advance()
		return Token{Kind: KindWhitespace, Whitespace: WSSpace, Loc: loc}, nil
	case c == '\t':
		loc := l.loc()
		l.advance()
		return Token{Kind: KindWhitespace, Whitespace: WSTab, Loc: loc}, nil
	case c == '\n':
		loc := l.loc()
		l.advance()
		return Token{Kind: KindWhitespace, Whitespace: WSNewline, Loc: loc}, nil
	case c == '\r':
		loc := l.loc()
		l.advance()
		if n, ok := l.peek(); ok && n == '\n' {
			l.advance()
		}
		return Token{Kind: KindWhitespace, Whitespace: WSNewline, Loc: loc}, nil
	case c == '-' && l.at2("--"):
		return l.scanInlineComment("--"), nil
	case c == '/' && l.at2("//") && l.d.Features().SupportsDoubleSlashComments:
		return l.scanInlineComment("//"), nil
	case c == '#' && !l.d.IsIdentifierStart('#') && l.d.Features().SupportsHashComments:
		return l.scanInlineComment("#"), nil
	case c == '/' && l.at2("/*"):
		return l.scanMultilineComment()
	case c == '\'':
		return l.scanQuotedString(StringSingleQuoted, '\'')
	case (c == 'n' || c == 'N') && l.atQuoteAfterPrefix(),
		(c == 'x' || c == 'X') && l.atQuoteAfterPrefix(),
		(c == 'b' || c == 'B') && l.atQuoteAfterPrefix(),
		(c == 'r' || c == 'R') && l.atQuoteAfterPrefix(),
		(c == 'e' || c == 'E') && l.atQuoteAfterPrefix() && l.d.Features().SupportsEscapedStringLiteral:
		return l.scanPrefixedString(c)
	case c == '$' && l.atDollarQuoteStart():
		return l.scanDollarQuoted()
	case l.d.IsDelimitedIdentifierStart(c):
		return l.scanDelimitedIdentifier(c)
	case unicode.IsDigit(c) || (c == '.' && isDigitAt(l, 1)):
		return l.scanNumber(), nil
	case l.d.IsIdentifierStart(c):
		return l.scanWord(), nil
	case c == '?':
		return l.scanPlaceholderQuestion(), nil
	case c == ':' && identifierFollowsColon(l):
		return l.scanPlaceholderNamed(':'), nil
	case c == '$' && isDigitAt(l, 1):
		return l.scanPlaceholderNamed('$'), nil
	case c == '$' && l.d.IsIdentifierStart(peekRune(l, 1)):
		return l.scanPlaceholderNamed('$'), nil
	default:
		return l.scanOperator()
	}
}

func peekRune(l *Lexer, offset int) rune {
	r, ok := l.peekAt(offset)
	if !ok {
		return 0
	}
	return r
}

func isDigitAt(l *Lexer, offset int) bool {
	r, ok := l.peekAt(offset)
	return ok && unicode.IsDigit(r)
}

func identifierFollowsColon(l *Lexer) bool {
	r, ok := l.peekAt(1)
	return ok && (unicode.IsLetter(r) || r == '_')
}

func (l *Lexer) at2(s string) bool {
	runes := []rune(s)
	for i, r := range runes {
		got, ok := l.peekAt(i)
		if !ok || got != r {
			return false
		}
	}
	return true
}

func (l *Lexer) atQuoteAfterPrefix() bool {
	r, ok := l.peekAt(1)
	return ok && r == '\''
}

func (l *Lexer) atDollarQuoteStart() bool {
	// `$tag$` or bare `$$`: scan ahead for a second unescaped `$` before
	// any whitespace/quote, without consuming.
	for i := 1; ; i++ {
		r, ok := l.peekAt(i)
		if !ok {
			return false
		}
		if r == '$' {
			return true
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
}

func (l *Lexer) scanInlineComment(prefix string) Token {
	loc := l.loc()
	for range prefix {
		l.advance()
	}
	start := l.pos
	for {
		c, ok := l.peek()
		if !ok || c == '\n' {
			break
		}
		l.advance()
	}
	text := string(l.input[start:l.pos])
	if c, ok := l.peek(); ok && c == '\n' {
		l.advance()
	}
	return Token{Kind: KindWhitespace, Whitespace: WSInlineComment, Prefix: prefix, Word: text, Loc: loc}
}

func (l *Lexer) scanMultilineComment() (Token, error) {
	loc := l.loc()
	l.advance()
	l.advance()
	depth := 1
	start := l.pos
	for depth > 0 {
		c, ok := l.peek()
		if !ok {
			return Token{}, unterminatedComment(l.loc())
		}
		if c == '/' {
			if r, ok := l.peekAt(1); ok && r == '*' {
				l.advance()
				l.advance()
				depth++
				continue
			}
		}
		if c == '*' {
			if r, ok := l.peekAt(1); ok && r == '/' {
				l.advance()
				l.advance()
				depth--
				continue
			}
		}
		l.advance()
	}
	text := string(l.input[start : l.pos-2])
	return Token{Kind: KindWhitespace, Whitespace: WSMultilineComment, Prefix: "/*", Word: text, Loc: loc}, nil
}

func (l *Lexer) scanQuotedString(kind StringKind, quote rune) (Token, error) {
	loc := l.loc()
	l.advance() // opening quote
	var sb strings.Builder
	backslashEscapes := l.d.Features().SupportsMySQLBackslashEscapes && kind == StringSingleQuoted
	for {
		c, ok := l.peek()
		if !ok {
			return Token{}, unterminatedString("'", l.loc())
		}
		if c == '\\' && backslashEscapes {
			l.advance()
			n, ok := l.peek()
			if !ok {
				return Token{}, unterminatedString("'", l.loc())
			}
			l.advance()
			if l.unescape {
				sb.WriteRune(mysqlEscape(n))
			} else {
				sb.WriteRune('\\')
				sb.WriteRune(n)
			}
			continue
		}
		if c == quote {
			l.advance()
			if n, ok := l.peek(); ok && n == quote {
				l.advance()
				if l.unescape {
					sb.WriteRune(quote)
				} else {
					sb.WriteRune(quote)
					sb.WriteRune(quote)
				}
				continue
			}
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	return Token{Kind: KindString, StringKind: kind, String: sb.String(), Loc: loc}, nil
}

func mysqlEscape(c rune) rune {
	switch c {
	case '0':
		return 0
	case 'b':
		return '\b'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'Z':
		return 26
	default:
		return c
	}
}

func (l *Lexer) scanPrefixedString(prefix rune) (Token, error) {
	loc := l.loc()
	l.advance() // consume the letter prefix
	switch prefix {
	case 'n', 'N':
		tok, err := l.scanQuotedString(StringNational, '\'')
		tok.Loc = loc
		return tok, err
	case 'x', 'X':
		start := l.pos
		l.advance()
		for {
			c, ok := l.peek()
			if !ok {
				return Token{}, unterminatedString("'", l.loc())
			}
			l.advance()
			if c == '\'' {
				break
			}
		}
		text := string(l.input[start+1 : l.pos-1])
		return Token{Kind: KindString, StringKind: StringHex, String: text, Loc: loc}, nil
	case 'b', 'B':
		tok, err := l.scanQuotedString(StringByte, '\'')
		tok.Loc = loc
		tok.StringKind = StringByte
		return tok, err
	case 'r', 'R':
		start := l.pos
		l.advance()
		for {
			c, ok := l.peek()
			if !ok {
				return Token{}, unterminatedString("'", l.loc())
			}
			l.advance()
			if c == '\'' {
				break
			}
		}
		text := string(l.input[start+1 : l.pos-1])
		return Token{Kind: KindString, StringKind: StringRaw, String: text, Loc: loc}, nil
	case 'e', 'E':
		l.advance()
		var sb strings.Builder
		for {
			c, ok := l.peek()
			if !ok {
				return Token{}, unterminatedString("'", l.loc())
			}
			if c == '\\' {
				l.advance()
				n, ok := l.peek()
				if !ok {
					return Token{}, unterminatedString("'", l.loc())
				}
				l.advance()
				if l.unescape {
					sb.WriteRune(mysqlEscape(n))
				} else {
					sb.WriteRune('\\')
					sb.WriteRune(n)
				}
				continue
			}
			if c == '\'' {
				l.advance()
				break
			}
			sb.WriteRune(c)
			l.advance()
		}
		return Token{Kind: KindString, StringKind: StringEscaped, String: sb.String(), Loc: loc}, nil
	}
	return Token{}, unterminatedString("'", loc)
}

func (l *Lexer) scanDollarQuoted() (Token, error) {
	loc := l.loc()
	l.advance() // opening $
	tagStart := l.pos
	for {
		c, ok := l.peek()
		if !ok {
			return Token{}, unterminatedDollarQuoted("", l.loc())
		}
		if c == '$' {
			break
		}
		l.advance()
	}
	tag := string(l.input[tagStart:l.pos])
	l.advance() // closing $ of opening tag
	bodyStart := l.pos
	closer := "$" + tag + "$"
	for {
		if l.pos+len(closer) > len(l.input) {
			return Token{}, unterminatedDollarQuoted(tag, l.loc())
		}
		if string(l.input[l.pos:l.pos+len(closer)]) == closer {
			break
		}
		l.advance()
	}
	body := string(l.input[bodyStart:l.pos])
	for range closer {
		l.advance()
	}
	return Token{Kind: KindString, StringKind: StringDollarQuoted, String: body, DollarTag: tag, Loc: loc}, nil
}

func (l *Lexer) scanDelimitedIdentifier(open rune) (Token, error) {
	loc := l.loc()
	end := l.d.DelimitedIdentifierEnd(open)
	l.advance()
	var sb strings.Builder
	for {
		c, ok := l.peek()
		if !ok {
			return Token{}, unterminatedDelimitedIdentifier(string(end))
		}
		if c == end {
			l.advance()
			if n, ok := l.peek(); ok && n == end {
				l.advance()
				sb.WriteRune(end)
				continue
			}
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	return Token{Kind: KindWord, Word: sb.String(), QuoteStyle: open, Loc: loc}, nil
}

func (l *Lexer) scanWord() Token {
	loc := l.loc()
	start := l.pos
	for {
		c, ok := l.peek()
		if !ok || !l.d.IsIdentifierPart(c) {
			break
		}
		l.advance()
	}
	text := string(l.input[start:l.pos])
	if isAllDigitsAndDots(text) {
		return Token{Kind: KindNumber, Number: text, Loc: loc}
	}
	return Token{Kind: KindWord, Word: text, Loc: loc}
}

func isAllDigitsAndDots(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

func (l *Lexer) scanNumber() Token {
	loc := l.loc()
	start := l.pos
	if c, ok := l.peek(); ok && c == '0' {
		if n, ok := l.peekAt(1); ok && (n == 'x' || n == 'X') {
			l.advance()
			l.advance()
			for {
				c, ok := l.peek()
				if !ok || !isHexDigit(c) {
					break
				}
				l.advance()
			}
			return Token{Kind: KindNumber, Number: string(l.input[start:l.pos]), Loc: loc}
		}
	}
	for {
		c, ok := l.peek()
		if !ok || !unicode.IsDigit(c) {
			break
		}
		l.advance()
	}
	if c, ok := l.peek(); ok && c == '.' {
		l.advance()
		for {
			c, ok := l.peek()
			if !ok || !unicode.IsDigit(c) {
				break
			}
			l.advance()
		}
	}
	if c, ok := l.peek(); ok && (c == 'e' || c == 'E') {
		if n, ok := l.peekAt(1); ok && (unicode.IsDigit(n) || n == '+' || n == '-') {
			l.advance()
			if s, ok := l.peek(); ok && (s == '+' || s == '-') {
				l.advance()
			}
			for {
				c, ok := l.peek()
				if !ok || !unicode.IsDigit(c) {
					break
				}
				l.advance()
			}
		}
	}
	text := string(l.input[start:l.pos])
	long := false
	if c, ok := l.peek(); ok && c == 'L' {
		long = true
		l.advance()
	}
	// MySQL/Hive: a number immediately followed by identifier-parts
	// reattaches into a single word token (e.g. `1e10abc`).
	if c, ok := l.peek(); ok && l.d.IsIdentifierStart(c) && !long && (l.d.Name() == "mysql" || l.d.Name() == "hive") {
		for {
			c, ok := l.peek()
			if !ok || !l.d.IsIdentifierPart(c) {
				break
			}
			l.advance()
		}
		return Token{Kind: KindWord, Word: string(l.input[start:l.pos]), Loc: loc}
	}
	return Token{Kind: KindNumber, Number: text, Long: long, Loc: loc}
}

func isHexDigit(c rune) bool {
	return unicode.IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) scanPlaceholderQuestion() Token {
	loc := l.loc()
	start := l.pos
	l.advance()
	for {
		c, ok := l.peek()
		if !ok || !unicode.IsDigit(c) {
			break
		}
		l.advance()
	}
	return Token{Kind: KindPlaceholder, Placeholder: string(l.input[start:l.pos]), Loc: loc}
}

func (l *Lexer) scanPlaceholderNamed(lead rune) Token {
	loc := l.loc()
	start := l.pos
	l.advance()
	for {
		c, ok := l.peek()
		if !ok || !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_') {
			break
		}
		l.advance()
	}
	return Token{Kind: KindPlaceholder, Placeholder: string(l.input[start:l.pos]), Loc: loc}
}

// operator table: longest spellings first so the greedy trie matches
// the maximal operator at each position.
var operatorTable = []struct {
	text  string
	punct Punct
}{
	{"<=>", PSpaceship}, {"!~*", PNotRegexMatchI}, {"||/", PPGCubeRoot},
	{"#>>", PHashLongArrow}, {"->>", PLongArrow}, {"<<", PShiftLeft}, {">>", PShiftRight},
	{"<=", PLtEq}, {">=", PGtEq}, {"<>", PNotEq}, {"!=", PNotEq}, {"==", PEqEq},
	{"!~", PNotRegexMatch}, {"~*", PRegexMatch}, {"@>", PAtArrowRight}, {"<@", PArrowAtLeft},
	{"@?", PAtQuestion}, {"@@", PAtAt}, {"#-", PHashMinus}, {"#>", PHashArrow},
	{"->", PArrow}, {"|/", PPGSquareRoot}, {"||", PStringConcat}, {"::", PDoubleColon},
	{":=", PDuckAssignment}, {"&&", POverlap}, {"=>", PRightArrow}, {"!!", PBangBang},
	{"+", PPlus}, {"-", PMinus}, {"*", PStar}, {"/", PSlash}, {"%", PPercent},
	{"=", PEq}, {"<", PLt}, {">", PGt}, {"&", PAmp}, {"|", PPipe}, {"^", PCaret},
	{"~", PTilde}, {"#", PHash}, {"?", PQuestion}, {"!", PBang},
	{"(", PLParen}, {")", PRParen}, {"[", PLBracket}, {"]", PRBracket},
	{"{", PLBrace}, {"}", PRBrace}, {",", PComma}, {";", PSemicolon}, {".", PPeriod},
	{":", PColon}, {"\\", PBackslash}, {"$", PDollar}, {"@", PAt},
}

func (l *Lexer) scanOperator() (Token, error) {
	loc := l.loc()
	for _, op := range operatorTable {
		if l.at2(op.text) {
			for range []rune(op.text) {
				l.advance()
			}
			return Token{Kind: KindPunctuation, Punct: op.punct, Loc: loc}, nil
		}
	}
	c := l.advance()
	return Token{}, &TokenizeError{Message: "Unexpected character " + string(c), Loc: loc}
}
