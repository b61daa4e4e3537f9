package pysrc

import (
	"errors"
	"unicode/utf8"
)

// ErrNotText is returned when the input is not valid UTF-8 text.
var ErrNotText = errors.New("input was not text")

// Tokenise converts raw Python source text into its token stream.
//
// Comments and string literals are skipped entirely and produce no tokens.
// Whitespace is a separator only. The lexer performs no grammar validation;
// it only segments text into typed units.
func Tokenise(src string) ([]Token, error) {
	if !utf8.ValidString(src) {
		return nil, ErrNotText
	}

	var tokens []Token

	i := 0
	for i < len(src) {
		c := src[i]

		switch {
		case c == '#':
			i = skipLineComment(src, i)
		case c == '"' || c == '\'':
			i = skipString(src, i)
		case isIdentStart(c):
			var word string

			word, i = scanIdentifier(src, i)
			tokens = append(tokens, identifierToken(word))
		case c == '.':
			tokens = append(tokens, Token{Kind: KindDot, Value: "."})
			i++
		case c == ',':
			tokens = append(tokens, Token{Kind: KindComma, Value: ","})
			i++
		case c == '*':
			tokens = append(tokens, Token{Kind: KindStar, Value: "*"})
			i++
		case isSpace(c):
			i++
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			tokens = append(tokens, Token{Kind: KindOther, Value: string(r)})
			i += size
		}
	}

	return tokens, nil
}

// identifierToken maps the two keywords the lexer cares about to their own
// kinds; every other word, language keyword or not, is a plain identifier.
func identifierToken(word string) Token {
	switch word {
	case "import":
		return Token{Kind: KindImport, Value: "import"}
	case "from":
		return Token{Kind: KindFrom, Value: "from"}
	default:
		return Token{Kind: KindIdentifier, Value: word}
	}
}

// skipLineComment advances past a "#" comment up to, but not including, the
// terminating newline.
func skipLineComment(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}

	return i
}

// skipString advances past a string literal starting at i. Triple-quoted
// strings run until the matching triple quote of the same style, across
// newlines. Single-quoted strings end at the matching quote or at the end
// of the line. Backslash escapes the following character in both forms.
// Unterminated strings consume the rest of the input (or line).
func skipString(src string, i int) int {
	quote := src[i]

	if i+2 < len(src) && src[i+1] == quote && src[i+2] == quote {
		return skipTripleString(src, i+3, quote)
	}

	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		case '\n':
			return i
		default:
			i++
		}
	}

	return i
}

func skipTripleString(src string, i int, quote byte) int {
	for i < len(src) {
		if src[i] == '\\' {
			i += 2

			continue
		}

		if src[i] == quote && i+2 < len(src) && src[i+1] == quote && src[i+2] == quote {
			return i + 3
		}

		i++
	}

	return i
}

func scanIdentifier(src string, i int) (string, int) {
	start := i
	for i < len(src) && isIdentChar(src[i]) {
		i++
	}

	return src[start:i], i
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}
