// Package pysrc extracts import statements from Python source text.
//
// The package is a two-stage front end: Tokenise segments raw text into a
// flat token stream covering only the constructs that matter for import
// detection, and Parse consumes that stream and emits normalized import
// records. Everything outside import statements is carried through as
// opaque identifier/other noise.
package pysrc

import "errors"

// Kind identifies the lexical class of a token.
type Kind int

// The closed token vocabulary. Any other keyword of the language is
// tokenized as a plain identifier.
const (
	KindIdentifier Kind = iota
	KindImport
	KindFrom
	KindDot
	KindComma
	KindStar
	KindOther

	kindCount
)

// ErrInvalidTokenKind is returned when a token is constructed with a kind
// outside the closed vocabulary.
var ErrInvalidTokenKind = errors.New("invalid token kind")

// canonicalText holds the fixed spelling of keyword-like kinds. Identifier
// and other tokens carry their literal source text instead.
var canonicalText = map[Kind]string{
	KindImport: "import",
	KindFrom:   "from",
	KindDot:    ".",
	KindComma:  ",",
	KindStar:   "*",
}

// Token is an immutable lexical unit. Equality is structural.
type Token struct {
	Kind  Kind
	Value string
}

// NewToken constructs a token, defaulting the value of keyword-like kinds
// to their canonical spelling when no explicit value is given.
func NewToken(kind Kind, value string) (Token, error) {
	if kind < 0 || kind >= kindCount {
		return Token{}, ErrInvalidTokenKind
	}

	if value == "" {
		value = canonicalText[kind]
	}

	return Token{Kind: kind, Value: value}, nil
}

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindImport:
		return "import"
	case KindFrom:
		return "from"
	case KindDot:
		return "dot"
	case KindComma:
		return "comma"
	case KindStar:
		return "star"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}
