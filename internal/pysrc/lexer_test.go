package pysrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
)

func ident(v string) pysrc.Token { return pysrc.Token{Kind: pysrc.KindIdentifier, Value: v} }
func other(v string) pysrc.Token { return pysrc.Token{Kind: pysrc.KindOther, Value: v} }

var (
	tokImport = pysrc.Token{Kind: pysrc.KindImport, Value: "import"}
	tokFrom   = pysrc.Token{Kind: pysrc.KindFrom, Value: "from"}
	tokDot    = pysrc.Token{Kind: pysrc.KindDot, Value: "."}
	tokComma  = pysrc.Token{Kind: pysrc.KindComma, Value: ","}
	tokStar   = pysrc.Token{Kind: pysrc.KindStar, Value: "*"}
)

func TestNewToken_KeywordKind_DefaultsCanonicalValue(t *testing.T) {
	t.Parallel()

	tok, err := pysrc.NewToken(pysrc.KindFrom, "")
	require.NoError(t, err)
	assert.Equal(t, pysrc.KindFrom, tok.Kind)
	assert.Equal(t, "from", tok.Value)

	tok, err = pysrc.NewToken(pysrc.KindIdentifier, "testVariable")
	require.NoError(t, err)
	assert.Equal(t, "testVariable", tok.Value)
}

func TestNewToken_InvalidKind_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := pysrc.NewToken(pysrc.Kind(99), "")
	require.ErrorIs(t, err, pysrc.ErrInvalidTokenKind)

	_, err = pysrc.NewToken(pysrc.Kind(-1), "")
	require.ErrorIs(t, err, pysrc.ErrInvalidTokenKind)
}

func TestTokenise_EmptyInput_ReturnsNoTokens(t *testing.T) {
	t.Parallel()

	tokens, err := pysrc.Tokenise("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenise_InvalidUTF8_ReturnsErrNotText(t *testing.T) {
	t.Parallel()

	_, err := pysrc.Tokenise("import a\xff\xfe")
	require.ErrorIs(t, err, pysrc.ErrNotText)
}

func TestTokenise_SourceWithoutImports_TreatsKeywordsAsIdentifiers(t *testing.T) {
	t.Parallel()

	src := `
def testFunction(x):
	"""This is a docstring but I'm not sure
	how far it goes.
	"""
	return x * 2
	'''Another multi
	line string'''

'test'
something = [ "hello" ]
`

	want := []pysrc.Token{
		ident("def"), ident("testFunction"),
		other("("), ident("x"), other(")"), other(":"),
		ident("return"), ident("x"),
		tokStar, other("2"), ident("something"),
		other("="), other("["), other("]"),
	}

	tokens, err := pysrc.Tokenise(src)
	require.NoError(t, err)
	assert.Equal(t, want, tokens)
}

func TestTokenise_SourceWithImports_EmitsImportTokens(t *testing.T) {
	t.Parallel()

	src := `#comment here
import a
from a import b
from c import *
from d import e, f
from g import dummy, *

from . import h
from . import i, j
from .k import l
from .m import *
from .n import o.p
from .q import another_dummy, *

class DummyClass:

	def something():
		# Hello World!
		from sys import path # test
		print(path)

	def somethingEntirelyDifferent():
		import bang
		bang.start()
`

	want := []pysrc.Token{
		tokImport, ident("a"),
		tokFrom, ident("a"), tokImport, ident("b"),
		tokFrom, ident("c"), tokImport, tokStar,
		tokFrom, ident("d"), tokImport, ident("e"), tokComma, ident("f"),
		tokFrom, ident("g"), tokImport, ident("dummy"), tokComma, tokStar,

		tokFrom, tokDot, tokImport, ident("h"),
		tokFrom, tokDot, tokImport, ident("i"), tokComma, ident("j"),
		tokFrom, tokDot, ident("k"), tokImport, ident("l"),
		tokFrom, tokDot, ident("m"), tokImport, tokStar,
		tokFrom, tokDot, ident("n"), tokImport, ident("o"), tokDot, ident("p"),
		tokFrom, tokDot, ident("q"), tokImport, ident("another_dummy"), tokComma, tokStar,

		ident("class"), ident("DummyClass"), other(":"),
		ident("def"), ident("something"), other("("), other(")"), other(":"),
		tokFrom, ident("sys"), tokImport, ident("path"),
		ident("print"), other("("), ident("path"), other(")"),
		ident("def"), ident("somethingEntirelyDifferent"), other("("), other(")"), other(":"),
		tokImport, ident("bang"),
		ident("bang"), tokDot, ident("start"), other("("), other(")"),
	}

	tokens, err := pysrc.Tokenise(src)
	require.NoError(t, err)
	assert.Equal(t, want, tokens)
}

func TestTokenise_ImportKeyword_ProducesTokenStream(t *testing.T) {
	t.Parallel()

	tokens, err := pysrc.Tokenise("import a.b.c")
	require.NoError(t, err)
	assert.Equal(t, []pysrc.Token{
		tokImport, ident("a"), tokDot, ident("b"), tokDot, ident("c"),
	}, tokens)
}

func TestTokenise_TripleQuotedString_MatchesOpeningStyle(t *testing.T) {
	t.Parallel()

	// The embedded ''' must not terminate the """-opened string.
	src := "\"\"\"contains ''' and import os\"\"\"\nimport real"

	tokens, err := pysrc.Tokenise(src)
	require.NoError(t, err)
	assert.Equal(t, []pysrc.Token{tokImport, ident("real")}, tokens)
}

func TestTokenise_UnterminatedTripleString_ConsumesRestOfInput(t *testing.T) {
	t.Parallel()

	tokens, err := pysrc.Tokenise("'''import hidden\nimport also_hidden")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenise_StringWithEscapedQuote_SkipsWholeLiteral(t *testing.T) {
	t.Parallel()

	tokens, err := pysrc.Tokenise(`x = 'it\'s import time'` + "\nimport y")
	require.NoError(t, err)
	assert.Equal(t, []pysrc.Token{
		ident("x"), other("="), tokImport, ident("y"),
	}, tokens)
}

func TestTokenise_CommentAtEndOfLine_StopsAtNewline(t *testing.T) {
	t.Parallel()

	tokens, err := pysrc.Tokenise("import a # import b\nimport c")
	require.NoError(t, err)
	assert.Equal(t, []pysrc.Token{
		tokImport, ident("a"), tokImport, ident("c"),
	}, tokens)
}

func TestTokenise_NonASCIIPunctuation_BecomesSingleOtherToken(t *testing.T) {
	t.Parallel()

	tokens, err := pysrc.Tokenise("x → y")
	require.NoError(t, err)
	assert.Equal(t, []pysrc.Token{
		ident("x"), other("→"), ident("y"),
	}, tokens)
}
