package sclisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string, cfg *Config) []Token {
	t.Helper()
	l := NewLexer(src, cfg)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexerClassifiesAtoms(t *testing.T) {
	toks := allTokens(t, `( ) ' 42 0x2a 010 3.5 "hi" nil sym`, nil)
	kinds := make([]TokKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []TokKind{
		TokLParen, TokRParen, TokQuote,
		TokInteger, TokInteger, TokInteger,
		TokReal, TokString, TokNil, TokSymbol, TokEOF,
	}, kinds)

	require.EqualValues(t, 42, toks[3].I)
	require.EqualValues(t, 42, toks[4].I, "0x prefix reads as hex per strconv.ParseInt base 0")
	require.EqualValues(t, 8, toks[5].I, "leading 0 reads as octal per strconv.ParseInt base 0")
	require.InDelta(t, 3.5, toks[6].R, 0.0001)
}

func TestLexerStringLiteralOverflow(t *testing.T) {
	cfg := NewConfig()
	cfg.SetInt("lexer.token_max", 4)
	l := NewLexer(`"toolong"`, cfg)
	_, err := l.Next()
	require.Error(t, err)
	require.Equal(t, CodeOverflow, codeOf(err))
}

func TestLexerUnterminatedString(t *testing.T) {
	l := NewLexer(`"abc`, nil)
	_, err := l.Next()
	require.Error(t, err)
	require.Equal(t, CodeBadArg, codeOf(err))
}

func TestLexerSymbolOverflow(t *testing.T) {
	cfg := NewConfig()
	cfg.SetInt("lexer.token_max", 3)
	l := NewLexer("abcd", cfg)
	_, err := l.Next()
	require.Error(t, err)
	require.Equal(t, CodeOverflow, codeOf(err))
}

func TestLexerDelimitersEndAtoms(t *testing.T) {
	toks := allTokens(t, "(a)", nil)
	require.Equal(t, TokLParen, toks[0].Kind)
	require.Equal(t, TokSymbol, toks[1].Kind)
	require.Equal(t, "a", toks[1].Text)
	require.Equal(t, TokRParen, toks[2].Kind)
}
