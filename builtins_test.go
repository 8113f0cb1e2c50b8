package sclisp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComparisonBuiltins(t *testing.T) {
	in := newTestInterpreter(t)
	for _, c := range []struct {
		expr     string
		expected string
	}{
		{"(< 1 2)", "1"},
		{"(< 2 1)", "0"},
		{"(<= 2 2)", "1"},
		{"(> 3 2)", "1"},
		{"(>= 2 3)", "0"},
		{"(== 1 1)", "1"},
		{"(== 1 2)", "0"},
	} {
		got, err := evalRepr(t, in, c.expr)
		require.NoError(t, err)
		require.Equal(t, c.expected, got, c.expr)
	}
}

func TestModBuiltin(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := evalRepr(t, in, "(mod 10 3)")
	require.NoError(t, err)
	require.Equal(t, "1", got)

	err = in.Eval("(mod 1 0)")
	require.Error(t, err)
	require.Equal(t, CodeBadArg, in.LastErrorCode())
}

func TestModUnsupportedWhenFloatModDisabled(t *testing.T) {
	cfg := NewConfig()
	cfg.SetBool("runtime.mod_float", false)
	in, err := Init(nil, cfg)
	require.NoError(t, err)
	defer in.Destroy()

	err = in.Eval("(mod 5.0 2.0)")
	require.Error(t, err)
	require.Equal(t, CodeUnsupported, in.LastErrorCode())
}

func TestConsOneAndTwoArgs(t *testing.T) {
	in := newTestInterpreter(t)

	got, err := evalRepr(t, in, "(cons 1 2)")
	require.NoError(t, err)
	require.Equal(t, "(1 . 2)", got)

	got, err = evalRepr(t, in, "(cons 1 nil)")
	require.NoError(t, err)
	require.Equal(t, "(1)", got)

	err = in.Eval("(cons 1 2 3)")
	require.Error(t, err)
	require.Equal(t, CodeBadArg, in.LastErrorCode())
}

func TestListBuiltin(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := evalRepr(t, in, "(list 1 2 3)")
	require.NoError(t, err)
	require.Equal(t, "(1 2 3)", got)

	got, err = evalRepr(t, in, "(list)")
	require.NoError(t, err)
	require.Equal(t, "nil", got)
}

func TestReverseImproperPair(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := evalRepr(t, in, "(reverse (cons 1 2))")
	require.NoError(t, err)
	require.Equal(t, "(2 . 1)", got)
}

func TestReverseRejectsNonList(t *testing.T) {
	in := newTestInterpreter(t)
	err := in.Eval("(reverse 5)")
	require.Error(t, err)
	require.Equal(t, CodeBadArg, in.LastErrorCode())
}

func TestPredicates(t *testing.T) {
	in := newTestInterpreter(t)
	for _, c := range []struct {
		expr     string
		expected string
	}{
		{"(nil? nil)", "1"},
		{"(nil? 0)", "0"},
		{"(atom? 5)", "1"},
		{"(atom? (cons 1 2))", "0"},
		{"(cell? (cons 1 2))", "1"},
		{"(cell? 5)", "0"},
	} {
		got, err := evalRepr(t, in, c.expr)
		require.NoError(t, err)
		require.Equal(t, c.expected, got, c.expr)
	}
}

func TestPrintlnWritesToStdoutStreamAndRejectsNonString(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cb, _ := DefaultCallbacksWithIO(&stdout, &stderr, strings.NewReader(""))
	in, err := Init(cb, nil)
	require.NoError(t, err)
	defer in.Destroy()

	require.NoError(t, in.Eval(`(println "hello")`))
	require.Equal(t, "hello\n", stdout.String())

	err = in.Eval("(println 5)")
	require.Error(t, err)
	require.Equal(t, CodeUnsupported, in.LastErrorCode())
}

func TestPromptReadsLineFromGetChar(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cb, _ := DefaultCallbacksWithIO(&stdout, &stderr, strings.NewReader("bob\n"))
	in, err := Init(cb, nil)
	require.NoError(t, err)
	defer in.Destroy()

	got, err := evalRepr(t, in, `(prompt "name: ")`)
	require.NoError(t, err)
	require.Equal(t, `"bob"`, got)
	require.Equal(t, "name: \"bob\"\n", stdout.String(), "the prompt text, then Repr's own echo of the result")
}

func TestEvalBuiltinEvaluatesAnObjectValue(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := evalRepr(t, in, "(eval (quote (+ 1 2)))")
	require.NoError(t, err)
	require.Equal(t, "3", got)
}

func TestSetFunctionSugarTarget(t *testing.T) {
	in := newTestInterpreter(t)
	_, err := evalRepr(t, in, "(set (sq x) (* x x))")
	require.NoError(t, err)

	got, err := evalRepr(t, in, "(sq 5)")
	require.NoError(t, err)
	require.Equal(t, "25", got)
}

func TestSetBadTargetIsBadArg(t *testing.T) {
	in := newTestInterpreter(t)
	err := in.Eval("(set 5 1)")
	require.Error(t, err)
	require.Equal(t, CodeBadArg, in.LastErrorCode())
}

func TestCondWithNoMatchingClauseReturnsNil(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := evalRepr(t, in, "(cond (#f 1) (#f 2))")
	require.NoError(t, err)
	require.Equal(t, "nil", got)
}

func TestNonExecutableOperatorErrors(t *testing.T) {
	in := newTestInterpreter(t)
	err := in.Eval("(5 1 2)")
	require.Error(t, err)
	require.Equal(t, CodeBadArg, in.LastErrorCode())
}
