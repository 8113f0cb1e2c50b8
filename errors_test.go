package sclisp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorStringIncludesMessage(t *testing.T) {
	e := newError(CodeBadArg, "bad thing")
	require.Equal(t, "SCLISP_BADARG: bad thing", e.Error())
}

func TestErrorStringWithoutMessageIsJustTheCode(t *testing.T) {
	e := newError(CodeErr, "")
	require.Equal(t, "SCLISP_ERR", e.Error())
}

func TestCodeOfDefaultsToErrForForeignErrors(t *testing.T) {
	require.Equal(t, CodeOK, codeOf(nil))
	require.Equal(t, CodeErr, codeOf(errors.New("not one of ours")))
}
