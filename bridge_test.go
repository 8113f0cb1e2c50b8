package sclisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterUserFuncArgsAndReturn(t *testing.T) {
	in := newTestInterpreter(t)

	err := in.RegisterUserFunc("doubled", func(api *FunctionAPI, user any) error {
		v, err := api.ArgInteger(0)
		if err != nil {
			return err
		}
		api.ReturnInteger(v * 2)
		return nil
	}, nil, nil)
	require.NoError(t, err)

	got, err := evalRepr(t, in, "(doubled 21)")
	require.NoError(t, err)
	require.Equal(t, "42", got)
}

func TestRegisterUserFuncStringArg(t *testing.T) {
	in := newTestInterpreter(t)

	err := in.RegisterUserFunc("shout", func(api *FunctionAPI, user any) error {
		s, err := api.ArgString(0)
		if err != nil {
			return err
		}
		api.ReturnString(s + "!")
		return nil
	}, nil, nil)
	require.NoError(t, err)

	got, err := evalRepr(t, in, `(shout "hi")`)
	require.NoError(t, err)
	require.Equal(t, `"hi!"`, got)
}

func TestRegisterUserFuncRejectsNilArgument(t *testing.T) {
	in := newTestInterpreter(t)

	err := in.RegisterUserFunc("identity", func(api *FunctionAPI, user any) error {
		_, err := api.ArgInteger(0)
		return err
	}, nil, nil)
	require.NoError(t, err)

	err = in.Eval("(identity nil)")
	require.Error(t, err)
	require.Equal(t, CodeErr, in.LastErrorCode())
}

func TestRegisterUserFuncPropagatesError(t *testing.T) {
	in := newTestInterpreter(t)

	err := in.RegisterUserFunc("boom", func(api *FunctionAPI, user any) error {
		return newError(CodeBadArg, "boom")
	}, nil, nil)
	require.NoError(t, err)

	err = in.Eval("(boom)")
	require.Error(t, err)
	require.Equal(t, CodeBadArg, in.LastErrorCode())
}

func TestRegisterUserFuncNilHidesBuiltin(t *testing.T) {
	in := newTestInterpreter(t)

	err := in.RegisterUserFunc("+", nil, nil, nil)
	require.NoError(t, err)

	err = in.Eval("(+ 1 2)")
	require.Error(t, err, "rebinding + to the empty reference must shadow the builtin")
}

func TestRegisterUserFuncDestructorRunsOnUnref(t *testing.T) {
	in := newTestInterpreter(t)

	called := false
	err := in.RegisterUserFunc("noop", func(api *FunctionAPI, user any) error {
		api.ReturnInteger(0)
		return nil
	}, nil, func(user any) {
		called = true
	})
	require.NoError(t, err)

	in.Destroy()
	require.True(t, called, "destructor must run when the builtin's binding is released")
}

func TestScopeAPIGetAndSet(t *testing.T) {
	in := newTestInterpreter(t)
	require.NoError(t, in.Eval("(set x 7)"))

	api := in.ScopeAPI()
	v, err := api.GetInteger("x")
	require.NoError(t, err)
	require.EqualValues(t, 7, v)

	api.SetInteger("y", 9)
	got, err := evalRepr(t, in, "y")
	require.NoError(t, err)
	require.Equal(t, "9", got)
}
