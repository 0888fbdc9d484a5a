// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gengen/gengen/pkg/target"
)

// blurPipeline builds a two-stage blur over a 2-D uint8 input.
func blurPipeline(t *testing.T) (*Pipeline, *Parameter) {
	t.Helper()
	in := NewParameter(UInt(8), true, 2, "input", true)
	x, y := NewVar("x"), NewVar("y")
	blurX := NewFunc("blur_x").MustDefine([]Var{x, y},
		Add(in.Call(x.Expr(), y.Expr()), in.Call(Add(x.Expr(), IntConst(1)), y.Expr())))
	out := NewFunc("out").MustDefine([]Var{x, y},
		Cast(UInt(8), Div(blurX.Call(x.Expr(), y.Expr()), IntConst(2))))
	return NewPipeline(out), in
}

func TestCompileToModule(t *testing.T) {
	t.Parallel()

	p, in := blurPipeline(t)
	m, err := p.CompileToModule([]Argument{ArgumentFromParameter(in)}, "blur", target.MustParse("x86-64-linux"), LinkageExternal)
	if err != nil {
		t.Fatalf("CompileToModule() error = %v", err)
	}

	var names []string
	for _, f := range m.Functions {
		names = append(names, f.Name)
	}
	if !slices.Equal(names, []string{"blur_x", "out"}) {
		t.Errorf("realization order = %v, want [blur_x out]", names)
	}

	if len(m.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(m.Arguments))
	}
	if a := m.Arguments[0]; a.Name != "input" || a.Kind != InputBuffer {
		t.Errorf("first argument = %+v", a)
	}
	if a := m.Arguments[1]; a.Name != "out" || a.Kind != OutputBuffer || a.Type != UInt(8) || a.Dimensions != 2 {
		t.Errorf("output argument = %+v", a)
	}
	if got := m.Functions[1].Values[0]; got != "uint8((blur_x(x, y) / 2))" {
		t.Errorf("out value = %q", got)
	}
}

func TestCompileToModuleErrors(t *testing.T) {
	t.Parallel()

	linux := target.MustParse("x86-64-linux")
	x := NewVar("x")

	t.Run("no outputs", func(t *testing.T) {
		t.Parallel()
		_, err := NewPipeline().CompileToModule(nil, "f", linux, LinkageExternal)
		if !errors.Is(err, ErrNoOutputs) {
			t.Errorf("error = %v, want ErrNoOutputs", err)
		}
	})

	t.Run("undefined output", func(t *testing.T) {
		t.Parallel()
		_, err := NewPipeline(NewFunc("f")).CompileToModule(nil, "f", linux, LinkageExternal)
		if !errors.Is(err, ErrUndefinedFunc) {
			t.Errorf("error = %v, want ErrUndefinedFunc", err)
		}
	})

	t.Run("duplicate argument", func(t *testing.T) {
		t.Parallel()
		f := NewFunc("f").MustDefine([]Var{x}, x.Expr())
		args := []Argument{{Name: "f", Kind: InputScalar, Type: Int(32)}}
		_, err := NewPipeline(f).CompileToModule(args, "fn", linux, LinkageExternal)
		if !errors.Is(err, ErrDuplicateArgument) {
			t.Errorf("error = %v, want ErrDuplicateArgument", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()
		a, b := NewFunc("a"), NewFunc("b")
		a.MustDefine([]Var{x}, b.Call(x.Expr()))
		b.MustDefine([]Var{x}, a.Call(x.Expr()))
		_, err := NewPipeline(a).CompileToModule(nil, "fn", linux, LinkageExternal)
		if err == nil || !strings.Contains(err.Error(), "read each other") {
			t.Errorf("error = %v, want cycle error", err)
		}
	})

	t.Run("namespace without mangling", func(t *testing.T) {
		t.Parallel()
		f := NewFunc("f").MustDefine([]Var{x}, x.Expr())
		_, err := NewPipeline(f).CompileToModule(nil, "ns::fn", linux, LinkageExternal)
		if err == nil || !strings.Contains(err.Error(), "cplusplus_name_mangling") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("bad identifier", func(t *testing.T) {
		t.Parallel()
		f := NewFunc("f").MustDefine([]Var{x}, x.Expr())
		if _, err := NewPipeline(f).CompileToModule(nil, "9fn", linux, LinkageExternal); err == nil {
			t.Error("expected error for invalid identifier")
		}
	})
}

func TestTupleOutputArguments(t *testing.T) {
	t.Parallel()

	x := NewVar("x")
	f := NewFunc("pair").MustDefine([]Var{x}, Cast(Float(32), x.Expr()), x.Expr())
	got := NewPipeline(f).OutputArguments()
	if len(got) != 2 || got[0].Name != "pair_0" || got[1].Name != "pair_1" {
		t.Fatalf("OutputArguments() = %+v", got)
	}
	if got[0].Type != Float(32) || got[1].Type != Int(32) {
		t.Errorf("types = %v, %v", got[0].Type, got[1].Type)
	}
}

func TestFuncDefine(t *testing.T) {
	t.Parallel()

	f := NewFunc("f")
	if f.Defined() {
		t.Fatal("new Func should be undefined")
	}
	if err := f.Define([]Var{ImplicitVar(0)}); err == nil {
		t.Error("Define() without values should fail")
	}
	if err := f.Define([]Var{ImplicitVar(0)}, Expr{}); err == nil {
		t.Error("Define() with an undefined value should fail")
	}
	if err := f.Define([]Var{ImplicitVar(0)}, ImplicitVar(0).Expr()); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if err := f.Define([]Var{ImplicitVar(0)}, IntConst(1)); !errors.Is(err, ErrFuncRedefined) {
		t.Errorf("second Define() error = %v, want ErrFuncRedefined", err)
	}
	if got := f.Call(IntConst(3)).String(); got != "f(3)" {
		t.Errorf("Call() = %q", got)
	}
	if f.Args()[0].Name() != "_0" {
		t.Errorf("implicit var name = %q", f.Args()[0].Name())
	}
}

func TestArgumentFromParameter(t *testing.T) {
	t.Parallel()

	p := NewParameter(Float(32), false, 0, "scale", true)
	p.SetScalarExpr(FloatConst(1))
	p.SetRange(FloatConst(0), Expr{})
	a := ArgumentFromParameter(p)
	if a.Kind != InputScalar || a.IsBuffer() {
		t.Errorf("kind = %v", a.Kind)
	}
	if a.Default.String() != "1f" || a.Min.String() != "0f" || a.Max.Defined() {
		t.Errorf("default/min/max = %q/%q/%q", a.Default, a.Min, a.Max)
	}

	buf := ArgumentFromParameter(NewParameter(UInt(16), true, 3, "img", true))
	if buf.Kind != InputBuffer || buf.Dimensions != 3 || buf.Default.Defined() {
		t.Errorf("buffer argument = %+v", buf)
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for name, want := range TypeEnumMap {
		got, err := ParseType(name)
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v", name, got, err)
		}
		if got.String() != name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), name)
		}
	}
	if _, err := ParseType("int64"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("ParseType(int64) error = %v, want ErrUnknownType", err)
	}
	if Float(64).CType() != "double" || UInt(8).CType() != "uint8_t" {
		t.Error("unexpected C spelling")
	}
}
