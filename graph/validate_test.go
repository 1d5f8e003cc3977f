package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byCode(diags []Diagnostic, code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestValidateAcyclicGraphHasNoCycleDiagnostics(t *testing.T) {
	g := New()
	a := g.Add(Literal{Value: LiteralFloat(1)})
	b := g.Add(Literal{Value: LiteralFloat(2)})
	shared := g.Add(Binary{Op: BinaryAdd, Left: a, Right: b})
	left := g.Add(Math{Fun: MathSin, Args: []NodeHandle{shared}})
	right := g.Add(Math{Fun: MathCos, Args: []NodeHandle{shared}})
	root := g.Add(Binary{Op: BinaryMultiply, Left: left, Right: right})

	diags := Validate(g, root)
	assert.Empty(t, byCode(diags, CodeCircularDependency))
	assert.False(t, HasErrors(diags))
}

func TestValidateDetectsThreeNodeCycle(t *testing.T) {
	g := New()
	// Handles are assigned sequentially, so the cycle is wired with
	// forward references: 0 -> 1 -> 2 -> 0.
	a := g.Add(Unary{Op: UnaryNegate, Expr: 1})
	b := g.Add(Unary{Op: UnaryNegate, Expr: 2})
	c := g.Add(Unary{Op: UnaryNegate, Expr: 0})

	diags := Validate(g, a)
	cycles := byCode(diags, CodeCircularDependency)
	require.NotEmpty(t, cycles)

	path := cycles[0].Path
	require.GreaterOrEqual(t, len(path), 4)
	assert.Equal(t, path[0], path[len(path)-1], "path must repeat the start node at the end")
	assert.Contains(t, path, a)
	assert.Contains(t, path, b)
	assert.Contains(t, path, c)
}

func TestValidateDetectsSelfLoop(t *testing.T) {
	g := New()
	a := g.Add(Unary{Op: UnaryNegate, Expr: 0})

	diags := Validate(g, a)
	cycles := byCode(diags, CodeCircularDependency)
	require.Len(t, cycles, 1)
	assert.Equal(t, []NodeHandle{a, a}, cycles[0].Path)
}

func TestValidateTypeMismatchErrors(t *testing.T) {
	g := New()
	m := g.Add(Context{Value: ContextModelMatrix})
	conv := g.Add(Convert{To: Vec3, Expr: m})

	diags := Validate(g, conv)
	mismatches := byCode(diags, CodeTypeMismatch)
	require.NotEmpty(t, mismatches)
	assert.Equal(t, SeverityError, mismatches[0].Severity)
	assert.Equal(t, "value", mismatches[0].Slot)
	assert.Equal(t, Mat4, mismatches[0].From)
	assert.Equal(t, Vec3, mismatches[0].To)
}

func TestValidateBinaryMatrixVectorAddRejected(t *testing.T) {
	g := New()
	m := g.Add(Context{Value: ContextModelMatrix})
	v := g.Add(Uniform{Name: "u_pos", Type: Vec4})
	bad := g.Add(Binary{Op: BinaryAdd, Left: m, Right: v})

	diags := Validate(g, bad)
	assert.NotEmpty(t, byCode(diags, CodeTypeMismatch))
	assert.True(t, HasErrors(diags))

	// The same shapes under multiplication are fine.
	g2 := New()
	m2 := g2.Add(Context{Value: ContextModelMatrix})
	v2 := g2.Add(Uniform{Name: "u_pos", Type: Vec4})
	mul := g2.Add(Binary{Op: BinaryMultiply, Left: m2, Right: v2})

	diags2 := Validate(g2, mul)
	assert.False(t, HasErrors(diags2))
}

func TestValidateLossyConversionWarnsWithSuggestion(t *testing.T) {
	g := New()
	v := g.Add(Uniform{Name: "u_color", Type: Vec4})
	conv := g.Add(Convert{To: Float, Expr: v})

	diags := Validate(g, conv)
	mismatches := byCode(diags, CodeTypeMismatch)
	require.NotEmpty(t, mismatches)
	assert.Equal(t, SeverityWarning, mismatches[0].Severity)
	assert.NotEmpty(t, mismatches[0].Suggestion)
	assert.False(t, HasErrors(diags))
}

func TestValidateMissingInputs(t *testing.T) {
	g := New()
	x := g.Add(Literal{Value: LiteralFloat(1)})
	clamp := g.Add(Math{Fun: MathClamp, Args: []NodeHandle{x}})

	diags := Validate(g, clamp)
	missing := byCode(diags, CodeMissingInput)
	require.NotEmpty(t, missing)
	assert.Contains(t, missing[0].Message, "3 argument(s)")
}

func TestValidateDanglingHandleIsMissingInput(t *testing.T) {
	g := New()
	bad := g.Add(Unary{Op: UnaryNegate, Expr: 42})

	diags := Validate(g, bad)
	missing := byCode(diags, CodeMissingInput)
	require.NotEmpty(t, missing)
	assert.Equal(t, "operand", missing[0].Slot)
}

func TestValidateDisconnectedOutput(t *testing.T) {
	g := New()
	a := g.Add(Literal{Value: LiteralFloat(1)})
	root := g.Add(Math{Fun: MathSin, Args: []NodeHandle{a}})

	// A stray uniform nothing references, and a stray literal which is
	// exempt from the check.
	g.AddNamed(Uniform{Name: "u_unused", Type: Float}, "u_unused")
	g.Add(Literal{Value: LiteralFloat(9)})

	diags := Validate(g, root)
	disconnected := byCode(diags, CodeDisconnectedOutput)
	require.Len(t, disconnected, 1)
	assert.Equal(t, SeverityWarning, disconnected[0].Severity)
	assert.Contains(t, disconnected[0].Message, "u_unused")
}

func TestValidateMultipleRoots(t *testing.T) {
	g := New()
	shared := g.Add(Uniform{Name: "u_base", Type: Vec3})
	rootA := g.Add(Math{Fun: MathNormalize, Args: []NodeHandle{shared}})
	rootB := g.Add(Math{Fun: MathLength, Args: []NodeHandle{shared}})

	diags := Validate(g, rootA, rootB)
	assert.Empty(t, byCode(diags, CodeDisconnectedOutput))
	assert.False(t, HasErrors(diags))
}

func TestValidateFunctionBodiesAreChecked(t *testing.T) {
	g := New()
	arg := g.Add(Argument{Index: 0, Type: Float})
	body := g.Add(Math{Fun: MathClamp, Args: []NodeHandle{arg}}) // wrong arity
	g.AddFunction(Function{
		Name:   "broken",
		Params: []Param{{Name: "x", Type: Float}},
		Result: Float,
		Body:   body,
	})

	root := g.Add(Literal{Value: LiteralFloat(1)})
	diags := Validate(g, root)
	assert.NotEmpty(t, byCode(diags, CodeMissingInput))
}

func TestValidateCallArityMismatch(t *testing.T) {
	g := New()
	arg := g.Add(Argument{Index: 0, Type: Float})
	fn := g.AddFunction(Function{
		Name:   "id",
		Params: []Param{{Name: "x", Type: Float}},
		Result: Float,
		Body:   arg,
	})
	call := g.Add(Call{Function: fn, Args: nil})

	diags := Validate(g, call)
	missing := byCode(diags, CodeMissingInput)
	require.NotEmpty(t, missing)
	assert.Contains(t, missing[0].Message, `call to "id"`)
}
