package sgsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergraph/graph"
)

func bindSource(t *testing.T, g *graph.Graph, b *Binder, source string) (graph.NodeHandle, error) {
	t.Helper()
	tokens, err := NewLexer(source).Tokenize()
	require.NoError(t, err)
	program, err := NewParser(tokens, source).Parse()
	require.NoError(t, err)
	return b.Bind(program, source)
}

func TestBindOperatorKeepsOperandIdentity(t *testing.T) {
	g := graph.New()
	a := g.Add(graph.Uniform{Name: "u_a", Type: graph.Float})
	bNode := g.Add(graph.Uniform{Name: "u_b", Type: graph.Float})

	binder := NewBinder(g)
	binder.Define("a", a)
	binder.Define("b", bNode)

	root, err := bindSource(t, g, binder, "a + b")
	require.NoError(t, err)

	node, ok := g.Node(root)
	require.True(t, ok)
	bin, ok := node.Kind.(graph.Binary)
	require.True(t, ok, "root kind = %T", node.Kind)
	assert.Equal(t, graph.BinaryAdd, bin.Op)
	assert.Equal(t, a, bin.Left)
	assert.Equal(t, bNode, bin.Right)
}

func TestBindUndefinedSymbol(t *testing.T) {
	g := graph.New()
	_, err := bindSource(t, g, NewBinder(g), "missing + 1.0")
	require.Error(t, err)

	srcErr := &SourceError{}
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrUndefinedSymbol, srcErr.Code)
	assert.Contains(t, srcErr.Message, "missing")
}

func TestBindLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   graph.LiteralValue
	}{
		{"1.5", graph.LiteralFloat(1.5)},
		{"42", graph.LiteralInt(42)},
		{"7u", graph.LiteralUint(7)},
		{"true", graph.LiteralBool(true)},
		{"2e2", graph.LiteralFloat(200)},
	}

	for _, tt := range tests {
		g := graph.New()
		root, err := bindSource(t, g, NewBinder(g), tt.source)
		require.NoError(t, err, tt.source)

		node, _ := g.Node(root)
		lit, ok := node.Kind.(graph.Literal)
		require.True(t, ok, tt.source)
		assert.Equal(t, tt.want, lit.Value, tt.source)
	}
}

func TestBindVarAnnotationRetypesIntegerLiteral(t *testing.T) {
	g := graph.New()
	root, err := bindSource(t, g, NewBinder(g), "var x: float = 2;")
	require.NoError(t, err)

	node, _ := g.Node(root)
	lit, ok := node.Kind.(graph.Literal)
	require.True(t, ok, "root kind = %T", node.Kind)
	assert.Equal(t, graph.LiteralFloat(2), lit.Value)
}

func TestBindScopeChaining(t *testing.T) {
	g := graph.New()
	root, err := bindSource(t, g, NewBinder(g),
		"var a: float = 2.0; var b: float = 3.0; var c: float = a + b;")
	require.NoError(t, err)

	node, _ := g.Node(root)
	_, ok := node.Kind.(graph.Binary)
	assert.True(t, ok, "root kind = %T", node.Kind)
}

func TestBindIntrinsicCall(t *testing.T) {
	g := graph.New()
	root, err := bindSource(t, g, NewBinder(g), "clamp(0.5, 0.0, 1.0)")
	require.NoError(t, err)

	node, _ := g.Node(root)
	math, ok := node.Kind.(graph.Math)
	require.True(t, ok)
	assert.Equal(t, graph.MathClamp, math.Fun)
	assert.Len(t, math.Args, 3)
}

func TestBindIntrinsicArityMismatch(t *testing.T) {
	g := graph.New()
	_, err := bindSource(t, g, NewBinder(g), "clamp(0.5)")
	require.Error(t, err)

	srcErr := &SourceError{}
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrArityMismatch, srcErr.Code)
}

func TestBindTypeConstructor(t *testing.T) {
	g := graph.New()
	root, err := bindSource(t, g, NewBinder(g), "vec3(1.0, 0.5, 0.0)")
	require.NoError(t, err)

	node, _ := g.Node(root)
	join, ok := node.Kind.(graph.Join)
	require.True(t, ok, "root kind = %T", node.Kind)
	assert.Equal(t, graph.Vec3, join.Type)
	assert.Len(t, join.Components, 3)

	// Single-argument constructor is a conversion.
	root, err = bindSource(t, g, NewBinder(g), "vec3(1.0)")
	require.NoError(t, err)
	node, _ = g.Node(root)
	conv, ok := node.Kind.(graph.Convert)
	require.True(t, ok, "root kind = %T", node.Kind)
	assert.Equal(t, graph.Vec3, conv.To)
}

func TestBindMemberAccess(t *testing.T) {
	g := graph.New()
	v := g.Add(graph.Uniform{Name: "u_color", Type: graph.Vec4})
	binder := NewBinder(g)
	binder.Define("color", v)

	root, err := bindSource(t, g, binder, "color.rgb")
	require.NoError(t, err)

	node, _ := g.Node(root)
	ext, ok := node.Kind.(graph.Extract)
	require.True(t, ok)
	assert.Equal(t, v, ext.Expr)
	assert.Equal(t, []graph.SwizzleComponent{graph.SwizzleX, graph.SwizzleY, graph.SwizzleZ}, ext.Pattern)
}

func TestBindConditional(t *testing.T) {
	g := graph.New()
	root, err := bindSource(t, g, NewBinder(g), "1.0 < 2.0 ? 3.0 : 4.0")
	require.NoError(t, err)

	node, _ := g.Node(root)
	sel, ok := node.Kind.(graph.Select)
	require.True(t, ok)

	condNode, _ := g.Node(sel.Condition)
	_, ok = condNode.Kind.(graph.Binary)
	assert.True(t, ok)
}

func TestBindUserFunction(t *testing.T) {
	g := graph.New()
	root, err := bindSource(t, g, NewBinder(g),
		"fn half(x: float) -> float { return x / 2.0; } half(4.0)")
	require.NoError(t, err)

	node, _ := g.Node(root)
	call, ok := node.Kind.(graph.Call)
	require.True(t, ok, "root kind = %T", node.Kind)

	fn, ok := g.Function(call.Function)
	require.True(t, ok)
	assert.Equal(t, "half", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, graph.Float, fn.Params[0].Type)
}

func TestBindUserFunctionArityMismatch(t *testing.T) {
	g := graph.New()
	_, err := bindSource(t, g, NewBinder(g),
		"fn half(x: float) -> float { return x / 2.0; } half(1.0, 2.0)")
	require.Error(t, err)

	srcErr := &SourceError{}
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrArityMismatch, srcErr.Code)
}

func TestBindUserFunctionArgumentTypeMismatch(t *testing.T) {
	g := graph.New()
	m := g.Add(graph.Context{Value: graph.ContextModelMatrix})
	binder := NewBinder(g)
	binder.Define("mvp", m)

	_, err := bindSource(t, g, binder,
		"fn half(x: float) -> float { return x / 2.0; } half(mvp)")
	require.Error(t, err)

	srcErr := &SourceError{}
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrTypeMismatch, srcErr.Code)
}

func TestBindUnknownAnnotationType(t *testing.T) {
	g := graph.New()
	_, err := bindSource(t, g, NewBinder(g), "var x: quaternion = 1.0;")
	require.Error(t, err)

	srcErr := &SourceError{}
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrUnsupportedTargetType, srcErr.Code)
}

func TestBindNoHoisting(t *testing.T) {
	g := graph.New()
	_, err := bindSource(t, g, NewBinder(g), "var a: float = b; var b: float = 1.0;")
	require.Error(t, err)

	srcErr := &SourceError{}
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrUndefinedSymbol, srcErr.Code)
}
