package sgsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// Binder lowers an AST into graph nodes, resolving names via a stack of
// lexical scopes. Binding aborts on the first error.
type Binder struct {
	graph  *graph.Graph
	scopes []map[string]graph.NodeHandle
	funcs  map[string]graph.FunctionHandle
	source string
}

// NewBinder creates a binder that appends nodes to the given graph.
func NewBinder(g *graph.Graph) *Binder {
	return &Binder{
		graph:  g,
		scopes: []map[string]graph.NodeHandle{make(map[string]graph.NodeHandle)},
		funcs:  make(map[string]graph.FunctionHandle),
	}
}

// Define installs a host-provided symbol in the outermost scope. Use this
// to expose uniforms, attributes, or any pre-built node to source text.
func (b *Binder) Define(name string, handle graph.NodeHandle) {
	b.scopes[0][name] = handle
}

// Bind walks the program and returns the handle of its result value: the
// value of the last value-producing statement.
func (b *Binder) Bind(program *Program, source string) (graph.NodeHandle, error) {
	b.source = source

	var root graph.NodeHandle
	hasRoot := false

	for _, stmt := range program.Stmts {
		handle, produced, err := b.bindStmt(stmt)
		if err != nil {
			return 0, err
		}
		if produced {
			root = handle
			hasRoot = true
		}
	}

	if !hasRoot {
		return 0, NewSourceError(ErrSyntax, "program produces no value", Span{}, source)
	}
	return root, nil
}

// bindStmt binds one statement. The second result reports whether the
// statement produced a value usable as the program result.
func (b *Binder) bindStmt(stmt Stmt) (graph.NodeHandle, bool, error) {
	switch s := stmt.(type) {
	case *VarDecl:
		handle, err := b.bindVarDecl(s)
		return handle, err == nil, err

	case *FuncDecl:
		return 0, false, b.bindFuncDecl(s)

	case *ReturnStmt:
		handle, err := b.bindExpr(s.Value)
		return handle, err == nil, err

	case *ExprStmt:
		handle, err := b.bindExpr(s.Expr)
		return handle, err == nil, err

	default:
		return 0, false, NewSourceError(ErrSyntax, "unsupported statement", stmt.Pos(), b.source)
	}
}

func (b *Binder) bindVarDecl(decl *VarDecl) (graph.NodeHandle, error) {
	handle, err := b.bindExpr(decl.Init)
	if err != nil {
		return 0, err
	}

	if decl.TypeName != "" {
		want, ok := graph.TypeByName(decl.TypeName)
		if !ok {
			return 0, NewSourceErrorf(ErrUnsupportedTargetType, decl.Span, b.source,
				"unknown type %q", decl.TypeName)
		}
		handle, err = b.coerce(handle, want, decl.Span)
		if err != nil {
			return 0, err
		}
	}

	b.scope()[decl.Name] = handle
	return handle, nil
}

func (b *Binder) bindFuncDecl(decl *FuncDecl) error {
	params := make([]graph.Param, len(decl.Params))
	for i, p := range decl.Params {
		typ, ok := graph.TypeByName(p.TypeName)
		if !ok {
			return NewSourceErrorf(ErrUnsupportedTargetType, p.Span, b.source,
				"unknown type %q", p.TypeName)
		}
		params[i] = graph.Param{Name: p.Name, Type: typ}
	}
	result, ok := graph.TypeByName(decl.ReturnType)
	if !ok {
		return NewSourceErrorf(ErrUnsupportedTargetType, decl.Span, b.source,
			"unknown type %q", decl.ReturnType)
	}

	b.push()
	for i, p := range params {
		b.scope()[p.Name] = b.graph.Add(graph.Argument{Index: uint32(i), Type: p.Type})
	}

	var body graph.NodeHandle
	hasBody := false
	for _, stmt := range decl.Body {
		handle, produced, err := b.bindStmt(stmt)
		if err != nil {
			b.pop()
			return err
		}
		if produced {
			body = handle
			hasBody = true
		}
	}
	b.pop()

	if !hasBody {
		return NewSourceErrorf(ErrSyntax, decl.Span, b.source,
			"function %q has no return value", decl.Name)
	}

	body, err := b.coerce(body, result, decl.Span)
	if err != nil {
		return err
	}

	b.funcs[decl.Name] = b.graph.AddFunction(graph.Function{
		Name:   decl.Name,
		Params: params,
		Result: result,
		Body:   body,
	})
	return nil
}

func (b *Binder) bindExpr(expr Expr) (graph.NodeHandle, error) {
	switch e := expr.(type) {
	case *NumberExpr:
		return b.bindNumber(e)

	case *BoolExpr:
		return b.graph.Add(graph.Literal{Value: graph.LiteralBool(e.Value)}), nil

	case *IdentExpr:
		for i := len(b.scopes) - 1; i >= 0; i-- {
			if handle, ok := b.scopes[i][e.Name]; ok {
				return handle, nil
			}
		}
		return 0, NewSourceErrorf(ErrUndefinedSymbol, e.Span, b.source,
			"undefined symbol %q", e.Name)

	case *UnaryExpr:
		operand, err := b.bindExpr(e.Expr)
		if err != nil {
			return 0, err
		}
		op := graph.UnaryNegate
		if e.Op == TokenBang {
			op = graph.UnaryLogicalNot
		}
		return b.graph.Add(graph.Unary{Op: op, Expr: operand}), nil

	case *BinaryExpr:
		left, err := b.bindExpr(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := b.bindExpr(e.Right)
		if err != nil {
			return 0, err
		}
		op, ok := binaryOps[e.Op]
		if !ok {
			return 0, NewSourceErrorf(ErrSyntax, e.Span, b.source,
				"unsupported operator %s", e.Op)
		}
		return b.graph.Add(graph.Binary{Op: op, Left: left, Right: right}), nil

	case *CallExpr:
		return b.bindCall(e)

	case *MemberExpr:
		return b.bindMember(e)

	case *CondExpr:
		cond, err := b.bindExpr(e.Cond)
		if err != nil {
			return 0, err
		}
		accept, err := b.bindExpr(e.Accept)
		if err != nil {
			return 0, err
		}
		reject, err := b.bindExpr(e.Reject)
		if err != nil {
			return 0, err
		}
		return b.graph.Add(graph.Select{Condition: cond, Accept: accept, Reject: reject}), nil

	default:
		return 0, NewSourceError(ErrSyntax, "unsupported expression", expr.Pos(), b.source)
	}
}

func (b *Binder) bindNumber(e *NumberExpr) (graph.NodeHandle, error) {
	text := e.Text
	if strings.HasSuffix(text, "u") {
		v, err := strconv.ParseUint(strings.TrimSuffix(text, "u"), 10, 32)
		if err != nil {
			return 0, NewSourceErrorf(ErrSyntax, e.Span, b.source, "invalid literal %q", text)
		}
		return b.graph.Add(graph.Literal{Value: graph.LiteralUint(v)}), nil
	}
	if strings.ContainsAny(text, ".eE") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, NewSourceErrorf(ErrSyntax, e.Span, b.source, "invalid literal %q", text)
		}
		return b.graph.Add(graph.Literal{Value: graph.LiteralFloat(v)}), nil
	}
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, NewSourceErrorf(ErrSyntax, e.Span, b.source, "invalid literal %q", text)
	}
	return b.graph.Add(graph.Literal{Value: graph.LiteralInt(int32(v))}), nil
}

// bindCall resolves a callee name against, in order, known math intrinsics,
// target type names acting as constructors, and declared user functions.
func (b *Binder) bindCall(e *CallExpr) (graph.NodeHandle, error) {
	args := make([]graph.NodeHandle, len(e.Args))
	for i, arg := range e.Args {
		handle, err := b.bindExpr(arg)
		if err != nil {
			return 0, err
		}
		args[i] = handle
	}

	if fun, ok := intrinsics[e.Callee]; ok {
		if len(args) != fun.Arity() {
			return 0, NewSourceErrorf(ErrArityMismatch, e.Span, b.source,
				"%s takes %d argument(s), got %d", e.Callee, fun.Arity(), len(args))
		}
		return b.graph.Add(graph.Math{Fun: fun, Args: args}), nil
	}

	if typ, ok := graph.TypeByName(e.Callee); ok {
		if len(args) == 0 {
			return 0, NewSourceErrorf(ErrArityMismatch, e.Span, b.source,
				"%s constructor needs at least one argument", e.Callee)
		}
		if len(args) == 1 {
			return b.graph.Add(graph.Convert{To: typ, Expr: args[0]}), nil
		}
		return b.graph.Add(graph.Join{Type: typ, Components: args}), nil
	}

	if fh, ok := b.funcs[e.Callee]; ok {
		fn, _ := b.graph.Function(fh)
		if len(args) != len(fn.Params) {
			return 0, NewSourceErrorf(ErrArityMismatch, e.Span, b.source,
				"%s takes %d argument(s), got %d", e.Callee, len(fn.Params), len(args))
		}
		for i, arg := range args {
			got, ok := graph.ResolveType(b.graph, arg)
			if !ok {
				continue
			}
			if got != fn.Params[i].Type && !graph.Convertible(got, fn.Params[i].Type) {
				return 0, NewSourceErrorf(ErrTypeMismatch, e.Span, b.source,
					"argument %d of %s: cannot convert %s to %s",
					i+1, e.Callee, got, fn.Params[i].Type)
			}
		}
		return b.graph.Add(graph.Call{Function: fh, Args: args}), nil
	}

	return 0, NewSourceErrorf(ErrUndefinedSymbol, e.Span, b.source,
		"undefined function %q", e.Callee)
}

func (b *Binder) bindMember(e *MemberExpr) (graph.NodeHandle, error) {
	base, err := b.bindExpr(e.Expr)
	if err != nil {
		return 0, err
	}

	pattern := make([]graph.SwizzleComponent, 0, len(e.Member))
	for _, c := range e.Member {
		comp, ok := swizzles[c]
		if !ok {
			return 0, NewSourceErrorf(ErrSyntax, e.Span, b.source,
				"invalid component %q in %q", string(c), e.Member)
		}
		pattern = append(pattern, comp)
	}
	if len(pattern) == 0 || len(pattern) > 4 {
		return 0, NewSourceErrorf(ErrSyntax, e.Span, b.source,
			"invalid swizzle %q", e.Member)
	}

	return b.graph.Add(graph.Extract{Expr: base, Pattern: pattern}), nil
}

// coerce adapts a node to the wanted type. Integer literals retype in
// place instead of going through a cast so that "var x: float = 2;" yields
// a plain float constant.
func (b *Binder) coerce(handle graph.NodeHandle, want graph.Type, span Span) (graph.NodeHandle, error) {
	got, ok := graph.ResolveType(b.graph, handle)
	if !ok || got == want {
		return handle, nil
	}

	if node, found := b.graph.Node(handle); found && want == graph.Float {
		if lit, isLit := node.Kind.(graph.Literal); isLit {
			switch v := lit.Value.(type) {
			case graph.LiteralInt:
				return b.graph.Add(graph.Literal{Value: graph.LiteralFloat(float64(v))}), nil
			case graph.LiteralUint:
				return b.graph.Add(graph.Literal{Value: graph.LiteralFloat(float64(v))}), nil
			}
		}
	}

	if !graph.Convertible(got, want) {
		return 0, NewSourceErrorf(ErrTypeMismatch, span, b.source,
			"cannot convert %s to %s", got, want)
	}
	return b.graph.Add(graph.Convert{To: want, Expr: handle}), nil
}

func (b *Binder) scope() map[string]graph.NodeHandle {
	return b.scopes[len(b.scopes)-1]
}

func (b *Binder) push() {
	b.scopes = append(b.scopes, make(map[string]graph.NodeHandle))
}

func (b *Binder) pop() {
	b.scopes = b.scopes[:len(b.scopes)-1]
}

var binaryOps = map[TokenKind]graph.BinaryOperator{
	TokenPlus:         graph.BinaryAdd,
	TokenMinus:        graph.BinarySubtract,
	TokenStar:         graph.BinaryMultiply,
	TokenSlash:        graph.BinaryDivide,
	TokenPercent:      graph.BinaryModulo,
	TokenEqualEqual:   graph.BinaryEqual,
	TokenBangEqual:    graph.BinaryNotEqual,
	TokenLess:         graph.BinaryLess,
	TokenLessEqual:    graph.BinaryLessEqual,
	TokenGreater:      graph.BinaryGreater,
	TokenGreaterEqual: graph.BinaryGreaterEqual,
	TokenAmpAmp:       graph.BinaryLogicalAnd,
	TokenPipePipe:     graph.BinaryLogicalOr,
}

var intrinsics = map[string]graph.MathFunction{
	"abs":        graph.MathAbs,
	"sign":       graph.MathSign,
	"min":        graph.MathMin,
	"max":        graph.MathMax,
	"clamp":      graph.MathClamp,
	"sin":        graph.MathSin,
	"cos":        graph.MathCos,
	"tan":        graph.MathTan,
	"asin":       graph.MathAsin,
	"acos":       graph.MathAcos,
	"atan":       graph.MathAtan,
	"floor":      graph.MathFloor,
	"ceil":       graph.MathCeil,
	"fract":      graph.MathFract,
	"sqrt":       graph.MathSqrt,
	"pow":        graph.MathPow,
	"exp":        graph.MathExp,
	"exp2":       graph.MathExp2,
	"log":        graph.MathLog,
	"log2":       graph.MathLog2,
	"length":     graph.MathLength,
	"distance":   graph.MathDistance,
	"dot":        graph.MathDot,
	"cross":      graph.MathCross,
	"normalize":  graph.MathNormalize,
	"reflect":    graph.MathReflect,
	"refract":    graph.MathRefract,
	"mix":        graph.MathMix,
	"step":       graph.MathStep,
	"smoothstep": graph.MathSmoothstep,
}

var swizzles = map[rune]graph.SwizzleComponent{
	'x': graph.SwizzleX, 'y': graph.SwizzleY, 'z': graph.SwizzleZ, 'w': graph.SwizzleW,
	'r': graph.SwizzleX, 'g': graph.SwizzleY, 'b': graph.SwizzleZ, 'a': graph.SwizzleW,
}
