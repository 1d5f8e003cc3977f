// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// generate emits the expression for one node at its natural type. Callers
// go through Build, which handles per-pass caching and local promotion.
func (b *Builder) generate(handle graph.NodeHandle) (string, error) {
	node, ok := b.graph.Node(handle)
	if !ok {
		return "", newError(ErrInvalidNode, handle, "dangling node handle")
	}

	switch k := node.Kind.(type) {
	case graph.Literal:
		return formatLiteral(k.Value), nil

	case graph.Uniform:
		return escapeKeyword(k.Name), nil

	case graph.Attribute:
		return escapeKeyword(k.Name), nil

	case graph.Varying:
		return escapeKeyword(k.Name), nil

	case graph.Builtin:
		return builtinName(k.Builtin), nil

	case graph.Context:
		name, _, bound := b.options.Context.uniform(k.Value)
		if !bound {
			return "", newError(ErrMissingContext, handle,
				"no uniform binding configured for %s", k.Value)
		}
		return name, nil

	case graph.Unary:
		if k.Op == graph.UnaryLogicalNot {
			expr, err := b.Build(k.Expr, graph.Bool)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("(!%s)", expr), nil
		}
		expr, err := b.buildNatural(k.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(-%s)", expr), nil

	case graph.Binary:
		return b.generateBinary(k)

	case graph.Math:
		args := make([]string, len(k.Args))
		for i, arg := range k.Args {
			expr, err := b.buildNatural(arg)
			if err != nil {
				return "", err
			}
			args[i] = expr
		}
		return fmt.Sprintf("%s(%s)", mathName(k.Fun), strings.Join(args, ", ")), nil

	case graph.Convert:
		expr, err := b.buildNatural(k.Expr)
		if err != nil {
			return "", err
		}
		from, ok := graph.ResolveType(b.graph, k.Expr)
		if !ok {
			return "", newError(ErrInvalidNode, handle, "conversion source has no type")
		}
		return b.coerce(expr, from, k.To, handle)

	case graph.Extract:
		base, err := b.buildNatural(k.Expr)
		if err != nil {
			return "", err
		}
		return base + "." + swizzleString(k.Pattern), nil

	case graph.Join:
		if len(k.Components) == 0 {
			return "", newError(ErrInvalidNode, handle, "constructor has no components")
		}
		parts := make([]string, len(k.Components))
		for i, comp := range k.Components {
			expr, err := b.buildNatural(comp)
			if err != nil {
				return "", err
			}
			parts[i] = expr
		}
		return fmt.Sprintf("%s(%s)", k.Type, strings.Join(parts, ", ")), nil

	case graph.Select:
		cond, err := b.Build(k.Condition, graph.Bool)
		if err != nil {
			return "", err
		}
		accept, err := b.buildNatural(k.Accept)
		if err != nil {
			return "", err
		}
		acceptType, _ := graph.ResolveType(b.graph, k.Accept)
		reject, err := b.Build(k.Reject, acceptType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s ? %s : %s)", cond, accept, reject), nil

	case graph.Argument:
		if b.argNames == nil || int(k.Index) >= len(b.argNames) {
			return "", newError(ErrInvalidNode, handle,
				"argument %d used outside a function body", k.Index)
		}
		return b.argNames[k.Index], nil

	case graph.Call:
		fn, ok := b.graph.Function(k.Function)
		if !ok {
			return "", newError(ErrUndefinedFunction, handle,
				"call references undeclared function %d", k.Function)
		}
		args := make([]string, len(k.Args))
		for i, arg := range k.Args {
			var expected graph.Type
			if i < len(fn.Params) {
				expected = fn.Params[i].Type
			}
			expr, err := b.Build(arg, expected)
			if err != nil {
				return "", err
			}
			args[i] = expr
		}
		return fmt.Sprintf("%s(%s)", b.funcNames[k.Function], strings.Join(args, ", ")), nil

	default:
		return "", newError(ErrInvalidNode, handle, "unknown node kind %T", node.Kind)
	}
}

func (b *Builder) generateBinary(k graph.Binary) (string, error) {
	if k.Op.IsLogical() {
		left, err := b.Build(k.Left, graph.Bool)
		if err != nil {
			return "", err
		}
		right, err := b.Build(k.Right, graph.Bool)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", left, operatorString(k.Op), right), nil
	}

	left, err := b.buildNatural(k.Left)
	if err != nil {
		return "", err
	}
	right, err := b.buildNatural(k.Right)
	if err != nil {
		return "", err
	}

	// Float modulo has no % in GLSL.
	if k.Op == graph.BinaryModulo {
		if lt, ok := graph.ResolveType(b.graph, k.Left); ok && lt.Scalar == graph.ScalarFloat {
			return fmt.Sprintf("mod(%s, %s)", left, right), nil
		}
	}

	return fmt.Sprintf("(%s %s %s)", left, operatorString(k.Op), right), nil
}

// coerce adapts an expression from its natural type to the type its
// consumer requires, following the conversion rules shared with the
// validator. A zero expected type means "natural type", no coercion.
func (b *Builder) coerce(expr string, from, to graph.Type, handle graph.NodeHandle) (string, error) {
	if to == (graph.Type{}) || from == to {
		return expr, nil
	}
	if !graph.Convertible(from, to) {
		return "", newError(ErrUnsupportedConversion, handle,
			"cannot convert %s to %s", from, to)
	}

	switch {
	case from.IsScalar() && to.IsScalar():
		return fmt.Sprintf("%s(%s)", to, expr), nil

	case from.IsScalar() && to.IsVector():
		// Broadcast: every lane takes the scalar value.
		return fmt.Sprintf("%s(%s)", to, expr), nil

	case from.IsVector() && to.IsScalar():
		// Truncation: first lane only.
		first := expr + ".x"
		if from.Scalar != to.Scalar {
			return fmt.Sprintf("%s(%s)", to, first), nil
		}
		return first, nil

	case from.IsVector() && to.IsVector():
		switch {
		case from.Size == to.Size:
			return fmt.Sprintf("%s(%s)", to, expr), nil
		case from.Size > to.Size:
			// Shrink via ordered lane selection.
			shrunk := expr + "." + "xyzw"[:to.Size]
			if from.Scalar != to.Scalar {
				return fmt.Sprintf("%s(%s)", to, shrunk), nil
			}
			return shrunk, nil
		default:
			// Grow: pad new lanes with zero.
			pads := make([]string, 0, to.Size-from.Size)
			for i := from.Size; i < to.Size; i++ {
				pads = append(pads, zeroLiteral(to.Scalar))
			}
			return fmt.Sprintf("%s(%s, %s)", to, expr, strings.Join(pads, ", ")), nil
		}

	case from.IsMatrix() && to.IsMatrix():
		return fmt.Sprintf("%s(%s)", to, expr), nil
	}

	return "", newError(ErrUnsupportedConversion, handle,
		"cannot convert %s to %s", from, to)
}

// formatLiteral emits a constant. Float values that equal their integer
// truncation get a trailing ".0" so the target never reads them as ints.
func formatLiteral(v graph.LiteralValue) string {
	switch x := v.(type) {
	case graph.LiteralFloat:
		return formatFloat(float64(x))
	case graph.LiteralInt:
		return strconv.FormatInt(int64(x), 10)
	case graph.LiteralUint:
		return strconv.FormatUint(uint64(x), 10) + "u"
	case graph.LiteralBool:
		if x {
			return "true"
		}
		return "false"
	default:
		return "0.0"
	}
}

// formatFloat formats a float for GLSL output.
func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func zeroLiteral(kind graph.ScalarKind) string {
	switch kind {
	case graph.ScalarSint:
		return "0"
	case graph.ScalarUint:
		return "0u"
	case graph.ScalarBool:
		return "false"
	default:
		return "0.0"
	}
}

func swizzleString(pattern []graph.SwizzleComponent) string {
	const lanes = "xyzw"
	var sb strings.Builder
	for _, comp := range pattern {
		if int(comp) < len(lanes) {
			sb.WriteByte(lanes[comp])
		}
	}
	return sb.String()
}

func operatorString(op graph.BinaryOperator) string {
	switch op {
	case graph.BinaryAdd:
		return "+"
	case graph.BinarySubtract:
		return "-"
	case graph.BinaryMultiply:
		return "*"
	case graph.BinaryDivide:
		return "/"
	case graph.BinaryModulo:
		return "%"
	case graph.BinaryEqual:
		return "=="
	case graph.BinaryNotEqual:
		return "!="
	case graph.BinaryLess:
		return "<"
	case graph.BinaryLessEqual:
		return "<="
	case graph.BinaryGreater:
		return ">"
	case graph.BinaryGreaterEqual:
		return ">="
	case graph.BinaryLogicalAnd:
		return "&&"
	case graph.BinaryLogicalOr:
		return "||"
	default:
		return "?"
	}
}

func mathName(f graph.MathFunction) string {
	switch f {
	case graph.MathAbs:
		return "abs"
	case graph.MathSign:
		return "sign"
	case graph.MathMin:
		return "min"
	case graph.MathMax:
		return "max"
	case graph.MathClamp:
		return "clamp"
	case graph.MathSin:
		return "sin"
	case graph.MathCos:
		return "cos"
	case graph.MathTan:
		return "tan"
	case graph.MathAsin:
		return "asin"
	case graph.MathAcos:
		return "acos"
	case graph.MathAtan:
		return "atan"
	case graph.MathFloor:
		return "floor"
	case graph.MathCeil:
		return "ceil"
	case graph.MathFract:
		return "fract"
	case graph.MathSqrt:
		return "sqrt"
	case graph.MathPow:
		return "pow"
	case graph.MathExp:
		return "exp"
	case graph.MathExp2:
		return "exp2"
	case graph.MathLog:
		return "log"
	case graph.MathLog2:
		return "log2"
	case graph.MathLength:
		return "length"
	case graph.MathDistance:
		return "distance"
	case graph.MathDot:
		return "dot"
	case graph.MathCross:
		return "cross"
	case graph.MathNormalize:
		return "normalize"
	case graph.MathReflect:
		return "reflect"
	case graph.MathRefract:
		return "refract"
	case graph.MathMix:
		return "mix"
	case graph.MathStep:
		return "step"
	case graph.MathSmoothstep:
		return "smoothstep"
	default:
		return "abs"
	}
}

func builtinName(b graph.BuiltinValue) string {
	switch b {
	case graph.BuiltinVertexIndex:
		return "gl_VertexID"
	case graph.BuiltinInstanceIndex:
		return "gl_InstanceID"
	case graph.BuiltinFragCoord:
		return "gl_FragCoord"
	case graph.BuiltinFrontFacing:
		return "gl_FrontFacing"
	case graph.BuiltinGlobalInvocationID:
		return "gl_GlobalInvocationID"
	case graph.BuiltinLocalInvocationID:
		return "gl_LocalInvocationID"
	case graph.BuiltinWorkGroupID:
		return "gl_WorkGroupID"
	default:
		return "gl_FragCoord"
	}
}
