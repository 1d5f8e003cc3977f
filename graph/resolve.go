package graph

// ResolveType computes the natural output type of a node, before any
// consumer-requested coercion. Returns false when the handle is invalid or
// the node references missing children; the validator reports those cases
// as diagnostics rather than failing the resolution pass.
func ResolveType(g *Graph, handle NodeHandle) (Type, bool) {
	node, ok := g.Node(handle)
	if !ok {
		return Type{}, false
	}

	switch k := node.Kind.(type) {
	case Literal:
		switch k.Value.(type) {
		case LiteralFloat:
			return Float, true
		case LiteralInt:
			return Int, true
		case LiteralUint:
			return Uint, true
		case LiteralBool:
			return Bool, true
		default:
			return Type{}, false
		}

	case Uniform:
		return k.Type, true

	case Attribute:
		return k.Type, true

	case Varying:
		return k.Type, true

	case Builtin:
		return builtinType(k.Builtin), true

	case Context:
		return ContextType(k.Value), true

	case Unary:
		if k.Op == UnaryLogicalNot {
			return Bool, true
		}
		return ResolveType(g, k.Expr)

	case Binary:
		if k.Op.IsComparison() || k.Op.IsLogical() {
			return Bool, true
		}
		left, lok := ResolveType(g, k.Left)
		right, rok := ResolveType(g, k.Right)
		if !lok || !rok {
			return Type{}, false
		}
		return binaryResultType(k.Op, left, right), true

	case Math:
		return mathResultType(g, k)

	case Convert:
		return k.To, true

	case Extract:
		base, ok := ResolveType(g, k.Expr)
		if !ok {
			return Type{}, false
		}
		if len(k.Pattern) == 1 {
			return Scalar(base.Scalar), true
		}
		return Vector(base.Scalar, uint8(len(k.Pattern))), true

	case Join:
		return k.Type, true

	case Select:
		return ResolveType(g, k.Accept)

	case Argument:
		return k.Type, true

	case Call:
		fn, ok := g.Function(k.Function)
		if !ok {
			return Type{}, false
		}
		return fn.Result, true

	default:
		return Type{}, false
	}
}

// binaryResultType applies the widening rules for arithmetic operators:
// vectors win over scalars, matrix multiplication follows linear algebra
// shapes, and mixed scalar kinds resolve toward the left operand.
func binaryResultType(op BinaryOperator, left, right Type) Type {
	if op == BinaryMultiply {
		switch {
		case left.IsMatrix() && right.IsVector():
			return right
		case left.IsVector() && right.IsMatrix():
			return left
		case left.IsMatrix() && right.IsMatrix():
			return left
		}
	}
	if left.IsMatrix() {
		return left
	}
	if right.IsMatrix() {
		return right
	}
	if left.IsVector() {
		return left
	}
	if right.IsVector() {
		return right
	}
	return left
}

func mathResultType(g *Graph, k Math) (Type, bool) {
	if len(k.Args) == 0 {
		return Type{}, false
	}
	arg, ok := ResolveType(g, k.Args[0])
	if !ok {
		return Type{}, false
	}

	switch k.Fun {
	case MathLength, MathDistance, MathDot:
		return Scalar(arg.Scalar), true
	case MathCross:
		return Vec3, true
	default:
		return arg, true
	}
}

func builtinType(b BuiltinValue) Type {
	switch b {
	case BuiltinVertexIndex, BuiltinInstanceIndex:
		return Int
	case BuiltinFragCoord:
		return Vec4
	case BuiltinFrontFacing:
		return Bool
	case BuiltinGlobalInvocationID, BuiltinLocalInvocationID, BuiltinWorkGroupID:
		return Vector(ScalarUint, 3)
	default:
		return Float
	}
}

// ContextType returns the type of an ambient host-supplied value.
func ContextType(c ContextValue) Type {
	switch c {
	case ContextTime:
		return Float
	case ContextResolution:
		return Vec2
	case ContextModelMatrix, ContextViewMatrix, ContextProjectionMatrix:
		return Mat4
	case ContextCameraPosition:
		return Vec3
	default:
		return Float
	}
}

// BuiltinStage returns the name of the only stage in which the builtin is
// usable.
func BuiltinStage(b BuiltinValue) string {
	switch b {
	case BuiltinVertexIndex, BuiltinInstanceIndex:
		return "vertex"
	case BuiltinFragCoord, BuiltinFrontFacing:
		return "fragment"
	default:
		return "compute"
	}
}
