package graph

// NodeKind is the closed tagged union of node behaviors. Every kind is a
// struct variant carrying its own payload; backends dispatch on the
// concrete type. Adding a kind means touching resolve, validate and every
// backend, deliberately.
type NodeKind interface {
	nodeKind()
}

// Literal is a constant value.
type Literal struct {
	Value LiteralValue
}

func (Literal) nodeKind() {}

// LiteralValue is the value of a Literal node.
type LiteralValue interface {
	literalValue()
}

// LiteralFloat is a floating point literal.
type LiteralFloat float64

func (LiteralFloat) literalValue() {}

// LiteralInt is a signed integer literal.
type LiteralInt int32

func (LiteralInt) literalValue() {}

// LiteralUint is an unsigned integer literal.
type LiteralUint uint32

func (LiteralUint) literalValue() {}

// LiteralBool is a boolean literal.
type LiteralBool bool

func (LiteralBool) literalValue() {}

// Uniform reads a named uniform. Building it registers the uniform in the
// pass symbol table.
type Uniform struct {
	Name string
	Type Type
}

func (Uniform) nodeKind() {}

// Attribute reads a named vertex attribute. Valid in the vertex stage only.
type Attribute struct {
	Name string
	Type Type
}

func (Attribute) nodeKind() {}

// Varying carries a value from the vertex stage to the fragment stage.
// In a vertex pass the Value subgraph is built and assigned to the varying;
// in a fragment pass the varying is read and Value is left untouched.
type Varying struct {
	Name          string
	Type          Type
	Interpolation Interpolation
	Value         NodeHandle
}

func (Varying) nodeKind() {}

// Interpolation is the varying interpolation qualifier.
type Interpolation uint8

const (
	InterpSmooth Interpolation = iota
	InterpFlat
	InterpNoPerspective
)

// String returns the target-language qualifier.
func (i Interpolation) String() string {
	switch i {
	case InterpFlat:
		return "flat"
	case InterpNoPerspective:
		return "noperspective"
	default:
		return "smooth"
	}
}

// Builtin reads a stage built-in value. Using a builtin outside its stage
// is an InvalidStage compile error.
type Builtin struct {
	Builtin BuiltinValue
}

func (Builtin) nodeKind() {}

// BuiltinValue enumerates stage built-ins.
type BuiltinValue uint8

const (
	// Vertex stage
	BuiltinVertexIndex BuiltinValue = iota
	BuiltinInstanceIndex

	// Fragment stage
	BuiltinFragCoord
	BuiltinFrontFacing

	// Compute stage
	BuiltinGlobalInvocationID
	BuiltinLocalInvocationID
	BuiltinWorkGroupID
)

// Context reads an ambient value supplied by the host renderer (current
// transform matrices, camera, time). Building it without a configured
// binding is a MissingContext compile error.
type Context struct {
	Value ContextValue
}

func (Context) nodeKind() {}

// ContextValue enumerates ambient host-supplied values.
type ContextValue uint8

const (
	ContextTime ContextValue = iota
	ContextResolution
	ContextModelMatrix
	ContextViewMatrix
	ContextProjectionMatrix
	ContextCameraPosition
)

// String returns a stable name for diagnostics.
func (c ContextValue) String() string {
	switch c {
	case ContextTime:
		return "time"
	case ContextResolution:
		return "resolution"
	case ContextModelMatrix:
		return "model matrix"
	case ContextViewMatrix:
		return "view matrix"
	case ContextProjectionMatrix:
		return "projection matrix"
	case ContextCameraPosition:
		return "camera position"
	default:
		return "unknown"
	}
}

// Unary applies a unary operator.
type Unary struct {
	Op   UnaryOperator
	Expr NodeHandle
}

func (Unary) nodeKind() {}

// UnaryOperator enumerates unary operations.
type UnaryOperator uint8

const (
	UnaryNegate     UnaryOperator = iota // Arithmetic negation
	UnaryLogicalNot                      // Logical not (!)
)

// Binary applies a binary operator.
type Binary struct {
	Op    BinaryOperator
	Left  NodeHandle
	Right NodeHandle
}

func (Binary) nodeKind() {}

// BinaryOperator enumerates binary operations.
type BinaryOperator uint8

const (
	BinaryAdd BinaryOperator = iota
	BinarySubtract
	BinaryMultiply
	BinaryDivide
	BinaryModulo

	BinaryEqual
	BinaryNotEqual
	BinaryLess
	BinaryLessEqual
	BinaryGreater
	BinaryGreaterEqual

	BinaryLogicalAnd
	BinaryLogicalOr
)

// IsComparison reports whether the operator yields a boolean.
func (op BinaryOperator) IsComparison() bool {
	return op >= BinaryEqual && op <= BinaryGreaterEqual
}

// IsLogical reports whether the operator consumes and yields booleans.
func (op BinaryOperator) IsLogical() bool {
	return op == BinaryLogicalAnd || op == BinaryLogicalOr
}

// Math applies a built-in mathematical function.
type Math struct {
	Fun  MathFunction
	Args []NodeHandle
}

func (Math) nodeKind() {}

// MathFunction enumerates built-in mathematical functions.
type MathFunction uint8

const (
	// Comparison
	MathAbs MathFunction = iota
	MathSign
	MathMin
	MathMax
	MathClamp

	// Trigonometric
	MathSin
	MathCos
	MathTan
	MathAsin
	MathAcos
	MathAtan

	// Decomposition
	MathFloor
	MathCeil
	MathFract

	// Exponential
	MathSqrt
	MathPow
	MathExp
	MathExp2
	MathLog
	MathLog2

	// Geometric
	MathLength
	MathDistance
	MathDot
	MathCross
	MathNormalize
	MathReflect
	MathRefract

	// Interpolation
	MathMix
	MathStep
	MathSmoothstep
)

// Arity returns the argument count the function requires.
func (f MathFunction) Arity() int {
	switch f {
	case MathMin, MathMax, MathPow, MathDistance, MathDot, MathCross,
		MathReflect, MathStep:
		return 2
	case MathClamp, MathMix, MathSmoothstep, MathRefract:
		return 3
	default:
		return 1
	}
}

// Convert coerces an expression to an explicit target type.
type Convert struct {
	To   Type
	Expr NodeHandle
}

func (Convert) nodeKind() {}

// Extract selects lanes from a vector (member access / swizzle).
type Extract struct {
	Expr    NodeHandle
	Pattern []SwizzleComponent
}

func (Extract) nodeKind() {}

// SwizzleComponent is a single lane in an Extract pattern.
type SwizzleComponent uint8

const (
	SwizzleX SwizzleComponent = 0
	SwizzleY SwizzleComponent = 1
	SwizzleZ SwizzleComponent = 2
	SwizzleW SwizzleComponent = 3
)

// Join constructs a composite value from components (vector constructor).
type Join struct {
	Type       Type
	Components []NodeHandle
}

func (Join) nodeKind() {}

// Select chooses between two values based on a boolean condition.
type Select struct {
	Condition NodeHandle
	Accept    NodeHandle
	Reject    NodeHandle
}

func (Select) nodeKind() {}

// Argument references a parameter of the enclosing declared function.
type Argument struct {
	Index uint32
	Type  Type
}

func (Argument) nodeKind() {}

// Call invokes a declared function.
type Call struct {
	Function FunctionHandle
	Args     []NodeHandle
}

func (Call) nodeKind() {}

// Function is a user-declared function. Its body is a node whose value is
// the function result.
type Function struct {
	Name   string
	Params []Param
	Result Type
	Body   NodeHandle
}

// Param is a declared function parameter.
type Param struct {
	Name string
	Type Type
}
