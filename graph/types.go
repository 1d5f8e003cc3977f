package graph

import "fmt"

// ScalarKind classifies the scalar component of a type.
type ScalarKind uint8

const (
	ScalarSint  ScalarKind = iota // Signed integer
	ScalarUint                    // Unsigned integer
	ScalarFloat                   // Floating point
	ScalarBool                    // Boolean
)

// String returns the shading-language name of the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case ScalarSint:
		return "int"
	case ScalarUint:
		return "uint"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	default:
		return "unknown"
	}
}

// TypeClass discriminates scalar, vector and matrix types.
type TypeClass uint8

const (
	ClassScalar TypeClass = iota
	ClassVector
	ClassMatrix
)

// Type describes the value produced by a node.
//
// Size is the lane count for vectors (2-4) and the dimension for square
// matrices (2-4); it is 1 for scalars. Matrices are always float.
type Type struct {
	Class  TypeClass
	Scalar ScalarKind
	Size   uint8
}

// Common types.
var (
	Float = Type{Class: ClassScalar, Scalar: ScalarFloat, Size: 1}
	Int   = Type{Class: ClassScalar, Scalar: ScalarSint, Size: 1}
	Uint  = Type{Class: ClassScalar, Scalar: ScalarUint, Size: 1}
	Bool  = Type{Class: ClassScalar, Scalar: ScalarBool, Size: 1}

	Vec2 = Type{Class: ClassVector, Scalar: ScalarFloat, Size: 2}
	Vec3 = Type{Class: ClassVector, Scalar: ScalarFloat, Size: 3}
	Vec4 = Type{Class: ClassVector, Scalar: ScalarFloat, Size: 4}

	Mat2 = Type{Class: ClassMatrix, Scalar: ScalarFloat, Size: 2}
	Mat3 = Type{Class: ClassMatrix, Scalar: ScalarFloat, Size: 3}
	Mat4 = Type{Class: ClassMatrix, Scalar: ScalarFloat, Size: 4}
)

// Vector returns the vector type with the given scalar kind and lane count.
func Vector(kind ScalarKind, lanes uint8) Type {
	return Type{Class: ClassVector, Scalar: kind, Size: lanes}
}

// Scalar returns the scalar type of the given kind.
func Scalar(kind ScalarKind) Type {
	return Type{Class: ClassScalar, Scalar: kind, Size: 1}
}

// IsScalar reports whether t is a scalar type.
func (t Type) IsScalar() bool { return t.Class == ClassScalar }

// IsVector reports whether t is a vector type.
func (t Type) IsVector() bool { return t.Class == ClassVector }

// IsMatrix reports whether t is a matrix type.
func (t Type) IsMatrix() bool { return t.Class == ClassMatrix }

// Lanes returns the number of scalar lanes: 1 for scalars, the lane count
// for vectors, Size*Size for matrices.
func (t Type) Lanes() int {
	switch t.Class {
	case ClassVector:
		return int(t.Size)
	case ClassMatrix:
		return int(t.Size) * int(t.Size)
	default:
		return 1
	}
}

// String returns the shading-language spelling of the type
// (e.g. "float", "ivec3", "mat4").
func (t Type) String() string {
	switch t.Class {
	case ClassScalar:
		return t.Scalar.String()
	case ClassVector:
		switch t.Scalar {
		case ScalarSint:
			return fmt.Sprintf("ivec%d", t.Size)
		case ScalarUint:
			return fmt.Sprintf("uvec%d", t.Size)
		case ScalarBool:
			return fmt.Sprintf("bvec%d", t.Size)
		default:
			return fmt.Sprintf("vec%d", t.Size)
		}
	case ClassMatrix:
		return fmt.Sprintf("mat%d", t.Size)
	default:
		return "unknown"
	}
}

// TypeByName maps a shading-language type name to its Type.
// Returns false for names that are not types.
func TypeByName(name string) (Type, bool) {
	switch name {
	case "float":
		return Float, true
	case "int":
		return Int, true
	case "uint":
		return Uint, true
	case "bool":
		return Bool, true
	case "vec2":
		return Vec2, true
	case "vec3":
		return Vec3, true
	case "vec4":
		return Vec4, true
	case "ivec2":
		return Vector(ScalarSint, 2), true
	case "ivec3":
		return Vector(ScalarSint, 3), true
	case "ivec4":
		return Vector(ScalarSint, 4), true
	case "uvec2":
		return Vector(ScalarUint, 2), true
	case "uvec3":
		return Vector(ScalarUint, 3), true
	case "uvec4":
		return Vector(ScalarUint, 4), true
	case "bvec2":
		return Vector(ScalarBool, 2), true
	case "bvec3":
		return Vector(ScalarBool, 3), true
	case "bvec4":
		return Vector(ScalarBool, 4), true
	case "mat2":
		return Mat2, true
	case "mat3":
		return Mat3, true
	case "mat4":
		return Mat4, true
	default:
		return Type{}, false
	}
}

// Convertible reports whether a value of type from can be coerced to type
// to by the emission-time conversion rules:
//
//   - scalar -> scalar: numeric cast
//   - scalar -> vector: broadcast to every lane
//   - vector -> scalar: truncation to the first lane (lossy)
//   - vector -> vector: lane-wise reinterpretation; shrinking keeps the
//     first lanes, growing pads new lanes with zero
//   - matrix -> matrix: direct constructor cast regardless of dimension
//
// Matrix values never convert to or from scalars or vectors.
func Convertible(from, to Type) bool {
	if from.IsMatrix() || to.IsMatrix() {
		return from.IsMatrix() && to.IsMatrix()
	}
	return true
}

// ConversionHint returns a suggested fix for a lossy or surprising
// conversion, or "" when the conversion needs no comment.
func ConversionHint(from, to Type) string {
	switch {
	case from.IsVector() && to.IsScalar():
		return fmt.Sprintf("conversion keeps only the first lane; use .%c to make the truncation explicit", laneNames[0])
	case from.IsScalar() && to.IsVector():
		return fmt.Sprintf("scalar is broadcast to all %d lanes; use %s(...) to join distinct components", to.Size, to)
	case from.IsVector() && to.IsVector() && from.Size > to.Size:
		return fmt.Sprintf("conversion keeps the first %d lanes; use a swizzle like .%s to select lanes explicitly", to.Size, string(laneNames[:to.Size]))
	default:
		return ""
	}
}

var laneNames = []byte{'x', 'y', 'z', 'w'}
