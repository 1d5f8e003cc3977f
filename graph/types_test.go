package graph

import (
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Float, "float"},
		{Int, "int"},
		{Uint, "uint"},
		{Bool, "bool"},
		{Vec2, "vec2"},
		{Vec3, "vec3"},
		{Vec4, "vec4"},
		{Vector(ScalarSint, 3), "ivec3"},
		{Vector(ScalarUint, 2), "uvec2"},
		{Vector(ScalarBool, 4), "bvec4"},
		{Mat2, "mat2"},
		{Mat4, "mat4"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypeByName(t *testing.T) {
	for _, name := range []string{"float", "int", "uint", "bool", "vec2", "vec3", "vec4", "ivec3", "uvec4", "bvec2", "mat2", "mat3", "mat4"} {
		typ, ok := TypeByName(name)
		if !ok {
			t.Errorf("TypeByName(%q) not found", name)
			continue
		}
		if typ.String() != name {
			t.Errorf("TypeByName(%q).String() = %q", name, typ.String())
		}
	}

	if _, ok := TypeByName("quaternion"); ok {
		t.Error("TypeByName accepted an unknown name")
	}
}

func TestConvertible(t *testing.T) {
	tests := []struct {
		from, to Type
		want     bool
	}{
		{Float, Int, true},
		{Float, Vec3, true},   // broadcast
		{Vec4, Float, true},   // truncation
		{Vec4, Vec2, true},    // shrink
		{Vec2, Vec4, true},    // grow
		{Mat3, Mat4, true},    // matrix cast
		{Mat4, Vec4, false},   // matrix to vector
		{Vec4, Mat4, false},   // vector to matrix
		{Float, Mat2, false},  // scalar to matrix
		{Mat2, Float, false},  // matrix to scalar
		{Bool, Float, true},   // scalar cast
		{Vec3, Vector(ScalarSint, 3), true},
	}

	for _, tt := range tests {
		if got := Convertible(tt.from, tt.to); got != tt.want {
			t.Errorf("Convertible(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConversionHints(t *testing.T) {
	if hint := ConversionHint(Vec4, Float); hint == "" {
		t.Error("expected a truncation hint for vec4 -> float")
	}
	if hint := ConversionHint(Float, Vec3); hint == "" {
		t.Error("expected a broadcast hint for float -> vec3")
	}
	if hint := ConversionHint(Vec4, Vec2); hint == "" {
		t.Error("expected a swizzle hint for vec4 -> vec2")
	}
	if hint := ConversionHint(Float, Int); hint != "" {
		t.Errorf("unexpected hint for float -> int: %q", hint)
	}
	if hint := ConversionHint(Vec2, Vec4); hint != "" {
		t.Errorf("unexpected hint for vec2 -> vec4: %q", hint)
	}
}

func TestLanes(t *testing.T) {
	if Float.Lanes() != 1 {
		t.Errorf("Float.Lanes() = %d", Float.Lanes())
	}
	if Vec3.Lanes() != 3 {
		t.Errorf("Vec3.Lanes() = %d", Vec3.Lanes())
	}
	if Mat4.Lanes() != 16 {
		t.Errorf("Mat4.Lanes() = %d", Mat4.Lanes())
	}
}
