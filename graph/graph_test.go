package graph

import (
	"testing"
)

func TestArenaAddAndLookup(t *testing.T) {
	g := New()

	a := g.Add(Literal{Value: LiteralFloat(1)})
	b := g.Add(Literal{Value: LiteralFloat(2)})
	sum := g.AddNamed(Binary{Op: BinaryAdd, Left: a, Right: b}, "sum")

	if g.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", g.Count())
	}

	node, ok := g.Node(sum)
	if !ok {
		t.Fatal("Node(sum) not found")
	}
	if node.Name != "sum" {
		t.Errorf("Name = %q, want %q", node.Name, "sum")
	}
	bin, ok := node.Kind.(Binary)
	if !ok {
		t.Fatalf("Kind = %T, want Binary", node.Kind)
	}
	if bin.Left != a || bin.Right != b {
		t.Error("Binary operands do not match the added handles")
	}

	if _, ok := g.Node(NodeHandle(99)); ok {
		t.Error("Node(99) should not resolve")
	}
}

func TestSharedChildIsOneNode(t *testing.T) {
	g := New()

	shared := g.Add(Uniform{Name: "u_color", Type: Vec3})
	left := g.Add(Extract{Expr: shared, Pattern: []SwizzleComponent{SwizzleX}})
	right := g.Add(Extract{Expr: shared, Pattern: []SwizzleComponent{SwizzleY}})
	g.Add(Binary{Op: BinaryAdd, Left: left, Right: right})

	// Two parents, one arena slot.
	if g.Count() != 4 {
		t.Errorf("Count() = %d, want 4", g.Count())
	}
}

func TestDependencies(t *testing.T) {
	g := New()

	cond := g.Add(Literal{Value: LiteralBool(true)})
	a := g.Add(Literal{Value: LiteralFloat(1)})
	b := g.Add(Literal{Value: LiteralFloat(2)})
	sel := g.Add(Select{Condition: cond, Accept: a, Reject: b})

	edges := g.Dependencies(sel)
	if len(edges) != 3 {
		t.Fatalf("Dependencies = %d edges, want 3", len(edges))
	}
	if edges[0].Slot != "condition" || !edges[0].HasExpected || edges[0].Expected != Bool {
		t.Errorf("condition edge = %+v", edges[0])
	}
	if edges[1].Node != a || edges[2].Node != b {
		t.Error("accept/reject edges out of order")
	}
}

func TestCallDependenciesUseParamNames(t *testing.T) {
	g := New()

	arg := g.Add(Argument{Index: 0, Type: Float})
	body := g.Add(Binary{Op: BinaryMultiply, Left: arg, Right: arg})
	fn := g.AddFunction(Function{
		Name:   "square",
		Params: []Param{{Name: "x", Type: Float}},
		Result: Float,
		Body:   body,
	})

	v := g.Add(Literal{Value: LiteralFloat(3)})
	call := g.Add(Call{Function: fn, Args: []NodeHandle{v}})

	edges := g.Dependencies(call)
	if len(edges) != 1 {
		t.Fatalf("Dependencies = %d edges, want 1", len(edges))
	}
	if edges[0].Slot != "x" || !edges[0].HasExpected || edges[0].Expected != Float {
		t.Errorf("call edge = %+v", edges[0])
	}
}
