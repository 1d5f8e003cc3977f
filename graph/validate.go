package graph

import (
	"fmt"
)

// Validator performs static analysis over a graph. All passes run and all
// findings are collected; validation never stops at the first diagnostic.
type Validator struct {
	graph *Graph
	roots map[NodeHandle]struct{}

	visited map[NodeHandle]struct{}
	inStack map[NodeHandle]struct{}
	parent  map[NodeHandle]NodeHandle

	diags []Diagnostic
}

// Validate checks the graph reachable from the given roots plus the bodies
// of all declared functions. Disconnected-output detection additionally
// scans the whole arena, so stray nodes left behind by an editing session
// are reported even when unreachable.
func Validate(g *Graph, roots ...NodeHandle) []Diagnostic {
	v := &Validator{
		graph:   g,
		roots:   make(map[NodeHandle]struct{}, len(roots)),
		visited: make(map[NodeHandle]struct{}, g.Count()),
		inStack: make(map[NodeHandle]struct{}, 8),
		parent:  make(map[NodeHandle]NodeHandle, g.Count()),
		diags:   make([]Diagnostic, 0),
	}

	for _, root := range roots {
		v.roots[root] = struct{}{}
		v.collect(root, 0, false)
	}
	// Function bodies are implicit roots: they are reachable through Call
	// nodes at emission time but carry no direct dependency edge.
	for _, fn := range g.Functions() {
		v.roots[fn.Body] = struct{}{}
		v.collect(fn.Body, 0, false)
	}

	v.checkInputs()
	v.checkTypes()
	v.checkDisconnected()

	return v.diags
}

// collect runs the depth-first reachability walk and detects cycles using
// the recursion stack. Each back edge yields one CircularDependency
// diagnostic with the full cycle path.
func (v *Validator) collect(handle, from NodeHandle, hasFrom bool) {
	if _, ok := v.graph.Node(handle); !ok {
		return // dangling handles are reported by checkInputs
	}
	if _, onStack := v.inStack[handle]; onStack {
		if hasFrom {
			v.reportCycle(handle, from)
		}
		return
	}
	if _, seen := v.visited[handle]; seen {
		return
	}

	v.visited[handle] = struct{}{}
	v.inStack[handle] = struct{}{}

	for _, edge := range v.graph.Dependencies(handle) {
		if _, onStack := v.inStack[edge.Node]; !onStack {
			v.parent[edge.Node] = handle
		}
		v.collect(edge.Node, handle, true)
	}

	delete(v.inStack, handle)
}

// reportCycle reconstructs the cycle by walking recorded parent pointers
// from the node whose edge closed the cycle back to the revisited start
// node. The path starts and ends with the same node.
func (v *Validator) reportCycle(start, closer NodeHandle) {
	rev := make([]NodeHandle, 0, 4)
	cur := closer
	for cur != start {
		rev = append(rev, cur)
		next, ok := v.parent[cur]
		if !ok {
			break
		}
		cur = next
	}

	chain := make([]NodeHandle, 0, len(rev)+2)
	chain = append(chain, start)
	for i := len(rev) - 1; i >= 0; i-- {
		chain = append(chain, rev[i])
	}
	chain = append(chain, start)

	node, _ := v.graph.Node(start)
	v.diags = append(v.diags, Diagnostic{
		Code:     CodeCircularDependency,
		Severity: SeverityError,
		Message:  fmt.Sprintf("node %s depends on itself", v.describe(start, node)),
		Node:     &start,
		Path:     chain,
	})
}

// checkInputs verifies that every required input is connected: child
// handles resolve, math and call argument counts match declared arities,
// and composite constructors have components.
func (v *Validator) checkInputs() {
	for i := range v.graph.nodes {
		handle := NodeHandle(i)
		if _, seen := v.visited[handle]; !seen {
			continue
		}
		node := v.graph.nodes[i]

		for _, edge := range v.graph.Dependencies(handle) {
			if _, ok := v.graph.Node(edge.Node); !ok {
				v.addMissingInput(handle, edge.Slot,
					fmt.Sprintf("input %q of node %s is not connected", edge.Slot, v.describe(handle, node)))
			}
		}

		switch k := node.Kind.(type) {
		case Math:
			if len(k.Args) != k.Fun.Arity() {
				v.addMissingInput(handle, "",
					fmt.Sprintf("math node %s requires %d argument(s), has %d", v.describe(handle, node), k.Fun.Arity(), len(k.Args)))
			}
		case Join:
			if len(k.Components) == 0 {
				v.addMissingInput(handle, "",
					fmt.Sprintf("join node %s has no components", v.describe(handle, node)))
			}
		case Call:
			fn, ok := v.graph.Function(k.Function)
			if !ok {
				v.addMissingInput(handle, "",
					fmt.Sprintf("call node %s references undeclared function %d", v.describe(handle, node), k.Function))
				continue
			}
			if len(k.Args) != len(fn.Params) {
				v.addMissingInput(handle, "",
					fmt.Sprintf("call to %q requires %d argument(s), has %d", fn.Name, len(fn.Params), len(k.Args)))
			}
		}
	}
}

// checkTypes verifies type compatibility on every edge of the visited set.
// Incompatible pairs are errors; conversions that silently lose lanes are
// surfaced as warnings with a suggested fix.
func (v *Validator) checkTypes() {
	for i := range v.graph.nodes {
		handle := NodeHandle(i)
		if _, seen := v.visited[handle]; !seen {
			continue
		}
		node := v.graph.nodes[i]

		if bin, ok := node.Kind.(Binary); ok && !bin.Op.IsLogical() {
			v.checkBinaryOperands(handle, node, bin)
		}
		if ext, ok := node.Kind.(Extract); ok {
			v.checkExtract(handle, node, ext)
		}
		if join, ok := node.Kind.(Join); ok {
			v.checkJoin(handle, node, join)
		}

		for _, edge := range v.graph.Dependencies(handle) {
			if !edge.HasExpected {
				continue
			}
			from, ok := ResolveType(v.graph, edge.Node)
			if !ok {
				continue
			}
			v.checkEdge(handle, node, edge.Slot, from, edge.Expected)
		}
	}
}

// checkEdge emits diagnostics for one (dependency type, expected type) pair.
func (v *Validator) checkEdge(handle NodeHandle, node Node, slot string, from, to Type) {
	if from == to {
		return
	}
	if !Convertible(from, to) {
		v.addTypeMismatch(handle, slot, from, to, SeverityError,
			fmt.Sprintf("input %q of node %s expects %s, got %s", slot, v.describe(handle, node), to, from),
			"")
		return
	}
	if hint := ConversionHint(from, to); hint != "" {
		v.addTypeMismatch(handle, slot, from, to, SeverityWarning,
			fmt.Sprintf("input %q of node %s converts %s to %s", slot, v.describe(handle, node), from, to),
			hint)
	}
}

// checkBinaryOperands validates operand shapes for arithmetic and
// comparison operators. Matrix operands are only legal in the linear
// algebra combinations GLSL defines.
func (v *Validator) checkBinaryOperands(handle NodeHandle, node Node, bin Binary) {
	left, lok := ResolveType(v.graph, bin.Left)
	right, rok := ResolveType(v.graph, bin.Right)
	if !lok || !rok {
		return
	}
	if !left.IsMatrix() && !right.IsMatrix() {
		return
	}
	if bin.Op.IsComparison() {
		v.addTypeMismatch(handle, "left", left, right, SeverityError,
			fmt.Sprintf("operator on node %s cannot compare %s and %s", v.describe(handle, node), left, right), "")
		return
	}

	ok := false
	switch bin.Op {
	case BinaryMultiply:
		ok = (left.IsMatrix() && right.IsMatrix()) ||
			(left.IsMatrix() && (right.IsVector() || right.IsScalar())) ||
			((left.IsVector() || left.IsScalar()) && right.IsMatrix())
	case BinaryAdd, BinarySubtract, BinaryDivide:
		ok = (left.IsMatrix() && right.IsMatrix()) ||
			(left.IsMatrix() && right.IsScalar()) ||
			(left.IsScalar() && right.IsMatrix())
	}
	if !ok {
		v.addTypeMismatch(handle, "right", right, left, SeverityError,
			fmt.Sprintf("operator on node %s cannot combine %s and %s", v.describe(handle, node), left, right), "")
	}
}

func (v *Validator) checkExtract(handle NodeHandle, node Node, ext Extract) {
	base, ok := ResolveType(v.graph, ext.Expr)
	if !ok {
		return
	}
	if !base.IsVector() {
		v.addTypeMismatch(handle, "vector", base, Vec4, SeverityError,
			fmt.Sprintf("extract node %s requires a vector input, got %s", v.describe(handle, node), base), "")
		return
	}
	for _, comp := range ext.Pattern {
		if uint8(comp) >= base.Size {
			v.addTypeMismatch(handle, "vector", base, base, SeverityError,
				fmt.Sprintf("extract node %s selects lane %d of a %d-lane vector", v.describe(handle, node), comp, base.Size), "")
		}
	}
}

func (v *Validator) checkJoin(handle NodeHandle, node Node, join Join) {
	if !join.Type.IsVector() {
		return
	}
	lanes := 0
	for _, comp := range join.Components {
		t, ok := ResolveType(v.graph, comp)
		if !ok {
			return
		}
		if t.IsMatrix() {
			v.addTypeMismatch(handle, "component", t, join.Type, SeverityError,
				fmt.Sprintf("join node %s cannot take a matrix component", v.describe(handle, node)), "")
			return
		}
		lanes += t.Lanes()
	}
	if len(join.Components) > 1 && lanes != join.Type.Lanes() {
		v.addTypeMismatch(handle, "component", join.Type, join.Type, SeverityError,
			fmt.Sprintf("join node %s needs %d lane(s), components provide %d", v.describe(handle, node), join.Type.Lanes(), lanes), "")
	}
}

// checkDisconnected flags arena nodes that no other node depends on and
// that are neither roots nor literal constants. These are warnings: the
// graph still compiles, the node is just dead.
func (v *Validator) checkDisconnected() {
	indegree := make(map[NodeHandle]int, v.graph.Count())
	for i := range v.graph.nodes {
		for _, edge := range v.graph.Dependencies(NodeHandle(i)) {
			indegree[edge.Node]++
		}
	}

	for i := range v.graph.nodes {
		handle := NodeHandle(i)
		if indegree[handle] > 0 {
			continue
		}
		if _, isRoot := v.roots[handle]; isRoot {
			continue
		}
		node := v.graph.nodes[i]
		if _, isLiteral := node.Kind.(Literal); isLiteral {
			continue
		}
		h := handle
		v.diags = append(v.diags, Diagnostic{
			Code:     CodeDisconnectedOutput,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("node %s is not used by any other node", v.describe(handle, node)),
			Node:     &h,
		})
	}
}

func (v *Validator) describe(handle NodeHandle, node Node) string {
	if node.Name != "" {
		return fmt.Sprintf("#%d (%s)", handle, node.Name)
	}
	return fmt.Sprintf("#%d", handle)
}

func (v *Validator) addMissingInput(handle NodeHandle, slot, msg string) {
	h := handle
	v.diags = append(v.diags, Diagnostic{
		Code:     CodeMissingInput,
		Severity: SeverityError,
		Message:  msg,
		Node:     &h,
		Slot:     slot,
	})
}

func (v *Validator) addTypeMismatch(handle NodeHandle, slot string, from, to Type, sev Severity, msg, suggestion string) {
	h := handle
	v.diags = append(v.diags, Diagnostic{
		Code:       CodeTypeMismatch,
		Severity:   sev,
		Message:    msg,
		Node:       &h,
		Slot:       slot,
		From:       from,
		To:         to,
		HasTypes:   true,
		Suggestion: suggestion,
	})
}
