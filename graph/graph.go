package graph

// NodeHandle addresses a node in a Graph's arena. Handles are stable for
// the lifetime of the graph and cheap to compare; parents store handles,
// never node values.
type NodeHandle uint32

// FunctionHandle addresses a declared function.
type FunctionHandle uint32

// Node is one unit of the IR: a kind tag with its payload plus an optional
// user-facing label used in diagnostics and generated names.
type Node struct {
	Kind NodeKind
	Name string
}

// Graph is the arena owning all nodes of one material.
type Graph struct {
	nodes     []Node
	functions []Function
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make([]Node, 0, 16),
	}
}

// Add appends a node and returns its handle.
func (g *Graph) Add(kind NodeKind) NodeHandle {
	return g.AddNamed(kind, "")
}

// AddNamed appends a node with a user label and returns its handle.
func (g *Graph) AddNamed(kind NodeKind, name string) NodeHandle {
	handle := NodeHandle(len(g.nodes))
	g.nodes = append(g.nodes, Node{Kind: kind, Name: name})
	return handle
}

// Node finds a node by its handle.
func (g *Graph) Node(handle NodeHandle) (Node, bool) {
	if int(handle) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[handle], true
}

// Count returns the number of nodes in the arena.
func (g *Graph) Count() int {
	return len(g.nodes)
}

// AddFunction appends a function declaration and returns its handle.
func (g *Graph) AddFunction(fn Function) FunctionHandle {
	handle := FunctionHandle(len(g.functions))
	g.functions = append(g.functions, fn)
	return handle
}

// Function finds a function by its handle.
func (g *Graph) Function(handle FunctionHandle) (Function, bool) {
	if int(handle) >= len(g.functions) {
		return Function{}, false
	}
	return g.functions[handle], true
}

// Functions returns all declared functions.
func (g *Graph) Functions() []Function {
	return g.functions
}

// Edge is one dependency of a node: the child handle, the name of the
// consumer's input slot, and the type the consumer expects on that slot
// (Expected is meaningful only when HasExpected is set; operands whose
// expectation is relational, like binary operators, are checked separately
// by the validator).
type Edge struct {
	Node        NodeHandle
	Slot        string
	Expected    Type
	HasExpected bool
}

// Dependencies returns the dependency edges of the node, in input order.
// Varying values are included: the edge exists in the graph even though a
// fragment pass never builds it.
func (g *Graph) Dependencies(handle NodeHandle) []Edge {
	node, ok := g.Node(handle)
	if !ok {
		return nil
	}

	switch k := node.Kind.(type) {
	case Unary:
		if k.Op == UnaryLogicalNot {
			return []Edge{{Node: k.Expr, Slot: "operand", Expected: Bool, HasExpected: true}}
		}
		return []Edge{{Node: k.Expr, Slot: "operand"}}

	case Binary:
		if k.Op.IsLogical() {
			return []Edge{
				{Node: k.Left, Slot: "left", Expected: Bool, HasExpected: true},
				{Node: k.Right, Slot: "right", Expected: Bool, HasExpected: true},
			}
		}
		return []Edge{
			{Node: k.Left, Slot: "left"},
			{Node: k.Right, Slot: "right"},
		}

	case Math:
		edges := make([]Edge, 0, len(k.Args))
		for i, arg := range k.Args {
			edges = append(edges, Edge{Node: arg, Slot: mathArgSlot(i)})
		}
		return edges

	case Convert:
		return []Edge{{Node: k.Expr, Slot: "value", Expected: k.To, HasExpected: true}}

	case Extract:
		return []Edge{{Node: k.Expr, Slot: "vector"}}

	case Join:
		edges := make([]Edge, 0, len(k.Components))
		for i, comp := range k.Components {
			edges = append(edges, Edge{Node: comp, Slot: mathArgSlot(i)})
		}
		return edges

	case Select:
		return []Edge{
			{Node: k.Condition, Slot: "condition", Expected: Bool, HasExpected: true},
			{Node: k.Accept, Slot: "accept"},
			{Node: k.Reject, Slot: "reject"},
		}

	case Call:
		edges := make([]Edge, 0, len(k.Args))
		fn, ok := g.Function(k.Function)
		for i, arg := range k.Args {
			edge := Edge{Node: arg, Slot: mathArgSlot(i)}
			if ok && i < len(fn.Params) {
				edge.Slot = fn.Params[i].Name
				edge.Expected = fn.Params[i].Type
				edge.HasExpected = true
			}
			edges = append(edges, edge)
		}
		return edges

	case Varying:
		return []Edge{{Node: k.Value, Slot: "value", Expected: k.Type, HasExpected: true}}

	default:
		return nil
	}
}

var argSlotNames = [...]string{"arg0", "arg1", "arg2", "arg3"}

func mathArgSlot(i int) string {
	if i < len(argSlotNames) {
		return argSlotNames[i]
	}
	return "arg"
}
