package sgsl

// Program represents a parsed translation unit: an ordered list of
// statements. The value of the last statement is the program's result.
type Program struct {
	Stmts []Stmt
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// VarDecl represents a variable declaration with an optional type
// annotation.
type VarDecl struct {
	Name     string
	TypeName string // empty when no annotation
	Init     Expr
	Span     Span
}

func (v *VarDecl) Pos() Span { return v.Span }
func (v *VarDecl) stmtNode() {}

// FuncDecl represents a function declaration.
type FuncDecl struct {
	Name       string
	Params     []*Parameter
	ReturnType string
	Body       []Stmt
	Span       Span
}

func (f *FuncDecl) Pos() Span { return f.Span }
func (f *FuncDecl) stmtNode() {}

// Parameter represents a typed function parameter.
type Parameter struct {
	Name     string
	TypeName string
	Span     Span
}

// ReturnStmt represents a return statement inside a function body.
type ReturnStmt struct {
	Value Expr
	Span  Span
}

func (r *ReturnStmt) Pos() Span { return r.Span }
func (r *ReturnStmt) stmtNode() {}

// ExprStmt represents a bare expression used as a statement.
type ExprStmt struct {
	Expr Expr
}

func (e *ExprStmt) Pos() Span { return e.Expr.Pos() }
func (e *ExprStmt) stmtNode() {}

// NumberExpr represents a numeric literal. The raw lexeme is kept; the
// binder decides whether it is a float, int, or uint constant.
type NumberExpr struct {
	Text string
	Span Span
}

func (n *NumberExpr) Pos() Span { return n.Span }
func (n *NumberExpr) exprNode() {}

// BoolExpr represents a true/false literal.
type BoolExpr struct {
	Value bool
	Span  Span
}

func (b *BoolExpr) Pos() Span { return b.Span }
func (b *BoolExpr) exprNode() {}

// IdentExpr represents a name reference resolved against the scope stack.
type IdentExpr struct {
	Name string
	Span Span
}

func (i *IdentExpr) Pos() Span { return i.Span }
func (i *IdentExpr) exprNode() {}

// UnaryExpr represents a prefix operator application.
type UnaryExpr struct {
	Op   TokenKind // TokenMinus or TokenBang
	Expr Expr
	Span Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// BinaryExpr represents an infix operator application.
type BinaryExpr struct {
	Op    TokenKind
	Left  Expr
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// CallExpr represents a call. The callee may be an intrinsic, a type name
// acting as a constructor, or a previously declared user function.
type CallExpr struct {
	Callee string
	Args   []Expr
	Span   Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// MemberExpr represents component access such as ".x" or ".rgb".
type MemberExpr struct {
	Expr   Expr
	Member string
	Span   Span
}

func (m *MemberExpr) Pos() Span { return m.Span }
func (m *MemberExpr) exprNode() {}

// CondExpr represents a ternary conditional expression.
type CondExpr struct {
	Cond   Expr
	Accept Expr
	Reject Expr
	Span   Span
}

func (c *CondExpr) Pos() Span { return c.Span }
func (c *CondExpr) exprNode() {}
