package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is an expression tree node. The set of implementations is closed:
// *NumberLiteral and *BinaryExpr.
type Node interface {
	Pos() Position
	String() string
	exprNode()
}

// NumberLiteral is an integer leaf.
type NumberLiteral struct {
	Value    int64
	position Position
}

func (n *NumberLiteral) exprNode()      {}
func (n *NumberLiteral) Pos() Position  { return n.position }
func (n *NumberLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

// BinaryExpr applies Operator to Left and Right, in source order.
type BinaryExpr struct {
	Operator TokenType
	Left     Node
	Right    Node
	position Position
}

func (b *BinaryExpr) exprNode()     {}
func (b *BinaryExpr) Pos() Position { return b.position }

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator, b.Right)
}

// Dump renders node as an indented tree, one field per line.
func Dump(node Node) string {
	var b strings.Builder
	dumpNode(&b, node, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func dumpNode(b *strings.Builder, node Node, level int) {
	indent := strings.Repeat("  ", level)
	switch n := node.(type) {
	case *NumberLiteral:
		fmt.Fprintf(b, "%sNum(%d)\n", indent, n.Value)
	case *BinaryExpr:
		fmt.Fprintf(b, "%sBinOp:\n", indent)
		fmt.Fprintf(b, "%s  left:\n", indent)
		dumpNode(b, n.Left, level+2)
		fmt.Fprintf(b, "%s  op: %s\n", indent, operatorName(n.Operator))
		fmt.Fprintf(b, "%s  right:\n", indent)
		dumpNode(b, n.Right, level+2)
	default:
		fmt.Fprintf(b, "%s<unknown node %T>\n", indent, node)
	}
}

var operatorNames = map[TokenType]string{
	TokenPlus:  "PLUS",
	TokenMinus: "MINUS",
	TokenStar:  "MUL",
	TokenSlash: "DIV",
}

func operatorName(op TokenType) string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return string(op)
}
