package calc

import (
	"errors"
	"fmt"
)

// execution carries the per-call state of one evaluation.
type execution struct {
	source string
	steps  int
	quota  int
}

func (exec *execution) step(node Node) error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return newError(KindLimit, fmt.Sprintf("step quota exceeded (%d)", exec.quota), node.Pos(), exec.source)
	}
	return nil
}

// eval walks node in post-order. Left operands are always evaluated before
// right operands.
func (exec *execution) eval(node Node) (Value, error) {
	if node == nil {
		return Value{}, exec.internalError(node)
	}
	if err := exec.step(node); err != nil {
		return Value{}, err
	}

	switch n := node.(type) {
	case *NumberLiteral:
		return NewInt(n.Value), nil
	case *BinaryExpr:
		return exec.evalBinaryExpr(n)
	default:
		return Value{}, exec.internalError(node)
	}
}

// evalBinaryExpr folds the left spine of expr iteratively, so a long
// left-associative chain like 1+1+...+1 only recurses into right operands.
func (exec *execution) evalBinaryExpr(expr *BinaryExpr) (Value, error) {
	spine := []*BinaryExpr{expr}
	leftmost := expr.Left
	for {
		inner, ok := leftmost.(*BinaryExpr)
		if !ok {
			break
		}
		if err := exec.step(inner); err != nil {
			return Value{}, err
		}
		spine = append(spine, inner)
		leftmost = inner.Left
	}

	acc, err := exec.eval(leftmost)
	if err != nil {
		return Value{}, err
	}
	for i := len(spine) - 1; i >= 0; i-- {
		node := spine[i]
		right, err := exec.eval(node.Right)
		if err != nil {
			return Value{}, err
		}
		acc, err = exec.apply(node, acc, right)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func (exec *execution) apply(expr *BinaryExpr, left, right Value) (Value, error) {
	var (
		result Value
		err    error
	)
	switch expr.Operator {
	case TokenPlus:
		result, err = addValues(left, right)
	case TokenMinus:
		result, err = subtractValues(left, right)
	case TokenStar:
		result, err = multiplyValues(left, right)
	case TokenSlash:
		result, err = divideValues(left, right)
	default:
		return Value{}, newError(KindInternal, fmt.Sprintf("unsupported operator %q", expr.Operator), expr.Pos(), exec.source)
	}

	if err != nil {
		return Value{}, exec.wrapError(err, expr.Pos())
	}
	return result, nil
}

func (exec *execution) internalError(node Node) error {
	var pos Position
	if node != nil {
		pos = node.Pos()
	}
	return newError(KindInternal, fmt.Sprintf("unknown node type %T", node), pos, exec.source)
}

func (exec *execution) wrapError(err error, pos Position) error {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return err
	}
	kind := KindInternal
	for k, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			kind = k
			break
		}
	}
	return newError(kind, err.Error(), pos, exec.source)
}
