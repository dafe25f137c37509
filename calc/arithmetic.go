package calc

import (
	"fmt"
	"math"
)

func addValues(left, right Value) (Value, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		sum := a + b
		if (a^sum)&(b^sum) < 0 {
			return Value{}, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
		}
		return NewInt(sum), nil
	}
	return NewFloat(left.Float() + right.Float()), nil
}

func subtractValues(left, right Value) (Value, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		diff := a - b
		if (a^b)&(a^diff) < 0 {
			return Value{}, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
		}
		return NewInt(diff), nil
	}
	return NewFloat(left.Float() - right.Float()), nil
}

func multiplyValues(left, right Value) (Value, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		if a == 0 || b == 0 {
			return NewInt(0), nil
		}
		product := a * b
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || product/b != a {
			return Value{}, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
		}
		return NewInt(product), nil
	}
	return NewFloat(left.Float() * right.Float()), nil
}

// divideValues always performs true division and yields a float.
func divideValues(left, right Value) (Value, error) {
	if right.Float() == 0 {
		return Value{}, ErrDivisionByZero
	}
	return NewFloat(left.Float() / right.Float()), nil
}
