package engine

import "math"

// Operator identifies a binary operator button.
type Operator int

const (
	// OpNone means no operation is pending.
	OpNone Operator = iota
	// OpAdd adds the two operands.
	OpAdd
	// OpSubtract subtracts the second operand from the first.
	OpSubtract
	// OpMultiply multiplies the operands.
	OpMultiply
	// OpDivide divides the first operand by the second.
	OpDivide
)

// String returns the button glyph for the operator.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Valid reports whether op is one of the four binary operators.
func (op Operator) Valid() bool {
	return op >= OpAdd && op <= OpDivide
}

// Apply computes a op b with IEEE-754 semantics. Division by zero yields an
// infinity (or NaN for 0/0). An invalid operator yields NaN.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	default:
		return math.NaN()
	}
}
