package engine

import "strings"

const startDisplay = "0"

// Calculator is the evaluation state machine behind the calculator screen.
// The zero value is not ready for use; construct one with New.
type Calculator struct {
	display            string
	previous           float64
	hasPrevious        bool
	pending            Operator
	awaitingFreshEntry bool
}

// State is a read-only copy of the calculator fields.
type State struct {
	// Display is the text shown on screen.
	Display string
	// Previous is the operand captured at the last operator press.
	// It is meaningful only when HasPrevious is true.
	Previous float64
	// HasPrevious reports whether Previous holds a value.
	HasPrevious bool
	// Pending is the operator awaiting its second operand.
	Pending Operator
	// AwaitingFreshEntry is set when the next digit starts a new number.
	AwaitingFreshEntry bool
}

// New returns a calculator in its startup state.
func New() *Calculator {
	return &Calculator{display: startDisplay}
}

// Display returns the current display text.
func (c *Calculator) Display() string {
	return c.display
}

// Snapshot returns a copy of the current state.
func (c *Calculator) Snapshot() State {
	return State{
		Display:            c.display,
		Previous:           c.previous,
		HasPrevious:        c.hasPrevious,
		Pending:            c.pending,
		AwaitingFreshEntry: c.awaitingFreshEntry,
	}
}

// PressDigit enters a digit. Values outside 0-9 are ignored.
func (c *Calculator) PressDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	digit := string(rune('0' + d))
	switch {
	case c.awaitingFreshEntry:
		c.display = digit
		c.awaitingFreshEntry = false
	case c.display == startDisplay:
		c.display = digit
	default:
		c.display += digit
	}
}

// PressDecimal appends a decimal point unless the display already has one.
// It leaves awaitingFreshEntry untouched, so a point pressed right after an
// operator extends the previous display.
func (c *Calculator) PressDecimal() {
	if strings.Contains(c.display, ".") {
		return
	}
	c.display += "."
}

// PressOperator records op as the pending operation, folding any operation
// that was already pending against the current display first.
func (c *Calculator) PressOperator(op Operator) {
	if !op.Valid() {
		return
	}
	current := ParseNumber(c.display)

	switch {
	case !c.hasPrevious:
		c.previous = current
		c.hasPrevious = true
	case c.pending != OpNone:
		result := c.pending.Apply(c.previous, current)
		c.display = FormatNumber(result)
		c.previous = result
	}

	c.pending = op
	c.awaitingFreshEntry = true
}

// PressEquals resolves the pending operation. Without both a pending operation
// and a captured operand it does nothing; repeated presses are not chained.
func (c *Calculator) PressEquals() {
	if c.pending == OpNone || !c.hasPrevious {
		return
	}
	result := c.pending.Apply(c.previous, ParseNumber(c.display))
	c.display = FormatNumber(result)
	c.previous = 0
	c.hasPrevious = false
	c.pending = OpNone
	c.awaitingFreshEntry = true
}

// PressClear resets the calculator to its startup state.
func (c *Calculator) PressClear() {
	*c = Calculator{display: startDisplay}
}

// PressToggleSign negates the displayed value.
func (c *Calculator) PressToggleSign() {
	c.display = FormatNumber(ParseNumber(c.display) * -1)
}

// PressPercent divides the displayed value by 100.
func (c *Calculator) PressPercent() {
	c.display = FormatNumber(ParseNumber(c.display) / 100)
}
