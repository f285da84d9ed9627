package keypad

import "github.com/codex-k8s/calcctl/internal/engine"

// Press forwards a button press to the calculator. Unknown keys are ignored.
func Press(c *engine.Calculator, k Key) {
	if k.IsDigit() {
		c.PressDigit(int(k))
		return
	}
	if op, ok := k.Operator(); ok {
		c.PressOperator(op)
		return
	}

	switch k {
	case Decimal:
		c.PressDecimal()
	case Equals:
		c.PressEquals()
	case Clear:
		c.PressClear()
	case ToggleSign:
		c.PressToggleSign()
	case Percent:
		c.PressPercent()
	}
}

// PressAll presses keys in order and returns the resulting display.
func PressAll(c *engine.Calculator, keys []Key) string {
	for _, k := range keys {
		Press(c, k)
	}
	return c.Display()
}
