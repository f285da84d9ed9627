package keypad

// Button is one cell of the keypad grid.
type Button struct {
	Key Key
	// Span is the number of grid columns the button occupies.
	Span int
}

// Columns is the width of the keypad grid.
const Columns = 4

// Layout returns the keypad rows from top to bottom.
func Layout() [][]Button {
	return [][]Button{
		{{Clear, 1}, {ToggleSign, 1}, {Percent, 1}, {Divide, 1}},
		{{Digit7, 1}, {Digit8, 1}, {Digit9, 1}, {Multiply, 1}},
		{{Digit4, 1}, {Digit5, 1}, {Digit6, 1}, {Subtract, 1}},
		{{Digit1, 1}, {Digit2, 1}, {Digit3, 1}, {Add, 1}},
		{{Digit0, 2}, {Decimal, 1}, {Equals, 1}},
	}
}
