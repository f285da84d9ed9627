// Package engine implements the calculator evaluation state machine.
//
// A Calculator turns button presses into a running computation and a display
// string. Binary operators are folded left to right as they are pressed; there
// is no precedence and no history beyond the single pending operation.
// Numeric edge cases such as division by zero surface as values ("Infinity",
// "NaN") rather than errors, so no operation can fail.
package engine
