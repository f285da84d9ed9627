// Package keypad models the calculator buttons: their identities, labels, the
// on-screen grid, textual key parsing and dispatch to the engine.
package keypad

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/codex-k8s/calcctl/internal/engine"
)

// ErrUnknownKey is returned when a token does not name a button.
var ErrUnknownKey = errors.New("unknown key")

// Key identifies a calculator button.
type Key int

// Digit keys occupy 0-9 so that Key(d) is the key for digit d.
const (
	Digit0 Key = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Decimal
	Add
	Subtract
	Multiply
	Divide
	Equals
	Clear
	ToggleSign
	Percent
)

var labels = map[Key]string{
	Decimal:    ".",
	Add:        "+",
	Subtract:   "-",
	Multiply:   "×",
	Divide:     "÷",
	Equals:     "=",
	Clear:      "C",
	ToggleSign: "±",
	Percent:    "%",
}

// aliases maps lower-case tokens to keys. Labels are included.
var aliases = map[string]Key{
	".":     Decimal,
	"+":     Add,
	"-":     Subtract,
	"−":     Subtract,
	"×":     Multiply,
	"*":     Multiply,
	"x":     Multiply,
	"÷":     Divide,
	"/":     Divide,
	"=":     Equals,
	"enter": Equals,
	"c":     Clear,
	"ac":    Clear,
	"clear": Clear,
	"±":     ToggleSign,
	"+/-":   ToggleSign,
	"neg":   ToggleSign,
	"%":     Percent,
	"pct":   Percent,
}

// aliasesByLength lists alias tokens longest first for greedy splitting.
var aliasesByLength []string

func init() {
	for d := Digit0; d <= Digit9; d++ {
		aliases[d.Label()] = d
	}
	for token := range aliases {
		aliasesByLength = append(aliasesByLength, token)
	}
	sort.Slice(aliasesByLength, func(i, j int) bool {
		a, b := aliasesByLength[i], aliasesByLength[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

// Label returns the text printed on the button.
func (k Key) Label() string {
	if k.IsDigit() {
		return string(rune('0' + int(k)))
	}
	return labels[k]
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if label := k.Label(); label != "" {
		return label
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// IsDigit reports whether k is one of the digit keys.
func (k Key) IsDigit() bool {
	return k >= Digit0 && k <= Digit9
}

// Operator returns the engine operator for an operator key.
func (k Key) Operator() (engine.Operator, bool) {
	switch k {
	case Add:
		return engine.OpAdd, true
	case Subtract:
		return engine.OpSubtract, true
	case Multiply:
		return engine.OpMultiply, true
	case Divide:
		return engine.OpDivide, true
	default:
		return engine.OpNone, false
	}
}

// Parse resolves a single token to a key. Matching ignores case and
// surrounding whitespace.
func Parse(token string) (Key, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if k, ok := aliases[normalized]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// Split turns a line of input into keys. Whitespace separates tokens and
// runs of adjacent keys are split greedily, so "12+3=" and "1 2 + 3 =" give
// the same keys.
func Split(line string) ([]Key, error) {
	var keys []Key
	for _, field := range strings.Fields(line) {
		rest := field
		for rest != "" {
			token, ok := longestAlias(rest)
			if !ok {
				r := []rune(rest)[0]
				return nil, fmt.Errorf("%w: %q in %q", ErrUnknownKey, string(r), field)
			}
			keys = append(keys, aliases[token])
			rest = rest[len(token):]
		}
	}
	return keys, nil
}

// longestAlias matches aliases case-insensitively. Every alias with a case is
// ASCII, so the matched prefix of s has the same byte length as the alias.
func longestAlias(s string) (string, bool) {
	for _, token := range aliasesByLength {
		if len(s) >= len(token) && strings.EqualFold(s[:len(token)], token) {
			return token, true
		}
	}
	return "", false
}

// Labels joins key labels with single spaces.
func Labels(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.Label()
	}
	return strings.Join(parts, " ")
}
