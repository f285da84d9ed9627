package tape

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest fingerprints the key sequence of t. Tapes pressing the same keys
// share a digest however the keys were written. It fails when a step does
// not parse.
func Digest(t *Tape) (string, error) {
	keys, err := t.Keys()
	if err != nil {
		return "", err
	}

	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k.Label())
		_, _ = h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}
