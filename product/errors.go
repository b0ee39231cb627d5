package product

import "errors"

// ErrProductOverflow is returned by New when the field count times the
// sequence automaton's state count would overflow the product index
// space (spec §7 "Overflow").
var ErrProductOverflow = errors.New("product: field count * sequence state count overflows product index space")
