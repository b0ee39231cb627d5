package csr

import "errors"

// ErrBadMagic is returned by Load when the stream does not start with
// the CSR magic number.
var ErrBadMagic = errors.New("csr: not a CSR transition system (bad magic)")
