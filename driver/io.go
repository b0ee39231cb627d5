package driver

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/narrowstack/c4w/csr"
)

// ErrBadMagic is returned by Load when the stream does not start with
// the solved-states magic number.
var ErrBadMagic = errors.New("driver: not a solved-states file (bad magic)")

const fileMagic uint32 = 0x63347773 // "c4ws"

// Save writes r in spec §6's "minimized/proved output (binary)" shape:
// the mapping vector, the quotient CSR (via csr.Save), and the per-class
// value vector computed by value iteration. The original enumerator
// handle is deliberately not serialized — it is "recomputable from the
// same continuation input and parameters" per spec §6, exactly as the
// original leaves it out of its own wire format.
func Save(w io.Writer, r Result) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, fileMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(r.Mapping))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, r.Mapping); err != nil {
		return err
	}
	if err := csr.Save(bw, r.Quotient); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(r.Values))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, r.Values); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads a Result written by Save. HasLoop and Iterations are not
// part of the wire format (they are diagnostics of the run that produced
// the file, not state of the file itself) and are left zero.
func Load(r io.Reader) (Result, error) {
	br := bufio.NewReader(r)
	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return Result{}, err
	}
	if magic != fileMagic {
		return Result{}, ErrBadMagic
	}

	var mappingLen uint32
	if err := binary.Read(br, binary.LittleEndian, &mappingLen); err != nil {
		return Result{}, err
	}
	mapping := make([]int32, mappingLen)
	if err := binary.Read(br, binary.LittleEndian, mapping); err != nil {
		return Result{}, err
	}

	quotient, err := csr.Load(br)
	if err != nil {
		return Result{}, err
	}

	var valuesLen uint32
	if err := binary.Read(br, binary.LittleEndian, &valuesLen); err != nil {
		return Result{}, err
	}
	values := make([]float64, valuesLen)
	if err := binary.Read(br, binary.LittleEndian, values); err != nil {
		return Result{}, err
	}

	return Result{Mapping: mapping, Quotient: quotient, Values: values}, nil
}
