package csr

import (
	"bufio"
	"encoding/binary"
	"io"
)

// fileMagic guards against loading an unrelated binary blob as a CSR,
// matching the continuation package's own magic-prefixed framing.
const fileMagic uint32 = 0x63347763 // "c4wc"

// Save writes c in a flat record format: magic, row count, the per-row
// arity bytes, the (begin,end) index array, and the flat successor
// vector — the "two flat arrays plus a small per-node inline array" spec
// §6 names as the wire format for a minimized/proved transition system.
func Save(w io.Writer, c *CSR) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, fileMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(c.arity))); err != nil {
		return err
	}
	if _, err := bw.Write(c.arity); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, c.index); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(c.flat))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, c.flat); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads a CSR written by Save.
func Load(r io.Reader) (*CSR, error) {
	br := bufio.NewReader(r)
	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != fileMagic {
		return nil, ErrBadMagic
	}

	var rowCount uint32
	if err := binary.Read(br, binary.LittleEndian, &rowCount); err != nil {
		return nil, err
	}
	arity := make([]uint8, rowCount)
	if _, err := io.ReadFull(br, arity); err != nil {
		return nil, err
	}
	index := make([]int32, int(rowCount)*MaxArity*2)
	if err := binary.Read(br, binary.LittleEndian, index); err != nil {
		return nil, err
	}
	var edgeCount uint32
	if err := binary.Read(br, binary.LittleEndian, &edgeCount); err != nil {
		return nil, err
	}
	flat := make([]int32, edgeCount)
	if err := binary.Read(br, binary.LittleEndian, flat); err != nil {
		return nil, err
	}

	return &CSR{index: index, arity: arity, flat: flat}, nil
}
