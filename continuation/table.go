// Package continuation loads and saves the continuation table: for every
// reachable field and every piece, the set of resulting fields a hard drop
// of that piece can leave behind after a line clear (spec §6). The table
// is produced offline by cmd/continuationgen and consumed, read-only, by
// every downstream pass.
package continuation

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/narrowstack/c4w/field"
)

// Table maps a field to, for each piece droppable onto it, the fields
// reachable by a clearing hard drop.
type Table struct {
	rows map[field.Field]map[field.Piece][]field.Field
}

// New returns an empty, mutable table (used by cmd/continuationgen while
// building one from scratch).
func New() *Table {
	return &Table{rows: make(map[field.Field]map[field.Piece][]field.Field)}
}

// Put records the set of clearing landings for (f, p), overwriting any
// prior entry.
func (t *Table) Put(f field.Field, p field.Piece, landings []field.Field) {
	entry, ok := t.rows[f]
	if !ok {
		entry = make(map[field.Piece][]field.Field)
		t.rows[f] = entry
	}
	entry[p] = landings
}

// Get returns the clearing landings recorded for (f, p), or nil if f was
// never visited or p never produced a clear from f.
func (t *Table) Get(f field.Field, p field.Piece) []field.Field {
	entry, ok := t.rows[f]
	if !ok {
		return nil
	}
	return entry[p]
}

// Fields returns every field recorded in the table, in no particular
// order. product.New uses it to assign field indices; the BFS in
// driver.Build then walks outward from field.Empty over those indices.
func (t *Table) Fields() []field.Field {
	out := make([]field.Field, 0, len(t.rows))
	for f := range t.rows {
		out = append(out, f)
	}
	return out
}

// Len reports the number of distinct fields recorded.
func (t *Table) Len() int {
	return len(t.rows)
}

// Close is a no-op: the table is loaded once and held immutable for the
// lifetime of a solve, so there is nothing to release.
func (t *Table) Close() error { return nil }

// fileMagic guards against loading an unrelated binary blob as a table.
const fileMagic uint32 = 0x63347774 // "c4wt"

// Save writes t in the flat record format: magic, field count, then for
// each field its 4 raw bytes, a piece count, and per piece the piece byte
// followed by a landing count and that many 4-byte fields.
func Save(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, fileMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(t.rows))); err != nil {
		return err
	}
	for f, pieces := range t.rows {
		if _, err := bw.Write(f[:]); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(pieces))); err != nil {
			return err
		}
		for p, landings := range pieces {
			if err := bw.WriteByte(byte(p)); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, uint32(len(landings))); err != nil {
				return err
			}
			for _, lf := range landings {
				if _, err := bw.Write(lf[:]); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

// Load reads a table written by Save.
func Load(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != fileMagic {
		return nil, ErrBadMagic
	}
	var fieldCount uint32
	if err := binary.Read(br, binary.LittleEndian, &fieldCount); err != nil {
		return nil, err
	}
	t := &Table{rows: make(map[field.Field]map[field.Piece][]field.Field, fieldCount)}
	for i := uint32(0); i < fieldCount; i++ {
		var f field.Field
		if _, err := io.ReadFull(br, f[:]); err != nil {
			return nil, err
		}
		var pieceCount uint32
		if err := binary.Read(br, binary.LittleEndian, &pieceCount); err != nil {
			return nil, err
		}
		entry := make(map[field.Piece][]field.Field, pieceCount)
		for j := uint32(0); j < pieceCount; j++ {
			pb, err := br.ReadByte()
			if err != nil {
				return nil, err
			}
			p := field.Piece(pb)
			if !p.Valid() {
				return nil, ErrInvalidPiece
			}
			var landingCount uint32
			if err := binary.Read(br, binary.LittleEndian, &landingCount); err != nil {
				return nil, err
			}
			landings := make([]field.Field, landingCount)
			for k := uint32(0); k < landingCount; k++ {
				if _, err := io.ReadFull(br, landings[k][:]); err != nil {
					return nil, err
				}
			}
			entry[p] = landings
		}
		t.rows[f] = entry
	}
	return t, nil
}
