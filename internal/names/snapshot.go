package names

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when snapshotPayload changes.
const snapshotSchema uint16 = 1

type snapshotPayload struct {
	Schema uint16
	Names  [][]byte // in index order, index 0 (empty name) excluded
}

// WriteSnapshot serialises the table contents with msgpack.
func (t *Table) WriteSnapshot(w io.Writer) error {
	all := t.snapshot()
	payload := snapshotPayload{
		Schema: snapshotSchema,
		Names:  make([][]byte, 0, len(all)),
	}
	for _, s := range all[1:] {
		payload.Names = append(payload.Names, []byte(s))
	}
	if err := msgpack.NewEncoder(w).Encode(&payload); err != nil {
		return fmt.Errorf("encode name snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot rebuilds a table written by WriteSnapshot.
// Every name keeps the index it had in the original table.
func ReadSnapshot(r io.Reader) (*Table, error) {
	var payload snapshotPayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode name snapshot: %w", err)
	}
	if payload.Schema != snapshotSchema {
		return nil, fmt.Errorf("name snapshot schema %d, want %d", payload.Schema, snapshotSchema)
	}

	t := NewTable()
	for i, b := range payload.Names {
		n := t.Intern(b)
		if int(n.Index()) != i+1 {
			return nil, fmt.Errorf("name snapshot: %q restored at index %d, want %d", b, n.Index(), i+1)
		}
	}
	return t, nil
}
