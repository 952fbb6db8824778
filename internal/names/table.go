// Package names interns Modified UTF-8 byte sequences into Names.
//
// A Name is a small comparable handle: two Names from the same Table are
// equal exactly when their bytes are identical, so identifiers can be
// compared and hashed without touching their content. Tables are safe for
// concurrent use.
package names

import (
	"fmt"
	"slices"
	"sync"

	"fortio.org/safecast"

	"lintmap/internal/mutf8"
)

// Table owns the storage of every Name it hands out.
type Table struct {
	mu       sync.RWMutex
	byID     []string          // индекс -> байты (byID[0] = "" для пустого имени)
	index    map[string]uint32 // байты -> индекс
	disposed bool
	predef   *Predefined
}

// NewTable creates a table with the predefined names already interned.
func NewTable() *Table {
	t := &Table{
		byID:  []string{""},
		index: map[string]uint32{"": 0},
	}
	t.predef = newPredefined(t)
	return t
}

// Predefined returns the names interned at construction.
func (t *Table) Predefined() *Predefined {
	return t.predef
}

// Empty returns the empty name.
func (t *Table) Empty() Name {
	return Name{table: t}
}

// Intern returns the canonical Name for b, storing a copy of b on first use.
// b is not validated; use FromUtf for that.
func (t *Table) Intern(b []byte) Name {
	t.mu.RLock()
	id, ok := t.index[string(b)]
	disposed := t.disposed
	t.mu.RUnlock()
	if disposed {
		panic("names: intern into disposed table")
	}
	if ok {
		return Name{table: t, id: id}
	}
	return t.internSlow(string(b))
}

func (t *Table) internSlow(s string) Name {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		panic("names: intern into disposed table")
	}
	// кто-то мог успеть между RUnlock и Lock
	if id, ok := t.index[s]; ok {
		return Name{table: t, id: id}
	}

	id, err := safecast.Conv[uint32](len(t.byID))
	if err != nil {
		panic(fmt.Errorf("name table overflow: %w", err))
	}
	t.byID = append(t.byID, s)
	t.index[s] = id
	return Name{table: t, id: id}
}

// InternString encodes s as Modified UTF-8 and interns the result.
func (t *Table) InternString(s string) Name {
	return t.Intern(mutf8.EncodeString(s))
}

// InternChars encodes UTF-16 code units and interns the result.
func (t *Table) InternChars(chars []uint16) Name {
	return t.Intern(mutf8.Encode(chars))
}

// FromUtf validates b under v and interns it.
// The returned error is the codec's *mutf8.DecodeError.
func (t *Table) FromUtf(b []byte, v mutf8.Validation) (Name, error) {
	if err := mutf8.Validate(b, v); err != nil {
		return Name{}, err
	}
	return t.Intern(b), nil
}

// Lookup returns the Name with the given index, if it exists.
func (t *Table) Lookup(id uint32) (Name, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.disposed || int(id) >= len(t.byID) {
		return Name{}, false
	}
	return Name{table: t, id: id}, true
}

// Len reports the number of names, the empty name included.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Dispose releases all storage. Names obtained earlier must not be used
// afterwards.
func (t *Table) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byID = nil
	t.index = nil
	t.disposed = true
}

// raw returns the stored bytes of id.
func (t *Table) raw(id uint32) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.disposed {
		panic("names: use of disposed table")
	}
	return t.byID[id]
}

// snapshot returns a copy of all stored sequences in index order.
func (t *Table) snapshot() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.byID)
}
