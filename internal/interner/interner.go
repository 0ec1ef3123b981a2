// Package interner deduplicates identifier and string literal text into
// handles that are cheap to copy, compare and hash.
//
// A Table is an explicit object owned by the embedding context and shared by
// the parser and the machine it feeds. It is not safe for concurrent use;
// one table belongs to one single-threaded interpreter instance.
package interner

// Handle references one interned string. Two handles produced by the same
// Table compare equal exactly when their text is equal, so handles can be
// used directly as map keys.
type Handle struct {
	s *string
}

// String returns the interned text. The zero Handle yields "".
func (h Handle) String() string {
	if h.s == nil {
		return ""
	}
	return *h.s
}

// IsZero reports whether h references no interned text.
func (h Handle) IsZero() bool {
	return h.s == nil
}

// Table holds the interned strings. Entries are never evicted; a handle stays
// valid for the lifetime of its table.
type Table struct {
	entries map[string]*string
}

func New() *Table {
	return &Table{entries: make(map[string]*string)}
}

// Intern returns the canonical handle for text, storing it on first use.
func (t *Table) Intern(text string) Handle {
	if p, ok := t.entries[text]; ok {
		return Handle{s: p}
	}
	p := new(string)
	*p = text
	t.entries[text] = p
	return Handle{s: p}
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	return len(t.entries)
}
