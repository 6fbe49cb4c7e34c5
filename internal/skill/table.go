package skill

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed names.toml
var defaultNames []byte

// Table maps canonical notation to a well-known skill name. A Table is
// immutable once built and safe for concurrent use. A nil *Table is an empty
// table.
type Table struct {
	names map[string]string
}

// Entry is one row of a Table.
type Entry struct {
	Notation string `json:"notation"`
	Name     string `json:"name"`
}

type tableFile struct {
	Names map[string]string `toml:"names"`
}

// NewTable builds a table from a copy of names.
func NewTable(names map[string]string) *Table {
	return &Table{names: maps.Clone(names)}
}

// ParseTable reads a TOML document with a [names] section of
// notation = name pairs.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing name table: %w", err)
	}
	return NewTable(f.Names), nil
}

// LoadTable reads a name table file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading name table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := ParseTable(defaultNames)
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultTable returns the built-in table of well-known skill names.
func DefaultTable() *Table {
	return defaultTable()
}

// Merge returns a new table holding the entries of t overridden by those of
// other.
func (t *Table) Merge(other *Table) *Table {
	merged := make(map[string]string, t.Len()+other.Len())
	if t != nil {
		maps.Copy(merged, t.names)
	}
	if other != nil {
		maps.Copy(merged, other.names)
	}
	return &Table{names: merged}
}

// Lookup returns the name registered for notation.
func (t *Table) Lookup(notation string) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.names[notation]
	return name, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Entries returns all rows sorted by notation.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	keys := slices.Sorted(maps.Keys(t.names))
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Notation: k, Name: t.names[k]})
	}
	return entries
}
