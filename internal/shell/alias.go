package shell

import "sort"

// AliasTable maps alias names to their expansion text. Expansions may
// reference other aliases; the dispatcher bounds the recursion.
type AliasTable struct {
	entries map[string]string
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{entries: make(map[string]string)}
}

// Set stores an alias, silently overwriting any existing entry.
func (t *AliasTable) Set(name, expansion string) {
	t.entries[name] = expansion
}

// Get returns the expansion for name.
func (t *AliasTable) Get(name string) (string, bool) {
	exp, ok := t.entries[name]
	return exp, ok
}

// Remove deletes an alias. It reports whether the alias existed.
func (t *AliasTable) Remove(name string) bool {
	if _, ok := t.entries[name]; !ok {
		return false
	}
	delete(t.entries, name)
	return true
}

// Names returns all alias names, sorted.
func (t *AliasTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	return len(t.entries)
}
