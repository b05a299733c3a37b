package report

import (
	"slices"
)

// Categories is the closed set of operation names seen while building a table.
// Interning keeps one copy of each name; the set is fixed once the table is built.
type Categories struct {
	names []string
	index map[string]int
}

func newCategories() *Categories {
	return &Categories{index: make(map[string]int)}
}

// Intern returns the canonical copy of name, adding it on first sight.
func (c *Categories) Intern(name string) string {
	if i, ok := c.index[name]; ok {
		return c.names[i]
	}
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	return name
}

// Contains reports whether name was seen.
func (c *Categories) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of distinct names.
func (c *Categories) Len() int {
	return len(c.names)
}

// Names returns the distinct names in lexical order.
func (c *Categories) Names() []string {
	out := slices.Clone(c.names)
	slices.Sort(out)
	return out
}
