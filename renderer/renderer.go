// Package renderer converts ledger types to markdown strings for the CLI.
package renderer

import (
	"fmt"
	"strings"
)

// table builds a markdown table with a header row and aligned separators.
type table struct {
	b strings.Builder
}

func (t *table) header(cols ...string) {
	t.row(cols...)
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	t.row(seps...)
}

func (t *table) row(cols ...string) {
	fmt.Fprintf(&t.b, "| %s |\n", strings.Join(cols, " | "))
}

func (t *table) String() string { return t.b.String() }
