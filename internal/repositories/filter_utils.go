package repositories

import (
	"fmt"
	"strings"
)

// condBuilder accumulates WHERE conditions with positional placeholders.
type condBuilder struct {
	conds []string
	args  []interface{}
}

func (b *condBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *condBuilder) bind(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// matchAny appends a case-insensitive substring condition ORed across fields.
// An empty query adds nothing, which reads as "browse all".
func (b *condBuilder) matchAny(query string, fields ...string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(fields) == 0 {
		return
	}
	placeholder := b.bind("%" + trimmed + "%")
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" ILIKE "+placeholder)
	}
	b.add("(" + strings.Join(parts, " OR ") + ")")
}

func (b *condBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}
