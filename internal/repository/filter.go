package repository

import (
	"fmt"
	"strings"
)

// Predicate is a composable SQL condition. Values are always bound as
// placeholders; column names come only from allow-lists in this package.
type Predicate interface {
	render(b *queryArgs) string
}

type queryArgs struct {
	values []any
}

func (q *queryArgs) bind(v any) string {
	q.values = append(q.values, v)
	return fmt.Sprintf("$%d", len(q.values))
}

type containsPredicate struct {
	column string
	term   string
}

type equalsPredicate struct {
	column string
	value  any
}

type groupPredicate struct {
	op    string
	parts []Predicate
}

// Contains matches rows whose column contains term, ignoring case
func Contains(column, term string) Predicate {
	return containsPredicate{column: column, term: term}
}

// Equals matches rows whose column equals value
func Equals(column string, value any) Predicate {
	return equalsPredicate{column: column, value: value}
}

// And matches rows satisfying every part. An empty And matches everything.
func And(parts ...Predicate) Predicate {
	return groupPredicate{op: "AND", parts: compact(parts)}
}

// Or matches rows satisfying any part. An empty Or matches everything.
func Or(parts ...Predicate) Predicate {
	return groupPredicate{op: "OR", parts: compact(parts)}
}

func (p containsPredicate) render(q *queryArgs) string {
	return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, p.column, q.bind("%"+escapeLike(p.term)+"%"))
}

func (p equalsPredicate) render(q *queryArgs) string {
	return fmt.Sprintf("%s = %s", p.column, q.bind(p.value))
}

func (p groupPredicate) render(q *queryArgs) string {
	switch len(p.parts) {
	case 0:
		return ""
	case 1:
		return p.parts[0].render(q)
	}

	rendered := make([]string, 0, len(p.parts))
	for _, part := range p.parts {
		if s := part.render(q); s != "" {
			rendered = append(rendered, s)
		}
	}
	if len(rendered) == 0 {
		return ""
	}
	return "(" + strings.Join(rendered, " "+p.op+" ") + ")"
}

// Where renders the predicate as a WHERE clause and its bound values.
// A nil or empty predicate yields an empty clause.
func Where(p Predicate) (string, []any) {
	if p == nil {
		return "", nil
	}
	q := &queryArgs{}
	cond := p.render(q)
	if cond == "" {
		return "", nil
	}
	return "WHERE " + cond, q.values
}

func compact(parts []Predicate) []Predicate {
	out := parts[:0:0]
	for _, p := range parts {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
