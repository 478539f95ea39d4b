package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeQuery trims surrounding whitespace and uppercases the query.
// A blank query normalizes to "".
func NormalizeQuery(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// matcher compares names against one normalized query.
// A cases.Caser is stateful, so each search builds its own matcher.
type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.needle = m.fold.String(query)
	return m
}

func (m *matcher) match(name string) bool {
	return strings.Contains(m.fold.String(name), m.needle)
}

// Search filters the dataset by substring match on nameColumn.
//
// A blank query returns StatusNoQuery. Otherwise every record whose
// nameColumn value contains the normalized query, ignoring case, is kept in
// dataset order; records without that field never match. No match at all
// returns StatusZeroMatches. Search does not modify the dataset.
func Search(ds *Dataset, query, nameColumn string) Result {
	if nameColumn == "" {
		nameColumn = DefaultNameColumn
	}

	res := Result{
		Query:   NormalizeQuery(query),
		Records: []Record{},
		Columns: []string{},
	}
	if ds != nil && ds.Columns != nil {
		res.Columns = ds.Columns
	}

	if res.Query == "" {
		res.Status = StatusNoQuery
		return res
	}

	m := newMatcher(res.Query)
	if ds != nil {
		for _, rec := range ds.Records {
			name, ok := rec.Get(nameColumn)
			if !ok {
				continue
			}
			if m.match(name) {
				res.Records = append(res.Records, rec)
			}
		}
	}

	if len(res.Records) == 0 {
		res.Status = StatusZeroMatches
		return res
	}
	res.Status = StatusMatches
	return res
}
