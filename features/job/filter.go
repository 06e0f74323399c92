package job

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"jobly/internal/apperr"
	"jobly/internal/sqlutil"
)

// Filter holds the optional search constraints of GET /jobs. Nil means absent.
type Filter struct {
	Title     *string
	MinSalary *int
	HasEquity bool
}

var filterKeys = []string{"title", "minSalary", "hasEquity"}

// CompileFilter renders f as a WHERE fragment and its arguments.
//
// Clauses are emitted in the fixed order title, minSalary, hasEquity and joined with AND.
// hasEquity binds no argument. With no constraints the fragment is empty.
func CompileFilter(f Filter) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 2)

	if f.Title != nil {
		args = append(args, "%"+*f.Title+"%")
		clauses = append(clauses, "title ILIKE "+sqlutil.Placeholder(len(args)))
	}
	if f.MinSalary != nil {
		args = append(args, int64(*f.MinSalary))
		clauses = append(clauses, "salary >= "+sqlutil.Placeholder(len(args)))
	}
	if f.HasEquity {
		clauses = append(clauses, "equity > 0")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// ParseFilter reads a Filter from query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	var unknown []string
	for k := range q {
		if !isFilterKey(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Filter{}, fmt.Errorf("%w: unknown search fields %s; allowed: %s",
			apperr.ErrValidation, strings.Join(unknown, ", "), strings.Join(filterKeys, ", "))
	}

	var f Filter
	if q.Has("title") {
		title := q.Get("title")
		f.Title = &title
	}
	if q.Has("minSalary") {
		n, err := strconv.Atoi(q.Get("minSalary"))
		if err != nil || n < 0 {
			return Filter{}, fmt.Errorf("%w: minSalary must be a non-negative integer", apperr.ErrValidation)
		}
		f.MinSalary = &n
	}
	if q.Has("hasEquity") {
		b, err := strconv.ParseBool(q.Get("hasEquity"))
		if err != nil {
			return Filter{}, fmt.Errorf("%w: hasEquity must be true or false", apperr.ErrValidation)
		}
		f.HasEquity = b
	}
	return f, nil
}

func isFilterKey(k string) bool {
	for _, key := range filterKeys {
		if key == k {
			return true
		}
	}
	return false
}
