package company

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"jobly/internal/apperr"
	"jobly/internal/sqlutil"
)

// Filter holds the optional search constraints of GET /companies. Nil means absent.
type Filter struct {
	NameLike     *string
	MinEmployees *int
	MaxEmployees *int
}

var filterKeys = []string{"nameLike", "minEmployees", "maxEmployees"}

// CompileFilter renders f as a WHERE fragment in the order nameLike, minEmployees,
// maxEmployees.
func CompileFilter(f Filter) (string, []any) {
	var clauses []string
	args := []any{}

	if f.NameLike != nil {
		args = append(args, "%"+*f.NameLike+"%")
		clauses = append(clauses, "name ILIKE "+sqlutil.Placeholder(len(args)))
	}
	if f.MinEmployees != nil {
		args = append(args, int64(*f.MinEmployees))
		clauses = append(clauses, "num_employees >= "+sqlutil.Placeholder(len(args)))
	}
	if f.MaxEmployees != nil {
		args = append(args, int64(*f.MaxEmployees))
		clauses = append(clauses, "num_employees <= "+sqlutil.Placeholder(len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

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
	if q.Has("nameLike") {
		name := q.Get("nameLike")
		f.NameLike = &name
	}

	var err error
	if f.MinEmployees, err = count(q, "minEmployees"); err != nil {
		return Filter{}, err
	}
	if f.MaxEmployees, err = count(q, "maxEmployees"); err != nil {
		return Filter{}, err
	}

	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return Filter{}, fmt.Errorf("%w: minEmployees cannot be greater than maxEmployees", apperr.ErrValidation)
	}
	return f, nil
}

func count(q url.Values, key string) (*int, error) {
	if !q.Has(key) {
		return nil, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", apperr.ErrValidation, key)
	}
	return &n, nil
}

func isFilterKey(k string) bool {
	for _, key := range filterKeys {
		if key == k {
			return true
		}
	}
	return false
}
