// Package sqlutil builds the dynamic fragments of parameterized Postgres statements.
package sqlutil

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"jobly/internal/apperr"
)

// Field is one entry of a partial update, keyed by its external (JSON) name.
type Field struct {
	Key   string
	Value any
}

// ColumnMap translates external field names to column names.
type ColumnMap map[string]string

// ColumnFor returns the column for key, or key itself when no translation exists.
func (m ColumnMap) ColumnFor(key string) string {
	if col, ok := m[key]; ok && col != "" {
		return col
	}
	return key
}

// Update is a compiled SET clause. Values[i] binds to placeholder $i+1.
type Update struct {
	SetClause string
	Values    []any
}

// NextPlaceholder is the placeholder for the first argument after the SET values.
func (u Update) NextPlaceholder() string {
	return Placeholder(len(u.Values) + 1)
}

// PartialUpdate compiles fields, in order, into `"col"=$1, "col2"=$2` and the matching values.
//
//	[{firstName Aliya} {age 32}], {firstName: first_name}
//	-> `"first_name"=$1, "age"=$2`, [Aliya 32]
func PartialUpdate(fields []Field, columns ColumnMap) (Update, error) {
	if len(fields) == 0 {
		return Update{}, fmt.Errorf("%w: no data supplied", apperr.ErrValidation)
	}

	cols := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for i, f := range fields {
		cols = append(cols, pq.QuoteIdentifier(columns.ColumnFor(f.Key))+"="+Placeholder(i+1))
		values = append(values, f.Value)
	}

	return Update{
		SetClause: strings.Join(cols, ", "),
		Values:    values,
	}, nil
}

// FieldsFromMap orders a map by key so the compiled clause is stable across calls.
func FieldsFromMap(data map[string]any) []Field {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: data[k]})
	}
	return fields
}

// Placeholder renders the n-th positional parameter.
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
