package job

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"jobly/internal/sqlutil"
	"jobly/internal/validate"
)

type Job struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Salary        *int    `json:"salary"`
	Equity        *Equity `json:"equity"`
	CompanyHandle string  `json:"companyHandle"`
}

// Equity is a decimal fraction in [0, 1] kept as its literal text so no precision is lost
// between the request body and the NUMERIC column. It decodes from a JSON string or number.
type Equity string

func (e *Equity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = Equity(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("equity must be a decimal string or number")
	}
	*e = Equity(n.String())
	return nil
}

// NewJob is the body of POST /jobs.
type NewJob struct {
	Title         string  `json:"title" validate:"required,min=1"`
	Salary        *int    `json:"salary" validate:"omitempty,gte=0,lte=2147483647"`
	Equity        *Equity `json:"equity" validate:"omitempty,fraction"`
	CompanyHandle string  `json:"companyHandle" validate:"required,min=1,max=25"`
}

// UpdateJob is the body of PATCH /jobs/{id}. Only keys present in the body are applied.
type UpdateJob struct {
	Title         *string `json:"title" validate:"omitempty,min=1"`
	Salary        *int    `json:"salary" validate:"omitempty,gte=0,lte=2147483647"`
	Equity        *Equity `json:"equity" validate:"omitempty,fraction"`
	CompanyHandle *string `json:"companyHandle" validate:"omitempty,min=1,max=25"`
}

var updatePatch = validate.Patch{
	Allowed:  []string{"title", "salary", "equity", "companyHandle"},
	Nullable: []string{"salary", "equity"},
}

// Fields lists the update entries for the given present keys, in their order.
func (u UpdateJob) Fields(present []string) []sqlutil.Field {
	fields := make([]sqlutil.Field, 0, len(present))
	for _, key := range present {
		var value any
		switch key {
		case "title":
			value = derefString(u.Title)
		case "salary":
			value = nullableInt(u.Salary)
		case "equity":
			value = nullableEquity(u.Equity)
		case "companyHandle":
			value = derefString(u.CompanyHandle)
		default:
			continue
		}
		fields = append(fields, sqlutil.Field{Key: key, Value: value})
	}
	return fields
}

// columns translates Job JSON names to jobs columns.
var columns = sqlutil.ColumnMap{
	"title":         "title",
	"salary":        "salary",
	"equity":        "equity",
	"companyHandle": "company_handle",
}

type Repository interface {
	Create(ctx context.Context, in NewJob) (*Job, error)
	FindAll(ctx context.Context, f Filter) ([]Job, error)
	Get(ctx context.Context, id int) (*Job, error)
	Update(ctx context.Context, id int, fields []sqlutil.Field) (*Job, error)
	Remove(ctx context.Context, id int) error
	ListByCompany(ctx context.Context, handle string) ([]Job, error)
	Count(ctx context.Context) (int, error)
}

func derefString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullableEquity(p *Equity) any {
	if p == nil {
		return nil
	}
	return string(*p)
}
