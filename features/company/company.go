package company

import (
	"context"

	"jobly/features/job"
	"jobly/internal/sqlutil"
	"jobly/internal/validate"
)

type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// Detail is a company together with its jobs, as returned by GET /companies/{handle}.
type Detail struct {
	Company
	Jobs []Job `json:"jobs"`
}

// Job is the summary of a posting nested under its company.
type Job struct {
	ID     int         `json:"id"`
	Title  string      `json:"title"`
	Salary *int        `json:"salary"`
	Equity *job.Equity `json:"equity"`
}

// NewCompany is the body of POST /companies.
type NewCompany struct {
	Handle       string  `json:"handle" validate:"required,min=1,max=25,handle"`
	Name         string  `json:"name" validate:"required,min=1"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,gte=0,lte=2147483647"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// UpdateCompany is the body of PATCH /companies/{handle}. The handle cannot change.
type UpdateCompany struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,gte=0,lte=2147483647"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

var updatePatch = validate.Patch{
	Allowed:  []string{"name", "description", "numEmployees", "logoUrl"},
	Nullable: []string{"numEmployees", "logoUrl"},
}

func (u UpdateCompany) Fields(present []string) []sqlutil.Field {
	fields := make([]sqlutil.Field, 0, len(present))
	for _, key := range present {
		var value any
		switch key {
		case "name":
			value = nullableString(u.Name)
		case "description":
			value = nullableString(u.Description)
		case "numEmployees":
			value = nullableInt(u.NumEmployees)
		case "logoUrl":
			value = nullableString(u.LogoURL)
		default:
			continue
		}
		fields = append(fields, sqlutil.Field{Key: key, Value: value})
	}
	return fields
}

// name and description fall through to the identity mapping.
var columns = sqlutil.ColumnMap{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

type Repository interface {
	Create(ctx context.Context, in NewCompany) (*Company, error)
	FindAll(ctx context.Context, f Filter) ([]Company, error)
	Get(ctx context.Context, handle string) (*Company, error)
	Update(ctx context.Context, handle string, fields []sqlutil.Field) (*Company, error)
	Remove(ctx context.Context, handle string) error
	Count(ctx context.Context) (int, error)
}

// JobLister supplies the jobs shown on a company detail.
type JobLister interface {
	ListByCompany(ctx context.Context, handle string) ([]job.Job, error)
}

func nullableString(p *string) any {
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
