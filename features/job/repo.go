package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"jobly/internal/apperr"
	"jobly/internal/sqlutil"
)

const returning = `id, title, salary, equity, company_handle`

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*Job, error) {
	var (
		j      Job
		salary sql.NullInt64
		equity sql.NullString
	)
	if err := s.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	if salary.Valid {
		v := int(salary.Int64)
		j.Salary = &v
	}
	if equity.Valid {
		v := Equity(equity.String)
		j.Equity = &v
	}
	return &j, nil
}

func (r *PostgresRepo) Create(ctx context.Context, in NewJob) (*Job, error) {
	query := `INSERT INTO jobs (title, salary, equity, company_handle) VALUES ($1, $2, $3, $4) RETURNING ` + returning
	row := r.db.QueryRowContext(ctx, query, in.Title, nullableInt(in.Salary), nullableEquity(in.Equity), in.CompanyHandle)
	j, err := scanJob(row)
	if err != nil {
		return nil, mapWriteError(err, in.CompanyHandle)
	}
	return j, nil
}

func (r *PostgresRepo) FindAll(ctx context.Context, f Filter) ([]Job, error) {
	where, args := CompileFilter(f)
	query := `SELECT ` + returning + ` FROM jobs`
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY title"

	return r.list(ctx, query, args...)
}

func (r *PostgresRepo) ListByCompany(ctx context.Context, handle string) ([]Job, error) {
	query := `SELECT ` + returning + ` FROM jobs WHERE company_handle = $1 ORDER BY id`
	return r.list(ctx, query, handle)
}

func (r *PostgresRepo) list(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id int) (*Job, error) {
	query := `SELECT ` + returning + ` FROM jobs WHERE id = $1`
	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no job: %d", apperr.ErrNotFound, id)
	}
	return j, err
}

// Update applies fields to job id. An empty field list fails before the store is reached.
func (r *PostgresRepo) Update(ctx context.Context, id int, fields []sqlutil.Field) (*Job, error) {
	u, err := sqlutil.PartialUpdate(fields, columns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = %s RETURNING %s`, u.SetClause, u.NextPlaceholder(), returning)
	args := append(u.Values, id)

	j, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no job: %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, mapWriteError(err, handleOf(fields))
	}
	return j, nil
}

func (r *PostgresRepo) Remove(ctx context.Context, id int) error {
	var deleted int
	err := r.db.QueryRowContext(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: no job: %d", apperr.ErrNotFound, id)
	}
	return err
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

// Postgres SQLSTATEs mapped to validation errors.
const (
	foreignKeyViolation = "23503"
	numericOutOfRange   = "22003"
)

func mapWriteError(err error, handle any) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case foreignKeyViolation:
		return fmt.Errorf("%w: no company: %v", apperr.ErrValidation, handle)
	case numericOutOfRange:
		return fmt.Errorf("%w: value out of range", apperr.ErrValidation)
	}
	return err
}

func handleOf(fields []sqlutil.Field) any {
	for _, f := range fields {
		if f.Key == "companyHandle" {
			return f.Value
		}
	}
	return ""
}
