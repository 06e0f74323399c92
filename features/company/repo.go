package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"jobly/internal/apperr"
	"jobly/internal/sqlutil"
)

const returning = `handle, name, description, num_employees, logo_url`

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(s scanner) (*Company, error) {
	var (
		c       Company
		numEmps sql.NullInt64
		logoURL sql.NullString
	)
	if err := s.Scan(&c.Handle, &c.Name, &c.Description, &numEmps, &logoURL); err != nil {
		return nil, err
	}
	if numEmps.Valid {
		n := int(numEmps.Int64)
		c.NumEmployees = &n
	}
	if logoURL.Valid {
		c.LogoURL = &logoURL.String
	}
	return &c, nil
}

func (r *PostgresRepo) Create(ctx context.Context, in NewCompany) (*Company, error) {
	query := `INSERT INTO companies (handle, name, description, num_employees, logo_url) VALUES ($1, $2, $3, $4, $5) RETURNING ` + returning
	c, err := scanCompany(r.db.QueryRowContext(ctx, query,
		in.Handle, in.Name, in.Description, nullableInt(in.NumEmployees), nullableString(in.LogoURL)))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: duplicate company: %s", apperr.ErrValidation, in.Handle)
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepo) FindAll(ctx context.Context, f Filter) ([]Company, error) {
	where, args := CompileFilter(f)
	query := `SELECT ` + returning + ` FROM companies`
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, handle string) (*Company, error) {
	query := `SELECT ` + returning + ` FROM companies WHERE handle = $1`
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, handle))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no company: %s", apperr.ErrNotFound, handle)
	}
	return c, err
}

func (r *PostgresRepo) Update(ctx context.Context, handle string, fields []sqlutil.Field) (*Company, error) {
	u, err := sqlutil.PartialUpdate(fields, columns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = %s RETURNING %s`, u.SetClause, u.NextPlaceholder(), returning)
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, append(u.Values, handle)...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no company: %s", apperr.ErrNotFound, handle)
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: duplicate company name", apperr.ErrValidation)
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepo) Remove(ctx context.Context, handle string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: no company: %s", apperr.ErrNotFound, handle)
	}
	return err
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}
