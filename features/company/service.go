package company

import (
	"context"

	"jobly/internal/config"
	"jobly/internal/sqlutil"
)

type EventEmitter interface {
	Emit(ctx context.Context, topic, eventType string, data any)
}

type Service struct {
	repo   Repository
	jobs   JobLister
	events EventEmitter
}

func NewService(repo Repository, jobs JobLister, events EventEmitter) *Service {
	return &Service{repo: repo, jobs: jobs, events: events}
}

func (s *Service) Create(ctx context.Context, in NewCompany) (*Company, error) {
	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "company.created", c)
	return c, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Company, error) {
	return s.repo.FindAll(ctx, f)
}

// Get returns the company with its jobs ordered by id.
func (s *Service) Get(ctx context.Context, handle string) (*Detail, error) {
	c, err := s.repo.Get(ctx, handle)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByCompany(ctx, handle)
	if err != nil {
		return nil, err
	}

	d := &Detail{Company: *c, Jobs: make([]Job, 0, len(jobs))}
	for _, j := range jobs {
		d.Jobs = append(d.Jobs, Job{ID: j.ID, Title: j.Title, Salary: j.Salary, Equity: j.Equity})
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, handle string, fields []sqlutil.Field) (*Company, error) {
	c, err := s.repo.Update(ctx, handle, fields)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "company.updated", c)
	return c, nil
}

func (s *Service) Remove(ctx context.Context, handle string) error {
	if err := s.repo.Remove(ctx, handle); err != nil {
		return err
	}
	s.emit(ctx, "company.deleted", map[string]string{"handle": handle})
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) emit(ctx context.Context, eventType string, data any) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, config.TopicCompanies, eventType, data)
}
