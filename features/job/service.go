package job

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
	events EventEmitter
}

func NewService(repo Repository, events EventEmitter) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, in NewJob) (*Job, error) {
	j, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "job.created", j)
	return j, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Job, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int) (*Job, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByCompany(ctx context.Context, handle string) ([]Job, error) {
	return s.repo.ListByCompany(ctx, handle)
}

func (s *Service) Update(ctx context.Context, id int, fields []sqlutil.Field) (*Job, error) {
	j, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "job.updated", j)
	return j, nil
}

func (s *Service) Remove(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, "job.deleted", map[string]int{"id": id})
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) emit(ctx context.Context, eventType string, data any) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, config.TopicJobs, eventType, data)
}
