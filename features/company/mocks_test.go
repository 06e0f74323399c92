package company_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobly/features/company"
	"jobly/features/job"
	"jobly/internal/auth"
	"jobly/internal/sqlutil"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Create(ctx context.Context, in company.NewCompany) (*company.Company, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockRepo) FindAll(ctx context.Context, f company.Filter) ([]company.Company, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockRepo) Get(ctx context.Context, handle string) (*company.Company, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, handle string, fields []sqlutil.Field) (*company.Company, error) {
	args := m.Called(ctx, handle, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockRepo) Remove(ctx context.Context, handle string) error {
	return m.Called(ctx, handle).Error(0)
}

func (m *MockRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockJobLister struct {
	mock.Mock
}

func (m *MockJobLister) ListByCompany(ctx context.Context, handle string) ([]job.Job, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]job.Job), args.Error(1)
}

type MockEmitter struct {
	mock.Mock
}

func (m *MockEmitter) Emit(ctx context.Context, topic, eventType string, data any) {
	m.Called(ctx, topic, eventType, data)
}

type stubVerifier map[string]auth.Identity

func (s stubVerifier) Verify(token string) (auth.Identity, bool) {
	id, ok := s[token]
	return id, ok
}

var verifier = stubVerifier{
	"u1-token":    {Username: "u1"},
	"admin-token": {Username: "admin", IsAdmin: true},
}
