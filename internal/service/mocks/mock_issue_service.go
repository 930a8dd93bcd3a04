package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"issuetracker/internal/model"
	"issuetracker/internal/service"
)

type MockIssueService struct {
	mock.Mock
}

var _ service.IssueService = (*MockIssueService)(nil)

func (m *MockIssueService) Create(ctx context.Context, project string, fields model.Fields) (*model.Issue, error) {
	args := m.Called(ctx, project, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueService) List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error) {
	args := m.Called(ctx, project, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Issue), args.Error(1)
}

func (m *MockIssueService) Update(ctx context.Context, project string, fields model.Fields) (*service.Ack, error) {
	args := m.Called(ctx, project, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Ack), args.Error(1)
}

func (m *MockIssueService) Delete(ctx context.Context, project, id string) (*service.Ack, error) {
	args := m.Called(ctx, project, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Ack), args.Error(1)
}
