package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
)

type MockIssueRepository struct {
	mock.Mock
}

var _ repository.IssueRepository = (*MockIssueRepository)(nil)

func (m *MockIssueRepository) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	args := m.Called(ctx, issue)
	if f, ok := args.Get(0).(func(context.Context, *model.Issue) *model.Issue); ok {
		return f(ctx, issue), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error) {
	args := m.Called(ctx, project, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Issue), args.Error(1)
}

func (m *MockIssueRepository) Update(ctx context.Context, project, id string, patch model.IssuePatch, updatedOn time.Time) (*model.Issue, error) {
	args := m.Called(ctx, project, id, patch, updatedOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) Delete(ctx context.Context, project, id string) (*model.Issue, error) {
	args := m.Called(ctx, project, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
