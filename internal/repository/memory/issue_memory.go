package memory

import (
	"context"
	"sync"
	"time"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
)

// IssueMemory keeps issues in process memory, one append-ordered slice per project.
// It is safe for concurrent use and is meant for local runs and tests.
type IssueMemory struct {
	mu       sync.RWMutex
	projects map[string][]model.Issue
}

// NewIssueMemory creates an empty in-memory repository.
func NewIssueMemory() *IssueMemory {
	return &IssueMemory{projects: make(map[string][]model.Issue)}
}

var _ repository.IssueRepository = (*IssueMemory)(nil)

func (r *IssueMemory) Create(_ context.Context, issue *model.Issue) (*model.Issue, error) {
	stored := *issue
	stored.ID = repository.NewID()

	r.mu.Lock()
	r.projects[stored.Project] = append(r.projects[stored.Project], stored)
	r.mu.Unlock()

	return &stored, nil
}

func (r *IssueMemory) List(_ context.Context, project string, filter model.Filter) ([]model.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Issue, 0)
	for _, i := range r.projects[project] {
		if filter.Match(i) {
			items = append(items, i)
		}
	}
	return items, nil
}

func (r *IssueMemory) Update(_ context.Context, project, id string, patch model.IssuePatch, updatedOn time.Time) (*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(project, id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	issue := &r.projects[project][idx]
	patch.Apply(issue)
	issue.UpdatedOn = updatedOn

	out := *issue
	return &out, nil
}

func (r *IssueMemory) Delete(_ context.Context, project, id string) (*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(project, id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	items := r.projects[project]
	removed := items[idx]
	r.projects[project] = append(items[:idx:idx], items[idx+1:]...)
	return &removed, nil
}

func (r *IssueMemory) Ping(context.Context) error {
	return nil
}

// indexOf must be called with mu held.
func (r *IssueMemory) indexOf(project, id string) int {
	for i, issue := range r.projects[project] {
		if issue.ID == id {
			return i
		}
	}
	return -1
}
