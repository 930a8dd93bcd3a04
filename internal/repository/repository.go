package repository

import (
	"context"
	"errors"
	"time"

	"issuetracker/internal/model"
)

// ErrNotFound is returned when no issue with the given id exists in the project.
// Malformed ids produce the same error; backend parse failures never leak out.
var ErrNotFound = errors.New("issue not found")

// IssueRepository defines data access for issues.
// No business logic here, strictly persistence operations.
// Implementations live in subpackages (postgres, redis, memory).
type IssueRepository interface {
	// Create stores a new issue and returns it with the backend-assigned ID.
	Create(ctx context.Context, issue *model.Issue) (*model.Issue, error)

	// List returns the project's issues matching filter, in insertion order.
	// It never returns a nil slice on success.
	List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error)

	// Update merges patch into the stored issue and sets its updated_on.
	Update(ctx context.Context, project, id string, patch model.IssuePatch, updatedOn time.Time) (*model.Issue, error)

	// Delete removes an issue and returns the removed record.
	Delete(ctx context.Context, project, id string) (*model.Issue, error)

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}
