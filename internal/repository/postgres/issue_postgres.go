package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
)

const issueColumns = `id, project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on`

// textColumns maps filterable text fields to their column.
var textColumns = map[string]string{
	model.FieldIssueTitle: "issue_title",
	model.FieldIssueText:  "issue_text",
	model.FieldCreatedBy:  "created_by",
	model.FieldAssignedTo: "assigned_to",
	model.FieldStatusText: "status_text",
}

// IssuePostgres is a PostgreSQL implementation of repository.IssueRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Rows are ordered by a BIGSERIAL seq column, which preserves insertion order.
type IssuePostgres struct {
	db *sql.DB
}

// NewIssuePostgres creates a new IssuePostgres repository.
func NewIssuePostgres(db *sql.DB) *IssuePostgres {
	return &IssuePostgres{db: db}
}

var _ repository.IssueRepository = (*IssuePostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(row scanner) (*model.Issue, error) {
	var i model.Issue
	if err := row.Scan(
		&i.ID,
		&i.Project,
		&i.IssueTitle,
		&i.IssueText,
		&i.CreatedBy,
		&i.AssignedTo,
		&i.StatusText,
		&i.Open,
		&i.CreatedOn,
		&i.UpdatedOn,
	); err != nil {
		return nil, err
	}
	i.CreatedOn = i.CreatedOn.UTC()
	i.UpdatedOn = i.UpdatedOn.UTC()
	return &i, nil
}

// Create inserts a new issue row; the database assigns the id.
func (r *IssuePostgres) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	const q = `
		INSERT INTO issues (project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + issueColumns
	row := r.db.QueryRowContext(ctx, q,
		issue.Project,
		issue.IssueTitle,
		issue.IssueText,
		issue.CreatedBy,
		issue.AssignedTo,
		issue.StatusText,
		issue.Open,
		issue.CreatedOn,
		issue.UpdatedOn,
	)
	return scanIssue(row)
}

// List returns the project's issues matching every filter constraint in insertion order.
func (r *IssuePostgres) List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error) {
	where, args, ok := buildWhere(project, filter)
	items := make([]model.Issue, 0)
	if !ok {
		return items, nil
	}

	q := `SELECT ` + issueColumns + ` FROM issues WHERE ` + where + ` ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// buildWhere compiles a filter into a WHERE clause. ok is false when some
// constraint can never match (unknown field, malformed id or boolean), in
// which case no query needs to run. Keys are visited in sorted order so the
// generated SQL is stable.
func buildWhere(project string, filter model.Filter) (string, []any, bool) {
	conds := []string{"project = $1"}
	args := []any{project}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	for _, k := range keys {
		v := filter[k]
		switch k {
		case model.FieldID:
			if !repository.ValidID(v) {
				return "", nil, false
			}
			add("id", v)
		case model.FieldProject:
			if v != project {
				return "", nil, false
			}
		case model.FieldOpen:
			b, err := model.ParseOpen(v)
			if err != nil {
				return "", nil, false
			}
			add("open", b)
		case model.FieldCreatedOn, model.FieldUpdatedOn:
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return "", nil, false
			}
			add(k, t)
		default:
			col, known := textColumns[k]
			if !known {
				return "", nil, false
			}
			add(col, v)
		}
	}
	return strings.Join(conds, " AND "), args, true
}

// Update applies the patch with a single UPDATE ... RETURNING statement.
func (r *IssuePostgres) Update(ctx context.Context, project, id string, patch model.IssuePatch, updatedOn time.Time) (*model.Issue, error) {
	if !repository.ValidID(id) {
		return nil, repository.ErrNotFound
	}

	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.IssueTitle != nil {
		set("issue_title", *patch.IssueTitle)
	}
	if patch.IssueText != nil {
		set("issue_text", *patch.IssueText)
	}
	if patch.CreatedBy != nil {
		set("created_by", *patch.CreatedBy)
	}
	if patch.AssignedTo != nil {
		set("assigned_to", *patch.AssignedTo)
	}
	if patch.StatusText != nil {
		set("status_text", *patch.StatusText)
	}
	if patch.Open != nil {
		set("open", *patch.Open)
	}
	set("updated_on", updatedOn)

	args = append(args, project, id)
	q := fmt.Sprintf(`UPDATE issues SET %s WHERE project = $%d AND id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), issueColumns)

	i, err := scanIssue(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

// Delete removes an issue and returns the deleted row.
func (r *IssuePostgres) Delete(ctx context.Context, project, id string) (*model.Issue, error) {
	if !repository.ValidID(id) {
		return nil, repository.ErrNotFound
	}
	const q = `DELETE FROM issues WHERE project = $1 AND id = $2 RETURNING ` + issueColumns
	i, err := scanIssue(r.db.QueryRowContext(ctx, q, project, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

// Ping verifies the database connection.
func (r *IssuePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
