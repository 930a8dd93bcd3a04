package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
	"issuetracker/internal/storage"
)

// Acknowledgement texts for successful writes.
const (
	ResultUpdated = "successfully updated"
	ResultDeleted = "successfully deleted"
)

var tracer = otel.Tracer("issuetracker/internal/service")

// Ack acknowledges a successful update or delete.
type Ack struct {
	Result string `json:"result"`
	ID     string `json:"_id"`
}

// IssueService defines the use cases for handling issues.
// Domain failures are returned as *IssueError; anything else is an infrastructure error.
type IssueService interface {
	// Create validates the submitted fields, applies defaults and stores a new issue.
	Create(ctx context.Context, project string, fields model.Fields) (*model.Issue, error)

	// List returns the project's issues matching filter, in insertion order.
	List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error)

	// Update merges the submitted fields into the issue named by fields["_id"].
	Update(ctx context.Context, project string, fields model.Fields) (*Ack, error)

	// Delete removes an issue and archives it when an archive store is configured.
	Delete(ctx context.Context, project, id string) (*Ack, error)
}

// issueService is a concrete implementation of IssueService.
type issueService struct {
	repo    repository.IssueRepository
	archive storage.Storage
	log     zerolog.Logger
	now     func() time.Time
}

// NewIssueService constructs a new IssueService. archive may be nil.
func NewIssueService(repo repository.IssueRepository, archive storage.Storage, log zerolog.Logger) IssueService {
	return &issueService{
		repo:    repo,
		archive: archive,
		log:     log.With().Str("component", "issue_service").Logger(),
		now:     time.Now,
	}
}

// timestamp is the current time at the precision every backend can store.
func (s *issueService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// logger prefers the request-scoped logger carried by ctx so service lines
// share the request_id of the access log.
func (s *issueService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		scoped := l.With().Str("component", "issue_service").Logger()
		return &scoped
	}
	return &s.log
}

func startSpan(ctx context.Context, op, project string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "IssueService."+op, trace.WithAttributes(attribute.String("issue.project", project)))
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (s *issueService) Create(ctx context.Context, project string, fields model.Fields) (*model.Issue, error) {
	ctx, span := startSpan(ctx, "Create", project)
	defer span.End()

	title := fields[model.FieldIssueTitle]
	text := fields[model.FieldIssueText]
	author := fields[model.FieldCreatedBy]
	if title == "" || text == "" || author == "" {
		return nil, &IssueError{Err: ErrValidation}
	}

	open := true
	if v := fields[model.FieldOpen]; v != "" {
		b, err := model.ParseOpen(v)
		if err != nil {
			return nil, &IssueError{Err: ErrValidation}
		}
		open = b
	}

	now := s.timestamp()
	stored, err := s.repo.Create(ctx, &model.Issue{
		Project:    project,
		IssueTitle: title,
		IssueText:  text,
		CreatedBy:  author,
		AssignedTo: fields[model.FieldAssignedTo],
		StatusText: fields[model.FieldStatusText],
		Open:       open,
		CreatedOn:  now,
		UpdatedOn:  now,
	})
	if err != nil {
		fail(span, err)
		return nil, fmt.Errorf("create issue: %w", err)
	}
	span.SetAttributes(attribute.String("issue.id", stored.ID))
	return stored, nil
}

func (s *issueService) List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error) {
	ctx, span := startSpan(ctx, "List", project)
	defer span.End()

	items, err := s.repo.List(ctx, project, filter)
	if err != nil {
		fail(span, err)
		return nil, fmt.Errorf("list issues: %w", err)
	}
	if items == nil {
		items = []model.Issue{}
	}
	span.SetAttributes(attribute.Int("issue.count", len(items)))
	return items, nil
}

// Update checks, in this order: a missing _id, an empty patch, then whether
// the write succeeds. Every failure after the first two is reported as
// ErrUpdateFailed.
func (s *issueService) Update(ctx context.Context, project string, fields model.Fields) (*Ack, error) {
	ctx, span := startSpan(ctx, "Update", project)
	defer span.End()

	id := fields[model.FieldID]
	if id == "" {
		return nil, &IssueError{Err: ErrMissingID}
	}
	span.SetAttributes(attribute.String("issue.id", id))

	patch, err := model.ParsePatch(fields)
	if err == nil && patch.IsEmpty() {
		return nil, &IssueError{ID: id, Err: ErrNoUpdateFields}
	}
	if err != nil {
		s.logger(ctx).Debug().Err(err).Str("project", project).Str("_id", id).Msg("rejected update payload")
		return nil, &IssueError{ID: id, Err: ErrUpdateFailed}
	}

	if _, err := s.repo.Update(ctx, project, id, patch, s.timestamp()); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			fail(span, err)
			s.logger(ctx).Error().Err(err).Str("project", project).Str("_id", id).Msg("update issue failed")
		}
		return nil, &IssueError{ID: id, Err: ErrUpdateFailed}
	}
	return &Ack{Result: ResultUpdated, ID: id}, nil
}

func (s *issueService) Delete(ctx context.Context, project, id string) (*Ack, error) {
	ctx, span := startSpan(ctx, "Delete", project)
	defer span.End()

	if id == "" {
		return nil, &IssueError{Err: ErrMissingID}
	}
	span.SetAttributes(attribute.String("issue.id", id))

	removed, err := s.repo.Delete(ctx, project, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			fail(span, err)
			s.logger(ctx).Error().Err(err).Str("project", project).Str("_id", id).Msg("delete issue failed")
		}
		return nil, &IssueError{ID: id, Err: ErrDeleteFailed}
	}

	s.archiveIssue(ctx, removed)
	return &Ack{Result: ResultDeleted, ID: id}, nil
}

// ArchiveKey is the object key a deleted issue is archived under.
func ArchiveKey(project, id string) string {
	return "issues/" + url.PathEscape(project) + "/" + id + ".json"
}

// archiveIssue copies a deleted issue to the archive store. The delete has
// already happened, so failures are only logged.
func (s *issueService) archiveIssue(ctx context.Context, issue *model.Issue) {
	if s.archive == nil || issue == nil {
		return
	}
	data, err := json.Marshal(issue)
	if err != nil {
		s.logger(ctx).Warn().Err(err).Str("_id", issue.ID).Msg("encode archived issue")
		return
	}
	info, err := s.archive.Put(ctx, ArchiveKey(issue.Project, issue.ID), bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
		Metadata:    map[string]string{"project": issue.Project},
	})
	if err != nil {
		s.logger(ctx).Warn().Err(err).Str("project", issue.Project).Str("_id", issue.ID).Msg("archive deleted issue failed")
		return
	}
	s.logger(ctx).Info().
		Str("key", info.Key).
		Str("etag", info.ETag).
		Int64("size", info.Size).
		Str("_id", issue.ID).
		Msg("deleted issue archived")
}
