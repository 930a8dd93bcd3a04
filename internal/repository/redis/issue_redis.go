package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
)

// IssueRedis provides issue persistence in Redis.
//
// Each issue is a JSON string at issue:{project}:{id}. The list
// issues:{project} holds the ids in insertion order.
type IssueRedis struct {
	client *redis.Client
}

// NewIssueRedis creates a new IssueRedis.
func NewIssueRedis(client *redis.Client) *IssueRedis {
	return &IssueRedis{client: client}
}

var _ repository.IssueRepository = (*IssueRedis)(nil)

func issueKey(project, id string) string {
	return "issue:" + project + ":" + id
}

func listKey(project string) string {
	return "issues:" + project
}

// Create stores the issue and appends its id to the project list in one transaction.
func (r *IssueRedis) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	stored := *issue
	stored.ID = repository.NewID()

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, issueKey(stored.Project, stored.ID), data, 0)
		pipe.RPush(ctx, listKey(stored.Project), stored.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// List loads the project's issues in list order and filters them in process.
func (r *IssueRedis) List(ctx context.Context, project string, filter model.Filter) ([]model.Issue, error) {
	ids, err := r.client.LRange(ctx, listKey(project), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	items := make([]model.Issue, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, issueKey(project, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			// Deleted between LRANGE and GET.
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var issue model.Issue
		if err := json.Unmarshal(data, &issue); err != nil {
			return nil, err
		}
		if filter.Match(issue) {
			items = append(items, issue)
		}
	}
	return items, nil
}

// Update applies the patch under WATCH so a concurrent writer aborts the transaction.
func (r *IssueRedis) Update(ctx context.Context, project, id string, patch model.IssuePatch, updatedOn time.Time) (*model.Issue, error) {
	if !repository.ValidID(id) {
		return nil, repository.ErrNotFound
	}
	key := issueKey(project, id)

	var out model.Issue
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		issue, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		patch.Apply(issue)
		issue.UpdatedOn = updatedOn

		data, err := json.Marshal(issue)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		out = *issue
		return err
	}, key)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record and its list entry under WATCH.
func (r *IssueRedis) Delete(ctx context.Context, project, id string) (*model.Issue, error) {
	if !repository.ValidID(id) {
		return nil, repository.ErrNotFound
	}
	key := issueKey(project, id)

	var out model.Issue
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		issue, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.LRem(ctx, listKey(project), 1, id)
			return nil
		})
		out = *issue
		return err
	}, key)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks the redis connection.
func (r *IssueRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func load(ctx context.Context, tx *redis.Tx, key string) (*model.Issue, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var issue model.Issue
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}
