package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
)

func create(t *testing.T, r *IssueMemory, project, title, author string) *model.Issue {
	t.Helper()
	now := time.Now().UTC()
	out, err := r.Create(context.Background(), &model.Issue{
		Project:    project,
		IssueTitle: title,
		IssueText:  "text",
		CreatedBy:  author,
		Open:       true,
		CreatedOn:  now,
		UpdatedOn:  now,
	})
	require.NoError(t, err)
	return out
}

func TestIssueMemory_CreateAssignsID(t *testing.T) {
	r := NewIssueMemory()
	a := create(t, r, "test", "a", "sazk")
	b := create(t, r, "test", "b", "sazk")

	assert.True(t, repository.ValidID(a.ID))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestIssueMemory_ListKeepsInsertionOrderPerProject(t *testing.T) {
	r := NewIssueMemory()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		create(t, r, "test", fmt.Sprintf("t%d", i), "sazk")
	}
	create(t, r, "other", "x", "sazk")

	items, err := r.List(ctx, "test", nil)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, it := range items {
		assert.Equal(t, fmt.Sprintf("t%d", i), it.IssueTitle)
	}

	empty, err := r.List(ctx, "nobody", nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestIssueMemory_ListFilters(t *testing.T) {
	r := NewIssueMemory()
	ctx := context.Background()
	create(t, r, "test", "a", "sazk")
	b := create(t, r, "test", "b", "bobby")
	create(t, r, "test", "c", "sazk")

	items, err := r.List(ctx, "test", model.Filter{model.FieldCreatedBy: "sazk"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].IssueTitle)
	assert.Equal(t, "c", items[1].IssueTitle)

	items, err = r.List(ctx, "test", model.Filter{model.FieldID: b.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestIssueMemory_Update(t *testing.T) {
	r := NewIssueMemory()
	ctx := context.Background()
	a := create(t, r, "test", "a", "sazk")
	later := a.UpdatedOn.Add(time.Second)
	harry := "harry"

	out, err := r.Update(ctx, "test", a.ID, model.IssuePatch{CreatedBy: &harry}, later)
	require.NoError(t, err)
	assert.Equal(t, "harry", out.CreatedBy)
	assert.Equal(t, later, out.UpdatedOn)
	assert.Equal(t, a.CreatedOn, out.CreatedOn)

	items, _ := r.List(ctx, "test", nil)
	assert.Equal(t, "harry", items[0].CreatedBy)

	// Returned copies do not alias the store.
	out.CreatedBy = "mutated"
	items, _ = r.List(ctx, "test", nil)
	assert.Equal(t, "harry", items[0].CreatedBy)

	_, err = r.Update(ctx, "other", a.ID, model.IssuePatch{CreatedBy: &harry}, later)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.Update(ctx, "test", "what", model.IssuePatch{CreatedBy: &harry}, later)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssueMemory_Delete(t *testing.T) {
	r := NewIssueMemory()
	ctx := context.Background()
	a := create(t, r, "test", "a", "sazk")
	b := create(t, r, "test", "b", "sazk")
	c := create(t, r, "test", "c", "sazk")

	removed, err := r.Delete(ctx, "test", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, removed.ID)

	items, _ := r.List(ctx, "test", nil)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	_, err = r.Delete(ctx, "test", b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssueMemory_ConcurrentCreate(t *testing.T) {
	r := NewIssueMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Create(context.Background(), &model.Issue{Project: "p", IssueTitle: "t", IssueText: "x", CreatedBy: "u"})
		}()
	}
	wg.Wait()

	items, err := r.List(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.Len(t, items, 50)
}
