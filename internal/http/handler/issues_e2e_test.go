package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuetracker/internal/model"
	"issuetracker/internal/repository/memory"
	"issuetracker/internal/service"
)

// newIssueApp wires the real service over the in-memory store.
func newIssueApp(t *testing.T) *fiber.App {
	t.Helper()
	repo := memory.NewIssueMemory()
	svc := service.NewIssueService(repo, nil, zerolog.Nop())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(), UnescapePath: true})
	RegisterRoutes(app, repo, svc)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string, out any) {
	t.Helper()
	resp, err := app.Test(jsonRequest(method, target, body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(readBody(t, resp), out))
}

func listIssues(t *testing.T, app *fiber.App, project string, query url.Values) []model.Issue {
	t.Helper()
	target := "/api/issues/" + project
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []model.Issue
	require.NoError(t, json.Unmarshal(readBody(t, resp), &items))
	require.NotNil(t, items)
	return items
}

func TestIssueLifecycle(t *testing.T) {
	app := newIssueApp(t)

	var created model.Issue
	doJSON(t, app, http.MethodPost, "/api/issues/p", `{"issue_title":"t","issue_text":"x","created_by":"u"}`, &created)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "p", created.Project)
	assert.True(t, created.Open)
	assert.Equal(t, "", created.AssignedTo)
	assert.Equal(t, "", created.StatusText)
	assert.False(t, created.CreatedOn.IsZero())
	assert.Equal(t, created.CreatedOn, created.UpdatedOn)

	got := listIssues(t, app, "p", url.Values{"_id": {created.ID}})
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)

	time.Sleep(2 * time.Millisecond)

	var ack map[string]string
	doJSON(t, app, http.MethodPut, "/api/issues/p", `{"_id":"`+created.ID+`","status_text":"done"}`, &ack)
	assert.Equal(t, map[string]string{"result": "successfully updated", "_id": created.ID}, ack)

	got = listIssues(t, app, "p", url.Values{"_id": {created.ID}})
	require.Len(t, got, 1)
	assert.Equal(t, "done", got[0].StatusText)
	assert.Equal(t, "t", got[0].IssueTitle)
	assert.Equal(t, created.CreatedOn, got[0].CreatedOn)
	assert.True(t, got[0].UpdatedOn.After(created.UpdatedOn))

	var deleted map[string]string
	doJSON(t, app, http.MethodDelete, "/api/issues/p", `{"_id":"`+created.ID+`"}`, &deleted)
	assert.Equal(t, map[string]string{"result": "successfully deleted", "_id": created.ID}, deleted)

	assert.Empty(t, listIssues(t, app, "p", url.Values{"_id": {created.ID}}))

	// A second delete of the same id fails.
	var again map[string]string
	doJSON(t, app, http.MethodDelete, "/api/issues/p", `{"_id":"`+created.ID+`"}`, &again)
	assert.Equal(t, map[string]string{"error": "could not delete", "_id": created.ID}, again)
}

func TestCreateRequiresFields(t *testing.T) {
	app := newIssueApp(t)

	bodies := []string{
		`{}`,
		`{"issue_title":"t","issue_text":"x"}`,
		`{"issue_title":"t","created_by":"u"}`,
		`{"issue_text":"x","created_by":"u"}`,
		`{"issue_title":"","issue_text":"x","created_by":"u"}`,
	}
	for _, body := range bodies {
		var res map[string]string
		doJSON(t, app, http.MethodPost, "/api/issues/req", body, &res)
		assert.Equal(t, map[string]string{"error": "required field(s) missing"}, res, body)
	}

	assert.Empty(t, listIssues(t, app, "req", nil))
}

func TestCreateFromForm(t *testing.T) {
	app := newIssueApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/api/issues/form",
		"issue_title=Form&issue_text=from+a+form&created_by=web&assigned_to=Ann&open=false&project=ignored"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created model.Issue
	require.NoError(t, json.Unmarshal(readBody(t, resp), &created))
	assert.Equal(t, "form", created.Project)
	assert.Equal(t, "from a form", created.IssueText)
	assert.Equal(t, "Ann", created.AssignedTo)
	assert.False(t, created.Open)
}

func TestEscapedProjectName(t *testing.T) {
	app := newIssueApp(t)

	var created model.Issue
	doJSON(t, app, http.MethodPost, "/api/issues/my%20proj", `{"issue_title":"t","issue_text":"x","created_by":"u"}`, &created)
	assert.Equal(t, "my proj", created.Project)

	got := listIssues(t, app, url.PathEscape("my proj"), nil)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
	assert.Equal(t, "my proj", got[0].Project)

	assert.Empty(t, listIssues(t, app, "my%2520proj", nil))

	var deleted map[string]string
	doJSON(t, app, http.MethodDelete, "/api/issues/my%20proj", `{"_id":"`+created.ID+`"}`, &deleted)
	assert.Equal(t, map[string]string{"result": "successfully deleted", "_id": created.ID}, deleted)
}

func TestFilterIssues(t *testing.T) {
	app := newIssueApp(t)

	seed := []string{
		`{"issue_title":"a","issue_text":"x","created_by":"Alice","assigned_to":"Joe"}`,
		`{"issue_title":"b","issue_text":"x","created_by":"Bob","assigned_to":"Joe","open":false}`,
		`{"issue_title":"c","issue_text":"x","created_by":"Alice","assigned_to":"Eve"}`,
		`{"issue_title":"d","issue_text":"x","created_by":"Alice","assigned_to":"Joe"}`,
	}
	for _, body := range seed {
		var issue model.Issue
		doJSON(t, app, http.MethodPost, "/api/issues/filter", body, &issue)
	}
	var other model.Issue
	doJSON(t, app, http.MethodPost, "/api/issues/elsewhere", seed[0], &other)

	titles := func(items []model.Issue) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.IssueTitle)
		}
		return out
	}

	tests := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{"no filter", nil, []string{"a", "b", "c", "d"}},
		{"open true", url.Values{"open": {"true"}}, []string{"a", "c", "d"}},
		{"open false", url.Values{"open": {"false"}}, []string{"b"}},
		{"one field", url.Values{"assigned_to": {"Joe"}}, []string{"a", "b", "d"}},
		{"two fields", url.Values{"assigned_to": {"Joe"}, "created_by": {"Alice"}}, []string{"a", "d"}},
		{"three fields", url.Values{"assigned_to": {"Joe"}, "created_by": {"Alice"}, "open": {"true"}}, []string{"a", "d"}},
		{"no match", url.Values{"assigned_to": {"Nobody"}}, []string{}},
		{"bad boolean", url.Values{"open": {"maybe"}}, []string{}},
		{"numeric boolean", url.Values{"open": {"1"}}, []string{}},
		{"unknown field", url.Values{"priority": {"high"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(listIssues(t, app, "filter", tt.query)))
		})
	}

	assert.Empty(t, listIssues(t, app, "unknown-project", nil))
}

func TestUpdateOrdering(t *testing.T) {
	app := newIssueApp(t)

	var created model.Issue
	doJSON(t, app, http.MethodPost, "/api/issues/upd", `{"issue_title":"t","issue_text":"x","created_by":"u"}`, &created)

	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{"missing id wins over fields", `{"issue_text":"y"}`, map[string]string{"error": "missing _id"}},
		{"empty id", `{"_id":"","issue_text":"y"}`, map[string]string{"error": "missing _id"}},
		{"no fields", `{"_id":"` + created.ID + `"}`, map[string]string{"error": "no update field(s) sent", "_id": created.ID}},
		{"only immutable fields", `{"_id":"` + created.ID + `","project":"x","created_on":"2020-01-01T00:00:00Z"}`, map[string]string{"error": "no update field(s) sent", "_id": created.ID}},
		{"malformed id", `{"_id":"5f665eb46e296f6b9b6a504d","issue_text":"y"}`, map[string]string{"error": "could not update", "_id": "5f665eb46e296f6b9b6a504d"}},
		{"unknown id", `{"_id":"0b9e6b46-8b5c-4f7e-9d49-1c1f0a4b7a11","issue_text":"y"}`, map[string]string{"error": "could not update", "_id": "0b9e6b46-8b5c-4f7e-9d49-1c1f0a4b7a11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Failed updates are repeatable with the same outcome.
			for i := 0; i < 2; i++ {
				var res map[string]string
				doJSON(t, app, http.MethodPut, "/api/issues/upd", tt.body, &res)
				assert.Equal(t, tt.want, res)
			}
		})
	}

	t.Run("id from another project", func(t *testing.T) {
		var res map[string]string
		doJSON(t, app, http.MethodPut, "/api/issues/other", `{"_id":"`+created.ID+`","issue_text":"y"}`, &res)
		assert.Equal(t, map[string]string{"error": "could not update", "_id": created.ID}, res)
	})

	t.Run("numeric open is rejected", func(t *testing.T) {
		var res map[string]string
		doJSON(t, app, http.MethodPut, "/api/issues/upd", `{"_id":"`+created.ID+`","open":"0"}`, &res)
		assert.Equal(t, map[string]string{"error": "could not update", "_id": created.ID}, res)

		got := listIssues(t, app, "upd", url.Values{"_id": {created.ID}})
		require.Len(t, got, 1)
		assert.True(t, got[0].Open)
	})

	t.Run("closing and clearing", func(t *testing.T) {
		var res map[string]string
		doJSON(t, app, http.MethodPut, "/api/issues/upd", `{"_id":"`+created.ID+`","open":false,"assigned_to":"Joe"}`, &res)
		assert.Equal(t, "successfully updated", res["result"])

		got := listIssues(t, app, "upd", url.Values{"_id": {created.ID}})
		require.Len(t, got, 1)
		assert.False(t, got[0].Open)
		assert.Equal(t, "Joe", got[0].AssignedTo)

		var cleared map[string]string
		doJSON(t, app, http.MethodPut, "/api/issues/upd", `{"_id":"`+created.ID+`","assigned_to":""}`, &cleared)
		assert.Equal(t, "successfully updated", cleared["result"])

		got = listIssues(t, app, "upd", url.Values{"_id": {created.ID}})
		require.Len(t, got, 1)
		assert.Equal(t, "", got[0].AssignedTo)
		assert.Equal(t, "t", got[0].IssueTitle)
	})
}

func TestDeleteOrdering(t *testing.T) {
	app := newIssueApp(t)

	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{"no body", ``, map[string]string{"error": "missing _id"}},
		{"empty id", `{"_id":""}`, map[string]string{"error": "missing _id"}},
		{"malformed id", `{"_id":"not-an-id"}`, map[string]string{"error": "could not delete", "_id": "not-an-id"}},
		{"unknown id", `{"_id":"0b9e6b46-8b5c-4f7e-9d49-1c1f0a4b7a11"}`, map[string]string{"error": "could not delete", "_id": "0b9e6b46-8b5c-4f7e-9d49-1c1f0a4b7a11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				var res map[string]string
				doJSON(t, app, http.MethodDelete, "/api/issues/del", tt.body, &res)
				assert.Equal(t, tt.want, res)
			}
		})
	}
}
