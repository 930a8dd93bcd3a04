package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Match(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 123000, time.UTC)
	issue := Issue{
		ID:         "id-1",
		Project:    "test",
		IssueTitle: "title 3",
		IssueText:  "text",
		CreatedBy:  "sazk",
		StatusText: "in QA",
		Open:       true,
		CreatedOn:  ts,
		UpdatedOn:  ts,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"no filter matches everything", Filter{}, true},
		{"nil filter matches everything", nil, true},
		{"single string field", Filter{FieldCreatedBy: "sazk"}, true},
		{"multiple fields", Filter{FieldCreatedBy: "sazk", FieldStatusText: "in QA", FieldOpen: "true"}, true},
		{"one mismatching field", Filter{FieldCreatedBy: "sazk", FieldStatusText: "done"}, false},
		{"open coerced", Filter{FieldOpen: "false"}, false},
		{"open unparsable", Filter{FieldOpen: "yes please"}, false},
		{"open as digit", Filter{FieldOpen: "1"}, false},
		{"open upper case", Filter{FieldOpen: "TRUE"}, false},
		{"by id", Filter{FieldID: "id-1"}, true},
		{"empty assigned_to", Filter{FieldAssignedTo: ""}, true},
		{"timestamp as json text", Filter{FieldCreatedOn: "2024-05-01T10:00:00.000123Z"}, true},
		{"unknown field", Filter{"priority": "high"}, false},
		{"case sensitive", Filter{FieldCreatedBy: "SAZK"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(issue))
		})
	}
}

func TestIssue_Field(t *testing.T) {
	issue := Issue{Open: false}

	v, ok := issue.Field(FieldOpen)
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	_, ok = issue.Field("nope")
	assert.False(t, ok)
}
