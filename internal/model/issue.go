package model

import (
	"strconv"
	"time"
)

// Stored field names, as they appear on the wire and in filter queries.
const (
	FieldID         = "_id"
	FieldProject    = "project"
	FieldIssueTitle = "issue_title"
	FieldIssueText  = "issue_text"
	FieldCreatedBy  = "created_by"
	FieldAssignedTo = "assigned_to"
	FieldStatusText = "status_text"
	FieldOpen       = "open"
	FieldCreatedOn  = "created_on"
	FieldUpdatedOn  = "updated_on"
)

// Issue is a single tracked record scoped to a project.
// This is a pure domain model with no database-specific dependencies or tags.
type Issue struct {
	ID         string    `json:"_id"`
	Project    string    `json:"project"`
	IssueTitle string    `json:"issue_title"`
	IssueText  string    `json:"issue_text"`
	CreatedBy  string    `json:"created_by"`
	AssignedTo string    `json:"assigned_to"`
	StatusText string    `json:"status_text"`
	Open       bool      `json:"open"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// Field returns the string form of a stored field, the same text the JSON
// encoding produces. ok is false for names that are not Issue fields.
func (i Issue) Field(name string) (value string, ok bool) {
	switch name {
	case FieldID:
		return i.ID, true
	case FieldProject:
		return i.Project, true
	case FieldIssueTitle:
		return i.IssueTitle, true
	case FieldIssueText:
		return i.IssueText, true
	case FieldCreatedBy:
		return i.CreatedBy, true
	case FieldAssignedTo:
		return i.AssignedTo, true
	case FieldStatusText:
		return i.StatusText, true
	case FieldOpen:
		return strconv.FormatBool(i.Open), true
	case FieldCreatedOn:
		return i.CreatedOn.Format(time.RFC3339Nano), true
	case FieldUpdatedOn:
		return i.UpdatedOn.Format(time.RFC3339Nano), true
	}
	return "", false
}
