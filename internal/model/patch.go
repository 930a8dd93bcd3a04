package model

import "errors"

// ErrInvalidOpen is returned when an "open" value is not a boolean.
var ErrInvalidOpen = errors.New("open must be a boolean")

// ParseOpen converts the wire form of the open flag. Only the exact strings
// "true" and "false" are accepted.
func ParseOpen(v string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrInvalidOpen
}

// IssuePatch is the subset of mutable fields sent on an update.
// A nil pointer means the field was not sent and stays untouched.
type IssuePatch struct {
	IssueTitle *string
	IssueText  *string
	CreatedBy  *string
	AssignedTo *string
	StatusText *string
	Open       *bool
}

// ParsePatch extracts the mutable fields from a request body.
//
// _id, project and the timestamps are never patchable and are ignored, as are
// unknown keys. Empty values for the required fields and for open count as
// not sent so a stored issue can never lose its title, text or author.
// Empty values for assigned_to and status_text are real updates that clear them.
//
// An unparsable open value yields ErrInvalidOpen; the rest of the patch is
// still returned so callers can tell "nothing sent" from "bad value sent".
func ParsePatch(f Fields) (IssuePatch, error) {
	var p IssuePatch

	if v := f[FieldIssueTitle]; v != "" {
		p.IssueTitle = &v
	}
	if v := f[FieldIssueText]; v != "" {
		p.IssueText = &v
	}
	if v := f[FieldCreatedBy]; v != "" {
		p.CreatedBy = &v
	}
	if v, ok := f[FieldAssignedTo]; ok {
		p.AssignedTo = &v
	}
	if v, ok := f[FieldStatusText]; ok {
		p.StatusText = &v
	}
	if v := f[FieldOpen]; v != "" {
		b, err := ParseOpen(v)
		if err != nil {
			return p, err
		}
		p.Open = &b
	}
	return p, nil
}

// IsEmpty reports whether the patch would change nothing.
func (p IssuePatch) IsEmpty() bool {
	return p.IssueTitle == nil &&
		p.IssueText == nil &&
		p.CreatedBy == nil &&
		p.AssignedTo == nil &&
		p.StatusText == nil &&
		p.Open == nil
}

// Apply merges the patch into issue field by field.
func (p IssuePatch) Apply(issue *Issue) {
	if p.IssueTitle != nil {
		issue.IssueTitle = *p.IssueTitle
	}
	if p.IssueText != nil {
		issue.IssueText = *p.IssueText
	}
	if p.CreatedBy != nil {
		issue.CreatedBy = *p.CreatedBy
	}
	if p.AssignedTo != nil {
		issue.AssignedTo = *p.AssignedTo
	}
	if p.StatusText != nil {
		issue.StatusText = *p.StatusText
	}
	if p.Open != nil {
		issue.Open = *p.Open
	}
}
