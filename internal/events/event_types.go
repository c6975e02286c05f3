package events

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated        EventType = "user_created"
	EventIssueCreated       EventType = "issue_created"
	EventIssueAssigned      EventType = "issue_assigned"
	EventIssueStatusChanged EventType = "issue_status_changed"
)

// Actor identifies the user behind an event.
type Actor struct {
	UserID string `json:"user_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   string      `json:"issue_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	Title    string          `json:"title"`
	Priority domain.Priority `json:"priority"`
}

// IssueAssignedPayload payload.
type IssueAssignedPayload struct {
	AssigneeUserID   string `json:"assignee_user_id"`
	AssignedByUserID string `json:"assigned_by_user_id"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}
