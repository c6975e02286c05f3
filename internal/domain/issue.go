package domain

import (
	"strings"
	"time"
)

// IssueStatus enumerates lifecycle states for issues. Ordering between
// states exists only through the transition table, not numerically.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusClosed     IssueStatus = "CLOSED"
)

// Valid reports whether s is a recognized status.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	}
	return false
}

// ParseIssueStatus resolves a case-insensitive status string to its
// canonical value.
func ParseIssueStatus(value string) (IssueStatus, bool) {
	status := IssueStatus(strings.ToUpper(strings.TrimSpace(value)))
	return status, status.Valid()
}

// Priority enumerates issue classification levels. It carries no
// business logic beyond being a required field.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is a recognized priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ParsePriority resolves a case-insensitive priority string to its
// canonical value.
func ParsePriority(value string) (Priority, bool) {
	priority := Priority(strings.ToUpper(strings.TrimSpace(value)))
	return priority, priority.Valid()
}

// Issue is the aggregate for tracked defects. User references are
// non-owning ids resolved through the repositories, never embedded
// object graphs.
type Issue struct {
	ID           string
	Title        string
	Description  *string
	Status       IssueStatus
	Priority     Priority
	CreatedByID  string
	AssignedToID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
