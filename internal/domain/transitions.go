package domain

import "strings"

// allowedTransitions is the single source of truth for which status
// moves are structurally possible. Unlisted pairs, including
// self-transitions, are illegal. Role authorization is evaluated
// separately, after a move passes this table.
var allowedTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusOpen:       {IssueStatusInProgress},
	IssueStatusInProgress: {IssueStatusResolved},
	IssueStatusResolved:   {IssueStatusClosed, IssueStatusOpen},
	IssueStatusClosed:     {},
}

// CanTransition reports whether next is directly reachable from current.
func CanTransition(current, next IssueStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses directly reachable from current.
// The returned slice must not be mutated.
func NextStatuses(current IssueStatus) []IssueStatus {
	return allowedTransitions[current]
}

// FormatStatusSet renders a status set for error messages. The empty
// set renders as "{}" rather than being omitted.
func FormatStatusSet(statuses []IssueStatus) string {
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
