package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// StatusService validates and applies status transitions.
type StatusService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewStatusService creates the service.
func NewStatusService(issues repository.IssueRepository, users repository.UserRepository, dispatcher events.Dispatcher) *StatusService {
	return &StatusService{issues: issues, users: users, dispatcher: dispatcher}
}

// edgeRule authorizes one transition edge. Inputs are explicit: the
// issue's current assignee plus the acting user, never ambient state.
type edgeRule func(issue *domain.Issue, actor *domain.User) error

type edge struct {
	from, to domain.IssueStatus
}

// edgeRules maps each legal transition to its authorization predicate.
// Table legality is checked first, so every edge here is reachable.
var edgeRules = map[edge]edgeRule{
	{domain.IssueStatusOpen, domain.IssueStatusInProgress}:     canStart,
	{domain.IssueStatusInProgress, domain.IssueStatusResolved}: canResolve,
	{domain.IssueStatusResolved, domain.IssueStatusClosed}:     canClose,
	{domain.IssueStatusResolved, domain.IssueStatusOpen}:       canReopen,
}

// UpdateStatus moves an issue along one edge of the transition table.
// The assignee is never modified here.
func (s *StatusService) UpdateStatus(ctx context.Context, issueID string, newStatus domain.IssueStatus, actorUserID string) (*domain.Issue, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewRuleViolationf(
			"invalid status %q; must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED",
			string(newStatus))
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", issueID)
		}
		return nil, apperrors.MapError(err)
	}

	actor, err := s.users.GetByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", actorUserID)
		}
		return nil, apperrors.MapError(err)
	}

	if !domain.CanTransition(issue.Status, newStatus) {
		return nil, apperrors.NewRuleViolationf(
			"invalid status transition: %s -> %s; valid transitions from %s: %s",
			issue.Status, newStatus, issue.Status,
			domain.FormatStatusSet(domain.NextStatuses(issue.Status)))
	}

	if rule, ok := edgeRules[edge{issue.Status, newStatus}]; ok {
		if err := rule(issue, actor); err != nil {
			return nil, err
		}
	}

	oldStatus := issue.Status
	issue.Status = newStatus
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventIssueStatusChanged,
		IssueID: issue.ID,
		Actor:   events.Actor{UserID: actor.ID},
		Payload: events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return issue, nil
}

// canStart gates OPEN -> IN_PROGRESS: the issue must be assigned, the
// actor must be that exact assignee, and the actor must be a DEVELOPER.
func canStart(issue *domain.Issue, actor *domain.User) error {
	if issue.AssignedToID == nil {
		return apperrors.NewRuleViolation(
			"issue must be assigned to a developer before moving to IN_PROGRESS")
	}
	if *issue.AssignedToID != actor.ID {
		return apperrors.NewRuleViolationf(
			"only the assigned developer (user %s) can start working on this issue",
			*issue.AssignedToID)
	}
	if actor.Role != domain.RoleDeveloper {
		return apperrors.NewRuleViolationf(
			"only DEVELOPER users can move issues to IN_PROGRESS; user %q has role %s",
			actor.Name, actor.Role)
	}
	return nil
}

// canResolve gates IN_PROGRESS -> RESOLVED: only the assigned developer
// may resolve.
func canResolve(issue *domain.Issue, actor *domain.User) error {
	if issue.AssignedToID == nil || *issue.AssignedToID != actor.ID {
		return apperrors.NewRuleViolationf(
			"only the assigned developer can resolve this issue; user %q is not the assignee",
			actor.Name)
	}
	if actor.Role != domain.RoleDeveloper {
		return apperrors.NewRuleViolationf(
			"only DEVELOPER users can resolve issues; user %q has role %s",
			actor.Name, actor.Role)
	}
	return nil
}

// canClose gates RESOLVED -> CLOSED.
func canClose(_ *domain.Issue, actor *domain.User) error {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleTester {
		return apperrors.NewRuleViolationf(
			"only ADMIN or TESTER can close resolved issues; user %q has role %s",
			actor.Name, actor.Role)
	}
	return nil
}

// canReopen gates RESOLVED -> OPEN.
func canReopen(_ *domain.Issue, actor *domain.User) error {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleTester {
		return apperrors.NewRuleViolationf(
			"only ADMIN or TESTER can reopen resolved issues; user %q has role %s",
			actor.Name, actor.Role)
	}
	return nil
}
