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

// AssignmentService handles developer assignment.
type AssignmentService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(issues repository.IssueRepository, users repository.UserRepository, dispatcher events.Dispatcher) *AssignmentService {
	return &AssignmentService{issues: issues, users: users, dispatcher: dispatcher}
}

// AssignIssue assigns an issue to a developer. Preconditions are
// checked in a fixed order and the first failure aborts the whole
// operation. Status is left untouched: an assigned OPEN issue stays
// OPEN until the assignee starts work.
func (s *AssignmentService) AssignIssue(ctx context.Context, issueID, assigneeUserID, assignedByUserID string) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", issueID)
		}
		return nil, apperrors.MapError(err)
	}

	assignee, err := s.users.GetByID(ctx, assigneeUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignee user", assigneeUserID)
		}
		return nil, apperrors.MapError(err)
	}
	if assignee.Role != domain.RoleDeveloper {
		return nil, apperrors.NewRuleViolationf(
			"assignee must be a DEVELOPER; user %q has role %s",
			assignee.Name, assignee.Role)
	}

	assigner, err := s.users.GetByID(ctx, assignedByUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assigner user", assignedByUserID)
		}
		return nil, apperrors.MapError(err)
	}
	if assigner.Role != domain.RoleAdmin && assigner.Role != domain.RoleTester {
		return nil, apperrors.NewRuleViolationf(
			"only ADMIN or TESTER can assign issues; user %q has role %s",
			assigner.Name, assigner.Role)
	}

	if issue.Status == domain.IssueStatusClosed {
		return nil, apperrors.NewRuleViolationf(
			"cannot assign CLOSED issues; current status: %s", issue.Status)
	}
	// Reassigning a resolved issue would silently redirect work the
	// tester already believes fixed; it must be reopened first.
	if issue.Status == domain.IssueStatusResolved {
		return nil, apperrors.NewRuleViolation(
			"cannot reassign RESOLVED issues; reopen the issue first before reassigning")
	}

	issue.AssignedToID = &assignee.ID
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventIssueAssigned,
		IssueID: issue.ID,
		Actor:   events.Actor{UserID: assigner.ID},
		Payload: events.IssueAssignedPayload{
			AssigneeUserID:   assignee.ID,
			AssignedByUserID: assigner.ID,
		},
	})
	return issue, nil
}
