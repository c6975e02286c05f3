package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssueService creates issues and answers filtered queries.
type IssueService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewIssueService constructs the service.
func NewIssueService(issues repository.IssueRepository, users repository.UserRepository, dispatcher events.Dispatcher) *IssueService {
	return &IssueService{issues: issues, users: users, dispatcher: dispatcher}
}

// IssueCreateInput describes issue creation payload.
type IssueCreateInput struct {
	Title           string
	Description     *string
	Priority        domain.Priority
	CreatedByUserID string
}

// IssueListFilter describes optional equality filters for listing.
type IssueListFilter struct {
	Status       *domain.IssueStatus
	AssignedToID *string
	CreatedByID  *string
}

// CreateIssue creates an issue for a TESTER or ADMIN creator. The
// issue always starts OPEN and unassigned.
func (s *IssueService) CreateIssue(ctx context.Context, input IssueCreateInput) (*domain.Issue, error) {
	creator, err := s.users.GetByID(ctx, input.CreatedByUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("creator user", input.CreatedByUserID)
		}
		return nil, apperrors.MapError(err)
	}
	if creator.Role != domain.RoleTester && creator.Role != domain.RoleAdmin {
		return nil, apperrors.NewRuleViolationf(
			"only TESTER or ADMIN can create issues; user %q has role %s",
			creator.Name, creator.Role)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewRuleViolation("issue title cannot be empty")
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewRuleViolationf(
			"invalid priority %q; must be one of: LOW, MEDIUM, HIGH, CRITICAL",
			string(input.Priority))
	}

	issue := &domain.Issue{
		Title:       title,
		Description: trimDescription(input.Description),
		Status:      domain.IssueStatusOpen,
		Priority:    input.Priority,
		CreatedByID: creator.ID,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: issue.ID,
		Actor:   events.Actor{UserID: creator.ID},
		Payload: events.IssueCreatedPayload{
			Title:    issue.Title,
			Priority: issue.Priority,
		},
	})
	return issue, nil
}

// GetIssue fetches a single issue.
func (s *IssueService) GetIssue(ctx context.Context, issueID string) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", issueID)
		}
		return nil, apperrors.MapError(err)
	}
	return issue, nil
}

// ListIssues returns issues matching the optional equality filters.
func (s *IssueService) ListIssues(ctx context.Context, filter IssueListFilter) ([]domain.Issue, error) {
	issues, err := s.issues.ListWithFilter(ctx, repository.IssueFilter{
		Status:       filter.Status,
		AssignedToID: filter.AssignedToID,
		CreatedByID:  filter.CreatedByID,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return issues, nil
}

func trimDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	return &trimmed
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
