package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
)

// memoryUserRepo is an in-memory UserRepository for engine tests. It
// returns copies so callers cannot mutate stored state, and reports
// missing rows the same way the pgx implementation does.
type memoryUserRepo struct {
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Name, name) {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) List(_ context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	return result, nil
}

// memoryIssueRepo is an in-memory IssueRepository for engine tests.
type memoryIssueRepo struct {
	issues map[string]domain.Issue
}

func newMemoryIssueRepo() *memoryIssueRepo {
	return &memoryIssueRepo{issues: make(map[string]domain.Issue)}
}

func (r *memoryIssueRepo) Create(_ context.Context, issue *domain.Issue) error {
	issue.ID = uuid.NewString()
	now := time.Now()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memoryIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	if _, ok := r.issues[issue.ID]; !ok {
		return pgx.ErrNoRows
	}
	issue.UpdatedAt = time.Now()
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memoryIssueRepo) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &issue, nil
}

func (r *memoryIssueRepo) ListWithFilter(_ context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	var result []domain.Issue
	for _, issue := range r.issues {
		if filter.Status != nil && issue.Status != *filter.Status {
			continue
		}
		if filter.AssignedToID != nil && (issue.AssignedToID == nil || *issue.AssignedToID != *filter.AssignedToID) {
			continue
		}
		if filter.CreatedByID != nil && issue.CreatedByID != *filter.CreatedByID {
			continue
		}
		result = append(result, issue)
	}
	return result, nil
}

// fixture bundles the engines over shared in-memory storage.
type fixture struct {
	users     *memoryUserRepo
	issues    *memoryIssueRepo
	userSvc   *UserService
	issueSvc  *IssueService
	assignSvc *AssignmentService
	statusSvc *StatusService
	admin     *domain.User
	tester    *domain.User
	developer *domain.User
	otherDev  *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := newMemoryUserRepo()
	issues := newMemoryIssueRepo()
	dispatcher := events.NewInMemoryDispatcher()

	f := &fixture{
		users:     users,
		issues:    issues,
		userSvc:   NewUserService(users, dispatcher),
		issueSvc:  NewIssueService(issues, users, dispatcher),
		assignSvc: NewAssignmentService(issues, users, dispatcher),
		statusSvc: NewStatusService(issues, users, dispatcher),
	}
	f.admin = f.seedUser(t, "alice", domain.RoleAdmin)
	f.tester = f.seedUser(t, "tara", domain.RoleTester)
	f.developer = f.seedUser(t, "dana", domain.RoleDeveloper)
	f.otherDev = f.seedUser(t, "omar", domain.RoleDeveloper)
	return f
}

func (f *fixture) seedUser(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Role: role}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) seedIssue(t *testing.T, status domain.IssueStatus, assignedTo *string) *domain.Issue {
	t.Helper()
	issue := &domain.Issue{
		Title:        "seeded issue",
		Status:       status,
		Priority:     domain.PriorityMedium,
		CreatedByID:  f.tester.ID,
		AssignedToID: assignedTo,
	}
	require.NoError(t, f.issues.Create(context.Background(), issue))
	return issue
}
