package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// uniqueViolation is the Postgres error code raised by the LOWER(name)
// unique index when two creations race past the pre-check.
const uniqueViolation = "23505"

// UserService manages the user population.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// CreateUser creates a user with a case-insensitively unique name.
func (s *UserService) CreateUser(ctx context.Context, name string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewRuleViolation("user name cannot be empty")
	}
	if !role.Valid() {
		return nil, apperrors.NewRuleViolationf("invalid role %q; must be one of: ADMIN, TESTER, DEVELOPER", string(role))
	}

	existing, err := s.users.GetByName(ctx, name)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		return nil, apperrors.NewRuleViolationf("user with name %q already exists", existing.Name)
	}

	user := &domain.User{Name: name, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.NewRuleViolationf("user with name %q already exists", name)
		}
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserCreated,
		Actor: events.Actor{UserID: user.ID},
		Payload: events.UserCreatedPayload{
			UserID: user.ID,
			Name:   user.Name,
			Role:   user.Role,
		},
	})
	return user, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
