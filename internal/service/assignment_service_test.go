package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func TestAssignIssue_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, assigner := range []*domain.User{f.admin, f.tester} {
		issue := f.seedIssue(t, domain.IssueStatusOpen, nil)

		updated, err := f.assignSvc.AssignIssue(ctx, issue.ID, f.developer.ID, assigner.ID)
		require.NoError(t, err, "assigner role %s", assigner.Role)
		require.NotNil(t, updated.AssignedToID)
		assert.Equal(t, f.developer.ID, *updated.AssignedToID)
		// Assignment never advances the lifecycle.
		assert.Equal(t, domain.IssueStatusOpen, updated.Status)
	}
}

func TestAssignIssue_InProgressReassignment(t *testing.T) {
	f := newFixture(t)

	issue := f.seedIssue(t, domain.IssueStatusInProgress, &f.developer.ID)

	updated, err := f.assignSvc.AssignIssue(context.Background(), issue.ID, f.otherDev.ID, f.admin.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, f.otherDev.ID, *updated.AssignedToID)
	assert.Equal(t, domain.IssueStatusInProgress, updated.Status)
}

func TestAssignIssue_MissingEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.seedIssue(t, domain.IssueStatusOpen, nil)

	_, err := f.assignSvc.AssignIssue(ctx, "missing-issue", f.developer.ID, f.admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "issue")

	_, err = f.assignSvc.AssignIssue(ctx, issue.ID, "missing-assignee", f.admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "assignee")

	_, err = f.assignSvc.AssignIssue(ctx, issue.ID, f.developer.ID, "missing-assigner")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "assigner")
}

func TestAssignIssue_AssigneeMustBeDeveloper(t *testing.T) {
	f := newFixture(t)
	issue := f.seedIssue(t, domain.IssueStatusOpen, nil)

	_, err := f.assignSvc.AssignIssue(context.Background(), issue.ID, f.tester.ID, f.admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "TESTER")

	stored, getErr := f.issues.GetByID(context.Background(), issue.ID)
	require.NoError(t, getErr)
	assert.Nil(t, stored.AssignedToID)
}

func TestAssignIssue_AssignerMustBeAdminOrTester(t *testing.T) {
	f := newFixture(t)
	issue := f.seedIssue(t, domain.IssueStatusOpen, nil)

	_, err := f.assignSvc.AssignIssue(context.Background(), issue.ID, f.developer.ID, f.otherDev.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "DEVELOPER")
}

func TestAssignIssue_ClosedAndResolvedRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	closed := f.seedIssue(t, domain.IssueStatusClosed, nil)
	_, err := f.assignSvc.AssignIssue(ctx, closed.ID, f.developer.ID, f.admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "CLOSED")

	resolved := f.seedIssue(t, domain.IssueStatusResolved, &f.developer.ID)
	_, err = f.assignSvc.AssignIssue(ctx, resolved.ID, f.otherDev.ID, f.admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "reopen")

	// The original assignee is untouched by the failed reassignment.
	stored, getErr := f.issues.GetByID(ctx, resolved.ID)
	require.NoError(t, getErr)
	require.NotNil(t, stored.AssignedToID)
	assert.Equal(t, f.developer.ID, *stored.AssignedToID)
}
