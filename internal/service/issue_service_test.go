package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func TestCreateIssue_StartsOpenAndUnassigned(t *testing.T) {
	f := newFixture(t)

	issue, err := f.issueSvc.CreateIssue(context.Background(), IssueCreateInput{
		Title:           "Login button unresponsive",
		Priority:        domain.PriorityHigh,
		CreatedByUserID: f.tester.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusOpen, issue.Status)
	assert.Nil(t, issue.AssignedToID)
	assert.Equal(t, f.tester.ID, issue.CreatedByID)
	assert.NotEmpty(t, issue.ID)
	assert.False(t, issue.CreatedAt.IsZero())
}

func TestCreateIssue_CreatorRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		creator *domain.User
		wantErr bool
	}{
		{"tester allowed", f.tester, false},
		{"admin allowed", f.admin, false},
		{"developer rejected", f.developer, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.issueSvc.CreateIssue(ctx, IssueCreateInput{
				Title:           "Crash on save",
				Priority:        domain.PriorityCritical,
				CreatedByUserID: tt.creator.ID,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsRuleViolation(err))
				assert.Contains(t, err.Error(), string(tt.creator.Role))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateIssue_UnknownCreator(t *testing.T) {
	f := newFixture(t)

	_, err := f.issueSvc.CreateIssue(context.Background(), IssueCreateInput{
		Title:           "Ghost report",
		Priority:        domain.PriorityLow,
		CreatedByUserID: "missing-id",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "missing-id")
}

func TestCreateIssue_TitleAndDescriptionTrimming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.issueSvc.CreateIssue(ctx, IssueCreateInput{
		Title:           "   ",
		Priority:        domain.PriorityLow,
		CreatedByUserID: f.tester.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))

	description := "  steps to reproduce  "
	issue, err := f.issueSvc.CreateIssue(ctx, IssueCreateInput{
		Title:           "  Padding bug  ",
		Description:     &description,
		Priority:        domain.PriorityLow,
		CreatedByUserID: f.tester.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Padding bug", issue.Title)
	require.NotNil(t, issue.Description)
	assert.Equal(t, "steps to reproduce", *issue.Description)

	// Absent description stays nil rather than becoming "".
	issue, err = f.issueSvc.CreateIssue(ctx, IssueCreateInput{
		Title:           "No description",
		Priority:        domain.PriorityLow,
		CreatedByUserID: f.tester.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, issue.Description)
}

func TestCreateIssue_InvalidPriority(t *testing.T) {
	f := newFixture(t)

	_, err := f.issueSvc.CreateIssue(context.Background(), IssueCreateInput{
		Title:           "Priority check",
		Priority:        domain.Priority("URGENT"),
		CreatedByUserID: f.admin.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "URGENT")
}

func TestListIssues_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	open := f.seedIssue(t, domain.IssueStatusOpen, nil)
	assigned := f.seedIssue(t, domain.IssueStatusInProgress, &f.developer.ID)
	f.seedIssue(t, domain.IssueStatusClosed, &f.otherDev.ID)

	all, err := f.issueSvc.ListIssues(ctx, IssueListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	statusOpen := domain.IssueStatusOpen
	byStatus, err := f.issueSvc.ListIssues(ctx, IssueListFilter{Status: &statusOpen})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, open.ID, byStatus[0].ID)

	byAssignee, err := f.issueSvc.ListIssues(ctx, IssueListFilter{AssignedToID: &f.developer.ID})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, assigned.ID, byAssignee[0].ID)

	byCreator, err := f.issueSvc.ListIssues(ctx, IssueListFilter{CreatedByID: &f.tester.ID})
	require.NoError(t, err)
	assert.Len(t, byCreator, 3)

	statusResolved := domain.IssueStatusResolved
	none, err := f.issueSvc.ListIssues(ctx, IssueListFilter{Status: &statusResolved})
	require.NoError(t, err)
	assert.Empty(t, none)
}
