package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Priority        string  `json:"priority"`
	CreatedByUserID string  `json:"created_by_user_id"`
}

// AssignIssueRequest payload.
type AssignIssueRequest struct {
	AssigneeUserID   string `json:"assignee_user_id"`
	AssignedByUserID string `json:"assigned_by_user_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	NewStatus string `json:"new_status"`
	UserID    string `json:"user_id"`
}

// IssueResponse response.
type IssueResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      *string            `json:"description"`
	Status           domain.IssueStatus `json:"status"`
	Priority         domain.Priority    `json:"priority"`
	CreatedByUserID  string             `json:"created_by_user_id"`
	AssignedToUserID *string            `json:"assigned_to_user_id"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
