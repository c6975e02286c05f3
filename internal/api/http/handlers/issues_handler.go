package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssuesHandler manages issue endpoints. Each endpoint resolves raw
// input into typed values and invokes exactly one engine operation.
type IssuesHandler struct {
	issues      *service.IssueService
	assignments *service.AssignmentService
	statuses    *service.StatusService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issues *service.IssueService, assignments *service.AssignmentService, statuses *service.StatusService) *IssuesHandler {
	return &IssuesHandler{issues: issues, assignments: assignments, statuses: statuses}
}

// CreateIssue POST /api/issues.
func (h *IssuesHandler) CreateIssue(c *fiber.Ctx) error {
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title is required and cannot be empty", nil)
	}
	if req.Priority == "" {
		return apperrors.NewValidationError("priority is required", nil)
	}
	if req.CreatedByUserID == "" {
		return apperrors.NewValidationError("created_by_user_id is required", nil)
	}
	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return apperrors.NewRuleViolationf(
			"invalid priority value %q; must be one of: LOW, MEDIUM, HIGH, CRITICAL", req.Priority)
	}

	issue, err := h.issues.CreateIssue(c.UserContext(), service.IssueCreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        priority,
		CreatedByUserID: req.CreatedByUserID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": issueResponse(issue)})
}

// ListIssues GET /api/issues.
func (h *IssuesHandler) ListIssues(c *fiber.Ctx) error {
	filter, err := parseIssueQuery(c)
	if err != nil {
		return err
	}
	issues, err := h.issues.ListIssues(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, issueResponse(&issues[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetIssue GET /api/issues/:id.
func (h *IssuesHandler) GetIssue(c *fiber.Ctx) error {
	issue, err := h.issues.GetIssue(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueResponse(issue)})
}

// AssignIssue PUT /api/issues/:id/assign.
func (h *IssuesHandler) AssignIssue(c *fiber.Ctx) error {
	var req dto.AssignIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssigneeUserID == "" {
		return apperrors.NewValidationError("assignee_user_id is required", nil)
	}
	if req.AssignedByUserID == "" {
		return apperrors.NewValidationError("assigned_by_user_id is required", nil)
	}

	issue, err := h.assignments.AssignIssue(c.UserContext(), c.Params("id"), req.AssigneeUserID, req.AssignedByUserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueResponse(issue)})
}

// UpdateStatus PUT /api/issues/:id/status.
func (h *IssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewStatus == "" {
		return apperrors.NewValidationError("new_status is required", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id is required", nil)
	}
	newStatus, ok := domain.ParseIssueStatus(req.NewStatus)
	if !ok {
		return apperrors.NewRuleViolationf(
			"invalid status value %q; must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED", req.NewStatus)
	}

	issue, err := h.statuses.UpdateStatus(c.UserContext(), c.Params("id"), newStatus, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueResponse(issue)})
}

func parseIssueQuery(c *fiber.Ctx) (service.IssueListFilter, error) {
	filter := service.IssueListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := domain.ParseIssueStatus(statusStr)
		if !ok {
			return filter, apperrors.NewRuleViolationf(
				"invalid status value %q; must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED", statusStr)
		}
		filter.Status = &status
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		filter.AssignedToID = &assignedTo
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filter.CreatedByID = &createdBy
	}
	return filter, nil
}

func issueResponse(issue *domain.Issue) dto.IssueResponse {
	return dto.IssueResponse{
		ID:               issue.ID,
		Title:            issue.Title,
		Description:      issue.Description,
		Status:           issue.Status,
		Priority:         issue.Priority,
		CreatedByUserID:  issue.CreatedByID,
		AssignedToUserID: issue.AssignedToID,
		CreatedAt:        issue.CreatedAt,
		UpdatedAt:        issue.UpdatedAt,
	}
}
