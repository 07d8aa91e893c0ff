package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard-hq/taskboard-backend/internal/authctx"
	"github.com/taskboard-hq/taskboard-backend/internal/dto"
	"github.com/taskboard-hq/taskboard-backend/internal/models"
	"github.com/taskboard-hq/taskboard-backend/internal/store"
)

var (
	ErrTitleRequired        = errors.New("title and description are required")
	ErrFieldEmpty           = errors.New("title and description cannot be empty")
	ErrInvalidStatus        = errors.New("invalid status value")
	ErrInvalidPriority      = errors.New("invalid priority value")
	ErrInvalidDueDate       = errors.New("invalid due date")
	ErrAssignedUserNotFound = errors.New("assigned user not found")
	ErrTaskNotFound         = errors.New("task not found or access denied")
	ErrAdminOnly            = errors.New("access denied, admin only")
)

// TaskService decides, per caller and role, which tasks are visible and
// which mutations are allowed, then drives the store accordingly. All
// validation and ownership checks run before any write.
type TaskService struct {
	tasks store.TaskStore
	users store.UserStore
}

func NewTaskService(tasks store.TaskStore, users store.UserStore) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// List returns the tasks visible to the caller, newest created first.
// Admins see everything; other callers see tasks they are assigned to or
// created.
func (s *TaskService) List(caller authctx.Caller) ([]models.Task, error) {
	if caller.IsAdmin() {
		return s.tasks.ListAll()
	}
	return s.tasks.ListVisible(caller.ID)
}

// Create validates the request and persists a new task. The creator is
// always the caller, regardless of payload; the assignee defaults to the
// caller and must reference an existing user.
func (s *TaskService) Create(caller authctx.Caller, req *dto.CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, ErrTitleRequired
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	assignee := caller.ID
	if req.AssignedTo != nil {
		assignee = *req.AssignedTo
	}
	exists, err := s.users.Exists(assignee)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAssignedUserNotFound
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      dueDate,
		CreatedByID:  caller.ID,
		AssignedToID: assignee,
	}

	if err := s.tasks.Create(&task); err != nil {
		return nil, err
	}
	return s.tasks.ByID(task.ID)
}

// Update applies a partial update to a task the caller may mutate. Nil
// fields are left untouched. Reassignment is admin-only: non-admin
// assignedTo values are dropped without error. Every check runs before the
// single store write, so a rejected update never leaves a partial state.
func (s *TaskService) Update(caller authctx.Caller, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.tasks.FindMutable(taskID, caller.ID, caller.IsAdmin())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrFieldEmpty
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, ErrFieldEmpty
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return nil, ErrInvalidPriority
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	if req.AssignedTo != nil && caller.IsAdmin() {
		exists, err := s.users.Exists(*req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrAssignedUserNotFound
		}
		task.AssignedToID = *req.AssignedTo
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if dueDate != nil {
		task.DueDate = dueDate
	}

	if err := s.tasks.Save(task); err != nil {
		return nil, err
	}
	return s.tasks.ByID(task.ID)
}

// Delete removes a task. Admins may delete any task; other callers only
// tasks they created, not ones merely assigned to them.
func (s *TaskService) Delete(caller authctx.Caller, taskID uuid.UUID) error {
	task, err := s.tasks.FindDeletable(taskID, caller.ID, caller.IsAdmin())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return s.tasks.Delete(task)
}

// ListUsers returns every user profile, name ascending. Admin only.
func (s *TaskService) ListUsers(caller authctx.Caller) ([]dto.UserProfile, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminOnly
	}

	users, err := s.users.ListProfiles()
	if err != nil {
		return nil, err
	}

	profiles := make([]dto.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, dto.UserProfile{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return profiles, nil
}

// parseDueDate accepts RFC 3339 timestamps and bare dates.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDueDate
}
