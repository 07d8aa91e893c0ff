package dto

import (
	"github.com/google/uuid"

	"github.com/taskboard-hq/taskboard-backend/internal/models"
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *string    `json:"dueDate"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
}

// UpdateTaskRequest is a partial update: nil means "leave untouched".
// A present-but-empty title or description is rejected, not ignored.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *string    `json:"dueDate"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
}

type TaskResponse struct {
	Message string       `json:"message"`
	Task    *models.Task `json:"task"`
}

// UserProfile is the admin user-listing row. The _id key is kept for
// compatibility with existing dashboard clients.
type UserProfile struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}
