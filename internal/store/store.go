package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/taskboard-hq/taskboard-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row. For the ownership
// queries this covers both "does not exist" and "exists but outside the
// caller's scope" so callers cannot probe for foreign task ids.
var ErrNotFound = errors.New("record not found")

// UserStore is the credential-store boundary.
type UserStore interface {
	Create(u *models.User) error
	ByEmail(email string) (*models.User, error)
	ByID(id uuid.UUID) (*models.User, error)
	Exists(id uuid.UUID) (bool, error)

	// ListProfiles returns every user ordered by name ascending, with only
	// id/name/email/role populated. Password hashes stay in the store.
	ListProfiles() ([]models.User, error)
}

// TaskStore is the task-store boundary. Lookups that return tasks resolve
// the creator and assignee references; ListAll/ListVisible order newest
// created first.
type TaskStore interface {
	Create(t *models.Task) error
	ByID(id uuid.UUID) (*models.Task, error)
	ListAll() ([]models.Task, error)
	ListVisible(userID uuid.UUID) ([]models.Task, error)

	// FindMutable locates a task the caller may update: any task for
	// admins, otherwise only tasks the caller is assigned to or created.
	FindMutable(taskID, callerID uuid.UUID, isAdmin bool) (*models.Task, error)

	// FindDeletable locates a task the caller may delete: any task for
	// admins, otherwise only tasks the caller created.
	FindDeletable(taskID, callerID uuid.UUID, isAdmin bool) (*models.Task, error)

	Save(t *models.Task) error
	Delete(t *models.Task) error
}
