package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task references its creator and assignee by ID; the association fields
// are only filled when the query layer preloads them. CreatedByID is fixed
// at creation, AssignedToID may only be changed by admins.
type Task struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Status       string     `gorm:"size:20;default:'pending'" json:"status"`
	Priority     string     `gorm:"size:20;default:'medium'" json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedByID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	AssignedToID uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	CreatedBy    *User      `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ValidStatus reports whether s is one of the three task states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the three priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
