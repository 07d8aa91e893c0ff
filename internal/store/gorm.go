package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard-hq/taskboard-backend/internal/models"
)

type gormUserStore struct {
	db *gorm.DB
}

// NewUserStore returns a UserStore backed by GORM.
func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) Create(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *gormUserStore) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) ByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) Exists(id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormUserStore) ListProfiles() ([]models.User, error) {
	var users []models.User
	err := s.db.Model(&models.User{}).
		Select("id", "name", "email", "role").
		Order("name ASC").
		Find(&users).Error
	return users, err
}

type gormTaskStore struct {
	db *gorm.DB
}

// NewTaskStore returns a TaskStore backed by GORM.
func NewTaskStore(db *gorm.DB) TaskStore {
	return &gormTaskStore{db: db}
}

// withRefs preloads the creator and assignee with the fields the API
// exposes.
func (s *gormTaskStore) withRefs() *gorm.DB {
	selectRefs := func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}
	return s.db.Preload("CreatedBy", selectRefs).Preload("AssignedTo", selectRefs)
}

func (s *gormTaskStore) Create(t *models.Task) error {
	return s.db.Create(t).Error
}

func (s *gormTaskStore) ByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.withRefs().First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *gormTaskStore) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	err := s.withRefs().
		Order("created_at DESC, id").
		Find(&tasks).Error
	return tasks, err
}

func (s *gormTaskStore) ListVisible(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := s.withRefs().
		Where("assigned_to_id = ? OR created_by_id = ?", userID, userID).
		Order("created_at DESC, id").
		Find(&tasks).Error
	return tasks, err
}

func (s *gormTaskStore) FindMutable(taskID, callerID uuid.UUID, isAdmin bool) (*models.Task, error) {
	query := s.withRefs().Where("id = ?", taskID)
	if !isAdmin {
		query = query.Where("assigned_to_id = ? OR created_by_id = ?", callerID, callerID)
	}

	var task models.Task
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *gormTaskStore) FindDeletable(taskID, callerID uuid.UUID, isAdmin bool) (*models.Task, error) {
	query := s.db.Where("id = ?", taskID)
	if !isAdmin {
		query = query.Where("created_by_id = ?", callerID)
	}

	var task models.Task
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *gormTaskStore) Save(t *models.Task) error {
	// Save only the owned columns; preloaded associations must not be
	// written back.
	return s.db.Omit("CreatedBy", "AssignedTo").Save(t).Error
}

func (s *gormTaskStore) Delete(t *models.Task) error {
	return s.db.Delete(t).Error
}
