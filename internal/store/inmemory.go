package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard-hq/taskboard-backend/internal/models"
)

// InMemoryUserStore is a map-backed UserStore for tests and local runs.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *InMemoryUserStore) Create(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *InMemoryUserStore) ByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryUserStore) ByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

func (s *InMemoryUserStore) Exists(id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *InMemoryUserStore) ListProfiles() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, models.User{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
	}
	sort.Slice(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
	return users, nil
}

type inMemoryTask struct {
	task models.Task
	seq  int64
}

// InMemoryTaskStore is a map-backed TaskStore. It resolves creator and
// assignee references against the user store it is built with, the same
// projection the GORM store preloads.
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]inMemoryTask
	users *InMemoryUserStore
	seq   int64
}

func NewInMemoryTaskStore(users *InMemoryUserStore) *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks: make(map[uuid.UUID]inMemoryTask),
		users: users,
	}
}

func (s *InMemoryTaskStore) Create(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.seq++
	s.tasks[t.ID] = inMemoryTask{task: *t, seq: s.seq}
	return nil
}

func (s *InMemoryTaskStore) ByID(id uuid.UUID) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.resolve(entry.task), nil
}

func (s *InMemoryTaskStore) ListAll() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(func(models.Task) bool { return true }), nil
}

func (s *InMemoryTaskStore) ListVisible(userID uuid.UUID) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(func(t models.Task) bool {
		return t.AssignedToID == userID || t.CreatedByID == userID
	}), nil
}

// list returns resolved copies, newest created first, creation order
// breaking ties.
func (s *InMemoryTaskStore) list(match func(models.Task) bool) []models.Task {
	entries := make([]inMemoryTask, 0, len(s.tasks))
	for _, e := range s.tasks {
		if match(e.task) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].task.CreatedAt.Equal(entries[j].task.CreatedAt) {
			return entries[i].task.CreatedAt.After(entries[j].task.CreatedAt)
		}
		return entries[i].seq < entries[j].seq
	})

	tasks := make([]models.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, *s.resolve(e.task))
	}
	return tasks
}

func (s *InMemoryTaskStore) FindMutable(taskID, callerID uuid.UUID, isAdmin bool) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	t := entry.task
	if !isAdmin && t.AssignedToID != callerID && t.CreatedByID != callerID {
		return nil, ErrNotFound
	}
	return s.resolve(t), nil
}

func (s *InMemoryTaskStore) FindDeletable(taskID, callerID uuid.UUID, isAdmin bool) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	t := entry.task
	if !isAdmin && t.CreatedByID != callerID {
		return nil, ErrNotFound
	}
	task := t
	return &task, nil
}

func (s *InMemoryTaskStore) Save(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tasks[t.ID]
	if !ok {
		return ErrNotFound
	}
	t.UpdatedAt = time.Now()
	stored := *t
	stored.CreatedBy = nil
	stored.AssignedTo = nil
	entry.task = stored
	s.tasks[t.ID] = entry
	return nil
}

func (s *InMemoryTaskStore) Delete(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, t.ID)
	return nil
}

func (s *InMemoryTaskStore) resolve(t models.Task) *models.Task {
	task := t
	task.CreatedBy = s.userRef(t.CreatedByID)
	task.AssignedTo = s.userRef(t.AssignedToID)
	return &task
}

func (s *InMemoryTaskStore) userRef(id uuid.UUID) *models.User {
	u, err := s.users.ByID(id)
	if err != nil {
		return nil
	}
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email}
}
