// Package client is a Go client for the taskboard API. Auth state is an
// explicit Session hydrated from an injected SessionStore at construction
// and cleared on Logout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// APIError carries the server-provided message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// UserRef is a resolved user reference on a task (name/email projection).
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedBy   *UserRef   `json:"createdBy,omitempty"`
	AssignedTo  *UserRef   `json:"assignedTo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type UserProfile struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *string    `json:"dueDate,omitempty"`
	AssignedTo  *uuid.UUID `json:"assignedTo,omitempty"`
}

// TaskPatch is a partial update: nil fields are left untouched.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *string    `json:"dueDate,omitempty"`
	AssignedTo  *uuid.UUID `json:"assignedTo,omitempty"`
}

type taskEnvelope struct {
	Message string `json:"message"`
	Task    *Task  `json:"task"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type loginEnvelope struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	mu      sync.RWMutex
	session Session
}

// New builds a Client and hydrates its session from the store.
func New(baseURL string, store SessionStore) (*Client, error) {
	if store == nil {
		store = &MemorySessionStore{}
	}

	session, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		session: session,
	}, nil
}

// Session returns a copy of the current auth state.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp messageEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, false, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) CreateAdmin(ctx context.Context, name, email, password, adminSecret string) (string, error) {
	body := map[string]string{
		"name": name, "email": email, "password": password, "adminSecret": adminSecret,
	}
	var resp messageEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/create-admin", body, false, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login authenticates and persists the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp loginEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, false, &resp); err != nil {
		return err
	}

	session := Session{Token: resp.Token, Role: resp.Role}
	if err := c.store.Save(session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return nil
}

// Logout clears the session from memory and from the store.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()
	return c.store.Clear()
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, true, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", input, true, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (*Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+id.String(), patch, true, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id.String(), nil, true, nil)
}

// Users lists all user profiles. Admin sessions only.
func (c *Client) Users(ctx context.Context) ([]UserProfile, error) {
	var users []UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/users", nil, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var resp messageEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, false, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if auth {
		session := c.Session()
		if session.Valid() {
			req.Header.Set("Authorization", "Bearer "+session.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "Request failed"}
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}
