package handlers

import (
	"github.com/google/uuid"

	"github.com/taskboard-hq/taskboard-backend/internal/authctx"
	"github.com/taskboard-hq/taskboard-backend/internal/dto"
	"github.com/taskboard-hq/taskboard-backend/internal/models"
)

// AuthService is the credential/token surface the auth handler needs.
type AuthService interface {
	Register(req *dto.RegisterRequest) error
	CreateAdmin(req *dto.CreateAdminRequest) error
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// TaskService is the authorization-filter surface the task handler needs.
type TaskService interface {
	List(caller authctx.Caller) ([]models.Task, error)
	Create(caller authctx.Caller, req *dto.CreateTaskRequest) (*models.Task, error)
	Update(caller authctx.Caller, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	Delete(caller authctx.Caller, taskID uuid.UUID) error
	ListUsers(caller authctx.Caller) ([]dto.UserProfile, error)
}
