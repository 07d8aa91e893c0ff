package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard-hq/taskboard-backend/internal/config"
	"github.com/taskboard-hq/taskboard-backend/internal/dto"
	"github.com/taskboard-hq/taskboard-backend/internal/models"
	"github.com/taskboard-hq/taskboard-backend/internal/store"
)

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBadAdminSecret     = errors.New("invalid admin secret")
)

type AuthService struct {
	users store.UserStore
	cfg   *config.Config
}

func NewAuthService(users store.UserStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates a regular user account.
func (s *AuthService) Register(req *dto.RegisterRequest) error {
	return s.createUser(req.Name, req.Email, req.Password, models.RoleUser)
}

// CreateAdmin creates an admin account, gated by the shared admin secret.
func (s *AuthService) CreateAdmin(req *dto.CreateAdminRequest) error {
	if req.AdminSecret != s.cfg.AdminSecret {
		return ErrBadAdminSecret
	}
	return s.createUser(req.Name, req.Email, req.Password, models.RoleAdmin)
}

func (s *AuthService) createUser(name, email, password, role string) error {
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	if _, err := s.users.ByEmail(email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}

	if err := s.users.Create(&user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and mints a signed token carrying the
// caller's identity and role.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.ByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
