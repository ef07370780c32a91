package services

import (
	"errors"
	"fmt"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"
	"food_delivery_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// --- DTOs ---

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the admin profile.
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	Admin       *models.AdminUser `json:"admin"`
}

// --- AuthService Interface ---

type AuthService interface {
	Login(req LoginRequest) (*LoginResponse, error)
	RegisterAdmin(username, password string) (*models.AdminUser, error)
}

type authService struct {
	authRepo repositories.AuthRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ar repositories.AuthRepository) AuthService {
	return &authService{authRepo: ar}
}

func (s *authService) Login(req LoginRequest) (*LoginResponse, error) {
	admin, err := s.authRepo.GetAdminByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		// err is bcrypt.ErrMismatchedHashAndPassword for a wrong password
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginResponse{AccessToken: token, Admin: admin}, nil
}

// RegisterAdmin creates an operator account. Used by the bootstrap path, not
// exposed as a public endpoint.
func (s *authService) RegisterAdmin(username, password string) (*models.AdminUser, error) {
	if utils.IsEmpty(username) {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if !utils.IsValidPasswordLength(password, 8) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		Role:         "Admin",
	}
	if _, err := s.authRepo.CreateAdmin(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return admin, nil
}
