package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"food_delivery_backend/internal/models"
)

// AuthRepository defines the interface for admin-user database operations.
type AuthRepository interface {
	GetAdminByUsername(username string) (*models.AdminUser, error)
	CreateAdmin(admin *models.AdminUser) (int64, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) GetAdminByUsername(username string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	query := `SELECT id, username, password_hash, role, created_at FROM admin_users WHERE username = $1`
	err := r.db.QueryRow(query, username).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.Role, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting admin user %s: %v", ErrDatabaseError, username, err)
	}
	return admin, nil
}

func (r *authRepository) CreateAdmin(admin *models.AdminUser) (int64, error) {
	query := `INSERT INTO admin_users (username, password_hash, role)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := r.db.QueryRow(query, admin.Username, admin.PasswordHash, admin.Role).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: username %s: %v", ErrDuplicateKey, admin.Username, err)
		}
		return 0, fmt.Errorf("%w: creating admin user: %v", ErrDatabaseError, err)
	}
	return admin.ID, nil
}
