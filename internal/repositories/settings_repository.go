package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"food_delivery_backend/internal/models"
)

// SettingsRepository defines the interface for payment-settings database
// operations. Settings rows are never updated in place: activating a new row
// deactivates all others inside the same transaction, and the partial unique
// index on is_active keeps a racing writer from leaving two rows active.
type SettingsRepository interface {
	GetActiveSettings() (*models.PaymentSettings, error)
	InsertNewActive(settings *models.PaymentSettings) error
	GetSettingsHistory() ([]models.PaymentSettings, error)
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, qr_image, upi_id, platform_fee, handling_charge,
	delivery_fee_per_km, gst_percent, is_active, created_at, updated_at`

func scanSettings(s scanner, ps *models.PaymentSettings) error {
	return s.Scan(
		&ps.ID, &ps.QRImage, &ps.UpiID, &ps.PlatformFee, &ps.HandlingCharge,
		&ps.DeliveryFeePerKm, &ps.GstPercent, &ps.IsActive, &ps.CreatedAt, &ps.UpdatedAt,
	)
}

func (r *settingsRepository) GetActiveSettings() (*models.PaymentSettings, error) {
	settings := &models.PaymentSettings{}
	query := `SELECT ` + settingsColumns + ` FROM payment_settings WHERE is_active = TRUE`
	err := scanSettings(r.db.QueryRow(query), settings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting active payment settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingsRepository) InsertNewActive(settings *models.PaymentSettings) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting settings transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`UPDATE payment_settings SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE`, now)
	if err != nil {
		return fmt.Errorf("%w: deactivating payment settings: %v", ErrDatabaseError, err)
	}

	settings.IsActive = true
	settings.CreatedAt = now
	settings.UpdatedAt = now
	err = tx.QueryRow(
		`INSERT INTO payment_settings
		   (qr_image, upi_id, platform_fee, handling_charge, delivery_fee_per_km, gst_percent, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		settings.QRImage, settings.UpiID, settings.PlatformFee, settings.HandlingCharge,
		settings.DeliveryFeePerKm, settings.GstPercent, settings.IsActive,
		settings.CreatedAt, settings.UpdatedAt,
	).Scan(&settings.ID)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent activation won the race on the partial unique index.
			return fmt.Errorf("%w: active payment settings: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: inserting payment settings: %v", ErrDatabaseError, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing settings transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *settingsRepository) GetSettingsHistory() ([]models.PaymentSettings, error) {
	history := []models.PaymentSettings{}
	query := `SELECT ` + settingsColumns + ` FROM payment_settings ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payment settings history: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var settings models.PaymentSettings
		if err := scanSettings(rows, &settings); err != nil {
			return nil, fmt.Errorf("%w: scanning payment settings: %v", ErrDatabaseError, err)
		}
		history = append(history, settings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment settings: %v", ErrDatabaseError, err)
	}
	return history, nil
}
