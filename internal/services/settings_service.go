package services

import (
	"errors"
	"fmt"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"

	"food_delivery_backend/pkg/utils"
)

// Upper bound on GST percent, per the tax slabs the platform operates under.
const maxGstPercent = 28

// --- DTOs ---

// SetSettingsRequest is the admin payload for activating a new billing
// configuration.
type SetSettingsRequest struct {
	QRImage          string  `json:"qr_image" binding:"required"`
	UpiID            string  `json:"upi_id" binding:"required"`
	PlatformFee      float64 `json:"platform_fee"`
	HandlingCharge   float64 `json:"handling_charge"`
	DeliveryFeePerKm float64 `json:"delivery_fee_per_km"`
	GstPercent       float64 `json:"gst_percent"`
}

// --- SettingsService Interface ---

type SettingsService interface {
	GetActiveSettings() (*models.PaymentSettings, error)
	GetPublicSettings() (*models.PublicSettings, error)
	SetActiveSettings(req SetSettingsRequest) (*models.PaymentSettings, error)
	GetSettingsHistory() ([]models.PaymentSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(sr repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: sr}
}

func (s *settingsService) GetActiveSettings() (*models.PaymentSettings, error) {
	settings, err := s.settingsRepo.GetActiveSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSettingsNotConfigured
		}
		return nil, fmt.Errorf("failed to get active payment settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) GetPublicSettings() (*models.PublicSettings, error) {
	settings, err := s.GetActiveSettings()
	if err != nil {
		return nil, err
	}
	return &models.PublicSettings{
		QRImage:          settings.QRImage,
		UpiID:            settings.UpiID,
		PlatformFee:      settings.PlatformFee,
		HandlingCharge:   settings.HandlingCharge,
		DeliveryFeePerKm: settings.DeliveryFeePerKm,
		GstPercent:       settings.GstPercent,
	}, nil
}

// SetActiveSettings validates and activates a new settings record. The
// repository deactivates all others and inserts the new row in one
// transaction; if a concurrent activation wins the race on the partial
// unique index, the whole sequence is retried once.
func (s *settingsService) SetActiveSettings(req SetSettingsRequest) (*models.PaymentSettings, error) {
	if utils.IsEmpty(req.QRImage) {
		return nil, fmt.Errorf("%w: QR image is required", ErrValidation)
	}
	if utils.IsEmpty(req.UpiID) {
		return nil, fmt.Errorf("%w: UPI ID is required", ErrValidation)
	}
	if req.PlatformFee < 0 || req.HandlingCharge < 0 || req.DeliveryFeePerKm < 0 {
		return nil, fmt.Errorf("%w: charges cannot be negative", ErrValidation)
	}
	if req.GstPercent < 0 || req.GstPercent > maxGstPercent {
		return nil, fmt.Errorf("%w: GST percent must be between 0 and %d", ErrValidation, maxGstPercent)
	}

	settings := &models.PaymentSettings{
		QRImage:          req.QRImage,
		UpiID:            req.UpiID,
		PlatformFee:      req.PlatformFee,
		HandlingCharge:   req.HandlingCharge,
		DeliveryFeePerKm: req.DeliveryFeePerKm,
		GstPercent:       req.GstPercent,
	}

	err := s.settingsRepo.InsertNewActive(settings)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		err = s.settingsRepo.InsertNewActive(settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to activate payment settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) GetSettingsHistory() ([]models.PaymentSettings, error) {
	history, err := s.settingsRepo.GetSettingsHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment settings history: %w", err)
	}
	return history, nil
}
