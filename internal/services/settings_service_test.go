package services

import (
	"testing"

	"food_delivery_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettingsRequest() SetSettingsRequest {
	return SetSettingsRequest{
		QRImage:          "https://cdn.example.com/qr.png",
		UpiID:            "harshu@upi",
		PlatformFee:      5,
		HandlingCharge:   3,
		DeliveryFeePerKm: 10,
		GstPercent:       5,
	}
}

func TestSetActiveSettings(t *testing.T) {
	repo := newFakeSettingsRepo()
	service := NewSettingsService(repo)

	settings, err := service.SetActiveSettings(validSettingsRequest())
	require.NoError(t, err)
	assert.True(t, settings.IsActive)
	assert.NotZero(t, settings.ID)

	active, err := service.GetActiveSettings()
	require.NoError(t, err)
	assert.Equal(t, settings.ID, active.ID)
}

func TestSetActiveSettings_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *SetSettingsRequest)
	}{
		{name: "missing QR image", mutate: func(req *SetSettingsRequest) { req.QRImage = "" }},
		{name: "blank UPI ID", mutate: func(req *SetSettingsRequest) { req.UpiID = "   " }},
		{name: "negative platform fee", mutate: func(req *SetSettingsRequest) { req.PlatformFee = -1 }},
		{name: "negative handling charge", mutate: func(req *SetSettingsRequest) { req.HandlingCharge = -1 }},
		{name: "negative delivery fee", mutate: func(req *SetSettingsRequest) { req.DeliveryFeePerKm = -0.5 }},
		{name: "negative GST", mutate: func(req *SetSettingsRequest) { req.GstPercent = -1 }},
		{name: "GST above slab cap", mutate: func(req *SetSettingsRequest) { req.GstPercent = 29 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSettingsRepo()
			service := NewSettingsService(repo)

			req := validSettingsRequest()
			tt.mutate(&req)

			_, err := service.SetActiveSettings(req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, repo.history)
		})
	}
}

func TestSetActiveSettings_ReplacesActiveRow(t *testing.T) {
	repo := newFakeSettingsRepo()
	service := NewSettingsService(repo)

	first, err := service.SetActiveSettings(validSettingsRequest())
	require.NoError(t, err)

	second := validSettingsRequest()
	second.GstPercent = 12
	activated, err := service.SetActiveSettings(second)
	require.NoError(t, err)

	// Exactly one active row; the latest one wins.
	assert.Equal(t, 1, repo.activeCount())
	active, err := service.GetActiveSettings()
	require.NoError(t, err)
	assert.Equal(t, activated.ID, active.ID)
	assert.NotEqual(t, first.ID, active.ID)
	assert.Equal(t, 12.0, active.GstPercent)

	// History keeps both rows.
	history, err := service.GetSettingsHistory()
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSetActiveSettings_RetriesOnDuplicate(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.duplicateInserts = 1
	service := NewSettingsService(repo)

	settings, err := service.SetActiveSettings(validSettingsRequest())
	require.NoError(t, err)
	assert.True(t, settings.IsActive)
	assert.Equal(t, 1, repo.activeCount())
}

func TestSetActiveSettings_GivesUpAfterSecondDuplicate(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.duplicateInserts = 2
	service := NewSettingsService(repo)

	_, err := service.SetActiveSettings(validSettingsRequest())
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
	assert.Empty(t, repo.history)
}

func TestGetActiveSettings_NotConfigured(t *testing.T) {
	service := NewSettingsService(newFakeSettingsRepo())

	_, err := service.GetActiveSettings()
	assert.ErrorIs(t, err, ErrSettingsNotConfigured)

	_, err = service.GetPublicSettings()
	assert.ErrorIs(t, err, ErrSettingsNotConfigured)
}

func TestGetPublicSettings(t *testing.T) {
	repo := newFakeSettingsRepo()
	service := NewSettingsService(repo)

	_, err := service.SetActiveSettings(validSettingsRequest())
	require.NoError(t, err)

	public, err := service.GetPublicSettings()
	require.NoError(t, err)
	assert.Equal(t, "harshu@upi", public.UpiID)
	assert.Equal(t, "https://cdn.example.com/qr.png", public.QRImage)
	assert.Equal(t, 5.0, public.GstPercent)
	assert.Equal(t, 10.0, public.DeliveryFeePerKm)
}
