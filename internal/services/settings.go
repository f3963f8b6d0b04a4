package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fieldtrack/internal/common"
	"github.com/dmitrijs2005/fieldtrack/internal/gateway"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/settings"
	"github.com/google/uuid"
)

// SettingsService manages device-level settings: the remote endpoint
// address, the shared secret and the device identifier.
type SettingsService struct {
	db *sql.DB
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SaveEndpoint stores the remote endpoint address and shared secret.
func (s *SettingsService) SaveEndpoint(ctx context.Context, apiURL, apiToken string) error {
	if apiURL == "" || apiToken == "" {
		return fmt.Errorf("%w: endpoint address and token are required", common.ErrorValidation)
	}
	repo := settings.NewSQLiteRepository(s.db)
	if err := repo.Set(ctx, settings.KeyAPIURL, []byte(apiURL)); err != nil {
		return err
	}
	return repo.Set(ctx, settings.KeyAPIToken, []byte(apiToken))
}

// Endpoint returns the saved endpoint address and shared secret, or
// gateway.ErrNotConfigured if either is missing.
func (s *SettingsService) Endpoint(ctx context.Context) (apiURL, apiToken string, err error) {
	repo := settings.NewSQLiteRepository(s.db)

	u, err := repo.Get(ctx, settings.KeyAPIURL)
	if err != nil {
		return "", "", err
	}
	tok, err := repo.Get(ctx, settings.KeyAPIToken)
	if err != nil {
		return "", "", err
	}
	if len(u) == 0 || len(tok) == 0 {
		return "", "", gateway.ErrNotConfigured
	}
	return string(u), string(tok), nil
}

// DeviceID returns this device's identifier, minting and persisting one on
// first use. The id is attached to push requests for server-side log
// attribution.
func (s *SettingsService) DeviceID(ctx context.Context) (string, error) {
	repo := settings.NewSQLiteRepository(s.db)

	raw, err := repo.Get(ctx, settings.KeyDeviceID)
	if err != nil {
		return "", err
	}
	if len(raw) > 0 {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, settings.KeyDeviceID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}
