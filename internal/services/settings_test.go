package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/fieldtrack/internal/common"
	"github.com/dmitrijs2005/fieldtrack/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsEndpoint_NotConfigured(t *testing.T) {
	svc := NewSettingsService(setupDB(t))

	_, _, err := svc.Endpoint(context.Background())
	assert.True(t, errors.Is(err, gateway.ErrNotConfigured))
}

func TestSettingsSaveEndpoint(t *testing.T) {
	svc := NewSettingsService(setupDB(t))
	ctx := context.Background()

	err := svc.SaveEndpoint(ctx, "", "tok")
	assert.True(t, errors.Is(err, common.ErrorValidation))
	err = svc.SaveEndpoint(ctx, "https://x.test/api", "")
	assert.True(t, errors.Is(err, common.ErrorValidation))

	require.NoError(t, svc.SaveEndpoint(ctx, "https://x.test/api", "secret"))

	u, tok, err := svc.Endpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/api", u)
	assert.Equal(t, "secret", tok)
}

func TestSettingsDeviceID_StableAcrossCalls(t *testing.T) {
	svc := NewSettingsService(setupDB(t))
	ctx := context.Background()

	id, err := svc.DeviceID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	again, err := svc.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
