package config_test

import (
	"testing"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("METIS_TENANT_ID", "tenant-1")
	t.Setenv("METIS_CLIENT_ID", "app-1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", cfg.TenantID)
	assert.Equal(t, "app-1", cfg.ClientID)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.GraphBaseURL)
	assert.Equal(t, config.StoreBackendFile, cfg.StoreBackend)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoad_MissingRequiredValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("METIS_TENANT_ID", "")
	t.Setenv("METIS_CLIENT_ID", "")

	_, err := config.Load()
	require.Error(t, err, "tenant_id and client_id are required")
}

func TestLoad_RejectsUnknownStoreBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("METIS_TENANT_ID", "tenant-1")
	t.Setenv("METIS_CLIENT_ID", "app-1")
	t.Setenv("METIS_STORE_BACKEND", "dynamo")

	_, err := config.Load()
	require.Error(t, err)
}
