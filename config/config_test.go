package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, "eduledger", cfg.ServiceName)
	require.Equal(t, "local", cfg.Environment)
	require.Empty(t, cfg.GenesisAdmin)
}

func TestLoadParsesFields(t *testing.T) {
	path := writeConfig(t, `
DataDir = "/var/lib/eduledger"
GenesisAdmin = "0x0000000000000000000000000000000000000001"
MaxSupply = "1000000000"
ServiceName = "eduledger-test"
Environment = "ci"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/eduledger", cfg.DataDir)
	require.Equal(t, "eduledger-test", cfg.ServiceName)

	admin, err := cfg.AdminAddress()
	require.NoError(t, err)
	require.Equal(t, byte(1), admin[19])

	max, err := cfg.MaxSupplyBig()
	require.NoError(t, err)
	require.Equal(t, "1000000000", max.String())
}

func TestLoadRejectsMalformedAdmin(t *testing.T) {
	path := writeConfig(t, `GenesisAdmin = "not-an-address"`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsShortAdmin(t *testing.T) {
	path := writeConfig(t, `GenesisAdmin = "0x0102"`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedMaxSupply(t *testing.T) {
	path := writeConfig(t, `MaxSupply = "a lot"`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveMaxSupply(t *testing.T) {
	path := writeConfig(t, `MaxSupply = "0"`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestMaxSupplyEmptyMeansDefault(t *testing.T) {
	cfg := Default()
	max, err := cfg.MaxSupplyBig()
	require.NoError(t, err)
	require.Nil(t, max)
}
