package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Port    int    `json:"port"`
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "config.json5"),
		[]byte(`{base_url: "https://www.capitoltrades.com/trades", port: 5001}`),
		0644,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{port: 8080}`),
		0644,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://www.capitoltrades.com/trades", cfg.BaseUrl)
	require.Equal(t, 8080, cfg.Port)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadEmbedded(t *testing.T) {
	cfg, err := ReadEmbedded[testConfig]([]byte(`{base_url: "x", port: 1}`))
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Port)
}
