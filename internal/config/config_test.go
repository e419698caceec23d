package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	body := "user_agent: scanner/1.0\nno_hashcat: true\ncustom_secrets:\n  - /tmp/extra.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".keyreaper.yml"), []byte(body), 0o600))

	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.UserAgent)
	assert.Equal(t, "scanner/1.0", *cfg.UserAgent)
	require.NotNil(t, cfg.NoHashcat)
	assert.True(t, *cfg.NoHashcat)
	assert.Equal(t, []string{"/tmp/extra.txt"}, cfg.CustomSecrets)
	assert.Nil(t, cfg.Proxy, "unset fields stay nil")
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	require.Error(t, err)
}

func TestLoadGlobal(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "keyreaper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "keyreaper", "config.yml"), []byte("proxy: http://127.0.0.1:8080\n"), 0o600))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.Proxy)
	assert.Equal(t, "http://127.0.0.1:8080", *cfg.Proxy)
}
