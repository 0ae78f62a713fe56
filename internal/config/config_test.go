package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/pmt.db")
	assert.Equal(t, "/tmp/pmt.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:8700", cfg.Server.Bind)
	assert.False(t, cfg.SMTP.Enabled(), "mail is off until a host is configured")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/pmt.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
path = "/srv/pmt/pmt.db"

[server]
bind = "0.0.0.0:9000"

[smtp]
host = "mail.example.com"
port = 587
from = "pmt@example.com"

[report]
recipients = ["alice", "bob"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, Default("/tmp/default.db"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/pmt/pmt.db", cfg.Database.Path)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Bind)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "mail.example.com:587", cfg.SMTP.Addr())
	assert.Equal(t, []string{"alice", "bob"}, cfg.Report.Recipients)
}

func TestValidateRejectsBadSMTP(t *testing.T) {
	cfg := Default("/tmp/pmt.db")
	cfg.SMTP.Host = "mail.example.com"
	cfg.SMTP.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.SMTP.Port = 25
	cfg.SMTP.From = " "
	assert.Error(t, cfg.Validate())
}
