package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(yaml), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	p := writeConfig(t, `
app:
  name: skyshop
  env: test
jwt:
  secret: test-secret
`)
	c := Load(p)

	assert.Equal(t, "skyshop", c.App.Name)
	assert.Equal(t, "test-secret", c.JWT.Secret)

	// keys absent from the file fall back to defaults
	assert.Equal(t, "token", c.JWT.CookieName)
	assert.Equal(t, 5, c.JWT.CookieTTLDays)
	assert.Equal(t, 60, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, 15, c.Reset.TokenTTLMin)
	assert.Equal(t, "avatars", c.S3.Folder)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadExplicitValuesWin(t *testing.T) {
	p := writeConfig(t, `
app:
  name: skyshop
  publicurl: https://shop.example.com
jwt:
  secret: s
  cookiename: session
  cookiettldays: 1
reset:
  tokenttlmin: 30
db:
  driver: postgres
  dsn: host=localhost user=app dbname=app
`)
	c := Load(p)

	assert.Equal(t, "https://shop.example.com", c.App.PublicURL)
	assert.Equal(t, "session", c.JWT.CookieName)
	assert.Equal(t, 1, c.JWT.CookieTTLDays)
	assert.Equal(t, 30, c.Reset.TokenTTLMin)
	assert.Equal(t, "postgres", c.DB.Driver)
}
