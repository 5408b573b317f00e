package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cardsmith.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "textures/modular", c.Assets.Root)
	assert.Equal(t, 15*time.Second, c.Art.DownloadTimeout)
	assert.True(t, c.Art.PreferHighRes)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, color.Black, c.Compose.LabelColor())
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, `
port: 9000
data_dir: /srv/cards
assets:
  root: /srv/textures
  fallback_fonts: true
art:
  dir: /srv/art
  prefer_highres: false
  download_timeout: 30s
log:
  level: debug
  format: json
compose:
  spell_trap_label_color: white
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9000, c.Port)
	assert.Equal(t, "/srv/cards", c.DataDir)
	assert.Equal(t, "/srv/textures", c.Assets.Root)
	assert.True(t, c.Assets.FallbackFonts)
	assert.Equal(t, "/srv/art", c.Art.Dir)
	assert.False(t, c.Art.PreferHighRes)
	assert.Equal(t, 30*time.Second, c.Art.DownloadTimeout)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "white", c.Compose.SpellTrapLabelColor)
	assert.Equal(t, color.White, c.Compose.LabelColor())
	// untouched keys keep their defaults
	assert.Equal(t, defaultArtURL, c.Art.StandardURL)
	assert.Equal(t, 114.0, c.Compose.NameSize)
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeFile(t, "port: 9000\n")
	t.Setenv("PORT", "7000")
	t.Setenv("ASSET_ROOT", "/env/textures")
	t.Setenv("ART_PREFER_HIGHRES", "false")
	t.Setenv("DOWNLOAD_TIMEOUT", "2s")
	t.Setenv("FALLBACK_FONTS", "1")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 7000, c.Port)
	assert.Equal(t, "/env/textures", c.Assets.Root)
	assert.False(t, c.Art.PreferHighRes)
	assert.Equal(t, 2*time.Second, c.Art.DownloadTimeout)
	assert.True(t, c.Assets.FallbackFonts)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "port: [\n"))
		assert.Error(t, err)
	})
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		assert.ErrorContains(t, err, "PORT")
	})
	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("ART_PREFER_HIGHRES", "maybe")
		_, err := Load("")
		assert.ErrorContains(t, err, "ART_PREFER_HIGHRES")
	})
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.Port = 70000
	c.Assets.Root = ""
	c.Log.Level = "loud"
	c.Compose.SpellTrapLabelColor = "red"
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "port 70000")
	assert.ErrorContains(t, err, "assets.root")
	assert.ErrorContains(t, err, "loud")
	assert.ErrorContains(t, err, "red")
}
