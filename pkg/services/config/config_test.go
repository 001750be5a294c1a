package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Addr)
	assert.Equal(t, ".", cfg.DataDir)
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, "PREMIUM MEDI / პრემიუმ მედი", cfg.Clinic.Name)
	assert.Len(t, cfg.Clinic.Phones, 2)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: "0.0.0.0:8080"
data_dir: "/var/lib/labreport"
open_browser: false
clinic:
  name: "სხვა კლინიკა"
  phones: ["555-00-00-00"]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, "სხვა კლინიკა", cfg.Clinic.Name)
	assert.Equal(t, []string{"555-00-00-00"}, cfg.Clinic.Phones)
	// Unset keys keep their defaults.
	assert.Equal(t, "საოჯახო მედიცინის ცენტრი", cfg.Clinic.Subtitle)

	assert.Equal(t, filepath.Join("/var/lib/labreport", "patients_db.json"), cfg.DBPath())
	assert.Equal(t, filepath.Join("/var/lib/labreport", "saved_docs"), cfg.DocsDir())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDomainClinic(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	clinic := cfg.DomainClinic()
	assert.Equal(t, cfg.Clinic.Name, clinic.Name)
	assert.Equal(t, cfg.Clinic.Phones, clinic.Phones)
}
