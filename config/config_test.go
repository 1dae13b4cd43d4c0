package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Blog.PageSize)
	assert.Equal(t, 4, cfg.Blog.SimilarLimit)
	assert.InDelta(t, 0.3, cfg.Blog.SearchMinRank, 1e-9)
	assert.Equal(t, "NL", cfg.Shop.PostalCountry)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, time.UTC, cfg.Blog.Location())
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, cfg.Server.AllowedHosts)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("blog:\n  page_size: 5\n"), 0o644))
	t.Setenv("BLOG_BLOG_PAGE_SIZE", "7")
	t.Setenv("BLOG_SHOP_POSTAL_COUNTRY", "DE")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Blog.PageSize)
	assert.Equal(t, "DE", cfg.Shop.PostalCountry)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"driver", "database:\n  driver: oracle\n"},
		{"mail backend", "mail:\n  backend: pigeon\n"},
		{"page size", "blog:\n  page_size: 0\n"},
		{"timezone", "blog:\n  timezone: Mars/Olympus\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}
