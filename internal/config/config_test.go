package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, SourcePostgres, cfg.Source.Driver)
	require.Equal(t, "women", cfg.Navigation.PrimaryKey)
	require.Equal(t, "men", cfg.Navigation.SecondaryKey)
	require.Equal(t, 10, cfg.Navigation.ItemLimit)
	require.Equal(t, "storefront_catalog", cfg.Redis.ConsumerGroup)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadFileOverrides(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
source:
  driver: supabase
supabase:
  url: https://project.supabase.co
  api_key: anon-key
  read_replicas:
    - https://project-rr-eu.supabase.co
navigation:
  primary_key: ladies
  item_limit: 6
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, SourceSupabase, cfg.Source.Driver)
	require.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	require.Equal(t, []string{"https://project-rr-eu.supabase.co"}, cfg.Supabase.ReadReplicas)
	require.Equal(t, "ladies", cfg.Navigation.PrimaryKey)
	require.Equal(t, "men", cfg.Navigation.SecondaryKey)
	require.Equal(t, 6, cfg.Navigation.ItemLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("ADMIN_API_KEY", "secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "secret", cfg.Admin.APIKey)
}

func TestLoadRejectsSupabaseWithoutKey(t *testing.T) {
	dir := writeConfig(t, `
source:
  driver: supabase
supabase:
  url: https://project.supabase.co
`)

	_, err := Load(dir)
	require.ErrorContains(t, err, "supabase.api_key")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Server:   ServerConfig{Port: 8080},
		Source:   SourceConfig{Driver: "mysql"},
		Database: DatabaseConfig{Host: "localhost", Name: "storefront"},
		Rebuild:  RebuildConfig{Workers: 1},
	}
	require.ErrorContains(t, cfg.Validate(), "unknown source driver")

	cfg.Source.Driver = SourcePostgres
	require.NoError(t, cfg.Validate())

	cfg.Rebuild.Workers = 0
	require.Error(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	t.Parallel()

	dsn := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "require"}.DSN()
	require.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=require", dsn)
}
