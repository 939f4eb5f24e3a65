package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/splitledger")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, 0.01, cfg.SplitTolerance)
	assert.False(t, cfg.FoldExpenseBalances)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/splitledger")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "")
	os.Unsetenv("APP_ENV")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_ENV=development\nFOLD_EXPENSE_BALANCES=true\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("FOLD_EXPENSE_BALANCES")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.FoldExpenseBalances)
}

func TestLoad_NegativeTolerance(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/splitledger")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SPLIT_TOLERANCE", "-1")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
