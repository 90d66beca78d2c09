package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SFG_APP_NAME":                         os.Getenv("SFG_APP_NAME"),
		"SFG_APP_ENV":                          os.Getenv("SFG_APP_ENV"),
		"SFG_APP_PORT":                         os.Getenv("SFG_APP_PORT"),
		"SFG_DATABASE_HOST":                    os.Getenv("SFG_DATABASE_HOST"),
		"SFG_DATABASE_PORT":                    os.Getenv("SFG_DATABASE_PORT"),
		"SFG_DATABASE_USER":                    os.Getenv("SFG_DATABASE_USER"),
		"SFG_DATABASE_PASSWORD":                os.Getenv("SFG_DATABASE_PASSWORD"),
		"SFG_DATABASE_DBNAME":                  os.Getenv("SFG_DATABASE_DBNAME"),
		"SFG_DATABASE_SSLMODE":                 os.Getenv("SFG_DATABASE_SSLMODE"),
		"SFG_DATABASE_MAX_OPEN_CONNS":          os.Getenv("SFG_DATABASE_MAX_OPEN_CONNS"),
		"SFG_DATABASE_MAX_IDLE_CONNS":          os.Getenv("SFG_DATABASE_MAX_IDLE_CONNS"),
		"SFG_GATING_SECOND_APPROVAL_THRESHOLD": os.Getenv("SFG_GATING_SECOND_APPROVAL_THRESHOLD"),
		"SFG_GATING_MANDATORY_THRESHOLD":       os.Getenv("SFG_GATING_MANDATORY_THRESHOLD"),
		"SFG_GATING_SEQUENCE_MAX_RETRIES":      os.Getenv("SFG_GATING_SEQUENCE_MAX_RETRIES"),
		"SFG_NOTIFICATION_ENABLED":             os.Getenv("SFG_NOTIFICATION_ENABLED"),
		"SFG_NOTIFICATION_WEBHOOK_URL":         os.Getenv("SFG_NOTIFICATION_WEBHOOK_URL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sfgnexus-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "sfgnexus", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("applies gating policy defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, []string{"Customer", "Project", "Location", "ProductType", "DeliveryType"}, cfg.Gating.RequiredFields)
		assert.Equal(t, 25000.0, cfg.Gating.SecondApprovalThreshold)
		assert.Equal(t, 50000.0, cfg.Gating.MandatoryThreshold)
		assert.Equal(t, []string{"SUPPLY_AND_INSTALL"}, cfg.Gating.MandatoryCategories)
		assert.Equal(t, 3, cfg.Gating.SequenceMaxRetries)
	})

	t.Run("loads values from environment variables with SFG prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_APP_NAME", "test-app")
		os.Setenv("SFG_APP_ENV", "testing")
		os.Setenv("SFG_APP_PORT", "9000")
		os.Setenv("SFG_DATABASE_HOST", "testdb.local")
		os.Setenv("SFG_DATABASE_PORT", "5433")
		os.Setenv("SFG_DATABASE_USER", "testuser")
		os.Setenv("SFG_DATABASE_PASSWORD", "testpass")
		os.Setenv("SFG_DATABASE_DBNAME", "testdb")
		os.Setenv("SFG_DATABASE_SSLMODE", "require")
		os.Setenv("SFG_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("SFG_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("SFG_GATING_SECOND_APPROVAL_THRESHOLD", "30000")
		os.Setenv("SFG_GATING_MANDATORY_THRESHOLD", "60000")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 30000.0, cfg.Gating.SecondApprovalThreshold)
		assert.Equal(t, 60000.0, cfg.Gating.MandatoryThreshold)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SFG_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects mandatory threshold below second approval threshold", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_GATING_SECOND_APPROVAL_THRESHOLD", "40000")
		os.Setenv("SFG_GATING_MANDATORY_THRESHOLD", "20000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mandatory_threshold")
	})

	t.Run("rejects enabled notifications without webhook URL", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_NOTIFICATION_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "notification.webhook_url is required")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"SFG_APP_ENV":           os.Getenv("SFG_APP_ENV"),
		"SFG_DATABASE_PASSWORD": os.Getenv("SFG_DATABASE_PASSWORD"),
		"SFG_DATABASE_SSLMODE":  os.Getenv("SFG_DATABASE_SSLMODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_APP_ENV", "production")
		os.Setenv("SFG_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_APP_ENV", "production")
		os.Setenv("SFG_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SFG_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("SFG_APP_ENV", "production")
		os.Setenv("SFG_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SFG_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
