package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"data_path": "",
		"bot_posts_per_day_threshold": 25,
		"cluster_count": 4,
		"forecast_horizon_weeks": 26
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.BotPostsPerDayThreshold)
	assert.Equal(t, 4, cfg.ClusterCount)
	assert.Equal(t, 26, cfg.ForecastHorizonWeeks)
	assert.Equal(t, 0, cfg.MinSkillSupport, "unset fields stay zero until merged")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig("/nonexistent/config.json")
	assert.Error(t, err)

	path := writeConfigFile(t, "{broken")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	bad := Defaults()
	bad.BotDuplicateTextThreshold = 1.5
	assert.Error(t, bad.Validate())

	bad = Defaults()
	bad.BotPostsPerDayThreshold = -1
	assert.Error(t, bad.Validate())

	bad = Defaults()
	bad.DataPath = "/nonexistent/data.csv"
	assert.Error(t, bad.Validate())

	bad = Defaults()
	bad.DataPath = "a.csv"
	bad.DataURL = "http://example.com/data.csv"
	assert.Error(t, bad.Validate(), "data_path and data_url are mutually exclusive")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{ClusterCount: 5}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 5, merged.ClusterCount, "explicit value wins")
	assert.Equal(t, 40.0, merged.BotPostsPerDayThreshold)
	assert.Equal(t, 0.75, merged.BotDuplicateTextThreshold)
	assert.Equal(t, 10, merged.MinSkillSupport)
	assert.Equal(t, 12, merged.ForecastHorizonWeeks)
	assert.Equal(t, 10, merged.TopSkillForecasts)
}

func TestMergeWithDefaults_ZeroMeansUnset(t *testing.T) {
	path := writeConfigFile(t, `{"bot_duplicate_text_threshold": 0}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	merged := cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, 0.75, merged.BotDuplicateTextThreshold,
		"an explicit zero reads as unset and takes the default")
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper-1")

	peppered, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := peppered.HashPassword("pw123456")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("pw123456", hash))

	// A config without the pepper cannot verify the peppered hash.
	t.Setenv("PASSWORD_PEPPER", "")
	unpeppered, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, unpeppered.VerifyPassword("pw123456", hash))
}

func TestPasswordConfig_CostBounds(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}
