package tokens

import (
	"testing"
	"time"

	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/models"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	return cfg
}

func TestGenerateAndParse(t *testing.T) {
	cfg := testConfig("unit-test-secret")
	u := &models.User{Username: "tomnook", Role: models.RoleAdmin}

	raw, err := GenerateAccessToken(cfg, u, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	id, err := ParseAccessToken(cfg, raw)
	require.NoError(t, err)
	require.Equal(t, "tomnook", id.Username)
	require.Equal(t, models.RoleAdmin, id.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	u := &models.User{Username: "tomnook", Role: models.RoleMember}
	raw, err := GenerateAccessToken(testConfig("secret-a"), u, 15*time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(testConfig("secret-b"), raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testConfig("unit-test-secret")
	u := &models.User{Username: "tomnook"}
	raw, err := GenerateAccessToken(cfg, u, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken(testConfig("s"), "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
