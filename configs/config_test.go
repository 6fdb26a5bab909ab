package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: garden-api
  http_addr: ":8080"
  log_level: info
  log_file: ./logs/app.log
mysql:
  dsn: "user:pass@tcp(localhost:3306)/garden?parseTime=true"
security:
  jwt_secret: base-secret
  issuer: garden-api
  audience: garden-app
  ttl: 24h
pricing:
  currency: INR
  delivery_fee_cents: 4000
  tax_basis_points: 500
`

func writeConfigs(t *testing.T, devYAML string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(baseYAML), 0644))
	if devYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dev.yaml"), []byte(devYAML), 0644))
	}
	return dir
}

func TestLoadBaseOnly(t *testing.T) {
	dir := writeConfigs(t, "")

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "INR", cfg.Pricing.Currency)
	assert.Equal(t, int64(4000), cfg.Pricing.DeliveryFee)
	assert.Equal(t, int64(500), cfg.Pricing.TaxBasisPoints)
}

func TestLoadEnvFileOverridesBase(t *testing.T) {
	dir := writeConfigs(t, "app:\n  http_addr: \":9090\"\n")

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	// untouched keys survive the overlay
	assert.Equal(t, "garden-api", cfg.App.Name)
}

func TestLoadEnvVarOverridesFiles(t *testing.T) {
	dir := writeConfigs(t, "")
	t.Setenv("GARDEN_SECURITY__JWT_SECRET", "from-env")

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Security.JWTSecret)
}

func TestValidate(t *testing.T) {
	dir := writeConfigs(t, "pricing:\n  currency: \"\"\n")
	_, err := Load(dir, "dev")
	assert.Error(t, err)
}

func TestLoadMissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "dev")
	assert.Error(t, err)
}
