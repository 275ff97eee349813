package env

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	Host    string        `env:"TEST_HOST" default:"localhost"`
	Port    int           `env:"TEST_PORT" default:"8080"`
	Enabled bool          `env:"TEST_ENABLED" default:"true"`
	Wait    time.Duration `env:"TEST_WAIT" default:"5s"`
	NoDef   string        `env:"TEST_NO_DEF"`
}

func TestLoad(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_HOST", "example.com")
	os.Setenv("TEST_PORT", "9090")
	os.Setenv("TEST_ENABLED", "false")
	os.Setenv("TEST_WAIT", "1m30s")
	os.Setenv("TEST_NO_DEF", "foo")

	var cfg TestConfig
	err := Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Wait)
	assert.Equal(t, "foo", cfg.NoDef)
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	var cfg TestConfig
	err := Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Wait)
	assert.Empty(t, cfg.NoDef)
}

func TestLoad_EmptyStringRespected(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_HOST", "")

	var cfg TestConfig
	err := Load(&cfg)
	require.NoError(t, err)

	// An explicitly set empty string wins over the default tag.
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_InvalidValue(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_PORT", "not-a-number")

	var cfg TestConfig
	err := Load(&cfg)
	require.Error(t, err)

	var invalidErr ErrInvalidValue
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "TEST_PORT", invalidErr.EnvVar)
}

func TestLoad_NotStructPointer(t *testing.T) {
	var cfg TestConfig
	err := Load(cfg)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ErrNotStructPointer{})

	var s string
	err = Load(&s)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ErrNotStructPointer{})
}

type nestedInner struct {
	Value string `env:"TEST_INNER_VALUE" default:"inner"`
}

type nestedOuter struct {
	Inner nestedInner
	Name  string `env:"TEST_OUTER_NAME" default:"outer"`
}

func TestLoad_NestedStruct(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_INNER_VALUE", "set")

	var cfg nestedOuter
	err := Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "set", cfg.Inner.Value)
	assert.Equal(t, "outer", cfg.Name)
}

type validatedConfig struct {
	Mode string `env:"TEST_MODE" default:"bad"`
}

func (c *validatedConfig) Validate() error {
	if c.Mode == "bad" {
		return assert.AnError
	}
	return nil
}

func TestLoad_ValidatorCalled(t *testing.T) {
	os.Clearenv()

	var cfg validatedConfig
	err := Load(&cfg)
	require.Error(t, err)

	os.Setenv("TEST_MODE", "good")
	err = Load(&cfg)
	require.NoError(t, err)
}
