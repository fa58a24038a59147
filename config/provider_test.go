package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	// Present names resolve; absent and empty names miss.
	p := Static{"KEY": "value"}

	v, ok := p.GetEnvVariable("KEY")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = p.GetEnvVariable("MISSING")
	assert.False(t, ok)
	_, ok = p.GetEnvVariable("")
	assert.False(t, ok)
}

func TestOSEnvProvider(t *testing.T) {
	// Reads the process environment through LookupEnv.
	t.Setenv("KIT_TEST_VAR", "42")
	p := OSEnv{}

	v, ok := p.GetEnvVariable("KIT_TEST_VAR")
	require.True(t, ok)
	assert.Equal(t, "42", v)

	_, ok = p.GetEnvVariable("")
	assert.False(t, ok)
}

func TestChainResolvesInOrder(t *testing.T) {
	// The first provider holding the name wins.
	chain := Chain{
		Static{"A": "first"},
		Static{"A": "second", "B": "only"},
	}

	v, ok := chain.GetEnvVariable("A")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = chain.GetEnvVariable("B")
	require.True(t, ok)
	assert.Equal(t, "only", v)

	_, ok = chain.GetEnvVariable("C")
	assert.False(t, ok)
}

func TestLoadDotEnv(t *testing.T) {
	// .env files become Static providers.
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TOKEN=abc\nURL=https://example.com\n"), 0o600))

	p, err := LoadDotEnv(path)
	require.NoError(t, err)

	v, ok := p.GetEnvVariable("TOKEN")
	require.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	// A missing file is reported, not swallowed.
	_, err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	// Flat YAML override files become Static providers.
	path := filepath.Join(t.TempDir(), "kit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("TOKEN: abc\nPORT: \"8080\"\n"), 0o600))

	p, err := LoadYAML(path)
	require.NoError(t, err)

	v, ok := p.GetEnvVariable("TOKEN")
	require.True(t, ok)
	assert.Equal(t, "abc", v)
	v, ok = p.GetEnvVariable("PORT")
	require.True(t, ok)
	assert.Equal(t, "8080", v)
}

func TestLoadYAMLRejectsMalformed(t *testing.T) {
	// Non-mapping YAML is an error.
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	_, err := LoadYAML(path)
	assert.Error(t, err)
}
