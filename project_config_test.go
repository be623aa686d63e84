package bpclient

import (
	"errors"
	"testing"

	"github.com/baseplane/go-client-sdk/internal/sharedtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectConfigValidateAcceptsValidConfig(t *testing.T) {
	p := ProjectConfig{URL: "https://myproject.example.com", Key: "anon-key"}
	assert.NoError(t, p.Validate())

	p = ProjectConfig{URL: "http://localhost:54321", Key: "anon-key"}
	assert.NoError(t, p.Validate())
}

func TestProjectConfigValidateRejectsMissingURL(t *testing.T) {
	p := ProjectConfig{Key: "anon-key"}
	err := p.Validate()
	require.Error(t, err)
	var ce ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "URL", ce.Field)
}

func TestProjectConfigValidateRejectsMalformedURL(t *testing.T) {
	for _, badURL := range []string{":///", "myproject.example.com", "ftp://myproject.example.com"} {
		t.Run(badURL, func(t *testing.T) {
			p := ProjectConfig{URL: badURL, Key: "anon-key"}
			err := p.Validate()
			require.Error(t, err)
			var ce ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "URL", ce.Field)
		})
	}
}

func TestProjectConfigValidateRejectsMissingKey(t *testing.T) {
	p := ProjectConfig{URL: "https://myproject.example.com"}
	err := p.Validate()
	require.Error(t, err)
	var ce ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Key", ce.Field)
}

func TestProjectConfigFromEnvironment(t *testing.T) {
	t.Setenv(EnvProjectURL, "https://myproject.example.com")
	t.Setenv(EnvAPIKey, "anon-key")

	p, err := ProjectConfigFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, ProjectConfig{URL: "https://myproject.example.com", Key: "anon-key"}, p)
}

func TestProjectConfigFromEnvironmentFailsIfVariablesAreUnset(t *testing.T) {
	t.Setenv(EnvProjectURL, "")
	t.Setenv(EnvAPIKey, "")

	_, err := ProjectConfigFromEnvironment()
	require.Error(t, err)
	var ce ConfigError
	assert.True(t, errors.As(err, &ce))

	t.Setenv(EnvProjectURL, "https://myproject.example.com")
	_, err = ProjectConfigFromEnvironment()
	require.Error(t, err)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Key", ce.Field)
}

func TestProjectConfigFromFileReadsYAML(t *testing.T) {
	data := `
url: https://myproject.example.com
key: anon-key
`
	sharedtest.WithTempFileContaining([]byte(data), func(filename string) {
		p, err := ProjectConfigFromFile(filename)
		require.NoError(t, err)
		assert.Equal(t, ProjectConfig{URL: "https://myproject.example.com", Key: "anon-key"}, p)
	})
}

func TestProjectConfigFromFileReadsJSON(t *testing.T) {
	data := `{"url": "https://myproject.example.com", "key": "anon-key"}`
	sharedtest.WithTempFileContaining([]byte(data), func(filename string) {
		p, err := ProjectConfigFromFile(filename)
		require.NoError(t, err)
		assert.Equal(t, ProjectConfig{URL: "https://myproject.example.com", Key: "anon-key"}, p)
	})
}

func TestProjectConfigFromFileFailsForMissingFile(t *testing.T) {
	_, err := ProjectConfigFromFile("no-such-file")
	assert.Error(t, err)
}

func TestProjectConfigFromFileFailsForMalformedFile(t *testing.T) {
	sharedtest.WithTempFileContaining([]byte(`{what is this`), func(filename string) {
		_, err := ProjectConfigFromFile(filename)
		assert.Error(t, err)
	})
}

func TestProjectConfigFromFileValidatesConfig(t *testing.T) {
	sharedtest.WithTempFileContaining([]byte(`{"url": "https://myproject.example.com"}`), func(filename string) {
		_, err := ProjectConfigFromFile(filename)
		require.Error(t, err)
		var ce ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "Key", ce.Field)
	})
}
