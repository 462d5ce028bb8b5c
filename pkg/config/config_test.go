package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[convert]
visible_only = true
hidden_diagram_properties = ["Hidden"]

[convert.element_types]
AndJunction = "RC-State"

[convert.native_properties]
created_by = ["Owner"]

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "90m"
`)
	require.NoError(t, err)

	assert.True(t, cfg.Convert.VisibleOnly)
	assert.Equal(t, []string{"Hidden"}, cfg.Convert.HiddenDiagramProperties)
	assert.Equal(t, "RC-State", cfg.Convert.ElementTypes["AndJunction"])
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL.Duration)

	// untouched keys keep their defaults
	assert.Equal(t, archimate.DefaultTitleLength, cfg.Convert.TitleLength)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)

	opts := cfg.Convert.Options()
	assert.True(t, opts.VisibleOnly)
	assert.Equal(t, []string{"Owner"}, opts.NativeProperties.CreatedBy)
	assert.Equal(t, archimate.DefaultDiagramsFolder, opts.DiagramsFolder)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "[convert\n"},
		{"unknown key", "[convert]\nvisible = true\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n"},
		{"negative title length", "[convert]\ntitle_length = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archispec.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":9090\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}

func TestStringRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Convert.Glossary = true
	cfg.Cache.TTL = Duration{time.Hour}

	back, err := Parse(cfg.String())
	require.NoError(t, err)
	assert.True(t, back.Convert.Glossary)
	assert.Equal(t, time.Hour, back.Cache.TTL.Duration)
}
