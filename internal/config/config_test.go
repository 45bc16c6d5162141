package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, DefaultServerLogLevel, cfg.Server.LogLevel)
	require.Equal(t, DefaultModelDefault, cfg.Models.Default)
	require.Equal(t, DefaultModelEmbedding, cfg.Models.Embedding)
	require.Equal(t, DefaultRetrieverCollection, cfg.Retriever.Collection)
	require.Equal(t, DefaultRetrieverTopK, cfg.Retriever.TopK)
	require.Equal(t, DefaultMaxInputTokens, cfg.Limits.MaxInputTokens)
	require.Equal(t, DefaultBatchOutputDir, cfg.Batch.OutputDir)
	require.Equal(t, DefaultAudioSynthCmd, cfg.Audio.SynthCmd)
	require.False(t, cfg.Audio.Enabled)
	require.Len(t, cfg.Models.Registry, 2)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHOKI_MODELS_DEFAULT", "gpt-4o")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", cfg.Models.Default)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".shoki")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
retriever:
  top_k: 5
limits:
  max_input_tokens: 2048
`), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Retriever.TopK)
	require.Equal(t, 2048, cfg.Limits.MaxInputTokens)
	// Untouched keys keep their defaults.
	require.Equal(t, DefaultModelDefault, cfg.Models.Default)
}

func TestLoad_InjectsOpenAIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test-123")

	cfg, err := Load(nil)
	require.NoError(t, err)
	for _, m := range cfg.Models.Registry {
		if m.Provider == "openai" {
			require.Equal(t, "sk-test-123", m.APIKey)
		}
	}
}

func TestDurationOrDefault(t *testing.T) {
	d, err := DurationOrDefault("45s", DefaultModelRequestTimeout)
	require.NoError(t, err)
	require.Equal(t, 45*time.Second, d)

	d, err = DurationOrDefault("", DefaultModelRequestTimeout)
	require.NoError(t, err)
	require.Equal(t, 120*time.Second, d)

	_, err = DurationOrDefault("not-a-duration", DefaultModelRequestTimeout)
	require.Error(t, err)

	_, err = DurationOrDefault("", "")
	require.Error(t, err)
}
