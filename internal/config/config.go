package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Models    ModelsConfig    `koanf:"models"`
	Retriever RetrieverConfig `koanf:"retriever"`
	Audio     AudioConfig     `koanf:"audio"`
	Limits    LimitsConfig    `koanf:"limits"`
	Batch     BatchConfig     `koanf:"batch"`
}

type ServerConfig struct {
	LogLevel string `koanf:"log_level"`
}

type ModelsConfig struct {
	Default        string          `koanf:"default"`
	Fallback       string          `koanf:"fallback"`
	Embedding      string          `koanf:"embedding"`
	RequestTimeout string          `koanf:"request_timeout"`
	Registry       []ModelRegistry `koanf:"registry"`
}

type ModelRegistry struct {
	Name     string `koanf:"name"`
	Provider string `koanf:"provider"`
	BaseURL  string `koanf:"base_url"`
	APIKey   string `koanf:"api_key"`
}

type RetrieverConfig struct {
	Path       string `koanf:"path"`
	Collection string `koanf:"collection"`
	CorpusPath string `koanf:"corpus_path"`
	TopK       int    `koanf:"top_k"`
	CacheSize  int    `koanf:"cache_size"`
}

type AudioConfig struct {
	Enabled      bool   `koanf:"enabled"`
	SynthCmd     string `koanf:"synth_cmd"`
	OutputDir    string `koanf:"output_dir"`
	Playback     bool   `koanf:"playback"`
	SynthTimeout string `koanf:"synth_timeout"`
}

type LimitsConfig struct {
	MaxInputTokens int `koanf:"max_input_tokens"`
}

type BatchConfig struct {
	OutputDir string `koanf:"output_dir"`
}

const (
	DefaultServerLogLevel      = "info"
	DefaultModelDefault        = "gpt-4o-mini"
	DefaultModelFallback       = ""
	DefaultModelEmbedding      = "text-embedding-3-small"
	DefaultModelRequestTimeout = "120s"
	DefaultOpenAIBaseURL       = "https://api.openai.com/v1"
	DefaultRetrieverCollection = "policies"
	DefaultRetrieverTopK       = 3
	DefaultRetrieverCacheSize  = 128
	DefaultAudioSynthCmd       = "espeak -w {out} {text}"
	DefaultAudioSynthTimeout   = "30s"
	DefaultMaxInputTokens      = 1024
	DefaultBatchOutputDir      = "responses"
)

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"server.log_level":       DefaultServerLogLevel,
		"models.default":         DefaultModelDefault,
		"models.fallback":        DefaultModelFallback,
		"models.embedding":       DefaultModelEmbedding,
		"models.request_timeout": DefaultModelRequestTimeout,
		"models.registry": []ModelRegistry{
			{Name: DefaultModelDefault, Provider: "openai"},
			{Name: DefaultModelEmbedding, Provider: "openai"},
		},
		"retriever.path":          filepath.Join(os.Getenv("HOME"), ".shoki", "index"),
		"retriever.collection":    DefaultRetrieverCollection,
		"retriever.corpus_path":   "",
		"retriever.top_k":         DefaultRetrieverTopK,
		"retriever.cache_size":    DefaultRetrieverCacheSize,
		"audio.enabled":           false,
		"audio.synth_cmd":         DefaultAudioSynthCmd,
		"audio.output_dir":        "",
		"audio.playback":          true,
		"audio.synth_timeout":     DefaultAudioSynthTimeout,
		"limits.max_input_tokens": DefaultMaxInputTokens,
		"batch.output_dir":        DefaultBatchOutputDir,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".shoki", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	// Environment Variables
	k.Load(env.Provider("SHOKI_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SHOKI_")), "_", ".", -1)
	}), nil)

	// CLI Flags. Only dotted flag names are config keys; plain flags like
	// --config or --audio are read by the commands themselves.
	if cmd != nil {
		k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !strings.Contains(f.Name, ".") {
				return "", nil
			}
			return f.Name, posflag.FlagVal(cmd.Flags(), f)
		}), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	for i, m := range cfg.Models.Registry {
		if m.Provider == "" {
			cfg.Models.Registry[i].Provider = "openai"
		}
	}

	// Post-Process: Inject standard Env Vars if missing
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		for i, m := range cfg.Models.Registry {
			if m.Provider == "openai" && m.APIKey == "" {
				cfg.Models.Registry[i].APIKey = key
			}
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		for i, m := range cfg.Models.Registry {
			if m.Provider == "anthropic" && m.APIKey == "" {
				cfg.Models.Registry[i].APIKey = key
			}
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		for i, m := range cfg.Models.Registry {
			if m.Provider == "gemini" && m.APIKey == "" {
				cfg.Models.Registry[i].APIKey = key
			}
		}
	}

	return &cfg, nil
}
