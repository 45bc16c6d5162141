package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harunnryd/shoki/internal/assistant"
	"github.com/harunnryd/shoki/internal/audio"
	"github.com/harunnryd/shoki/internal/config"
	"github.com/harunnryd/shoki/internal/model"
	"github.com/harunnryd/shoki/internal/retriever"
	"github.com/harunnryd/shoki/internal/tool"
	"github.com/harunnryd/shoki/internal/tool/builtin"

	"github.com/spf13/cobra"
)

// components is the fully wired application: everything a driver command
// needs, built once from the loaded config. Dependencies are constructed
// here and injected explicitly; nothing reaches for globals.
type components struct {
	router    *model.DefaultModelRouter
	retriever *retriever.Retriever
	registry  *tool.Registry
	speaker   *audio.Speaker
	counter   assistant.TokenCounter
}

func buildComponents(ctx context.Context, cfg *config.Config, wantAudio bool) (*components, error) {
	router, err := model.NewModelRouter(cfg.Models)
	if err != nil {
		return nil, err
	}

	embedder := retriever.EmbedderFunc(func(ctx context.Context, text string) ([]float32, error) {
		return router.RouteEmbedding(ctx, cfg.Models.Embedding, text)
	})

	ret := retriever.New(cfg.Retriever, embedder)
	if ret.Available() {
		docs, err := retriever.LoadCorpus(cfg.Retriever.CorpusPath)
		if err != nil {
			slog.Warn("Policy corpus unavailable", "path", cfg.Retriever.CorpusPath, "error", err)
		} else if err := ret.Load(ctx, docs); err != nil {
			slog.Warn("Policy index load failed", "error", err)
		}
	}

	var speaker *audio.Speaker
	if wantAudio {
		speaker, err = audio.NewSpeaker(cfg.Audio)
		if err != nil {
			slog.Warn("Audio disabled: speaker setup failed", "error", err)
		}
	}

	registry := tool.NewRegistry()
	builtin.RegisterAll(registry, ret, cfg.Retriever.TopK)

	return &components{
		router:    router,
		retriever: ret,
		registry:  registry,
		speaker:   speaker,
		counter:   assistant.NewTiktokenCounter(),
	}, nil
}

func (c *components) newSession(cfg *config.Config, audioEnabled bool) (*assistant.Session, error) {
	timeout, err := config.DurationOrDefault(cfg.Models.RequestTimeout, config.DefaultModelRequestTimeout)
	if err != nil {
		return nil, err
	}

	var speaker assistant.AudioSpeaker
	if c.speaker != nil {
		speaker = c.speaker
	}

	return assistant.NewSession(c.router, c.registry, speaker, c.counter, assistant.SessionConfig{
		Model:          cfg.Models.Default,
		MaxInputTokens: cfg.Limits.MaxInputTokens,
		RequestTimeout: timeout,
		AudioEnabled:   audioEnabled && c.speaker != nil,
	}), nil
}

func (c *components) close() {
	if c.retriever != nil {
		c.retriever.Close()
	}
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the configured models",
	RunE: func(cmd *cobra.Command, args []string) error {
		router, err := model.NewModelRouter(cfg.Models)
		if err != nil {
			return err
		}

		for _, name := range router.ListModels() {
			marker := " "
			if name == cfg.Models.Default {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
