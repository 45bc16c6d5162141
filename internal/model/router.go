package model

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/harunnryd/shoki/internal/config"
	shokiErrors "github.com/harunnryd/shoki/internal/errors"
	"github.com/harunnryd/shoki/internal/model/contract"
	anthropicProvider "github.com/harunnryd/shoki/internal/model/providers/anthropic"
	geminiProvider "github.com/harunnryd/shoki/internal/model/providers/gemini"
	openaiProvider "github.com/harunnryd/shoki/internal/model/providers/openai"
)

// DefaultModelRouter implements ModelRouter interface
type DefaultModelRouter struct {
	cfg       config.ModelsConfig
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewModelRouter creates a new model router from the models registry.
func NewModelRouter(cfg config.ModelsConfig) (*DefaultModelRouter, error) {
	router := &DefaultModelRouter{
		cfg:       cfg,
		providers: make(map[string]Provider),
	}

	if err := router.initProviders(); err != nil {
		return nil, err
	}

	return router, nil
}

// Route routes a completion request to the provider registered for the model.
func (r *DefaultModelRouter) Route(ctx context.Context, model string, req contract.CompletionRequest) (*contract.CompletionResponse, error) {
	provider, err := r.resolveProvider(model)
	if err != nil {
		return nil, err
	}

	slog.Debug("Routing completion request", "model", model, "provider", provider.Name())

	resp, err := provider.Generate(ctx, req)
	if err == nil {
		return resp, nil
	}

	// One fallback attempt when a distinct fallback model is configured.
	if r.cfg.Fallback == "" || r.cfg.Fallback == model {
		return nil, shokiErrors.Wrap(err, "provider request failed")
	}

	slog.Warn("Provider request failed, attempting fallback", "model", model, "fallback", r.cfg.Fallback, "error", err)

	fallbackProvider, fbErr := r.resolveProvider(r.cfg.Fallback)
	if fbErr != nil {
		return nil, shokiErrors.Wrap(err, "provider request failed")
	}

	fbReq := req
	fbReq.Model = r.cfg.Fallback
	resp, fbErr = fallbackProvider.Generate(ctx, fbReq)
	if fbErr != nil {
		return nil, shokiErrors.Wrap(fbErr, "fallback request failed")
	}
	return resp, nil
}

// RouteEmbedding routes an embedding request, skipping providers that do not
// support embeddings. The same route serves corpus load and query time so
// relevance scores stay comparable.
func (r *DefaultModelRouter) RouteEmbedding(ctx context.Context, model string, text string) ([]float32, error) {
	var lastErr error

	for _, tryModel := range r.embeddingTryOrder(model) {
		select {
		case <-ctx.Done():
			return nil, shokiErrors.Wrap(ctx.Err(), "embedding request cancelled")
		default:
		}

		r.mu.RLock()
		provider, exists := r.providers[tryModel]
		r.mu.RUnlock()
		if !exists {
			continue
		}

		embedding, err := provider.Embed(ctx, text)
		if err == nil {
			return embedding, nil
		}

		if isEmbeddingUnsupported(err) {
			slog.Debug("Embedding unsupported by provider, trying next model", "model", tryModel)
			continue
		}

		lastErr = err
		slog.Warn("Embedding failed for model, trying next model", "model", tryModel, "error", err)
	}

	if lastErr != nil {
		return nil, shokiErrors.Wrap(lastErr, "embedding failed")
	}
	return nil, shokiErrors.NotFound("no embedding-capable model configured")
}

func (r *DefaultModelRouter) embeddingTryOrder(requestedModel string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.providers)+1)
	order := make([]string, 0, len(r.providers)+1)

	appendUnique := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		order = append(order, name)
	}

	appendUnique(requestedModel)

	registered := make([]string, 0, len(r.providers))
	for name := range r.providers {
		registered = append(registered, name)
	}
	sort.Strings(registered)

	for _, name := range registered {
		appendUnique(name)
	}

	return order
}

// Providers without an embedding endpoint report it as an ErrUnavailable;
// the router skips them instead of treating it as a routing failure.
func isEmbeddingUnsupported(err error) bool {
	return shokiErrors.IsCategory(err, shokiErrors.ErrUnavailable)
}

// ListModels returns all registered model names.
func (r *DefaultModelRouter) ListModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	models := make([]string, 0, len(r.providers))
	for name := range r.providers {
		models = append(models, name)
	}
	sort.Strings(models)

	return models
}

func (r *DefaultModelRouter) initProviders() error {
	for _, entry := range r.cfg.Registry {
		provider, err := r.createProvider(entry)
		if err != nil {
			slog.Warn("Failed to create provider", "provider", entry.Provider, "model", entry.Name, "error", err)
			continue
		}

		r.providers[entry.Name] = provider
		slog.Info("Provider initialized", "name", entry.Name, "type", entry.Provider)
	}

	if len(r.providers) == 0 && len(r.cfg.Registry) > 0 {
		return shokiErrors.Internal("no providers initialized")
	}

	return nil
}

func (r *DefaultModelRouter) resolveProvider(model string) (Provider, error) {
	r.mu.RLock()
	provider, exists := r.providers[model]
	r.mu.RUnlock()

	if exists {
		return provider, nil
	}

	if r.cfg.Fallback != "" && model != r.cfg.Fallback {
		r.mu.RLock()
		fallbackProvider, fallbackExists := r.providers[r.cfg.Fallback]
		r.mu.RUnlock()
		if fallbackExists {
			slog.Warn("Model not found, using fallback", "model", model, "fallback", r.cfg.Fallback)
			return fallbackProvider, nil
		}
	}

	return nil, shokiErrors.NotFound(fmt.Sprintf("model %s not found", model))
}

func (r *DefaultModelRouter) createProvider(entry config.ModelRegistry) (Provider, error) {
	switch entry.Provider {
	case "openai":
		baseURL := entry.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultOpenAIBaseURL
		}
		if entry.APIKey == "" {
			return nil, shokiErrors.InvalidInput("API key required for OpenAI provider")
		}
		return openaiProvider.New(entry.APIKey, baseURL, entry.Name), nil

	case "ollama":
		// Ollama speaks the OpenAI wire protocol.
		if entry.BaseURL == "" {
			return nil, shokiErrors.InvalidInput("base URL required for Ollama provider")
		}
		apiKey := entry.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return openaiProvider.New(apiKey, entry.BaseURL, entry.Name), nil

	case "anthropic":
		if entry.APIKey == "" {
			return nil, shokiErrors.InvalidInput("API key required for Anthropic provider")
		}
		return anthropicProvider.New(entry.APIKey), nil

	case "gemini":
		if entry.APIKey == "" {
			return nil, shokiErrors.InvalidInput("API key required for Gemini provider")
		}
		return geminiProvider.New(entry.APIKey)

	default:
		return nil, shokiErrors.InvalidInput(fmt.Sprintf("unknown provider type: %s", entry.Provider))
	}
}
