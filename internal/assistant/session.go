package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harunnryd/shoki/internal/audio"
	"github.com/harunnryd/shoki/internal/model/contract"
	"github.com/harunnryd/shoki/internal/tool"

	"github.com/oklog/ulid/v2"
)

// systemPrompt seeds every session. The assistant only acts through the
// registered tools; policy questions go through query_policy.
const systemPrompt = `You are a helpful office assistant for company employees.

You can submit requests on behalf of the employee: day off, work from home, late arrival, overtime, office assets, and meeting room bookings. You can also answer questions about company policies by calling the query_policy function.

Use the provided functions whenever the employee asks for one of these actions. Ask for missing details instead of guessing them. Keep answers short and friendly.`

// Outcome classifies how a turn ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeDegraded
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// TurnResult is what a single call to Process produced.
type TurnResult struct {
	Answer    string
	Outcome   Outcome
	AudioPath string
}

// Completer is the slice of the model router a session needs.
type Completer interface {
	Route(ctx context.Context, model string, req contract.CompletionRequest) (*contract.CompletionResponse, error)
}

// AudioSpeaker voices a final answer. Nil disables audio entirely.
type AudioSpeaker interface {
	Speak(ctx context.Context, text string) (string, error)
}

// SessionConfig carries the per-session knobs resolved from configuration.
type SessionConfig struct {
	Model          string
	MaxInputTokens int
	RequestTimeout time.Duration
	AudioEnabled   bool
}

// Session owns one append-only conversation history and drives the
// two-completion tool-calling turn over it. Sessions are not safe for
// concurrent use; each driver owns its own.
type Session struct {
	ID      string
	History []contract.Message

	completer Completer
	registry  *tool.Registry
	runner    *tool.Runner
	speaker   AudioSpeaker
	counter   TokenCounter
	cfg       SessionConfig
}

func NewSession(completer Completer, registry *tool.Registry, speaker AudioSpeaker, counter TokenCounter, cfg SessionConfig) *Session {
	s := &Session{
		ID:        ulid.Make().String(),
		completer: completer,
		registry:  registry,
		runner:    tool.NewRunner(registry),
		speaker:   speaker,
		counter:   counter,
		cfg:       cfg,
	}
	s.History = append(s.History, contract.Message{
		Role:    contract.RoleSystem,
		Content: systemPrompt,
	})
	return s
}

// Process runs one conversational turn: admission check, first completion,
// tool dispatch, follow-up completion, optional audio. The history is
// updated in place; failures past admission degrade the turn rather than
// abort it.
func (s *Session) Process(ctx context.Context, userMessage string) TurnResult {
	turnID := ulid.Make().String()
	log := slog.With("session", s.ID, "turn", turnID)

	if s.counter != nil && s.cfg.MaxInputTokens > 0 {
		if tokens := s.counter.Count(userMessage); tokens > s.cfg.MaxInputTokens {
			answer := fmt.Sprintf("Your message is too long to process (%d tokens, limit %d). Please shorten it and try again.", tokens, s.cfg.MaxInputTokens)
			s.History = append(s.History,
				contract.Message{Role: contract.RoleUser, Content: userMessage},
				contract.Message{Role: contract.RoleAssistant, Content: answer},
			)
			log.Warn("Input rejected by token ceiling", "tokens", tokens, "limit", s.cfg.MaxInputTokens)
			return TurnResult{Answer: answer, Outcome: OutcomeRejected}
		}
	}

	s.History = append(s.History, contract.Message{Role: contract.RoleUser, Content: userMessage})

	resp, err := s.complete(ctx)
	if err != nil {
		log.Error("Completion failed", "error", err)
		return TurnResult{Answer: fmt.Sprintf("API error: %s", err), Outcome: OutcomeDegraded}
	}

	finalAnswer := ""
	toolsDispatched := false
	for _, choice := range resp.Choices {
		if len(choice.ToolCalls) == 0 {
			if choice.Content != "" {
				s.History = append(s.History, contract.Message{Role: contract.RoleAssistant, Content: choice.Content})
				if finalAnswer == "" {
					finalAnswer = choice.Content
				}
			}
			continue
		}

		for _, call := range choice.ToolCalls {
			if call.ID == "" {
				call.ID = ulid.Make().String()
			}

			log.Info("Dispatching tool", "tool", call.Name, "call_id", call.ID)
			result := s.runner.Dispatch(ctx, call.Name, call.Input)

			s.History = append(s.History,
				contract.Message{Role: contract.RoleAssistant, ToolCalls: []*contract.ToolCall{call}},
				contract.Message{Role: contract.RoleTool, ToolCallID: call.ID, ToolName: call.Name, Content: tool.WrapResult(result)},
			)
			toolsDispatched = true
		}
	}

	if toolsDispatched {
		followUp, err := s.complete(ctx)
		if err != nil {
			log.Error("Follow-up completion failed", "error", err)
			return TurnResult{Answer: fmt.Sprintf("Error: %s", err), Outcome: OutcomeDegraded}
		}
		if len(followUp.Choices) > 0 && followUp.Choices[0].Content != "" {
			finalAnswer = followUp.Choices[0].Content
			s.History = append(s.History, contract.Message{Role: contract.RoleAssistant, Content: finalAnswer})
		}
	}

	if finalAnswer == "" {
		log.Warn("Turn produced no answer")
		return TurnResult{Outcome: OutcomeDegraded}
	}

	result := TurnResult{Answer: finalAnswer, Outcome: OutcomeOK}
	if s.cfg.AudioEnabled && s.speaker != nil && audio.WantsAudio(userMessage) {
		path, err := s.speaker.Speak(ctx, finalAnswer)
		if err != nil {
			log.Warn("Audio response failed", "error", err)
			result.Outcome = OutcomeDegraded
		} else {
			result.AudioPath = path
		}
	}

	return result
}

func (s *Session) complete(ctx context.Context) (*contract.CompletionResponse, error) {
	reqCtx := ctx
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	return s.completer.Route(reqCtx, s.cfg.Model, contract.CompletionRequest{
		Model:    s.cfg.Model,
		Messages: s.History,
		Tools:    s.registry.Descriptors(),
	})
}
