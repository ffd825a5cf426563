// Package bot implements the per-user conversation state machine:
// a choosing menu that branches into a recommendation flow (background
// then interests) or a question flow, grounds a prompt on the program
// corpus, and relays the model's reply.
package bot

import (
	"context"
	"strings"
	"time"

	"github.com/abitbot/abit-advisor-go/internal/ctxutil"
	"github.com/abitbot/abit-advisor-go/internal/genai"
	"github.com/abitbot/abit-advisor-go/internal/logger"
	"github.com/abitbot/abit-advisor-go/internal/metrics"
	"github.com/abitbot/abit-advisor-go/internal/prompt"
	"github.com/abitbot/abit-advisor-go/internal/ratelimit"
	"github.com/abitbot/abit-advisor-go/internal/storage"
)

// Reply is one outbound message plus its keyboard effect. The
// transport decides how to render the menu.
type Reply struct {
	Text           string
	ShowMenu       bool // attach the two-intent menu keyboard
	RemoveKeyboard bool // drop any visible keyboard
}

// EngineConfig holds the engine's collaborators.
type EngineConfig struct {
	Sessions *SessionStore
	Repo     storage.ProgramRepository
	Advisor  genai.Advisor
	Slugs    []string // programs served to users
	Logger   *logger.Logger
	Metrics  *metrics.Metrics        // optional
	Limiter  *ratelimit.ModelLimiter // optional, caps model calls per chat
}

// Engine drives conversation sessions. One engine serves all chats;
// per-chat state lives in the session store.
type Engine struct {
	sessions *SessionStore
	repo     storage.ProgramRepository
	advisor  genai.Advisor
	slugs    []string
	logger   *logger.Logger
	metrics  *metrics.Metrics
	limiter  *ratelimit.ModelLimiter
}

// NewEngine creates a conversation engine.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		sessions: cfg.Sessions,
		repo:     cfg.Repo,
		advisor:  cfg.Advisor,
		slugs:    cfg.Slugs,
		logger:   cfg.Logger.WithModule("bot"),
		metrics:  cfg.Metrics,
		limiter:  cfg.Limiter,
	}
}

// HandleStart processes the start signal: the session re-enters the
// choosing state with a cleared context, from any state including
// cancelled.
func (e *Engine) HandleStart(ctx context.Context, chatID int64) []Reply {
	e.sessions.Update(chatID, func(s *Session) {
		s.State = StateChoosing
		s.Context = FlowContext{}
	})
	return []Reply{{Text: MsgGreeting, ShowMenu: true}}
}

// HandleCancel processes the cancel signal from any state.
func (e *Engine) HandleCancel(ctx context.Context, chatID int64) []Reply {
	e.sessions.Update(chatID, func(s *Session) {
		s.State = StateCancelled
		s.Context = FlowContext{}
	})
	return []Reply{{Text: MsgGoodbye, RemoveKeyboard: true}}
}

// HandleText processes one inbound text message against the chat's
// current state. Unrecognized input in the choosing state re-prompts
// the menu without changing state; input after cancellation is ignored
// until the next start signal.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) []Reply {
	ctx = ctxutil.WithChatID(ctx, chatID)

	var replies []Reply
	var invoke func() []Reply

	e.sessions.Update(chatID, func(s *Session) {
		switch s.State {
		case StateChoosing:
			switch text {
			case IntentRecommend:
				s.Context = FlowContext{}
				s.State = StateBackground
				replies = []Reply{{Text: MsgAskBackground, RemoveKeyboard: true}}
			case IntentAsk:
				s.Context = FlowContext{}
				s.State = StateAsk
				replies = []Reply{{Text: MsgAskQuestion, RemoveKeyboard: true}}
			default:
				replies = []Reply{{Text: MsgChooseAction, ShowMenu: true}}
			}

		case StateBackground:
			s.Context.Background = text
			s.State = StateInterests
			replies = []Reply{{Text: MsgAskInterests}}

		case StateInterests:
			input := prompt.UserInput{Background: s.Context.Background, Interests: text}
			s.Context = FlowContext{}
			invoke = func() []Reply {
				return e.runFlow(ctx, chatID, input, prompt.FlowRecommendation)
			}

		case StateAsk:
			input := prompt.UserInput{Question: text}
			s.Context = FlowContext{}
			invoke = func() []Reply {
				return e.runFlow(ctx, chatID, input, prompt.FlowQuestion)
			}

		case StateCancelled:
		}
	})

	// The model call runs outside the store lock; the final state
	// transition is applied when it returns.
	if invoke != nil {
		return invoke()
	}
	return replies
}

// runFlow loads the corpus, builds the prompt, and invokes the model.
// Model failure terminates the flow: one apology, session cancelled.
func (e *Engine) runFlow(ctx context.Context, chatID int64, input prompt.UserInput, kind prompt.FlowKind) []Reply {
	if e.limiter != nil && !e.limiter.Allow(chatID) {
		e.logger.WarnContext(ctx, "Model call budget exhausted for chat", "flow", string(kind))
		e.metrics.RecordFlow(string(kind), "rate_limited")
		e.sessions.Update(chatID, func(s *Session) {
			s.State = StateChoosing
		})
		return []Reply{
			{Text: MsgRateLimited},
			{Text: MsgChooseAction, ShowMenu: true},
		}
	}

	records := e.loadCorpus(ctx)
	messages := prompt.Build(records, input, kind)

	start := time.Now()
	answer, err := e.advisor.Complete(ctx, messages)
	e.metrics.RecordModelCall(e.advisor.Provider(), err, time.Since(start).Seconds())

	if err != nil {
		e.logger.WithError(err).ErrorContext(ctx, "Model invocation failed", "flow", string(kind))
		e.metrics.RecordFlow(string(kind), "error")
		e.sessions.Update(chatID, func(s *Session) {
			s.State = StateCancelled
		})
		return []Reply{{Text: failureMessage(kind)}}
	}

	e.metrics.RecordFlow(string(kind), "success")
	e.sessions.Update(chatID, func(s *Session) {
		s.State = StateChoosing
	})
	return []Reply{
		{Text: strings.TrimSpace(answer)},
		{Text: MsgChooseAction, ShowMenu: true},
	}
}

// loadCorpus re-reads the served programs each turn, favoring
// freshness over latency. A read failure degrades to an empty corpus
// rather than crashing the session.
func (e *Engine) loadCorpus(ctx context.Context) []storage.Program {
	records, err := e.repo.GetProgramsBySlugs(ctx, e.slugs)
	if err != nil {
		e.logger.WithError(err).WarnContext(ctx, "Failed to load program corpus, prompting without grounding data")
		return nil
	}
	return records
}

func failureMessage(kind prompt.FlowKind) string {
	if kind == prompt.FlowQuestion {
		return MsgQuestionFailed
	}
	return MsgRecommendFailed
}

// State reports the chat's current state. Intended for tests and
// diagnostics.
func (e *Engine) State(chatID int64) State {
	return e.sessions.Snapshot(chatID).State
}
