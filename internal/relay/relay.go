// Package relay turns a user message plus prior conversation into a reply,
// either through the configured completion API or, when the upstream call
// cannot produce usable content, through a canned keyword-matched fallback.
package relay

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qmuntal/stateless"
	"github.com/sashabaranov/go-openai"

	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/config"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/llm"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/logger"
)

// Message roles accepted from callers. History entries with any other role
// are dropped when building the upstream request.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// upstreamTimeout bounds the single completion call so a slow provider
// cannot hold a request slot indefinitely.
const upstreamTimeout = 30 * time.Second

const defaultSystemPrompt = "You are a friendly AI assistant. Respond to the user's messages accurately, helpfully and concisely."

// upstreamTemperature keeps replies close to deterministic.
const upstreamTemperature = 0.1

// FSM states
type fsmState stateless.State

var (
	stateReadyToCallLLM fsmState = "ReadyToCallLLM"
	stateFallback       fsmState = "Fallback"
	stateDone           fsmState = "Done"
)

// FSM triggers
type fsmTrigger stateless.Trigger

var (
	triggerReplyRequested    fsmTrigger = "ReplyRequested"
	triggerUpstreamResponded fsmTrigger = "UpstreamResponded"
	triggerUpstreamFailed    fsmTrigger = "UpstreamFailed"
	triggerFallbackProduced  fsmTrigger = "FallbackProduced"
)

// Relay is a stateless function of (message, history) to a reply. It owns no
// persistent state; persistence belongs to the history store.
type Relay struct {
	llmClient    llm.Client
	cfg          config.LLMConfig
	systemPrompt string
	rules        []fallbackRule
}

// New creates a new relay.
func New(llmClient llm.Client, cfg config.LLMConfig) *Relay {
	systemPrompt := defaultSystemPrompt
	if cfg.SystemPrompt != "" {
		systemPrompt = cfg.SystemPrompt
	}
	return &Relay{
		llmClient:    llmClient,
		cfg:          cfg,
		systemPrompt: systemPrompt,
		rules:        defaultFallbackRules(),
	}
}

// GetReply produces a reply for the given message and history. It never
// returns an error: any upstream failure degrades to a fallback reply.
// A state machine drives the flow: one upstream attempt, then Done, either
// directly or through Fallback.
func (r *Relay) GetReply(ctx context.Context, message string, history []Message) string {
	var reply string

	fsm := stateless.NewStateMachine(stateReadyToCallLLM)

	fsm.Configure(stateReadyToCallLLM).
		PermitReentry(triggerReplyRequested).
		OnEntry(func(ctx context.Context, _ ...any) error {
			if r.cfg.APIKey == "" {
				logger.L.Debug("no API key configured, using fallback reply")
				return fsm.FireCtx(ctx, triggerUpstreamFailed)
			}
			content, err := r.callUpstream(ctx, message, history)
			if err != nil {
				logger.L.Error("upstream completion failed, using fallback reply", "error", err)
				return fsm.FireCtx(ctx, triggerUpstreamFailed)
			}
			reply = content
			return fsm.FireCtx(ctx, triggerUpstreamResponded)
		}).
		Permit(triggerUpstreamResponded, stateDone).
		Permit(triggerUpstreamFailed, stateFallback)

	fsm.Configure(stateFallback).
		OnEntry(func(ctx context.Context, _ ...any) error {
			reply = r.fallbackReply(message)
			return fsm.FireCtx(ctx, triggerFallbackProduced)
		}).
		Permit(triggerFallbackProduced, stateDone)

	fsm.Configure(stateDone)

	if err := fsm.FireCtx(ctx, triggerReplyRequested); err != nil {
		logger.L.Warn("reply state machine error", "error", err)
	}

	if reply == "" {
		return r.fallbackReply(message)
	}
	return reply
}

// callUpstream performs the single attempt against the completion API.
// No retries: a failed attempt means fallback.
func (r *Relay) callUpstream(ctx context.Context, message string, history []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	resp, err := r.llmClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		Messages:    r.buildMessages(message, history),
		Temperature: upstreamTemperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" || strings.EqualFold(content, "null") {
		return "", errors.New("completion response content is empty")
	}
	return content, nil
}

// buildMessages assembles the upstream message list: the system prompt, the
// caller-supplied history in original order, then the new user message.
func (r *Relay) buildMessages(message string, history []Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: r.systemPrompt,
	})

	for _, entry := range history {
		switch entry.Role {
		case RoleUser:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: entry.Content,
			})
		case RoleAssistant:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: entry.Content,
			})
		default:
			logger.L.Debug("dropping history entry with unknown role", "role", entry.Role)
		}
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	return messages
}
