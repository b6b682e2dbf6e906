package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jira-tools/internal/logging"
	"jira-tools/internal/tools"

	"github.com/cenkalti/backoff/v4"
	"github.com/pterm/pterm"
	"google.golang.org/genai"
)

const (
	maxToolRounds = 8
	maxRetries    = 3
)

// chatSession is the part of *genai.Chat the assistant uses.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ToolCall describes one tool invocation made on the model's behalf.
type ToolCall struct {
	Name   string
	Args   map[string]any
	Result map[string]any
}

type Assistant struct {
	client *genai.Client
	chat   chatSession
	model  string
	tools  *tools.Toolset
	log    *pterm.Logger

	newBackOff func() backoff.BackOff

	// OnToolCall, when set, is told about every tool call after it ran.
	OnToolCall func(ToolCall)
}

func NewAssistant(ctx context.Context, apiKey, model string, toolset *tools.Toolset, logger *pterm.Logger) (*Assistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Assistant{
		client:     client,
		model:      model,
		tools:      toolset,
		log:        logging.OrDiscard(logger),
		newBackOff: rateLimitBackOff,
	}, nil
}

func rateLimitBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 15 * time.Second
	b.Multiplier = 2
	b.MaxElapsedTime = 3 * time.Minute
	return b
}

// StartConversation opens a chat primed with the prompt and returns the
// model's greeting.
func (a *Assistant) StartConversation(ctx context.Context, pc PromptContext) (string, error) {
	chat, err := a.client.Chats.Create(ctx, "models/"+a.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(buildSystemPrompt(pc), genai.RoleUser),
		Tools:             []*genai.Tool{a.tools.GenaiTool()},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	a.chat = chat

	reply, err := a.exchange(ctx, genai.Part{Text: "Hi! I'm ready to log some time."})
	if err != nil {
		return "", fmt.Errorf("start conversation: %w", err)
	}
	return reply, nil
}

func (a *Assistant) SendMessage(ctx context.Context, message string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("chat not initialized")
	}

	reply, err := a.exchange(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return reply, nil
}

// exchange sends parts and keeps answering function calls until the model
// replies with text.
func (a *Assistant) exchange(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := a.sendWithRetry(ctx, parts)
	if err != nil {
		return "", err
	}

	for range maxToolRounds {
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return extractText(resp), nil
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, fc := range calls {
			result := a.tools.Call(ctx, fc.Name, fc.Args)
			a.log.Debug("tool answered", a.log.Args("tool", fc.Name, "success", result["success"]))
			if a.OnToolCall != nil {
				a.OnToolCall(ToolCall{Name: fc.Name, Args: fc.Args, Result: result})
			}
			part := genai.NewPartFromFunctionResponse(fc.Name, result)
			part.FunctionResponse.ID = fc.ID
			replies = append(replies, *part)
		}

		resp, err = a.sendWithRetry(ctx, replies)
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("model kept calling tools after %d rounds", maxToolRounds)
}

func (a *Assistant) sendWithRetry(ctx context.Context, parts []genai.Part) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	operation := func() error {
		var err error
		resp, err = a.chat.SendMessage(ctx, parts...)
		if err != nil && !isRateLimit(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		a.log.Warn("rate limit hit, retrying", a.log.Args("wait", wait.String()))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(a.newBackOff(), maxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return resp, nil
}

func isRateLimit(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return resp.Text()
}
