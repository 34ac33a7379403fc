package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/metrics"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const defaultTimeout = 20 * time.Second

// Config holds the settings for NewClient.
type Config struct {
	APIKeys     []string
	Model       string
	BaseURL     string // optional OpenAI-compatible endpoint
	Temperature float32
	MaxTokens   int
}

// Client calls the chat completion API, rotating across API keys round-robin
// to spread rate limits.
type Client struct {
	clients  []*openai.Client
	model    string
	temp     float32
	maxTok   int
	keyIndex uint64
}

func NewClient(cfg Config) (*Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, errors.New("at least one API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}

	clients := make([]*openai.Client, len(cfg.APIKeys))
	for i, key := range cfg.APIKeys {
		clientConfig := openai.DefaultConfig(key)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
		}
		clients[i] = openai.NewClientWithConfig(clientConfig)
	}

	utils.Zlog.Info("Created completion client with round-robin key rotation",
		zap.Int("key_count", len(clients)),
		zap.String("model", cfg.Model))

	return &Client{
		clients: clients,
		model:   cfg.Model,
		temp:    cfg.Temperature,
		maxTok:  cfg.MaxTokens,
	}, nil
}

func (c *Client) next() *openai.Client {
	if len(c.clients) == 1 {
		return c.clients[0]
	}
	idx := atomic.AddUint64(&c.keyIndex, 1)
	return c.clients[idx%uint64(len(c.clients))]
}

type completionResult struct {
	text string
	err  error
}

// Complete races the API call against timeout. On timeout it returns
// TimeoutReply with an OPENAI_TIMEOUT error; any other failure returns
// FallbackReply with an OPENAI_FAILURE error.
func (c *Client) Complete(ctx context.Context, messages []*schema.Message, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAI(messages),
		Temperature: c.temp,
		MaxTokens:   c.maxTok,
	}

	start := time.Now()
	done := make(chan completionResult, 1)
	go func() {
		resp, err := c.next().CreateChatCompletion(callCtx, req)
		if err != nil {
			done <- completionResult{err: err}
			return
		}
		if len(resp.Choices) == 0 {
			done <- completionResult{err: errors.New("no choices in response")}
			return
		}
		done <- completionResult{text: resp.Choices[0].Message.Content}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		metrics.CompletionDuration.Observe(time.Since(start).Seconds())
		utils.Zlog.Error("Completion timed out",
			zap.String("model", c.model),
			zap.Duration("timeout", timeout))
		return TimeoutReply, &CompletionError{Kind: KindTimeout, Err: ErrTimeout}
	case res := <-done:
		metrics.CompletionDuration.Observe(time.Since(start).Seconds())
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) {
			utils.Zlog.Error("Completion timed out",
				zap.String("model", c.model),
				zap.Duration("timeout", timeout))
			return TimeoutReply, &CompletionError{Kind: KindTimeout, Err: fmt.Errorf("%w: %v", ErrTimeout, res.err)}
		}
		if res.err == nil && strings.TrimSpace(res.text) == "" {
			res.err = errors.New("empty completion")
		}
		if res.err != nil {
			utils.Zlog.Error("Completion failed",
				zap.String("model", c.model),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(res.err))
			return FallbackReply, &CompletionError{Kind: KindFailure, Err: res.err}
		}
		utils.Zlog.Debug("Completion finished",
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(start)))
		return strings.TrimSpace(res.text), nil
	}
}

func toOpenAI(messages []*schema.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		if m == nil {
			continue
		}
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case schema.System:
			role = openai.ChatMessageRoleSystem
		case schema.Assistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
