// Package completion adapts third-party LLM APIs to tool.Completer.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/shared/config"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils/logutil"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewClient builds the completer selected by cfg.Provider.
func NewClient(ctx context.Context, cfg config.CompletionConfig, log logger.Interface) (tool.Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("completion.api_key is required")
	}

	var (
		inner tool.Completer
		err   error
	)
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		inner = NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case ProviderGemini:
		inner, err = NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", cfg.Provider)
	}

	return &timeoutClient{
		next:     inner,
		timeout:  cfg.Timeout(),
		provider: cfg.Provider,
		logger:   log.Named("completion"),
	}, nil
}

// timeoutClient bounds each call and rejects blank completions.
type timeoutClient struct {
	next     tool.Completer
	timeout  time.Duration
	provider string
	logger   logger.Interface
}

func (c *timeoutClient) Complete(ctx context.Context, req tool.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.next.Complete(ctx, req)
	if err != nil {
		c.logger.Warnw("completion request failed",
			"provider", c.provider,
			"model", req.Model,
			"duration", time.Since(start),
			"error", err,
		)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", tool.ErrEmptyCompletion
	}

	c.logger.Debugw("completion request finished",
		"provider", c.provider,
		"model", req.Model,
		"duration", time.Since(start),
		"chars", len(text),
		"preview", logutil.TruncateForLog(text, 200),
	)
	return text, nil
}
