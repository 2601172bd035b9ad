package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/hr-screener/internal/utils"
)

const (
	defaultModel = "gemini-2.5-pro"
	retryBase    = 2 * time.Second
	retryMax     = 30 * time.Second
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models     contentModels
	modelName  string
	maxRetries int
	logger     *zap.Logger
	wait       func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, maxRetries, logger), nil
}

func newGenerator(models contentModels, model string, maxRetries int, logger *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		models:     models,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
		wait:       utils.WaitFor,
	}
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// Rate limits and server errors are retried with exponential backoff.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := utils.Backoff(retryBase, retryMax, attempt)
			g.logger.Warn("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := g.wait(ctx, delay); err != nil {
				return "", err
			}
		}

		resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = fmt.Errorf("generate content: %w", err)
			if !isTemporary(err) {
				return "", lastErr
			}
			continue
		}

		return responseText(resp)
	}

	return "", lastErr
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func isTemporary(err error) bool {
	var code int
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	default:
		return false
	}
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned empty response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
