package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/logger"
)

// DefaultModel answers fallback queries when none is configured
const DefaultModel = "gemini-2.5-pro"

// ErrEmptyAnswer is returned when the model produced no text
var ErrEmptyAnswer = errors.New("model returned an empty answer")

const promptTemplate = `You are a helpful assistant. A user has asked a question that is outside your primary financial functions. Please provide a helpful, general response to the following query:
'%s'
`

// BuildPrompt wraps the raw user query in the fallback instructions
func BuildPrompt(query string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(query))
}

// generator produces text for a prompt
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// genaiGenerator calls the Gemini API with Google Search grounding
type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}

// Responder answers free-text queries that could not be screened.
// Calls are rate limited in-process.
// ⭐ SSOT: 폴백 LLM 호출은 여기서만
type Responder struct {
	gen     generator
	limiter *rate.Limiter
	timeout time.Duration
	logger  *logger.Logger
}

// NewResponder creates a Gemini-backed responder
func NewResponder(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Responder, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return newResponder(&genaiGenerator{client: client, model: model}, cfg, log), nil
}

func newResponder(gen generator, cfg config.GeminiConfig, log *logger.Logger) *Responder {
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	return &Responder{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Limit(perMinute/60), 1),
		timeout: cfg.Timeout,
		logger:  log,
	}
}

// Respond implements contracts.FallbackResponder
func (r *Responder) Respond(ctx context.Context, query string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("fallback rate limit: %w", err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	answer, err := r.gen.Generate(ctx, BuildPrompt(query))
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	r.logger.WithFields(map[string]interface{}{
		"chars":    len(answer),
		"duration": time.Since(start),
	}).Info("Fallback answer generated")

	return answer, nil
}
