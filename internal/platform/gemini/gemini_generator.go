package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"google.golang.org/genai"

	"aralin/internal/config"
	"aralin/internal/domain"
	"aralin/internal/generation"
)

// promptTemplateText is the prompt sent to Gemini. The model is asked for
// strict JSON so the response can be unmarshaled into ResponseSchema.
const promptTemplateText = `You are a Tagalog language tutor. The verb root "{{.Root}}" means "{{.Gloss}}" in English.

For each of the following conjugated forms, write one short, natural Tagalog sentence that uses the form exactly as written:
{{range .Forms}}- {{.}}
{{end}}
Respond with JSON only, in this exact shape:
{"examples": [{"form": "<conjugated form>", "sentence": "<Tagalog sentence>"}]}
`

// Default retry settings used when the configuration leaves them unset.
const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate usage examples for conjugated forms.
type GeminiGenerator struct {
	logger *slog.Logger
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Compile-time check that GeminiGenerator satisfies generation.Generator.
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key, model name, and retry
//     settings
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("examples").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:         logger.With("component", "gemini_generator"),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// GenerateExamples produces one usage sentence per conjugated form by
// prompting the Gemini model and parsing its JSON response.
func (g *GeminiGenerator) GenerateExamples(
	ctx context.Context,
	verb *domain.Verb,
	forms []string,
) (map[string]string, error) {
	if verb == nil {
		return nil, errors.New("verb cannot be nil")
	}

	prompt, err := g.createPrompt(ctx, verb, forms)
	if err != nil {
		return nil, err
	}

	response, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, response, forms)
}

// createPrompt generates a prompt string from the template for the given verb
// and its conjugated forms.
func (g *GeminiGenerator) createPrompt(ctx context.Context, verb *domain.Verb, forms []string) (string, error) {
	if len(forms) == 0 {
		return "", ErrNoForms
	}

	data := promptData{
		Root:  verb.Root,
		Gloss: verb.Gloss,
		Forms: forms,
	}

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	prompt := promptBuffer.String()
	g.logger.DebugContext(ctx, "prompt generated",
		"root", verb.Root,
		"form_count", len(forms),
		"prompt_length", len(prompt))

	return prompt, nil
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff.
//
// Transient errors are retried up to config.MaxRetries times with jittered
// exponential backoff. Permanent errors (content blocked by safety filters,
// malformed responses) are returned immediately without retrying.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = defaultRetryDelaySeconds
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; ; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		response, transient, err := g.callOnce(ctx, prompt, genConfig)
		if err == nil {
			return response, nil
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"transient", transient,
			"error", err)

		if !transient {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * 2^attempt * rand(0.5, 1.0)
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoffSeconds * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single Gemini API call and classifies any failure as
// transient (worth retrying) or permanent.
func (g *GeminiGenerator) callOnce(
	ctx context.Context,
	prompt string,
	genConfig *genai.GenerateContentConfig,
) (*ResponseSchema, bool, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		// API-level errors (network, quota, 5xx) are assumed transient.
		return nil, true, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, false, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, false, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := resp.Text()
	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, false, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	return &parsed, false, nil
}

// parseResponse converts a ResponseSchema into the form-to-sentence map the
// Generator interface promises. Entries for forms that were never requested
// are dropped; a form the model skipped is simply absent from the result.
func (g *GeminiGenerator) parseResponse(
	ctx context.Context,
	response *ResponseSchema,
	forms []string,
) (map[string]string, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	if len(response.Examples) == 0 {
		return nil, fmt.Errorf("%w: no examples in response", generation.ErrInvalidResponse)
	}

	requested := make(map[string]bool, len(forms))
	for _, form := range forms {
		requested[form] = true
	}

	examples := make(map[string]string, len(forms))
	for i, ex := range response.Examples {
		if ex.Form == "" || ex.Sentence == "" {
			return nil, fmt.Errorf("%w: example %d missing form or sentence",
				generation.ErrInvalidResponse, i)
		}
		if !requested[ex.Form] {
			g.logger.DebugContext(ctx, "dropping example for unrequested form", "form", ex.Form)
			continue
		}
		examples[ex.Form] = ex.Sentence
	}

	g.logger.InfoContext(ctx, "parsed Gemini response",
		"requested_forms", len(forms),
		"examples", len(examples))

	return examples, nil
}
