package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"
	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OutputSchema maps a field name to a human-readable description of what
// the model must put there, e.g. "answer" -> "answer with max length of
// 15 words". The schema is embedded literally into the system prompt and
// used to validate the parsed reply.
type OutputSchema map[string]string

// Object is one parsed structured reply. Its keys are exactly the
// schema's keys.
type Object map[string]string

const (
	DefaultTemperature = 1.0
	DefaultMaxAttempts = 3
)

// Options are the recognized knobs of the structured-output requester.
// Zero values fall back to the defaults above; a zero Timeout leaves
// cancellation entirely to the caller's context.
type Options struct {
	Model       string
	Temperature float64
	MaxAttempts int
	Timeout     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return o
}

// StructuredClient asks a text-generation model for JSON conforming to an
// OutputSchema, retrying malformed replies with the failure reason fed
// back into the next attempt's system prompt.
type StructuredClient struct {
	model llms.Model
	opts  Options
}

// NewStructuredClient wraps a langchaingo model with retry and parsing.
func NewStructuredClient(model llms.Model, opts Options) *StructuredClient {
	return &StructuredClient{
		model: model,
		opts:  opts.withDefaults(),
	}
}

// Request sends one prompt and returns the parsed object. On transport
// failure, unparseable output or a reply missing schema keys it retries
// up to MaxAttempts times, appending the previous failure reason to the
// system prompt. Exhausting the budget yields MODEL_OUTPUT_ERROR; no
// partial object is ever returned.
func (c *StructuredClient) Request(ctx context.Context, systemPrompt, userPrompt string, schema OutputSchema) (Object, error) {
	if len(schema) == 0 {
		return nil, domain.NewInvalidInputError("output schema must not be empty")
	}
	if strings.TrimSpace(systemPrompt) == "" || strings.TrimSpace(userPrompt) == "" {
		return nil, domain.NewInvalidInputError("prompts must not be empty")
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode output schema", err)
	}

	// The failure reason of each attempt is carried into the next one as
	// an explicit accumulator appended to the system prompt.
	errContext := ""
	lastReason := ""

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		system := systemPrompt + "\nOutput format: " + string(schemaJSON) + errContext

		raw, callErr := c.call(ctx, system, userPrompt)
		if callErr != nil {
			if ctx.Err() != nil {
				return nil, domain.NewLLMServiceError(ctx.Err())
			}
			lastReason = callErr.Error()
			errContext = feedback(lastReason)
			logger.Get().Warn("Structured output attempt failed",
				zap.Int("attempt", attempt),
				zap.String("reason", lastReason))
			continue
		}

		obj, parseErr := parseObject(raw, schema)
		if parseErr != nil {
			lastReason = parseErr.Error()
			errContext = feedback(lastReason)
			logger.Get().Warn("Structured output attempt returned invalid JSON",
				zap.Int("attempt", attempt),
				zap.String("reason", lastReason),
				zap.String("raw", raw))
			continue
		}

		return obj, nil
	}

	return nil, domain.NewModelOutputError(c.opts.MaxAttempts, lastReason)
}

// RequestBatch applies Request to every prompt independently. Prompts run
// concurrently; the result slice matches the input order and the first
// failing prompt fails the whole batch.
func (c *StructuredClient) RequestBatch(ctx context.Context, systemPrompt string, userPrompts []string, schema OutputSchema) ([]Object, error) {
	if len(userPrompts) == 0 {
		return nil, domain.NewInvalidInputError("at least one prompt is required")
	}

	results := make([]Object, len(userPrompts))
	g, gctx := errgroup.WithContext(ctx)
	for i, prompt := range userPrompts {
		i, prompt := i, prompt
		g.Go(func() error {
			obj, err := c.Request(gctx, systemPrompt, prompt, schema)
			if err != nil {
				return err
			}
			results[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *StructuredClient) call(ctx context.Context, system, user string) (string, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{llms.WithTemperature(c.opts.Temperature)}
	if c.opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(c.opts.Model))
	}

	resp, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, user),
		},
		callOpts...,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// parseObject strips optional code fences, parses the reply as JSON and
// checks that every schema key is present and non-empty.
func parseObject(raw string, schema OutputSchema) (Object, error) {
	cleaned := stripCodeFence(raw)

	var obj Object
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}

	for key := range schema {
		if strings.TrimSpace(obj[key]) == "" {
			return nil, fmt.Errorf("missing required field %q", key)
		}
	}

	return obj, nil
}

// stripCodeFence removes surrounding markdown fences like ```json ... ```.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func feedback(reason string) string {
	return fmt.Sprintf("\n\nPrevious attempt failed: %s. Ensure ONLY valid JSON.", reason)
}
