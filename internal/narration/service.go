// Package narration turns game events into prose through an LLM. The model
// never owns game state; a failed or slow call degrades to a fixed fallback
// line so the session always continues.
package narration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"textquest/internal/debug"
	"textquest/internal/observability"
)

// Fallback is shown whenever the narration call fails or times out.
const Fallback = "The moment passes quietly. Whatever you were hoping to see stays just out of reach."

var ErrNarration = errors.New("narration call failed")

type contextKey string

const operationTypeKey contextKey = "operation_type"

// Service wraps the chat completion API with tracing and debug logging.
type Service struct {
	client *openai.Client
	model  string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(apiKey, model string, dbg *debug.Logger) *Service {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Service{
		client: &client,
		model:  model,
		debug:  dbg,
		tracer: otel.Tracer("narration-service"),
	}
}

type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// Complete runs one chat completion under a client span.
func (s *Service) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	operationType := "narration"
	if opType := getOperationType(ctx); opType != "" {
		operationType = opType
	}

	ctx, span := s.tracer.Start(ctx, operationType,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.CreateGenAIAttributes("openai", s.model, 0, 0, 0.0)...,
		),
	)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.Int("gen_ai.request.max_tokens", req.MaxTokens),
		attribute.String("game.operation_type", operationType),
	}
	if sessionID := observability.GetSessionIDFromContext(ctx); sessionID != "" {
		attrs = append(attrs, attribute.String("session.id", sessionID))
	}
	span.SetAttributes(attrs...)

	span.AddEvent("gen_ai.user.message", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", req.UserPrompt),
	))

	if s.debug != nil {
		s.debug.Printf("narration request op=%s max_tokens=%d prompt_len=%d",
			operationType, req.MaxTokens, len(req.UserPrompt))
	}

	startTime := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "narration_error"))
		span.RecordError(err)
		if s.debug != nil {
			s.debug.Printf("narration error: %v", err)
		}
		return "", fmt.Errorf("%w: %v", ErrNarration, err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no completion choices returned", ErrNarration)
		span.RecordError(err)
		return "", err
	}

	content := resp.Choices[0].Message.Content
	duration := time.Since(startTime)

	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int64("response_time_ms", duration.Milliseconds()),
	)
	span.AddEvent("gen_ai.choice", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", content),
	))

	if s.debug != nil {
		s.debug.Printf("narration response len=%d tokens=%d/%d duration=%v",
			len(content), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, duration)
	}

	return content, nil
}

// Narrator bounds every call with a timeout and converts failures into the
// fallback line.
type Narrator struct {
	service *Service
	timeout time.Duration
	debug   *debug.Logger
}

func NewNarrator(service *Service, timeout time.Duration, dbg *debug.Logger) *Narrator {
	return &Narrator{service: service, timeout: timeout, debug: dbg}
}

// Narrate runs a prompt and always returns usable prose.
func (n *Narrator) Narrate(ctx context.Context, p Prompt) string {
	if n.service == nil {
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	ctx = WithOperationType(ctx, p.Operation)

	text, err := n.service.Complete(ctx, CompletionRequest{
		SystemPrompt: p.System,
		UserPrompt:   p.User,
		MaxTokens:    p.MaxTokens,
	})
	if err != nil {
		if n.debug != nil {
			n.debug.Printf("narration fallback op=%s err=%v", p.Operation, err)
		}
		return Fallback
	}
	if text = strings.TrimSpace(text); text == "" {
		return Fallback
	}
	return text
}

// WithOperationType names the span the next completion runs under.
func WithOperationType(ctx context.Context, opType string) context.Context {
	return context.WithValue(ctx, operationTypeKey, opType)
}

// WithSessionID tags subsequent spans with the play session.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, observability.GetSessionIDKey(), sessionID)
}

func getOperationType(ctx context.Context) string {
	if opType, ok := ctx.Value(operationTypeKey).(string); ok {
		return opType
	}
	return ""
}
