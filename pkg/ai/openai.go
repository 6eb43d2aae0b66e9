package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/maum-go-api/internal/models"
)

var (
	chatDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maum",
		Subsystem: "ai",
		Name:      "chat_duration_seconds",
		Help:      "Duration of counselor chat completion requests",
	}, []string{"model"})

	chatFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maum",
		Subsystem: "ai",
		Name:      "chat_failures_total",
		Help:      "Number of counselor chat completion failures",
	}, []string{"model"})
)

// counselorSystemPrompt steers the model toward a short social-emotional
// counseling conversation for secondary-school students.
const counselorSystemPrompt = "당신은 중고등학생들의 사회정서학습을 돕는 따뜻하고 친근한 상담 챗봇입니다. " +
	"학생들이 오늘 하루 학교에서의 경험과 감정을 편안하게 나눌 수 있도록 도와주세요. " +
	"3~7회의 대화로 자연스럽게 대화를 이끌어가세요."

// OpenAIConfig defines configuration options for the OpenAI counselor.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAICounselor implements Counselor against the OpenAI chat completion API.
type OpenAICounselor struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAICounselor builds a counselor client using the provided configuration.
func NewOpenAICounselor(cfg OpenAIConfig) (*OpenAICounselor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 300
	}

	tracer := otel.Tracer("github.com/noah-isme/maum-go-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAICounselor{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Reply sends the accumulated transcript plus the new user message and
// returns the counselor's answer.
func (c *OpenAICounselor) Reply(parent context.Context, transcript []models.ConversationEntry, userMessage string) (string, error) {
	ctx, span := c.tracer.Start(parent, "openai.counselor_reply", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
		attribute.Int("transcript_len", len(transcript)),
	))
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, len(transcript)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: counselorSystemPrompt,
	})
	for _, entry := range transcript {
		role := openai.ChatMessageRoleUser
		if entry.Type == models.EntryTypeBot {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: entry.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    messages,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	chatDuration.WithLabelValues(c.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		chatFailures.WithLabelValues(c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		chatFailures.WithLabelValues(c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
